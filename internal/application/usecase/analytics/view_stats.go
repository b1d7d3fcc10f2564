package analytics

import (
	"context"
	"time"

	"github.com/khoahotran/portfolio/internal/domain/analytics"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const maxStatsDays = 90

type ViewStatsUseCase struct {
	counter analytics.Counter
	repo    analytics.Repository
	logger  logger.Logger
	now     func() time.Time
}

func NewViewStatsUseCase(c analytics.Counter, r analytics.Repository, log logger.Logger) *ViewStatsUseCase {
	return &ViewStatsUseCase{counter: c, repo: r, logger: log, now: time.Now}
}

type ViewStatsInput struct {
	Days int
}

type ViewStatsOutput struct {
	Totals *analytics.Totals
	Daily  []analytics.DailyViews
}

func (uc *ViewStatsUseCase) Execute(ctx context.Context, input ViewStatsInput) (*ViewStatsOutput, error) {
	if input.Days <= 0 {
		input.Days = 7
	}
	if input.Days > maxStatsDays {
		return nil, apperror.NewInvalidInput("days must be at most 90", nil)
	}

	today := analytics.DayOf(uc.now())
	totals, err := uc.counter.Totals(ctx, today)
	if err != nil {
		return nil, apperror.NewInternal("read view counters", err)
	}
	daily, err := uc.repo.ListRange(ctx, today.AddDate(0, 0, -(input.Days-1)), today)
	if err != nil {
		return nil, apperror.NewInternal("read daily views", err)
	}
	return &ViewStatsOutput{Totals: totals, Daily: daily}, nil
}
