package analytics

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/analytics"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// RecordViewUseCase applies one consumed view event to the counters and the daily rollup.
// Both sinks dedupe on the event id, so a redelivered event fills in whichever write failed.
type RecordViewUseCase struct {
	counter analytics.Counter
	repo    analytics.Repository
	logger  logger.Logger
}

func NewRecordViewUseCase(c analytics.Counter, r analytics.Repository, log logger.Logger) *RecordViewUseCase {
	return &RecordViewUseCase{counter: c, repo: r, logger: log}
}

func (uc *RecordViewUseCase) Execute(ctx context.Context, ev analytics.ViewEvent) error {
	if err := ev.Validate(); err != nil {
		return apperror.NewInvalidInput("view event rejected", err)
	}
	counted, err := uc.counter.Increment(ctx, ev)
	if err != nil {
		return fmt.Errorf("increment view counters: %w", err)
	}
	rolledUp, err := uc.repo.AddView(ctx, ev)
	if err != nil {
		return fmt.Errorf("add daily view: %w", err)
	}

	l := uc.logger.With(zap.String("event_id", ev.EventID.String()), zap.String("path", ev.Path))
	if !counted && !rolledUp {
		l.Debug("Duplicate view event ignored")
		return nil
	}
	l.Debug("View recorded", zap.Bool("counted", counted), zap.Bool("rolled_up", rolledUp))
	return nil
}
