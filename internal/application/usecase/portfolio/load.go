package portfolio

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type LoadState int

const (
	StateLoading LoadState = iota
	StateReady
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

var ErrLoadCompleted = errors.New("load already completed")

// Load tracks one page load. It starts Loading and moves exactly once, on fetch
// completion, to Ready or Failed. There is no retry or cancel transition.
type Load struct {
	state    LoadState
	snapshot *portfolio.Snapshot
	view     PageView
	err      error
}

func NewLoad() *Load {
	return &Load{state: StateLoading}
}

// Complete applies the fetch completion event. A nil snapshot without an error counts as
// nothing returned.
func (l *Load) Complete(s *portfolio.Snapshot, err error) error {
	if l.state != StateLoading {
		return ErrLoadCompleted
	}
	switch {
	case err != nil:
		l.state, l.err = StateFailed, err
	case s == nil:
		l.state, l.err = StateFailed, apperror.NewMissingProfileData(portfolio.MissingAllData)
	default:
		l.state, l.snapshot = StateReady, s
	}
	return nil
}

func (l *Load) State() LoadState              { return l.state }
func (l *Load) Snapshot() *portfolio.Snapshot { return l.snapshot }
func (l *Load) View() PageView                { return l.view }
func (l *Load) Err() error                    { return l.err }

type LoadPortfolioUseCase struct {
	source  portfolio.Source
	builder *ViewBuilder
	logger  logger.Logger
}

func NewLoadPortfolioUseCase(source portfolio.Source, builder *ViewBuilder, log logger.Logger) *LoadPortfolioUseCase {
	return &LoadPortfolioUseCase{source: source, builder: builder, logger: log}
}

type LoadPortfolioOutput struct {
	Load *Load
}

// Execute performs the single fetch of a page load. The returned output always carries the
// completed Load; the error is the Load's failure, if any.
func (uc *LoadPortfolioUseCase) Execute(ctx context.Context) (*LoadPortfolioOutput, error) {
	ctx, span := otel.Tracer("portfolio").Start(ctx, "LoadPortfolio")
	defer span.End()

	load := NewLoad()
	snapshot, err := uc.source.FetchSnapshot(ctx)
	if cerr := load.Complete(snapshot, err); cerr != nil {
		return nil, apperror.NewInternal("complete page load", cerr)
	}

	if load.State() == StateFailed {
		span.RecordError(load.Err())
		span.SetStatus(codes.Error, "portfolio load failed")
		uc.logger.Warn("Portfolio load failed", zap.Error(load.Err()))
		return &LoadPortfolioOutput{Load: load}, load.Err()
	}

	load.view = uc.builder.Build(load.snapshot)
	uc.logger.Debug("Portfolio loaded",
		zap.Int("projects", len(snapshot.Projects)),
		zap.Int("skills", len(snapshot.Skills)),
		zap.Int("experience", len(snapshot.Experience)),
		zap.Int("education", len(snapshot.Education)),
	)
	return &LoadPortfolioOutput{Load: load}, nil
}
