package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/analytics"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// TrackViewUseCase publishes view events without blocking the page render.
type TrackViewUseCase struct {
	publisher service.ViewPublisher
	logger    logger.Logger
	now       func() time.Time
}

func NewTrackViewUseCase(p service.ViewPublisher, log logger.Logger) *TrackViewUseCase {
	return &TrackViewUseCase{publisher: p, logger: log, now: time.Now}
}

type TrackViewInput struct {
	Path      string
	UserAgent string
}

// Execute returns the event it queued. Publishing runs in the background and failures are
// only logged.
func (uc *TrackViewUseCase) Execute(input TrackViewInput) analytics.ViewEvent {
	ev := analytics.ViewEvent{
		EventID:   uuid.New(),
		Path:      input.Path,
		ViewedAt:  uc.now().UTC(),
		UserAgent: input.UserAgent,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.publisher.PublishView(ctx, ev); err != nil {
			uc.logger.Error("Failed to publish view event", err, zap.String("event_id", ev.EventID.String()))
		}
	}()
	return ev
}
