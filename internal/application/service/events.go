package service

import (
	"context"

	"github.com/khoahotran/portfolio/internal/domain/analytics"
)

type ViewPublisher interface {
	PublishView(ctx context.Context, event analytics.ViewEvent) error
}
