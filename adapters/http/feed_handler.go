package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/khoahotran/portfolio/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type FeedHandler struct {
	projectFeedUseCase *portfolioUC.ProjectFeedUseCase
	logger             logger.Logger
}

func NewFeedHandler(uc *portfolioUC.ProjectFeedUseCase, log logger.Logger) *FeedHandler {
	return &FeedHandler{
		projectFeedUseCase: uc,
		logger:             log,
	}
}

func (h *FeedHandler) ProjectFeed(c *gin.Context) {
	feed, err := h.projectFeedUseCase.Execute(c.Request.Context())
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			err = apperror.NewInternal("failed to generate RSS feed", err)
		}
		c.Error(err)
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")

	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}
