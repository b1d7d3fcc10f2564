package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	analyticsUC "github.com/khoahotran/portfolio/internal/application/usecase/analytics"
	portfolioUC "github.com/khoahotran/portfolio/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type PageHandler struct {
	loadPortfolioUseCase *portfolioUC.LoadPortfolioUseCase
	trackViewUseCase     *analyticsUC.TrackViewUseCase
	logger               logger.Logger
}

func NewPageHandler(loadUC *portfolioUC.LoadPortfolioUseCase, trackUC *analyticsUC.TrackViewUseCase, log logger.Logger) *PageHandler {
	return &PageHandler{
		loadPortfolioUseCase: loadUC,
		trackViewUseCase:     trackUC,
		logger:               log,
	}
}

// Shell renders the page in its loading state. The sections are swapped in by htmx from
// /sections.
func (h *PageHandler) Shell(c *gin.Context) {
	c.HTML(http.StatusOK, "shell.html", gin.H{
		"State": portfolioUC.StateLoading.String(),
	})
}

// Sections performs the page load and renders either the ready sections or the failure
// screen. Both are 200 so htmx swaps them in.
func (h *PageHandler) Sections(c *gin.Context) {
	out, err := h.loadPortfolioUseCase.Execute(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusOK, "failure.html", NewFailureView(err))
		return
	}

	h.trackViewUseCase.Execute(analyticsUC.TrackViewInput{
		Path:      "/",
		UserAgent: c.Request.UserAgent(),
	})
	c.HTML(http.StatusOK, "sections.html", out.Load.View())
}
