package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	analyticsUC "github.com/khoahotran/portfolio/internal/application/usecase/analytics"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type StatsHandler struct {
	viewStatsUseCase *analyticsUC.ViewStatsUseCase
	logger           logger.Logger
}

func NewStatsHandler(uc *analyticsUC.ViewStatsUseCase, log logger.Logger) *StatsHandler {
	return &StatsHandler{viewStatsUseCase: uc, logger: log}
}

func (h *StatsHandler) GetViewStats(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(apperror.NewInvalidInput("days must be a number", err))
			return
		}
		days = n
	}

	out, err := h.viewStatsUseCase.Execute(c.Request.Context(), analyticsUC.ViewStatsInput{Days: days})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToViewStatsDTO(out))
}
