package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/khoahotran/portfolio/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type PortfolioHandler struct {
	loadPortfolioUseCase *portfolioUC.LoadPortfolioUseCase
	logger               logger.Logger
}

func NewPortfolioHandler(loadUC *portfolioUC.LoadPortfolioUseCase, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{loadPortfolioUseCase: loadUC, logger: log}
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	out, err := h.loadPortfolioUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPortfolioDTO(out.Load.View()))
}
