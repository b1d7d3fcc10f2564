package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type Handlers struct {
	Page      *PageHandler
	Portfolio *PortfolioHandler
	Feed      *FeedHandler
	// Stats is nil when analytics is disabled.
	Stats *StatsHandler
}

func NewRouter(h Handlers, tmpl *template.Template, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), ErrorMiddleware(log))
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", StaticFS())

	router.GET("/", h.Page.Shell)
	router.GET("/sections", h.Page.Sections)
	router.GET("/projects.rss", h.Feed.ProjectFeed)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.GET("/portfolio", h.Portfolio.GetPortfolio)
		if h.Stats != nil {
			api.GET("/stats/views", h.Stats.GetViewStats)
		} else {
			api.GET("/stats/views", func(c *gin.Context) {
				c.Error(apperror.NewUnavailable("view analytics is disabled"))
			})
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.Error(apperror.NewNotFound("route", c.Request.URL.Path))
	})
	return router
}
