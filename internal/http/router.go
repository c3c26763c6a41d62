package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggerMiddleware(cfg.Metrics))
	router.Use(SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.SessionLoadSave())
	}

	tmpl, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	health := NewHealthController(cfg.HealthChecks, cfg.Version)
	catalogController := NewCatalogController(cfg.Catalog, cfg.Sessions, cfg.CoverCache != nil && cfg.Books != nil)
	api := NewAPIController(cfg.Catalog)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Catalog pages
	router.GET("/", catalogController.Home)
	router.GET("/add_author", catalogController.AddAuthorForm)
	router.POST("/add_author", catalogController.AddAuthor)
	router.GET("/add_book", catalogController.AddBookForm)
	router.POST("/add_book", catalogController.AddBook)
	router.GET("/book/:id/delete", catalogController.DeleteBook)
	router.POST("/book/:id/delete", catalogController.DeleteBook)

	// Book cover endpoint
	if cfg.CoverCache != nil && cfg.Books != nil {
		coversController := NewCoversController(cfg.CoverCache, cfg.Books)
		router.GET("/book/:id/cover", coversController.GetCover)
	}

	// JSON API
	router.GET("/api/books", api.ListBooks)
	router.GET("/api/authors", api.ListAuthors)

	return router, nil
}
