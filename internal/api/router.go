package api

import (
	"net/http"
	"time"

	"github.com/blog-store-api/internal/config"
	"github.com/blog-store-api/internal/metrics"
	"github.com/blog-store-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// NewRouter creates and configures the Gin router. gatherer backs the
// /metrics endpoint.
func NewRouter(services *service.Services, cfg *config.Config, rec metrics.Recorder, gatherer prometheus.Gatherer, log zerolog.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if rec == nil {
		rec = metrics.Nop{}
	}

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware(rec))
	router.Use(corsMiddleware())

	auth := authMiddleware(services.Auth)
	loginLimit := NewRateLimiter(perMinute(cfg.RateLimit.LoginPerMinute), cfg.RateLimit.LoginPerMinute)
	commentLimit := NewRateLimiter(perMinute(cfg.RateLimit.CommentPerMinute), cfg.RateLimit.CommentPerMinute)

	// Handlers
	articleHandler := NewArticleHandler(services, log)
	taxonomyHandler := NewTaxonomyHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	authHandler := NewAuthHandler(services, log)
	exportHandler := NewExportHandler(services, log)
	importHandler := NewImportHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(services, log))
	router.GET("/stats", statsHandler(services))
	router.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))

	// API v1
	v1 := router.Group("/v1")
	{
		articles := v1.Group("/articles")
		{
			articles.GET("", articleHandler.ListArticles)
			articles.GET("/:id", articleHandler.GetArticle)
			articles.GET("/:id/comments", commentHandler.ListArticleComments)
			articles.POST("", auth, articleHandler.CreateArticle)
			articles.PUT("/:id", auth, articleHandler.UpdateArticle)
			articles.DELETE("/:id", auth, articleHandler.DeleteArticle)
			articles.POST("/:id/views", auth, articleHandler.UpdateArticleViews)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", taxonomyHandler.ListCategories)
			categories.GET("/:id", taxonomyHandler.GetCategory)
			categories.POST("", auth, taxonomyHandler.CreateCategory)
			categories.PUT("/:id", auth, taxonomyHandler.UpdateCategory)
			categories.DELETE("/:id", auth, taxonomyHandler.DeleteCategory)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", taxonomyHandler.ListTags)
			tags.GET("/:id", taxonomyHandler.GetTag)
			tags.POST("", auth, taxonomyHandler.CreateTag)
			tags.PUT("/:id", auth, taxonomyHandler.UpdateTag)
			tags.DELETE("/:id", auth, taxonomyHandler.DeleteTag)
		}

		comments := v1.Group("/comments")
		{
			comments.POST("", commentLimit.Middleware(), commentHandler.CreateComment)
			comments.GET("", auth, commentHandler.ListComments)
			comments.POST("/:id/approve", auth, commentHandler.ApproveComment)
			comments.DELETE("/:id", auth, commentHandler.DeleteComment)
		}

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", loginLimit.Middleware(), authHandler.Login)
			authGroup.POST("/reset-password", authHandler.ResetPassword)
			authGroup.POST("/logout", auth, authHandler.Logout)
			authGroup.GET("/me", auth, authHandler.Me)
			authGroup.GET("/validate", authHandler.Validate)
		}

		// Export and import endpoints
		v1.GET("/exports", auth, exportHandler.StreamExport)
		v1.POST("/imports", auth, importHandler.CreateImport)
	}

	return router
}

func perMinute(n int) rate.Limit {
	return rate.Limit(float64(n) / 60.0)
}

// healthCheck returns the health status, degraded when storage is unreachable
func healthCheck(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if services.Health != nil {
			if err := services.Health.Ping(c.Request.Context()); err != nil {
				log.Error().Err(err).Msg("Storage health check failed")
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "blog-store-api",
		})
	}
}

// statsHandler returns entity counts
func statsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"store":     services.Export.Stats(c.Request.Context()),
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}
