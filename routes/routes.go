package routes

import (
	"net/http"
	"time"

	"inkwell/config"
	"inkwell/handlers"
	"inkwell/images"
	"inkwell/metrics"
	"inkwell/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/prometheus/client_golang/prometheus"
)

type Deps struct {
	Cfg       *config.Config
	Schema    graphql.Schema
	Images    *images.Store
	Collector *metrics.Collector
	Registry  *prometheus.Registry
}

// New wires the HTTP surface: CORS, rate limiting, auth marking, the
// error formatter, static image serving, the GraphQL endpoint and the
// REST image upload.
func New(d Deps) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(d.Cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = d.Cfg.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	router.Use(metrics.Middleware(d.Collector))

	limiter := middleware.NewIPRateLimiter(d.Cfg.RateLimit, time.Minute)
	router.Use(middleware.RateLimit(limiter))

	router.Use(middleware.Auth(d.Cfg.JWTSecret))
	router.Use(middleware.Errors())

	router.Static("/images", d.Cfg.ImageDir)

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler(d.Registry)))

	router.POST("/graphql", handlers.GraphQL(d.Schema, d.Collector))
	router.PUT("/post-image", handlers.UploadImage(d.Images))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Endpoint not found.",
			"path":    c.Request.URL.Path,
		})
	})

	return router
}
