package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "library-api/docs"

	"library-api/internal/shared/middleware"
	"library-api/internal/shared/response"
	"library-api/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(),
		middleware.CORS(c.Config.HTTP.CORSOrigins),
	)
	if c.RateLimiter != nil {
		router.Use(c.RateLimiter.Middleware())
	}

	router.GET("/health", healthCheckHandler(c))

	// API docs are only exposed in development
	if c.Config.IsDevelopment() {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "route not found")
	})

	api := router.Group("/api")
	{
		c.AuthorHandler.RegisterRoutes(api.Group("/authors"))
		c.BookHandler.RegisterRoutes(api.Group("/books"))
	}

	return router
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		storeStatus := "memory"
		if appCtx.DB != nil {
			storeStatus = "ok"
			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				storeStatus = "error: " + err.Error()
				health["status"] = "degraded"
			}
		}

		cacheStatus := "disabled"
		if appCtx.Cache != nil {
			cacheStatus = "ok"
			if err := appCtx.Cache.Ping(ctx); err != nil {
				cacheStatus = "error: " + err.Error()
			}
		}

		health["services"] = gin.H{
			"store": storeStatus,
			"cache": cacheStatus,
		}

		statusCode := http.StatusOK
		if health["status"] != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
