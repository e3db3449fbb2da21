// Package api exposes the engine over HTTP with gin.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gcbaptista/payload-distance/internal/scoring"
	"github.com/gcbaptista/payload-distance/services"
)

// API holds dependencies for API handlers, primarily the index manager.
type API struct {
	engine          services.IndexManager
	defaultStrategy scoring.Strategy
	logger          zerolog.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.IndexManager, defaultStrategy scoring.Strategy, logger zerolog.Logger) *API {
	return &API{
		engine:          engine,
		defaultStrategy: defaultStrategy,
		logger:          logger,
	}
}

// SetupRoutes defines all the API routes of the service.
func SetupRoutes(router *gin.Engine, apiHandler *API) {
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/scripts", apiHandler.ListScriptsHandler)

	indexRoutes := router.Group("/indexes")
	{
		indexRoutes.POST("", apiHandler.CreateIndexHandler)
		indexRoutes.GET("", apiHandler.ListIndexesHandler)
		indexRoutes.GET("/:indexName", apiHandler.GetIndexHandler)
		indexRoutes.DELETE("/:indexName", apiHandler.DeleteIndexHandler)

		docRoutes := indexRoutes.Group("/:indexName/documents")
		{
			docRoutes.PUT("", apiHandler.AddDocumentsHandler)
			docRoutes.DELETE("", apiHandler.DeleteAllDocumentsHandler)
			docRoutes.GET("/:documentId", apiHandler.GetDocumentHandler)
			docRoutes.DELETE("/:documentId", apiHandler.DeleteDocumentHandler)
		}

		indexRoutes.POST("/:indexName/_search", apiHandler.SearchHandler)
	}
}

// NewRouter builds a gin engine with the standard middleware chain and all routes.
func NewRouter(apiHandler *API, maxBodyBytes int64) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		RequestLoggerMiddleware(apiHandler.logger),
		CORSMiddleware(),
		RequestSizeLimitMiddleware(maxBodyBytes),
	)
	SetupRoutes(router, apiHandler)
	return router
}

// HealthCheckHandler reports that the service is up.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"indexes": len(api.engine.ListIndexes()),
	})
}

// ListScriptsHandler lists the scoring scripts a search request can name.
func (api *API) ListScriptsHandler(c *gin.Context) {
	strategies := make([]string, 0, len(scoring.Strategies))
	for _, s := range scoring.Strategies {
		strategies = append(strategies, s.String())
	}
	c.JSON(http.StatusOK, gin.H{
		"scripts":          scoring.ScriptNames(),
		"strategies":       strategies,
		"default_strategy": api.defaultStrategy.String(),
	})
}
