package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the handler into a gin engine with CORS open to all
// origins, request IDs, request logging and metrics.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		cors.Default(),
		RequestIDMiddleware(),
		RequestLoggingMiddleware(h.log),
		MetricsMiddleware(h.metrics),
	)

	router.POST("/analyze-yodel", h.AnalyzeYodel)
	router.POST("/compare-yodel", h.CompareYodel)
	router.GET("/mock-compare-yodel", h.MockCompareYodel)
	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	router.GET("/", h.ServeIndex)
	router.NoRoute(h.ServeStatic)

	return router
}
