package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/dendrafalah/terencana.id/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, rateLimiter *middleware.RateLimiter, healthCheckHandler *HealthCheckHandler, goalPlanHandler *GoalPlanHandler, weddingHandler *WeddingHandler, reflectionHandler *ReflectionHandler) {
	// API version 1, everything scoped to the caller's device
	api := e.Group("/api/v1")
	api.Use(middleware.DeviceID())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Financial health check routes
	healthCheck := api.Group("/financial-health-check")
	healthCheck.GET("/steps", healthCheckHandler.GetSteps)
	healthCheck.GET("/draft", healthCheckHandler.GetDraft)
	healthCheck.PUT("/draft", healthCheckHandler.PutDraft)
	healthCheck.POST("/draft/next", healthCheckHandler.Next)
	healthCheck.POST("/draft/back", healthCheckHandler.Back)
	healthCheck.POST("/submit", healthCheckHandler.Submit)
	healthCheck.GET("/result", healthCheckHandler.GetResult)
	healthCheck.POST("/reset", healthCheckHandler.Reset)

	// Goal plan simulator routes
	goalPlan := api.Group("/goal-plan")
	goalPlan.GET("/templates", goalPlanHandler.GetTemplates)
	goalPlan.GET("/draft", goalPlanHandler.GetDraft)
	goalPlan.PUT("/draft", goalPlanHandler.PutDraft)
	goalPlan.POST("/draft/next", goalPlanHandler.Next)
	goalPlan.POST("/draft/back", goalPlanHandler.Back)
	goalPlan.POST("/scenario", goalPlanHandler.Scenario)
	goalPlan.POST("/submit", goalPlanHandler.Submit)
	goalPlan.GET("/result", goalPlanHandler.GetResult)
	goalPlan.POST("/reset", goalPlanHandler.Reset)

	// Wedding planner routes
	wedding := api.Group("/rencana-nikah")
	wedding.GET("/draft", weddingHandler.GetDraft)
	wedding.PUT("/draft", weddingHandler.PutDraft)
	wedding.POST("/draft/next", weddingHandler.Next)
	wedding.POST("/draft/back", weddingHandler.Back)
	wedding.GET("/breakdown", weddingHandler.GetBreakdown)
	wedding.POST("/submit", weddingHandler.Submit)
	wedding.GET("/result", weddingHandler.GetResult)
	wedding.POST("/reset", weddingHandler.Reset)

	// Reflection quiz routes
	reflection := api.Group("/reflection")
	reflection.GET("/questions", reflectionHandler.GetQuestions)
	reflection.POST("/submit", reflectionHandler.Submit)
	reflection.GET("/result", reflectionHandler.GetResult)
	reflection.POST("/reset", reflectionHandler.Reset)
}
