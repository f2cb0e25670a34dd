package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"lab-pricing/internal/api/handlers"
	"lab-pricing/internal/api/middleware"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	simulateHandler := handlers.NewSimulateHandler()
	catalogHandler := handlers.NewCatalogHandler()
	policyHandler := handlers.NewPolicyHandler()
	rankHandler := handlers.NewRankHandler()

	log.Printf("Policy presets directory: %s", policyHandler.GetPolicyDir())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.Simulate)
		api.POST("/simulate/compare", simulateHandler.Compare)

		api.GET("/rank", rankHandler.RankTests)

		api.GET("/labs", catalogHandler.ListLabs)
		api.GET("/tests", catalogHandler.ListTests)

		api.GET("/policies", policyHandler.ListPolicies)
		api.GET("/models", handlers.ListModels)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
