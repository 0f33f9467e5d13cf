package main

import (
	"fmt"
	"net/http"
	"os"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	budgetService := services.NewBudgetService(db, cfg.DefaultBudgetAmount)
	spendingService := services.NewSpendingService(db)
	analyticsService := services.NewAnalyticsService(db)
	activityService := services.NewActivityService(db)
	portfolioService := services.NewPortfolioService(db)
	savingsService := services.NewSavingsService(db, budgetService)
	condoService := services.NewCondoService(db)

	// Initialize handlers
	loc := cfg.Location()
	budgetHandler := handlers.NewBudgetHandler(budgetService, loc)
	spendingHandler := handlers.NewSpendingHandler(spendingService, loc)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, loc)
	activityHandler := handlers.NewActivityHandler(activityService, loc)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, loc)
	savingsHandler := handlers.NewSavingsHandler(savingsService, loc)
	condoHandler := handlers.NewCondoHandler(condoService, loc)
	dashboardHandler := handlers.NewDashboardHandler(budgetService, spendingService, activityService, portfolioService, loc)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Dashboard
	v1.GET("/dashboard", dashboardHandler.GetDashboard)

	// Budget routes
	budget := v1.Group("/budget")
	budget.GET("/current", budgetHandler.GetCurrent)
	budget.PUT("/current", budgetHandler.UpdateCurrent)

	// Spending routes
	spending := v1.Group("/spending")
	spending.POST("", spendingHandler.AddEntry)
	spending.GET("", spendingHandler.ListEntries)
	spending.DELETE("/:id", spendingHandler.DeleteEntry)

	// Analytics routes
	analytics := v1.Group("/analytics")
	analytics.GET("/summary", analyticsHandler.GetSummary)
	analytics.GET("/categories", analyticsHandler.GetCategoryBreakdown)
	analytics.GET("/top-items", analyticsHandler.GetTopItems)
	analytics.GET("/weekly", analyticsHandler.GetWeeklyTrends)
	analytics.GET("/daily", analyticsHandler.GetDailySeries)
	analytics.GET("/category-trends", analyticsHandler.GetCategoryTrends)
	analytics.GET("/weekly-averages", analyticsHandler.GetWeeklyAverages)

	// Activity routes
	activity := v1.Group("/activity")
	activity.POST("", activityHandler.SaveDay)
	activity.GET("", activityHandler.GetDay)
	activity.GET("/recent", activityHandler.GetRecent)
	activity.GET("/range", activityHandler.GetRange)
	activity.GET("/stats", activityHandler.GetStats)

	// Portfolio routes
	portfolio := v1.Group("/portfolio")
	portfolio.GET("/status", portfolioHandler.GetStatus)
	portfolio.GET("/history", portfolioHandler.GetHistory)
	portfolio.GET("/performance", portfolioHandler.GetPerformance)
	portfolio.GET("/holdings", portfolioHandler.GetHoldings)
	portfolio.PUT("/holdings", portfolioHandler.UpdateHoldings)

	// Pipeline routes (authenticated with a static API key)
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuth(cfg.PipelineAPIKey))
	pipeline.POST("/portfolio/daily", portfolioHandler.RecordDaily)

	// Savings routes
	savings := v1.Group("/savings")
	savings.GET("/config", savingsHandler.GetConfig)
	savings.PUT("/config", savingsHandler.UpdateConfig)
	savings.POST("/calculate", savingsHandler.Calculate)
	savings.GET("/history", savingsHandler.GetHistory)
	savings.GET("/expenses", savingsHandler.GetFixedExpenses)
	savings.POST("/expenses", savingsHandler.AddFixedExpense)
	savings.PUT("/expenses/:id", savingsHandler.UpdateFixedExpense)
	savings.DELETE("/expenses/:id", savingsHandler.DeleteFixedExpense)

	// Condo routes
	condo := v1.Group("/condo")
	condo.GET("/config", condoHandler.GetConfig)
	condo.PUT("/config", condoHandler.UpdateConfig)
	condo.GET("/months", condoHandler.GetMonths)
	condo.POST("/months", condoHandler.SaveMonth)
	condo.GET("/taxes", condoHandler.GetTaxSchedule)
	condo.POST("/taxes/:year/:installment/pay", condoHandler.MarkInstallmentPaid)
	condo.GET("/summary", condoHandler.GetSummary)

	log.Infof("Starting fintrack server on port %s", cfg.Port)
	return router.Run(":" + cfg.Port)
}
