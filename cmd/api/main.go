package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/moolahfactory/moolah/internal/config"
	"github.com/moolahfactory/moolah/internal/database"
	"github.com/moolahfactory/moolah/internal/handlers"
	"github.com/moolahfactory/moolah/internal/logger"
	"github.com/moolahfactory/moolah/internal/middleware"
	"github.com/moolahfactory/moolah/internal/services"
	"github.com/moolahfactory/moolah/internal/validator"
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
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db)
	goalService := services.NewGoalService(db)
	categoryService := services.NewCategoryService(db)
	budgetService := services.NewBudgetService(db)
	rewardService := services.NewRewardService(db)
	summaryService := services.NewSummaryService(db)
	whatsAppService := services.NewWhatsAppService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	goalHandler := handlers.NewGoalHandler(goalService, rewardService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	rewardHandler := handlers.NewRewardHandler(rewardService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	whatsAppHandler := handlers.NewWhatsAppHandler(whatsAppService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

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

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	v1.GET("/config", whatsAppHandler.GetConfig)
	v1.POST("/webhooks/whatsapp", whatsAppHandler.ReceiveWebhook)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetUserGoals)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.PATCH("/:id/complete", goalHandler.CompleteGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Category routes: reads for everyone, mutations admin-only
	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	adminCategories := categories.Group("")
	adminCategories.Use(middleware.RequireAdmin())
	adminCategories.POST("", categoryHandler.CreateCategory)
	adminCategories.PUT("/:id", categoryHandler.UpdateCategory)
	adminCategories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetUserBudgets)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Rewards and summaries
	protected.GET("/rewards", rewardHandler.GetProgress)
	protected.GET("/summary/monthly", summaryHandler.MonthlySummary)
	protected.GET("/summary/category", summaryHandler.CategorySummary)

	// Stored webhook messages (authenticated read)
	protected.GET("/webhooks/whatsapp/messages", whatsAppHandler.GetMessages)

	log.Infof("Starting Moolah backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
