package main

import (
	"fmt"
	"hazina/internal/config"
	"hazina/internal/database"
	"hazina/internal/handlers"
	"hazina/internal/logger"
	"hazina/internal/middleware"
	"hazina/internal/services"
	"hazina/internal/validator"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "hazina/internal/docs" // Import swagger docs
)

// @title           Hazina API
// @version         1.0
// @description     Hazina is a family budgeting engine for Kenyan households. It generates monthly budgets from income, tracks spending against the plan, and keeps a history of net worth snapshots.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	profileService := services.NewProfileService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db)
	goalService := services.NewGoalService(db)
	ippService := services.NewIPPService(db)
	assetService := services.NewAssetService(db)
	investmentService := services.NewInvestmentService(db)
	incomeService := services.NewIncomeService(db)
	reportService := services.NewReportService(db, incomeService)
	snapshotService := services.NewSnapshotService(db, reportService, incomeService)
	backupService := services.NewBackupService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	profileHandler := handlers.NewProfileHandler(profileService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService)
	ippHandler := handlers.NewIPPHandler(ippService)
	assetHandler := handlers.NewAssetHandler(assetService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	dashboardHandler := handlers.NewDashboardHandler(reportService, ippService, snapshotService)
	analyticsHandler := handlers.NewAnalyticsHandler(snapshotService)
	backupHandler := handlers.NewBackupHandler(backupService, auditService)

	// Schedule the snapshot refresh job so current-month snapshots stay
	// close to live figures even for users who never open the dashboard.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(appConfig.SnapshotCron, func() {
		count, err := snapshotService.RefreshAll()
		if err != nil {
			logger.Get().Errorw("Scheduled snapshot refresh failed", "error", err)
			return
		}
		logger.Get().Infow("Scheduled snapshot refresh completed", "refreshed", count)
	}); err != nil {
		return fmt.Errorf("failed to schedule snapshot refresh: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

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
	auth.POST("/refresh", authHandler.Refresh)

	// Maintenance routes, guarded by API key instead of user auth
	maintenance := v1.Group("/maintenance")
	maintenance.Use(middleware.MaintenanceAuthMiddleware(appConfig.MaintenanceAPIKey))
	maintenance.POST("/snapshots/refresh", analyticsHandler.RefreshAllSnapshots)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.Me)

	// Profile and budget generation
	profile := protected.Group("/profile")
	profile.POST("", profileHandler.CreateProfile)
	profile.GET("", profileHandler.GetProfile)
	profile.PUT("", profileHandler.UpdateProfile)
	profile.POST("/regenerate", profileHandler.RegenerateBudget)

	// Budget category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Savings goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.POST("/:id/contribute", goalHandler.AddContribution)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Pension (IPP) routes
	ipp := protected.Group("/ipp")
	ipp.GET("", ippHandler.GetAccount)
	ipp.POST("", ippHandler.CreateAccount)
	ipp.PUT("/contribution", ippHandler.UpdateContribution)
	ipp.POST("/contributions", ippHandler.LogContribution)
	ipp.GET("/summary", ippHandler.GetSummary)

	// Asset and liability routes
	assets := protected.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.GetAssets)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	// Investment routes
	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.AddInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/portfolio", investmentHandler.GetPortfolio)
	investments.PUT("/:id/price", investmentHandler.UpdatePrice)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	// Additional income routes
	income := protected.Group("/income")
	income.POST("", incomeHandler.CreateIncome)
	income.GET("", incomeHandler.GetIncome)
	income.DELETE("/:id", incomeHandler.DeleteIncome)
	income.POST("/:id/restore", incomeHandler.RestoreIncome)

	// Dashboard routes
	dashboard := protected.Group("/dashboard")
	dashboard.GET("", dashboardHandler.GetDashboard)
	dashboard.GET("/net-worth", dashboardHandler.GetNetWorth)
	dashboard.GET("/budget", dashboardHandler.GetBudgetVsActual)
	dashboard.GET("/savings", dashboardHandler.GetSavingsProgress)
	dashboard.GET("/recent", dashboardHandler.GetRecentTransactions)

	// Analytics routes
	analytics := protected.Group("/analytics")
	analytics.GET("/snapshots", analyticsHandler.GetSnapshots)
	analytics.GET("/snapshots/all", analyticsHandler.GetAllSnapshots)
	analytics.POST("/snapshots/refresh", analyticsHandler.RefreshSnapshot)
	analytics.POST("/snapshots/:month", analyticsHandler.EnsureSnapshot)

	// Backup routes
	backup := protected.Group("/backup")
	backup.GET("/export", backupHandler.Export)
	backup.POST("/import", backupHandler.Import)

	log.Infof("Starting Hazina backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
