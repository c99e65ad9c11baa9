package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hazina/internal/handlers"
	"hazina/internal/logger"
	"hazina/internal/middleware"
	"hazina/internal/models"
	"hazina/internal/services"
	"hazina/internal/validator"
)

// maintenanceKey guards the maintenance routes in the test stack.
const maintenanceKey = "test-maintenance-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Profile{},
		&models.BudgetCategory{},
		&models.Transaction{},
		&models.SavingsGoal{},
		&models.IPPAccount{},
		&models.Asset{},
		&models.Investment{},
		&models.AdditionalIncome{},
		&models.MonthlySnapshot{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
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

	// Handlers
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

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Maintenance routes
	maintenance := v1.Group("/maintenance")
	maintenance.Use(middleware.MaintenanceAuthMiddleware(maintenanceKey))
	maintenance.POST("/snapshots/refresh", analyticsHandler.RefreshAllSnapshots)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.Me)

	profile := protected.Group("/profile")
	profile.POST("", profileHandler.CreateProfile)
	profile.GET("", profileHandler.GetProfile)
	profile.PUT("", profileHandler.UpdateProfile)
	profile.POST("/regenerate", profileHandler.RegenerateBudget)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.POST("/:id/contribute", goalHandler.AddContribution)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	ipp := protected.Group("/ipp")
	ipp.GET("", ippHandler.GetAccount)
	ipp.POST("", ippHandler.CreateAccount)
	ipp.PUT("/contribution", ippHandler.UpdateContribution)
	ipp.POST("/contributions", ippHandler.LogContribution)
	ipp.GET("/summary", ippHandler.GetSummary)

	assets := protected.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.GetAssets)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.AddInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/portfolio", investmentHandler.GetPortfolio)
	investments.PUT("/:id/price", investmentHandler.UpdatePrice)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	income := protected.Group("/income")
	income.POST("", incomeHandler.CreateIncome)
	income.GET("", incomeHandler.GetIncome)
	income.DELETE("/:id", incomeHandler.DeleteIncome)
	income.POST("/:id/restore", incomeHandler.RestoreIncome)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("", dashboardHandler.GetDashboard)
	dashboard.GET("/net-worth", dashboardHandler.GetNetWorth)
	dashboard.GET("/budget", dashboardHandler.GetBudgetVsActual)
	dashboard.GET("/savings", dashboardHandler.GetSavingsProgress)
	dashboard.GET("/recent", dashboardHandler.GetRecentTransactions)

	analytics := protected.Group("/analytics")
	analytics.GET("/snapshots", analyticsHandler.GetSnapshots)
	analytics.GET("/snapshots/all", analyticsHandler.GetAllSnapshots)
	analytics.POST("/snapshots/refresh", analyticsHandler.RefreshSnapshot)
	analytics.POST("/snapshots/:month", analyticsHandler.EnsureSnapshot)

	backup := protected.Group("/backup")
	backup.GET("/export", backupHandler.Export)
	backup.POST("/import", backupHandler.Import)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// maintenanceRequest makes a request authenticated with the maintenance API key.
func (app *testApp) maintenanceRequest(method, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// onboardUser registers a user and creates their financial profile.
func (app *testApp) onboardUser(t *testing.T, email string, income float64, dependents int) (token, userID string) {
	t.Helper()
	token, _, userID = app.registerUser(t, email, "password123")
	body := fmt.Sprintf(`{"name":"Test Family","monthly_income":%g,"dependents":%d}`, income, dependents)
	rec := app.request("POST", "/api/v1/profile", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("profile creation failed: %d %s", rec.Code, rec.Body.String())
	}
	return token, userID
}
