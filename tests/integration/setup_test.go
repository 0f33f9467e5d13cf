package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

// pipelineKey is the API key the test router expects on pipeline routes.
const pipelineKey = "test-pipeline-key"

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
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.BudgetPeriod{},
		&models.SpendingEntry{},
		&models.ActivityLog{},
		&models.PortfolioEntry{},
		&models.ETFHolding{},
		&models.SavingsConfig{},
		&models.SavingsCalculation{},
		&models.FixedExpense{},
		&models.CondoConfig{},
		&models.CondoMonth{},
		&models.PropertyTaxInstallment{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	// Mirror the seed migration: the holding set is fixed up front.
	for _, symbol := range []string{"NAS", "BTCC", "ZSP"} {
		holding := models.ETFHolding{Symbol: symbol, PurchaseValue: decimal.Zero}
		if err := db.Create(&holding).Error; err != nil {
			t.Fatalf("failed to seed holding %s: %v", symbol, err)
		}
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	loc := time.UTC

	// Services
	budgetService := services.NewBudgetService(db, decimal.NewFromInt(500))
	spendingService := services.NewSpendingService(db)
	analyticsService := services.NewAnalyticsService(db)
	activityService := services.NewActivityService(db)
	portfolioService := services.NewPortfolioService(db)
	savingsService := services.NewSavingsService(db, budgetService)
	condoService := services.NewCondoService(db)

	// Handlers
	budgetHandler := handlers.NewBudgetHandler(budgetService, loc)
	spendingHandler := handlers.NewSpendingHandler(spendingService, loc)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, loc)
	activityHandler := handlers.NewActivityHandler(activityService, loc)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, loc)
	savingsHandler := handlers.NewSavingsHandler(savingsService, loc)
	condoHandler := handlers.NewCondoHandler(condoService, loc)
	dashboardHandler := handlers.NewDashboardHandler(budgetService, spendingService, activityService, portfolioService, loc)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	v1.GET("/dashboard", dashboardHandler.GetDashboard)

	budget := v1.Group("/budget")
	budget.GET("/current", budgetHandler.GetCurrent)
	budget.PUT("/current", budgetHandler.UpdateCurrent)

	spending := v1.Group("/spending")
	spending.POST("", spendingHandler.AddEntry)
	spending.GET("", spendingHandler.ListEntries)
	spending.DELETE("/:id", spendingHandler.DeleteEntry)

	analytics := v1.Group("/analytics")
	analytics.GET("/summary", analyticsHandler.GetSummary)
	analytics.GET("/categories", analyticsHandler.GetCategoryBreakdown)
	analytics.GET("/top-items", analyticsHandler.GetTopItems)
	analytics.GET("/weekly", analyticsHandler.GetWeeklyTrends)
	analytics.GET("/daily", analyticsHandler.GetDailySeries)
	analytics.GET("/category-trends", analyticsHandler.GetCategoryTrends)
	analytics.GET("/weekly-averages", analyticsHandler.GetWeeklyAverages)

	activity := v1.Group("/activity")
	activity.POST("", activityHandler.SaveDay)
	activity.GET("", activityHandler.GetDay)
	activity.GET("/recent", activityHandler.GetRecent)
	activity.GET("/range", activityHandler.GetRange)
	activity.GET("/stats", activityHandler.GetStats)

	portfolio := v1.Group("/portfolio")
	portfolio.GET("/status", portfolioHandler.GetStatus)
	portfolio.GET("/history", portfolioHandler.GetHistory)
	portfolio.GET("/performance", portfolioHandler.GetPerformance)
	portfolio.GET("/holdings", portfolioHandler.GetHoldings)
	portfolio.PUT("/holdings", portfolioHandler.UpdateHoldings)

	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuth(pipelineKey))
	pipeline.POST("/portfolio/daily", portfolioHandler.RecordDaily)

	savings := v1.Group("/savings")
	savings.GET("/config", savingsHandler.GetConfig)
	savings.PUT("/config", savingsHandler.UpdateConfig)
	savings.POST("/calculate", savingsHandler.Calculate)
	savings.GET("/history", savingsHandler.GetHistory)
	savings.GET("/expenses", savingsHandler.GetFixedExpenses)
	savings.POST("/expenses", savingsHandler.AddFixedExpense)
	savings.PUT("/expenses/:id", savingsHandler.UpdateFixedExpense)
	savings.DELETE("/expenses/:id", savingsHandler.DeleteFixedExpense)

	condo := v1.Group("/condo")
	condo.GET("/config", condoHandler.GetConfig)
	condo.PUT("/config", condoHandler.UpdateConfig)
	condo.GET("/months", condoHandler.GetMonths)
	condo.POST("/months", condoHandler.SaveMonth)
	condo.GET("/taxes", condoHandler.GetTaxSchedule)
	condo.POST("/taxes/:year/:installment/pay", condoHandler.MarkInstallmentPaid)
	condo.GET("/summary", condoHandler.GetSummary)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
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

// assertAmount compares a decimal JSON string against an expected value
// numerically, so "25.5" and "25.50" are treated as equal.
func assertAmount(t *testing.T, got interface{}, want, field string) {
	t.Helper()
	str, ok := got.(string)
	if !ok {
		t.Fatalf("%s: expected decimal string, got %T (%v)", field, got, got)
	}
	gotDec, err := decimal.NewFromString(str)
	if err != nil {
		t.Fatalf("%s: invalid decimal %q: %v", field, str, err)
	}
	wantDec := decimal.RequireFromString(want)
	if !gotDec.Equal(wantDec) {
		t.Errorf("%s = %s, want %s", field, gotDec, wantDec)
	}
}
