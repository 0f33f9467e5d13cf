package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

func setupDashboardRouter(handler *DashboardHandler) *gin.Engine {
	r := gin.New()
	r.GET("/dashboard", handler.GetDashboard)
	return r
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	t.Run("composes all sections", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			summaryFn: func(today time.Time) (*services.BudgetSummary, error) {
				p := models.NewBudgetPeriod(today, decimal.NewFromInt(500))
				return &services.BudgetSummary{
					Period:          p,
					TotalSpent:      decimal.RequireFromString("50.00"),
					RemainingBudget: decimal.RequireFromString("450.00"),
					DaysLeft:        10,
					DailySpendLimit: decimal.RequireFromString("45.00"),
				}, nil
			},
		}
		spendingSvc := &mockSpendingService{
			totalForDateFn: func(time.Time) (decimal.Decimal, error) {
				return decimal.RequireFromString("12.00"), nil
			},
		}
		activitySvc := &mockActivityService{
			getDayFn: func(date time.Time) (*models.ActivityLog, error) {
				return &models.ActivityLog{Date: date, Gym: true}, nil
			},
		}
		portfolioSvc := &mockPortfolioService{}

		handler := NewDashboardHandler(budgetSvc, spendingSvc, activitySvc, portfolioSvc, time.UTC)
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		result := parseJSON(t, rec)
		budget := result["budget"].(map[string]interface{})
		if budget["days_left"].(float64) != 10 {
			t.Errorf("expected 10 days left, got %v", budget["days_left"])
		}
		spending := result["spending"].(map[string]interface{})
		if spending["total"] != "12.00" {
			t.Errorf("expected today's total 12.00, got %v", spending["total"])
		}
		activity := result["activity"].(map[string]interface{})
		if activity["gym"].(bool) != true {
			t.Errorf("expected gym true, got %v", activity["gym"])
		}
		if _, ok := result["portfolio"]; !ok {
			t.Error("expected a portfolio section")
		}
	})

	t.Run("tolerates a day with no activity", func(t *testing.T) {
		activitySvc := &mockActivityService{
			getDayFn: func(time.Time) (*models.ActivityLog, error) {
				return nil, apperrors.ErrActivityNotFound
			},
		}
		handler := NewDashboardHandler(&mockBudgetService{}, &mockSpendingService{}, activitySvc, &mockPortfolioService{}, time.UTC)
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["activity"] != nil {
			t.Errorf("expected null activity, got %v", result["activity"])
		}
	})

	t.Run("propagates budget errors", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			summaryFn: func(time.Time) (*services.BudgetSummary, error) {
				return nil, apperrors.ErrInternalServer
			},
		}
		handler := NewDashboardHandler(budgetSvc, &mockSpendingService{}, &mockActivityService{}, &mockPortfolioService{}, time.UTC)
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}
