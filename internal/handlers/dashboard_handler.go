package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/dates"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// DashboardHandler composes the landing-page view: the current budget
// window, today's spending, today's activity, and the portfolio status.
type DashboardHandler struct {
	budgetService    services.BudgetServicer
	spendingService  services.SpendingServicer
	activityService  services.ActivityServicer
	portfolioService services.PortfolioServicer
	loc              *time.Location
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(
	budgetService services.BudgetServicer,
	spendingService services.SpendingServicer,
	activityService services.ActivityServicer,
	portfolioService services.PortfolioServicer,
	loc *time.Location,
) *DashboardHandler {
	return &DashboardHandler{
		budgetService:    budgetService,
		spendingService:  spendingService,
		activityService:  activityService,
		portfolioService: portfolioService,
		loc:              loc,
	}
}

// GetDashboard returns the composed landing-page payload.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	today := dates.Today(h.loc)

	summary, err := h.budgetService.GetSummary(today)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.spendingService.ListForDate(today)
	if err != nil {
		respondWithError(c, err)
		return
	}
	todayTotal, err := h.spendingService.TotalForDate(today)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// A day with no activity logged yet is normal, not an error.
	activity, err := h.activityService.GetDay(today)
	if err != nil && !isNotFound(err) {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.portfolioService.Status()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":      today.Format(dates.Format),
		"budget":    summary,
		"spending":  gin.H{"entries": entries, "total": todayTotal},
		"activity":  activity,
		"portfolio": portfolio,
	})
}

func isNotFound(err error) bool {
	appErr, ok := err.(*apperrors.AppError)
	return ok && appErr.StatusCode == http.StatusNotFound
}
