package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fintrack/internal/dates"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// BudgetHandler handles budget-period requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	loc           *time.Location
}

// NewBudgetHandler creates a new BudgetHandler. loc anchors "today" for
// period resolution.
func NewBudgetHandler(budgetService services.BudgetServicer, loc *time.Location) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, loc: loc}
}

// UpdateBudgetRequest represents the request payload for changing the
// current period's budget.
type UpdateBudgetRequest struct {
	BudgetAmount decimal.Decimal `json:"budget_amount" binding:"required,positive_amount"`
}

// GetCurrent returns the budget summary for the period covering today,
// creating the period if this is the first request inside its window.
func (h *BudgetHandler) GetCurrent(c *gin.Context) {
	summary, err := h.budgetService.GetSummary(dates.Today(h.loc))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// UpdateCurrent changes the budget amount of the current period.
func (h *BudgetHandler) UpdateCurrent(c *gin.Context) {
	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	period, err := h.budgetService.UpdateBudgetAmount(dates.Today(h.loc), req.BudgetAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": period})
}
