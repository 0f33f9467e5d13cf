package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fintrack/internal/dates"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// SavingsHandler handles savings allocator requests.
type SavingsHandler struct {
	savingsService services.SavingsServicer
	loc            *time.Location
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(savingsService services.SavingsServicer, loc *time.Location) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService, loc: loc}
}

// UpdateSavingsConfigRequest represents the request payload for the
// allocation configuration. The three percentages must sum to 100.
type UpdateSavingsConfigRequest struct {
	SavingsPercentage      decimal.Decimal `json:"savings_percentage" binding:"required,percentage"`
	InvestorlinePercentage decimal.Decimal `json:"investorline_percentage" binding:"required,percentage"`
	USDPercentage          decimal.Decimal `json:"usd_percentage" binding:"required,percentage"`
	BiweeklyIncome         decimal.Decimal `json:"biweekly_income" binding:"required,positive_amount"`
	PayPeriodHalf          int             `json:"pay_period_half" binding:"required,pay_period_half"`
}

// AddFixedExpenseRequest represents the request payload for a new fixed
// expense.
type AddFixedExpenseRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=100"`
	Amount        decimal.Decimal `json:"amount" binding:"required,positive_amount"`
	PayPeriodHalf int             `json:"pay_period_half" binding:"required,pay_period_half"`
}

// UpdateFixedExpenseRequest represents the request payload for
// re-pricing a fixed expense.
type UpdateFixedExpenseRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,positive_amount"`
}

// GetConfig returns the allocation configuration.
func (h *SavingsHandler) GetConfig(c *gin.Context) {
	cfg, err := h.savingsService.GetConfig()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

// UpdateConfig replaces the allocation configuration.
func (h *SavingsHandler) UpdateConfig(c *gin.Context) {
	var req UpdateSavingsConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cfg, err := h.savingsService.UpdateConfig(
		req.SavingsPercentage, req.InvestorlinePercentage, req.USDPercentage,
		req.BiweeklyIncome, req.PayPeriodHalf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

// Calculate runs the allocator for the current budget period and
// persists the result.
func (h *SavingsHandler) Calculate(c *gin.Context) {
	calc, err := h.savingsService.Calculate(dates.Today(h.loc))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"calculation": calc})
}

// GetHistory returns past allocator runs, newest first.
func (h *SavingsHandler) GetHistory(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.savingsService.ListCalculations(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetFixedExpenses lists fixed expenses, optionally filtered by pay
// period half.
func (h *SavingsHandler) GetFixedExpenses(c *gin.Context) {
	var half *int
	if v := c.Query("half"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || (n != 1 && n != 2) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "half must be 1 or 2"))
			return
		}
		half = &n
	}

	expenses, err := h.savingsService.FixedExpenses(half)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// AddFixedExpense creates a custom fixed expense.
func (h *SavingsHandler) AddFixedExpense(c *gin.Context) {
	var req AddFixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.savingsService.AddFixedExpense(req.Name, req.Amount, req.PayPeriodHalf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// UpdateFixedExpense re-prices a fixed expense.
func (h *SavingsHandler) UpdateFixedExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateFixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.savingsService.UpdateFixedExpense(id, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteFixedExpense removes a custom fixed expense.
func (h *SavingsHandler) DeleteFixedExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.savingsService.DeleteFixedExpense(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
