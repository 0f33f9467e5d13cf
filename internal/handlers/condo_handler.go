package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fintrack/internal/dates"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// CondoHandler handles rental condo bookkeeping requests.
type CondoHandler struct {
	condoService services.CondoServicer
	loc          *time.Location
}

// NewCondoHandler creates a new CondoHandler.
func NewCondoHandler(condoService services.CondoServicer, loc *time.Location) *CondoHandler {
	return &CondoHandler{condoService: condoService, loc: loc}
}

// UpdateCondoConfigRequest represents the request payload for the condo
// cost configuration.
type UpdateCondoConfigRequest struct {
	Mortgage    decimal.Decimal `json:"mortgage" binding:"required,positive_amount"`
	CondoFee    decimal.Decimal `json:"condo_fee" binding:"required,positive_amount"`
	PropertyTax decimal.Decimal `json:"property_tax" binding:"required,positive_amount"`
	RentAmount  decimal.Decimal `json:"rent_amount" binding:"required,positive_amount"`
}

// SaveMonthRequest represents one month of rental bookkeeping. Saving an
// already-tracked month replaces its figures.
type SaveMonthRequest struct {
	Year             int             `json:"year" binding:"required,min=2000,max=2100"`
	Month            int             `json:"month" binding:"required,month"`
	TenantPaid       decimal.Decimal `json:"tenant_paid"`
	TenantPaidDate   string          `json:"tenant_paid_date" binding:"omitempty"`
	EnwinBill        decimal.Decimal `json:"enwin_bill"`
	EnbridgeBill     decimal.Decimal `json:"enbridge_bill"`
	WhoPaidUtilities string          `json:"who_paid_utilities" binding:"omitempty,who_paid"`
	UtilitiesPaid    bool            `json:"utilities_paid"`
}

// MarkInstallmentPaidRequest records a property tax payment. PaidDate is
// optional and defaults to today.
type MarkInstallmentPaidRequest struct {
	PaidDate string `json:"paid_date" binding:"omitempty"`
}

// GetConfig returns the condo cost configuration.
func (h *CondoHandler) GetConfig(c *gin.Context) {
	cfg, err := h.condoService.GetConfig()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

// UpdateConfig replaces the condo cost configuration.
func (h *CondoHandler) UpdateConfig(c *gin.Context) {
	var req UpdateCondoConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cfg, err := h.condoService.UpdateConfig(req.Mortgage, req.CondoFee, req.PropertyTax, req.RentAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

// GetMonths returns the tracked months of a year (default this year).
func (h *CondoHandler) GetMonths(c *gin.Context) {
	year, err := h.parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months, err := h.condoService.Months(year)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "months": months})
}

// SaveMonth records one month of bookkeeping.
func (h *CondoHandler) SaveMonth(c *gin.Context) {
	var req SaveMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	month := models.CondoMonth{
		Year:             req.Year,
		Month:            req.Month,
		TenantPaid:       req.TenantPaid,
		EnwinBill:        req.EnwinBill,
		EnbridgeBill:     req.EnbridgeBill,
		WhoPaidUtilities: req.WhoPaidUtilities,
		UtilitiesPaid:    req.UtilitiesPaid,
	}
	if req.TenantPaidDate != "" {
		paid, err := parseDate(req.TenantPaidDate, "tenant_paid_date")
		if err != nil {
			respondWithError(c, err)
			return
		}
		month.TenantPaidDate = &paid
	}

	saved, err := h.condoService.SaveMonth(month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": saved})
}

// GetTaxSchedule returns the property tax installments of a year.
func (h *CondoHandler) GetTaxSchedule(c *gin.Context) {
	year, err := h.parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	schedule, err := h.condoService.TaxSchedule(year)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "installments": schedule})
}

// MarkInstallmentPaid records a property tax payment.
func (h *CondoHandler) MarkInstallmentPaid(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
		return
	}
	installment, err := strconv.Atoi(c.Param("installment"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid installment"))
		return
	}

	// The body is optional; an empty POST pays the installment today.
	var req MarkInstallmentPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	paidDate := dates.Today(h.loc)
	if req.PaidDate != "" {
		parsed, err := parseDate(req.PaidDate, "paid_date")
		if err != nil {
			respondWithError(c, err)
			return
		}
		paidDate = parsed
	}

	inst, err := h.condoService.MarkInstallmentPaid(year, installment, paidDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"installment": inst})
}

// GetSummary aggregates a year of rental cash flow.
func (h *CondoHandler) GetSummary(c *gin.Context) {
	year, err := h.parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.condoService.Summary(year)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (h *CondoHandler) parseYear(c *gin.Context) (int, error) {
	v := c.Query("year")
	if v == "" {
		return dates.Today(h.loc).Year(), nil
	}
	year, err := strconv.Atoi(v)
	if err != nil || year < 2000 || year > 2100 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "year must be a four-digit year")
	}
	return year, nil
}
