package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fintrack/internal/dates"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// SpendingHandler handles spending-log requests.
type SpendingHandler struct {
	spendingService services.SpendingServicer
	loc             *time.Location
}

// NewSpendingHandler creates a new SpendingHandler.
func NewSpendingHandler(spendingService services.SpendingServicer, loc *time.Location) *SpendingHandler {
	return &SpendingHandler{spendingService: spendingService, loc: loc}
}

// AddEntryRequest represents the request payload for logging a purchase.
// Date is optional and defaults to today.
type AddEntryRequest struct {
	Date  string          `json:"date" binding:"omitempty"`
	Item  string          `json:"item" binding:"required,min=1,max=200"`
	Price decimal.Decimal `json:"price" binding:"required,positive_amount"`
}

// AddEntry logs a purchase.
func (h *SpendingHandler) AddEntry(c *gin.Context) {
	var req AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	day := dates.Today(h.loc)
	if req.Date != "" {
		parsed, err := parseDate(req.Date, "date")
		if err != nil {
			respondWithError(c, err)
			return
		}
		day = parsed
	}

	entry, err := h.spendingService.AddEntry(day, req.Item, req.Price)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// DeleteEntry removes a logged purchase.
func (h *SpendingHandler) DeleteEntry(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.spendingService.DeleteEntry(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}

// ListEntries lists purchases. With start and end query parameters it
// returns a paginated range; otherwise it returns one day (default today)
// with that day's total.
func (h *SpendingHandler) ListEntries(c *gin.Context) {
	if c.Query("start") != "" || c.Query("end") != "" {
		h.listRange(c)
		return
	}

	day, err := parseDateQuery(c, "date", dates.Today(h.loc))
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.spendingService.ListForDate(day)
	if err != nil {
		respondWithError(c, err)
		return
	}
	total, err := h.spendingService.TotalForDate(day)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    day.Format(dates.Format),
		"entries": entries,
		"total":   total,
	})
}

func (h *SpendingHandler) listRange(c *gin.Context) {
	start, err := parseDate(c.Query("start"), "start")
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseDate(c.Query("end"), "end")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if end.Before(start) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "end must not be before start"))
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.spendingService.ListBetween(start, end, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
