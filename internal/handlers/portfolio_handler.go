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

// PortfolioHandler handles portfolio snapshot and holdings requests,
// including the keyed pipeline endpoint the market-data job posts to.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
	loc              *time.Location
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer, loc *time.Location) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, loc: loc}
}

// DailyUpdateRequest represents the snapshot payload posted by the
// market-data job. Date is optional and defaults to today.
type DailyUpdateRequest struct {
	Date        string          `json:"date" binding:"omitempty"`
	NasdaqValue decimal.Decimal `json:"nasdaq_value"`
	BTCCValue   decimal.Decimal `json:"btcc_value"`
	ZSPValue    decimal.Decimal `json:"zsp_value"`
}

// UpdateHoldingsRequest represents the request payload for re-pricing
// the cost basis per ETF symbol.
type UpdateHoldingsRequest struct {
	Holdings map[string]decimal.Decimal `json:"holdings" binding:"required,min=1"`
}

// RecordDaily writes the day's portfolio snapshot. Posting the same
// date again overwrites the earlier snapshot.
func (h *PortfolioHandler) RecordDaily(c *gin.Context) {
	var req DailyUpdateRequest
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

	result, err := h.portfolioService.RecordDaily(day, req.NasdaqValue, req.BTCCValue, req.ZSPValue)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetStatus returns the latest snapshot with profit/loss.
func (h *PortfolioHandler) GetStatus(c *gin.Context) {
	status, err := h.portfolioService.Status()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// GetHistory returns the latest recorded snapshots, newest first.
func (h *PortfolioHandler) GetHistory(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit", 30)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.portfolioService.History(limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// GetPerformance returns the trailing snapshot series with profit/loss
// percentages.
func (h *PortfolioHandler) GetPerformance(c *gin.Context) {
	months, err := parseIntQuery(c, "months", 6)
	if err != nil {
		respondWithError(c, err)
		return
	}

	points, err := h.portfolioService.Performance(dates.Today(h.loc), months)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": months, "performance": points})
}

// GetHoldings returns the ETF holdings making up the cost basis.
func (h *PortfolioHandler) GetHoldings(c *gin.Context) {
	holdings, err := h.portfolioService.Holdings()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"holdings": holdings})
}

// UpdateHoldings re-prices the cost basis per symbol.
func (h *PortfolioHandler) UpdateHoldings(c *gin.Context) {
	var req UpdateHoldingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holdings, err := h.portfolioService.UpdateHoldings(req.Holdings)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"holdings": holdings})
}
