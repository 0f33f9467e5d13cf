package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/dates"
	"fintrack/internal/services"
)

// AnalyticsHandler handles spending-report requests.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
	loc              *time.Location
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer, loc *time.Location) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, loc: loc}
}

// GetSummary returns spending totals over the trailing 7, 30, and 90 days.
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	totals, err := h.analyticsService.Summary(dates.Today(h.loc))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": totals})
}

// GetCategoryBreakdown returns per-category spending over a trailing window.
func (h *AnalyticsHandler) GetCategoryBreakdown(c *gin.Context) {
	days, err := parseIntQuery(c, "days", 30)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.analyticsService.CategoryBreakdown(dates.Today(h.loc), days)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "categories": breakdown})
}

// GetTopItems returns the highest-spend items over a trailing window.
func (h *AnalyticsHandler) GetTopItems(c *gin.Context) {
	days, err := parseIntQuery(c, "days", 30)
	if err != nil {
		respondWithError(c, err)
		return
	}
	limit, err := parseIntQuery(c, "limit", 10)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items, err := h.analyticsService.TopItems(dates.Today(h.loc), days, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "items": items})
}

// GetWeeklyTrends returns per-week spending totals over a trailing window.
func (h *AnalyticsHandler) GetWeeklyTrends(c *gin.Context) {
	days, err := parseIntQuery(c, "days", 90)
	if err != nil {
		respondWithError(c, err)
		return
	}

	buckets, err := h.analyticsService.WeeklyTrends(dates.Today(h.loc), days)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "weeks": buckets})
}

// GetDailySeries returns the zero-filled per-day spending series.
func (h *AnalyticsHandler) GetDailySeries(c *gin.Context) {
	days, err := parseIntQuery(c, "days", 30)
	if err != nil {
		respondWithError(c, err)
		return
	}

	series, err := h.analyticsService.DailySeries(dates.Today(h.loc), days)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "series": series})
}

// GetCategoryTrends returns per-category monthly totals.
func (h *AnalyticsHandler) GetCategoryTrends(c *gin.Context) {
	months, err := parseIntQuery(c, "months", 6)
	if err != nil {
		respondWithError(c, err)
		return
	}

	points, err := h.analyticsService.CategoryTrends(dates.Today(h.loc), months)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": months, "trends": points})
}

// GetWeeklyAverages returns the average daily spend per calendar week.
func (h *AnalyticsHandler) GetWeeklyAverages(c *gin.Context) {
	weeks, err := parseIntQuery(c, "weeks", 12)
	if err != nil {
		respondWithError(c, err)
		return
	}

	buckets, err := h.analyticsService.WeeklyAverages(dates.Today(h.loc), weeks)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeks": weeks, "averages": buckets})
}
