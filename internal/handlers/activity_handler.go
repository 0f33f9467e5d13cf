package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/dates"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// ActivityHandler handles daily habit log requests.
type ActivityHandler struct {
	activityService services.ActivityServicer
	loc             *time.Location
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService services.ActivityServicer, loc *time.Location) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, loc: loc}
}

// SaveDayRequest represents the request payload for logging a day's
// activities. Date is optional and defaults to today; saving the same
// date twice replaces the earlier record.
type SaveDayRequest struct {
	Date          string `json:"date" binding:"omitempty"`
	Gym           bool   `json:"gym"`
	JiuJitsu      bool   `json:"jiu_jitsu"`
	Skateboarding bool   `json:"skateboarding"`
	Work          bool   `json:"work"`
	Coitus        bool   `json:"coitus"`
	Sauna         bool   `json:"sauna"`
	Supplements   bool   `json:"supplements"`
	Notes         string `json:"notes" binding:"omitempty,max=1000"`
}

// SaveDay upserts the activity record for a date.
func (h *ActivityHandler) SaveDay(c *gin.Context) {
	var req SaveDayRequest
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

	entry, err := h.activityService.SaveDay(models.ActivityLog{
		Date:          day,
		Gym:           req.Gym,
		JiuJitsu:      req.JiuJitsu,
		Skateboarding: req.Skateboarding,
		Work:          req.Work,
		Coitus:        req.Coitus,
		Sauna:         req.Sauna,
		Supplements:   req.Supplements,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": entry})
}

// GetDay returns the activity record for one date (default today).
func (h *ActivityHandler) GetDay(c *gin.Context) {
	day, err := parseDateQuery(c, "date", dates.Today(h.loc))
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.activityService.GetDay(day)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": entry})
}

// GetRecent returns the latest logged days.
func (h *ActivityHandler) GetRecent(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit", 14)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.activityService.Recent(limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": entries})
}

// GetRange returns logged days inside an inclusive date range.
func (h *ActivityHandler) GetRange(c *gin.Context) {
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

	entries, err := h.activityService.Range(start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": entries})
}

// GetStats returns trailing-30-day counts plus all-time percentages.
func (h *ActivityHandler) GetStats(c *gin.Context) {
	stats, err := h.activityService.Stats(dates.Today(h.loc))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
