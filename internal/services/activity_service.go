package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fintrack/internal/dates"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// activityService handles the daily habit log.
type activityService struct {
	db *gorm.DB
}

// NewActivityService creates a new ActivityServicer.
func NewActivityService(db *gorm.DB) ActivityServicer {
	return &activityService{db: db}
}

// SaveDay upserts the activity record for entry.Date: saving the same
// date twice replaces the flags and notes rather than adding a row.
func (s *activityService) SaveDay(entry models.ActivityLog) (*models.ActivityLog, error) {
	if entry.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date is required")
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"gym", "jiu_jitsu", "skateboarding", "work",
			"coitus", "sauna", "supplements", "notes", "updated_at",
		}),
	}).Create(&entry).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Re-read so the caller gets the canonical row after a conflict update.
	var saved models.ActivityLog
	if err := s.db.Where("date = ?", entry.Date).First(&saved).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &saved, nil
}

// GetDay returns the activity record for one date.
func (s *activityService) GetDay(date time.Time) (*models.ActivityLog, error) {
	var entry models.ActivityLog
	if err := s.db.Where("date = ?", date).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrActivityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// Recent returns the latest logged days, newest first.
func (s *activityService) Recent(limit int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	if err := s.db.Order("date DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// Range returns logged days inside the inclusive date range, oldest first.
func (s *activityService) Range(start, end time.Time) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := s.db.
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// Stats returns trailing-30-day counts plus all-time percentages: the
// share of tracked days each activity happened, rounded to one decimal.
func (s *activityService) Stats(today time.Time) (*ActivityStats, error) {
	last30, err := s.countSince(dates.AddDays(today, -30))
	if err != nil {
		return nil, err
	}
	allTime, err := s.countSince(time.Time{})
	if err != nil {
		return nil, err
	}

	trackedDays := allTime.TotalDays
	if trackedDays == 0 {
		trackedDays = 1
	}
	pct := func(count int) float64 {
		return math.Round(float64(count)/float64(trackedDays)*1000) / 10
	}

	return &ActivityStats{
		Last30:  last30,
		AllTime: allTime,
		Percentages: map[string]float64{
			"gym":           pct(allTime.Gym),
			"jiu_jitsu":     pct(allTime.JiuJitsu),
			"skateboarding": pct(allTime.Skateboarding),
			"work":          pct(allTime.Work),
			"coitus":        pct(allTime.Coitus),
			"sauna":         pct(allTime.Sauna),
			"supplements":   pct(allTime.Supplements),
		},
	}, nil
}

func (s *activityService) countSince(start time.Time) (ActivityCounts, error) {
	q := s.db.Model(&models.ActivityLog{})
	if !start.IsZero() {
		q = q.Where("date >= ?", start)
	}

	var counts ActivityCounts
	err := q.Select(
		"COALESCE(SUM(gym), 0) as gym, " +
			"COALESCE(SUM(jiu_jitsu), 0) as jiu_jitsu, " +
			"COALESCE(SUM(skateboarding), 0) as skateboarding, " +
			"COALESCE(SUM(work), 0) as work, " +
			"COALESCE(SUM(coitus), 0) as coitus, " +
			"COALESCE(SUM(sauna), 0) as sauna, " +
			"COALESCE(SUM(supplements), 0) as supplements, " +
			"COUNT(*) as total_days").
		Scan(&counts).Error
	if err != nil {
		return ActivityCounts{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return counts, nil
}
