package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// budgetService handles budget-period business logic.
type budgetService struct {
	db            *gorm.DB
	defaultBudget decimal.Decimal
}

// NewBudgetService creates a new BudgetServicer. defaultBudget seeds the
// budget amount of lazily created periods.
func NewBudgetService(db *gorm.DB, defaultBudget decimal.Decimal) BudgetServicer {
	return &budgetService{db: db, defaultBudget: defaultBudget}
}

// ResolveCurrentPeriod returns the biweekly period covering today,
// creating it when none exists. Creation is idempotent: the unique
// start_date constraint turns a racing duplicate insert into a no-op,
// and the re-query returns the canonical row either way.
func (s *budgetService) ResolveCurrentPeriod(today time.Time) (*models.BudgetPeriod, error) {
	period, err := s.findCovering(today)
	if err == nil {
		return period, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	fresh := models.NewBudgetPeriod(today, s.defaultBudget)
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "start_date"}},
		DoNothing: true,
	}).Create(&fresh).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	period, err = s.findCovering(today)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Retire the is_current flag on older periods.
	if err := s.db.Model(&models.BudgetPeriod{}).
		Where("id <> ? AND is_current = ?", period.ID, true).
		Update("is_current", false).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return period, nil
}

// findCovering returns the period whose inclusive [start_date, end_date]
// window contains day. Overlapping periods should not exist, but if they
// do the one with the latest start date wins.
func (s *budgetService) findCovering(day time.Time) (*models.BudgetPeriod, error) {
	var period models.BudgetPeriod
	err := s.db.
		Where("start_date <= ? AND end_date >= ?", day, day).
		Order("start_date DESC").
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

// GetSummary resolves the current period and derives the spending
// metrics from it: total spent inside the window, remaining budget,
// days left, and the per-day spend limit.
func (s *budgetService) GetSummary(today time.Time) (*BudgetSummary, error) {
	period, err := s.ResolveCurrentPeriod(today)
	if err != nil {
		return nil, err
	}

	totalSpent, err := s.sumSpending(period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}

	return &BudgetSummary{
		Period:          *period,
		TotalSpent:      totalSpent,
		RemainingBudget: period.BudgetAmount.Sub(totalSpent),
		DaysLeft:        period.DaysLeft(today),
		DailySpendLimit: period.DailySpendLimit(totalSpent, today),
	}, nil
}

// UpdateBudgetAmount sets the budget amount of the current period.
func (s *budgetService) UpdateBudgetAmount(today time.Time, amount decimal.Decimal) (*models.BudgetPeriod, error) {
	period, err := s.ResolveCurrentPeriod(today)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(period).Update("budget_amount", amount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	period.BudgetAmount = amount
	return period, nil
}

func (s *budgetService) sumSpending(start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.Model(&models.SpendingEntry{}).
		Select("COALESCE(SUM(price), 0)").
		Where("date BETWEEN ? AND ?", start, end).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}
