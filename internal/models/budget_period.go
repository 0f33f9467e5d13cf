package models

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/dates"
)

// PeriodLengthDays is the length of a biweekly budget window.
const PeriodLengthDays = 14

// BudgetPeriod represents a fixed 14-day budget window. Periods are
// created lazily the first time a request needs the window covering
// "today"; the unique start_date constraint keeps concurrent find-or-create
// sequences from producing duplicates.
type BudgetPeriod struct {
	Base
	StartDate    time.Time       `gorm:"type:date;not null;uniqueIndex" json:"start_date"`
	EndDate      time.Time       `gorm:"type:date;not null" json:"end_date"`
	BudgetAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"budget_amount"`
	IsCurrent    bool            `gorm:"default:true" json:"is_current"`
}

// NewBudgetPeriod returns the biweekly period starting on the given day.
func NewBudgetPeriod(start time.Time, budgetAmount decimal.Decimal) BudgetPeriod {
	return BudgetPeriod{
		StartDate:    start,
		EndDate:      dates.AddDays(start, PeriodLengthDays-1),
		BudgetAmount: budgetAmount,
		IsCurrent:    true,
	}
}

// Contains reports whether day falls inside the period's inclusive
// [start_date, end_date] window.
func (p *BudgetPeriod) Contains(day time.Time) bool {
	return !day.Before(p.StartDate) && !day.After(p.EndDate)
}

// DaysLeft returns the number of spending days remaining in the period.
// The end date itself is excluded: it is the next payday, not a spending
// day, so a period ending today has zero days left.
func (p *BudgetPeriod) DaysLeft(today time.Time) int {
	return dates.DaysBetween(today, p.EndDate)
}

// DailySpendLimit returns the remaining budget divided by the remaining
// days. The numerator is deliberately not clamped at zero: a negative
// limit signals how far over budget the period is, per remaining day.
func (p *BudgetPeriod) DailySpendLimit(totalSpent decimal.Decimal, today time.Time) decimal.Decimal {
	days := p.DaysLeft(today)
	if days < 1 {
		days = 1
	}
	remaining := p.BudgetAmount.Sub(totalSpent)
	return remaining.Div(decimal.NewFromInt(int64(days))).Round(2)
}

// PayPeriodHalf returns 1 when the period starts in the first half of
// the month and 2 otherwise. Fixed expenses are keyed by this value.
func (p *BudgetPeriod) PayPeriodHalf() int {
	if p.StartDate.Day() <= 15 {
		return 1
	}
	return 2
}
