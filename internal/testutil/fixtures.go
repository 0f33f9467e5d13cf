package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// D parses a decimal literal, failing the test on bad input.
func D(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", value, err)
	}
	return d
}

// Date builds a UTC-midnight date, the normal form for all date columns.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestPeriod creates a budget period starting on the given date
// with the default budget.
func CreateTestPeriod(t *testing.T, db *gorm.DB, start time.Time) *models.BudgetPeriod {
	t.Helper()
	return CreateTestPeriodWithBudget(t, db, start, decimal.NewFromInt(500))
}

// CreateTestPeriodWithBudget creates a budget period with the given budget.
func CreateTestPeriodWithBudget(t *testing.T, db *gorm.DB, start time.Time, budget decimal.Decimal) *models.BudgetPeriod {
	t.Helper()

	period := models.NewBudgetPeriod(start, budget)
	if err := db.Create(&period).Error; err != nil {
		t.Fatalf("failed to create test period: %v", err)
	}
	return &period
}

// CreateTestEntry creates a spending entry on the given date.
func CreateTestEntry(t *testing.T, db *gorm.DB, date time.Time, item string, price string) *models.SpendingEntry {
	t.Helper()

	entry := &models.SpendingEntry{
		Date:  date,
		Item:  item,
		Price: D(t, price),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test spending entry: %v", err)
	}
	return entry
}

// CreateTestActivityDay creates an activity log row for the given date.
func CreateTestActivityDay(t *testing.T, db *gorm.DB, date time.Time, mutate func(*models.ActivityLog)) *models.ActivityLog {
	t.Helper()

	entry := &models.ActivityLog{Date: date}
	if mutate != nil {
		mutate(entry)
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test activity log: %v", err)
	}
	return entry
}

// CreateTestHolding creates an ETF holding with the given cost basis.
func CreateTestHolding(t *testing.T, db *gorm.DB, symbol string, purchaseValue string) *models.ETFHolding {
	t.Helper()

	holding := &models.ETFHolding{
		Symbol:        symbol,
		PurchaseValue: D(t, purchaseValue),
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// CreateTestFixedExpense creates a fixed expense with a unique name.
func CreateTestFixedExpense(t *testing.T, db *gorm.DB, amount string, half int) *models.FixedExpense {
	t.Helper()

	expense := &models.FixedExpense{
		Name:          fmt.Sprintf("Expense %d", nextID()),
		Amount:        D(t, amount),
		PayPeriodHalf: half,
		IsCustom:      true,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test fixed expense: %v", err)
	}
	return expense
}

// CreateTestInstallment creates a property tax installment due on the
// given date.
func CreateTestInstallment(t *testing.T, db *gorm.DB, year, installment int, due time.Time, amount string) *models.PropertyTaxInstallment {
	t.Helper()

	inst := &models.PropertyTaxInstallment{
		Year:        year,
		Installment: installment,
		Amount:      D(t, amount),
		DueDate:     due,
	}
	if err := db.Create(inst).Error; err != nil {
		t.Fatalf("failed to create test installment: %v", err)
	}
	return inst
}
