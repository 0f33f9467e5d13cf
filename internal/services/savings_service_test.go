package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func newSavingsService(db *gorm.DB) SavingsServicer {
	return NewSavingsService(db, NewBudgetService(db, defaultBudget()))
}

func TestSavingsConfig(t *testing.T) {
	t.Run("lazily_creates_default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newSavingsService(db)

		cfg, err := svc.GetConfig()
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, "40", cfg.SavingsPercentage)
		testutil.AssertDecimalEqual(t, "35", cfg.InvestorlinePercentage)
		testutil.AssertDecimalEqual(t, "25", cfg.USDPercentage)
		testutil.AssertDecimalEqual(t, "2000", cfg.BiweeklyIncome)

		again, err := svc.GetConfig()
		testutil.AssertNoError(t, err)
		if again.ID != cfg.ID {
			t.Errorf("expected a single config row, got IDs %d and %d", cfg.ID, again.ID)
		}
	})

	t.Run("rejects_percentages_not_summing_to_100", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newSavingsService(db)

		_, err := svc.UpdateConfig(
			decimal.NewFromInt(40), decimal.NewFromInt(40), decimal.NewFromInt(30),
			decimal.NewFromInt(2000), 1)
		testutil.AssertAppError(t, err, "INVALID_ALLOCATION")
	})

	t.Run("updates_valid_allocation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newSavingsService(db)

		cfg, err := svc.UpdateConfig(
			decimal.NewFromInt(50), decimal.NewFromInt(30), decimal.NewFromInt(20),
			decimal.RequireFromString("2200.00"), 2)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, "50", cfg.SavingsPercentage)
		testutil.AssertDecimalEqual(t, "2200.00", cfg.BiweeklyIncome)
		if cfg.PayPeriodHalf != 2 {
			t.Errorf("expected half 2, got %d", cfg.PayPeriodHalf)
		}
	})
}

func TestCalculate(t *testing.T) {
	t.Run("splits_available_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newSavingsService(db)

		// Period starting on the 1st resolves to pay period half 1.
		today := testutil.Date(2025, time.July, 1)
		testutil.CreateTestEntry(t, db, today, "Groceries", "300.00")
		if err := db.Create(&models.FixedExpense{Name: "Phone Bill", Amount: decimal.RequireFromString("45.20"), PayPeriodHalf: 1}).Error; err != nil {
			t.Fatalf("failed to seed expense: %v", err)
		}
		// Wrong half, must not count.
		if err := db.Create(&models.FixedExpense{Name: "Condo Insurance", Amount: decimal.RequireFromString("37.74"), PayPeriodHalf: 2}).Error; err != nil {
			t.Fatalf("failed to seed expense: %v", err)
		}

		calc, err := svc.Calculate(today)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, "2000", calc.BiweeklyIncome)
		testutil.AssertDecimalEqual(t, "300.00", calc.CurrentSpending)
		testutil.AssertDecimalEqual(t, "45.20", calc.FixedExpenses)
		testutil.AssertDecimalEqual(t, "345.20", calc.TotalExpenses)
		testutil.AssertDecimalEqual(t, "1654.80", calc.AvailableForAllocation)
		testutil.AssertDecimalEqual(t, "661.92", calc.SavingsAmount)      // 40%
		testutil.AssertDecimalEqual(t, "579.18", calc.InvestorlineAmount) // 35%
		testutil.AssertDecimalEqual(t, "413.70", calc.USDAmount)          // 25%
		if calc.PayPeriodHalf != 1 {
			t.Errorf("expected half 1, got %d", calc.PayPeriodHalf)
		}
		if got := calc.PeriodStart.Format("2006-01-02"); got != "2025-07-01" {
			t.Errorf("expected period start 2025-07-01, got %s", got)
		}
	})

	t.Run("second_half_period_uses_second_half_expenses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newSavingsService(db)

		today := testutil.Date(2025, time.July, 18)
		if err := db.Create(&models.FixedExpense{Name: "Condo Insurance", Amount: decimal.RequireFromString("37.74"), PayPeriodHalf: 2}).Error; err != nil {
			t.Fatalf("failed to seed expense: %v", err)
		}

		calc, err := svc.Calculate(today)
		testutil.AssertNoError(t, err)
		if calc.PayPeriodHalf != 2 {
			t.Errorf("expected half 2, got %d", calc.PayPeriodHalf)
		}
		testutil.AssertDecimalEqual(t, "37.74", calc.FixedExpenses)
	})

	t.Run("persists_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newSavingsService(db)

		_, err := svc.Calculate(testutil.Date(2025, time.July, 1))
		testutil.AssertNoError(t, err)
		_, err = svc.Calculate(testutil.Date(2025, time.July, 2))
		testutil.AssertNoError(t, err)

		var count int64
		if err := db.Model(&models.SavingsCalculation{}).Count(&count).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 persisted runs, got %d", count)
		}
	})
}

func TestFixedExpenses(t *testing.T) {
	t.Run("add_and_filter_by_half", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newSavingsService(db)

		_, err := svc.AddFixedExpense("Gym", decimal.RequireFromString("14.50"), 1)
		testutil.AssertNoError(t, err)
		_, err = svc.AddFixedExpense("Insurance", decimal.RequireFromString("37.74"), 2)
		testutil.AssertNoError(t, err)

		half := 1
		expenses, err := svc.FixedExpenses(&half)
		testutil.AssertNoError(t, err)
		if len(expenses) != 1 || expenses[0].Name != "Gym" {
			t.Fatalf("expected only the half-1 expense, got %+v", expenses)
		}

		all, err := svc.FixedExpenses(nil)
		testutil.AssertNoError(t, err)
		if len(all) != 2 {
			t.Errorf("expected 2 expenses, got %d", len(all))
		}
	})

	t.Run("duplicate_name_same_half", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newSavingsService(db)

		_, err := svc.AddFixedExpense("Gym", decimal.RequireFromString("14.50"), 1)
		testutil.AssertNoError(t, err)
		_, err = svc.AddFixedExpense("Gym", decimal.RequireFromString("20.00"), 1)
		testutil.AssertAppError(t, err, "DUPLICATE_FIXED_EXPENSE")

		// Same name in the other half is fine.
		_, err = svc.AddFixedExpense("Gym", decimal.RequireFromString("20.00"), 2)
		testutil.AssertNoError(t, err)
	})

	t.Run("update_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newSavingsService(db)

		expense, err := svc.AddFixedExpense("Phone Bill", decimal.RequireFromString("45.20"), 1)
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateFixedExpense(expense.ID, decimal.RequireFromString("48.00"))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "48.00", updated.Amount)
	})

	t.Run("delete_rejects_default_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newSavingsService(db)

		seeded := models.FixedExpense{Name: "Car Insurance", Amount: decimal.RequireFromString("180.00"), PayPeriodHalf: 1, IsCustom: false}
		if err := db.Create(&seeded).Error; err != nil {
			t.Fatalf("failed to seed expense: %v", err)
		}

		err := svc.DeleteFixedExpense(seeded.ID)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("delete_custom_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newSavingsService(db)

		expense, err := svc.AddFixedExpense("One Off", decimal.NewFromInt(10), 1)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.DeleteFixedExpense(expense.ID))

		err = svc.DeleteFixedExpense(expense.ID)
		testutil.AssertAppError(t, err, "FIXED_EXPENSE_NOT_FOUND")
	})
}
