package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsConfig holds the allocation percentages and income used by the
// savings calculator. The three percentages must sum to 100; the service
// layer rejects updates that break this.
type SavingsConfig struct {
	Base
	SavingsPercentage      decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"savings_percentage"`
	InvestorlinePercentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"investorline_percentage"`
	USDPercentage          decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"usd_percentage"`
	BiweeklyIncome         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"biweekly_income"`
	PayPeriodHalf          int             `gorm:"not null;default:1" json:"pay_period_half"`
}

// SavingsCalculation is a persisted run of the savings allocator for one
// budget period: income minus period spending and fixed expenses, split
// across the three destinations by the configured percentages.
type SavingsCalculation struct {
	Base
	BiweeklyIncome         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"biweekly_income"`
	CurrentSpending        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"current_spending"`
	FixedExpenses          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"fixed_expenses"`
	TotalExpenses          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_expenses"`
	AvailableForAllocation decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"available_for_allocation"`
	SavingsAmount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"savings_amount"`
	InvestorlineAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"investorline_amount"`
	USDAmount              decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"usd_amount"`
	PayPeriodHalf          int             `gorm:"not null" json:"pay_period_half"`
	PeriodStart            time.Time       `gorm:"type:date" json:"period_start"`
	PeriodEnd              time.Time       `gorm:"type:date" json:"period_end"`
}

// FixedExpense is a recurring bill attached to one half of the monthly
// pay cycle. Seeded expenses carry IsCustom=false and cannot be deleted.
type FixedExpense struct {
	Base
	Name          string          `gorm:"not null;uniqueIndex:idx_expense_period" json:"name"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PayPeriodHalf int             `gorm:"not null;uniqueIndex:idx_expense_period" json:"pay_period_half"`
	IsCustom      bool            `gorm:"default:true" json:"is_custom"`
}
