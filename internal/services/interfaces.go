package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/category"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// BudgetSummary is the budget-window context shown at the top of the
// dashboard: the resolved period plus the derived spending metrics.
type BudgetSummary struct {
	Period          models.BudgetPeriod `json:"period"`
	TotalSpent      decimal.Decimal     `json:"total_spent"`
	RemainingBudget decimal.Decimal     `json:"remaining_budget"`
	DaysLeft        int                 `json:"days_left"`
	DailySpendLimit decimal.Decimal     `json:"daily_spend_limit"`
}

// BudgetServicer defines the contract for budget-period business logic.
type BudgetServicer interface {
	ResolveCurrentPeriod(today time.Time) (*models.BudgetPeriod, error)
	GetSummary(today time.Time) (*BudgetSummary, error)
	UpdateBudgetAmount(today time.Time, amount decimal.Decimal) (*models.BudgetPeriod, error)
}

// SpendingServicer defines the contract for the spending log.
type SpendingServicer interface {
	AddEntry(date time.Time, item string, price decimal.Decimal) (*models.SpendingEntry, error)
	DeleteEntry(id uint) error
	ListForDate(date time.Time) ([]models.SpendingEntry, error)
	ListBetween(start, end time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.SpendingEntry], error)
	TotalForDate(date time.Time) (decimal.Decimal, error)
	TotalBetween(start, end time.Time) (decimal.Decimal, error)
}

// WindowTotals holds spending sums over the trailing report windows.
type WindowTotals struct {
	Weekly    decimal.Decimal `json:"weekly_total"`
	Monthly   decimal.Decimal `json:"monthly_total"`
	Quarterly decimal.Decimal `json:"quarterly_total"`
}

// TopItem is one entry of the most-purchased-items report.
type TopItem struct {
	Item      string          `json:"item"`
	Total     decimal.Decimal `json:"total"`
	Frequency int             `json:"frequency"`
}

// TrendBucket is one time bucket of a trend series, keyed by week or month.
type TrendBucket struct {
	Bucket string          `json:"bucket"`
	Total  decimal.Decimal `json:"total"`
}

// DailyPoint is one day of the zero-filled daily spending series.
type DailyPoint struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// CategoryTrendPoint is the spend of one category in one month.
type CategoryTrendPoint struct {
	Category string          `json:"category"`
	Month    string          `json:"month"`
	Total    decimal.Decimal `json:"total"`
}

// AnalyticsServicer defines the contract for spending analytics.
type AnalyticsServicer interface {
	Summary(today time.Time) (*WindowTotals, error)
	CategoryBreakdown(today time.Time, days int) ([]category.Total, error)
	TopItems(today time.Time, days, limit int) ([]TopItem, error)
	WeeklyTrends(today time.Time, days int) ([]TrendBucket, error)
	DailySeries(today time.Time, days int) ([]DailyPoint, error)
	CategoryTrends(today time.Time, months int) ([]CategoryTrendPoint, error)
	WeeklyAverages(today time.Time, weeks int) ([]TrendBucket, error)
}

// ActivityCounts holds per-activity day counts over some window.
type ActivityCounts struct {
	Gym           int `json:"gym"`
	JiuJitsu      int `json:"jiu_jitsu"`
	Skateboarding int `json:"skateboarding"`
	Work          int `json:"work"`
	Coitus        int `json:"coitus"`
	Sauna         int `json:"sauna"`
	Supplements   int `json:"supplements"`
	TotalDays     int `json:"total_days"`
}

// ActivityStats combines the trailing-30-day counts with all-time
// percentages (share of tracked days each activity happened).
type ActivityStats struct {
	Last30      ActivityCounts     `json:"last_30"`
	AllTime     ActivityCounts     `json:"all_time"`
	Percentages map[string]float64 `json:"percentages"`
}

// ActivityServicer defines the contract for the daily habit log.
type ActivityServicer interface {
	SaveDay(entry models.ActivityLog) (*models.ActivityLog, error)
	GetDay(date time.Time) (*models.ActivityLog, error)
	Recent(limit int) ([]models.ActivityLog, error)
	Range(start, end time.Time) ([]models.ActivityLog, error)
	Stats(today time.Time) (*ActivityStats, error)
}

// DailyUpdateResult is returned to the market-data collaborator after a
// snapshot write: the computed total plus derived deltas.
type DailyUpdateResult struct {
	Date                 string          `json:"date"`
	TotalValue           decimal.Decimal `json:"total_portfolio_value"`
	ProfitLoss           decimal.Decimal `json:"profit_loss"`
	ProfitLossPercentage float64         `json:"profit_loss_percentage"`
	Difference           decimal.Decimal `json:"difference_from_yesterday"`
}

// PortfolioStatus is the latest snapshot with profit/loss against the
// invested cost basis.
type PortfolioStatus struct {
	Latest               *models.PortfolioEntry `json:"latest,omitempty"`
	TotalInvested        decimal.Decimal        `json:"total_invested"`
	ProfitLoss           decimal.Decimal        `json:"profit_loss"`
	ProfitLossPercentage float64                `json:"profit_loss_percentage"`
	HoldingCount         int                    `json:"holding_count"`
}

// PerformancePoint is one day of the portfolio performance series.
type PerformancePoint struct {
	Date                 string          `json:"date"`
	TotalMarketValue     decimal.Decimal `json:"total_market_value"`
	ProfitLossPercentage float64         `json:"profit_loss_percentage"`
}

// PortfolioServicer defines the contract for the portfolio snapshot log.
type PortfolioServicer interface {
	RecordDaily(date time.Time, nasdaq, btcc, zsp decimal.Decimal) (*DailyUpdateResult, error)
	Status() (*PortfolioStatus, error)
	History(limit int) ([]models.PortfolioEntry, error)
	Performance(today time.Time, months int) ([]PerformancePoint, error)
	Holdings() ([]models.ETFHolding, error)
	UpdateHoldings(values map[string]decimal.Decimal) ([]models.ETFHolding, error)
}

// SavingsServicer defines the contract for the savings allocator.
type SavingsServicer interface {
	GetConfig() (*models.SavingsConfig, error)
	UpdateConfig(savingsPct, investorlinePct, usdPct, income decimal.Decimal, half int) (*models.SavingsConfig, error)
	Calculate(today time.Time) (*models.SavingsCalculation, error)
	ListCalculations(page pagination.PageRequest) (*pagination.PageResponse[models.SavingsCalculation], error)
	FixedExpenses(half *int) ([]models.FixedExpense, error)
	AddFixedExpense(name string, amount decimal.Decimal, half int) (*models.FixedExpense, error)
	UpdateFixedExpense(id uint, amount decimal.Decimal) (*models.FixedExpense, error)
	DeleteFixedExpense(id uint) error
}

// CondoMonthSummary is the cash-flow picture of one rental month.
type CondoMonthSummary struct {
	Year            int             `json:"year"`
	Month           int             `json:"month"`
	RentCollected   decimal.Decimal `json:"rent_collected"`
	UtilitiesByMe   decimal.Decimal `json:"utilities_paid_by_me"`
	CarryingCost    decimal.Decimal `json:"carrying_cost"`
	NetCashFlow     decimal.Decimal `json:"net_cash_flow"`
	UtilitiesUnpaid bool            `json:"utilities_unpaid"`
}

// CondoSummary aggregates a year of rental bookkeeping.
type CondoSummary struct {
	Year          int                 `json:"year"`
	Months        []CondoMonthSummary `json:"months"`
	TotalRent     decimal.Decimal     `json:"total_rent"`
	TotalCarrying decimal.Decimal     `json:"total_carrying"`
	TotalNet      decimal.Decimal     `json:"total_net"`
}

// CondoServicer defines the contract for condo rental bookkeeping.
type CondoServicer interface {
	GetConfig() (*models.CondoConfig, error)
	UpdateConfig(mortgage, condoFee, propertyTax, rent decimal.Decimal) (*models.CondoConfig, error)
	Months(year int) ([]models.CondoMonth, error)
	SaveMonth(month models.CondoMonth) (*models.CondoMonth, error)
	TaxSchedule(year int) ([]models.PropertyTaxInstallment, error)
	MarkInstallmentPaid(year, installment int, paidDate time.Time) (*models.PropertyTaxInstallment, error)
	Summary(year int) (*CondoSummary, error)
}
