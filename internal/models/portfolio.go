package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioEntry is one day's recorded portfolio snapshot: the market
// value of each ETF component, their sum, and the day-over-day delta.
// At most one entry per date; re-recording a date overwrites it.
type PortfolioEntry struct {
	Base
	Date        time.Time       `gorm:"type:date;not null;uniqueIndex" json:"date"`
	TotalValue  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_value"`
	NasdaqValue decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"nasdaq_value"`
	BTCCValue   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"btcc_value"`
	ZSPValue    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"zsp_value"`
	TradeCash   decimal.Decimal `gorm:"type:decimal(12,2)" json:"trade_cash"`
	Difference  decimal.Decimal `gorm:"type:decimal(12,2)" json:"difference"`
}

// ETFHolding stores the amount invested into one ETF position. The sum
// of purchase values across holdings is the cost basis used for
// profit/loss reporting.
type ETFHolding struct {
	Base
	Symbol        string          `gorm:"not null;uniqueIndex" json:"symbol"`
	PurchaseValue decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"purchase_value"`
}
