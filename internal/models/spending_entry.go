package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SpendingEntry represents a single recorded purchase. Entries are
// immutable once created; correcting a mistake is a delete plus re-add.
// The display category is never stored: it is recomputed from the item
// text at query time, so rule changes retroactively reclassify history.
type SpendingEntry struct {
	Base
	Date  time.Time       `gorm:"type:date;not null;index" json:"date"`
	Item  string          `gorm:"not null" json:"item"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}
