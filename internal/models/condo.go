package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CondoConfig holds the fixed monthly numbers for the rental condo.
// There is a single row, readable and updatable but never deleted.
type CondoConfig struct {
	Base
	Mortgage    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"mortgage"`
	CondoFee    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"condo_fee"`
	PropertyTax decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"property_tax"`
	RentAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"rent_amount"`
}

// CondoMonth tracks one month of rental bookkeeping: what the tenant
// paid, the two utility bills, and who covered them. One row per
// (year, month); saving again replaces the row.
type CondoMonth struct {
	Base
	Year             int             `gorm:"not null;uniqueIndex:idx_condo_month" json:"year"`
	Month            int             `gorm:"not null;uniqueIndex:idx_condo_month" json:"month"`
	TenantPaid       decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"tenant_paid"`
	TenantPaidDate   *time.Time      `gorm:"type:date" json:"tenant_paid_date,omitempty"`
	EnwinBill        decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"enwin_bill"`
	EnbridgeBill     decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"enbridge_bill"`
	WhoPaidUtilities string          `gorm:"default:Me" json:"who_paid_utilities"`
	UtilitiesPaid    bool            `gorm:"default:false" json:"utilities_paid"`
}

// UtilitiesTotal returns the combined utility bills for the month.
func (m *CondoMonth) UtilitiesTotal() decimal.Decimal {
	return m.EnwinBill.Add(m.EnbridgeBill)
}

// PropertyTaxInstallment is one scheduled property tax payment.
// Installments are numbered per year.
type PropertyTaxInstallment struct {
	Base
	Year        int             `gorm:"not null;uniqueIndex:idx_tax_installment" json:"year"`
	Installment int             `gorm:"not null;uniqueIndex:idx_tax_installment" json:"installment"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	DueDate     time.Time       `gorm:"type:date;not null" json:"due_date"`
	Paid        bool            `gorm:"default:false" json:"paid"`
	PaidDate    *time.Time      `gorm:"type:date" json:"paid_date,omitempty"`
	WasLate     bool            `gorm:"default:false" json:"was_late"`
}
