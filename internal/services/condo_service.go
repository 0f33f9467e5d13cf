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

// condoService handles rental condo bookkeeping.
type condoService struct {
	db *gorm.DB
}

// NewCondoService creates a new CondoServicer.
func NewCondoService(db *gorm.DB) CondoServicer {
	return &condoService{db: db}
}

// GetConfig returns the condo cost configuration, creating the default
// one on first use.
func (s *condoService) GetConfig() (*models.CondoConfig, error) {
	var cfg models.CondoConfig
	err := s.db.Order("id ASC").First(&cfg).Error
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cfg = models.CondoConfig{
		Mortgage:    decimal.RequireFromString("1375.99"),
		CondoFee:    decimal.RequireFromString("427.35"),
		PropertyTax: decimal.RequireFromString("406.00"),
		RentAmount:  decimal.RequireFromString("2000.00"),
	}
	if err := s.db.Create(&cfg).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &cfg, nil
}

// UpdateConfig replaces the condo cost configuration.
func (s *condoService) UpdateConfig(mortgage, condoFee, propertyTax, rent decimal.Decimal) (*models.CondoConfig, error) {
	for _, v := range []decimal.Decimal{mortgage, condoFee, propertyTax, rent} {
		if v.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amounts cannot be negative")
		}
	}

	cfg, err := s.GetConfig()
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"mortgage":     mortgage,
		"condo_fee":    condoFee,
		"property_tax": propertyTax,
		"rent_amount":  rent,
	}
	if err := s.db.Model(cfg).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cfg.Mortgage = mortgage
	cfg.CondoFee = condoFee
	cfg.PropertyTax = propertyTax
	cfg.RentAmount = rent
	return cfg, nil
}

// Months returns the tracked months of a year in calendar order.
func (s *condoService) Months(year int) ([]models.CondoMonth, error) {
	var months []models.CondoMonth
	err := s.db.
		Where("year = ?", year).
		Order("month ASC").
		Find(&months).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return months, nil
}

// SaveMonth records one month of bookkeeping. Saving an already-tracked
// month replaces its figures.
func (s *condoService) SaveMonth(month models.CondoMonth) (*models.CondoMonth, error) {
	if month.Month < 1 || month.Month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Month must be between 1 and 12")
	}
	if month.WhoPaidUtilities == "" {
		month.WhoPaidUtilities = "Me"
	}
	if month.WhoPaidUtilities != "Me" && month.WhoPaidUtilities != "Tenant" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Utilities payer must be Me or Tenant")
	}
	if month.TenantPaid.IsNegative() || month.EnwinBill.IsNegative() || month.EnbridgeBill.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amounts cannot be negative")
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"tenant_paid", "tenant_paid_date", "enwin_bill", "enbridge_bill",
			"who_paid_utilities", "utilities_paid", "updated_at",
		}),
	}).Create(&month).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var saved models.CondoMonth
	err = s.db.
		Where("year = ? AND month = ?", month.Year, month.Month).
		First(&saved).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &saved, nil
}

// TaxSchedule returns the property tax installments of a year in
// installment order.
func (s *condoService) TaxSchedule(year int) ([]models.PropertyTaxInstallment, error) {
	var installments []models.PropertyTaxInstallment
	err := s.db.
		Where("year = ?", year).
		Order("installment ASC").
		Find(&installments).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return installments, nil
}

// MarkInstallmentPaid records a property tax payment. The installment is
// flagged late when the payment date falls after the due date.
func (s *condoService) MarkInstallmentPaid(year, installment int, paidDate time.Time) (*models.PropertyTaxInstallment, error) {
	var inst models.PropertyTaxInstallment
	err := s.db.
		Where("year = ? AND installment = ?", year, installment).
		First(&inst).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInstallmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	wasLate := paidDate.After(inst.DueDate)
	updates := map[string]interface{}{
		"paid":      true,
		"paid_date": paidDate,
		"was_late":  wasLate,
	}
	if err := s.db.Model(&inst).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	inst.Paid = true
	inst.PaidDate = &paidDate
	inst.WasLate = wasLate
	return &inst, nil
}

// Summary aggregates a year of rental cash flow. Carrying cost is
// mortgage plus condo fee; utilities count against the month only when
// paid out of pocket rather than by the tenant.
func (s *condoService) Summary(year int) (*CondoSummary, error) {
	cfg, err := s.GetConfig()
	if err != nil {
		return nil, err
	}

	months, err := s.Months(year)
	if err != nil {
		return nil, err
	}

	carrying := cfg.Mortgage.Add(cfg.CondoFee)
	summary := &CondoSummary{Year: year, Months: make([]CondoMonthSummary, 0, len(months))}
	for _, m := range months {
		utilitiesByMe := decimal.Zero
		if m.WhoPaidUtilities == "Me" {
			utilitiesByMe = m.UtilitiesTotal()
		}
		net := m.TenantPaid.Sub(carrying).Sub(utilitiesByMe)

		summary.Months = append(summary.Months, CondoMonthSummary{
			Year:            m.Year,
			Month:           m.Month,
			RentCollected:   m.TenantPaid,
			UtilitiesByMe:   utilitiesByMe,
			CarryingCost:    carrying,
			NetCashFlow:     net,
			UtilitiesUnpaid: !m.UtilitiesPaid && m.UtilitiesTotal().IsPositive(),
		})
		summary.TotalRent = summary.TotalRent.Add(m.TenantPaid)
		summary.TotalCarrying = summary.TotalCarrying.Add(carrying)
		summary.TotalNet = summary.TotalNet.Add(net)
	}
	return summary, nil
}
