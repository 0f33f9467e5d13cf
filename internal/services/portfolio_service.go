package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fintrack/internal/dates"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// portfolioService handles the daily portfolio snapshot log and the ETF
// holdings that make up the cost basis.
type portfolioService struct {
	db *gorm.DB
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db}
}

// RecordDaily writes the day's snapshot: component values, their sum,
// and the delta against the previous recorded day. Recording the same
// date again overwrites the earlier snapshot.
func (s *portfolioService) RecordDaily(date time.Time, nasdaq, btcc, zsp decimal.Decimal) (*DailyUpdateResult, error) {
	total := nasdaq.Add(btcc).Add(zsp)
	if !total.IsPositive() || nasdaq.IsNegative() || btcc.IsNegative() || zsp.IsNegative() {
		return nil, apperrors.ErrInvalidValues
	}

	// Day-over-day delta is measured against the latest snapshot before
	// this date, so re-recording today compares against yesterday, not
	// against the row being replaced.
	difference := decimal.Zero
	var prev models.PortfolioEntry
	err := s.db.
		Where("date < ? AND total_value > 0", date).
		Order("date DESC").
		First(&prev).Error
	switch {
	case err == nil:
		difference = total.Sub(prev.TotalValue)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entry := models.PortfolioEntry{
		Date:        date,
		TotalValue:  total,
		NasdaqValue: nasdaq,
		BTCCValue:   btcc,
		ZSPValue:    zsp,
		TradeCash:   decimal.Zero,
		Difference:  difference,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_value", "nasdaq_value", "btcc_value", "zsp_value",
			"trade_cash", "difference", "updated_at",
		}),
	}).Create(&entry).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	invested, err := s.totalInvested()
	if err != nil {
		return nil, err
	}
	profitLoss := total.Sub(invested)

	return &DailyUpdateResult{
		Date:                 date.Format(dates.Format),
		TotalValue:           total,
		ProfitLoss:           profitLoss,
		ProfitLossPercentage: percentOf(profitLoss, invested),
		Difference:           difference,
	}, nil
}

// Status returns the latest snapshot with profit/loss against the
// invested cost basis.
func (s *portfolioService) Status() (*PortfolioStatus, error) {
	invested, err := s.totalInvested()
	if err != nil {
		return nil, err
	}

	var holdingCount int64
	if err := s.db.Model(&models.ETFHolding{}).Count(&holdingCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	status := &PortfolioStatus{
		TotalInvested: invested,
		HoldingCount:  int(holdingCount),
	}

	var latest models.PortfolioEntry
	err = s.db.
		Where("total_value > 0").
		Order("date DESC").
		First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return status, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	status.Latest = &latest
	status.ProfitLoss = latest.TotalValue.Sub(invested)
	status.ProfitLossPercentage = percentOf(status.ProfitLoss, invested)
	return status, nil
}

// History returns the latest recorded snapshots, newest first.
func (s *portfolioService) History(limit int) ([]models.PortfolioEntry, error) {
	var entries []models.PortfolioEntry
	err := s.db.
		Where("total_value > 0").
		Order("date DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// Performance returns the snapshot series of the trailing months with
// profit/loss percentage against the current cost basis, oldest first.
func (s *portfolioService) Performance(today time.Time, months int) ([]PerformancePoint, error) {
	invested, err := s.totalInvested()
	if err != nil {
		return nil, err
	}

	start := dates.FromTime(today.AddDate(0, -months, 0))
	var entries []models.PortfolioEntry
	err = s.db.
		Where("date >= ? AND total_value > 0", start).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	points := make([]PerformancePoint, len(entries))
	for i, e := range entries {
		points[i] = PerformancePoint{
			Date:                 e.Date.Format(dates.Format),
			TotalMarketValue:     e.TotalValue,
			ProfitLossPercentage: percentOf(e.TotalValue.Sub(invested), invested),
		}
	}
	return points, nil
}

// Holdings returns all ETF holdings.
func (s *portfolioService) Holdings() ([]models.ETFHolding, error) {
	var holdings []models.ETFHolding
	if err := s.db.Order("symbol ASC").Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holdings, nil
}

// UpdateHoldings sets the purchase value per symbol. Unknown symbols are
// rejected rather than created; the holding set is seeded by migration.
// The updates are applied in one transaction so a rejected symbol leaves
// every holding at its prior value.
func (s *portfolioService) UpdateHoldings(values map[string]decimal.Decimal) ([]models.ETFHolding, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for symbol, value := range values {
			result := tx.Model(&models.ETFHolding{}).
				Where("symbol = ?", symbol).
				Update("purchase_value", value)
			if result.Error != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
			}
			if result.RowsAffected == 0 {
				return apperrors.WithMessage(apperrors.ErrHoldingNotFound, "Unknown ETF symbol: "+symbol)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Holdings()
}

func (s *portfolioService) totalInvested() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.Model(&models.ETFHolding{}).
		Select("COALESCE(SUM(purchase_value), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// percentOf returns part/whole as a percentage, 0 when whole is not positive.
func percentOf(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	pct, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}
