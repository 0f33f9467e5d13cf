package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// spendingService handles the spending log.
type spendingService struct {
	db *gorm.DB
}

// NewSpendingService creates a new SpendingServicer.
func NewSpendingService(db *gorm.DB) SpendingServicer {
	return &spendingService{db: db}
}

// AddEntry records a purchase. Entries are immutable; a typo is fixed by
// deleting and re-adding.
func (s *spendingService) AddEntry(date time.Time, item string, price decimal.Decimal) (*models.SpendingEntry, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Item is required")
	}
	if !price.IsPositive() {
		return nil, apperrors.ErrInvalidPrice
	}

	entry := &models.SpendingEntry{Date: date, Item: item, Price: price}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

// DeleteEntry removes a spending entry by ID.
func (s *spendingService) DeleteEntry(id uint) error {
	var entry models.SpendingEntry
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSpendingEntryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListForDate returns all entries for one day, newest first.
func (s *spendingService) ListForDate(date time.Time) ([]models.SpendingEntry, error) {
	var entries []models.SpendingEntry
	err := s.db.
		Where("date = ?", date).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// ListBetween returns a page of entries inside the inclusive date range,
// newest date first.
func (s *spendingService) ListBetween(start, end time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.SpendingEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.SpendingEntry{}).Where("date BETWEEN ? AND ?", start, end)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.SpendingEntry
	err := base.
		Order("date DESC, created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// TotalForDate sums all prices recorded on one day.
func (s *spendingService) TotalForDate(date time.Time) (decimal.Decimal, error) {
	return s.sum(s.db.Where("date = ?", date))
}

// TotalBetween sums all prices inside the inclusive date range.
func (s *spendingService) TotalBetween(start, end time.Time) (decimal.Decimal, error) {
	return s.sum(s.db.Where("date BETWEEN ? AND ?", start, end))
}

func (s *spendingService) sum(q *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := q.Model(&models.SpendingEntry{}).
		Select("COALESCE(SUM(price), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}
