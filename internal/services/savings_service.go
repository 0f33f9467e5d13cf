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

var oneHundred = decimal.NewFromInt(100)

// savingsService handles the savings allocation calculator.
type savingsService struct {
	db      *gorm.DB
	budgets BudgetServicer
}

// NewSavingsService creates a new SavingsServicer. The budget service
// supplies the active period whose spending is deducted from income.
func NewSavingsService(db *gorm.DB, budgets BudgetServicer) SavingsServicer {
	return &savingsService{db: db, budgets: budgets}
}

// GetConfig returns the allocation configuration, creating the default
// one on first use.
func (s *savingsService) GetConfig() (*models.SavingsConfig, error) {
	var cfg models.SavingsConfig
	err := s.db.Order("id ASC").First(&cfg).Error
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cfg = models.SavingsConfig{
		SavingsPercentage:      decimal.NewFromInt(40),
		InvestorlinePercentage: decimal.NewFromInt(35),
		USDPercentage:          decimal.NewFromInt(25),
		BiweeklyIncome:         decimal.NewFromInt(2000),
		PayPeriodHalf:          1,
	}
	if err := s.db.Create(&cfg).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &cfg, nil
}

// UpdateConfig replaces the allocation percentages and income. The three
// percentages must sum to exactly 100.
func (s *savingsService) UpdateConfig(savingsPct, investorlinePct, usdPct, income decimal.Decimal, half int) (*models.SavingsConfig, error) {
	if !savingsPct.Add(investorlinePct).Add(usdPct).Equal(oneHundred) {
		return nil, apperrors.ErrInvalidAllocation
	}
	if !income.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Biweekly income must be greater than zero")
	}

	cfg, err := s.GetConfig()
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"savings_percentage":      savingsPct,
		"investorline_percentage": investorlinePct,
		"usd_percentage":          usdPct,
		"biweekly_income":         income,
		"pay_period_half":         half,
	}
	if err := s.db.Model(cfg).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cfg.SavingsPercentage = savingsPct
	cfg.InvestorlinePercentage = investorlinePct
	cfg.USDPercentage = usdPct
	cfg.BiweeklyIncome = income
	cfg.PayPeriodHalf = half
	return cfg, nil
}

// Calculate runs the allocator for the current budget period: biweekly
// income minus the period's spending and the period half's fixed
// expenses, split across the three destinations. The run is persisted.
func (s *savingsService) Calculate(today time.Time) (*models.SavingsCalculation, error) {
	cfg, err := s.GetConfig()
	if err != nil {
		return nil, err
	}

	period, err := s.budgets.ResolveCurrentPeriod(today)
	if err != nil {
		return nil, err
	}

	var spending decimal.Decimal
	err = s.db.Model(&models.SpendingEntry{}).
		Select("COALESCE(SUM(price), 0)").
		Where("date BETWEEN ? AND ?", period.StartDate, period.EndDate).
		Scan(&spending).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	half := period.PayPeriodHalf()
	var fixed decimal.Decimal
	err = s.db.Model(&models.FixedExpense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("pay_period_half = ?", half).
		Scan(&fixed).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totalExpenses := spending.Add(fixed)
	// Available may go negative; the split amounts then show how far
	// each destination is shorted.
	available := cfg.BiweeklyIncome.Sub(totalExpenses)

	share := func(pct decimal.Decimal) decimal.Decimal {
		return available.Mul(pct).Div(oneHundred).Round(2)
	}

	calc := models.SavingsCalculation{
		BiweeklyIncome:         cfg.BiweeklyIncome,
		CurrentSpending:        spending,
		FixedExpenses:          fixed,
		TotalExpenses:          totalExpenses,
		AvailableForAllocation: available,
		SavingsAmount:          share(cfg.SavingsPercentage),
		InvestorlineAmount:     share(cfg.InvestorlinePercentage),
		USDAmount:              share(cfg.USDPercentage),
		PayPeriodHalf:          half,
		PeriodStart:            period.StartDate,
		PeriodEnd:              period.EndDate,
	}
	if err := s.db.Create(&calc).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &calc, nil
}

// ListCalculations returns past allocator runs, newest first.
func (s *savingsService) ListCalculations(page pagination.PageRequest) (*pagination.PageResponse[models.SavingsCalculation], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.SavingsCalculation{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var calcs []models.SavingsCalculation
	err := s.db.
		Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&calcs).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(calcs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// FixedExpenses lists fixed expenses, optionally filtered by pay period half.
func (s *savingsService) FixedExpenses(half *int) ([]models.FixedExpense, error) {
	q := s.db.Order("pay_period_half ASC, name ASC")
	if half != nil {
		q = q.Where("pay_period_half = ?", *half)
	}

	var expenses []models.FixedExpense
	if err := q.Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// AddFixedExpense creates a custom fixed expense. Names are unique per
// pay period half.
func (s *savingsService) AddFixedExpense(name string, amount decimal.Decimal, half int) (*models.FixedExpense, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Expense name is required")
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}

	var count int64
	err := s.db.Model(&models.FixedExpense{}).
		Where("name = ? AND pay_period_half = ?", name, half).
		Count(&count).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateFixedExpense
	}

	expense := &models.FixedExpense{Name: name, Amount: amount, PayPeriodHalf: half, IsCustom: true}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// UpdateFixedExpense changes the amount of an existing fixed expense.
func (s *savingsService) UpdateFixedExpense(id uint, amount decimal.Decimal) (*models.FixedExpense, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}

	expense, err := s.findFixedExpense(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(expense).Update("amount", amount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	expense.Amount = amount
	return expense, nil
}

// DeleteFixedExpense removes a custom fixed expense. Seeded defaults
// can only be re-priced, not removed.
func (s *savingsService) DeleteFixedExpense(id uint) error {
	expense, err := s.findFixedExpense(id)
	if err != nil {
		return err
	}
	if !expense.IsCustom {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Default expenses cannot be deleted")
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *savingsService) findFixedExpense(id uint) (*models.FixedExpense, error) {
	var expense models.FixedExpense
	if err := s.db.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFixedExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}
