package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/category"
	"fintrack/internal/dates"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// analyticsService computes spending reports. All categorized reports
// fetch the raw rows and run the rule table in process: categories are
// derived, never stored, so an edited rule table changes every report
// retroactively.
type analyticsService struct {
	db    *gorm.DB
	rules []category.Rule
}

// NewAnalyticsService creates a new AnalyticsServicer using the default
// categorization rules.
func NewAnalyticsService(db *gorm.DB) AnalyticsServicer {
	return &analyticsService{db: db, rules: category.DefaultRules}
}

// NewAnalyticsServiceWithRules creates an AnalyticsServicer with a
// custom rule table.
func NewAnalyticsServiceWithRules(db *gorm.DB, rules []category.Rule) AnalyticsServicer {
	return &analyticsService{db: db, rules: rules}
}

// Summary returns total spending over the trailing 7, 30, and 90 days.
func (s *analyticsService) Summary(today time.Time) (*WindowTotals, error) {
	weekly, err := s.sumSince(dates.AddDays(today, -7))
	if err != nil {
		return nil, err
	}
	monthly, err := s.sumSince(dates.AddDays(today, -30))
	if err != nil {
		return nil, err
	}
	quarterly, err := s.sumSince(dates.AddDays(today, -90))
	if err != nil {
		return nil, err
	}

	return &WindowTotals{Weekly: weekly, Monthly: monthly, Quarterly: quarterly}, nil
}

// CategoryBreakdown groups the trailing window's entries by display
// category, largest total first.
func (s *analyticsService) CategoryBreakdown(today time.Time, days int) ([]category.Total, error) {
	rows, err := s.entriesSince(dates.AddDays(today, -days))
	if err != nil {
		return nil, err
	}

	entries := make([]category.Entry, len(rows))
	for i, r := range rows {
		entries[i] = category.Entry{Item: r.Item, Price: r.Price}
	}
	return category.Summarize(s.rules, entries), nil
}

// TopItems returns the highest-spend items of the trailing window,
// grouped by exact item text.
func (s *analyticsService) TopItems(today time.Time, days, limit int) ([]TopItem, error) {
	var items []TopItem
	err := s.db.Model(&models.SpendingEntry{}).
		Select("item, SUM(price) as total, COUNT(*) as frequency").
		Where("date >= ?", dates.AddDays(today, -days)).
		Group("item").
		Order("total DESC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return items, nil
}

// WeeklyTrends buckets the trailing window's spending by calendar week.
func (s *analyticsService) WeeklyTrends(today time.Time, days int) ([]TrendBucket, error) {
	rows, err := s.entriesSince(dates.AddDays(today, -days))
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]decimal.Decimal)
	for _, r := range rows {
		key := dates.WeekKey(r.Date)
		buckets[key] = buckets[key].Add(r.Price)
	}
	return sortedBuckets(buckets), nil
}

// DailySeries returns one point per day over the trailing window,
// zero-filling days with no spending so charts have a continuous axis.
func (s *analyticsService) DailySeries(today time.Time, days int) ([]DailyPoint, error) {
	start := dates.AddDays(today, -(days - 1))
	rows, err := s.entriesSince(start)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]decimal.Decimal)
	for _, r := range rows {
		key := r.Date.Format(dates.Format)
		byDay[key] = byDay[key].Add(r.Price)
	}

	series := make([]DailyPoint, 0, days)
	for d := start; !d.After(today); d = dates.AddDays(d, 1) {
		key := d.Format(dates.Format)
		series = append(series, DailyPoint{Date: key, Total: byDay[key]})
	}
	return series, nil
}

// CategoryTrends returns per-category monthly totals over the trailing
// months, ordered by month then category.
func (s *analyticsService) CategoryTrends(today time.Time, months int) ([]CategoryTrendPoint, error) {
	start := dates.FromTime(today.AddDate(0, -months, 0))
	rows, err := s.entriesSince(start)
	if err != nil {
		return nil, err
	}

	type key struct{ month, cat string }
	totals := make(map[key]decimal.Decimal)
	for _, r := range rows {
		k := key{month: dates.MonthKey(r.Date), cat: category.CategorizeWith(s.rules, r.Item)}
		totals[k] = totals[k].Add(r.Price)
	}

	points := make([]CategoryTrendPoint, 0, len(totals))
	for k, total := range totals {
		points = append(points, CategoryTrendPoint{Category: k.cat, Month: k.month, Total: total})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Month != points[j].Month {
			return points[i].Month < points[j].Month
		}
		return points[i].Category < points[j].Category
	})
	return points, nil
}

// WeeklyAverages returns, per calendar week of the trailing window, the
// average daily spend across days that had any spending.
func (s *analyticsService) WeeklyAverages(today time.Time, weeks int) ([]TrendBucket, error) {
	rows, err := s.entriesSince(dates.AddDays(today, -weeks*7))
	if err != nil {
		return nil, err
	}

	dayTotals := make(map[string]decimal.Decimal)
	dayWeek := make(map[string]string)
	for _, r := range rows {
		day := r.Date.Format(dates.Format)
		dayTotals[day] = dayTotals[day].Add(r.Price)
		dayWeek[day] = dates.WeekKey(r.Date)
	}

	weekSums := make(map[string]decimal.Decimal)
	weekDays := make(map[string]int64)
	for day, total := range dayTotals {
		week := dayWeek[day]
		weekSums[week] = weekSums[week].Add(total)
		weekDays[week]++
	}

	averages := make(map[string]decimal.Decimal, len(weekSums))
	for week, sum := range weekSums {
		averages[week] = sum.Div(decimal.NewFromInt(weekDays[week])).Round(2)
	}
	return sortedBuckets(averages), nil
}

func (s *analyticsService) entriesSince(start time.Time) ([]models.SpendingEntry, error) {
	var rows []models.SpendingEntry
	if err := s.db.Where("date >= ?", start).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

func (s *analyticsService) sumSince(start time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.Model(&models.SpendingEntry{}).
		Select("COALESCE(SUM(price), 0)").
		Where("date >= ?", start).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

func sortedBuckets(m map[string]decimal.Decimal) []TrendBucket {
	buckets := make([]TrendBucket, 0, len(m))
	for k, v := range m {
		buckets = append(buckets, TrendBucket{Bucket: k, Total: v})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Bucket < buckets[j].Bucket })
	return buckets
}
