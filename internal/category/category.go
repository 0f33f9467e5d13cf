// Package category maps free-text purchase descriptions to display
// categories. Categories are never persisted: every report recomputes
// them from the item text, so an edit to the rule table retroactively
// reclassifies historical entries without touching stored rows.
package category

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Fallback is the label assigned when no rule matches.
const Fallback = "Other"

// Rule maps a set of case-insensitive substring keywords to a label.
// Excludes veto a match: an item containing any exclude keyword does not
// match the rule even when a keyword hits.
type Rule struct {
	Label    string
	Keywords []string
	Excludes []string
}

// Matches reports whether the lower-cased item text satisfies the rule.
func (r Rule) Matches(item string) bool {
	for _, ex := range r.Excludes {
		if strings.Contains(item, ex) {
			return false
		}
	}
	for _, kw := range r.Keywords {
		if strings.Contains(item, kw) {
			return true
		}
	}
	return false
}

// DefaultRules is the ordered rule table. Order is load-bearing: rules
// overlap on purpose (a Tim Hortons coffee is TIMS, not generic coffee)
// and the first matching rule wins.
var DefaultRules = []Rule{
	{Label: "TIMS", Keywords: []string{"tim"}},
	{Label: "Coffee (Other)", Keywords: []string{"coffee"}, Excludes: []string{"tim"}},
	{Label: "Gas", Keywords: []string{"gas", "fuel", "petro"}},
	{Label: "Cannabis", Keywords: []string{"dispo", "cannabis", "weed"}},
	{Label: "LCBO", Keywords: []string{"lcbo", "alcohol", "beer", "wine"}},
	{Label: "McDonalds", Keywords: []string{"mcdonald"}},
	{Label: "Dominos", Keywords: []string{"domino"}},
	{Label: "Wendys", Keywords: []string{"wendys"}},
	{Label: "Arbys", Keywords: []string{"arbys"}},
	{Label: "Osmows", Keywords: []string{"osmow", "shawarma"}},
	{Label: "Food (Other)", Keywords: []string{"food", "restaurant", "pizza", "taco", "burger"}},
	{Label: "Fitness", Keywords: []string{"gym", "fit", "workout"}},
	{Label: "Gifts", Keywords: []string{"gift"}},
	{Label: "Car Care", Keywords: []string{"wash", "car"}},
}

// Categorize returns the display category for an item using the default
// rule table.
func Categorize(item string) string {
	return CategorizeWith(DefaultRules, item)
}

// CategorizeWith evaluates an ordered rule table against the item text:
// first match wins, Fallback when nothing matches.
func CategorizeWith(rules []Rule, item string) string {
	lowered := strings.ToLower(item)
	for _, r := range rules {
		if r.Matches(lowered) {
			return r.Label
		}
	}
	return Fallback
}

// Entry is a single priced item to aggregate. Callers pass already
// fetched rows; this package never touches storage.
type Entry struct {
	Item  string
	Price decimal.Decimal
}

// Total is the aggregated spend for one category.
type Total struct {
	Label string          `json:"category"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// Summarize groups entries by category and sums their prices. Results
// are ordered by total descending; equal totals fall back to label
// ascending so the ordering is deterministic.
func Summarize(rules []Rule, entries []Entry) []Total {
	byLabel := make(map[string]*Total)
	for _, e := range entries {
		label := CategorizeWith(rules, e.Item)
		t, ok := byLabel[label]
		if !ok {
			t = &Total{Label: label}
			byLabel[label] = t
		}
		t.Total = t.Total.Add(e.Price)
		t.Count++
	}

	totals := make([]Total, 0, len(byLabel))
	for _, t := range byLabel {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		if !totals[i].Total.Equal(totals[j].Total) {
			return totals[i].Total.GreaterThan(totals[j].Total)
		}
		return totals[i].Label < totals[j].Label
	})
	return totals
}
