package core

import (
	"math"
	"sort"
)

// MonthTotals holds the per-category sums, grand total and entry count
// for a single year-month.
type MonthTotals struct {
	Count      int              `json:"total_entries"`
	Total      int64            `json:"total"`
	Categories map[string]int64 `json:"categories"`
}

// MonthlySummary maps YYYY-MM keys to their totals. Always derived from
// a snapshot, never stored.
type MonthlySummary map[string]*MonthTotals

// CategoryShare is one category's slice of a month with its percentage
// of the month total, for sorted summary output.
type CategoryShare struct {
	Category   string  `json:"category"`
	Amount     int64   `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Summarize groups receipts by (year-month, category), summing amounts
// per group and computing a grand total per month. A non-empty yearMonth
// restricts the grouping to receipts of that month; otherwise each
// receipt is bucketed by its own date, so the summary spans every month
// present in the data. Empty input yields an empty summary.
func Summarize(items []Receipt, yearMonth string) MonthlySummary {
	summary := make(MonthlySummary)
	for _, r := range items {
		ym := r.Date.YearMonth()
		if yearMonth != "" && ym != yearMonth {
			continue
		}
		mt := summary[ym]
		if mt == nil {
			mt = &MonthTotals{Categories: make(map[string]int64)}
			summary[ym] = mt
		}
		mt.Count++
		mt.Total += r.Amount
		mt.Categories[r.Category] += r.Amount
	}
	return summary
}

// Shares returns the month's categories sorted by amount descending,
// ties broken by name. Percentages are rounded to two decimals and are
// zero when the month total is zero.
func (mt *MonthTotals) Shares() []CategoryShare {
	shares := make([]CategoryShare, 0, len(mt.Categories))
	for name, amount := range mt.Categories {
		share := CategoryShare{Category: name, Amount: amount}
		if mt.Total != 0 {
			share.Percentage = math.Round(float64(amount)/float64(mt.Total)*10000) / 100
		}
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}
