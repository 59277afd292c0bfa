package core

import "strings"

// Filter restricts a snapshot by inclusive date bounds and exact category
// match. Zero-value fields leave the corresponding predicate open; all
// supplied predicates combine with AND.
type Filter struct {
	From     Date
	To       Date
	Category string
}

// Apply returns the receipts matching every supplied predicate, in
// snapshot order. An inverted range (From after To) matches nothing
// rather than erroring. The input slice is never mutated.
func (f Filter) Apply(items []Receipt) []Receipt {
	category := strings.TrimSpace(f.Category)
	out := make([]Receipt, 0, len(items))
	for _, r := range items {
		if !f.From.IsZero() && r.Date.Before(f.From.Time) {
			continue
		}
		if !f.To.IsZero() && r.Date.After(f.To.Time) {
			continue
		}
		if category != "" && r.Category != category {
			continue
		}
		out = append(out, r)
	}
	return out
}

// IsZero reports whether no predicate is set.
func (f Filter) IsZero() bool {
	return f.From.IsZero() && f.To.IsZero() && strings.TrimSpace(f.Category) == ""
}

// CategoryTotals sums amounts per category over a snapshot.
func CategoryTotals(items []Receipt) map[string]int64 {
	totals := make(map[string]int64, len(items))
	for _, r := range items {
		totals[r.Category] += r.Amount
	}
	return totals
}

// TotalAmount sums all amounts in a snapshot.
func TotalAmount(items []Receipt) int64 {
	var total int64
	for _, r := range items {
		total += r.Amount
	}
	return total
}
