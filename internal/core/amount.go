// Package core provides the household-ledger domain model: receipts,
// validation, filtering and monthly aggregation.
//
// This file contains amount parsing. Amounts are whole currency units
// (yen), so no fractional handling exists anywhere in the domain.
package core

import (
	"strconv"
	"strings"
)

// ParseAmount converts a numeral string to a signed integer amount.
//
// Only an optional leading + or - sign is stripped; every remaining rune
// must be an ASCII digit. Decimal points, grouping separators and
// currency symbols all fail with ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("2500")  -> 2500, nil
//	ParseAmount("-300")  -> -300, nil
//	ParseAmount("12.5")  -> 0, ErrInvalidAmount
//	ParseAmount("1,200") -> 0, ErrInvalidAmount
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	digits := s
	if digits[0] == '+' || digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" {
		return 0, ErrInvalidAmount
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Digits only at this point, so this is overflow.
		return 0, ErrInvalidAmount
	}
	return v, nil
}
