package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDate          = errors.New("invalid date")
	ErrEmptyCategory        = errors.New("empty category")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrNotFound             = errors.New("receipt not found")
)

const (
	dateLayout      = "2006-01-02"
	yearMonthLayout = "2006-01"
)

type (
	// Date is a calendar day without a time component.
	Date struct {
		time.Time
	}

	// Receipt is one stored ledger entry. Receipts are immutable once
	// stored; the ID is assigned by the ledger store at insertion time.
	Receipt struct {
		ID          int64  `json:"id"`
		Date        Date   `json:"date"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Amount      int64  `json:"amount"`
	}

	// RawReceipt carries unvalidated entry fields as received by the
	// transport layer. Amount is kept textual so numeric and quoted
	// inputs go through the same normalization.
	RawReceipt struct {
		Date        string
		Category    string
		Description string
		Amount      string
	}
)

// ValidationError identifies the offending field and raw value of a
// rejected entry. It unwraps to one of the sentinel errors above.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// ParseYearMonth validates a YYYY-MM grouping key and returns it in
// canonical form.
func ParseYearMonth(s string) (string, error) {
	t, err := time.Parse(yearMonthLayout, strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(yearMonthLayout), nil
}

func (d Date) String() string { return d.Format(dateLayout) }

// YearMonth returns the YYYY-MM grouping key of the date.
func (d Date) YearMonth() string { return d.Format(yearMonthLayout) }

// IsEmpty returns true for the zero date, used for optional bounds.
func (d Date) IsEmpty() bool { return d.IsZero() }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ValidateAndNormalize turns raw entry fields into a Receipt, or reports
// the first offending field. Pure transformation; the ID stays zero
// until the ledger store assigns one.
func ValidateAndNormalize(raw RawReceipt) (Receipt, error) {
	date, err := ParseDate(raw.Date)
	if err != nil {
		return Receipt{}, &ValidationError{Field: "date", Value: raw.Date, Err: ErrInvalidDate}
	}

	category := strings.TrimSpace(raw.Category)
	if category == "" {
		return Receipt{}, &ValidationError{Field: "category", Value: raw.Category, Err: ErrEmptyCategory}
	}

	amount, err := ParseAmount(raw.Amount)
	if err != nil {
		return Receipt{}, &ValidationError{Field: "amount", Value: raw.Amount, Err: ErrInvalidAmount}
	}

	return Receipt{
		Date:        date,
		Category:    category,
		Description: strings.TrimSpace(raw.Description),
		Amount:      amount,
	}, nil
}
