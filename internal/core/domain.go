package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// Sentinel values substituted for blank grouping fields at load time.
	DefaultCategory = "Uncategorized"
	DefaultMerchant = "Unknown"

	// Report name assigned to records created in the application itself.
	ManualReportName = "Manual Entry"
)

type (
	// Date is a calendar day. The zero value means "no date": such records
	// stay in the store but are excluded from filtering and analysis.
	Date struct {
		time.Time
	}

	// Record is one ledger row. ID is the record's stable identity: assigned
	// once at load or creation, never recomputed, never reused while the
	// store is loaded. The balance (income minus expense) is derived per
	// query and deliberately not a field here.
	Record struct {
		ID          int64
		ReportName  string
		Date        Date
		Expense     decimal.Decimal
		Income      decimal.Decimal
		Description string
		Category    string
		Merchant    string
		PaidThrough string
	}

	// Fields is a partial record used by add and update operations. Nil
	// members are left untouched by update and defaulted by add.
	Fields struct {
		ReportName  *string
		Date        *Date
		Expense     *decimal.Decimal
		Income      *decimal.Decimal
		Description *string
		Category    *string
		Merchant    *string
		PaidThrough *string
	}
)

// Balance returns income minus expense for this record.
func (r Record) Balance() decimal.Decimal {
	return r.Income.Sub(r.Expense)
}

// dateLayouts are tried in order when parsing dates from files and user
// input. Spreadsheet exports sometimes carry a time component.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// NewDate builds a Date at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date string, trying the supported layouts in order.
// The time component, if any, is truncated to the day.
func ParseDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), t.Month(), t.Day()), true
		}
	}
	return Date{}, false
}

// IsEmpty reports whether the date is absent.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// Year returns the calendar year, or 0 for an empty date.
func (d Date) Year() int {
	if d.IsEmpty() {
		return 0
	}
	return d.Time.Year()
}

// Month returns the calendar month as 1-12, or 0 for an empty date.
func (d Date) Month() int {
	if d.IsEmpty() {
		return 0
	}
	return int(d.Time.Month())
}

// String renders the date as YYYY-MM-DD, the format used everywhere a date
// leaves the core (exports, saved files, display). Empty dates render as "".
func (d Date) String() string {
	if d.IsEmpty() {
		return ""
	}
	return d.Format("2006-01-02")
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// CoerceAmount converts a raw cell value into a non-negative amount.
// Thousands separators are tolerated. Anything non-numeric or negative
// coerces to zero: bulk-loaded data absorbs bad amounts locally instead of
// failing the load.
func CoerceAmount(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Normalize applies the default-value rules in place: string fields are
// trimmed and blank category and merchant become their sentinels. The
// stable ID is left alone.
func (r *Record) Normalize() {
	r.ReportName = strings.TrimSpace(r.ReportName)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Merchant = strings.TrimSpace(r.Merchant)
	r.PaidThrough = strings.TrimSpace(r.PaidThrough)
	if r.Category == "" {
		r.Category = DefaultCategory
	}
	if r.Merchant == "" {
		r.Merchant = DefaultMerchant
	}
}
