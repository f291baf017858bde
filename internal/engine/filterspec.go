// Package engine implements the filtering and aggregation pipeline: the
// query over a store snapshot, the cascading filter-domain computation the
// dropdowns feed from, and the (category, merchant) summary.
package engine

import "strings"

// All is the dropdown value meaning "no constraint". An empty string means
// the same thing; both are treated as inactive.
const All = "All"

// Filter keys, used both in selections and in the domain mapping.
const (
	KeyReport      = "report"
	KeyYear        = "year"
	KeyMonth       = "month"
	KeyCategory    = "category"
	KeyMerchant    = "merchant"
	KeyPaidThrough = "paid"
)

// FilterSpec carries every user-chosen constraint as entered. Raw strings
// are kept on purpose: range bounds that fail to parse are ignored with a
// warning instead of failing the query, so the engine has to see the source
// text. A field that is blank or "All" applies no constraint.
type FilterSpec struct {
	// Substring, case-insensitive.
	Report      string
	Category    string
	Merchant    string
	PaidThrough string
	Description string

	// Exact, derived from the expense date.
	Year  string // "2025"
	Month string // "01".."12"

	// Inclusive bounds, YYYY-MM-DD.
	DateFrom string
	DateTo   string

	// Inclusive bounds, decimal.
	ExpenseMin string
	ExpenseMax string
	IncomeMin  string
	IncomeMax  string
}

// Selection is the subset of the spec the cascading dropdowns feed from.
type Selection struct {
	Report      string
	Year        string
	Month       string
	Category    string
	Merchant    string
	PaidThrough string
}

// Selection extracts the dropdown-backed constraints from a full spec.
func (s FilterSpec) Selection() Selection {
	return Selection{
		Report:      s.Report,
		Year:        s.Year,
		Month:       s.Month,
		Category:    s.Category,
		Merchant:    s.Merchant,
		PaidThrough: s.PaidThrough,
	}
}

// DropStale resets every dropdown-backed field whose selected value is no
// longer reachable in the recomputed domains, and reports whether any
// field was reset. A selection dies when another dropdown narrows the
// shared subset past it; left in place it would pin the query to an empty
// result with no way to see why.
func (s *FilterSpec) DropStale(d Domains) bool {
	fields := []struct {
		key   string
		value *string
	}{
		{KeyReport, &s.Report},
		{KeyYear, &s.Year},
		{KeyMonth, &s.Month},
		{KeyCategory, &s.Category},
		{KeyMerchant, &s.Merchant},
		{KeyPaidThrough, &s.PaidThrough},
	}
	changed := false
	for _, f := range fields {
		if active(*f.value) && !d.Contains(f.key, *f.value) {
			*f.value = All
			changed = true
		}
	}
	return changed
}

func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != All
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
