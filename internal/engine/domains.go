package engine

import (
	"fmt"
	"sort"
	"strconv"

	"ledgerdesk/internal/store"
)

// Domains maps each filter key to the values still reachable under the
// current selection, sorted (lexicographically for strings, numerically
// for years). It is what the cascading dropdowns display.
type Domains map[string][]string

// Contains reports whether value is still reachable for the given key.
// The caller resets a dropdown to All when its own selection drops out of
// its recomputed domain.
func (d Domains) Contains(key, value string) bool {
	for _, v := range d[key] {
		if v == value {
			return true
		}
	}
	return false
}

// AvailableValues computes the cascading filter domains. All records with
// a date form the base set; every active selection narrows that one shared
// subset with exact-equality matching, and all domains are then derived
// from it, including the domain of a field that is itself selected, so a
// field's own selection narrows its own future options.
//
// Note the deliberate asymmetry with Query: the final query matches the
// dropdown-backed fields by substring, the narrowing here by equality.
// That mirrors how the dropdowns behave in practice (a selection is a
// complete value, typed search is partial).
func AvailableValues(snap store.Snapshot, sel Selection) Domains {
	year := intOrZero(sel.Year)
	month := intOrZero(sel.Month)

	reports := map[string]struct{}{}
	years := map[int]struct{}{}
	months := map[int]struct{}{}
	categories := map[string]struct{}{}
	merchants := map[string]struct{}{}
	paid := map[string]struct{}{}

	for _, rec := range snap.Records {
		if rec.Date.IsEmpty() {
			continue
		}
		if active(sel.Report) && rec.ReportName != sel.Report {
			continue
		}
		if active(sel.Year) && rec.Date.Year() != year {
			continue
		}
		if active(sel.Month) && rec.Date.Month() != month {
			continue
		}
		if active(sel.Category) && rec.Category != sel.Category {
			continue
		}
		if active(sel.Merchant) && rec.Merchant != sel.Merchant {
			continue
		}
		if active(sel.PaidThrough) && rec.PaidThrough != sel.PaidThrough {
			continue
		}

		if rec.ReportName != "" {
			reports[rec.ReportName] = struct{}{}
		}
		years[rec.Date.Year()] = struct{}{}
		months[rec.Date.Month()] = struct{}{}
		categories[rec.Category] = struct{}{}
		merchants[rec.Merchant] = struct{}{}
		if rec.PaidThrough != "" {
			paid[rec.PaidThrough] = struct{}{}
		}
	}

	return Domains{
		KeyReport:      sortedStrings(reports),
		KeyYear:        sortedYears(years),
		KeyMonth:       sortedMonths(months),
		KeyCategory:    sortedStrings(categories),
		KeyMerchant:    sortedStrings(merchants),
		KeyPaidThrough: sortedStrings(paid),
	}
}

func intOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func sortedStrings(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func sortedYears(set map[int]struct{}) []string {
	ys := make([]int, 0, len(set))
	for y := range set {
		ys = append(ys, y)
	}
	sort.Ints(ys)
	out := make([]string, len(ys))
	for i, y := range ys {
		out[i] = strconv.Itoa(y)
	}
	return out
}

// Months are presented as two-digit strings, so lexicographic order is
// numeric order.
func sortedMonths(set map[int]struct{}) []string {
	ms := make([]int, 0, len(set))
	for m := range set {
		ms = append(ms, m)
	}
	sort.Ints(ms)
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = fmt.Sprintf("%02d", m)
	}
	return out
}
