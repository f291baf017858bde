// Package report builds the printable summary for a query result: grand
// totals, the biggest expense categories, and the covered period, stamped
// with the profile from settings.
package report

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/google/uuid"

	"ledgerdesk/internal/core"
	"ledgerdesk/internal/engine"
)

// TopCategoryCount bounds the category ranking in the summary.
const TopCategoryCount = 10

// Profile is the letterhead pulled from the encrypted settings.
type Profile struct {
	AdminName      string
	AdminRole      string
	CompanyName    string
	CompanyContact string
}

// Report is one generated summary. The ID makes individual reports
// traceable in logs and file names.
type Report struct {
	ID          uuid.UUID
	GeneratedAt time.Time
	Profile     Profile

	PeriodFrom core.Date
	PeriodTo   core.Date

	Totals        engine.Totals
	TopCategories []engine.CategoryAmount
}

// Build assembles a report over the given rows. The period is the span of
// dated records; rows without dates count toward totals but not the period.
func Build(rows []engine.Row, profile Profile) Report {
	r := Report{
		ID:            uuid.New(),
		GeneratedAt:   time.Now(),
		Profile:       profile,
		Totals:        engine.Aggregate(rows).Totals,
		TopCategories: engine.TopCategories(rows, TopCategoryCount),
	}
	for _, row := range rows {
		d := row.Record.Date
		if d.IsEmpty() {
			continue
		}
		if r.PeriodFrom.IsEmpty() || d.Before(r.PeriodFrom) {
			r.PeriodFrom = d
		}
		if r.PeriodTo.IsEmpty() || d.After(r.PeriodTo) {
			r.PeriodTo = d
		}
	}
	return r
}

var reportTemplate = template.Must(template.New("report").Parse(`LEDGER SUMMARY {{.ID}}
Generated {{.GeneratedAt.Format "2006-01-02 15:04"}}
{{- if .Profile.CompanyName}}
{{.Profile.CompanyName}}{{if .Profile.CompanyContact}} ({{.Profile.CompanyContact}}){{end}}
{{- end}}
{{- if .Profile.AdminName}}
Prepared by {{.Profile.AdminName}}{{if .Profile.AdminRole}}, {{.Profile.AdminRole}}{{end}}
{{- end}}
{{- if not .PeriodFrom.IsEmpty}}
Period {{.PeriodFrom}} - {{.PeriodTo}}
{{- end}}

Records:  {{.Totals.Count}}
Income:   {{.Totals.Income.StringFixed 2}}
Expense:  {{.Totals.Expense.StringFixed 2}}
Net:      {{.Totals.Net.StringFixed 2}}
{{if .TopCategories}}
Top expense categories
{{- range .TopCategories}}
  {{printf "%-30s %12s" .Category (.Amount.StringFixed 2)}}
{{- end}}
{{end}}`))

// Render writes the report as plain text.
func (r Report) Render(w io.Writer) error {
	if err := reportTemplate.Execute(w, r); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}
