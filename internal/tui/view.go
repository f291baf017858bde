package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ledgerdesk/internal/engine"
)

var (
	appNameStyle = lipgloss.NewStyle().Background(lipgloss.Color("99")).Padding(0, 1)

	faintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Faint(true)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)

	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	formLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Width(16)
	formFieldStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(34)
	activeFieldStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("99")).Padding(0, 1).Width(34)
)

func (m model) View() string {
	s := appNameStyle.Render("LedgerDesk") + "\n\n"

	if m.status != "" {
		s += faintStyle.Render(m.status) + "\n\n"
	}

	switch m.state {
	case menuView:
		s += m.renderMenu()
	case openView:
		s += m.renderOpen()
	case tableView:
		s += m.renderTable()
	case filterView:
		s += m.renderFilters()
	case loginView:
		s += m.renderLogin()
	case editView:
		s += m.renderEdit()
	case summaryView:
		s += m.renderSummary()
	case settingsView:
		s += m.renderSettings()
	}
	return s
}

func (m model) renderMenu() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Open ledger ('o')") + "\n")
	b.WriteString(headerStyle.Render("Records ('t')") + "\n")
	b.WriteString(headerStyle.Render("Summary ('s')") + "\n")
	b.WriteString(headerStyle.Render("Save ('w')") + "\n")
	b.WriteString(headerStyle.Render("Settings ('g')") + "\n")
	b.WriteString(headerStyle.Render("Quit ('q')") + "\n")
	if path := m.svc.Path(); path != "" {
		b.WriteString("\n" + faintStyle.Render("ledger: "+path))
		if m.svc.Dirty() {
			b.WriteString(warnStyle.Render(" (unsaved changes)"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderOpen() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Open Ledger") + "\n\n")

	quick := m.svc.QuickLoadFiles()
	if len(quick) > 0 {
		b.WriteString(faintStyle.Render("Pinned files:") + "\n")
		for i, p := range quick {
			prefix := "  "
			if i == m.quickIndex {
				prefix = cursorStyle.Render("> ")
			}
			b.WriteString(prefix + p + "\n")
		}
		b.WriteString("\n")
	}

	style := formFieldStyle
	if m.quickIndex < 0 {
		style = activeFieldStyle
	}
	b.WriteString(formLabelStyle.Render("Path") + style.Render(m.pathInput) + "\n")
	if m.openMessage != "" {
		b.WriteString("\n" + warnStyle.Render(m.openMessage) + "\n")
	}
	b.WriteString("\n" + faintStyle.Render("Enter: Open | Up/Down: Pinned | Esc: Menu"))
	return b.String()
}

func (m model) renderTable() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Date") + " | " +
		headerStyle.Render("Report") + " | " +
		headerStyle.Render("Category") + " | " +
		headerStyle.Render("Merchant") + " | " +
		headerStyle.Render("Expense") + " | " +
		headerStyle.Render("Income") + " | " +
		headerStyle.Render("Balance") + "\n\n")

	rows := m.result.Rows
	available := m.windowHeight - 10
	if available <= 0 {
		available = 10
	}

	start := 0
	if len(rows) > available {
		start = m.listIndex - available/2
		if start < 0 {
			start = 0
		}
		if start > len(rows)-available {
			start = len(rows) - available
		}
	}
	end := start + available
	if end > len(rows) {
		end = len(rows)
	}

	for i := start; i < end; i++ {
		row := rows[i]
		r := row.Record
		prefix := "  "
		if m.selected[r.ID] {
			prefix = "* "
		}
		if i == m.listIndex {
			prefix = cursorStyle.Render("> ")
		}
		date := r.Date.String()
		if r.Date.IsEmpty() {
			date = "          "
		}
		b.WriteString(fmt.Sprintf("%s%s | %s | %s | %s | %s | %s | %s\n",
			prefix, date, r.ReportName, r.Category, r.Merchant,
			r.Expense.StringFixed(2), r.Income.StringFixed(2), row.Balance.StringFixed(2)))
	}

	if m.result.Empty() {
		b.WriteString(faintStyle.Render("No records match the current filters.") + "\n")
	}
	for _, w := range m.result.Warnings {
		b.WriteString(warnStyle.Render(fmt.Sprintf("ignored %s %q: %s", w.Field, w.Value, w.Reason)) + "\n")
	}

	scroll := ""
	if len(rows) > 0 {
		scroll = fmt.Sprintf(" (%d/%d)", m.listIndex+1, len(rows))
	}
	unlocked := ""
	if m.svc.Editing() {
		unlocked = " | EDITING as " + m.svc.CurrentUser()
	}
	b.WriteString("\n" + faintStyle.Render(
		"f: Filter | c: Clear | a: Add | e: Edit | d: Delete | Space: Mark | x: Export | s: Summary | l/L: Un/Lock | Esc: Menu"+scroll+unlocked))
	return b.String()
}

func (m model) renderFilters() string {
	labels := []string{
		"Report", "Year", "Month", "Category", "Merchant", "Paid Through",
		"Description", "Date From", "Date To",
		"Expense Min", "Expense Max", "Income Min", "Income Max",
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("Filters") + "\n\n")

	spec := m.spec
	for i := uint(0); i < filterFieldCount; i++ {
		style := formFieldStyle
		if i == m.filterField {
			style = activeFieldStyle
		}
		b.WriteString(formLabelStyle.Render(labels[i]) + style.Render(*specField(&spec, i)) + "\n")
	}

	// show what the cascade still offers for the focused dropdown
	if key, ok := domainKeyFor(m.filterField); ok {
		values := m.domains[key]
		if len(values) > 0 {
			shown := values
			if len(shown) > 8 {
				shown = shown[:8]
			}
			b.WriteString("\n" + faintStyle.Render("available: "+strings.Join(shown, ", ")) + "\n")
		}
	}

	matched := 0
	if m.result != nil {
		matched = len(m.result.Rows)
	}
	b.WriteString("\n" + faintStyle.Render(fmt.Sprintf("%d records match", matched)) + "\n")
	b.WriteString(faintStyle.Render("Tab/Enter: Next field | Esc: Apply and return"))
	return b.String()
}

func domainKeyFor(field uint) (string, bool) {
	switch field {
	case filterReport:
		return engine.KeyReport, true
	case filterYear:
		return engine.KeyYear, true
	case filterMonth:
		return engine.KeyMonth, true
	case filterCategory:
		return engine.KeyCategory, true
	case filterMerchant:
		return engine.KeyMerchant, true
	case filterPaidThrough:
		return engine.KeyPaidThrough, true
	}
	return "", false
}

func (m model) renderLogin() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Unlock Editing") + "\n\n")

	userStyle, passStyle := activeFieldStyle, formFieldStyle
	if m.loginField == loginPassField {
		userStyle, passStyle = formFieldStyle, activeFieldStyle
	}
	b.WriteString(formLabelStyle.Render("Username") + userStyle.Render(m.loginUser) + "\n")
	b.WriteString(formLabelStyle.Render("Password") + passStyle.Render(strings.Repeat("*", len(m.loginPass))) + "\n")
	if m.loginMessage != "" {
		b.WriteString("\n" + warnStyle.Render(m.loginMessage) + "\n")
	}
	b.WriteString("\n" + faintStyle.Render("Enter: Submit | Tab: Switch field | Esc: Cancel"))
	return b.String()
}

func (m model) renderEdit() string {
	title := "Edit Record"
	if m.isNew {
		title = "Add Record"
	}
	labels := []string{
		"Date", "Expense", "Income", "Description",
		"Category", "Merchant", "Paid Through", "Report",
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(title) + "\n\n")
	form := m.form
	for i := uint(0); i < editFieldCount; i++ {
		style := formFieldStyle
		if i == m.editField {
			style = activeFieldStyle
		}
		b.WriteString(formLabelStyle.Render(labels[i]) + style.Render(*form.field(i)) + "\n")
	}
	if m.editMessage != "" {
		b.WriteString("\n" + warnStyle.Render(m.editMessage) + "\n")
	}
	b.WriteString("\n" + faintStyle.Render("Enter: Save | Tab: Next field | Esc: Cancel"))
	return b.String()
}

func (m model) renderSummary() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Summary") + "\n\n")

	t := m.summary.Totals
	b.WriteString(fmt.Sprintf("%s %d\n", formLabelStyle.Render("Records"), t.Count))
	b.WriteString(fmt.Sprintf("%s %s\n", formLabelStyle.Render("Income"), t.Income.StringFixed(2)))
	b.WriteString(fmt.Sprintf("%s %s\n", formLabelStyle.Render("Expense"), t.Expense.StringFixed(2)))
	b.WriteString(fmt.Sprintf("%s %s\n\n", formLabelStyle.Render("Net"), t.Net.StringFixed(2)))

	if len(m.summary.Groups) > 0 {
		b.WriteString(headerStyle.Render("Category / Merchant") + "\n")
		for _, g := range m.summary.Groups {
			b.WriteString(fmt.Sprintf("  %-20s %-20s %4d  exp %10s  inc %10s  net %10s\n",
				g.Category, g.Merchant, g.Count,
				g.Expense.StringFixed(2), g.Income.StringFixed(2), g.Net.StringFixed(2)))
		}
	}
	b.WriteString("\n" + faintStyle.Render("Esc: Back"))
	return b.String()
}

func (m model) renderSettings() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Settings") + "\n\n")
	backups, err := m.svc.RecentBackups()
	switch {
	case err != nil:
		b.WriteString(faintStyle.Render("no ledger loaded") + "\n")
	case len(backups) == 0:
		b.WriteString(faintStyle.Render("no backups yet") + "\n")
	default:
		b.WriteString(faintStyle.Render("Recent backups:") + "\n")
		for _, p := range backups {
			b.WriteString("  " + p + "\n")
		}
	}
	b.WriteString("\n" + faintStyle.Render("Esc: Menu"))
	return b.String()
}
