package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/core"
	"ledgerdesk/internal/engine"
)

func (m model) handleMenuView(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "o":
		m.state = openView
		m.openMessage = ""
		m.quickIndex = -1
	case "t":
		if m.svc.Path() != "" {
			m.refresh()
			m.state = tableView
		} else {
			m.status = "open a ledger first"
		}
	case "s":
		if m.result != nil {
			m.summary = m.svc.Summarize(m.spec)
			m.state = summaryView
		}
	case "g":
		m.state = settingsView
	case "w":
		if err := m.svc.Save(context.Background()); err != nil {
			m.status = err.Error()
		} else {
			m.status = "saved " + m.svc.Path()
		}
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) handleOpenView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	quick := m.svc.QuickLoadFiles()
	switch msg.String() {
	case "esc":
		m.state = menuView
	case "up":
		if m.quickIndex > -1 {
			m.quickIndex--
		}
	case "down":
		if m.quickIndex < len(quick)-1 {
			m.quickIndex++
		}
	case "enter":
		path := m.pathInput
		if m.quickIndex >= 0 && m.quickIndex < len(quick) {
			path = quick[m.quickIndex]
		}
		if path == "" {
			m.openMessage = "enter a path or pick a pinned file"
			return m, nil
		}
		if m.loadFile(path) {
			m.state = tableView
			m.status = fmt.Sprintf("loaded %d records", m.svc.Len())
		}
	case "backspace":
		if len(m.pathInput) > 0 {
			m.pathInput = m.pathInput[:len(m.pathInput)-1]
		}
	default:
		if msg.Type == tea.KeyRunes || msg.String() == " " {
			m.pathInput += msg.String()
			m.quickIndex = -1
		}
	}
	return m, nil
}

func (m model) handleTableView(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.state = menuView
	case "up", "k":
		if m.listIndex > 0 {
			m.listIndex--
		}
	case "down", "j":
		if m.listIndex < len(m.result.Rows)-1 {
			m.listIndex++
		}
	case "f":
		m.state = filterView
		m.filterField = filterReport
	case "c":
		m.spec = engine.FilterSpec{}
		m.refresh()
	case "l":
		m.state = loginView
		m.loginField = loginUserField
		m.loginUser, m.loginPass, m.loginMessage = "", "", ""
	case "L":
		m.svc.DisableEdit()
		m.status = "editing locked"
	case "a":
		if !m.svc.Editing() {
			m.status = "unlock editing first ('l')"
			return m, nil
		}
		m.state = editView
		m.isNew = true
		m.form = recordForm{Report: core.ManualReportName}
		m.editField = editDate
		m.editMessage = ""
	case "e":
		if !m.svc.Editing() {
			m.status = "unlock editing first ('l')"
			return m, nil
		}
		if m.listIndex < len(m.result.Rows) {
			row := m.result.Rows[m.listIndex]
			m.state = editView
			m.isNew = false
			m.editID = row.Record.ID
			m.form = formFromRecord(row.Record)
			m.editField = editDate
			m.editMessage = ""
		}
	case " ":
		if m.listIndex < len(m.result.Rows) {
			id := m.result.Rows[m.listIndex].Record.ID
			m.selected[id] = !m.selected[id]
		}
	case "d":
		if !m.svc.Editing() {
			m.status = "unlock editing first ('l')"
			return m, nil
		}
		if ids := m.selectedIDs(); len(ids) > 0 {
			n, err := m.svc.RemoveRecords(ids)
			if err != nil {
				m.status = err.Error()
			} else {
				m.status = fmt.Sprintf("removed %d records", n)
			}
			m.selected = map[int64]bool{}
		} else if m.listIndex < len(m.result.Rows) {
			id := m.result.Rows[m.listIndex].Record.ID
			if _, err := m.svc.RemoveRecord(id); err != nil {
				m.status = err.Error()
			}
		}
		m.refresh()
	case "x":
		path := exportPath(m.svc.Path())
		if err := m.svc.ExportCSV(context.Background(), path, m.spec); err != nil {
			m.status = err.Error()
		} else {
			m.status = "exported to " + path
		}
	case "s":
		m.summary = m.svc.Summarize(m.spec)
		m.state = summaryView
	}
	return m, nil
}

func (m model) handleFilterView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := specField(&m.spec, m.filterField)
	switch msg.String() {
	case "esc":
		m.refresh()
		m.state = tableView
	case "enter", "tab", "down":
		m.filterField = (m.filterField + 1) % filterFieldCount
		m.refresh()
	case "shift+tab", "up":
		m.filterField = (m.filterField + filterFieldCount - 1) % filterFieldCount
		m.refresh()
	case "backspace":
		if len(*field) > 0 {
			*field = (*field)[:len(*field)-1]
		}
	default:
		if msg.Type == tea.KeyRunes || msg.String() == " " {
			*field += msg.String()
		}
	}
	return m, nil
}

func (m model) handleLoginView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := &m.loginUser
	if m.loginField == loginPassField {
		field = &m.loginPass
	}
	switch msg.String() {
	case "esc":
		m.state = tableView
	case "tab", "down", "up", "shift+tab":
		m.loginField = 1 - m.loginField
	case "enter":
		if m.loginField == loginUserField {
			m.loginField = loginPassField
			return m, nil
		}
		if err := m.svc.EnableEdit(m.loginUser, m.loginPass); err != nil {
			m.loginMessage = err.Error()
			m.loginPass = ""
			return m, nil
		}
		m.status = "editing enabled for " + m.svc.CurrentUser()
		m.state = tableView
	case "backspace":
		if len(*field) > 0 {
			*field = (*field)[:len(*field)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			*field += msg.String()
		}
	}
	return m, nil
}

func (m model) handleEditView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := m.form.field(m.editField)
	switch msg.String() {
	case "esc":
		m.state = tableView
	case "tab", "down":
		m.editField = (m.editField + 1) % editFieldCount
	case "shift+tab", "up":
		m.editField = (m.editField + editFieldCount - 1) % editFieldCount
	case "enter":
		fields, err := m.form.toFields()
		if err != nil {
			m.editMessage = err.Error()
			return m, nil
		}
		if m.isNew {
			id, err := m.svc.AddRecord(fields)
			if err != nil {
				m.editMessage = err.Error()
				return m, nil
			}
			m.status = fmt.Sprintf("added record %d", id)
		} else {
			if err := m.svc.UpdateRecord(m.editID, fields); err != nil {
				m.editMessage = err.Error()
				return m, nil
			}
			m.status = fmt.Sprintf("updated record %d", m.editID)
		}
		m.refresh()
		m.state = tableView
	case "backspace":
		if len(*field) > 0 {
			*field = (*field)[:len(*field)-1]
		}
	default:
		if msg.Type == tea.KeyRunes || msg.String() == " " {
			*field += msg.String()
		}
	}
	return m, nil
}

func (m model) handleSummaryView(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "s":
		m.state = tableView
	case "q":
		m.state = menuView
	}
	return m, nil
}

func (m model) handleSettingsView(key string) (tea.Model, tea.Cmd) {
	if key == "esc" || key == "q" {
		m.state = menuView
	}
	return m, nil
}

func (m *model) selectedIDs() []int64 {
	var ids []int64
	for id, on := range m.selected {
		if on {
			ids = append(ids, id)
		}
	}
	return ids
}

func exportPath(ledgerPath string) string {
	if ledgerPath == "" {
		return "export.csv"
	}
	base := ledgerPath
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base + "_export.csv"
}
