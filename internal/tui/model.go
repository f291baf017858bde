// Package tui is the interactive terminal frontend. One bubbletea model
// drives every screen; the ledger service does the actual work.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/engine"
	"ledgerdesk/internal/log"
	"ledgerdesk/internal/services"
)

const (
	menuView uint = iota
	openView
	tableView
	filterView
	loginView
	editView
	summaryView
	settingsView
)

const (
	editDate uint = iota
	editExpense
	editIncome
	editDescription
	editCategory
	editMerchant
	editPaidThrough
	editReport
	editFieldCount
)

const (
	filterReport uint = iota
	filterYear
	filterMonth
	filterCategory
	filterMerchant
	filterPaidThrough
	filterDescription
	filterDateFrom
	filterDateTo
	filterExpenseMin
	filterExpenseMax
	filterIncomeMin
	filterIncomeMax
	filterFieldCount
)

const (
	loginUserField uint = iota
	loginPassField
)

type model struct {
	svc    *services.LedgerService
	logger *log.Logger

	state        uint
	windowHeight int
	status       string

	// table
	spec      engine.FilterSpec
	result    *engine.Result
	domains   engine.Domains
	listIndex int
	selected  map[int64]bool

	// open screen
	pathInput   string
	quickIndex  int
	openMessage string

	// login
	loginField   uint
	loginUser    string
	loginPass    string
	loginMessage string

	// edit form
	editField   uint
	form        recordForm
	editID      int64
	isNew       bool
	editMessage string

	// filter form
	filterField uint

	// summary
	summary engine.Summary
}

func NewModel(svc *services.LedgerService, logger *log.Logger) model {
	return model{
		svc:      svc,
		logger:   logger.WithComponent(log.ComponentTUI),
		state:    menuView,
		selected: map[int64]bool{},
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch m.state {
		case menuView:
			return m.handleMenuView(key)
		case openView:
			return m.handleOpenView(msg)
		case tableView:
			return m.handleTableView(key)
		case filterView:
			return m.handleFilterView(msg)
		case loginView:
			return m.handleLoginView(msg)
		case editView:
			return m.handleEditView(msg)
		case summaryView:
			return m.handleSummaryView(key)
		case settingsView:
			return m.handleSettingsView(key)
		}
	case tea.WindowSizeMsg:
		m.windowHeight = msg.Height
		return m, nil
	}
	return m, nil
}

// refresh re-runs the query and domains after any store or filter change.
// Selections that fell out of their own recomputed domain reset to All
// first, so a narrowed dropdown never pins the table to an empty result.
func (m *model) refresh() {
	m.domains = m.svc.AvailableValues(m.spec.Selection())
	if m.spec.DropStale(m.domains) {
		m.domains = m.svc.AvailableValues(m.spec.Selection())
	}
	m.result = m.svc.Query(m.spec)
	if m.listIndex >= len(m.result.Rows) {
		m.listIndex = len(m.result.Rows) - 1
	}
	if m.listIndex < 0 {
		m.listIndex = 0
	}
}

func (m *model) loadFile(path string) bool {
	if err := m.svc.Load(context.Background(), path); err != nil {
		m.openMessage = err.Error()
		return false
	}
	m.spec = engine.FilterSpec{}
	m.selected = map[int64]bool{}
	m.refresh()
	return true
}
