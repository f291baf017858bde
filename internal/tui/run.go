package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/log"
	"ledgerdesk/internal/services"
)

// Run starts the interactive session. When initialPath is set the ledger
// is loaded before the first frame.
func Run(svc *services.LedgerService, logger *log.Logger, initialPath string) error {
	m := NewModel(svc, logger)
	if initialPath != "" {
		if err := svc.Load(context.Background(), initialPath); err != nil {
			return err
		}
		m.refresh()
		m.state = tableView
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
