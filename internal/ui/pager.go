package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// PagerFunc shows content full screen and blocks until the user leaves
type PagerFunc func(content string) error

// ovPager returns a PagerFunc that hands the terminal to ov for the duration of the call
func ovPager(p *tea.Program) PagerFunc {
	return func(content string) error {
		if p == nil {
			return fmt.Errorf("program not set")
		}

		if err := p.ReleaseTerminal(); err != nil {
			return err
		}
		defer func() {
			// ov needs a moment to restore the screen before we take it back
			time.Sleep(100 * time.Millisecond)
			_ = p.RestoreTerminal()
		}()

		root, err := oviewer.NewRoot(strings.NewReader(content))
		if err != nil {
			return err
		}

		config := oviewer.NewConfig()
		config.IsWriteOnExit = false
		config.IsWriteOriginal = false
		root.SetConfig(config)

		return root.Run()
	}
}

// buildHistoryPage formats the full history list for the pager
func buildHistoryPage(history []string) string {
	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Render("Search History")
	b.WriteString(title)
	b.WriteString("\n\n")

	if len(history) == 0 {
		b.WriteString("No search history\n")
	}
	for i, q := range history {
		b.WriteString(fmt.Sprintf("%3d  %s\n", i+1, q))
	}

	b.WriteString("\nPress q to close")
	return b.String()
}
