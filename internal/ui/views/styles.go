package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	ModeWeb     lipgloss.Style
	ModeDoc     lipgloss.Style
	Prompt      lipgloss.Style
	Header      lipgloss.Style
	ClearButton lipgloss.Style
	RemoveMark  lipgloss.Style
	Item        lipgloss.Style
	Selected    lipgloss.Style
	Correction  lipgloss.Style
	Completion  lipgloss.Style
	Icon        lipgloss.Style
	Detail      lipgloss.Style
	Empty       lipgloss.Style
	Failure     lipgloss.Style
	Scroll      lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		ModeWeb: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("33")).
			Padding(0, 1),
		ModeDoc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Padding(0, 1),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		ClearButton: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		RemoveMark:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Item:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected:    lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Correction:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Completion:  lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Icon:        lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		Detail:      lipgloss.NewStyle().Faint(true),
		Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Failure:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Help:        lipgloss.NewStyle().Faint(true),
	}
}
