package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Grid   GridTheme
	Footer FooterTheme
	Modal  ModalTheme
}

// GridTheme styles the line item table.
type GridTheme struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Cursor   lipgloss.Style
	Editing  lipgloss.Style
	Received lipgloss.Style
	Amount   lipgloss.Style
	Empty    lipgloss.Style
	Error    lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help    lipgloss.Style
	Status  lipgloss.Style
	Summary lipgloss.Style
	Filter  lipgloss.Style
}

// ModalTheme styles the delete confirmation.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	cell := lipgloss.NewStyle()
	return Theme{
		Grid: GridTheme{
			Header: lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")),
			Cell:     cell,
			Cursor:   cell.Reverse(true),
			Editing:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Underline(true),
			Received: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Amount:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		Footer: FooterTheme{
			Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Summary: lipgloss.NewStyle().Bold(true),
			Filter:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}
