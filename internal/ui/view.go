package ui

import tea "github.com/charmbracelet/bubbletea"

// View is the unit of composition; it mirrors tea.Model but returns a View
// from Update so screens can be swapped without type assertions.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
