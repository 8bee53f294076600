package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sitedeck/internal/collection"
	"sitedeck/internal/site"
)

// ConfirmModal asks a yes/no question. y or Enter confirms; n or Esc declines.
// While it is the top overlay no other key reaches the app.
type ConfirmModal struct {
	Title     string
	Label     string
	Details   string
	OnConfirm func() tea.Msg
	OnCancel  func() tea.Msg
	boxStyle  lipgloss.Style
}

// Ensure ConfirmModal implements View.
var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a confirmation modal. A nil onCancel sends DismissModalMsg.
func NewConfirmModal(title, label string, onConfirm, onCancel func() tea.Msg) *ConfirmModal {
	if onCancel == nil {
		onCancel = func() tea.Msg { return DismissModalMsg{} }
	}
	return &ConfirmModal{
		Title:     title,
		Label:     label,
		OnConfirm: onConfirm,
		OnCancel:  onCancel,
		boxStyle:  Styles.BoxDanger,
	}
}

// WithDetails adds a secondary line under the label.
func (m *ConfirmModal) WithDetails(details string) *ConfirmModal {
	m.Details = details
	return m
}

// NewDeleteSiteConfirmModal builds the delete prompt for a site.
func NewDeleteSiteConfirmModal(it site.Item) *ConfirmModal {
	name := it.DisplayName()
	m := NewConfirmModal(
		"Delete site?",
		collection.ConfirmPrompt(name),
		func() tea.Msg { return DeleteSiteMsg{ID: it.ID, Name: name} },
		func() tea.Msg { return DeleteDeclinedMsg{ID: it.ID} },
	)
	if it.Href != "" {
		m.WithDetails(it.Href)
	}
	return m
}

// Init implements View.
func (m *ConfirmModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "n", "N":
			return m, m.OnCancel
		case "enter", "y", "Y":
			if m.OnConfirm != nil {
				return m, m.OnConfirm
			}
		}
	}
	return m, nil
}

// View implements View.
func (m *ConfirmModal) View() string {
	content := Styles.TitleWarning.Render(m.Title) + "\n\n"
	content += Styles.Label.Render(m.Label)
	if m.Details != "" {
		content += "\n" + Styles.Muted.Render(m.Details)
	}
	content += "\n\n" + Styles.Hint.Render("y/Enter: confirm  n/Esc: cancel")
	return m.boxStyle.Render(content)
}
