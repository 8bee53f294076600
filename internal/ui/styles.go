package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Theme colors.
const (
	ColorAccent    = "86"  // titles, spinner
	ColorHighlight = "205" // selection, CTA
	ColorDanger    = "196" // delete, errors
	ColorMuted     = "241" // hints
	ColorText      = "252"
	ColorSuccess   = "42"
	ColorSkeleton  = "238"
)

// Styles contains shared style definitions used across views and modals.
var Styles = struct {
	Title        lipgloss.Style
	TitleWarning lipgloss.Style

	BoxDanger lipgloss.Style // confirmation modal
	BoxCTA    lipgloss.Style // empty-state call-to-action
	Banner    lipgloss.Style // load error banner

	Selected lipgloss.Style
	Muted    lipgloss.Style
	Normal   lipgloss.Style
	Hint     lipgloss.Style
	Label    lipgloss.Style
	Skeleton lipgloss.Style

	StatusOK    lipgloss.Style
	StatusError lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2).
		Margin(1),
	BoxCTA: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true).
		Padding(0, 2).
		Margin(1, 0),
	Banner: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)).
		Bold(true),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Label:    lipgloss.NewStyle(),
	Skeleton: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSkeleton)),
	StatusOK: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSuccess)),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)).
		Bold(true),
}

// NewSiteListDelegate returns the row delegate: title on the first line,
// per-row actions on the second.
func NewSiteListDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.SetSpacing(1)
	d.ShowDescription = true
	d.Styles.SelectedTitle = Styles.Selected.PaddingLeft(1).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(ColorHighlight))
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Bold(false).
		Foreground(lipgloss.Color(ColorMuted))
	d.Styles.NormalTitle = Styles.Normal.PaddingLeft(2)
	d.Styles.NormalDesc = Styles.Muted.PaddingLeft(2)
	return d
}
