package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"sitedeck/internal/site"
	"sitedeck/internal/ui/textutil"
)

// SiteDetailView shows every field of one site.
type SiteDetailView struct {
	Site    site.Item
	EditURL string // resolved against the API base URL; "" if unresolvable

	// DeleteEnabled mirrors the list rows: false while a deletion is in flight.
	DeleteEnabled bool
	width         int
}

// Ensure SiteDetailView implements View.
var _ View = (*SiteDetailView)(nil)

// NewSiteDetailView creates a detail view for it.
func NewSiteDetailView(it site.Item, editURL string) *SiteDetailView {
	return &SiteDetailView{Site: it, EditURL: editURL, DeleteEnabled: true}
}

// Init implements View.
func (d *SiteDetailView) Init() tea.Cmd {
	return nil
}

// Update implements View. Esc is handled by the app.
func (d *SiteDetailView) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		d.width = msg.Width
	}
	return d, nil
}

// View implements View.
func (d *SiteDetailView) View() string {
	width := d.width
	if width == 0 {
		width = 80
	}
	valueWidth := width - 14
	if valueWidth < 10 {
		valueWidth = 10
	}

	var b strings.Builder
	b.WriteString(Styles.Title.Render(d.Site.DisplayName()) + "\n\n")
	row := func(label, value string) {
		if value == "" {
			value = Styles.Muted.Render("-")
		} else {
			value = Styles.Normal.Render(textutil.Truncate(value, valueWidth))
		}
		b.WriteString(Styles.Muted.Render(textutil.PadRight(label, 12)) + value + "\n")
	}
	row("ID", d.Site.ID)
	row("Title", d.Site.Title)
	row("Bucket", d.Site.BucketName)
	row("URL", d.Site.Href)
	row("Edit", d.EditURL)
	hint := "v: view  e: edit  d: delete  esc: back"
	if !d.DeleteEnabled {
		hint = "v: view  e: edit  (deleting…)  esc: back"
	}
	b.WriteString("\n" + Styles.Hint.Render(hint))
	return b.String()
}
