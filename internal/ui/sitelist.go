package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sitedeck/internal/collection"
	"sitedeck/internal/site"
	"sitedeck/internal/ui/textutil"
)

// skeletonRows is the number of placeholder rows drawn while loading.
const skeletonRows = 3

// siteItem implements list.Item for site.Item.
type siteItem struct {
	site          site.Item
	deleteEnabled bool
}

func (s siteItem) FilterValue() string { return s.site.Title }
func (s siteItem) Title() string       { return s.site.DisplayName() }

// Description shows the bucket name (when known) and the row's controls.
// Delete is greyed out while another deletion is in flight.
func (s siteItem) Description() string {
	controls := "[v]iew  [e]dit  [d]elete"
	if !s.deleteEnabled {
		controls = "[v]iew  [e]dit  (deleting…)"
	}
	if s.site.BucketName != "" {
		return s.site.BucketName + "  " + controls
	}
	return controls
}

// SiteListView renders the collection: a skeleton while loading, the
// call-to-action when empty, otherwise one row per site.
type SiteListView struct {
	list    list.Model
	spinner spinner.Model
	pres    collection.Presentation
	loading bool
	count   int
}

// Ensure SiteListView implements View.
var _ View = (*SiteListView)(nil)

// NewSiteListView creates an empty list view in the skeleton state.
func NewSiteListView() *SiteListView {
	l := list.New(nil, NewSiteListDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	return &SiteListView{
		list:    l,
		spinner: s,
		pres:    collection.Presentation{Kind: collection.ViewSkeleton, DeleteEnabled: true},
	}
}

// Sync copies the state's items and presentation into the view.
// It keeps the cursor on the same row index when possible.
func (v *SiteListView) Sync(s *collection.State) {
	v.pres = collection.Render(s)
	v.loading = s.Status() == collection.StatusLoading
	sites := s.Items()
	v.count = len(sites)
	items := make([]list.Item, len(sites))
	for i, it := range sites {
		items[i] = siteItem{site: it, deleteEnabled: v.pres.DeleteEnabled}
	}
	idx := v.list.Index()
	v.list.SetItems(items)
	if n := len(items); n > 0 && idx >= n {
		v.list.Select(n - 1)
	}
}

// Presentation returns what the view last rendered from.
func (v *SiteListView) Presentation() collection.Presentation {
	return v.pres
}

// SelectedSite returns the focused row. It reports false when the list is
// not showing rows.
func (v *SiteListView) SelectedSite() (site.Item, bool) {
	if v.pres.Kind != collection.ViewList {
		return site.Item{}, false
	}
	it, ok := v.list.SelectedItem().(siteItem)
	if !ok {
		return site.Item{}, false
	}
	return it.site, true
}

// StartSpinner restarts the spinner tick loop.
func (v *SiteListView) StartSpinner() tea.Cmd {
	return v.spinner.Tick
}

// Init implements View.
func (v *SiteListView) Init() tea.Cmd {
	return v.spinner.Tick
}

// Update implements View.
func (v *SiteListView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.list.SetSize(msg.Width, msg.Height-6) // header, banner, status, hint
		return v, nil
	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	if v.pres.Kind != collection.ViewList {
		return v, nil
	}
	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View implements View.
func (v *SiteListView) View() string {
	if v.list.Width() == 0 {
		v.list.SetWidth(80)
	}
	if v.list.Height() == 0 {
		v.list.SetHeight(20)
	}

	var b strings.Builder
	title := Styles.Title.Render("Sites")
	if v.pres.Kind != collection.ViewSkeleton {
		title += Styles.Muted.Render(fmt.Sprintf(" (%d)", v.count))
	}
	if v.loading {
		title += " " + v.spinner.View()
	}
	b.WriteString(title + "\n")

	if v.pres.ShowError {
		b.WriteString(Styles.Banner.Render(collection.MsgLoadFailed) + " " +
			Styles.Hint.Render("Press r to retry.") + "\n")
	}
	b.WriteString("\n")

	switch v.pres.Kind {
	case collection.ViewSkeleton:
		b.WriteString(v.skeletonView())
	case collection.ViewEmpty:
		b.WriteString(Styles.BoxCTA.Render("+ "+collection.MsgCreateCTA) + "\n")
		b.WriteString(Styles.Hint.Render("Press n to open the site generator."))
	case collection.ViewList:
		b.WriteString(v.list.View())
	}
	return b.String()
}

func (v *SiteListView) skeletonView() string {
	width := v.list.Width() - 4
	if width > 40 {
		width = 40
	}
	if width < 8 {
		width = 8
	}
	var rows []string
	for i := 0; i < skeletonRows; i++ {
		title := strings.Repeat("░", width-(i%2)*6)
		desc := strings.Repeat("░", width/2)
		rows = append(rows,
			"  "+Styles.Skeleton.Render(textutil.Truncate(title, width)),
			"  "+Styles.Skeleton.Render(desc),
			"")
	}
	return strings.Join(rows, "\n")
}
