package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sitedeck/internal/collection"
	"sitedeck/internal/logging"
	"sitedeck/internal/site"
)

// AppModel is the root model. It owns the collection state and switches
// between the site list and a site's detail view.
type AppModel struct {
	Mode       AppMode
	List       *SiteListView
	Detail     *SiteDetailView
	Modals     ModalStack
	KeyHandler *KeyHandler

	State      *collection.State
	Source     collection.Source
	Opener     Opener
	Log        *logging.Logger
	BaseURL    string
	CreatePath string

	// Status is the notification line; it expires after statusTTL.
	Status        string
	StatusIsError bool
	statusSeq     int

	width, height int
}

// AppOptions configures NewAppModel.
type AppOptions struct {
	Source     collection.Source
	Opener     Opener // nil = BrowserOpener
	Logger     *logging.Logger
	BaseURL    string
	CreatePath string
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model. The collection is fetched once at start.
func (a *appModelAdapter) Init() tea.Cmd {
	ticket := a.State.BeginLoad()
	a.syncViews()
	return tea.Batch(loadSitesCmd(a.Source, ticket, false), a.List.Init())
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.List.Update(msg)
		if a.Detail != nil {
			a.Detail.Update(msg)
		}
		return a, nil
	case spinner.TickMsg:
		_, cmd := a.List.Update(msg)
		return a, cmd
	case SitesLoadedMsg:
		return a, a.handleSitesLoaded(msg)
	case RefreshMsg:
		return a, a.handleRefresh()
	case SelectSiteMsg:
		return a, a.handleSelectSite(msg)
	case ShowDeleteSiteMsg:
		return a, a.handleShowDeleteSite()
	case DeleteSiteMsg:
		return a, a.handleDeleteSite(msg)
	case DeleteDeclinedMsg:
		return a, a.handleDeleteDeclined()
	case SiteDeletedMsg:
		return a, a.handleSiteDeleted(msg)
	case OpenSiteMsg:
		return a, a.handleOpenSite()
	case EditSiteMsg:
		return a, a.handleEditSite()
	case CreateSiteMsg:
		return a, a.handleCreateSite()
	case URLOpenedMsg:
		return a, a.handleURLOpened(msg)
	case DismissModalMsg:
		a.Modals.Close()
		return a, nil
	case statusExpiredMsg:
		if msg.seq == a.statusSeq {
			a.Status, a.StatusIsError = "", false
		}
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		// A modal captures every key until it is answered.
		if a.Modals.Len() > 0 {
			return a, a.Modals.Route(msg)
		}
		if a.KeyHandler != nil {
			if consumed, keyCmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
				return a, keyCmd
			}
		}
		if a.Mode == ModeDetail && msg.String() == "esc" {
			a.Mode = ModeList
			a.Detail = nil
			return a, nil
		}
		if a.Mode == ModeList && msg.String() == "enter" {
			if it, ok := a.List.SelectedSite(); ok {
				id := it.ID
				return a, func() tea.Msg { return SelectSiteMsg{ID: id} }
			}
			return a, nil
		}
	}

	v, cmd := a.currentView().Update(msg)
	a.setCurrentView(v)
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	base := a.currentView().View()
	if top, ok := a.Modals.Active(); ok {
		modal := top.View()
		if a.width > 0 && a.height > 0 {
			base = lipgloss.Place(a.width, a.height-2, lipgloss.Center, lipgloss.Center, modal)
		} else {
			base = modal
		}
	}
	if a.Status != "" {
		style := Styles.StatusOK
		if a.StatusIsError {
			style = Styles.StatusError
		}
		base += "\n" + style.Render(a.Status)
	}
	if help := RenderKeybindHelp(a.KeyHandler, a.Mode); help != "" {
		base += "\n" + help
	} else if a.Modals.Len() == 0 {
		base += "\n" + Styles.Hint.Render("Press [SPC] for commands, q to quit")
	}
	return base
}

func (a *appModelAdapter) currentView() View {
	if a.Mode == ModeDetail && a.Detail != nil {
		return a.Detail
	}
	return a.List
}

func (a *appModelAdapter) setCurrentView(v View) {
	switch a.Mode {
	case ModeList:
		if l, ok := v.(*SiteListView); ok {
			a.List = l
		}
	case ModeDetail:
		if d, ok := v.(*SiteDetailView); ok {
			a.Detail = d
		}
	}
}

// focusedSite returns the site the row actions apply to: the detail view's
// site, or the list's cursor row.
func (a *AppModel) focusedSite() (site.Item, bool) {
	if a.Mode == ModeDetail && a.Detail != nil {
		return a.Detail.Site, true
	}
	return a.List.SelectedSite()
}

// syncViews redraws the list and the open detail view from the state.
func (a *AppModel) syncViews() {
	a.List.Sync(a.State)
	if a.Detail != nil {
		a.Detail.DeleteEnabled = !a.State.PendingDeletion()
	}
}

// setStatus shows msg on the status line and schedules its expiry.
func (a *AppModel) setStatus(msg string, isError bool) tea.Cmd {
	a.statusSeq++
	a.Status, a.StatusIsError = msg, isError
	return statusExpiryCmd(a.statusSeq)
}

func newKeybindRegistry() *KeybindRegistry {
	listOnly := []AppMode{ModeList}
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("r", func() tea.Msg { return RefreshMsg{} }, "Refresh")
	reg.BindWithDesc("SPC r", func() tea.Msg { return RefreshMsg{} }, "Refresh")
	reg.BindWithDesc("v", func() tea.Msg { return OpenSiteMsg{} }, "View")
	reg.BindWithDesc("SPC s v", func() tea.Msg { return OpenSiteMsg{} }, "View")
	reg.BindWithDesc("e", func() tea.Msg { return EditSiteMsg{} }, "Edit")
	reg.BindWithDesc("SPC s e", func() tea.Msg { return EditSiteMsg{} }, "Edit")
	reg.BindWithDesc("d", func() tea.Msg { return ShowDeleteSiteMsg{} }, "Delete")
	reg.BindWithDesc("SPC s d", func() tea.Msg { return ShowDeleteSiteMsg{} }, "Delete")
	reg.BindWithDescForMode("n", func() tea.Msg { return CreateSiteMsg{} }, "New site", listOnly)
	reg.BindWithDescForMode("SPC s n", func() tea.Msg { return CreateSiteMsg{} }, "New site", listOnly)
	return reg
}

// NewAppModel creates the root application model.
func NewAppModel(opts AppOptions) *AppModel {
	if opts.Opener == nil {
		opts.Opener = BrowserOpener{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &AppModel{
		Mode:       ModeList,
		List:       NewSiteListView(),
		KeyHandler: NewKeyHandler(newKeybindRegistry()),
		State:      collection.NewState(),
		Source:     opts.Source,
		Opener:     opts.Opener,
		Log:        opts.Logger.WithComponent("ui"),
		BaseURL:    opts.BaseURL,
		CreatePath: opts.CreatePath,
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}
