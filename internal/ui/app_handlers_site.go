package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"sitedeck/internal/collection"
	"sitedeck/internal/site"
	"sitedeck/internal/siteapi"
)

// handleSitesLoaded applies a fetch result. Results from superseded fetches
// are dropped, but a delete cycle's refetch still reopens the delete gate.
func (a *AppModel) handleSitesLoaded(msg SitesLoadedMsg) tea.Cmd {
	applied := a.State.FinishLoad(msg.Ticket, msg.Items, msg.Err)
	if msg.AfterDelete {
		a.State.EndDelete()
	}
	a.syncViews()

	if !applied {
		return nil
	}
	if msg.Err != nil {
		code, body := siteapi.Diagnostics(msg.Err)
		a.Log.Request("list sites", code, body, msg.Err)
		return a.setStatus(collection.MsgLoadFailed, true)
	}
	if a.Mode == ModeDetail && a.Detail != nil {
		if it, ok := a.State.Find(a.Detail.Site.ID); ok {
			a.Detail.Site = it
		} else {
			a.Mode = ModeList
			a.Detail = nil
		}
	}
	return nil
}

func (a *AppModel) handleRefresh() tea.Cmd {
	if err := a.State.Err(); err != nil {
		a.Log.Info("retrying list after failure", "last_error", err)
	}
	ticket := a.State.BeginLoad()
	a.syncViews()
	return tea.Batch(loadSitesCmd(a.Source, ticket, false), a.List.StartSpinner())
}

func (a *AppModel) handleSelectSite(msg SelectSiteMsg) tea.Cmd {
	it, ok := a.State.Find(msg.ID)
	if !ok {
		return nil
	}
	editURL, err := it.EditURL(a.BaseURL)
	if err != nil {
		a.Log.Warn("resolve edit url", "site_id", it.ID, "error", err)
		editURL = ""
	}
	a.Mode = ModeDetail
	a.Detail = NewSiteDetailView(it, editURL)
	a.Detail.DeleteEnabled = !a.State.PendingDeletion()
	if a.width > 0 {
		a.Detail.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	}
	return a.Detail.Init()
}

// handleShowDeleteSite closes the delete gate and asks for confirmation.
// While a deletion is in flight the request is ignored.
func (a *AppModel) handleShowDeleteSite() tea.Cmd {
	it, ok := a.focusedSite()
	if !ok {
		return nil
	}
	if !a.State.BeginDelete() {
		return a.setStatus("A deletion is already in progress.", false)
	}
	a.syncViews()
	a.Modals.Open(NewDeleteSiteConfirmModal(it))
	return nil
}

func (a *AppModel) handleDeleteDeclined() tea.Cmd {
	a.Modals.Close()
	a.State.CancelDelete()
	a.syncViews()
	return nil
}

func (a *AppModel) handleDeleteSite(msg DeleteSiteMsg) tea.Cmd {
	a.Modals.Close()
	return deleteSiteCmd(a.Source, msg.ID, msg.Name)
}

// handleSiteDeleted reports the outcome and refetches exactly once,
// whether or not the delete succeeded.
func (a *AppModel) handleSiteDeleted(msg SiteDeletedMsg) tea.Cmd {
	var statusCmd tea.Cmd
	if msg.Err != nil {
		code, body := siteapi.Diagnostics(msg.Err)
		a.Log.Request("delete site", code, body, msg.Err)
		statusCmd = a.setStatus(collection.MsgDeleteFailed, true)
	} else {
		a.Log.Info("site deleted", "site_id", msg.ID)
		statusCmd = a.setStatus(collection.MsgDeleted, false)
	}

	ticket := a.State.BeginLoad()
	a.syncViews()
	return tea.Batch(statusCmd, loadSitesCmd(a.Source, ticket, true), a.List.StartSpinner())
}

func (a *AppModel) handleOpenSite() tea.Cmd {
	it, ok := a.focusedSite()
	if !ok {
		return nil
	}
	if it.Href == "" {
		return a.setStatus("This site has no public URL.", true)
	}
	return openURLCmd(a.Opener, it.Href)
}

func (a *AppModel) handleEditSite() tea.Cmd {
	it, ok := a.focusedSite()
	if !ok {
		return nil
	}
	u, err := it.EditURL(a.BaseURL)
	if err != nil {
		a.Log.Warn("resolve edit url", "site_id", it.ID, "error", err)
		return a.setStatus("Could not build the edit link.", true)
	}
	return openURLCmd(a.Opener, u)
}

// handleCreateSite opens the creation flow. It is reachable from the
// empty-state call-to-action and from a populated list.
func (a *AppModel) handleCreateSite() tea.Cmd {
	u, err := site.ResolveLink(a.BaseURL, a.CreatePath)
	if err != nil {
		a.Log.Warn("resolve create url", "path", a.CreatePath, "error", err)
		return a.setStatus("Could not build the create link.", true)
	}
	return openURLCmd(a.Opener, u)
}

func (a *AppModel) handleURLOpened(msg URLOpenedMsg) tea.Cmd {
	if msg.Err != nil {
		a.Log.Warn("open url", "url", msg.URL, "error", msg.Err)
		return a.setStatus("Could not open "+msg.URL, true)
	}
	a.Log.Debug("opened url", "url", msg.URL)
	return nil
}
