package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sitedeck/internal/collection"
)

// statusTTL is how long a notification stays on the status line.
const statusTTL = 4 * time.Second

// loadSitesCmd fetches the collection for ticket. It never cancels; a
// superseded result is dropped by collection.State.FinishLoad.
func loadSitesCmd(src collection.Source, ticket collection.Ticket, afterDelete bool) tea.Cmd {
	return func() tea.Msg {
		items, err := src.List(context.Background())
		return SitesLoadedMsg{Ticket: ticket, Items: items, Err: err, AfterDelete: afterDelete}
	}
}

// deleteSiteCmd issues the DELETE for one site.
func deleteSiteCmd(src collection.Source, id, name string) tea.Cmd {
	return func() tea.Msg {
		err := src.Delete(context.Background(), id)
		return SiteDeletedMsg{ID: id, Name: name, Err: err}
	}
}

// openURLCmd hands url to the opener off the event loop.
func openURLCmd(o Opener, url string) tea.Cmd {
	return func() tea.Msg {
		return URLOpenedMsg{URL: url, Err: o.Open(url)}
	}
}

// statusExpiryCmd schedules clearing of status message seq.
func statusExpiryCmd(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}
