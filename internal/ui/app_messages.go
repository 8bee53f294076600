package ui

import (
	"sitedeck/internal/collection"
	"sitedeck/internal/site"
)

// SitesLoadedMsg carries the result of a collection fetch.
// AfterDelete marks the refetch that closes a delete cycle.
type SitesLoadedMsg struct {
	Ticket      collection.Ticket
	Items       []site.Item
	Err         error
	AfterDelete bool
}

// RefreshMsg triggers a manual refetch (r, SPC r).
type RefreshMsg struct{}

// SelectSiteMsg opens the detail view for a site (Enter on a row).
type SelectSiteMsg struct {
	ID string
}

// ShowDeleteSiteMsg asks to delete the focused site (d, SPC s d).
type ShowDeleteSiteMsg struct{}

// DeleteSiteMsg is sent when the user confirms deletion.
type DeleteSiteMsg struct {
	ID   string
	Name string
}

// DeleteDeclinedMsg is sent when the user declines the confirmation.
type DeleteDeclinedMsg struct {
	ID string
}

// SiteDeletedMsg carries the result of the DELETE request.
type SiteDeletedMsg struct {
	ID   string
	Name string
	Err  error
}

// OpenSiteMsg opens the focused site's public URL (v, SPC s v).
type OpenSiteMsg struct{}

// EditSiteMsg opens the focused site's edit flow (e, SPC s e).
type EditSiteMsg struct{}

// CreateSiteMsg opens the site-creation flow (n, SPC s n).
type CreateSiteMsg struct{}

// URLOpenedMsg reports the result of handing a URL to the Opener.
type URLOpenedMsg struct {
	URL string
	Err error
}

// DismissModalMsg closes the top overlay without side effects.
type DismissModalMsg struct{}

// statusExpiredMsg clears the status line if it still shows message seq.
type statusExpiredMsg struct {
	seq int
}
