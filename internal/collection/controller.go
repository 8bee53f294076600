package collection

import (
	"context"
	"fmt"
	"sync"

	"sitedeck/internal/logging"
	"sitedeck/internal/site"
	"sitedeck/internal/siteapi"
)

// User-facing messages.
const (
	MsgLoadFailed   = "There was an error while getting your sites."
	MsgDeleteFailed = "There was an error while deleting your site."
	MsgDeleted      = "Site deleted."
	MsgCreateCTA    = "Generate a new site"
)

// ConfirmPrompt returns the question asked before deleting a site.
func ConfirmPrompt(displayName string) string {
	return fmt.Sprintf("Are you sure you want to delete %s?", displayName)
}

// Source is the remote collection.
type Source interface {
	List(ctx context.Context) ([]site.Item, error)
	Delete(ctx context.Context, id string) error
}

// Confirmer asks the user a blocking yes/no question.
// An error is treated as a decline.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Notifier surfaces short user-visible messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// DeleteOutcome is the terminal result of Controller.Delete.
type DeleteOutcome int

const (
	DeleteRejected DeleteOutcome = iota // gate closed; nothing happened
	DeleteDeclined                      // user said no; nothing sent
	DeleteSucceeded
	DeleteFailed
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteRejected:
		return "rejected"
	case DeleteDeclined:
		return "declined"
	case DeleteSucceeded:
		return "succeeded"
	case DeleteFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Controller runs the load and delete operations to completion on the
// calling goroutine. It is safe for concurrent use; network calls run
// outside the lock and the newest load wins.
type Controller struct {
	mu      sync.Mutex
	state   *State
	source  Source
	confirm Confirmer
	notify  Notifier
	log     *logging.Logger
}

// NewController creates a Controller. A nil logger discards diagnostics.
func NewController(src Source, confirm Confirmer, notify Notifier, log *logging.Logger) *Controller {
	if log == nil {
		log = logging.Discard()
	}
	return &Controller{
		state:   NewState(),
		source:  src,
		confirm: confirm,
		notify:  notify,
		log:     log,
	}
}

// Load refetches the collection and returns the resulting status.
// Failures are notified and logged, never returned.
func (c *Controller) Load(ctx context.Context) Status {
	c.mu.Lock()
	ticket := c.state.BeginLoad()
	c.mu.Unlock()

	items, err := c.source.List(ctx)

	c.mu.Lock()
	applied := c.state.FinishLoad(ticket, items, err)
	status := c.state.Status()
	c.mu.Unlock()

	if err != nil && applied {
		c.notify.Error(MsgLoadFailed)
		code, body := siteapi.Diagnostics(err)
		c.log.Request("list sites", code, body, err)
	}
	return status
}

// Delete asks for confirmation, deletes the site, and refetches.
// The refetch runs exactly once for every confirmed attempt, whatever the
// delete returned.
func (c *Controller) Delete(ctx context.Context, id, displayName string) DeleteOutcome {
	c.mu.Lock()
	ok := c.state.BeginDelete()
	c.mu.Unlock()
	if !ok {
		return DeleteRejected
	}

	confirmed, err := c.confirm.Confirm(ConfirmPrompt(displayName))
	if err != nil {
		c.log.Warn("confirmation aborted", "site_id", id, "error", err)
	}
	if err != nil || !confirmed {
		c.mu.Lock()
		c.state.CancelDelete()
		c.mu.Unlock()
		return DeleteDeclined
	}

	outcome := DeleteSucceeded
	if err := c.source.Delete(ctx, id); err != nil {
		outcome = DeleteFailed
		c.notify.Error(MsgDeleteFailed)
		code, body := siteapi.Diagnostics(err)
		c.log.Request("delete site", code, body, err)
	} else {
		c.notify.Success(MsgDeleted)
		c.log.Info("site deleted", "site_id", id)
	}

	c.Load(ctx)

	c.mu.Lock()
	c.state.EndDelete()
	c.mu.Unlock()
	return outcome
}

// Snapshot returns a copy of the current state. Later loads and deletes
// do not affect it.
func (c *Controller) Snapshot() *State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := *c.state
	s.items = c.state.Items()
	return &s
}
