// Package collection holds the client-side synchronization lifecycle for a
// remote sites collection: load status, the item snapshot, and the
// deletion gate.
//
// State is a plain value mutated only through its transition methods.
// Controller drives it synchronously against a Source; the terminal UI
// drives it from Bubble Tea messages instead.
package collection

import "sitedeck/internal/site"

// Status is the load status of the collection.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Ticket identifies one load. Only the result of the most recent ticket is applied.
type Ticket uint64

// State is the client-held view of the remote collection.
type State struct {
	items           []site.Item
	status          Status
	lastErr         error
	pendingDeletion bool
	generation      Ticket
}

// NewState returns an idle state with no items.
func NewState() *State {
	return &State{}
}

// BeginLoad marks the collection as loading and returns the ticket the
// result must carry. Any earlier ticket becomes stale.
func (s *State) BeginLoad() Ticket {
	s.generation++
	s.status = StatusLoading
	return s.generation
}

// FinishLoad applies a load result. Results for stale tickets are dropped and
// false is returned. On failure the previous items are kept.
func (s *State) FinishLoad(t Ticket, items []site.Item, err error) bool {
	if t != s.generation {
		return false
	}
	if err != nil {
		s.status = StatusError
		s.lastErr = err
		return true
	}
	s.items = append([]site.Item(nil), items...)
	s.status = StatusLoaded
	s.lastErr = nil
	return true
}

// BeginDelete closes the deletion gate. It returns false, changing nothing,
// when a deletion is already in flight.
func (s *State) BeginDelete() bool {
	if s.pendingDeletion {
		return false
	}
	s.pendingDeletion = true
	return true
}

// CancelDelete reopens the gate after the user declined the confirmation.
func (s *State) CancelDelete() {
	s.pendingDeletion = false
}

// EndDelete reopens the gate once the post-delete refetch has completed.
func (s *State) EndDelete() {
	s.pendingDeletion = false
}

// Status returns the load status.
func (s *State) Status() Status { return s.status }

// Err returns the last load failure, or nil after a successful load.
func (s *State) Err() error { return s.lastErr }

// PendingDeletion reports whether a delete-then-refetch cycle is in flight.
func (s *State) PendingDeletion() bool { return s.pendingDeletion }

// Len returns the number of items held.
func (s *State) Len() int { return len(s.items) }

// Items returns a copy of the held items in server order.
func (s *State) Items() []site.Item {
	return append([]site.Item(nil), s.items...)
}

// Find returns the item with the given ID.
func (s *State) Find(id string) (site.Item, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return site.Item{}, false
}
