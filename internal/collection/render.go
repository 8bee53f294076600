package collection

// ViewKind is the screen the collection renders as.
type ViewKind int

const (
	ViewSkeleton ViewKind = iota // loading placeholder
	ViewEmpty                    // "Generate a new site" call-to-action
	ViewList                     // one row per item
)

func (k ViewKind) String() string {
	switch k {
	case ViewSkeleton:
		return "skeleton"
	case ViewEmpty:
		return "empty"
	case ViewList:
		return "list"
	default:
		return "unknown"
	}
}

// Presentation is what the collection view should draw for a given state.
type Presentation struct {
	Kind ViewKind
	// ShowError asks for an error banner above the (stale) content.
	// A failed load otherwise renders exactly like a loaded one.
	ShowError bool
	// DeleteEnabled is false while a deletion is in flight.
	DeleteEnabled bool
}

// Render maps state to a Presentation. It has no side effects.
func Render(s *State) Presentation {
	p := Presentation{DeleteEnabled: !s.PendingDeletion()}
	switch s.Status() {
	case StatusIdle, StatusLoading:
		p.Kind = ViewSkeleton
		return p
	case StatusError:
		p.ShowError = true
	}
	if s.Len() == 0 {
		p.Kind = ViewEmpty
	} else {
		p.Kind = ViewList
	}
	return p
}
