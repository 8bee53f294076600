package ui

import tea "github.com/charmbracelet/bubbletea"

// ModalStack holds the open modals. The newest one owns the keyboard;
// views underneath see no keys until it closes.
type ModalStack struct {
	modals []View
}

// Open shows v above everything else.
func (s *ModalStack) Open(v View) {
	s.modals = append(s.modals, v)
}

// Close drops the newest modal. It reports false when none was open.
func (s *ModalStack) Close() bool {
	if len(s.modals) == 0 {
		return false
	}
	s.modals[len(s.modals)-1] = nil
	s.modals = s.modals[:len(s.modals)-1]
	return true
}

// Active returns the modal receiving input.
func (s *ModalStack) Active() (View, bool) {
	if len(s.modals) == 0 {
		return nil, false
	}
	return s.modals[len(s.modals)-1], true
}

// Len returns the number of open modals.
func (s *ModalStack) Len() int {
	return len(s.modals)
}

// Route delivers msg to the active modal and keeps the View it returns.
func (s *ModalStack) Route(msg tea.Msg) tea.Cmd {
	if len(s.modals) == 0 {
		return nil
	}
	top := len(s.modals) - 1
	next, cmd := s.modals[top].Update(msg)
	s.modals[top] = next
	return cmd
}
