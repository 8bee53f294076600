// Package ui is the Bubble Tea front end for a sites collection.
//
// Core pieces:
//   - View: a screen with its own Init/Update/View (Elm-style)
//   - SiteListView: skeleton, empty call-to-action, or the site list
//   - SiteDetailView: one site with its links
//   - ModalStack: modals that capture input until dismissed
//   - KeybindRegistry/KeyHandler: single keys plus SPC-prefixed sequences
//
// The collection state itself lives in package collection; this package
// turns its transitions into messages and commands.
package ui
