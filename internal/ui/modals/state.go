// Package modals holds the dialogs studydesk opens over a page: forms for
// applications, profile sections, uploads and settings, plus confirmations,
// help and the record inspector. The app layer owns submit and cancel;
// a modal only tracks its own input.
package modals

import (
	tea "charm.land/bubbletea/v2"
)

// ModalState is implemented by every dialog. The unexported marker keeps the
// set closed so the app can switch on the concrete type.
type ModalState interface {
	modalState()
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// ModalWithPreferredWidth dialogs are drawn wider than ModalWidth.
type ModalWithPreferredWidth interface {
	ModalState
	PreferredWidth() int
}

// ModalWithSize dialogs lay out against the terminal size.
type ModalWithSize interface {
	ModalState
	SetSize(width, height int)
}

// HelpShortcut is one row of the help dialog
type HelpShortcut struct {
	Key  string
	Desc string
}

// HelpSection groups rows under a category title
type HelpSection struct {
	Title     string
	Shortcuts []HelpShortcut
}

// HelpShortcutTriggeredMsg replays a shortcut picked from the help dialog.
// Key is in key-press form, e.g. "ctrl+c".
type HelpShortcutTriggeredMsg struct {
	Key string
}
