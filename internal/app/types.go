package app

import (
	"github.com/zhubert/studydesk/internal/models"
	"github.com/zhubert/studydesk/internal/profile"
)

// Results of commands. Each carries the error from the view-model call; the
// view-model itself already holds the new state.

// ApplicationsLoadedMsg is sent when an application list finishes loading
type ApplicationsLoadedMsg struct {
	Scoped bool
	Err    error
}

// ChatsLoadedMsg carries unread counts per application
type ChatsLoadedMsg struct {
	Chats []models.ChatSummary
	Err   error
}

// SelectionChangedMsg is sent once a newly selected application's chat
// has been opened
type SelectionChangedMsg struct {
	ID  string
	Err error
}

// MessageSentMsg is sent when a chat message send completes
type MessageSentMsg struct {
	Err error
}

// StarToggledMsg is sent when a star toggle completes
type StarToggledMsg struct {
	ID  string
	Err error
}

// StatusUpdatedMsg is sent when a status update completes
type StatusUpdatedMsg struct {
	ID     string
	Status string
	Err    error
}

// ApplicationDeletedMsg is sent when a confirmed delete completes
type ApplicationDeletedMsg struct {
	Err error
}

// ApplicationSubmittedMsg is sent when a new application is created or rejected
type ApplicationSubmittedMsg struct {
	Application models.Application
	Err         error
}

// DocumentsLoadedMsg is sent when the document library finishes loading
type DocumentsLoadedMsg struct {
	Err error
}

// DocumentUploadedMsg is sent when an upload completes
type DocumentUploadedMsg struct {
	Document models.Document
	Err      error
}

// DocumentDownloadedMsg is sent when a download completes
type DocumentDownloadedMsg struct {
	Path string
	Err  error
}

// DocumentDeletedMsg is sent when a confirmed document delete completes
type DocumentDeletedMsg struct {
	Err error
}

// DashboardLoadedMsg is sent when the dashboard summary is ready
type DashboardLoadedMsg struct {
	Err error
}

// ProfileLoadedMsg is sent when the student profile finishes loading
type ProfileLoadedMsg struct {
	Err error
}

// SectionSavedMsg is sent when a profile section save completes
type SectionSavedMsg struct {
	Section profile.SectionID
	Err     error
}

// NotesSavedMsg is sent when advisor notes are saved
type NotesSavedMsg struct {
	Err error
}

// StudentDeletedMsg is sent when a confirmed student delete completes
type StudentDeletedMsg struct {
	Err error
}

// ExportedMsg is sent when the application list has been written to disk
type ExportedMsg struct {
	Path string
	Err  error
}

// NoticeExpiredMsg redraws the profile once a section notice times out
type NoticeExpiredMsg struct{}
