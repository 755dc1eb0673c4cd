package app

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/studydesk/internal/applications"
	"github.com/zhubert/studydesk/internal/dashboard"
	"github.com/zhubert/studydesk/internal/documents"
	"github.com/zhubert/studydesk/internal/export"
	"github.com/zhubert/studydesk/internal/models"
	"github.com/zhubert/studydesk/internal/profile"
)

// requestTimeout bounds every backend round trip started from the UI
const requestTimeout = 30 * time.Second

// withTimeout runs fn in a command with a bounded context
func withTimeout(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return fn(ctx)
	}
}

// loadPage starts whatever page p needs from the backend
func (m *Model) loadPage(p Page) tea.Cmd {
	m.loaded[p] = true
	switch p {
	case PageApplications:
		if m.apps == nil {
			return nil
		}
		return tea.Batch(loadApplications(m.apps, false), m.loadChats())
	case PageStudentApplication:
		if m.studentApps == nil {
			return nil
		}
		return tea.Batch(loadApplications(m.studentApps, true), m.loadChats())
	case PageDocuments:
		return loadDocuments(m.library)
	case PageStudentDashboard:
		if m.dash == nil {
			return nil
		}
		return loadDashboard(m.dash)
	case PageStudentProfile:
		if m.prof == nil {
			return nil
		}
		return loadProfile(m.prof)
	}
	return nil
}

func loadApplications(l *applications.List, scoped bool) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		return ApplicationsLoadedMsg{Scoped: scoped, Err: l.Load(ctx)}
	})
}

// loadChats fetches unread counts for the list badges
func (m *Model) loadChats() tea.Cmd {
	svc := m.svc
	return withTimeout(func(ctx context.Context) tea.Msg {
		chats, err := svc.ListChats(ctx)
		return ChatsLoadedMsg{Chats: chats, Err: err}
	})
}

func selectApplication(l *applications.List, id string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		return SelectionChangedMsg{ID: id, Err: l.Select(ctx, id)}
	})
}

func sendChatMessage(send func(context.Context) error) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		return MessageSentMsg{Err: send(ctx)}
	})
}

func toggleStar(l *applications.List, id string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		return StarToggledMsg{ID: id, Err: l.ToggleStar(ctx, id)}
	})
}

func updateStatus(l *applications.List, id, status, color string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		return StatusUpdatedMsg{ID: id, Status: status, Err: l.UpdateStatus(ctx, id, status, color)}
	})
}

func deleteApplication(l *applications.List) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		return ApplicationDeletedMsg{Err: l.ConfirmDelete(ctx)}
	})
}

func submitApplication(l *applications.List, in models.NewApplication) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		app, err := l.Submit(ctx, in)
		return ApplicationSubmittedMsg{Application: app, Err: err}
	})
}

func loadDocuments(lib *documents.Library) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		return DocumentsLoadedMsg{Err: lib.Load(ctx)}
	})
}

func uploadDocument(lib *documents.Library, path string, t models.DocumentType) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		doc, err := lib.Upload(ctx, path, t)
		return DocumentUploadedMsg{Document: doc, Err: err}
	})
}

func downloadDocument(lib *documents.Library, id, dir string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		path, err := lib.Download(ctx, id, dir)
		return DocumentDownloadedMsg{Path: path, Err: err}
	})
}

func deleteDocument(lib *documents.Library) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		return DocumentDeletedMsg{Err: lib.ConfirmDelete(ctx)}
	})
}

func loadDashboard(d *dashboard.Dashboard) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		return DashboardLoadedMsg{Err: d.Load(ctx)}
	})
}

func loadProfile(p *profile.Profile) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		return ProfileLoadedMsg{Err: p.Load(ctx)}
	})
}

func saveSection(p *profile.Profile, id profile.SectionID) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		return SectionSavedMsg{Section: id, Err: p.Save(ctx, id)}
	})
}

func saveNotes(p *profile.Profile, notes string) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		return NotesSavedMsg{Err: p.SaveNotes(ctx, notes)}
	})
}

func deleteStudent(p *profile.Profile) tea.Cmd {
	return withTimeout(func(ctx context.Context) tea.Msg {
		return StudentDeletedMsg{Err: p.ConfirmDelete(ctx)}
	})
}

// exportApplications writes apps to dir as XLSX, named after scope
func exportApplications(apps []models.Application, dir, scope string) tea.Cmd {
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return ExportedMsg{Err: err}
		}
		path := filepath.Join(dir, export.DefaultFileName(export.FormatXLSX, scope))
		return ExportedMsg{Path: path, Err: export.WriteFile(path, export.ApplicationsDataset(apps))}
	}
}

// noticeExpiry redraws once a profile notice has timed out
func noticeExpiry() tea.Cmd {
	return tea.Tick(profile.NoticeTTL, func(time.Time) tea.Msg {
		return NoticeExpiredMsg{}
	})
}
