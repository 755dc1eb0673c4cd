// Package documents is the view-model of the document library: the
// global list on the Documents page and a student's own files.
package documents

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/zhubert/studydesk/internal/api"
	"github.com/zhubert/studydesk/internal/auth"
	"github.com/zhubert/studydesk/internal/demo"
	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/models"
)

// Service is the subset of the API client the library needs.
type Service interface {
	ListDocuments(ctx context.Context) ([]models.Document, error)
	ListStudentDocuments(ctx context.Context, studentID string) ([]models.Document, error)
	UploadDocument(ctx context.Context, up api.Upload) (models.Document, error)
	DownloadDocument(ctx context.Context, id string, w io.Writer) (int64, error)
	DeleteDocument(ctx context.Context, id string) error
}

// Options configures a Library.
type Options struct {
	// StudentID scopes the library to one student's files.
	StudentID  string
	Capability auth.Capability
	Logger     *slog.Logger
}

// Library owns the document list, its filter and selection.
type Library struct {
	svc       Service
	c         auth.Capability
	studentID string
	log       *slog.Logger

	mu            sync.Mutex
	items         []models.Document
	filter        models.DocumentType
	selectedID    string
	pendingDelete string
	degraded      bool
	loaded        bool
	banner        string
	gen           uint64
	loading       bool
	uploading     bool
	downloading   map[string]bool
	deleting      bool
}

// New creates a Library. Nothing is fetched until Load.
func New(svc Service, opts Options) *Library {
	l := &Library{
		svc:         svc,
		c:           opts.Capability,
		studentID:   opts.StudentID,
		log:         opts.Logger,
		downloading: make(map[string]bool),
	}
	if l.log == nil {
		l.log = slog.Default()
	}
	return l
}

// Load fetches the documents. A first failure shows the placeholder list,
// a failed reload keeps the loaded one; both set a banner. Only KindBusy is
// returned.
func (l *Library) Load(ctx context.Context) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return errors.Busy(errors.Op("documents.Load"))
	}
	l.loading = true
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	var (
		docs []models.Document
		err  error
	)
	if l.studentID != "" {
		docs, err = l.svc.ListStudentDocuments(ctx, l.studentID)
	} else {
		docs, err = l.svc.ListDocuments(ctx)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return nil
	}
	l.loading = false
	switch {
	case err != nil && l.loaded:
		l.log.Warn("failed to reload documents, keeping the last list", "student", l.studentID, "error", err)
		l.banner = fmt.Sprintf("Could not refresh documents (%s). Showing the last loaded list.", errors.Message(err))
	case err != nil:
		l.log.Warn("failed to load documents, showing placeholder data", "student", l.studentID, "error", err)
		l.degraded = true
		l.banner = fmt.Sprintf("Could not load documents (%s). Showing sample data.", errors.Message(err))
		l.items = demo.Documents(l.studentID)
	default:
		l.degraded = false
		l.loaded = true
		l.banner = ""
		l.items = docs
	}
	l.reseedLocked()
	return nil
}

// sampleDataLocked refuses to act on placeholder documents, which the
// server does not have.
func (l *Library) sampleDataLocked(op errors.Op) error {
	if l.degraded {
		return errors.E(op, errors.KindInvalid, "sample documents cannot be changed; reload first")
	}
	return nil
}

// SetFilter shows only documents of type t. The empty type shows everything.
func (l *Library) SetFilter(t models.DocumentType) error {
	if t != "" && !t.Valid() {
		return errors.E(errors.Op("documents.SetFilter"), errors.KindInvalid, fmt.Sprintf("unknown document type %q", t))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filter = t
	l.pendingDelete = ""
	l.reseedLocked()
	return nil
}

// Filter returns the active type filter.
func (l *Library) Filter() models.DocumentType {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

// Visible returns the documents that pass the filter.
func (l *Library) Visible() []models.Document {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.visibleLocked()
}

func (l *Library) visibleLocked() []models.Document {
	if l.filter == "" {
		return slices.Clone(l.items)
	}
	var out []models.Document
	for _, d := range l.items {
		if d.Type == l.filter {
			out = append(out, d)
		}
	}
	return out
}

// reseedLocked keeps the selection on a visible document.
func (l *Library) reseedLocked() {
	vis := l.visibleLocked()
	if slices.ContainsFunc(vis, func(d models.Document) bool { return d.ID == l.selectedID }) {
		return
	}
	l.selectedID = ""
	if len(vis) > 0 {
		l.selectedID = vis[0].ID
	}
}

// SelectOffset moves the selection within the visible documents.
func (l *Library) SelectOffset(delta int) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	vis := l.visibleLocked()
	if len(vis) == 0 {
		return ""
	}
	idx := slices.IndexFunc(vis, func(d models.Document) bool { return d.ID == l.selectedID })
	idx = max(0, min(idx+delta, len(vis)-1))
	if vis[idx].ID != l.selectedID {
		l.pendingDelete = ""
	}
	l.selectedID = vis[idx].ID
	return l.selectedID
}

// Selected returns the selected document.
func (l *Library) Selected() (models.Document, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, d := range l.items {
		if d.ID == l.selectedID {
			return d, true
		}
	}
	return models.Document{}, false
}

// Upload validates and sends a file read from path. The size cap and the
// document type are checked before anything is sent.
func (l *Library) Upload(ctx context.Context, path string, t models.DocumentType) (models.Document, error) {
	const op errors.Op = "documents.Upload"

	if !t.Valid() {
		return models.Document{}, errors.E(op, errors.KindInvalid, fmt.Sprintf("unknown document type %q", t))
	}
	studentID := l.studentID
	if l.c.IsStudent() {
		if studentID != "" && studentID != l.c.StudentID {
			return models.Document{}, errors.PermissionDenied("upload documents for another student")
		}
		studentID = l.c.StudentID
	} else if !l.c.IsAdminOrAdvisor() {
		return models.Document{}, errors.PermissionDenied("upload documents")
	}

	f, err := os.Open(path)
	if err != nil {
		return models.Document{}, errors.E(op, errors.KindIO, "failed to open file", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return models.Document{}, errors.E(op, errors.KindIO, "failed to read file", err)
	}
	if info.IsDir() {
		return models.Document{}, errors.E(op, errors.KindInvalid, filepath.Base(path)+" is a directory")
	}
	if info.Size() > api.MaxUploadSize {
		return models.Document{}, errors.FileTooLarge(filepath.Base(path), info.Size(), api.MaxUploadSize)
	}

	l.mu.Lock()
	if err := l.sampleDataLocked(op); err != nil {
		l.mu.Unlock()
		return models.Document{}, err
	}
	if l.uploading {
		l.mu.Unlock()
		return models.Document{}, errors.Busy(op)
	}
	l.uploading = true
	l.mu.Unlock()

	doc, err := l.svc.UploadDocument(ctx, api.Upload{
		Name:      filepath.Base(path),
		Type:      t,
		StudentID: studentID,
		Size:      info.Size(),
		Body:      f,
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	l.uploading = false
	if err != nil {
		l.log.Warn("upload failed", "file", filepath.Base(path), "error", err)
		return models.Document{}, err
	}
	l.items = append(slices.Clone(l.items), doc)
	l.reseedLocked()
	return doc, nil
}

// Download saves document id into dir using the document's own name,
// reduced to its base name. An existing file gets a numeric suffix. It
// returns the written path.
func (l *Library) Download(ctx context.Context, id, dir string) (string, error) {
	const op errors.Op = "documents.Download"

	l.mu.Lock()
	if err := l.sampleDataLocked(op); err != nil {
		l.mu.Unlock()
		return "", err
	}
	var doc models.Document
	found := false
	for _, d := range l.items {
		if d.ID == id {
			doc, found = d, true
			break
		}
	}
	if !found {
		l.mu.Unlock()
		return "", errors.E(op, errors.KindNotFound, fmt.Sprintf("document %s not found", id))
	}
	if l.downloading[id] {
		l.mu.Unlock()
		return "", errors.Busy(op)
	}
	l.downloading[id] = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.downloading, id)
		l.mu.Unlock()
	}()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.E(op, errors.KindIO, "failed to create download directory", err)
	}
	path, f, err := createUnique(dir, SafeName(doc.Name, doc.ID))
	if err != nil {
		return "", errors.E(op, errors.KindIO, "failed to create file", err)
	}

	_, err = l.svc.DownloadDocument(ctx, id, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.E(op, errors.KindIO, "failed to save file", cerr)
	}
	if err != nil {
		_ = os.Remove(path)
		l.log.Warn("download failed", "document", id, "error", err)
		return "", err
	}
	l.log.Info("document downloaded", "document", id, "path", path)
	return path, nil
}

// SafeName reduces a server-supplied name to a plain file name. The fallback,
// usually the document id, gets the same treatment.
func SafeName(name, fallback string) string {
	for _, candidate := range []string{name, fallback} {
		if base := baseName(candidate); base != "" {
			return base
		}
	}
	return "document"
}

func baseName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(strings.TrimSpace(name))
	switch name {
	case ".", "/", "..":
		return ""
	}
	return name
}

// createUnique creates name in dir, adding " (n)" before the extension
// until the name is free.
func createUnique(dir, name string) (string, *os.File, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < 1000; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return path, f, nil
		}
		if !os.IsExist(err) {
			return "", nil, err
		}
	}
	return "", nil, fmt.Errorf("no free file name for %s", name)
}

// RequestDelete arms the delete confirmation for id.
func (l *Library) RequestDelete(id string) error {
	const op errors.Op = "documents.RequestDelete"
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.sampleDataLocked(op); err != nil {
		return err
	}
	for _, d := range l.items {
		if d.ID == id {
			if !l.c.CanDeleteDocument(d) {
				return errors.PermissionDenied("delete this document")
			}
			l.pendingDelete = id
			return nil
		}
	}
	return errors.E(op, errors.KindNotFound, fmt.Sprintf("document %s not found", id))
}

// CancelDelete disarms the confirmation.
func (l *Library) CancelDelete() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingDelete = ""
}

// PendingDelete returns the id awaiting confirmation, or "".
func (l *Library) PendingDelete() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pendingDelete
}

// ConfirmDelete deletes the armed document.
func (l *Library) ConfirmDelete(ctx context.Context) error {
	const op errors.Op = "documents.ConfirmDelete"

	l.mu.Lock()
	if err := l.sampleDataLocked(op); err != nil {
		l.mu.Unlock()
		return err
	}
	id := l.pendingDelete
	if id == "" {
		l.mu.Unlock()
		return errors.E(op, errors.KindInvalid, "no delete awaiting confirmation")
	}
	if l.deleting {
		l.mu.Unlock()
		return errors.Busy(op)
	}
	l.deleting = true
	l.mu.Unlock()

	err := l.svc.DeleteDocument(ctx, id)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.deleting = false
	if err != nil {
		l.log.Warn("failed to delete document", "document", id, "error", err)
		return err
	}
	l.pendingDelete = ""
	l.items = slices.DeleteFunc(slices.Clone(l.items), func(d models.Document) bool { return d.ID == id })
	l.reseedLocked()
	return nil
}

// Snapshot is a consistent read of the library for rendering.
type Snapshot struct {
	Visible       []models.Document
	Total         int
	Filter        models.DocumentType
	SelectedID    string
	PendingDelete string
	Degraded      bool
	Banner        string
	Loading       bool
	Uploading     bool
	Deleting      bool
}

// Snapshot returns the current state.
func (l *Library) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{
		Visible:       l.visibleLocked(),
		Total:         len(l.items),
		Filter:        l.filter,
		SelectedID:    l.selectedID,
		PendingDelete: l.pendingDelete,
		Degraded:      l.degraded,
		Banner:        l.banner,
		Loading:       l.loading,
		Uploading:     l.uploading,
		Deleting:      l.deleting,
	}
}

// Downloading reports whether id is being downloaded.
func (l *Library) Downloading(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.downloading[id]
}
