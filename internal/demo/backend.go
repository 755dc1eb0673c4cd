package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhubert/studydesk/internal/api"
	"github.com/zhubert/studydesk/internal/auth"
	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/models"
)

// Backend is an in-memory stand-in for the REST API, seeded from the
// fixtures. It serves offline demos and tests. Safe for concurrent use.
type Backend struct {
	mu       sync.Mutex
	user     models.Sender
	now      func() time.Time
	apps     map[string]models.Application
	chats    map[string]*models.ApplicationChat
	docs     map[string]models.Document
	blobs    map[string][]byte
	students map[string]models.Student
	profile  string
	failures map[string]error
	calls    map[string]int
}

// NewBackend seeds a backend that answers as c. Students see their own
// record as the profile; everyone else sees the demo student.
func NewBackend(c auth.Capability) *Backend {
	b := &Backend{
		user:     models.Sender{ID: c.UserID, Name: c.Name, Role: string(c.Role)},
		now:      func() time.Time { return Epoch },
		apps:     make(map[string]models.Application),
		chats:    make(map[string]*models.ApplicationChat),
		docs:     make(map[string]models.Document),
		blobs:    make(map[string][]byte),
		students: make(map[string]models.Student),
		profile:  StudentID,
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
	if c.IsStudent() && c.StudentID != "" {
		b.profile = c.StudentID
	}
	b.students[b.profile] = Student(b.profile)
	for _, a := range StudentApplications(b.profile) {
		b.apps[a.ID] = a
		chat := Chat(a.ID)
		b.chats[a.ID] = &chat
	}
	for _, d := range append(Documents(""), Documents(b.profile)...) {
		b.docs[d.ID] = d
		b.blobs[d.ID] = []byte("demo contents of " + d.Name)
	}
	return b
}

// SetClock replaces the clock used for new records.
func (b *Backend) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}

// Fail makes every later call to method return err. A nil err clears it.
func (b *Backend) Fail(method string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.failures, method)
		return
	}
	b.failures[method] = err
}

// Calls returns how many times method has been called.
func (b *Backend) Calls(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[method]
}

// AddStudent registers another student record.
func (b *Backend) AddStudent(s models.Student) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.students[s.ID] = s
}

// AddApplication inserts or replaces an application.
func (b *Backend) AddApplication(a models.Application) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.apps[a.ID] = a
	if _, ok := b.chats[a.ID]; !ok {
		b.chats[a.ID] = &models.ApplicationChat{ID: "chat-" + a.ID, ApplicationID: a.ID}
	}
}

// Receive appends a message from someone else, unread, to an application's chat.
func (b *Backend) Receive(applicationID string, from models.Sender, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	chat, ok := b.chats[applicationID]
	if !ok {
		return
	}
	chat.Messages = append(chat.Messages, models.Message{
		ID: uuid.NewString(), Sender: from, Text: text, Timestamp: b.now(),
	})
}

// begin records a call and returns the injected failure, if any.
// Callers hold b.mu.
func (b *Backend) begin(ctx context.Context, method string) error {
	b.calls[method]++
	if err := ctx.Err(); err != nil {
		return errors.RequestFailed(errors.Op("demo."+method), err)
	}
	return b.failures[method]
}

func notFound(method, what, id string) error {
	return errors.E(errors.Op("demo."+method), errors.KindNotFound, fmt.Sprintf("%s %s not found", what, id))
}

func (b *Backend) sortedApps(keep func(models.Application) bool) []models.Application {
	out := make([]models.Application, 0, len(b.apps))
	for _, a := range b.apps {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (b *Backend) ListApplications(ctx context.Context) ([]models.Application, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "ListApplications"); err != nil {
		return nil, err
	}
	return b.sortedApps(func(models.Application) bool { return true }), nil
}

func (b *Backend) ListStudentApplications(ctx context.Context, studentID string) ([]models.Application, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "ListStudentApplications"); err != nil {
		return nil, err
	}
	return b.sortedApps(func(a models.Application) bool { return a.StudentID == studentID }), nil
}

func (b *Backend) CreateApplication(ctx context.Context, in models.NewApplication) (models.Application, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "CreateApplication"); err != nil {
		return models.Application{}, err
	}
	a := models.Application{
		ID:            uuid.NewString(),
		StudentID:     in.StudentID,
		Program:       in.Program,
		University:    in.University,
		CountryCode:   in.CountryCode,
		Intake:        in.Intake,
		Year:          in.Year,
		Status:        in.Status,
		ApplicationID: in.ApplicationID,
		Date:          in.Date,
	}
	if s, ok := b.students[in.StudentID]; ok {
		a.StudentName = s.FullName()
	}
	if a.Date.IsZero() {
		a.Date = b.now()
	}
	b.apps[a.ID] = a
	b.chats[a.ID] = &models.ApplicationChat{ID: "chat-" + a.ID, ApplicationID: a.ID}
	return a, nil
}

func (b *Backend) UpdateApplicationStatus(ctx context.Context, id, status, color string) (models.Application, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "UpdateApplicationStatus"); err != nil {
		return models.Application{}, err
	}
	a, ok := b.apps[id]
	if !ok {
		return models.Application{}, notFound("UpdateApplicationStatus", "application", id)
	}
	a.Status, a.StatusColor = status, color
	b.apps[id] = a
	return a, nil
}

func (b *Backend) ToggleStar(ctx context.Context, id string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "ToggleStar"); err != nil {
		return false, err
	}
	a, ok := b.apps[id]
	if !ok {
		return false, notFound("ToggleStar", "application", id)
	}
	a.Starred = !a.Starred
	b.apps[id] = a
	return a.Starred, nil
}

func (b *Backend) DeleteApplication(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "DeleteApplication"); err != nil {
		return err
	}
	if _, ok := b.apps[id]; !ok {
		return notFound("DeleteApplication", "application", id)
	}
	delete(b.apps, id)
	delete(b.chats, id)
	return nil
}

// GetApplicationChat returns a copy of the thread and marks nothing read;
// MarkChatRead does that.
func (b *Backend) GetApplicationChat(ctx context.Context, applicationID string) (models.ApplicationChat, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "GetApplicationChat"); err != nil {
		return models.ApplicationChat{}, err
	}
	chat, ok := b.chats[applicationID]
	if !ok {
		return models.ApplicationChat{}, notFound("GetApplicationChat", "chat for application", applicationID)
	}
	out := *chat
	out.Messages = append([]models.Message(nil), chat.Messages...)
	return out, nil
}

func (b *Backend) MarkChatRead(ctx context.Context, applicationID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "MarkChatRead"); err != nil {
		return err
	}
	chat, ok := b.chats[applicationID]
	if !ok {
		return notFound("MarkChatRead", "chat for application", applicationID)
	}
	for i := range chat.Messages {
		if chat.Messages[i].Sender.ID != b.user.ID {
			chat.Messages[i].Read = true
		}
	}
	return nil
}

func (b *Backend) SendMessage(ctx context.Context, applicationID, text string) (models.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "SendMessage"); err != nil {
		return models.Message{}, err
	}
	chat, ok := b.chats[applicationID]
	if !ok {
		return models.Message{}, notFound("SendMessage", "chat for application", applicationID)
	}
	msg := models.Message{ID: uuid.NewString(), Sender: b.user, Text: text, Timestamp: b.now(), Read: true}
	chat.Messages = append(chat.Messages, msg)
	return msg, nil
}

// ListChats summarizes every thread, most recently updated first.
func (b *Backend) ListChats(ctx context.Context) ([]models.ChatSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "ListChats"); err != nil {
		return nil, err
	}
	out := make([]models.ChatSummary, 0, len(b.chats))
	for id, chat := range b.chats {
		s := models.ChatSummary{ID: chat.ID, ApplicationID: id, University: b.apps[id].University}
		for _, m := range chat.Messages {
			if !m.Read && m.Sender.ID != b.user.ID {
				s.UnreadCount++
			}
		}
		if n := len(chat.Messages); n > 0 {
			s.LastMessage = chat.Messages[n-1].Text
			s.UpdatedAt = chat.Messages[n-1].Timestamp
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ApplicationID < out[j].ApplicationID
	})
	return out, nil
}

func (b *Backend) sortedDocs(keep func(models.Document) bool) []models.Document {
	out := make([]models.Document, 0, len(b.docs))
	for _, d := range b.docs {
		if keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.After(out[j].UploadedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (b *Backend) ListDocuments(ctx context.Context) ([]models.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "ListDocuments"); err != nil {
		return nil, err
	}
	return b.sortedDocs(func(d models.Document) bool { return d.StudentID == "" }), nil
}

func (b *Backend) ListStudentDocuments(ctx context.Context, studentID string) ([]models.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "ListStudentDocuments"); err != nil {
		return nil, err
	}
	return b.sortedDocs(func(d models.Document) bool { return d.StudentID == studentID }), nil
}

func (b *Backend) UploadDocument(ctx context.Context, up api.Upload) (models.Document, error) {
	// Read before locking; Body may be slow
	data, err := io.ReadAll(up.Body)
	if err != nil {
		return models.Document{}, errors.E(errors.Op("demo.UploadDocument"), errors.KindIO, err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "UploadDocument"); err != nil {
		return models.Document{}, err
	}
	d := models.Document{
		ID:         uuid.NewString(),
		Name:       up.Name,
		Type:       up.Type,
		StudentID:  up.StudentID,
		Size:       int64(len(data)),
		UploadedAt: b.now(),
	}
	if strings.HasSuffix(strings.ToLower(up.Name), ".pdf") {
		d.MimeType = "application/pdf"
	}
	b.docs[d.ID] = d
	b.blobs[d.ID] = data
	return d, nil
}

func (b *Backend) DownloadDocument(ctx context.Context, id string, w io.Writer) (int64, error) {
	b.mu.Lock()
	if err := b.begin(ctx, "DownloadDocument"); err != nil {
		b.mu.Unlock()
		return 0, err
	}
	data, ok := b.blobs[id]
	b.mu.Unlock()
	if !ok {
		return 0, notFound("DownloadDocument", "document", id)
	}
	n, err := w.Write(data)
	return int64(n), err
}

func (b *Backend) DeleteDocument(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "DeleteDocument"); err != nil {
		return err
	}
	if _, ok := b.docs[id]; !ok {
		return notFound("DeleteDocument", "document", id)
	}
	delete(b.docs, id)
	delete(b.blobs, id)
	return nil
}

func (b *Backend) GetProfile(ctx context.Context) (models.Student, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "GetProfile"); err != nil {
		return models.Student{}, err
	}
	s, ok := b.students[b.profile]
	if !ok {
		return models.Student{}, notFound("GetProfile", "student", b.profile)
	}
	return s, nil
}

func (b *Backend) GetStudent(ctx context.Context, id string) (models.Student, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "GetStudent"); err != nil {
		return models.Student{}, err
	}
	s, ok := b.students[id]
	if !ok {
		return models.Student{}, notFound("GetStudent", "student", id)
	}
	return s, nil
}

// UpdateStudent merges patch into the stored record the way the REST API
// does: objects merge key by key, everything else replaces.
func (b *Backend) UpdateStudent(ctx context.Context, id string, patch any) (models.Student, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "UpdateStudent"); err != nil {
		return models.Student{}, err
	}
	s, ok := b.students[id]
	if !ok {
		return models.Student{}, notFound("UpdateStudent", "student", id)
	}
	merged, err := mergeJSON(s, patch)
	if err != nil {
		return models.Student{}, errors.E(errors.Op("demo.UpdateStudent"), errors.KindInvalid, err)
	}
	b.students[id] = merged
	return merged, nil
}

func mergeJSON(s models.Student, patch any) (models.Student, error) {
	var base, delta map[string]any
	raw, err := json.Marshal(s)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(raw, &base); err != nil {
		return s, err
	}
	if raw, err = json.Marshal(patch); err != nil {
		return s, err
	}
	if err := json.Unmarshal(raw, &delta); err != nil {
		return s, err
	}
	mergeMaps(base, delta)
	if raw, err = json.Marshal(base); err != nil {
		return s, err
	}
	var out models.Student
	err = json.Unmarshal(raw, &out)
	return out, err
}

func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		sub, ok := v.(map[string]any)
		if cur, isMap := dst[k].(map[string]any); ok && isMap {
			mergeMaps(cur, sub)
			continue
		}
		dst[k] = v
	}
}

func (b *Backend) UpdateAdvisorNotes(ctx context.Context, id, notes string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "UpdateAdvisorNotes"); err != nil {
		return err
	}
	s, ok := b.students[id]
	if !ok {
		return notFound("UpdateAdvisorNotes", "student", id)
	}
	s.AdvisorNotes = notes
	b.students[id] = s
	return nil
}

func (b *Backend) DeleteStudent(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(ctx, "DeleteStudent"); err != nil {
		return err
	}
	if _, ok := b.students[id]; !ok {
		return notFound("DeleteStudent", "student", id)
	}
	delete(b.students, id)
	for appID, a := range b.apps {
		if a.StudentID == id {
			delete(b.apps, appID)
			delete(b.chats, appID)
		}
	}
	return nil
}
