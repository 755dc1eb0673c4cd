// Package applications is the list/detail view-model behind the
// Applications and StudentApplication pages.
package applications

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zhubert/studydesk/internal/auth"
	"github.com/zhubert/studydesk/internal/chat"
	"github.com/zhubert/studydesk/internal/demo"
	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/format"
	"github.com/zhubert/studydesk/internal/models"
)

// DefaultStatus is given to newly submitted applications.
const (
	DefaultStatus      = "Pending"
	DefaultStatusColor = "#9e9e9e"
)

// Service is the subset of the API client the list needs.
type Service interface {
	ListApplications(ctx context.Context) ([]models.Application, error)
	ListStudentApplications(ctx context.Context, studentID string) ([]models.Application, error)
	CreateApplication(ctx context.Context, in models.NewApplication) (models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id, status, color string) (models.Application, error)
	ToggleStar(ctx context.Context, id string) (bool, error)
	DeleteApplication(ctx context.Context, id string) error
}

// ChatPanel is the chat collaborator. *chat.Panel satisfies it.
type ChatPanel interface {
	Open(ctx context.Context, applicationID string) error
	Announce(ctx context.Context, applicationID, text string) error
	Close()
}

// Options configures a List.
type Options struct {
	// StudentID scopes the list to one student. Empty lists everything.
	StudentID  string
	Capability auth.Capability
	Chat       ChatPanel
	Logger     *slog.Logger
	// OnEmpty is called after a delete empties a student-scoped list.
	OnEmpty func()
	// NewApplicationID generates the reference number for a submission.
	// Defaults to GenerateApplicationID.
	NewApplicationID func(year int) string
	Validate         *validator.Validate
	Now              func() time.Time
}

// List owns the application collection and the selected id.
type List struct {
	svc       Service
	chat      ChatPanel
	log       *slog.Logger
	c         auth.Capability
	studentID string
	onEmpty   func()
	newID     func(year int) string
	validate  *validator.Validate
	now       func() time.Time

	mu            sync.Mutex
	items         []models.Application
	selectedID    string
	pendingDelete string
	degraded      bool
	loaded        bool
	banner        string
	loadGen       uint64
	selGen        uint64
	loading       bool
	submitting    bool
	deleting      bool
	starring      map[string]bool
	updating      map[string]bool
}

// New creates a List. Nothing is fetched until Load.
func New(svc Service, opts Options) *List {
	l := &List{
		svc:       svc,
		chat:      opts.Chat,
		log:       opts.Logger,
		c:         opts.Capability,
		studentID: opts.StudentID,
		onEmpty:   opts.OnEmpty,
		newID:     opts.NewApplicationID,
		validate:  opts.Validate,
		now:       opts.Now,
		starring:  make(map[string]bool),
		updating:  make(map[string]bool),
	}
	if l.log == nil {
		l.log = slog.Default()
	}
	if l.newID == nil {
		l.newID = GenerateApplicationID
	}
	if l.validate == nil {
		l.validate = validator.New()
	}
	if l.now == nil {
		l.now = time.Now
	}
	return l
}

// GenerateApplicationID returns a reference number of the form NNNNNN/YYYY.
func GenerateApplicationID(year int) string {
	return fmt.Sprintf("%06d/%d", 100000+rand.IntN(900000), year)
}

// StudentScoped reports whether the list shows a single student.
func (l *List) StudentScoped() bool {
	return l.studentID != ""
}

// Load fetches the collection. A failure before anything was loaded shows
// the placeholder dataset; a failed reload keeps the rows already on screen.
// Banner explains either case. Load itself only fails with KindBusy. The
// previous selection survives if it is still present, otherwise the first
// application is selected and its chat opened.
func (l *List) Load(ctx context.Context) error {
	const op errors.Op = "applications.Load"

	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return errors.Busy(op)
	}
	l.loading = true
	l.loadGen++
	gen := l.loadGen
	l.mu.Unlock()

	var (
		apps []models.Application
		err  error
	)
	if l.StudentScoped() {
		apps, err = l.svc.ListStudentApplications(ctx, l.studentID)
	} else {
		apps, err = l.svc.ListApplications(ctx)
	}

	l.mu.Lock()
	if gen != l.loadGen {
		l.mu.Unlock()
		return nil
	}
	l.loading = false
	switch {
	case err != nil && l.loaded:
		l.log.Warn("failed to reload applications, keeping the last list", "student", l.studentID, "error", err)
		l.banner = fmt.Sprintf("Could not refresh applications (%s). Showing the last loaded list.", errors.Message(err))
	case err != nil:
		l.log.Warn("failed to load applications, showing placeholder data", "student", l.studentID, "error", err)
		if l.StudentScoped() {
			apps = demo.StudentApplications(l.studentID)
		} else {
			apps = demo.Applications()
		}
		l.degraded = true
		l.banner = fmt.Sprintf("Could not load applications (%s). Showing sample data.", errors.Message(err))
		l.items = sortStarred(apps)
	default:
		l.degraded = false
		l.loaded = true
		l.banner = ""
		l.items = sortStarred(apps)
	}

	prev := l.selectedID
	if l.indexLocked(prev) < 0 {
		l.selectedID = ""
		if len(l.items) > 0 {
			l.selectedID = l.items[0].ID
		}
		l.selGen++
		l.pendingDelete = ""
	}
	sel := l.selectedID
	l.mu.Unlock()

	l.log.Debug("applications loaded", "count", len(apps), "degraded", err != nil)
	if sel != prev {
		l.openChat(ctx, sel)
	}
	return nil
}

// sampleDataLocked refuses changes to placeholder rows, which do not exist
// on the server.
func (l *List) sampleDataLocked(op errors.Op) error {
	if l.degraded {
		return errors.E(op, errors.KindInvalid, "sample data cannot be changed; reload first")
	}
	return nil
}

func (l *List) openChat(ctx context.Context, id string) {
	if l.chat == nil {
		return
	}
	if id == "" {
		l.chat.Close()
		return
	}
	_ = l.chat.Open(ctx, id)
}

// Select makes id the selected application, drops any pending delete
// confirmation and opens its chat.
func (l *List) Select(ctx context.Context, id string) error {
	l.mu.Lock()
	if l.indexLocked(id) < 0 {
		l.mu.Unlock()
		return errors.E(errors.Op("applications.Select"), errors.KindNotFound, fmt.Sprintf("application %s not found", id))
	}
	l.selectedID = id
	l.selGen++
	l.pendingDelete = ""
	l.mu.Unlock()

	l.openChat(ctx, id)
	return nil
}

// SelectOffset moves the selection by delta rows, clamped to the list.
// It returns the newly selected id.
func (l *List) SelectOffset(ctx context.Context, delta int) (string, error) {
	l.mu.Lock()
	if len(l.items) == 0 {
		l.mu.Unlock()
		return "", nil
	}
	idx := l.indexLocked(l.selectedID) + delta
	idx = max(0, min(idx, len(l.items)-1))
	id := l.items[idx].ID
	same := id == l.selectedID
	l.mu.Unlock()

	if same {
		return id, nil
	}
	return id, l.Select(ctx, id)
}

// ToggleStar flips the priority flag then re-sorts so starred applications
// lead, keeping relative order otherwise.
func (l *List) ToggleStar(ctx context.Context, id string) error {
	const op errors.Op = "applications.ToggleStar"

	l.mu.Lock()
	if err := l.sampleDataLocked(op); err != nil {
		l.mu.Unlock()
		return err
	}
	if l.indexLocked(id) < 0 {
		l.mu.Unlock()
		return errors.E(op, errors.KindNotFound, fmt.Sprintf("application %s not found", id))
	}
	if l.starring[id] {
		l.mu.Unlock()
		return errors.Busy(op)
	}
	l.starring[id] = true
	l.mu.Unlock()

	starred, err := l.svc.ToggleStar(ctx, id)

	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.starring, id)
	if err != nil {
		l.log.Warn("failed to toggle star", "application", id, "error", err)
		return err
	}
	l.items = l.replaceLocked(id, func(a *models.Application) { a.Starred = starred })
	l.items = sortStarred(l.items)
	return nil
}

// UpdateStatus persists a new status and colour, updates the in-memory
// application and announces the change in its chat. Only admins and
// advisors may call it.
func (l *List) UpdateStatus(ctx context.Context, id, status, color string) error {
	const op errors.Op = "applications.UpdateStatus"

	if !l.c.IsAdminOrAdvisor() {
		return errors.PermissionDenied("update application status")
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return errors.E(op, errors.KindInvalid, "status is required")
	}
	if !format.ValidHex(color) {
		return errors.E(op, errors.KindInvalid, fmt.Sprintf("%q is not a #RRGGBB colour", color))
	}

	l.mu.Lock()
	if err := l.sampleDataLocked(op); err != nil {
		l.mu.Unlock()
		return err
	}
	if l.indexLocked(id) < 0 {
		l.mu.Unlock()
		return errors.E(op, errors.KindNotFound, fmt.Sprintf("application %s not found", id))
	}
	if l.updating[id] {
		l.mu.Unlock()
		return errors.Busy(op)
	}
	l.updating[id] = true
	l.mu.Unlock()

	_, err := l.svc.UpdateApplicationStatus(ctx, id, status, color)

	l.mu.Lock()
	delete(l.updating, id)
	if err != nil {
		l.mu.Unlock()
		l.log.Warn("failed to update status", "application", id, "error", err)
		return err
	}
	l.items = l.replaceLocked(id, func(a *models.Application) {
		a.Status = status
		a.StatusColor = color
	})
	l.mu.Unlock()

	if l.chat != nil {
		if err := l.chat.Announce(ctx, id, chat.StatusAnnouncement(status)); err != nil {
			l.log.Warn("status updated but announcement failed", "application", id, "error", err)
		}
	}
	return nil
}

// RequestDelete arms the delete confirmation for id. Only admins and
// advisors may delete.
func (l *List) RequestDelete(id string) error {
	if !l.c.IsAdminOrAdvisor() {
		return errors.PermissionDenied("delete applications")
	}
	const op errors.Op = "applications.RequestDelete"
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.sampleDataLocked(op); err != nil {
		return err
	}
	if l.indexLocked(id) < 0 {
		return errors.E(op, errors.KindNotFound, fmt.Sprintf("application %s not found", id))
	}
	l.pendingDelete = id
	return nil
}

// CancelDelete disarms the confirmation.
func (l *List) CancelDelete() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingDelete = ""
}

// PendingDelete returns the id awaiting confirmation, or "".
func (l *List) PendingDelete() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pendingDelete
}

// ConfirmDelete deletes the application armed by RequestDelete. On success
// the first remaining application is selected, or the selection cleared;
// if a student-scoped list becomes empty, OnEmpty is called.
func (l *List) ConfirmDelete(ctx context.Context) error {
	const op errors.Op = "applications.ConfirmDelete"

	if !l.c.IsAdminOrAdvisor() {
		return errors.PermissionDenied("delete applications")
	}

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

	err := l.svc.DeleteApplication(ctx, id)

	l.mu.Lock()
	l.deleting = false
	if err != nil {
		l.mu.Unlock()
		l.log.Warn("failed to delete application", "application", id, "error", err)
		return err
	}
	l.pendingDelete = ""
	l.items = slices.DeleteFunc(slices.Clone(l.items), func(a models.Application) bool { return a.ID == id })

	next := ""
	if len(l.items) > 0 {
		next = l.items[0].ID
	}
	reselect := next != l.selectedID
	if reselect {
		l.selectedID = next
		l.selGen++
	}
	empty := len(l.items) == 0
	l.mu.Unlock()

	l.log.Info("application deleted", "application", id)
	if reselect {
		l.openChat(ctx, next)
	}
	if empty && l.StudentScoped() && l.onEmpty != nil {
		l.onEmpty()
	}
	return nil
}

// Submit validates and creates a new application. Validation and the
// per-student cap are checked before any network call.
func (l *List) Submit(ctx context.Context, in models.NewApplication) (models.Application, error) {
	const op errors.Op = "applications.Submit"

	if in.StudentID == "" {
		switch {
		case l.c.IsStudent():
			in.StudentID = l.c.StudentID
		default:
			in.StudentID = l.studentID
		}
	}
	if l.c.IsStudent() && in.StudentID != l.c.StudentID {
		return models.Application{}, errors.PermissionDenied("submit applications for another student")
	}
	in.Program = strings.TrimSpace(in.Program)
	in.University = strings.TrimSpace(in.University)
	in.CountryCode = strings.ToUpper(strings.TrimSpace(in.CountryCode))

	if err := l.validate.Struct(in); err != nil {
		return models.Application{}, errors.E(op, errors.KindInvalid, validationMessage(err))
	}

	l.mu.Lock()
	if err := l.sampleDataLocked(op); err != nil {
		l.mu.Unlock()
		return models.Application{}, err
	}
	if l.submitting {
		l.mu.Unlock()
		return models.Application{}, errors.Busy(op)
	}
	count := 0
	for _, a := range l.items {
		if a.StudentID == in.StudentID {
			count++
		}
	}
	if count >= models.MaxApplicationsPerStudent {
		l.mu.Unlock()
		return models.Application{}, errors.ApplicationLimitReached(in.StudentID, models.MaxApplicationsPerStudent)
	}
	l.submitting = true
	l.mu.Unlock()

	if in.ApplicationID == "" {
		in.ApplicationID = l.newID(in.Year)
	}
	if in.Date.IsZero() {
		in.Date = l.now()
	}
	if in.Status == "" {
		in.Status = DefaultStatus
	}

	app, err := l.svc.CreateApplication(ctx, in)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.submitting = false
	if err != nil {
		l.log.Warn("failed to submit application", "student", in.StudentID, "error", err)
		return models.Application{}, err
	}
	if app.StatusColor == "" {
		app.StatusColor = DefaultStatusColor
	}
	items := slices.Clone(l.items)
	l.items = sortStarred(append(items, app))
	if l.selectedID == "" {
		l.selectedID = app.ID
		l.selGen++
	}
	return app, nil
}

// Snapshot is a consistent read of the list for rendering.
type Snapshot struct {
	Items         []models.Application
	SelectedID    string
	SelectionGen  uint64
	PendingDelete string
	Degraded      bool
	Banner        string
	Loading       bool
	Submitting    bool
	Deleting      bool
}

// Snapshot returns the current state. Items must not be modified.
func (l *List) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{
		Items:         l.items,
		SelectedID:    l.selectedID,
		SelectionGen:  l.selGen,
		PendingDelete: l.pendingDelete,
		Degraded:      l.degraded,
		Banner:        l.banner,
		Loading:       l.loading,
		Submitting:    l.submitting,
		Deleting:      l.deleting,
	}
}

// Items returns the applications in display order.
func (l *List) Items() []models.Application {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

// Selected returns the selected application.
func (l *List) Selected() (models.Application, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexLocked(l.selectedID); i >= 0 {
		return l.items[i], true
	}
	return models.Application{}, false
}

// Busy reports whether an operation on id is in flight.
func (l *List) Busy(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.starring[id] || l.updating[id] || (l.deleting && l.pendingDelete == id)
}

// CanSubmit reports whether the current student may add another application.
func (l *List) CanSubmit() bool {
	sid := l.studentID
	if l.c.IsStudent() {
		sid = l.c.StudentID
	}
	if sid == "" {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, a := range l.items {
		if a.StudentID == sid {
			n++
		}
	}
	return n < models.MaxApplicationsPerStudent
}

func (l *List) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(l.items, func(a models.Application) bool { return a.ID == id })
}

// replaceLocked returns a copy of items with fn applied to id's entry.
// Snapshots already handed out keep the old slice.
func (l *List) replaceLocked(id string, fn func(*models.Application)) []models.Application {
	items := slices.Clone(l.items)
	for i := range items {
		if items[i].ID == id {
			fn(&items[i])
		}
	}
	return items
}

// sortStarred returns apps with starred entries first, stable otherwise.
func sortStarred(apps []models.Application) []models.Application {
	out := slices.Clone(apps)
	slices.SortStableFunc(out, func(a, b models.Application) int {
		switch {
		case a.Starred == b.Starred:
			return 0
		case a.Starred:
			return -1
		default:
			return 1
		}
	})
	return out
}

// validationMessage turns validator errors into one user-facing sentence.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fieldMessage(fe))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	name := fieldLabels[fe.Field()]
	if name == "" {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "len":
		return fmt.Sprintf("%s must be %s characters", name, fe.Param())
	case "alpha":
		return name + " must contain only letters"
	case "gte", "lte":
		return fmt.Sprintf("%s must be between 2000 and 2100", name)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	}
	return name + " is invalid"
}

var fieldLabels = map[string]string{
	"Program":     "program",
	"University":  "university",
	"Intake":      "intake",
	"Year":        "year",
	"CountryCode": "country code",
	"StudentID":   "student",
}
