// Package dashboard builds the student dashboard summary from three
// independent API calls made in parallel.
package dashboard

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/zhubert/studydesk/internal/demo"
	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/models"
	"golang.org/x/sync/errgroup"
)

// Service is the subset of the API client the dashboard needs.
type Service interface {
	ListStudentApplications(ctx context.Context, studentID string) ([]models.Application, error)
	ListStudentDocuments(ctx context.Context, studentID string) ([]models.Document, error)
	ListChats(ctx context.Context) ([]models.ChatSummary, error)
}

// Summary is what the dashboard shows.
type Summary struct {
	Applications []models.Application
	Documents    []models.Document
	Chats        []models.ChatSummary // most recently updated first
	Unread       int
	// Remaining is how many more applications the student may submit.
	Remaining int
	// Failed names the parts that fell back to placeholder data.
	Failed []string
}

// Degraded reports whether any part is placeholder data.
func (s Summary) Degraded() bool {
	return len(s.Failed) > 0
}

// StatusCounts tallies applications per status, in first-seen order.
func (s Summary) StatusCounts() []StatusCount {
	var out []StatusCount
	idx := map[string]int{}
	for _, a := range s.Applications {
		i, ok := idx[a.Status]
		if !ok {
			idx[a.Status] = len(out)
			out = append(out, StatusCount{Status: a.Status, Color: a.StatusColor})
			i = len(out) - 1
		}
		out[i].Count++
	}
	return out
}

// StatusCount is one row of StatusCounts.
type StatusCount struct {
	Status string
	Color  string
	Count  int
}

// Dashboard holds the latest summary for one student.
type Dashboard struct {
	svc       Service
	studentID string
	log       *slog.Logger

	mu      sync.Mutex
	summary Summary
	loaded  bool
	loading bool
	gen     uint64
	at      time.Time
}

// New creates a Dashboard for studentID.
func New(svc Service, studentID string, log *slog.Logger) *Dashboard {
	if log == nil {
		log = slog.Default()
	}
	return &Dashboard{svc: svc, studentID: studentID, log: log}
}

// Load fetches applications, documents and chats concurrently. Each part
// that fails is replaced by placeholder data and named in Summary.Failed.
// Load returns KindBusy while a load is in flight, and KindTimeout when ctx
// ends first, in which case the previous summary stays.
func (d *Dashboard) Load(ctx context.Context) error {
	d.mu.Lock()
	if d.loading {
		d.mu.Unlock()
		return errors.Busy(errors.Op("dashboard.Load"))
	}
	d.loading = true
	d.gen++
	gen := d.gen
	d.mu.Unlock()

	s, err := Fetch(ctx, d.svc, d.studentID, d.log)

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return nil
	}
	d.loading = false
	if err != nil {
		return errors.E(errors.Op("dashboard.Load"), errors.KindTimeout, "dashboard load interrupted", err)
	}
	d.summary = s
	d.loaded = true
	d.at = time.Now()
	return nil
}

// Summary returns the latest summary and whether one was loaded.
func (d *Dashboard) Summary() (Summary, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.summary, d.loaded
}

// Loading reports whether a load is in flight.
func (d *Dashboard) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Fetch gathers a Summary. A failed call never cancels the others; it is
// replaced by placeholder data. Only ctx ending stops the group, and then
// Fetch returns ctx's error.
//
// GET /api/chats returns every thread the caller can see, so chats are
// narrowed to studentID's applications.
func Fetch(ctx context.Context, svc Service, studentID string, log *slog.Logger) (Summary, error) {
	var (
		apps   []models.Application
		docs   []models.Document
		chats  []models.ChatSummary
		mu     sync.Mutex
		failed []string
	)
	g, gctx := errgroup.WithContext(ctx)
	fail := func(part string, err error) error {
		if gctx.Err() != nil {
			return gctx.Err()
		}
		log.Warn("dashboard part failed, using placeholder", "part", part, "student", studentID, "error", err)
		mu.Lock()
		failed = append(failed, part)
		mu.Unlock()
		return nil
	}

	g.Go(func() error {
		var err error
		if apps, err = svc.ListStudentApplications(gctx, studentID); err != nil {
			apps = demo.StudentApplications(studentID)
			return fail("applications", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if docs, err = svc.ListStudentDocuments(gctx, studentID); err != nil {
			docs = demo.Documents(studentID)
			return fail("documents", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if chats, err = svc.ListChats(gctx); err != nil {
			return fail("chats", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	if slices.Contains(failed, "chats") {
		chats = demo.Chats(apps)
	}
	chats = ownChats(chats, apps)
	slices.SortStableFunc(chats, func(a, b models.ChatSummary) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	unread := 0
	for _, c := range chats {
		unread += c.UnreadCount
	}
	slices.Sort(failed)

	return Summary{
		Applications: apps,
		Documents:    docs,
		Chats:        chats,
		Unread:       unread,
		Remaining:    max(0, models.MaxApplicationsPerStudent-len(apps)),
		Failed:       failed,
	}, nil
}

// ownChats keeps the chats that belong to one of apps.
func ownChats(chats []models.ChatSummary, apps []models.Application) []models.ChatSummary {
	ids := make(map[string]bool, len(apps))
	for _, a := range apps {
		ids[a.ID] = true
	}
	out := make([]models.ChatSummary, 0, len(chats))
	for _, c := range chats {
		if ids[c.ApplicationID] {
			out = append(out, c)
		}
	}
	return out
}
