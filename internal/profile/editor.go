package profile

import (
	"context"
	"sync"
	"time"

	"github.com/zhubert/studydesk/internal/errors"
)

// NoticeTTL is how long a success notice stays visible.
const NoticeTTL = 3 * time.Second

// Phase is where a section is in its edit cycle.
type Phase int

const (
	Viewing Phase = iota
	Editing
	Saving
)

func (p Phase) String() string {
	switch p {
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	}
	return "viewing"
}

// Notice is the inline message under a section. Success notices expire;
// error notices stay until the next Begin, Cancel or successful save.
type Notice struct {
	Text    string
	Error   bool
	Expires time.Time // zero for notices that don't expire
}

// Empty reports whether there is nothing to show.
func (n Notice) Empty() bool {
	return n.Text == ""
}

// Draft is a section value that can deep-copy itself.
type Draft[T any] interface {
	Clone() T
}

// Editor is the edit state machine of one section. The canonical record is
// never touched here: Commit hands the draft to a caller-supplied save
// function, which is responsible for persisting and merging it.
type Editor[T Draft[T]] struct {
	schema *Schema[T]
	now    func() time.Time

	mu     sync.Mutex
	phase  Phase
	draft  T
	notice Notice
}

// NewEditor creates an editor in the Viewing phase.
func NewEditor[T Draft[T]](schema *Schema[T]) *Editor[T] {
	return &Editor[T]{schema: schema, now: time.Now}
}

// Schema returns the section's field table.
func (e *Editor[T]) Schema() *Schema[T] {
	return e.schema
}

// Begin starts editing from a deep copy of snapshot. Beginning again while
// editing restarts from the new snapshot.
func (e *Editor[T]) Begin(snapshot T) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase == Saving {
		return errors.Busy(errors.Op("profile.Begin"))
	}
	e.draft = snapshot.Clone()
	e.phase = Editing
	e.notice = Notice{}
	return nil
}

// Set writes value to f on a fresh copy of the draft.
func (e *Editor[T]) Set(f Field[T], value string) error {
	if !f.valid() {
		return errors.UnknownField(e.schema.Name, f.Path)
	}
	return e.mutate(func(d *T) error { return f.set(d, value) })
}

// SetPath resolves path through the schema and writes value. Unknown or
// malformed paths leave the draft unchanged.
func (e *Editor[T]) SetPath(path, value string) error {
	e.mu.Lock()
	if e.phase != Editing {
		e.mu.Unlock()
		return e.notEditing()
	}
	f, ok := e.schema.Lookup(e.draft, path)
	e.mu.Unlock()
	if !ok {
		return errors.UnknownField(e.schema.Name, path)
	}
	return e.Set(f, value)
}

// Update applies fn to a fresh copy of the draft.
func (e *Editor[T]) Update(fn func(*T)) error {
	return e.mutate(func(d *T) error {
		fn(d)
		return nil
	})
}

func (e *Editor[T]) mutate(fn func(*T) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != Editing {
		return e.notEditing()
	}
	d := e.draft.Clone()
	if err := fn(&d); err != nil {
		return err
	}
	e.draft = d
	return nil
}

func (e *Editor[T]) notEditing() error {
	if e.phase == Saving {
		return errors.Busy(errors.Op("profile.Set"))
	}
	return errors.E(errors.Op("profile.Set"), errors.KindInvalid, e.schema.Name+" is not being edited")
}

// Commit passes a copy of the draft to save. On success the section
// returns to Viewing with a success notice; on failure it stays in Editing
// with the draft intact and a persistent error notice.
func (e *Editor[T]) Commit(ctx context.Context, save func(context.Context, T) error) error {
	e.mu.Lock()
	switch e.phase {
	case Saving:
		e.mu.Unlock()
		return errors.Busy(errors.Op("profile.Commit"))
	case Viewing:
		e.mu.Unlock()
		return e.notEditing()
	}
	e.phase = Saving
	draft := e.draft.Clone()
	e.mu.Unlock()

	err := save(ctx, draft)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.phase = Editing
		e.notice = Notice{Text: errors.Message(err), Error: true}
		return err
	}
	var zero T
	e.draft = zero
	e.phase = Viewing
	e.notice = Notice{Text: e.schema.Name + " saved", Expires: e.now().Add(NoticeTTL)}
	return nil
}

// Cancel drops the draft and any error notice. It does nothing while saving.
func (e *Editor[T]) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase == Saving {
		return
	}
	var zero T
	e.draft = zero
	e.phase = Viewing
	e.notice = Notice{}
}

// Phase returns the current phase.
func (e *Editor[T]) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Draft returns a copy of the draft and whether one exists.
func (e *Editor[T]) Draft() (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase == Viewing {
		var zero T
		return zero, false
	}
	return e.draft.Clone(), true
}

// Notice returns the current notice, dropping a success notice once it expires.
func (e *Editor[T]) Notice() Notice {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.notice.Expires.IsZero() && !e.now().Before(e.notice.Expires) {
		e.notice = Notice{}
	}
	return e.notice
}
