// Package profile holds the student profile page state: the canonical
// student record, one edit state machine per form section, advisor notes
// and the two-step student delete.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/zhubert/studydesk/internal/auth"
	"github.com/zhubert/studydesk/internal/demo"
	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/models"
)

// Service is the subset of the API client the profile needs.
type Service interface {
	GetProfile(ctx context.Context) (models.Student, error)
	GetStudent(ctx context.Context, id string) (models.Student, error)
	UpdateStudent(ctx context.Context, id string, patch any) (models.Student, error)
	UpdateAdvisorNotes(ctx context.Context, id, notes string) error
	DeleteStudent(ctx context.Context, id string) error
}

// SectionID names one of the editable form sections.
type SectionID int

const (
	SectionBasicInfo SectionID = iota
	SectionPersonalDetails
	SectionEducation
	SectionTestScores
)

// Sections lists every section in page order.
var Sections = []SectionID{SectionBasicInfo, SectionPersonalDetails, SectionEducation, SectionTestScores}

func (id SectionID) String() string {
	switch id {
	case SectionBasicInfo:
		return BasicInfoSchema.Name
	case SectionPersonalDetails:
		return PersonalDetailsSchema.Name
	case SectionEducation:
		return EducationSchema.Name
	case SectionTestScores:
		return TestScoresSchema.Name
	}
	return fmt.Sprintf("section(%d)", int(id))
}

// FieldValue is one row of a rendered section.
type FieldValue struct {
	Path  string
	Label string
	Kind  FieldKind
	Value string
}

// Section is a typed slice of a student record with an explicit merge.
type Section[T any] interface {
	Draft[T]
	ApplyTo(*models.Student)
}

// section erases T so the profile can drive all four editors alike.
type section interface {
	begin(s models.Student) error
	setPath(path, value string) error
	commit(ctx context.Context, save func(context.Context, any, func(*models.Student)) error) error
	cancel()
	phase() Phase
	notice() Notice
	values(s models.Student) []FieldValue
}

type sectionEditor[T Section[T]] struct {
	ed   *Editor[T]
	from func(models.Student) T
}

func (s sectionEditor[T]) begin(st models.Student) error { return s.ed.Begin(s.from(st)) }
func (s sectionEditor[T]) setPath(p, v string) error     { return s.ed.SetPath(p, v) }
func (s sectionEditor[T]) cancel()                       { s.ed.Cancel() }
func (s sectionEditor[T]) phase() Phase                  { return s.ed.Phase() }
func (s sectionEditor[T]) notice() Notice                { return s.ed.Notice() }

func (s sectionEditor[T]) commit(ctx context.Context, save func(context.Context, any, func(*models.Student)) error) error {
	return s.ed.Commit(ctx, func(ctx context.Context, d T) error {
		return save(ctx, d, d.ApplyTo)
	})
}

// values renders the draft while editing, otherwise the canonical record.
func (s sectionEditor[T]) values(st models.Student) []FieldValue {
	v, ok := s.ed.Draft()
	if !ok {
		v = s.from(st)
	}
	fields := s.ed.Schema().Fields()
	if edu, isEdu := any(v).(Education); isEdu {
		for i := range edu.WorkExperience {
			for _, f := range WorkExperienceFields(i) {
				fields = append(fields, any(f).(Field[T]))
			}
		}
	}
	out := make([]FieldValue, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldValue{Path: f.Path, Label: f.Label, Kind: f.Kind, Value: f.Get(v)})
	}
	return out
}

// Options configures a Profile.
type Options struct {
	// StudentID selects the student to show. Empty means the caller's own
	// profile, which only students have.
	StudentID  string
	Capability auth.Capability
	Logger     *slog.Logger
	// OnDeleted is called after the student is deleted.
	OnDeleted func()
	Now       func() time.Time
}

// Profile is the view-model of the student profile page.
type Profile struct {
	svc       Service
	c         auth.Capability
	studentID string
	log       *slog.Logger
	onDeleted func()

	Basic     *Editor[BasicInfo]
	Personal  *Editor[PersonalDetails]
	Education *Editor[Education]
	Scores    *Editor[TestScores]
	sections  map[SectionID]section

	mu            sync.Mutex
	student       models.Student
	loaded        bool
	placeholder   bool
	loadErr       error
	loading       bool
	gen           uint64
	notesSaving   bool
	deleting      bool
	pendingDelete bool
}

// New creates a Profile. Nothing is fetched until Load.
func New(svc Service, opts Options) *Profile {
	p := &Profile{
		svc:       svc,
		c:         opts.Capability,
		studentID: opts.StudentID,
		log:       opts.Logger,
		onDeleted: opts.OnDeleted,
		Basic:     NewEditor(BasicInfoSchema),
		Personal:  NewEditor(PersonalDetailsSchema),
		Education: NewEditor(EducationSchema),
		Scores:    NewEditor(TestScoresSchema),
	}
	if p.log == nil {
		p.log = slog.Default()
	}
	if opts.Now != nil {
		p.Basic.now = opts.Now
		p.Personal.now = opts.Now
		p.Education.now = opts.Now
		p.Scores.now = opts.Now
	}
	p.sections = map[SectionID]section{
		SectionBasicInfo:       sectionEditor[BasicInfo]{ed: p.Basic, from: BasicInfoFrom},
		SectionPersonalDetails: sectionEditor[PersonalDetails]{ed: p.Personal, from: PersonalDetailsFrom},
		SectionEducation:       sectionEditor[Education]{ed: p.Education, from: EducationFrom},
		SectionTestScores:      sectionEditor[TestScores]{ed: p.Scores, from: TestScoresFrom},
	}
	return p
}

// Load fetches the student. When a student's own profile cannot be loaded,
// the placeholder profile is shown read-only; an advisor viewing a student
// by id gets an error state instead.
func (p *Profile) Load(ctx context.Context) error {
	const op errors.Op = "profile.Load"

	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return errors.Busy(op)
	}
	p.loading = true
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	var (
		s   models.Student
		err error
	)
	if p.studentID == "" {
		s, err = p.svc.GetProfile(ctx)
	} else {
		s, err = p.svc.GetStudent(ctx, p.studentID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return nil
	}
	p.loading = false
	if err == nil {
		p.student = s
		p.loaded = true
		p.placeholder = false
		p.loadErr = nil
		return nil
	}

	p.log.Warn("failed to load profile", "student", p.studentID, "error", err)
	p.loadErr = err
	if p.studentID == "" && p.c.IsStudent() {
		p.student = demo.Student(p.c.StudentID)
		p.loaded = true
		p.placeholder = true
		return nil
	}
	p.loaded = false
	return err
}

// Student returns the canonical record and whether one is loaded.
func (p *Profile) Student() (models.Student, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.student, p.loaded
}

// Placeholder reports whether the placeholder profile is showing.
func (p *Profile) Placeholder() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.placeholder
}

// LoadErr returns the last load failure.
func (p *Profile) LoadErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

// Loading reports whether a load is in flight.
func (p *Profile) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// CanEdit applies the edit gate to the current record.
func (p *Profile) CanEdit() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canEditLocked()
}

func (p *Profile) canEditLocked() bool {
	return p.loaded && !p.placeholder && p.c.CanEditProfile(p.student)
}

// Locked reports whether the owning student has used their one edit.
func (p *Profile) Locked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.c.IsStudent() && p.student.HasEditedProfile
}

func (p *Profile) section(id SectionID) (section, error) {
	s, ok := p.sections[id]
	if !ok {
		return nil, errors.E(errors.Op("profile.Section"), errors.KindInvalid, fmt.Sprintf("unknown section %d", int(id)))
	}
	return s, nil
}

// Begin starts editing a section from the canonical record.
func (p *Profile) Begin(id SectionID) error {
	sec, err := p.section(id)
	if err != nil {
		return err
	}
	p.mu.Lock()
	if !p.canEditLocked() {
		p.mu.Unlock()
		return errors.PermissionDenied("edit this profile")
	}
	s := p.student
	p.mu.Unlock()
	return sec.begin(s)
}

// SetField writes value at a dotted path of a section's draft.
func (p *Profile) SetField(id SectionID, path, value string) error {
	sec, err := p.section(id)
	if err != nil {
		return err
	}
	return sec.setPath(path, value)
}

// Cancel abandons a section's draft.
func (p *Profile) Cancel(id SectionID) {
	if sec, err := p.section(id); err == nil {
		sec.cancel()
	}
}

// Phase returns a section's phase.
func (p *Profile) Phase(id SectionID) Phase {
	if sec, err := p.section(id); err == nil {
		return sec.phase()
	}
	return Viewing
}

// Notice returns a section's inline notice.
func (p *Profile) Notice(id SectionID) Notice {
	if sec, err := p.section(id); err == nil {
		return sec.notice()
	}
	return Notice{}
}

// Values returns the rows of a section for rendering.
func (p *Profile) Values(id SectionID) []FieldValue {
	sec, err := p.section(id)
	if err != nil {
		return nil
	}
	s, _ := p.Student()
	return sec.values(s)
}

// Save persists a section's draft. Only that section's keys are sent. A
// student's save also sets hasEditedProfile, which locks further
// self-edits; elevated roles never lock the profile.
func (p *Profile) Save(ctx context.Context, id SectionID) error {
	sec, err := p.section(id)
	if err != nil {
		return err
	}
	return sec.commit(ctx, func(ctx context.Context, draft any, apply func(*models.Student)) error {
		p.mu.Lock()
		if !p.canEditLocked() {
			p.mu.Unlock()
			return errors.PermissionDenied("edit this profile")
		}
		studentID := p.student.ID
		p.mu.Unlock()

		markEdited := p.c.IsStudent()
		patch, err := sectionPatch(draft, markEdited)
		if err != nil {
			return errors.E(errors.Op("profile.Save"), errors.KindInvalid, "failed to encode section", err)
		}
		if _, err := p.svc.UpdateStudent(ctx, studentID, patch); err != nil {
			p.log.Warn("failed to save profile section", "section", id.String(), "student", studentID, "error", err)
			return err
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		apply(&p.student)
		if markEdited {
			p.student.HasEditedProfile = true
		}
		p.log.Info("profile section saved", "section", id.String(), "student", studentID)
		return nil
	})
}

// sectionPatch encodes a section as a JSON object, optionally adding
// hasEditedProfile.
func sectionPatch(draft any, markEdited bool) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	patch := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &patch); err != nil {
		return nil, err
	}
	if markEdited {
		patch["hasEditedProfile"] = json.RawMessage("true")
	}
	return patch, nil
}

// SaveNotes replaces the advisor notes. Admins and advisors only.
func (p *Profile) SaveNotes(ctx context.Context, notes string) error {
	const op errors.Op = "profile.SaveNotes"

	if !p.c.IsAdminOrAdvisor() {
		return errors.PermissionDenied("edit advisor notes")
	}
	p.mu.Lock()
	if !p.loaded || p.placeholder {
		p.mu.Unlock()
		return errors.E(op, errors.KindInvalid, "profile is not loaded")
	}
	if p.notesSaving {
		p.mu.Unlock()
		return errors.Busy(op)
	}
	p.notesSaving = true
	id := p.student.ID
	p.mu.Unlock()

	err := p.svc.UpdateAdvisorNotes(ctx, id, notes)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.notesSaving = false
	if err != nil {
		p.log.Warn("failed to save advisor notes", "student", id, "error", err)
		return err
	}
	p.student.AdvisorNotes = notes
	return nil
}

// NotesSaving reports whether a notes save is in flight.
func (p *Profile) NotesSaving() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.notesSaving
}

// RequestDelete arms the student delete confirmation.
func (p *Profile) RequestDelete() error {
	if !p.c.IsAdminOrAdvisor() {
		return errors.PermissionDenied("delete students")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.loaded || p.placeholder {
		return errors.E(errors.Op("profile.RequestDelete"), errors.KindInvalid, "profile is not loaded")
	}
	p.pendingDelete = true
	return nil
}

// CancelDelete disarms the confirmation.
func (p *Profile) CancelDelete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pendingDelete = false
}

// PendingDelete reports whether a delete awaits confirmation.
func (p *Profile) PendingDelete() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pendingDelete
}

// ConfirmDelete deletes the student armed by RequestDelete and calls OnDeleted.
func (p *Profile) ConfirmDelete(ctx context.Context) error {
	const op errors.Op = "profile.ConfirmDelete"

	if !p.c.IsAdminOrAdvisor() {
		return errors.PermissionDenied("delete students")
	}
	p.mu.Lock()
	if !p.pendingDelete {
		p.mu.Unlock()
		return errors.E(op, errors.KindInvalid, "no delete awaiting confirmation")
	}
	if p.deleting {
		p.mu.Unlock()
		return errors.Busy(op)
	}
	p.deleting = true
	id := p.student.ID
	p.mu.Unlock()

	err := p.svc.DeleteStudent(ctx, id)

	p.mu.Lock()
	p.deleting = false
	if err != nil {
		p.mu.Unlock()
		p.log.Warn("failed to delete student", "student", id, "error", err)
		return err
	}
	p.pendingDelete = false
	p.loaded = false
	p.student = models.Student{}
	p.mu.Unlock()

	p.log.Info("student deleted", "student", id)
	if p.onDeleted != nil {
		p.onDeleted()
	}
	return nil
}
