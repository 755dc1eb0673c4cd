package profile

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhubert/studydesk/internal/auth"
	"github.com/zhubert/studydesk/internal/demo"
	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/logger"
	"github.com/zhubert/studydesk/internal/models"
)

type fakeService struct {
	student   models.Student
	getErr    error
	updateErr error
	notesErr  error
	deleteErr error
	patches   []map[string]any
	notes     []string
	deleted   []string
	calls     []string
}

func (f *fakeService) GetProfile(ctx context.Context) (models.Student, error) {
	f.calls = append(f.calls, "profile")
	return f.student, f.getErr
}

func (f *fakeService) GetStudent(ctx context.Context, id string) (models.Student, error) {
	f.calls = append(f.calls, "student:"+id)
	return f.student, f.getErr
}

func (f *fakeService) UpdateStudent(ctx context.Context, id string, patch any) (models.Student, error) {
	f.calls = append(f.calls, "update:"+id)
	if f.updateErr != nil {
		return models.Student{}, f.updateErr
	}
	data, err := json.Marshal(patch)
	if err != nil {
		return models.Student{}, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return models.Student{}, err
	}
	f.patches = append(f.patches, m)
	return f.student, nil
}

func (f *fakeService) UpdateAdvisorNotes(ctx context.Context, id, notes string) error {
	f.calls = append(f.calls, "notes:"+id)
	if f.notesErr != nil {
		return f.notesErr
	}
	f.notes = append(f.notes, notes)
	return nil
}

func (f *fakeService) DeleteStudent(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

var (
	studentCap = auth.Capability{UserID: "u1", Role: auth.RoleStudent, StudentID: "s1"}
	advisorCap = auth.Capability{UserID: "adv", Role: auth.RoleAdvisor}
	errDown    = errors.E(errors.Op("test"), errors.KindNetwork, "down")
)

func newProfile(svc Service, opts Options) *Profile {
	opts.Logger = logger.Discard()
	return New(svc, opts)
}

func loadedStudent() models.Student {
	s := demo.Student("s1")
	s.UserID = "u1"
	return s
}

func TestLoad_OwnProfile(t *testing.T) {
	svc := &fakeService{student: loadedStudent()}
	p := newProfile(svc, Options{Capability: studentCap})

	require.NoError(t, p.Load(context.Background()))
	s, ok := p.Student()
	require.True(t, ok)
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, []string{"profile"}, svc.calls)
	assert.True(t, p.CanEdit())
}

func TestLoad_OwnProfileFailureShowsPlaceholder(t *testing.T) {
	svc := &fakeService{getErr: errDown}
	p := newProfile(svc, Options{Capability: studentCap})

	require.NoError(t, p.Load(context.Background()))
	s, ok := p.Student()
	require.True(t, ok)
	assert.Equal(t, "s1", s.ID)
	assert.True(t, p.Placeholder())
	assert.Error(t, p.LoadErr())
	assert.False(t, p.CanEdit(), "placeholder is read-only")
	assert.True(t, errors.Is(p.Begin(SectionBasicInfo), errors.KindPermission))
}

func TestLoad_AdvisorFailureIsErrorState(t *testing.T) {
	svc := &fakeService{getErr: errDown}
	p := newProfile(svc, Options{Capability: advisorCap, StudentID: "s1"})

	require.Error(t, p.Load(context.Background()))
	_, ok := p.Student()
	assert.False(t, ok)
	assert.False(t, p.Placeholder())
	assert.Equal(t, []string{"student:s1"}, svc.calls)
}

func TestSave_StudentOneTimeEdit(t *testing.T) {
	svc := &fakeService{student: loadedStudent()}
	p := newProfile(svc, Options{Capability: studentCap})
	require.NoError(t, p.Load(context.Background()))

	require.NoError(t, p.Begin(SectionPersonalDetails))
	require.NoError(t, p.SetField(SectionPersonalDetails, "address1.city", "Nagpur"))
	require.NoError(t, p.Save(context.Background(), SectionPersonalDetails))

	require.Len(t, svc.patches, 1)
	patch := svc.patches[0]
	assert.Equal(t, true, patch["hasEditedProfile"])
	assert.Equal(t, "Nagpur", patch["address1"].(map[string]any)["city"])
	assert.NotContains(t, patch, "firstName", "only the section's keys are sent")
	assert.NotContains(t, patch, "testScores")

	s, _ := p.Student()
	assert.Equal(t, "Nagpur", s.Address1.City)
	assert.True(t, s.HasEditedProfile)
	assert.True(t, p.Locked())
	assert.False(t, p.CanEdit())
	assert.Equal(t, Viewing, p.Phase(SectionPersonalDetails))
	assert.Equal(t, "Personal Details saved", p.Notice(SectionPersonalDetails).Text)

	assert.True(t, errors.Is(p.Begin(SectionBasicInfo), errors.KindPermission))
}

func TestSave_SecondOpenSectionBlockedAfterLock(t *testing.T) {
	svc := &fakeService{student: loadedStudent()}
	p := newProfile(svc, Options{Capability: studentCap})
	require.NoError(t, p.Load(context.Background()))

	require.NoError(t, p.Begin(SectionBasicInfo))
	require.NoError(t, p.Begin(SectionTestScores))
	require.NoError(t, p.Save(context.Background(), SectionBasicInfo))

	err := p.Save(context.Background(), SectionTestScores)
	assert.True(t, errors.Is(err, errors.KindPermission))
	assert.Equal(t, Editing, p.Phase(SectionTestScores))
	assert.Len(t, svc.patches, 1)
}

func TestSave_AdvisorNeverLocks(t *testing.T) {
	svc := &fakeService{student: loadedStudent()}
	p := newProfile(svc, Options{Capability: advisorCap, StudentID: "s1"})
	require.NoError(t, p.Load(context.Background()))

	for i := 0; i < 2; i++ {
		require.NoError(t, p.Begin(SectionTestScores))
		require.NoError(t, p.SetField(SectionTestScores, "testScores.gre.verbal", "165"))
		require.NoError(t, p.Save(context.Background(), SectionTestScores))
	}
	assert.NotContains(t, svc.patches[0], "hasEditedProfile")
	assert.True(t, p.CanEdit())
	s, _ := p.Student()
	assert.False(t, s.HasEditedProfile)
	assert.Equal(t, "165", s.TestScores.GRE.Verbal)
}

func TestSave_FailureLeavesCanonical(t *testing.T) {
	svc := &fakeService{student: loadedStudent(), updateErr: errDown}
	p := newProfile(svc, Options{Capability: studentCap})
	require.NoError(t, p.Load(context.Background()))

	require.NoError(t, p.Begin(SectionBasicInfo))
	require.NoError(t, p.SetField(SectionBasicInfo, "firstName", "Changed"))
	require.Error(t, p.Save(context.Background(), SectionBasicInfo))

	s, _ := p.Student()
	assert.Equal(t, "Priya", s.FirstName)
	assert.False(t, s.HasEditedProfile)
	assert.Equal(t, Editing, p.Phase(SectionBasicInfo))
	assert.True(t, p.Notice(SectionBasicInfo).Error)

	vals := p.Values(SectionBasicInfo)
	require.NotEmpty(t, vals)
	assert.Equal(t, "Changed", vals[0].Value, "values show the draft while editing")
}

func TestCancel(t *testing.T) {
	svc := &fakeService{student: loadedStudent()}
	p := newProfile(svc, Options{Capability: advisorCap, StudentID: "s1"})
	require.NoError(t, p.Load(context.Background()))

	require.NoError(t, p.Begin(SectionBasicInfo))
	require.NoError(t, p.SetField(SectionBasicInfo, "firstName", "X"))
	p.Cancel(SectionBasicInfo)

	assert.Equal(t, Viewing, p.Phase(SectionBasicInfo))
	assert.Equal(t, "Priya", p.Values(SectionBasicInfo)[0].Value)
	assert.Empty(t, svc.patches)
}

func TestSectionsIndependent(t *testing.T) {
	svc := &fakeService{student: loadedStudent()}
	p := newProfile(svc, Options{Capability: advisorCap, StudentID: "s1"})
	require.NoError(t, p.Load(context.Background()))

	require.NoError(t, p.Begin(SectionBasicInfo))
	require.NoError(t, p.Begin(SectionEducation))
	require.NoError(t, p.SetField(SectionEducation, "grade12.percentage", "91"))
	p.Cancel(SectionBasicInfo)

	assert.Equal(t, Viewing, p.Phase(SectionBasicInfo))
	assert.Equal(t, Editing, p.Phase(SectionEducation))
	require.NoError(t, p.Save(context.Background(), SectionEducation))
	s, _ := p.Student()
	assert.Equal(t, "91", s.Grade12.Percentage)
}

func TestValues_IncludeWorkExperience(t *testing.T) {
	svc := &fakeService{student: loadedStudent()}
	p := newProfile(svc, Options{Capability: advisorCap, StudentID: "s1"})
	require.NoError(t, p.Load(context.Background()))

	var found bool
	for _, v := range p.Values(SectionEducation) {
		if v.Path == "workExperience.0.organizationName" {
			found = true
			assert.Equal(t, "Infosys", v.Value)
		}
	}
	assert.True(t, found)
}

func TestUnknownSection(t *testing.T) {
	p := newProfile(&fakeService{}, Options{Capability: advisorCap})
	assert.Error(t, p.Begin(SectionID(42)))
	assert.Nil(t, p.Values(SectionID(42)))
	assert.Equal(t, "section(42)", SectionID(42).String())
}

func TestSaveNotes(t *testing.T) {
	svc := &fakeService{student: loadedStudent()}
	p := newProfile(svc, Options{Capability: advisorCap, StudentID: "s1"})
	require.NoError(t, p.Load(context.Background()))

	require.NoError(t, p.SaveNotes(context.Background(), "Strong candidate"))
	s, _ := p.Student()
	assert.Equal(t, "Strong candidate", s.AdvisorNotes)

	svc.notesErr = errDown
	require.Error(t, p.SaveNotes(context.Background(), "other"))
	s, _ = p.Student()
	assert.Equal(t, "Strong candidate", s.AdvisorNotes)
	assert.False(t, p.NotesSaving())
}

func TestSaveNotes_StudentDenied(t *testing.T) {
	svc := &fakeService{student: loadedStudent()}
	p := newProfile(svc, Options{Capability: studentCap})
	require.NoError(t, p.Load(context.Background()))
	assert.True(t, errors.Is(p.SaveNotes(context.Background(), "x"), errors.KindPermission))
	assert.NotContains(t, svc.calls, "notes:s1")
}

func TestDeleteStudent(t *testing.T) {
	svc := &fakeService{student: loadedStudent()}
	deleted := false
	p := newProfile(svc, Options{Capability: advisorCap, StudentID: "s1", OnDeleted: func() { deleted = true }})
	require.NoError(t, p.Load(context.Background()))

	assert.Error(t, p.ConfirmDelete(context.Background()), "needs a request first")
	require.NoError(t, p.RequestDelete())
	p.CancelDelete()
	assert.False(t, p.PendingDelete())

	require.NoError(t, p.RequestDelete())
	require.NoError(t, p.ConfirmDelete(context.Background()))
	assert.Equal(t, []string{"s1"}, svc.deleted)
	assert.True(t, deleted)
	_, ok := p.Student()
	assert.False(t, ok)
}

func TestDeleteStudent_Failure(t *testing.T) {
	svc := &fakeService{student: loadedStudent(), deleteErr: errDown}
	p := newProfile(svc, Options{Capability: advisorCap, StudentID: "s1"})
	require.NoError(t, p.Load(context.Background()))
	require.NoError(t, p.RequestDelete())

	require.Error(t, p.ConfirmDelete(context.Background()))
	assert.True(t, p.PendingDelete())
	_, ok := p.Student()
	assert.True(t, ok)
}

func TestDeleteStudent_StudentDenied(t *testing.T) {
	p := newProfile(&fakeService{student: loadedStudent()}, Options{Capability: studentCap})
	require.NoError(t, p.Load(context.Background()))
	assert.True(t, errors.Is(p.RequestDelete(), errors.KindPermission))
}
