package profile

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/zhubert/studydesk/internal/models"
)

// BasicInfo is the identity block of a student.
type BasicInfo struct {
	FirstName      string `json:"firstName"`
	MiddleName     string `json:"middleName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"dob"`
	Gender         string `json:"gender"`
	MaritalStatus  string `json:"maritalStatus"`
	Nationality    string `json:"nationality"`
	PassportNumber string `json:"passportNumber"`
	PassportExpiry string `json:"passportExpiry"`
}

func BasicInfoFrom(s models.Student) BasicInfo {
	return BasicInfo{
		FirstName:      s.FirstName,
		MiddleName:     s.MiddleName,
		LastName:       s.LastName,
		Email:          s.Email,
		Phone:          s.Phone,
		DateOfBirth:    s.DateOfBirth,
		Gender:         s.Gender,
		MaritalStatus:  s.MaritalStatus,
		Nationality:    s.Nationality,
		PassportNumber: s.PassportNumber,
		PassportExpiry: s.PassportExpiry,
	}
}

func (b BasicInfo) ApplyTo(s *models.Student) {
	s.FirstName = b.FirstName
	s.MiddleName = b.MiddleName
	s.LastName = b.LastName
	s.Email = b.Email
	s.Phone = b.Phone
	s.DateOfBirth = b.DateOfBirth
	s.Gender = b.Gender
	s.MaritalStatus = b.MaritalStatus
	s.Nationality = b.Nationality
	s.PassportNumber = b.PassportNumber
	s.PassportExpiry = b.PassportExpiry
}

func (b BasicInfo) Clone() BasicInfo { return b }

// PersonalDetails covers addresses, emergency contact and the
// citizenship, residency and medical declarations.
type PersonalDetails struct {
	Address1              models.Address          `json:"address1"`
	Address2              models.Address          `json:"address2"`
	EmergencyContact      models.EmergencyContact `json:"emergencyContact"`
	MultipleCitizenship   bool                    `json:"multipleCitizenship"`
	OtherCitizenship      string                  `json:"otherCitizenship"`
	LivingInOtherCountry  bool                    `json:"livingInOtherCountry"`
	OtherResidenceCountry string                  `json:"otherResidenceCountry"`
	AppliedForImmigration bool                    `json:"appliedForImmigration"`
	MedicalCondition      bool                    `json:"medicalCondition"`
	MedicalDetails        string                  `json:"medicalDetails"`
}

func PersonalDetailsFrom(s models.Student) PersonalDetails {
	return PersonalDetails{
		Address1:              s.Address1,
		Address2:              s.Address2,
		EmergencyContact:      s.EmergencyContact,
		MultipleCitizenship:   s.MultipleCitizenship,
		OtherCitizenship:      s.OtherCitizenship,
		LivingInOtherCountry:  s.LivingInOtherCountry,
		OtherResidenceCountry: s.OtherResidenceCountry,
		AppliedForImmigration: s.AppliedForImmigration,
		MedicalCondition:      s.MedicalCondition,
		MedicalDetails:        s.MedicalDetails,
	}
}

func (p PersonalDetails) ApplyTo(s *models.Student) {
	s.Address1 = p.Address1
	s.Address2 = p.Address2
	s.EmergencyContact = p.EmergencyContact
	s.MultipleCitizenship = p.MultipleCitizenship
	s.OtherCitizenship = p.OtherCitizenship
	s.LivingInOtherCountry = p.LivingInOtherCountry
	s.OtherResidenceCountry = p.OtherResidenceCountry
	s.AppliedForImmigration = p.AppliedForImmigration
	s.MedicalCondition = p.MedicalCondition
	s.MedicalDetails = p.MedicalDetails
}

func (p PersonalDetails) Clone() PersonalDetails { return p }

// Education is the schooling history and work experience.
type Education struct {
	EducationSummary models.EducationSummary `json:"educationSummary"`
	PostGraduate     models.Qualification    `json:"postGraduate"`
	UnderGraduate    models.Qualification    `json:"underGraduate"`
	Grade12          models.Qualification    `json:"grade12"`
	Grade10          models.Qualification    `json:"grade10"`
	WorkExperience   []models.WorkExperience `json:"workExperience"`
}

func EducationFrom(s models.Student) Education {
	return Education{
		EducationSummary: s.EducationSummary,
		PostGraduate:     s.PostGraduate,
		UnderGraduate:    s.UnderGraduate,
		Grade12:          s.Grade12,
		Grade10:          s.Grade10,
		WorkExperience:   slices.Clone(s.WorkExperience),
	}
}

func (e Education) ApplyTo(s *models.Student) {
	s.EducationSummary = e.EducationSummary
	s.PostGraduate = e.PostGraduate
	s.UnderGraduate = e.UnderGraduate
	s.Grade12 = e.Grade12
	s.Grade10 = e.Grade10
	s.WorkExperience = slices.Clone(e.WorkExperience)
}

func (e Education) Clone() Education {
	e.WorkExperience = slices.Clone(e.WorkExperience)
	return e
}

// AddWorkExperience appends an empty job entry.
func (e *Education) AddWorkExperience() {
	e.WorkExperience = append(slices.Clone(e.WorkExperience), models.WorkExperience{})
}

// RemoveWorkExperience drops entry i. Out-of-range indexes are ignored.
func (e *Education) RemoveWorkExperience(i int) {
	if i < 0 || i >= len(e.WorkExperience) {
		return
	}
	e.WorkExperience = slices.Delete(slices.Clone(e.WorkExperience), i, i+1)
}

// TestScores wraps every exam's scores.
type TestScores struct {
	Scores models.TestScores `json:"testScores"`
}

func TestScoresFrom(s models.Student) TestScores {
	return TestScores{Scores: s.TestScores}
}

func (t TestScores) ApplyTo(s *models.Student) {
	s.TestScores = t.Scores
}

func (t TestScores) Clone() TestScores { return t }

// Field tables.

var BasicInfoSchema = newSchema("Basic Info", []Field[BasicInfo]{
	textField("firstName", "First name", func(b *BasicInfo) *string { return &b.FirstName }),
	textField("middleName", "Middle name", func(b *BasicInfo) *string { return &b.MiddleName }),
	textField("lastName", "Last name", func(b *BasicInfo) *string { return &b.LastName }),
	textField("email", "Email", func(b *BasicInfo) *string { return &b.Email }),
	textField("phone", "Phone", func(b *BasicInfo) *string { return &b.Phone }),
	textField("dob", "Date of birth", func(b *BasicInfo) *string { return &b.DateOfBirth }),
	textField("gender", "Gender", func(b *BasicInfo) *string { return &b.Gender }),
	textField("maritalStatus", "Marital status", func(b *BasicInfo) *string { return &b.MaritalStatus }),
	textField("nationality", "Nationality", func(b *BasicInfo) *string { return &b.Nationality }),
	textField("passportNumber", "Passport number", func(b *BasicInfo) *string { return &b.PassportNumber }),
	textField("passportExpiry", "Passport expiry", func(b *BasicInfo) *string { return &b.PassportExpiry }),
}, nil)

var PersonalDetailsSchema = newSchema("Personal Details", slices.Concat(
	addressFields("address1", "Address", func(p *PersonalDetails) *models.Address { return &p.Address1 }),
	addressFields("address2", "Alternate address", func(p *PersonalDetails) *models.Address { return &p.Address2 }),
	[]Field[PersonalDetails]{
		textField("emergencyContact.name", "Emergency contact name", func(p *PersonalDetails) *string { return &p.EmergencyContact.Name }),
		textField("emergencyContact.phone", "Emergency contact phone", func(p *PersonalDetails) *string { return &p.EmergencyContact.Phone }),
		textField("emergencyContact.email", "Emergency contact email", func(p *PersonalDetails) *string { return &p.EmergencyContact.Email }),
		textField("emergencyContact.relation", "Emergency contact relation", func(p *PersonalDetails) *string { return &p.EmergencyContact.Relation }),
		boolField("multipleCitizenship", "Multiple citizenship", func(p *PersonalDetails) *bool { return &p.MultipleCitizenship }),
		textField("otherCitizenship", "Other citizenship", func(p *PersonalDetails) *string { return &p.OtherCitizenship }),
		boolField("livingInOtherCountry", "Living in another country", func(p *PersonalDetails) *bool { return &p.LivingInOtherCountry }),
		textField("otherResidenceCountry", "Country of residence", func(p *PersonalDetails) *string { return &p.OtherResidenceCountry }),
		boolField("appliedForImmigration", "Applied for immigration", func(p *PersonalDetails) *bool { return &p.AppliedForImmigration }),
		boolField("medicalCondition", "Medical condition", func(p *PersonalDetails) *bool { return &p.MedicalCondition }),
		textField("medicalDetails", "Medical details", func(p *PersonalDetails) *string { return &p.MedicalDetails }),
	},
), nil)

var EducationSchema = newSchema("Education", slices.Concat(
	[]Field[Education]{
		textField("educationSummary.countryOfEducation", "Country of education", func(e *Education) *string { return &e.EducationSummary.CountryOfEducation }),
		textField("educationSummary.highestLevel", "Highest level", func(e *Education) *string { return &e.EducationSummary.HighestLevel }),
		textField("educationSummary.gradingScheme", "Grading scheme", func(e *Education) *string { return &e.EducationSummary.GradingScheme }),
		textField("educationSummary.gradeAverage", "Grade average", func(e *Education) *string { return &e.EducationSummary.GradeAverage }),
	},
	qualificationFields("postGraduate", "Post-graduate", func(e *Education) *models.Qualification { return &e.PostGraduate }),
	qualificationFields("underGraduate", "Undergraduate", func(e *Education) *models.Qualification { return &e.UnderGraduate }),
	qualificationFields("grade12", "Grade 12", func(e *Education) *models.Qualification { return &e.Grade12 }),
	qualificationFields("grade10", "Grade 10", func(e *Education) *models.Qualification { return &e.Grade10 }),
), workExperienceField)

var TestScoresSchema = newSchema("Test Scores", slices.Concat(
	examFields("gre", "GRE", func(t *TestScores) map[string]*string {
		g := &t.Scores.GRE
		return map[string]*string{"overall": &g.Overall, "examDate": &g.ExamDate, "verbal": &g.Verbal, "quant": &g.Quant, "analytical": &g.Analytical}
	}, "overall", "examDate", "verbal", "quant", "analytical"),
	examFields("gmat", "GMAT", func(t *TestScores) map[string]*string {
		g := &t.Scores.GMAT
		return map[string]*string{"overall": &g.Overall, "examDate": &g.ExamDate, "verbal": &g.Verbal, "quant": &g.Quant, "analytical": &g.Analytical, "integratedReasoning": &g.IntegratedReasoning}
	}, "overall", "examDate", "verbal", "quant", "analytical", "integratedReasoning"),
	languageTestFields("toefl", "TOEFL", func(t *TestScores) *models.LanguageTest { return &t.Scores.TOEFL }),
	languageTestFields("ielts", "IELTS", func(t *TestScores) *models.LanguageTest { return &t.Scores.IELTS }),
	languageTestFields("pte", "PTE", func(t *TestScores) *models.LanguageTest { return &t.Scores.PTE }),
	examFields("det", "Duolingo", func(t *TestScores) map[string]*string {
		d := &t.Scores.DET
		return map[string]*string{"overall": &d.Overall, "examDate": &d.ExamDate, "literacy": &d.Literacy, "comprehension": &d.Comprehension, "conversation": &d.Conversation, "production": &d.Production}
	}, "overall", "examDate", "literacy", "comprehension", "conversation", "production"),
	examFields("sat", "SAT", func(t *TestScores) map[string]*string {
		s := &t.Scores.SAT
		return map[string]*string{"overall": &s.Overall, "examDate": &s.ExamDate, "math": &s.Math, "readingWriting": &s.Reading}
	}, "overall", "examDate", "math", "readingWriting"),
	examFields("act", "ACT", func(t *TestScores) map[string]*string {
		a := &t.Scores.ACT
		return map[string]*string{"overall": &a.Overall, "examDate": &a.ExamDate, "english": &a.English, "math": &a.Math, "reading": &a.Reading, "science": &a.Science}
	}, "overall", "examDate", "english", "math", "reading", "science"),
), nil)

func addressFields[T any](prefix, label string, addr func(*T) *models.Address) []Field[T] {
	return []Field[T]{
		textField(prefix+".country", label+" country", func(v *T) *string { return &addr(v).Country }),
		textField(prefix+".state", label+" state", func(v *T) *string { return &addr(v).State }),
		textField(prefix+".city", label+" city", func(v *T) *string { return &addr(v).City }),
		textField(prefix+".pincode", label+" pincode", func(v *T) *string { return &addr(v).Pincode }),
	}
}

func qualificationFields[T any](prefix, label string, q func(*T) *models.Qualification) []Field[T] {
	return []Field[T]{
		textField(prefix+".countryOfStudy", label+" country", func(v *T) *string { return &q(v).Country }),
		textField(prefix+".stateOfStudy", label+" state", func(v *T) *string { return &q(v).State }),
		textField(prefix+".cityOfStudy", label+" city", func(v *T) *string { return &q(v).City }),
		textField(prefix+".institutionName", label+" institution", func(v *T) *string { return &q(v).InstitutionName }),
		textField(prefix+".qualificationAchieved", label+" qualification", func(v *T) *string { return &q(v).Qualification }),
		textField(prefix+".gradingSystem", label+" grading system", func(v *T) *string { return &q(v).GradingSystem }),
		textField(prefix+".percentage", label+" percentage", func(v *T) *string { return &q(v).Percentage }),
		textField(prefix+".primaryLanguage", label+" language", func(v *T) *string { return &q(v).Language }),
		textField(prefix+".startDate", label+" start date", func(v *T) *string { return &q(v).StartDate }),
		textField(prefix+".endDate", label+" end date", func(v *T) *string { return &q(v).EndDate }),
	}
}

func languageTestFields(exam, label string, lt func(*TestScores) *models.LanguageTest) []Field[TestScores] {
	return examFields(exam, label, func(t *TestScores) map[string]*string {
		l := lt(t)
		return map[string]*string{"overall": &l.Overall, "examDate": &l.ExamDate, "reading": &l.Reading, "listening": &l.Listening, "speaking": &l.Speaking, "writing": &l.Writing}
	}, "overall", "examDate", "reading", "listening", "speaking", "writing")
}

// examFields builds "testScores.<exam>.<name>" fields in the given order.
func examFields(exam, label string, members func(*TestScores) map[string]*string, names ...string) []Field[TestScores] {
	out := make([]Field[TestScores], 0, len(names))
	for _, name := range names {
		out = append(out, textField("testScores."+exam+"."+name, label+" "+humanize(name),
			func(t *TestScores) *string { return members(t)[name] }))
	}
	return out
}

var workMembers = map[string]func(*models.WorkExperience) *string{
	"organizationName": func(w *models.WorkExperience) *string { return &w.Organization },
	"position":         func(w *models.WorkExperience) *string { return &w.Position },
	"jobProfile":       func(w *models.WorkExperience) *string { return &w.JobProfile },
	"workingMode":      func(w *models.WorkExperience) *string { return &w.WorkingMode },
	"startDate":        func(w *models.WorkExperience) *string { return &w.StartDate },
	"endDate":          func(w *models.WorkExperience) *string { return &w.EndDate },
}

// WorkExperienceNames lists the per-job members in display order.
var WorkExperienceNames = []string{"organizationName", "position", "jobProfile", "workingMode", "startDate", "endDate"}

// workExperienceField resolves "workExperience.<i>.<name>" for an existing entry i.
func workExperienceField(e Education, path string) (Field[Education], bool) {
	segs := strings.Split(path, ".")
	if len(segs) != 3 || segs[0] != "workExperience" {
		return Field[Education]{}, false
	}
	i, err := strconv.Atoi(segs[1])
	if err != nil || i < 0 || i >= len(e.WorkExperience) {
		return Field[Education]{}, false
	}
	member, ok := workMembers[segs[2]]
	if !ok {
		return Field[Education]{}, false
	}
	return WorkExperienceField(i, segs[2], member), true
}

// WorkExperienceField returns the locator of member name in job i. It
// refuses to write to a draft that has no job i.
func WorkExperienceField(i int, name string, member func(*models.WorkExperience) *string) Field[Education] {
	f := textField(fmt.Sprintf("workExperience.%d.%s", i, name),
		fmt.Sprintf("Job %d %s", i+1, humanize(name)),
		func(e *Education) *string { return member(&e.WorkExperience[i]) })
	f.exists = func(e *Education) bool { return i >= 0 && i < len(e.WorkExperience) }
	return f
}

// WorkExperienceFields returns the locators of every member of job i.
func WorkExperienceFields(i int) []Field[Education] {
	out := make([]Field[Education], 0, len(WorkExperienceNames))
	for _, name := range WorkExperienceNames {
		out = append(out, WorkExperienceField(i, name, workMembers[name]))
	}
	return out
}

// humanize turns "examDate" into "exam date".
func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte(' ')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
