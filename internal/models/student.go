// Package models holds the records exchanged with the studydesk REST API.
// Nested objects are value types so a record decoded from a payload that
// omits them still has an addressable, zero-valued skeleton.
package models

import "time"

// Address is a postal address block.
type Address struct {
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// EmergencyContact is the person to reach on the student's behalf.
type EmergencyContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Relation string `json:"relation"`
}

// EducationSummary is the headline of the student's education history.
type EducationSummary struct {
	CountryOfEducation string `json:"countryOfEducation"`
	HighestLevel       string `json:"highestLevel"`
	GradingScheme      string `json:"gradingScheme"`
	GradeAverage       string `json:"gradeAverage"`
}

// Qualification is one level of schooling (post-graduate, grade 10, ...).
type Qualification struct {
	Country         string `json:"countryOfStudy"`
	State           string `json:"stateOfStudy"`
	City            string `json:"cityOfStudy"`
	InstitutionName string `json:"institutionName"`
	Qualification   string `json:"qualificationAchieved"`
	GradingSystem   string `json:"gradingSystem"`
	Percentage      string `json:"percentage"`
	Language        string `json:"primaryLanguage"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
}

// WorkExperience is one job held by the student.
type WorkExperience struct {
	Organization string `json:"organizationName"`
	Position     string `json:"position"`
	JobProfile   string `json:"jobProfile"`
	WorkingMode  string `json:"workingMode"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
}

// GRE scores.
type GRE struct {
	Overall    string `json:"overall"`
	ExamDate   string `json:"examDate"`
	Verbal     string `json:"verbal"`
	Quant      string `json:"quant"`
	Analytical string `json:"analytical"`
}

// GMAT scores.
type GMAT struct {
	Overall             string `json:"overall"`
	ExamDate            string `json:"examDate"`
	Verbal              string `json:"verbal"`
	Quant               string `json:"quant"`
	Analytical          string `json:"analytical"`
	IntegratedReasoning string `json:"integratedReasoning"`
}

// LanguageTest covers the four-skill English tests (TOEFL, IELTS, PTE).
type LanguageTest struct {
	Overall   string `json:"overall"`
	ExamDate  string `json:"examDate"`
	Reading   string `json:"reading"`
	Listening string `json:"listening"`
	Speaking  string `json:"speaking"`
	Writing   string `json:"writing"`
}

// DET is the Duolingo English Test.
type DET struct {
	Overall       string `json:"overall"`
	ExamDate      string `json:"examDate"`
	Literacy      string `json:"literacy"`
	Comprehension string `json:"comprehension"`
	Conversation  string `json:"conversation"`
	Production    string `json:"production"`
}

// SAT scores.
type SAT struct {
	Overall  string `json:"overall"`
	ExamDate string `json:"examDate"`
	Math     string `json:"math"`
	Reading  string `json:"readingWriting"`
}

// ACT scores.
type ACT struct {
	Overall  string `json:"overall"`
	ExamDate string `json:"examDate"`
	English  string `json:"english"`
	Math     string `json:"math"`
	Reading  string `json:"reading"`
	Science  string `json:"science"`
}

// TestScores groups every standardized exam the student may have taken.
type TestScores struct {
	GRE   GRE          `json:"gre"`
	GMAT  GMAT         `json:"gmat"`
	TOEFL LanguageTest `json:"toefl"`
	IELTS LanguageTest `json:"ielts"`
	PTE   LanguageTest `json:"pte"`
	DET   DET          `json:"det"`
	SAT   SAT          `json:"sat"`
	ACT   ACT          `json:"act"`
}

// Student is the identity and profile record.
type Student struct {
	ID             string `json:"_id"`
	UserID         string `json:"userId,omitempty"`
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

	Address1         Address          `json:"address1"`
	Address2         Address          `json:"address2"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`

	MultipleCitizenship   bool   `json:"multipleCitizenship"`
	OtherCitizenship      string `json:"otherCitizenship"`
	LivingInOtherCountry  bool   `json:"livingInOtherCountry"`
	OtherResidenceCountry string `json:"otherResidenceCountry"`
	AppliedForImmigration bool   `json:"appliedForImmigration"`
	MedicalCondition      bool   `json:"medicalCondition"`
	MedicalDetails        string `json:"medicalDetails"`

	EducationSummary EducationSummary `json:"educationSummary"`
	PostGraduate     Qualification    `json:"postGraduate"`
	UnderGraduate    Qualification    `json:"underGraduate"`
	Grade12          Qualification    `json:"grade12"`
	Grade10          Qualification    `json:"grade10"`
	WorkExperience   []WorkExperience `json:"workExperience"`

	TestScores TestScores `json:"testScores"`

	AdvisorNotes     string    `json:"advisorNotes,omitempty"`
	HasEditedProfile bool      `json:"hasEditedProfile"`
	AdvisorID        string    `json:"advisor,omitempty"`
	CreatedAt        time.Time `json:"createdAt,omitempty"`
}

// FullName joins the non-empty name parts.
func (s Student) FullName() string {
	name := s.FirstName
	for _, part := range []string{s.MiddleName, s.LastName} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}
