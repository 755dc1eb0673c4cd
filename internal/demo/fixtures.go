// Package demo holds the fixed placeholder dataset shown when the backend
// cannot be reached, so lists and profile pages are never empty.
package demo

import (
	"time"

	"github.com/zhubert/studydesk/internal/models"
)

// Epoch anchors every fixture timestamp so output is stable.
var Epoch = time.Date(2025, time.March, 3, 10, 30, 0, 0, time.UTC)

const (
	StudentID = "demo-student"
	AdvisorID = "demo-advisor"
)

// Applications returns the placeholder application list.
func Applications() []models.Application {
	return []models.Application{
		{
			ID: "demo-app-1", StudentID: StudentID, StudentName: "Priya Sharma",
			Program: "MSc Computer Science", University: "University of Toronto",
			CountryCode: "CA", Intake: "Fall", Year: 2025,
			Status: "Under Review", StatusColor: "#8e24aa", Starred: true,
			PortalName: "OUAC", PortalID: "T-48213", ApplicationID: "482913/2025",
			Date: Epoch.AddDate(0, 0, -12),
		},
		{
			ID: "demo-app-2", StudentID: StudentID, StudentName: "Priya Sharma",
			Program: "MEng Software Engineering", University: "University of Melbourne",
			CountryCode: "AU", Intake: "Spring", Year: 2026,
			Status: "Documents Requested", StatusColor: "#ffb300",
			ApplicationID: "118245/2026", Date: Epoch.AddDate(0, 0, -7),
		},
		{
			ID: "demo-app-3", StudentID: StudentID, StudentName: "Priya Sharma",
			Program: "MSc Data Science", University: "Technical University of Munich",
			CountryCode: "DE", Intake: "Winter", Year: 2025,
			Status: "Offer Received", StatusColor: "#43a047",
			ApplicationID: "903311/2025", Date: Epoch.AddDate(0, 0, -30),
		},
	}
}

// StudentApplications returns the placeholder applications re-homed to studentID.
func StudentApplications(studentID string) []models.Application {
	apps := Applications()
	for i := range apps {
		apps[i].StudentID = studentID
	}
	return apps
}

// Chat returns the placeholder thread for an application.
func Chat(applicationID string) models.ApplicationChat {
	advisor := models.Sender{ID: AdvisorID, Name: "Advisor", Role: "advisor"}
	student := models.Sender{ID: StudentID, Name: "Priya Sharma", Role: "student"}
	return models.ApplicationChat{
		ID:            "demo-chat-" + applicationID,
		ApplicationID: applicationID,
		Messages: []models.Message{
			{ID: "demo-msg-1", Sender: advisor, Text: "Welcome! I'll be tracking this application with you.", Timestamp: Epoch.Add(-48 * time.Hour), Read: true},
			{ID: "demo-msg-2", Sender: student, Text: "Thanks, I've uploaded my transcripts.", Timestamp: Epoch.Add(-26 * time.Hour), Read: true},
			{ID: "demo-msg-3", Sender: advisor, Text: "Got them. The SOP is next.", Timestamp: Epoch.Add(-2 * time.Hour), Read: true},
		},
	}
}

// Student returns the placeholder profile. An empty id keeps the demo id.
func Student(id string) models.Student {
	if id == "" {
		id = StudentID
	}
	return models.Student{
		ID:            id,
		UserID:        "demo-user",
		FirstName:     "Priya",
		LastName:      "Sharma",
		Email:         "priya.sharma@example.com",
		Phone:         "+91 98765 43210",
		DateOfBirth:   "2000-05-14",
		Gender:        "Female",
		MaritalStatus: "Single",
		Nationality:   "Indian",
		Address1: models.Address{
			Country: "India", State: "Maharashtra", City: "Pune", Pincode: "411001",
		},
		EmergencyContact: models.EmergencyContact{
			Name: "Anil Sharma", Phone: "+91 98765 00000", Relation: "Father",
		},
		EducationSummary: models.EducationSummary{
			CountryOfEducation: "India", HighestLevel: "Undergraduate",
			GradingScheme: "Percentage", GradeAverage: "82",
		},
		UnderGraduate: models.Qualification{
			Country: "India", State: "Maharashtra", City: "Pune",
			InstitutionName: "Savitribai Phule Pune University",
			Qualification:   "B.E. Computer Engineering", GradingSystem: "Percentage",
			Percentage: "82", Language: "English",
			StartDate: "2018-07-01", EndDate: "2022-06-30",
		},
		WorkExperience: []models.WorkExperience{
			{Organization: "Infosys", Position: "Systems Engineer", JobProfile: "Backend services",
				WorkingMode: "Full-time", StartDate: "2022-08-01", EndDate: "2024-12-31"},
		},
		TestScores: models.TestScores{
			IELTS: models.LanguageTest{Overall: "7.5", Reading: "8", Listening: "8", Speaking: "7", Writing: "7"},
			GRE:   models.GRE{Overall: "322", Verbal: "158", Quant: "164", Analytical: "4.0"},
		},
		CreatedAt: Epoch.AddDate(0, -2, 0),
	}
}

// Documents returns the placeholder document list for studentID, or the
// global library when studentID is empty.
func Documents(studentID string) []models.Document {
	if studentID == "" {
		return []models.Document{
			{ID: "demo-doc-g1", Name: "Visa Checklist.pdf", Type: models.DocVisa, Size: 182_144, MimeType: "application/pdf", UploadedAt: Epoch.AddDate(0, -1, 0)},
			{ID: "demo-doc-g2", Name: "SOP Guidelines.docx", Type: models.DocSOP, Size: 48_213, UploadedAt: Epoch.AddDate(0, 0, -20)},
		}
	}
	return []models.Document{
		{ID: "demo-doc-1", Name: "Passport.pdf", Type: models.DocPassport, StudentID: studentID, Size: 1_536_000, MimeType: "application/pdf", UploadedAt: Epoch.AddDate(0, 0, -10)},
		{ID: "demo-doc-2", Name: "Transcript.pdf", Type: models.DocTranscript, StudentID: studentID, Size: 734_003, MimeType: "application/pdf", UploadedAt: Epoch.AddDate(0, 0, -9)},
		{ID: "demo-doc-3", Name: "IELTS.pdf", Type: models.DocTestScore, StudentID: studentID, Size: 210_500, MimeType: "application/pdf", UploadedAt: Epoch.AddDate(0, 0, -3)},
	}
}

// Chats returns placeholder dashboard summaries for the given applications.
func Chats(apps []models.Application) []models.ChatSummary {
	out := make([]models.ChatSummary, 0, len(apps))
	for _, a := range apps {
		c := Chat(a.ID)
		last := c.Messages[len(c.Messages)-1]
		out = append(out, models.ChatSummary{
			ID:            c.ID,
			ApplicationID: a.ID,
			University:    a.University,
			LastMessage:   last.Text,
			UpdatedAt:     last.Timestamp,
		})
	}
	return out
}
