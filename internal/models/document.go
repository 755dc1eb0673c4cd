package models

import "time"

// DocumentType is the category a document is filed under.
type DocumentType string

const (
	DocPassport       DocumentType = "passport"
	DocTranscript     DocumentType = "transcript"
	DocDegree         DocumentType = "degree"
	DocResume         DocumentType = "resume"
	DocSOP            DocumentType = "sop"
	DocRecommendation DocumentType = "lor"
	DocTestScore      DocumentType = "test_score"
	DocFinancial      DocumentType = "financial"
	DocOffer          DocumentType = "offer_letter"
	DocVisa           DocumentType = "visa"
	DocOther          DocumentType = "other"
)

// DocumentTypes lists every category in display order.
var DocumentTypes = []DocumentType{
	DocPassport, DocTranscript, DocDegree, DocResume, DocSOP, DocRecommendation,
	DocTestScore, DocFinancial, DocOffer, DocVisa, DocOther,
}

var documentTypeLabels = map[DocumentType]string{
	DocPassport:       "Passport",
	DocTranscript:     "Transcript",
	DocDegree:         "Degree Certificate",
	DocResume:         "Resume / CV",
	DocSOP:            "Statement of Purpose",
	DocRecommendation: "Letter of Recommendation",
	DocTestScore:      "Test Score Report",
	DocFinancial:      "Financial Documents",
	DocOffer:          "Offer Letter",
	DocVisa:           "Visa",
	DocOther:          "Other",
}

// Label returns the display name of the type.
func (t DocumentType) Label() string {
	if l, ok := documentTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Valid reports whether t is one of DocumentTypes.
func (t DocumentType) Valid() bool {
	_, ok := documentTypeLabels[t]
	return ok
}

// Document is an uploaded file. StudentID is empty for the global library.
type Document struct {
	ID         string       `json:"_id"`
	Name       string       `json:"name"`
	Type       DocumentType `json:"type"`
	StudentID  string       `json:"studentId,omitempty"`
	Size       int64        `json:"size"`
	MimeType   string       `json:"mimeType,omitempty"`
	UploadedAt time.Time    `json:"uploadedAt"`
}
