package models

import "time"

// MaxApplicationsPerStudent caps how many applications one student may submit.
const MaxApplicationsPerStudent = 5

// Application is a student's request to a specific university program.
type Application struct {
	ID            string    `json:"_id"`
	StudentID     string    `json:"studentId"`
	StudentName   string    `json:"studentName,omitempty"`
	Program       string    `json:"program"`
	University    string    `json:"university"`
	CountryCode   string    `json:"countryCode"`
	Intake        string    `json:"intake"`
	Year          int       `json:"year"`
	Status        string    `json:"status"`
	StatusColor   string    `json:"statusColor"`
	Starred       bool      `json:"starred"`
	PortalName    string    `json:"portalName,omitempty"`
	PortalID      string    `json:"potalId,omitempty"`
	ApplicationID string    `json:"applicationId"`
	Date          time.Time `json:"date"`
}

// NewApplication is the body of POST /api/applications.
type NewApplication struct {
	Program       string    `json:"program" validate:"required,max=200"`
	University    string    `json:"university" validate:"required,max=200"`
	Intake        string    `json:"intake" validate:"required,oneof=Spring Summer Fall Winter"`
	Year          int       `json:"year" validate:"required,gte=2000,lte=2100"`
	CountryCode   string    `json:"countryCode" validate:"required,len=2,alpha"`
	StudentID     string    `json:"studentId" validate:"required"`
	ApplicationID string    `json:"applicationId"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
}

// StatusUpdate is the body of PUT /api/applications/{id}.
type StatusUpdate struct {
	Status      string `json:"status"`
	StatusColor string `json:"statusColor"`
}
