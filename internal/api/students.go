package api

import (
	"context"
	"net/http"

	"github.com/zhubert/studydesk/internal/models"
)

// GetProfile returns the caller's own student record.
func (c *Client) GetProfile(ctx context.Context) (models.Student, error) {
	var s models.Student
	err := c.doJSON(ctx, "api.GetProfile", http.MethodGet, "/api/students/profile", nil, &s)
	return s, err
}

// GetStudent returns one student record.
func (c *Client) GetStudent(ctx context.Context, id string) (models.Student, error) {
	var s models.Student
	err := c.doJSON(ctx, "api.GetStudent", http.MethodGet, "/api/students/"+escape(id), nil, &s)
	return s, err
}

// UpdateStudent sends a partial student record. patch is marshalled as-is,
// so only the keys it carries are touched.
func (c *Client) UpdateStudent(ctx context.Context, id string, patch any) (models.Student, error) {
	var s models.Student
	err := c.doJSON(ctx, "api.UpdateStudent", http.MethodPut, "/api/students/"+escape(id), patch, &s)
	return s, err
}

type advisorNotesRequest struct {
	Notes string `json:"notes"`
}

// UpdateAdvisorNotes replaces the advisor-only notes of a student.
func (c *Client) UpdateAdvisorNotes(ctx context.Context, id, notes string) error {
	path := "/api/students/" + escape(id) + "/advisor-notes"
	return c.doJSON(ctx, "api.UpdateAdvisorNotes", http.MethodPatch, path, advisorNotesRequest{Notes: notes}, nil)
}

// DeleteStudent removes a student record.
func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.doJSON(ctx, "api.DeleteStudent", http.MethodDelete, "/api/students/"+escape(id), nil, nil)
}
