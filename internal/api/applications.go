package api

import (
	"context"
	"net/http"

	"github.com/zhubert/studydesk/internal/models"
)

// ListApplications returns every application visible to the caller.
func (c *Client) ListApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := c.doJSON(ctx, "api.ListApplications", http.MethodGet, "/api/applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListStudentApplications returns the applications of one student.
func (c *Client) ListStudentApplications(ctx context.Context, studentID string) ([]models.Application, error) {
	var apps []models.Application
	path := "/api/students/" + escape(studentID) + "/applications"
	if err := c.doJSON(ctx, "api.ListStudentApplications", http.MethodGet, path, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// CreateApplication submits a new application.
func (c *Client) CreateApplication(ctx context.Context, in models.NewApplication) (models.Application, error) {
	var app models.Application
	err := c.doJSON(ctx, "api.CreateApplication", http.MethodPost, "/api/applications", in, &app)
	return app, err
}

// UpdateApplicationStatus persists a new status label and colour.
func (c *Client) UpdateApplicationStatus(ctx context.Context, id, status, color string) (models.Application, error) {
	var app models.Application
	body := models.StatusUpdate{Status: status, StatusColor: color}
	err := c.doJSON(ctx, "api.UpdateApplicationStatus", http.MethodPut, "/api/applications/"+escape(id), body, &app)
	return app, err
}

type starResponse struct {
	Starred bool `json:"starred"`
}

// ToggleStar flips the priority flag and returns its new value.
func (c *Client) ToggleStar(ctx context.Context, id string) (bool, error) {
	var resp starResponse
	path := "/api/applications/" + escape(id) + "/toggle-star"
	if err := c.doJSON(ctx, "api.ToggleStar", http.MethodPatch, path, nil, &resp); err != nil {
		return false, err
	}
	return resp.Starred, nil
}

// DeleteApplication removes an application.
func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	return c.doJSON(ctx, "api.DeleteApplication", http.MethodDelete, "/api/applications/"+escape(id), nil, nil)
}
