// Package auth describes what the current user may do. A Capability is
// passed explicitly into every view-model; nothing looks up the user from
// ambient state.
package auth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zhubert/studydesk/internal/models"
)

// Role is the user's role as issued by the backend.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAdvisor Role = "advisor"
	RoleStudent Role = "student"
)

// Capability is the caller's identity and role.
type Capability struct {
	UserID    string
	Name      string
	Role      Role
	StudentID string // set when Role is RoleStudent
}

// IsAdminOrAdvisor reports whether c holds an elevated role.
func (c Capability) IsAdminOrAdvisor() bool {
	return c.Role == RoleAdmin || c.Role == RoleAdvisor
}

// IsStudent reports whether c is a student.
func (c Capability) IsStudent() bool {
	return c.Role == RoleStudent
}

// Owns reports whether the student record belongs to c.
func (c Capability) Owns(s models.Student) bool {
	if !c.IsStudent() {
		return false
	}
	if c.StudentID != "" && c.StudentID == s.ID {
		return true
	}
	return c.UserID != "" && c.UserID == s.UserID
}

// CanEditProfile applies the one-time self-edit policy: elevated roles can
// always edit; the owning student can edit until hasEditedProfile is set.
func (c Capability) CanEditProfile(s models.Student) bool {
	if c.IsAdminOrAdvisor() {
		return true
	}
	return c.Owns(s) && !s.HasEditedProfile
}

// CanDeleteDocument allows elevated roles, or a student removing a document
// filed under their own record.
func (c Capability) CanDeleteDocument(d models.Document) bool {
	if c.IsAdminOrAdvisor() {
		return true
	}
	return c.IsStudent() && d.StudentID != "" && d.StudentID == c.StudentID
}

// String renders the capability for `studydesk whoami` and the header.
func (c Capability) String() string {
	name := c.Name
	if name == "" {
		name = c.UserID
	}
	if name == "" {
		return string(c.Role)
	}
	return fmt.Sprintf("%s (%s)", name, c.Role)
}

// Claims are the fields studydesk reads from the backend's access token.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role"`
	StudentID string `json:"studentId,omitempty"`
}

// FromToken decodes the role claims of a bearer token. The signature is not
// verified: the backend does that on every request, and the client only needs
// the claims to decide which actions to offer.
func FromToken(token string) (Capability, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return Capability{}, fmt.Errorf("empty token")
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Capability{}, fmt.Errorf("failed to decode token: %w", err)
	}

	role, err := ParseRole(claims.Role)
	if err != nil {
		return Capability{}, err
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	return Capability{
		UserID:    userID,
		Name:      claims.Name,
		Role:      role,
		StudentID: claims.StudentID,
	}, nil
}

// ParseRole accepts the backend's role spelling in any case.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleAdvisor, RoleStudent:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}
