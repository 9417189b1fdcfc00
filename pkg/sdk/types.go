package sdk

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies the single role held by an account.
type Role string

const (
	// RoleUser books resources.
	RoleUser Role = "USER"
	// RoleServicer owns categories and resources and decides on booking requests.
	RoleServicer Role = "SERVICER"
)

// Roles lists every role the backend accepts, in display order.
var Roles = []Role{RoleUser, RoleServicer}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleServicer
}

func (r Role) String() string {
	return string(r)
}

// ParseRole parses a role name case-insensitively.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(value)))
	if !role.Valid() {
		return "", &ValidationError{Field: "role", Message: fmt.Sprintf("unknown role %q (expected USER or SERVICER)", value)}
	}
	return role, nil
}

// UserIdentity is the authenticated account as reported by the backend.
type UserIdentity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session pairs an identity with the bearer token issued for it.
// A nil *Session means nobody is signed in.
type Session struct {
	Identity UserIdentity
	Token    string
}

// Validate checks that a session carries everything later requests rely on.
func (s *Session) Validate() error {
	if s == nil {
		return fmt.Errorf("session is nil")
	}
	if s.Token == "" {
		return fmt.Errorf("session has no token")
	}
	if s.Identity.Email == "" {
		return fmt.Errorf("session has no email")
	}
	if !s.Identity.Role.Valid() {
		return fmt.Errorf("session has invalid role %q", s.Identity.Role)
	}
	return nil
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}

// authPayload is the data member of a successful /auth/login or /auth/register response.
type authPayload struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Token string `json:"token"`
}

func (p authPayload) session() *Session {
	return &Session{
		Identity: UserIdentity{ID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role},
		Token:    p.Token,
	}
}

// Category groups resources owned by a servicer.
type Category struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	ServicerID    int64     `json:"servicerId,omitempty"`
	ServicerName  string    `json:"servicerName,omitempty"`
	ResourceCount int       `json:"resourceCount"`
	CreatedAt     Timestamp `json:"createdAt,omitzero"`
}

// CategoryInput is the body for creating or updating a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Validate reports the first missing required field.
func (in CategoryInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "category name is required"}
	}
	return nil
}

// Resource is a bookable item (room, equipment, ...).
type Resource struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	CategoryID   int64     `json:"categoryId"`
	CategoryName string    `json:"categoryName,omitempty"`
	ServicerID   int64     `json:"servicerId,omitempty"`
	ServicerName string    `json:"servicerName,omitempty"`
	Location     string    `json:"location,omitempty"`
	Capacity     *int      `json:"capacity,omitempty"`
	IsAvailable  bool      `json:"isAvailable"`
	CreatedAt    Timestamp `json:"createdAt,omitzero"`
}

// ResourceInput is the body for creating or updating a resource.
type ResourceInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CategoryID  int64  `json:"categoryId"`
	Location    string `json:"location,omitempty"`
	Capacity    *int   `json:"capacity,omitempty"`
	IsAvailable *bool  `json:"isAvailable,omitempty"`
}

// Validate reports the first missing required field.
func (in ResourceInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "resource name is required"}
	}
	if in.CategoryID <= 0 {
		return &ValidationError{Field: "categoryId", Message: "category is required"}
	}
	if in.Capacity != nil && *in.Capacity < 0 {
		return &ValidationError{Field: "capacity", Message: "capacity cannot be negative"}
	}
	return nil
}

// BookingStatus is the lifecycle state of a booking request.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingApproved  BookingStatus = "APPROVED"
	BookingRejected  BookingStatus = "REJECTED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// Cancellable reports whether the requester may still cancel the booking.
func (s BookingStatus) Cancellable() bool {
	return s == BookingPending || s == BookingApproved
}

// Decidable reports whether a servicer may still approve or reject the booking.
func (s BookingStatus) Decidable() bool {
	return s == BookingPending
}

// Booking is a request to use a resource for a time window.
type Booking struct {
	ID               int64         `json:"id"`
	ResourceID       int64         `json:"resourceId"`
	ResourceName     string        `json:"resourceName,omitempty"`
	ResourceLocation string        `json:"resourceLocation,omitempty"`
	UserID           int64         `json:"userId,omitempty"`
	UserName         string        `json:"userName,omitempty"`
	UserEmail        string        `json:"userEmail,omitempty"`
	StartTime        Timestamp     `json:"startTime"`
	EndTime          Timestamp     `json:"endTime"`
	Status           BookingStatus `json:"status"`
	Purpose          string        `json:"purpose,omitempty"`
	CreatedAt        Timestamp     `json:"createdAt,omitzero"`
	UpdatedAt        Timestamp     `json:"updatedAt,omitzero"`
}

// BookingInput is the body of POST /bookings. Times are sent as ISO-8601.
type BookingInput struct {
	ResourceID int64     `json:"resourceId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Purpose    string    `json:"purpose,omitempty"`
}

// Validate checks required fields. Overlap with other bookings is the backend's call.
func (in BookingInput) Validate() error {
	if in.ResourceID <= 0 {
		return &ValidationError{Field: "resourceId", Message: "resource is required"}
	}
	if in.StartTime.IsZero() {
		return &ValidationError{Field: "startTime", Message: "start time is required"}
	}
	if in.EndTime.IsZero() {
		return &ValidationError{Field: "endTime", Message: "end time is required"}
	}
	if !in.EndTime.After(in.StartTime) {
		return &ValidationError{Field: "endTime", Message: "end time must be after start time"}
	}
	return nil
}
