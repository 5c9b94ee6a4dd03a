package domain

import (
	"context"
	"errors"
	"regexp"
	"time"
	"unicode/utf8"
)

// Sentinel errors for invitation operations.
var (
	ErrNotFound          = errors.New("invitation not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// InvitationStatus is the lifecycle state of an invitation.
type InvitationStatus string

const (
	StatusPending  InvitationStatus = "pending"
	StatusSent     InvitationStatus = "sent"
	StatusAccepted InvitationStatus = "accepted"
	StatusDeclined InvitationStatus = "declined"
)

// Valid reports whether s is one of the four known statuses.
func (s InvitationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusSent, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Setting the current status again is a no-op and always allowed.
//
//	pending  -> sent, declined
//	sent     -> accepted, declined
//	accepted -> (terminal)
//	declined -> (terminal)
func (s InvitationStatus) CanTransitionTo(next InvitationStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusSent || next == StatusDeclined
	case StatusSent:
		return next == StatusAccepted || next == StatusDeclined
	}
	return false
}

// Invitation represents a staff-initiated request to invite a guest to an
// event. Soft-deleted records keep their row; DeletedAt marks them as gone.
// swagger:model Invitation
type Invitation struct {
	ID          int64            `json:"id"`
	GuestName   string           `json:"guestName"`
	GuestEmail  string           `json:"guestEmail"`
	CollegeName string           `json:"collegeName"`
	EventTitle  string           `json:"eventTitle"`
	Subject     string           `json:"subject"`
	StaffNumber string           `json:"staffNumber"`
	StaffEmail  string           `json:"staffEmail"`
	Status      InvitationStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	DeletedAt   *time.Time       `json:"deletedAt,omitempty"`
}

// Validate checks every field against its length/format constraint and
// returns the complete list of violations, nil if the invitation is valid.
func (i *Invitation) Validate() []FieldViolation {
	var violations []FieldViolation
	violations = appendLenViolation(violations, "guestName", i.GuestName, 2, 255, "Guest name must be 2-255 characters")
	violations = appendEmailViolation(violations, "guestEmail", i.GuestEmail, "Please enter a valid email address")
	violations = appendLenViolation(violations, "collegeName", i.CollegeName, 2, 255, "College name must be 2-255 characters")
	violations = appendLenViolation(violations, "eventTitle", i.EventTitle, 2, 255, "Event title must be 2-255 characters")
	violations = appendLenViolation(violations, "subject", i.Subject, 5, 1000, "Subject must be 5-1000 characters")
	violations = appendLenViolation(violations, "staffNumber", i.StaffNumber, 3, 50, "Staff number must be 3-50 characters")
	violations = appendEmailViolation(violations, "staffEmail", i.StaffEmail, "Please enter a valid staff email address")
	return violations
}

// InvitationUpdate carries a partial update; nil fields are unchanged.
type InvitationUpdate struct {
	GuestName   *string
	GuestEmail  *string
	CollegeName *string
	EventTitle  *string
	Subject     *string
	StaffNumber *string
	StaffEmail  *string
	Status      *InvitationStatus
}

// Empty reports whether the update carries no fields at all.
func (u InvitationUpdate) Empty() bool {
	return u.GuestName == nil && u.GuestEmail == nil && u.CollegeName == nil &&
		u.EventTitle == nil && u.Subject == nil && u.StaffNumber == nil &&
		u.StaffEmail == nil && u.Status == nil
}

// Validate checks only the fields present in the update and returns the
// complete list of violations, nil if all supplied fields are valid.
func (u InvitationUpdate) Validate() []FieldViolation {
	var violations []FieldViolation
	if u.GuestName != nil {
		violations = appendLenViolation(violations, "guestName", *u.GuestName, 2, 255, "Guest name must be 2-255 characters")
	}
	if u.GuestEmail != nil {
		violations = appendEmailViolation(violations, "guestEmail", *u.GuestEmail, "Please enter a valid email address")
	}
	if u.CollegeName != nil {
		violations = appendLenViolation(violations, "collegeName", *u.CollegeName, 2, 255, "College name must be 2-255 characters")
	}
	if u.EventTitle != nil {
		violations = appendLenViolation(violations, "eventTitle", *u.EventTitle, 2, 255, "Event title must be 2-255 characters")
	}
	if u.Subject != nil {
		violations = appendLenViolation(violations, "subject", *u.Subject, 5, 1000, "Subject must be 5-1000 characters")
	}
	if u.StaffNumber != nil {
		violations = appendLenViolation(violations, "staffNumber", *u.StaffNumber, 3, 50, "Staff number must be 3-50 characters")
	}
	if u.StaffEmail != nil {
		violations = appendEmailViolation(violations, "staffEmail", *u.StaffEmail, "Please enter a valid staff email address")
	}
	if u.Status != nil && !u.Status.Valid() {
		violations = append(violations, FieldViolation{Field: "status", Message: "Status must be one of pending, sent, accepted, declined"})
	}
	return violations
}

func appendLenViolation(violations []FieldViolation, field, value string, min, max int, msg string) []FieldViolation {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return append(violations, FieldViolation{Field: field, Message: msg})
	}
	return violations
}

func appendEmailViolation(violations []FieldViolation, field, value, msg string) []FieldViolation {
	if len(value) > 255 || !emailRegexp.MatchString(value) {
		return append(violations, FieldViolation{Field: field, Message: msg})
	}
	return violations
}

// InvitationFilter narrows List and Count. Zero Limit means no pagination.
type InvitationFilter struct {
	Status *InvitationStatus
	Limit  int
	Offset int
}

// InvitationRepository defines storage operations for invitations. All reads
// and updates see only live (non-soft-deleted) rows.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id int64) (*Invitation, error)
	List(ctx context.Context, filter InvitationFilter) ([]*Invitation, error)
	Count(ctx context.Context, filter InvitationFilter) (int, error)
	Update(ctx context.Context, id int64, upd InvitationUpdate) (*Invitation, error)
	SoftDelete(ctx context.Context, id int64) error
}

// InvitationService defines the invitation business logic.
type InvitationService interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id int64) (*Invitation, error)
	List(ctx context.Context, filter InvitationFilter) ([]*Invitation, int, error)
	Update(ctx context.Context, id int64, upd InvitationUpdate) (*Invitation, error)
	Delete(ctx context.Context, id int64) error
	Send(ctx context.Context, id int64) (*Invitation, error)
}
