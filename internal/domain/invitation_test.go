package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvitationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from InvitationStatus
		to   InvitationStatus
		want bool
	}{
		{"pending to sent", StatusPending, StatusSent, true},
		{"pending to declined", StatusPending, StatusDeclined, true},
		{"pending to accepted skips sent", StatusPending, StatusAccepted, false},
		{"sent to accepted", StatusSent, StatusAccepted, true},
		{"sent to declined", StatusSent, StatusDeclined, true},
		{"sent back to pending", StatusSent, StatusPending, false},
		{"accepted is terminal", StatusAccepted, StatusDeclined, false},
		{"accepted back to sent", StatusAccepted, StatusSent, false},
		{"declined is terminal", StatusDeclined, StatusAccepted, false},
		{"declined back to pending", StatusDeclined, StatusPending, false},
		{"same status pending", StatusPending, StatusPending, true},
		{"same status accepted", StatusAccepted, StatusAccepted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestInvitationStatus_Valid(t *testing.T) {
	for _, s := range []InvitationStatus{StatusPending, StatusSent, StatusAccepted, StatusDeclined} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, InvitationStatus("canceled").Valid())
	assert.False(t, InvitationStatus("").Valid())
	assert.False(t, InvitationStatus("Pending").Valid(), "statuses are case sensitive")
}

func validInvitation() *Invitation {
	return &Invitation{
		GuestName:   "Dr. Jane Smith",
		GuestEmail:  "jane.smith@example.edu",
		CollegeName: "College of Engineering",
		EventTitle:  "Annual Research Symposium",
		Subject:     "Invitation to speak at our symposium",
		StaffNumber: "STF-1042",
		StaffEmail:  "host@college.edu",
	}
}

func TestInvitation_Validate(t *testing.T) {
	t.Run("valid invitation has no violations", func(t *testing.T) {
		require.Empty(t, validInvitation().Validate())
	})

	t.Run("two character fields are accepted at the boundary", func(t *testing.T) {
		inv := validInvitation()
		inv.GuestName = "Li"
		inv.CollegeName = "IT"
		inv.EventTitle = "Go"
		require.Empty(t, inv.Validate())
	})

	t.Run("all violations are reported together", func(t *testing.T) {
		inv := &Invitation{
			GuestName:   "A",
			GuestEmail:  "not-an-email",
			CollegeName: "",
			EventTitle:  "B",
			Subject:     "abc",
			StaffNumber: "12",
			StaffEmail:  "also-bad",
		}
		violations := inv.Validate()
		require.Len(t, violations, 7)

		fields := make([]string, 0, len(violations))
		for _, v := range violations {
			fields = append(fields, v.Field)
		}
		assert.ElementsMatch(t, []string{
			"guestName", "guestEmail", "collegeName", "eventTitle",
			"subject", "staffNumber", "staffEmail",
		}, fields)
	})

	tests := []struct {
		name        string
		mutate      func(*Invitation)
		wantField   string
		wantMessage string
	}{
		{
			name:        "guest name too short",
			mutate:      func(i *Invitation) { i.GuestName = "X" },
			wantField:   "guestName",
			wantMessage: "Guest name must be 2-255 characters",
		},
		{
			name:        "guest name too long",
			mutate:      func(i *Invitation) { i.GuestName = strings.Repeat("a", 256) },
			wantField:   "guestName",
			wantMessage: "Guest name must be 2-255 characters",
		},
		{
			name:        "invalid guest email",
			mutate:      func(i *Invitation) { i.GuestEmail = "jane@" },
			wantField:   "guestEmail",
			wantMessage: "Please enter a valid email address",
		},
		{
			name:        "guest email over 255 bytes",
			mutate:      func(i *Invitation) { i.GuestEmail = strings.Repeat("a", 250) + "@example.com" },
			wantField:   "guestEmail",
			wantMessage: "Please enter a valid email address",
		},
		{
			name:        "subject too short",
			mutate:      func(i *Invitation) { i.Subject = "Hiya" },
			wantField:   "subject",
			wantMessage: "Subject must be 5-1000 characters",
		},
		{
			name:        "subject too long",
			mutate:      func(i *Invitation) { i.Subject = strings.Repeat("s", 1001) },
			wantField:   "subject",
			wantMessage: "Subject must be 5-1000 characters",
		},
		{
			name:        "staff number too short",
			mutate:      func(i *Invitation) { i.StaffNumber = "12" },
			wantField:   "staffNumber",
			wantMessage: "Staff number must be 3-50 characters",
		},
		{
			name:        "invalid staff email",
			mutate:      func(i *Invitation) { i.StaffEmail = "host at college" },
			wantField:   "staffEmail",
			wantMessage: "Please enter a valid staff email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := validInvitation()
			tt.mutate(inv)
			violations := inv.Validate()
			require.Len(t, violations, 1)
			assert.Equal(t, tt.wantField, violations[0].Field)
			assert.Equal(t, tt.wantMessage, violations[0].Message)
		})
	}
}

func TestInvitationUpdate_Validate(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	statusPtr := func(s InvitationStatus) *InvitationStatus { return &s }

	t.Run("empty update is valid", func(t *testing.T) {
		upd := InvitationUpdate{}
		require.True(t, upd.Empty())
		require.Empty(t, upd.Validate())
	})

	t.Run("only present fields are checked", func(t *testing.T) {
		upd := InvitationUpdate{GuestName: strPtr("Dr. Jane Smith")}
		require.False(t, upd.Empty())
		require.Empty(t, upd.Validate())
	})

	t.Run("present invalid fields are reported", func(t *testing.T) {
		upd := InvitationUpdate{
			GuestName:  strPtr("X"),
			GuestEmail: strPtr("bad"),
		}
		violations := upd.Validate()
		require.Len(t, violations, 2)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		upd := InvitationUpdate{Status: statusPtr("archived")}
		violations := upd.Validate()
		require.Len(t, violations, 1)
		assert.Equal(t, "status", violations[0].Field)
		assert.Equal(t, "Status must be one of pending, sent, accepted, declined", violations[0].Message)
	})

	t.Run("known status is accepted", func(t *testing.T) {
		upd := InvitationUpdate{Status: statusPtr(StatusDeclined)}
		require.Empty(t, upd.Validate())
	})
}

func TestNewValidationError(t *testing.T) {
	require.Nil(t, NewValidationError(nil))
	require.Nil(t, NewValidationError([]FieldViolation{}))

	err := NewValidationError([]FieldViolation{
		{Field: "guestName", Message: "Guest name must be 2-255 characters"},
		{Field: "subject", Message: "Subject must be 5-1000 characters"},
	})
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "guestName")
	assert.Contains(t, err.Error(), "subject")
}
