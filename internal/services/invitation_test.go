package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestportal/internal/domain"
)

// fakeInvitationRepo implements domain.InvitationRepository for service tests.
type fakeInvitationRepo struct {
	invitation *domain.Invitation
	list       []*domain.Invitation
	total      int
	err        error

	created     *domain.Invitation
	lastUpdate  *domain.InvitationUpdate
	deletedID   int64
	updateCalls int
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	if f.err != nil {
		return f.err
	}
	inv.ID = 1
	f.created = inv
	return nil
}

func (f *fakeInvitationRepo) GetByID(ctx context.Context, id int64) (*domain.Invitation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.invitation, nil
}

func (f *fakeInvitationRepo) List(ctx context.Context, filter domain.InvitationFilter) ([]*domain.Invitation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeInvitationRepo) Count(ctx context.Context, filter domain.InvitationFilter) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.total, nil
}

func (f *fakeInvitationRepo) Update(ctx context.Context, id int64, upd domain.InvitationUpdate) (*domain.Invitation, error) {
	f.updateCalls++
	f.lastUpdate = &upd
	if f.err != nil {
		return nil, f.err
	}
	out := *f.invitation
	if upd.Status != nil {
		out.Status = *upd.Status
	}
	return &out, nil
}

func (f *fakeInvitationRepo) SoftDelete(ctx context.Context, id int64) error {
	f.deletedID = id
	return f.err
}

// fakeEmailService implements domain.EmailService.
type fakeEmailService struct {
	err   error
	calls int
	last  *domain.GuestInvitationEmailData
}

func (f *fakeEmailService) SendGuestInvitation(ctx context.Context, data *domain.GuestInvitationEmailData) error {
	f.calls++
	f.last = data
	return f.err
}

func validInvitation() *domain.Invitation {
	return &domain.Invitation{
		ID:          1,
		GuestName:   "Dr. Jane Smith",
		GuestEmail:  "jane.smith@example.edu",
		CollegeName: "College of Engineering",
		EventTitle:  "Annual Research Symposium",
		Subject:     "Invitation to speak at our symposium",
		StaffNumber: "STF-1042",
		StaffEmail:  "host@college.edu",
		Status:      domain.StatusPending,
	}
}

func TestInvitationService_Create(t *testing.T) {
	t.Run("forces pending status and stamps timestamps", func(t *testing.T) {
		repo := &fakeInvitationRepo{}
		svc := NewInvitationService(repo, nil)

		inv := validInvitation()
		inv.Status = domain.StatusAccepted
		inv.ID = 0

		require.NoError(t, svc.Create(context.Background(), inv))
		assert.Equal(t, domain.StatusPending, inv.Status)
		assert.Equal(t, int64(1), inv.ID)
		assert.False(t, inv.CreatedAt.IsZero())
		assert.False(t, inv.UpdatedAt.IsZero())
		assert.Nil(t, inv.DeletedAt)
	})

	t.Run("aggregates field violations", func(t *testing.T) {
		repo := &fakeInvitationRepo{}
		svc := NewInvitationService(repo, nil)

		err := svc.Create(context.Background(), &domain.Invitation{
			GuestName:  "X",
			GuestEmail: "bad",
			Subject:    "hi",
		})
		var valErr *domain.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.GreaterOrEqual(t, len(valErr.Violations), 3)
		assert.Nil(t, repo.created, "invalid invitation must not reach the repository")
	})

	t.Run("repository failure is wrapped", func(t *testing.T) {
		repo := &fakeInvitationRepo{err: errors.New("db down")}
		svc := NewInvitationService(repo, nil)

		err := svc.Create(context.Background(), validInvitation())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
	})
}

func TestInvitationService_List(t *testing.T) {
	repo := &fakeInvitationRepo{
		list:  []*domain.Invitation{validInvitation()},
		total: 12,
	}
	svc := NewInvitationService(repo, nil)

	invitations, total, err := svc.List(context.Background(), domain.InvitationFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, invitations, 1)
	assert.Equal(t, 12, total)
}

func TestInvitationService_Update(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	statusPtr := func(s domain.InvitationStatus) *domain.InvitationStatus { return &s }

	t.Run("field update passes through", func(t *testing.T) {
		repo := &fakeInvitationRepo{invitation: validInvitation()}
		svc := NewInvitationService(repo, nil)

		_, err := svc.Update(context.Background(), 1, domain.InvitationUpdate{GuestName: strPtr("Dr. John Doe")})
		require.NoError(t, err)
		require.NotNil(t, repo.lastUpdate)
		assert.Equal(t, "Dr. John Doe", *repo.lastUpdate.GuestName)
	})

	t.Run("allowed transition", func(t *testing.T) {
		repo := &fakeInvitationRepo{invitation: validInvitation()}
		svc := NewInvitationService(repo, nil)

		updated, err := svc.Update(context.Background(), 1, domain.InvitationUpdate{Status: statusPtr(domain.StatusSent)})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSent, updated.Status)
	})

	t.Run("disallowed transition", func(t *testing.T) {
		inv := validInvitation()
		inv.Status = domain.StatusAccepted
		repo := &fakeInvitationRepo{invitation: inv}
		svc := NewInvitationService(repo, nil)

		_, err := svc.Update(context.Background(), 1, domain.InvitationUpdate{Status: statusPtr(domain.StatusPending)})
		require.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Zero(t, repo.updateCalls)
	})

	t.Run("same status is a no-op transition", func(t *testing.T) {
		repo := &fakeInvitationRepo{invitation: validInvitation()}
		svc := NewInvitationService(repo, nil)

		_, err := svc.Update(context.Background(), 1, domain.InvitationUpdate{Status: statusPtr(domain.StatusPending)})
		require.NoError(t, err)
	})

	t.Run("invalid field values are rejected before any read", func(t *testing.T) {
		repo := &fakeInvitationRepo{invitation: validInvitation()}
		svc := NewInvitationService(repo, nil)

		_, err := svc.Update(context.Background(), 1, domain.InvitationUpdate{GuestEmail: strPtr("nope")})
		var valErr *domain.ValidationError
		require.ErrorAs(t, err, &valErr)
	})

	t.Run("missing invitation", func(t *testing.T) {
		repo := &fakeInvitationRepo{err: domain.ErrNotFound}
		svc := NewInvitationService(repo, nil)

		_, err := svc.Update(context.Background(), 99, domain.InvitationUpdate{GuestName: strPtr("Dr. Jane Smith")})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestInvitationService_Delete(t *testing.T) {
	repo := &fakeInvitationRepo{}
	svc := NewInvitationService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), 5))
	assert.Equal(t, int64(5), repo.deletedID)

	repo.err = domain.ErrNotFound
	require.ErrorIs(t, svc.Delete(context.Background(), 6), domain.ErrNotFound)
}

func TestInvitationService_Send(t *testing.T) {
	t.Run("emails the guest then marks sent", func(t *testing.T) {
		repo := &fakeInvitationRepo{invitation: validInvitation()}
		mailer := &fakeEmailService{}
		svc := NewInvitationService(repo, mailer)

		sent, err := svc.Send(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSent, sent.Status)
		assert.Equal(t, 1, mailer.calls)
		require.NotNil(t, mailer.last)
		assert.Equal(t, "jane.smith@example.edu", mailer.last.GuestEmail)
		require.NotNil(t, repo.lastUpdate)
		require.NotNil(t, repo.lastUpdate.Status)
		assert.Equal(t, domain.StatusSent, *repo.lastUpdate.Status)
	})

	t.Run("email failure keeps the invitation pending", func(t *testing.T) {
		repo := &fakeInvitationRepo{invitation: validInvitation()}
		mailer := &fakeEmailService{err: errors.New("ses unavailable")}
		svc := NewInvitationService(repo, mailer)

		_, err := svc.Send(context.Background(), 1)
		require.Error(t, err)
		assert.Zero(t, repo.updateCalls, "a failed delivery must not change status")
	})

	t.Run("only pending invitations can be sent", func(t *testing.T) {
		inv := validInvitation()
		inv.Status = domain.StatusSent
		repo := &fakeInvitationRepo{invitation: inv}
		mailer := &fakeEmailService{}
		svc := NewInvitationService(repo, mailer)

		_, err := svc.Send(context.Background(), 1)
		require.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Zero(t, mailer.calls)
	})

	t.Run("missing invitation", func(t *testing.T) {
		repo := &fakeInvitationRepo{err: domain.ErrNotFound}
		svc := NewInvitationService(repo, &fakeEmailService{})

		_, err := svc.Send(context.Background(), 42)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
