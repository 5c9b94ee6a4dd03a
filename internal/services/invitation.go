package services

import (
	"context"
	"fmt"
	"time"

	"guestportal/internal/domain"
)

type invitationService struct {
	repo         domain.InvitationRepository
	emailService domain.EmailService
}

// NewInvitationService creates an InvitationService with the given repository
// and email service. emailService may be nil, in which case Send only
// transitions the record.
func NewInvitationService(repo domain.InvitationRepository, emailService domain.EmailService) domain.InvitationService {
	return &invitationService{repo: repo, emailService: emailService}
}

// Create validates every field, forces status to pending regardless of the
// caller-supplied value, stamps timestamps, and persists the record.
func (s *invitationService) Create(ctx context.Context, inv *domain.Invitation) error {
	if err := domain.NewValidationError(inv.Validate()); err != nil {
		return err
	}
	now := time.Now()
	inv.Status = domain.StatusPending
	inv.CreatedAt = now
	inv.UpdatedAt = now
	inv.DeletedAt = nil
	if err := s.repo.Create(ctx, inv); err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

func (s *invitationService) GetByID(ctx context.Context, id int64) (*domain.Invitation, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the matching live invitations and the total count for the
// filter (ignoring its limit/offset).
func (s *invitationService) List(ctx context.Context, filter domain.InvitationFilter) ([]*domain.Invitation, int, error) {
	invitations, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invitations: %w", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count invitations: %w", err)
	}
	return invitations, total, nil
}

// Update applies the supplied subset of fields. Validation covers only the
// fields present. A status change must follow the transition table; a
// disallowed jump fails with ErrInvalidTransition.
func (s *invitationService) Update(ctx context.Context, id int64, upd domain.InvitationUpdate) (*domain.Invitation, error) {
	if err := domain.NewValidationError(upd.Validate()); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Status != nil && !current.Status.CanTransitionTo(*upd.Status) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, current.Status, *upd.Status)
	}
	return s.repo.Update(ctx, id, upd)
}

func (s *invitationService) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}

// Send emails the guest and transitions the invitation from pending to sent.
// The email goes out first; if it fails the record stays pending.
func (s *invitationService) Send(ctx context.Context, id int64) (*domain.Invitation, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, inv.Status, domain.StatusSent)
	}
	if s.emailService != nil {
		data := &domain.GuestInvitationEmailData{
			GuestName:   inv.GuestName,
			GuestEmail:  inv.GuestEmail,
			CollegeName: inv.CollegeName,
			EventTitle:  inv.EventTitle,
			Subject:     inv.Subject,
			StaffEmail:  inv.StaffEmail,
		}
		if err := s.emailService.SendGuestInvitation(ctx, data); err != nil {
			return nil, fmt.Errorf("failed to send invitation email: %w", err)
		}
	}
	sent := domain.StatusSent
	return s.repo.Update(ctx, id, domain.InvitationUpdate{Status: &sent})
}
