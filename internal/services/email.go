package services

import (
	"context"
	"fmt"
	"log/slog"

	"guestportal/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendGuestInvitation sends the guest invitation email using the
// "guest_invitation" template and the given data.
func (s *emailService) SendGuestInvitation(ctx context.Context, data *domain.GuestInvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("guest invitation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("guest_invitation", data)
	if err != nil {
		return fmt.Errorf("failed to render guest_invitation template: %w", err)
	}
	if err := s.mailer.Send(data.GuestEmail, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send guest invitation email: %w", err)
	}
	s.logger.InfoContext(ctx, "guest invitation email sent", "to", data.GuestEmail, "event", data.EventTitle)
	return nil
}
