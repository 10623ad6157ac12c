package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"racs-notifier/internal/config"
	"racs-notifier/internal/domain"
)

type sendGridService struct {
	apiKey   string
	from     string
	fromName string
	cc       string
}

func newSendGridService(cfg config.MailConfig) *sendGridService {
	return &sendGridService{
		apiKey:   cfg.SendGridAPIKey,
		from:     cfg.From,
		fromName: cfg.FromName,
		cc:       cfg.CC,
	}
}

func (s *sendGridService) SendApprovalRequest(ctx context.Context, approverEmail, approverName string, req *domain.AccountRequest) error {
	return s.send(approverEmail, approverName, ApprovalSubject(req), ApprovalBody(approverName, req))
}

func (s *sendGridService) SendAdminNotification(ctx context.Context, to, subject, body string) error {
	return s.send(to, "", subject, body)
}

func (s *sendGridService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = subject

	personalization := mail.NewPersonalization()
	personalization.AddTos(recipient)
	if s.cc != "" {
		personalization.AddCCs(mail.NewEmail("", s.cc))
	}
	message.AddPersonalizations(personalization)
	message.AddContent(mail.NewContent("text/plain", plainText))

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}
