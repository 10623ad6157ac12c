package service

import (
	"context"
	"fmt"

	"racs-notifier/internal/config"
	"racs-notifier/internal/domain"
)

type EmailService interface {
	// SendApprovalRequest emails a PI asking them to approve a pending
	// account request for their PIRG.
	SendApprovalRequest(ctx context.Context, approverEmail, approverName string, req *domain.AccountRequest) error

	// SendAdminNotification sends a plain operational email.
	SendAdminNotification(ctx context.Context, to, subject, body string) error
}

// NewEmailService builds the configured mail provider.
func NewEmailService(cfg config.MailConfig) (EmailService, error) {
	switch cfg.Provider {
	case "smtp":
		return newSMTPService(cfg), nil
	case "sendgrid":
		return newSendGridService(cfg), nil
	default:
		return nil, fmt.Errorf("unknown mail provider: %q", cfg.Provider)
	}
}

// ApprovalSubject renders the subject line for an approval request email.
func ApprovalSubject(req *domain.AccountRequest) string {
	return fmt.Sprintf("Account request for PIRG %s (%s)", req.PIRG, req.TicketID)
}

// ApprovalBody renders the plain-text body for an approval request email.
func ApprovalBody(approverName string, req *domain.AccountRequest) string {
	greeting := "Hello"
	if approverName != "" {
		greeting = fmt.Sprintf("Hello %s", approverName)
	}

	body := fmt.Sprintf(`%s,

A new cluster account request is waiting on your approval.

  Ticket:    %s
  Requester: %s <%s>
  Name:      %s
  Duck ID:   %s
  PIRG:      %s
`, greeting, req.TicketID, req.RequesterName, req.RequesterEmail, req.FullName, req.DuckID, req.PIRG)

	if req.Justification != "" {
		body += fmt.Sprintf("\nJustification:\n%s\n", req.Justification)
	}

	body += "\nPlease reply on the ticket to approve or decline this request.\n\nResearch Advanced Computing Services\n"
	return body
}
