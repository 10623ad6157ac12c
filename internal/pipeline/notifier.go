package pipeline

import (
	"context"
	"fmt"

	"racs-notifier/internal/domain"
	"racs-notifier/internal/jira"
	"racs-notifier/internal/service"
)

type emailNotifier struct {
	email service.EmailService
}

// NewEmailNotifier builds a Notifier over the configured mail provider.
func NewEmailNotifier(email service.EmailService) Notifier {
	return &emailNotifier{email: email}
}

func (n *emailNotifier) Notify(ctx context.Context, req *domain.AccountRequest, approver *domain.ApproverMapping) error {
	err := n.email.SendApprovalRequest(ctx, approver.ApproverEmail, approver.ApproverName, req)
	if err != nil {
		return &DeliveryError{TicketID: req.TicketID, Err: err}
	}
	return nil
}

type jiraUpdater struct {
	client         *jira.Client
	transitionName string

	accountID string // authenticated user, resolved lazily
}

// NewJiraUpdater builds a TicketUpdater that transitions a ticket and
// assigns it to the authenticated API user, mirroring how the queue was
// worked by hand.
func NewJiraUpdater(client *jira.Client, transitionName string) TicketUpdater {
	return &jiraUpdater{client: client, transitionName: transitionName}
}

func (u *jiraUpdater) MarkProcessed(ctx context.Context, ticketID string) error {
	if err := u.client.TransitionByName(ctx, ticketID, u.transitionName); err != nil {
		return fmt.Errorf("failed to transition %s: %w", ticketID, err)
	}

	if u.accountID == "" {
		me, err := u.client.Myself(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve current user: %w", err)
		}
		u.accountID = me.AccountID
	}

	if err := u.client.Assign(ctx, ticketID, u.accountID); err != nil {
		return fmt.Errorf("failed to assign %s: %w", ticketID, err)
	}
	return nil
}
