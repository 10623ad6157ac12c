package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stage names the pipeline step a ticket failed in.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageParse   Stage = "parse"
	StageResolve Stage = "resolve"
	StageNotify  Stage = "notify"
)

// NotificationRecord logs one attempted approver notification. Records
// live only in the run summary; the tracker owns the ticket lifecycle.
type NotificationRecord struct {
	TicketID      string    `json:"ticket_id"`
	ApproverEmail string    `json:"approver_email"`
	SentAt        time.Time `json:"sent_at"`
	Outcome       string    `json:"outcome"` // "sent" or "dry-run"
}

// TicketOutcome is the terminal result of one ticket for this run.
type TicketOutcome struct {
	TicketID string        `json:"ticket_id"`
	Status   RequestStatus `json:"status"`
	Stage    Stage         `json:"stage,omitempty"`
	Reason   string        `json:"reason,omitempty"`
}

// RunSummary accumulates per-ticket outcomes over a single batch run.
// It is appended to sequentially and never shared across goroutines.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DryRun     bool      `json:"dry_run"`

	Fetched   int `json:"fetched"`
	Processed int `json:"processed"`
	Failed    int `json:"failed"`

	Outcomes      []TicketOutcome      `json:"outcomes"`
	Notifications []NotificationRecord `json:"notifications"`
}

func NewRunSummary(dryRun bool) *RunSummary {
	return &RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		DryRun:    dryRun,
	}
}

// RecordProcessed marks a ticket as processed and logs the notification.
func (s *RunSummary) RecordProcessed(ticketID, approverEmail, outcome string) {
	s.Processed++
	s.Outcomes = append(s.Outcomes, TicketOutcome{
		TicketID: ticketID,
		Status:   RequestStatusProcessed,
	})
	s.Notifications = append(s.Notifications, NotificationRecord{
		TicketID:      ticketID,
		ApproverEmail: approverEmail,
		SentAt:        time.Now().UTC(),
		Outcome:       outcome,
	})
}

// RecordFailure marks a ticket as failed at the given stage.
func (s *RunSummary) RecordFailure(ticketID string, stage Stage, err error) {
	s.Failed++
	s.Outcomes = append(s.Outcomes, TicketOutcome{
		TicketID: ticketID,
		Status:   RequestStatusFailed,
		Stage:    stage,
		Reason:   err.Error(),
	})
}

// String renders the end-of-run report.
func (s *RunSummary) String() string {
	var b strings.Builder
	mode := ""
	if s.DryRun {
		mode = " (dry-run)"
	}
	fmt.Fprintf(&b, "run %s%s: fetched=%d processed=%d failed=%d\n",
		s.RunID, mode, s.Fetched, s.Processed, s.Failed)
	for _, o := range s.Outcomes {
		if o.Status == RequestStatusFailed {
			fmt.Fprintf(&b, "  %-10s FAILED at %s: %s\n", o.TicketID, o.Stage, o.Reason)
		} else {
			fmt.Fprintf(&b, "  %-10s PROCESSED\n", o.TicketID)
		}
	}
	return b.String()
}
