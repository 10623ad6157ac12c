// Package pipeline processes account-request tickets: fetch the open
// batch from the tracker, parse each ticket, resolve the PIRG's PI, and
// email them. Tickets are processed sequentially and independently; one
// bad ticket never blocks the rest.
package pipeline

import (
	"context"
	"errors"
	"time"

	"racs-notifier/internal/domain"
	"racs-notifier/internal/jira"
	"racs-notifier/internal/logger"
)

type Fetcher interface {
	Fetch(ctx context.Context) ([]jira.Issue, error)
}

type Parser interface {
	Parse(issue jira.Issue) (*domain.AccountRequest, error)
}

type Resolver interface {
	Resolve(ticketID, pirg string) (*domain.ApproverMapping, error)
}

type Notifier interface {
	Notify(ctx context.Context, req *domain.AccountRequest, approver *domain.ApproverMapping) error
}

// TicketUpdater marks a ticket as handled on the external tracker.
type TicketUpdater interface {
	MarkProcessed(ctx context.Context, ticketID string) error
}

// Runner wires the four pipeline stages together for one batch run.
type Runner struct {
	fetcher  Fetcher
	parser   Parser
	resolver Resolver
	notifier Notifier
	updater  TicketUpdater // nil when ticket updates are disabled
	dryRun   bool
}

func NewRunner(fetcher Fetcher, parser Parser, resolver Resolver, notifier Notifier, updater TicketUpdater, dryRun bool) *Runner {
	return &Runner{
		fetcher:  fetcher,
		parser:   parser,
		resolver: resolver,
		notifier: notifier,
		updater:  updater,
		dryRun:   dryRun,
	}
}

// Run executes one batch. A fetch failure aborts and is returned as a
// *FetchError; all per-ticket failures are recorded in the summary and
// Run still returns nil.
func (r *Runner) Run(ctx context.Context) (*domain.RunSummary, error) {
	summary := domain.NewRunSummary(r.dryRun)

	issues, err := r.fetcher.Fetch(ctx)
	if err != nil {
		var fe *FetchError
		if !errors.As(err, &fe) {
			err = &FetchError{Err: err}
		}
		return nil, err
	}
	summary.Fetched = len(issues)
	logger.Info("Fetched account request tickets", "count", len(issues), "run_id", summary.RunID)

	for _, issue := range issues {
		r.processOne(ctx, issue, summary)
	}

	summary.FinishedAt = time.Now().UTC()
	logger.Info("Run complete",
		"run_id", summary.RunID,
		"fetched", summary.Fetched,
		"processed", summary.Processed,
		"failed", summary.Failed)
	return summary, nil
}

func (r *Runner) processOne(ctx context.Context, issue jira.Issue, summary *domain.RunSummary) {
	req, err := r.parser.Parse(issue)
	if err != nil {
		logger.Warn("Skipping unparseable ticket", "ticket", issue.Key, "error", err)
		summary.RecordFailure(issue.Key, domain.StageParse, err)
		return
	}

	approver, err := r.resolver.Resolve(req.TicketID, req.PIRG)
	if err != nil {
		logger.Warn("Skipping ticket with unknown PIRG",
			"ticket", req.TicketID, "pirg", req.PIRG, "error", err)
		summary.RecordFailure(req.TicketID, domain.StageResolve, err)
		return
	}

	if r.dryRun {
		logger.Info("Dry-run: would notify approver",
			"ticket", req.TicketID,
			"pirg", req.PIRG,
			"approver", approver.ApproverEmail)
		summary.RecordProcessed(req.TicketID, approver.ApproverEmail, "dry-run")
		return
	}

	if err := r.notifier.Notify(ctx, req, approver); err != nil {
		logger.Error("Failed to notify approver",
			"ticket", req.TicketID,
			"approver", approver.ApproverEmail,
			"error", err)
		summary.RecordFailure(req.TicketID, domain.StageNotify, err)
		return
	}

	// The notification went out, so the ticket counts as processed even
	// if the tracker update below fails; the next run will re-fetch it
	// and the operator sees the warning.
	if r.updater != nil {
		if err := r.updater.MarkProcessed(ctx, req.TicketID); err != nil {
			logger.Warn("Failed to update ticket on tracker", "ticket", req.TicketID, "error", err)
		}
	}

	summary.RecordProcessed(req.TicketID, approver.ApproverEmail, "sent")
	logger.Debug("Notified approver", "ticket", req.TicketID, "approver", approver.ApproverEmail)
}
