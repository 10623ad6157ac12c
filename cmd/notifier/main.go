package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"racs-notifier/internal/config"
	"racs-notifier/internal/directory"
	"racs-notifier/internal/jira"
	"racs-notifier/internal/jobs"
	"racs-notifier/internal/logger"
	"racs-notifier/internal/pipeline"
	"racs-notifier/internal/scheduler"
	"racs-notifier/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	dryRun := flag.Bool("dry-run", false, "Log intended notifications without sending email or updating tickets")
	jqlOverride := flag.String("jql", "", "Override the ticket query (full JQL)")
	schedule := flag.Bool("schedule", false, "Run under the cron scheduler instead of once")
	flag.Parse()

	command := "process"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	if command == "help" {
		printUsage()
		return
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting account request notifier", "log_level", cfg.Log.Level, "command", command)

	jiraClient := jira.NewClient(cfg.Jira.BaseURL, cfg.Jira.Email, cfg.Jira.APIToken)
	ctx := context.Background()

	switch command {
	case "process":
		if *schedule {
			runScheduled(cfg, jiraClient, *jqlOverride, *dryRun)
			return
		}
		runOnce(ctx, cfg, jiraClient, *jqlOverride, *dryRun)
	case "preview":
		runPreview(ctx, cfg, jiraClient, *jqlOverride)
	case "fields":
		runListFields(ctx, jiraClient)
	case "auth-test":
		runAuthTest(ctx, jiraClient)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// buildRunner assembles a pipeline run. The approver mapping is loaded
// fresh each time so a scheduled process picks up directory changes.
func buildRunner(cfg *config.Config, jiraClient *jira.Client, jqlOverride string, dryRun bool) (*pipeline.Runner, error) {
	dir, err := directory.Load(cfg.Directory.MappingFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load approver mapping: %w", err)
	}
	logger.Debug("Loaded approver mapping", "pirgs", dir.Len())

	emailSvc, err := service.NewEmailService(cfg.Mail)
	if err != nil {
		return nil, err
	}

	var updater pipeline.TicketUpdater
	if cfg.Jira.UpdateTickets && !dryRun {
		updater = pipeline.NewJiraUpdater(jiraClient, cfg.Jira.TransitionName)
	}

	return pipeline.NewRunner(
		pipeline.NewJiraFetcher(jiraClient, cfg.Jira, jqlOverride),
		pipeline.NewParser(cfg.Jira),
		pipeline.NewDirectoryResolver(dir),
		pipeline.NewEmailNotifier(emailSvc),
		updater,
		dryRun,
	), nil
}

func runOnce(ctx context.Context, cfg *config.Config, jiraClient *jira.Client, jqlOverride string, dryRun bool) {
	runner, err := buildRunner(cfg, jiraClient, jqlOverride, dryRun)
	if err != nil {
		logger.Error("Failed to build pipeline", "error", err)
		os.Exit(1)
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		// Fetch failures abort the run; per-ticket failures do not.
		logger.Error("Run aborted", "error", err)
		os.Exit(1)
	}

	fmt.Print(summary.String())
}

func runScheduled(cfg *config.Config, jiraClient *jira.Client, jqlOverride string, dryRun bool) {
	jobRunner := jobs.NewJobRunner(cfg, func() (*pipeline.Runner, error) {
		return buildRunner(cfg, jiraClient, jqlOverride, dryRun)
	})

	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	logger.Info("Scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down scheduler...")
	cronScheduler.Stop()
}

// runPreview fetches and resolves tickets and prints what a process run
// would do, without sending email or touching the tracker.
func runPreview(ctx context.Context, cfg *config.Config, jiraClient *jira.Client, jqlOverride string) {
	dir, err := directory.Load(cfg.Directory.MappingFile)
	if err != nil {
		logger.Error("Failed to load approver mapping", "error", err)
		os.Exit(1)
	}

	fetcher := pipeline.NewJiraFetcher(jiraClient, cfg.Jira, jqlOverride)
	parser := pipeline.NewParser(cfg.Jira)
	resolver := pipeline.NewDirectoryResolver(dir)

	issues, err := fetcher.Fetch(ctx)
	if err != nil {
		logger.Error("Fetch failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%-10s | %-22s | %-10s | %-12s | %s\n",
		"TICKET", "REQUESTER", "PIRG", "DUCK ID", "APPROVER")
	for _, issue := range issues {
		req, err := parser.Parse(issue)
		if err != nil {
			fmt.Printf("%-10s | (unparseable: %v)\n", issue.Key, err)
			continue
		}
		approverEmail := "(no mapping)"
		if approver, err := resolver.Resolve(req.TicketID, req.PIRG); err == nil {
			approverEmail = approver.ApproverEmail
		}
		fmt.Printf("%-10s | %-22s | %-10s | %-12s | %s\n",
			req.TicketID, req.RequesterEmail, req.PIRG, req.DuckID, approverEmail)
	}
	fmt.Printf("%d tickets\n", len(issues))
}

func runListFields(ctx context.Context, jiraClient *jira.Client) {
	fields, err := jiraClient.ListFields(ctx)
	if err != nil {
		logger.Error("Failed to list fields", "error", err)
		os.Exit(1)
	}
	for _, f := range fields {
		fmt.Printf("%s - %s\n", f.ID, f.Name)
	}
}

func runAuthTest(ctx context.Context, jiraClient *jira.Client) {
	me, err := jiraClient.Myself(ctx)
	if err != nil {
		logger.Error("Auth check failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Authenticated as %s <%s> (accountId %s)\n",
		me.DisplayName, me.EmailAddress, me.AccountID)
}

func printUsage() {
	fmt.Print(`Usage: notifier [flags] [command]

Notify PIs about pending cluster account request tickets.

Commands:
  process        Fetch tickets, email approvers, and update ticket status (default)
  preview        Fetch and display ticket data without sending anything
  fields         List all Jira fields available (for debugging)
  auth-test      Test the Jira authentication credentials
  help           Show this usage message

Flags:
  -config path   Configuration file (default config/config.yaml)
  -dry-run       Log intended notifications without sending
  -jql query     Override the ticket query
  -schedule      Keep running and process on the configured cron schedule
`)
}
