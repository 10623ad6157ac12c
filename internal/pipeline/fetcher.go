package pipeline

import (
	"context"

	"racs-notifier/internal/config"
	"racs-notifier/internal/jira"
)

type jiraFetcher struct {
	client *jira.Client
	cfg    config.JiraConfig
	jql    string
}

// NewJiraFetcher builds a Fetcher over the Jira search endpoint. An
// empty jqlOverride uses the configured project/issue-type query.
func NewJiraFetcher(client *jira.Client, cfg config.JiraConfig, jqlOverride string) Fetcher {
	jql := jqlOverride
	if jql == "" {
		jql = cfg.DefaultJQL()
	}
	return &jiraFetcher{client: client, cfg: cfg, jql: jql}
}

func (f *jiraFetcher) Fetch(ctx context.Context) ([]jira.Issue, error) {
	issues, err := f.client.Search(ctx, f.jql, f.cfg.FetchFields(), f.cfg.MaxResults)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	return issues, nil
}
