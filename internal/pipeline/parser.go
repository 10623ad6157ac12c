package pipeline

import (
	"strings"

	"racs-notifier/internal/config"
	"racs-notifier/internal/domain"
	"racs-notifier/internal/jira"
)

type issueParser struct {
	cfg config.JiraConfig
}

// NewParser builds a Parser that reads the custom field IDs named in
// the Jira configuration.
func NewParser(cfg config.JiraConfig) Parser {
	return &issueParser{cfg: cfg}
}

func (p *issueParser) Parse(issue jira.Issue) (*domain.AccountRequest, error) {
	if issue.Key == "" {
		return nil, &ParseError{TicketID: "(unknown)", Reason: "issue has no key"}
	}

	reporter := issue.Reporter()
	if reporter == nil {
		return nil, &ParseError{TicketID: issue.Key, Reason: "issue has no reporter"}
	}

	email := strings.TrimSpace(reporter.EmailAddress)
	if email == "" {
		return nil, &ParseError{TicketID: issue.Key, Reason: "reporter has no email address"}
	}
	if !strings.Contains(email, "@") {
		return nil, &ParseError{TicketID: issue.Key, Reason: "reporter email is malformed: " + email}
	}

	pirg := strings.TrimSpace(issue.SelectField(p.cfg.FieldPIRG))
	if pirg == "" {
		return nil, &ParseError{TicketID: issue.Key, Reason: "requested PIRG field is empty"}
	}

	justification := ""
	if p.cfg.FieldJustification != "" {
		justification = strings.TrimSpace(issue.StringField(p.cfg.FieldJustification))
	}
	if justification == "" {
		justification = strings.TrimSpace(issue.StringField("summary"))
	}

	return &domain.AccountRequest{
		TicketID:       issue.Key,
		RequesterName:  strings.TrimSpace(reporter.DisplayName),
		RequesterEmail: email,
		FullName:       strings.TrimSpace(issue.StringField(p.cfg.FieldFullName)),
		DuckID:         strings.TrimSpace(issue.StringField(p.cfg.FieldDuckID)),
		PIRG:           pirg,
		Justification:  justification,
		Created:        issue.StringField("created"),
		Status:         domain.RequestStatusOpen,
	}, nil
}
