// Package jira wraps the handful of Jira Cloud REST endpoints the
// account-request pipeline needs: JQL search, workflow transitions,
// assignment, and a couple of debugging calls.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"racs-notifier/internal/logger"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	email   string
	token   string
	http    *http.Client
}

// NewClient creates a Jira Cloud client using basic auth with an API
// token. baseURL is the site root, e.g. "https://example.atlassian.net".
func NewClient(baseURL, email, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		email:   email,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Search runs a JQL query. Jira Cloud deprecated the plain /search
// paths (they return HTTP 410), so this uses /search/jql.
func (c *Client) Search(ctx context.Context, jql string, fields []string, maxResults int) ([]Issue, error) {
	query := url.Values{}
	query.Set("jql", jql)
	query.Set("maxResults", strconv.Itoa(maxResults))
	query.Set("fields", strings.Join(fields, ","))

	var resp searchResponse
	if err := c.do(ctx, http.MethodGet, "/rest/api/3/search/jql", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Issues, nil
}

// Myself returns the authenticated user. Useful both as an auth check
// and to obtain the account ID for ticket assignment.
func (c *Client) Myself(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/rest/api/3/myself", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListFields lists all fields on the instance, for finding custom
// field IDs when configuring the query.
func (c *Client) ListFields(ctx context.Context) ([]Field, error) {
	var fields []Field
	if err := c.do(ctx, http.MethodGet, "/rest/api/3/field", nil, nil, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Transitions lists the workflow transitions currently available for an
// issue.
func (c *Client) Transitions(ctx context.Context, key string) ([]Transition, error) {
	var resp transitionsResponse
	path := fmt.Sprintf("/rest/api/3/issue/%s/transitions", key)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Transitions, nil
}

// DoTransition executes a workflow transition on an issue.
func (c *Client) DoTransition(ctx context.Context, key, transitionID string) error {
	path := fmt.Sprintf("/rest/api/3/issue/%s/transitions", key)
	body := map[string]any{
		"transition": map[string]string{"id": transitionID},
	}
	return c.do(ctx, http.MethodPost, path, nil, body, nil)
}

// TransitionByName looks up a transition by its display name (case
// insensitive) and executes it.
func (c *Client) TransitionByName(ctx context.Context, key, name string) error {
	transitions, err := c.Transitions(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to fetch transitions for %s: %w", key, err)
	}
	for _, t := range transitions {
		if strings.EqualFold(t.Name, name) {
			return c.DoTransition(ctx, key, t.ID)
		}
	}
	available := make([]string, 0, len(transitions))
	for _, t := range transitions {
		available = append(available, t.Name)
	}
	return fmt.Errorf("transition %q not available for %s (have: %s)",
		name, key, strings.Join(available, ", "))
}

// Assign sets the issue assignee by account ID.
func (c *Client) Assign(ctx context.Context, key, accountID string) error {
	path := fmt.Sprintf("/rest/api/3/issue/%s/assignee", key)
	body := map[string]string{"accountId": accountID}
	return c.do(ctx, http.MethodPut, path, nil, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.ExternalServiceCall("jira", method+" "+path)
	resp, err := c.http.Do(req)
	logger.ExternalServiceResult("jira", method+" "+path, err)
	if err != nil {
		return fmt.Errorf("jira request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("jira %s %s returned %d: %s", method, path, resp.StatusCode, string(snippet))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode jira response: %w", err)
		}
	}
	return nil
}
