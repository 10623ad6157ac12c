package jira

import "encoding/json"

// Issue is one raw ticket record as returned by the search endpoint.
// Fields stay raw JSON because custom field IDs vary per instance and
// are resolved from configuration at parse time.
type Issue struct {
	Key    string                     `json:"key"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// StringField returns a plain string field value, or "" when the field
// is absent, null, or not a string.
func (i Issue) StringField(id string) string {
	raw, ok := i.Fields[id]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// SelectField returns the value of a single-select custom field, which
// Jira serializes as an object with a "value" key.
func (i Issue) SelectField(id string) string {
	raw, ok := i.Fields[id]
	if !ok {
		return ""
	}
	var sel struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &sel); err != nil {
		return ""
	}
	return sel.Value
}

// Reporter returns the issue reporter, or nil when absent.
func (i Issue) Reporter() *User {
	raw, ok := i.Fields["reporter"]
	if !ok {
		return nil
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil
	}
	if u.DisplayName == "" && u.EmailAddress == "" && u.AccountID == "" {
		return nil
	}
	return &u
}

// StatusName returns the issue status name, or "".
func (i Issue) StatusName() string {
	raw, ok := i.Fields["status"]
	if !ok {
		return ""
	}
	var st struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		return ""
	}
	return st.Name
}

// User is a Jira account reference.
type User struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// Field describes a Jira field (for the fields debugging command).
type Field struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Transition is one available workflow transition for an issue.
type Transition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type searchResponse struct {
	Issues []Issue `json:"issues"`
}

type transitionsResponse struct {
	Transitions []Transition `json:"transitions"`
}
