package domain

type RequestStatus string

const (
	RequestStatusOpen      RequestStatus = "OPEN"
	RequestStatusProcessed RequestStatus = "PROCESSED"
	RequestStatusFailed    RequestStatus = "FAILED"
)

// AccountRequest is one pending cluster account request extracted from a
// tracker ticket. The ticket itself stays owned by the tracker; this is
// the slice of it the pipeline needs.
type AccountRequest struct {
	TicketID       string        `json:"ticket_id"` // tracker issue key, e.g. TCP-123
	RequesterName  string        `json:"requester_name"`
	RequesterEmail string        `json:"requester_email"`
	FullName       string        `json:"full_name"` // name as entered on the request form
	DuckID         string        `json:"duck_id"`   // institutional login
	PIRG           string        `json:"pirg"`
	Justification  string        `json:"justification"`
	Created        string        `json:"created"`
	Status         RequestStatus `json:"status"`
	FailureReason  string        `json:"failure_reason,omitempty"`
}

// ApproverMapping maps a PIRG to the PI responsible for approving its
// account requests. Externally maintained reference data.
type ApproverMapping struct {
	PIRG          string `yaml:"pirg" json:"pirg"`
	ApproverName  string `yaml:"approver_name" json:"approver_name"`
	ApproverEmail string `yaml:"approver_email" json:"approver_email"`
}
