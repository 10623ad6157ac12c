package pipeline

import "fmt"

// FetchError means the batch fetch itself failed. It is fatal for the
// run: without a complete ticket list there is no way to know which
// requests are missing.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError means a single ticket was missing required fields or had
// malformed ones. Recorded against that ticket only.
type ParseError struct {
	TicketID string
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ticket %s: %s", e.TicketID, e.Reason)
}

// ResolutionError means the requested PIRG has no known approver.
type ResolutionError struct {
	TicketID string
	PIRG     string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("ticket %s: no approver mapping for PIRG %q", e.TicketID, e.PIRG)
}

// DeliveryError means the approver email could not be sent.
type DeliveryError struct {
	TicketID string
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("ticket %s: delivery failed: %v", e.TicketID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
