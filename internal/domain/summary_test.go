package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunSummary_Counts(t *testing.T) {
	s := NewRunSummary(false)
	assert.NotEmpty(t, s.RunID)

	s.Fetched = 3
	s.RecordProcessed("TCP-1", "pi@x.edu", "sent")
	s.RecordProcessed("TCP-2", "pi@x.edu", "sent")
	s.RecordFailure("TCP-3", StageResolve, errors.New("no approver mapping"))

	assert.Equal(t, 2, s.Processed)
	assert.Equal(t, 1, s.Failed)
	assert.Len(t, s.Outcomes, 3)
	assert.Len(t, s.Notifications, 2)
	assert.Equal(t, RequestStatusFailed, s.Outcomes[2].Status)
	assert.Equal(t, StageResolve, s.Outcomes[2].Stage)
}

func TestRunSummary_String(t *testing.T) {
	s := NewRunSummary(true)
	s.Fetched = 1
	s.RecordFailure("TCP-9", StageParse, errors.New("reporter has no email address"))

	out := s.String()
	assert.Contains(t, out, "dry-run")
	assert.Contains(t, out, "fetched=1")
	assert.Contains(t, out, "failed=1")
	assert.Contains(t, out, "TCP-9")
	assert.Contains(t, out, "reporter has no email address")
}
