package jobs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"racs-notifier/internal/config"
	"racs-notifier/internal/pipeline"
)

func TestJobRunner_RecoversFromPanic(t *testing.T) {
	jr := NewJobRunner(&config.Config{}, func() (*pipeline.Runner, error) {
		panic("boom")
	})

	assert.NotPanics(t, func() {
		jr.ProcessTickets()
	})
}

func TestJobRunner_FactoryErrorDoesNotPanic(t *testing.T) {
	jr := NewJobRunner(&config.Config{}, func() (*pipeline.Runner, error) {
		return nil, errors.New("mapping file missing")
	})

	assert.NotPanics(t, func() {
		jr.ProcessTickets()
	})
}

func TestJobRunner_Config(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scheduler.ProcessTickets = "0 0 9 * * *"
	jr := NewJobRunner(cfg, nil)

	assert.Equal(t, "0 0 9 * * *", jr.Config().Scheduler.ProcessTickets)
}
