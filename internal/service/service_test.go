package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"racs-notifier/internal/config"
	"racs-notifier/internal/domain"
)

func sampleRequest() *domain.AccountRequest {
	return &domain.AccountRequest{
		TicketID:       "TCP-42",
		RequesterName:  "Alex Req",
		RequesterEmail: "a@x.edu",
		FullName:       "Alex Requester",
		DuckID:         "areq",
		PIRG:           "labX",
		Justification:  "Need GPUs for thesis work",
	}
}

func TestApprovalSubject(t *testing.T) {
	subject := ApprovalSubject(sampleRequest())
	assert.Equal(t, "Account request for PIRG labX (TCP-42)", subject)
}

func TestApprovalBody(t *testing.T) {
	body := ApprovalBody("Jane Doe", sampleRequest())

	assert.Contains(t, body, "Hello Jane Doe")
	assert.Contains(t, body, "TCP-42")
	assert.Contains(t, body, "Alex Req <a@x.edu>")
	assert.Contains(t, body, "areq")
	assert.Contains(t, body, "labX")
	assert.Contains(t, body, "Need GPUs for thesis work")
}

func TestApprovalBody_NoNameNoJustification(t *testing.T) {
	req := sampleRequest()
	req.Justification = ""
	body := ApprovalBody("", req)

	assert.Contains(t, body, "Hello,")
	assert.NotContains(t, body, "Justification:")
}

func TestNewEmailService(t *testing.T) {
	smtp, err := NewEmailService(config.MailConfig{
		Provider: "smtp",
		SMTP:     config.SMTPConfig{Host: "smtp.example.edu", Port: 587},
		From:     "hpc@example.edu",
	})
	assert.NoError(t, err)
	assert.IsType(t, &smtpService{}, smtp)

	sg, err := NewEmailService(config.MailConfig{
		Provider:       "sendgrid",
		SendGridAPIKey: "key",
		From:           "hpc@example.edu",
	})
	assert.NoError(t, err)
	assert.IsType(t, &sendGridService{}, sg)

	_, err = NewEmailService(config.MailConfig{Provider: "pigeon"})
	assert.Error(t, err)
}
