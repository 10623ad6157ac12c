package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"racs-notifier/internal/config"
	"racs-notifier/internal/domain"
)

type smtpService struct {
	host     string
	port     int
	username string
	password string
	from     string
	cc       string
}

func newSMTPService(cfg config.MailConfig) *smtpService {
	return &smtpService{
		host:     cfg.SMTP.Host,
		port:     cfg.SMTP.Port,
		username: cfg.SMTP.User,
		password: cfg.SMTP.Password,
		from:     cfg.From,
		cc:       cfg.CC,
	}
}

func (s *smtpService) SendApprovalRequest(ctx context.Context, approverEmail, approverName string, req *domain.AccountRequest) error {
	return s.send(approverEmail, ApprovalSubject(req), ApprovalBody(approverName, req))
}

func (s *smtpService) SendAdminNotification(ctx context.Context, to, subject, body string) error {
	return s.send(to, subject, body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	if s.cc != "" {
		m.SetHeader("Cc", s.cc)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}

	return nil
}
