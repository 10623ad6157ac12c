package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"racs-notifier/internal/domain"
	"racs-notifier/internal/jira"
)

// MockFetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context) ([]jira.Issue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]jira.Issue), args.Error(1)
}

// MockResolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ticketID, pirg string) (*domain.ApproverMapping, error) {
	args := m.Called(ticketID, pirg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApproverMapping), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, req *domain.AccountRequest, approver *domain.ApproverMapping) error {
	args := m.Called(ctx, req, approver)
	return args.Error(0)
}

// MockUpdater
type MockUpdater struct {
	mock.Mock
}

func (m *MockUpdater) MarkProcessed(ctx context.Context, ticketID string) error {
	args := m.Called(ctx, ticketID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendApprovalRequest(ctx context.Context, approverEmail, approverName string, req *domain.AccountRequest) error {
	args := m.Called(ctx, approverEmail, approverName, req)
	return args.Error(0)
}

func (m *MockEmailService) SendAdminNotification(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
