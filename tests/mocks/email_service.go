package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, name, role string) error {
	args := m.Called(ctx, toEmail, name, role)
	return args.Error(0)
}

func (m *EmailService) SendNotificationEmail(ctx context.Context, toEmail, name, title, message string) error {
	args := m.Called(ctx, toEmail, name, title, message)
	return args.Error(0)
}
