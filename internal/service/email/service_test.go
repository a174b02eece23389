package email

import (
	"context"
	"strings"
	"testing"

	"github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blood-connect/internal/config"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	args := m.Called(params)
	return &resend.SendEmailResponse{Id: "email-1"}, args.Error(0)
}

func TestNewService_DisabledWithoutKey(t *testing.T) {
	assert.Nil(t, NewService(&config.Config{}))
}

func TestSendNotificationEmail(t *testing.T) {
	sender := new(mockSender)
	svc := NewServiceWithSender(sender, "noreply@example.com")

	sender.On("Send", mock.MatchedBy(func(p *resend.SendEmailRequest) bool {
		return p.From == "BloodConnect <noreply@example.com>" &&
			len(p.To) == 1 && p.To[0] == "donor@test.com" &&
			p.Subject == "Donors Found! - BloodConnect" &&
			strings.Contains(p.Html, "2 compatible donors")
	})).Return(nil).Once()

	err := svc.SendNotificationEmail(context.Background(), "donor@test.com", "Rajesh", "Donors Found!", "2 compatible donors")
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestSendWelcomeEmail_EscapesName(t *testing.T) {
	sender := new(mockSender)
	svc := NewServiceWithSender(sender, "noreply@example.com")

	sender.On("Send", mock.MatchedBy(func(p *resend.SendEmailRequest) bool {
		return strings.Contains(p.Html, "&lt;b&gt;Eve&lt;/b&gt;") &&
			strings.Contains(p.Html, "donor account")
	})).Return(nil).Once()

	require.NoError(t, svc.SendWelcomeEmail(context.Background(), "eve@test.com", "<b>Eve</b>", "donor"))
	sender.AssertExpectations(t)
}

func TestSend_CancelledContext(t *testing.T) {
	sender := new(mockSender)
	svc := NewServiceWithSender(sender, "noreply@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.SendNotificationEmail(ctx, "x@test.com", "X", "T", "M")
	assert.ErrorIs(t, err, context.Canceled)
	sender.AssertNotCalled(t, "Send", mock.Anything)
}
