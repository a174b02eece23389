package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"blood-connect/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *NotificationService) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *NotificationService) DeleteAll(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *NotificationService) NotifyRequestDonors(ctx context.Context, req *domain.BloodRequest) (int, error) {
	args := m.Called(ctx, req)
	return args.Int(0), args.Error(1)
}

func (m *NotificationService) NotifyMatch(ctx context.Context, req *domain.BloodRequest, donorCount int) (int, error) {
	args := m.Called(ctx, req, donorCount)
	return args.Int(0), args.Error(1)
}

func (m *NotificationService) NotifyLowStock(ctx context.Context, inv *domain.BloodInventory) (int, error) {
	args := m.Called(ctx, inv)
	return args.Int(0), args.Error(1)
}

func (m *NotificationService) NotifyDonationRecorded(ctx context.Context, donor *domain.User) (int, error) {
	args := m.Called(ctx, donor)
	return args.Int(0), args.Error(1)
}

func (m *NotificationService) NotifyBookingConfirmed(ctx context.Context, userID string, camp *domain.DonationCamp) (int, error) {
	args := m.Called(ctx, userID, camp)
	return args.Int(0), args.Error(1)
}

func (m *NotificationService) NotifyCampReminder(ctx context.Context, camp *domain.DonationCamp, userIDs []string) (int, error) {
	args := m.Called(ctx, camp, userIDs)
	return args.Int(0), args.Error(1)
}

func (m *NotificationService) NotifyEligible(ctx context.Context, donors []domain.User) (int, error) {
	args := m.Called(ctx, donors)
	return args.Int(0), args.Error(1)
}
