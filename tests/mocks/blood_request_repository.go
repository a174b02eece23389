package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"blood-connect/internal/domain"
)

type BloodRequestRepository struct {
	mock.Mock
}

func (m *BloodRequestRepository) Create(ctx context.Context, req *domain.BloodRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *BloodRequestRepository) GetByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BloodRequest), args.Error(1)
}

func (m *BloodRequestRepository) List(ctx context.Context) ([]domain.BloodRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BloodRequest), args.Error(1)
}

func (m *BloodRequestRepository) ListByRecipient(ctx context.Context, recipientID string) ([]domain.BloodRequest, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).([]domain.BloodRequest), args.Error(1)
}

// Update runs fn against the request returned by the expectation.
func (m *BloodRequestRepository) Update(ctx context.Context, id string, fn func(*domain.BloodRequest) error) (*domain.BloodRequest, error) {
	args := m.Called(ctx, id, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	req := args.Get(0).(*domain.BloodRequest)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if err := fn(req); err != nil {
		return nil, err
	}
	return req, nil
}
