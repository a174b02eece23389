package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"blood-connect/internal/domain"
)

type InventoryRepository struct {
	mock.Mock
}

func (m *InventoryRepository) GetAll(ctx context.Context) ([]domain.BloodInventory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BloodInventory), args.Error(1)
}

func (m *InventoryRepository) GetByID(ctx context.Context, id string) (*domain.BloodInventory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BloodInventory), args.Error(1)
}

func (m *InventoryRepository) GetByBloodGroup(ctx context.Context, bloodGroup domain.BloodType) (*domain.BloodInventory, error) {
	args := m.Called(ctx, bloodGroup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BloodInventory), args.Error(1)
}

// UpdateByBloodGroup runs fn against a copy of the item returned by the
// expectation, so a rejected fn leaves the fixture untouched.
func (m *InventoryRepository) UpdateByBloodGroup(ctx context.Context, bloodGroup domain.BloodType, fn func(*domain.BloodInventory) error) (*domain.BloodInventory, error) {
	args := m.Called(ctx, bloodGroup, fn)
	return applyInventory(args, fn)
}

func (m *InventoryRepository) UpsertByBloodGroup(ctx context.Context, seed domain.BloodInventory, fn func(*domain.BloodInventory) error) (*domain.BloodInventory, error) {
	args := m.Called(ctx, seed.BloodGroup, fn)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if args.Get(0) == nil {
		return applyInventory(mock.Arguments{&seed, nil}, fn)
	}
	return applyInventory(args, fn)
}

func (m *InventoryRepository) Update(ctx context.Context, id string, fn func(*domain.BloodInventory) error) (*domain.BloodInventory, error) {
	args := m.Called(ctx, id, fn)
	return applyInventory(args, fn)
}

func applyInventory(args mock.Arguments, fn func(*domain.BloodInventory) error) (*domain.BloodInventory, error) {
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if args.Get(0) == nil {
		return nil, nil
	}
	item := *args.Get(0).(*domain.BloodInventory)
	if err := fn(&item); err != nil {
		return nil, err
	}
	return &item, nil
}
