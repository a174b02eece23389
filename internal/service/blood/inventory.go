package blood

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"blood-connect/internal/domain"
	"blood-connect/internal/service/helpers"
)

const defaultInventoryLocation = "Central Blood Bank"

func (s *service) ListInventory(ctx context.Context) ([]domain.BloodInventory, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}
	return s.inventoryRepo.GetAll(ctx)
}

func (s *service) GetInventoryByType(ctx context.Context, bloodGroup domain.BloodType) (*domain.BloodInventory, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}
	inv, err := s.inventoryRepo.GetByBloodGroup(ctx, bloodGroup)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInventoryNotFound
	}
	return inv, nil
}

func (s *service) AddUnits(ctx context.Context, bloodGroup domain.BloodType, units int) (*domain.BloodInventory, error) {
	return s.AdjustInventory(ctx, domain.AdjustInventoryInput{BloodGroup: bloodGroup, Units: units, Direction: domain.AdjustAdd})
}

func (s *service) RemoveUnits(ctx context.Context, bloodGroup domain.BloodType, units int) (*domain.BloodInventory, error) {
	return s.AdjustInventory(ctx, domain.AdjustInventoryInput{BloodGroup: bloodGroup, Units: units, Direction: domain.AdjustRemove})
}

// AdjustInventory is the only path that changes unit counts by delta. The
// read-check-write runs under the inventory collection lock, so a removal
// never leaves a partial decrement behind. Adding to a type with no row
// starts a new row from zero; removing from one fails.
func (s *service) AdjustInventory(ctx context.Context, input domain.AdjustInventoryInput) (*domain.BloodInventory, error) {
	if !input.BloodGroup.IsValid() {
		return nil, domain.ErrInvalidBloodType
	}
	if input.Units <= 0 {
		return nil, domain.ErrInvalidUnits
	}
	if !input.Direction.IsValid() {
		return nil, fmt.Errorf("unknown direction %q: %w", input.Direction, domain.ErrValidation)
	}
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}

	var previous domain.InventoryStatus
	now := s.rt.Timestamp()
	apply := func(inv *domain.BloodInventory) error {
		units := inv.Units + input.Units
		if input.Direction == domain.AdjustRemove {
			if input.Units > inv.Units {
				return domain.ErrInsufficientStock
			}
			units = inv.Units - input.Units
		}
		previous = domain.Classify(inv.Units)
		inv.SetUnits(units)
		inv.UpdatedAt = &now
		return nil
	}

	var (
		updated *domain.BloodInventory
		err     error
	)
	if input.Direction == domain.AdjustAdd {
		seed := domain.BloodInventory{ID: helpers.NewID(), BloodGroup: input.BloodGroup, Location: defaultInventoryLocation}
		seed.SetUnits(0)
		updated, err = s.inventoryRepo.UpsertByBloodGroup(ctx, seed, apply)
	} else {
		updated, err = s.inventoryRepo.UpdateByBloodGroup(ctx, input.BloodGroup, apply)
	}
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrInventoryNotFound
	}

	s.rt.Log().Info("inventory adjusted",
		zap.String("blood_group", input.BloodGroup.String()),
		zap.String("direction", string(input.Direction)),
		zap.Int("units", input.Units),
		zap.Int("on_hand", updated.Units),
		zap.String("status", string(updated.Status)))

	s.alertOnDrop(ctx, previous, updated)
	return updated, nil
}

// UpdateInventoryItem edits an entry by id. A unit change is reclassified
// like any other mutation.
func (s *service) UpdateInventoryItem(ctx context.Context, id string, input domain.UpdateInventoryInput) (*domain.BloodInventory, error) {
	if input.Units != nil && *input.Units < 0 {
		return nil, fmt.Errorf("units cannot be negative: %w", domain.ErrValidation)
	}
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}

	var previous domain.InventoryStatus
	now := s.rt.Timestamp()
	updated, err := s.inventoryRepo.Update(ctx, id, func(inv *domain.BloodInventory) error {
		previous = domain.Classify(inv.Units)
		if input.Units != nil {
			inv.SetUnits(*input.Units)
		}
		if input.Location != nil {
			inv.Location = *input.Location
		}
		if input.ExpiryDate != nil {
			inv.ExpiryDate = *input.ExpiryDate
		}
		inv.UpdatedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrInventoryNotFound
	}

	s.alertOnDrop(ctx, previous, updated)
	return updated, nil
}

// alertOnDrop tells admins when a mutation moved stock into a worse tier.
func (s *service) alertOnDrop(ctx context.Context, previous domain.InventoryStatus, inv *domain.BloodInventory) {
	if s.notifSvc == nil || inv.Status.Severity() <= previous.Severity() {
		return
	}
	if _, err := s.notifSvc.NotifyLowStock(ctx, inv); err != nil {
		s.rt.Log().Warn("failed to send low stock alert",
			zap.String("blood_group", inv.BloodGroup.String()),
			zap.Error(err))
	}
}
