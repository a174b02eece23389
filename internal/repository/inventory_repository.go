package repository

import (
	"context"

	"blood-connect/internal/domain"
)

type InventoryRepository interface {
	GetAll(ctx context.Context) ([]domain.BloodInventory, error)
	GetByID(ctx context.Context, id string) (*domain.BloodInventory, error)
	GetByBloodGroup(ctx context.Context, bloodGroup domain.BloodType) (*domain.BloodInventory, error)
	UpdateByBloodGroup(ctx context.Context, bloodGroup domain.BloodType, fn func(*domain.BloodInventory) error) (*domain.BloodInventory, error)
	UpsertByBloodGroup(ctx context.Context, seed domain.BloodInventory, fn func(*domain.BloodInventory) error) (*domain.BloodInventory, error)
	Update(ctx context.Context, id string, fn func(*domain.BloodInventory) error) (*domain.BloodInventory, error)
}

type inventoryRepository struct {
	inventory *Collection[domain.BloodInventory]
}

func NewInventoryRepository(store RecordStore) InventoryRepository {
	return &inventoryRepository{
		inventory: NewCollection(store, CollectionInventory, func(i *domain.BloodInventory) string { return i.ID }),
	}
}

func (r *inventoryRepository) GetAll(ctx context.Context) ([]domain.BloodInventory, error) {
	return r.inventory.GetAll(ctx)
}

func (r *inventoryRepository) GetByID(ctx context.Context, id string) (*domain.BloodInventory, error) {
	return r.inventory.Find(ctx, id)
}

func (r *inventoryRepository) GetByBloodGroup(ctx context.Context, bloodGroup domain.BloodType) (*domain.BloodInventory, error) {
	return r.inventory.FindWhere(ctx, func(i *domain.BloodInventory) bool {
		return i.BloodGroup == bloodGroup
	})
}

// UpdateByBloodGroup runs fn on the entry for bloodGroup under the collection
// lock. It returns nil when the type has no entry.
func (r *inventoryRepository) UpdateByBloodGroup(ctx context.Context, bloodGroup domain.BloodType, fn func(*domain.BloodInventory) error) (*domain.BloodInventory, error) {
	return r.inventory.UpdateWhere(ctx, func(i *domain.BloodInventory) bool { return i.BloodGroup == bloodGroup }, fn)
}

// UpsertByBloodGroup runs fn on the row for seed.BloodGroup, appending seed
// first when the type has no row yet. An error from fn writes nothing.
func (r *inventoryRepository) UpsertByBloodGroup(ctx context.Context, seed domain.BloodInventory, fn func(*domain.BloodInventory) error) (*domain.BloodInventory, error) {
	var updated *domain.BloodInventory
	err := r.inventory.Mutate(ctx, func(items []domain.BloodInventory) ([]domain.BloodInventory, error) {
		idx := -1
		for i := range items {
			if items[i].BloodGroup == seed.BloodGroup {
				idx = i
				break
			}
		}
		if idx < 0 {
			items = append(items, seed)
			idx = len(items) - 1
		}
		if err := fn(&items[idx]); err != nil {
			return nil, err
		}
		item := items[idx]
		updated = &item
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *inventoryRepository) Update(ctx context.Context, id string, fn func(*domain.BloodInventory) error) (*domain.BloodInventory, error) {
	return r.inventory.UpdateWhere(ctx, func(i *domain.BloodInventory) bool { return i.ID == id }, fn)
}
