package repository

import (
	"context"
	"fmt"

	"blood-connect/internal/domain"
)

type Repositories struct {
	Store        RecordStore
	User         UserRepository
	BloodRequest BloodRequestRepository
	Inventory    InventoryRepository
	Camp         CampRepository
	Booking      BookingRepository
	Notification NotificationRepository
}

func NewRepositories(store RecordStore) *Repositories {
	return &Repositories{
		Store:        store,
		User:         NewUserRepository(store),
		BloodRequest: NewBloodRequestRepository(store),
		Inventory:    NewInventoryRepository(store),
		Camp:         NewCampRepository(store),
		Booking:      NewBookingRepository(store),
		Notification: NewNotificationRepository(store),
	}
}

// SeedData is the initial content of every collection.
type SeedData struct {
	Users         []domain.User           `yaml:"users"`
	BloodRequests []domain.BloodRequest   `yaml:"blood_requests"`
	Inventory     []domain.BloodInventory `yaml:"blood_inventory"`
	Camps         []domain.DonationCamp   `yaml:"donation_camps"`
	Bookings      []domain.CampBooking    `yaml:"camp_bookings"`
	Notifications []domain.Notification   `yaml:"notifications"`
}

// Reset drops every collection.
func (r *Repositories) Reset(ctx context.Context) error {
	for _, name := range AllCollections {
		if err := r.Store.Delete(ctx, name); err != nil {
			return fmt.Errorf("failed to reset %s: %w", name, err)
		}
	}
	return nil
}

// Seed fills each collection that is still empty and returns the names of
// the collections it wrote. Collections that already hold data are left alone.
func (r *Repositories) Seed(ctx context.Context, data *SeedData) ([]string, error) {
	var seeded []string

	steps := []struct {
		name string
		fn   func() (bool, error)
	}{
		{CollectionUsers, func() (bool, error) {
			return seedIfEmpty(ctx, NewCollection(r.Store, CollectionUsers, func(u *domain.User) string { return u.ID }), data.Users)
		}},
		{CollectionBloodRequests, func() (bool, error) {
			return seedIfEmpty(ctx, NewCollection(r.Store, CollectionBloodRequests, func(b *domain.BloodRequest) string { return b.ID }), data.BloodRequests)
		}},
		{CollectionInventory, func() (bool, error) {
			return seedIfEmpty(ctx, NewCollection(r.Store, CollectionInventory, func(i *domain.BloodInventory) string { return i.ID }), data.Inventory)
		}},
		{CollectionCamps, func() (bool, error) {
			return seedIfEmpty(ctx, NewCollection(r.Store, CollectionCamps, func(c *domain.DonationCamp) string { return c.ID }), data.Camps)
		}},
		{CollectionBookings, func() (bool, error) {
			return seedIfEmpty(ctx, NewCollection(r.Store, CollectionBookings, func(b *domain.CampBooking) string { return b.ID }), data.Bookings)
		}},
		{CollectionNotifications, func() (bool, error) {
			return seedIfEmpty(ctx, NewCollection(r.Store, CollectionNotifications, func(n *domain.Notification) string { return n.ID }), data.Notifications)
		}},
	}

	for _, step := range steps {
		wrote, err := step.fn()
		if err != nil {
			return seeded, fmt.Errorf("failed to seed %s: %w", step.name, err)
		}
		if wrote {
			seeded = append(seeded, step.name)
		}
	}
	return seeded, nil
}

func seedIfEmpty[T any](ctx context.Context, c *Collection[T], items []T) (bool, error) {
	if len(items) == 0 {
		return false, nil
	}
	empty, err := c.IsEmpty(ctx)
	if err != nil || !empty {
		return false, err
	}
	return true, c.SaveAll(ctx, items)
}
