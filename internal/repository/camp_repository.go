package repository

import (
	"context"

	"blood-connect/internal/domain"
)

type CampRepository interface {
	Create(ctx context.Context, camp *domain.DonationCamp) error
	GetByID(ctx context.Context, id string) (*domain.DonationCamp, error)
	GetAll(ctx context.Context) ([]domain.DonationCamp, error)
	Update(ctx context.Context, id string, fn func(*domain.DonationCamp) error) (*domain.DonationCamp, error)
}

type campRepository struct {
	camps *Collection[domain.DonationCamp]
}

func NewCampRepository(store RecordStore) CampRepository {
	return &campRepository{
		camps: NewCollection(store, CollectionCamps, func(c *domain.DonationCamp) string { return c.ID }),
	}
}

func (r *campRepository) Create(ctx context.Context, camp *domain.DonationCamp) error {
	return r.camps.Append(ctx, *camp)
}

func (r *campRepository) GetByID(ctx context.Context, id string) (*domain.DonationCamp, error) {
	return r.camps.Find(ctx, id)
}

func (r *campRepository) GetAll(ctx context.Context) ([]domain.DonationCamp, error) {
	return r.camps.GetAll(ctx)
}

func (r *campRepository) Update(ctx context.Context, id string, fn func(*domain.DonationCamp) error) (*domain.DonationCamp, error) {
	return r.camps.UpdateWhere(ctx, func(c *domain.DonationCamp) bool { return c.ID == id }, fn)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.CampBooking) error
	GetByID(ctx context.Context, id string) (*domain.CampBooking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.CampBooking, error)
	ListByCamp(ctx context.Context, campID string) ([]domain.CampBooking, error)
	FindConfirmed(ctx context.Context, userID, campID string) (*domain.CampBooking, error)
	Update(ctx context.Context, id string, fn func(*domain.CampBooking) error) (*domain.CampBooking, error)
}

type bookingRepository struct {
	bookings *Collection[domain.CampBooking]
}

func NewBookingRepository(store RecordStore) BookingRepository {
	return &bookingRepository{
		bookings: NewCollection(store, CollectionBookings, func(b *domain.CampBooking) string { return b.ID }),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.CampBooking) error {
	return r.bookings.Append(ctx, *booking)
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.CampBooking, error) {
	return r.bookings.Find(ctx, id)
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.CampBooking, error) {
	return r.filter(ctx, func(b *domain.CampBooking) bool { return b.UserID == userID })
}

func (r *bookingRepository) ListByCamp(ctx context.Context, campID string) ([]domain.CampBooking, error) {
	return r.filter(ctx, func(b *domain.CampBooking) bool { return b.CampID == campID })
}

func (r *bookingRepository) FindConfirmed(ctx context.Context, userID, campID string) (*domain.CampBooking, error) {
	return r.bookings.FindWhere(ctx, func(b *domain.CampBooking) bool {
		return b.UserID == userID && b.CampID == campID && b.Status == domain.BookingConfirmed
	})
}

func (r *bookingRepository) Update(ctx context.Context, id string, fn func(*domain.CampBooking) error) (*domain.CampBooking, error) {
	return r.bookings.UpdateWhere(ctx, func(b *domain.CampBooking) bool { return b.ID == id }, fn)
}

func (r *bookingRepository) filter(ctx context.Context, keep func(*domain.CampBooking) bool) ([]domain.CampBooking, error) {
	all, err := r.bookings.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.CampBooking{}
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}
