package donor

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"blood-connect/internal/domain"
	"blood-connect/internal/repository"
	"blood-connect/internal/service/geo"
	"blood-connect/internal/service/helpers"
	"blood-connect/internal/service/matching"
	"blood-connect/internal/service/notification"
)

type Service interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Search(ctx context.Context, filter matching.Filter) ([]domain.User, error)
	UpdateAvailability(ctx context.Context, donorID string, available bool) (*domain.User, error)
	RecordDonation(ctx context.Context, donorID string, units int) (*domain.User, error)
	Stats(ctx context.Context, donorID string) (*domain.DonorStats, error)
	Nearby(ctx context.Context, location string, bloodGroup *domain.BloodType, maxKm float64) ([]domain.User, error)
	SendEligibilityReminders(ctx context.Context) (int, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	userRepo    repository.UserRepository
	campRepo    repository.CampRepository
	bookingRepo repository.BookingRepository
	notifSvc    notification.Service
	distance    geo.DistanceProvider
	cooldown    *Cooldown
	maxKm       float64
	rt          helpers.Runtime
}

func NewService(
	userRepo repository.UserRepository,
	campRepo repository.CampRepository,
	bookingRepo repository.BookingRepository,
	distance geo.DistanceProvider,
	cooldown *Cooldown,
	defaultMaxKm float64,
	rt helpers.Runtime,
) Service {
	if distance == nil {
		distance = geo.NewHashDistance()
	}
	if defaultMaxKm <= 0 {
		defaultMaxKm = 10
	}
	return &service{
		userRepo:    userRepo,
		campRepo:    campRepo,
		bookingRepo: bookingRepo,
		distance:    distance,
		cooldown:    cooldown,
		maxKm:       defaultMaxKm,
		rt:          rt,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}
	donors, err := s.userRepo.ListByRole(ctx, domain.RoleDonor)
	if err != nil {
		return nil, err
	}
	return domain.PublicUsers(donors), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}
	donor, err := s.findDonor(ctx, id)
	if err != nil {
		return nil, err
	}
	public := donor.Public()
	return &public, nil
}

func (s *service) findDonor(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsDonor() {
		return nil, domain.ErrDonorNotFound
	}
	return user, nil
}

// Search applies exact filters. Unlike compatible-donor search it ignores
// cooldown and blood compatibility.
func (s *service) Search(ctx context.Context, filter matching.Filter) ([]domain.User, error) {
	if filter.BloodGroup != nil && !filter.BloodGroup.IsValid() {
		return nil, domain.ErrInvalidBloodType
	}
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}
	donors, err := s.userRepo.ListByRole(ctx, domain.RoleDonor)
	if err != nil {
		return nil, err
	}
	return domain.PublicUsers(filter.Apply(donors)), nil
}

func (s *service) UpdateAvailability(ctx context.Context, donorID string, available bool) (*domain.User, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}
	if _, err := s.findDonor(ctx, donorID); err != nil {
		return nil, err
	}

	now := s.rt.Timestamp()
	updated, err := s.userRepo.Update(ctx, donorID, func(u *domain.User) {
		u.Available = available
		u.UpdatedAt = &now
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}
	if updated == nil {
		return nil, domain.ErrDonorNotFound
	}

	s.rt.Log().Info("donor availability updated",
		zap.String("donor_id", donorID),
		zap.Bool("available", available))

	public := updated.Public()
	return &public, nil
}

// RecordDonation puts the donor into cooldown. units is accepted for the
// audit log only; a donation always counts once.
func (s *service) RecordDonation(ctx context.Context, donorID string, units int) (*domain.User, error) {
	if units <= 0 {
		return nil, domain.ErrInvalidUnits
	}
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}
	if _, err := s.findDonor(ctx, donorID); err != nil {
		return nil, err
	}

	today := s.rt.Today()
	next := s.cooldown.NextEligible(today)
	now := s.rt.Timestamp()
	updated, err := s.userRepo.Update(ctx, donorID, func(u *domain.User) {
		u.Available = false
		u.LastDonationDate = &today
		u.NextEligibleDate = &next
		u.TotalDonations++
		u.UpdatedAt = &now
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record donation: %w", err)
	}
	if updated == nil {
		return nil, domain.ErrDonorNotFound
	}

	s.rt.Log().Info("donation recorded",
		zap.String("donor_id", donorID),
		zap.Int("units", units),
		zap.Int("total_donations", updated.TotalDonations),
		zap.Time("next_eligible", next))

	if s.notifSvc != nil {
		if _, err := s.notifSvc.NotifyDonationRecorded(ctx, updated); err != nil {
			s.rt.Log().Warn("failed to notify donor", zap.String("donor_id", donorID), zap.Error(err))
		}
	}

	public := updated.Public()
	return &public, nil
}

// Stats summarises a donor's history. Upcoming camps are camps dated today
// or later that the donor holds a confirmed booking for.
func (s *service) Stats(ctx context.Context, donorID string) (*domain.DonorStats, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}
	donor, err := s.findDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByUser(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	camps, err := s.campRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get camps: %w", err)
	}

	booked := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		if b.Status == domain.BookingConfirmed {
			booked[b.CampID] = struct{}{}
		}
	}

	today := s.rt.Today()
	upcoming := 0
	for _, c := range camps {
		if _, ok := booked[c.ID]; ok && !domain.DateOf(c.Date).Before(today) {
			upcoming++
		}
	}

	return &domain.DonorStats{
		TotalDonations:   donor.TotalDonations,
		LastDonation:     formatDate(donor.LastDonationDate),
		NextEligibleDate: formatDate(donor.NextEligibleDate),
		LivesSaved:       donor.TotalDonations * domain.LivesSavedPerDonation,
		UpcomingCamps:    upcoming,
	}, nil
}

// Nearby lists available donors within maxKm of location, closest first.
// A non-positive maxKm falls back to the configured radius.
func (s *service) Nearby(ctx context.Context, location string, bloodGroup *domain.BloodType, maxKm float64) ([]domain.User, error) {
	if bloodGroup != nil && !bloodGroup.IsValid() {
		return nil, domain.ErrInvalidBloodType
	}
	if location == "" {
		return nil, fmt.Errorf("location is required: %w", domain.ErrValidation)
	}
	if maxKm <= 0 {
		maxKm = s.maxKm
	}
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}

	donors, err := s.userRepo.ListByRole(ctx, domain.RoleDonor)
	if err != nil {
		return nil, err
	}

	available := true
	candidates := matching.Filter{BloodGroup: bloodGroup, Available: &available}.Apply(donors)
	if err := geo.Annotate(ctx, s.distance, location, candidates); err != nil {
		return nil, fmt.Errorf("failed to compute distances: %w", err)
	}

	nearby := geo.WithinRadius(candidates, maxKm)
	sort.SliceStable(nearby, func(i, j int) bool {
		return *nearby[i].Distance < *nearby[j].Distance
	})
	return domain.PublicUsers(nearby), nil
}

// SendEligibilityReminders notifies donors whose cooldown has ended but who
// are still marked unavailable after their last donation. Donors who never
// donated, or already switched themselves back on, are skipped.
func (s *service) SendEligibilityReminders(ctx context.Context) (int, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return 0, err
	}
	donors, err := s.userRepo.ListByRole(ctx, domain.RoleDonor)
	if err != nil {
		return 0, err
	}

	today := s.rt.Today()
	var due []domain.User
	for i := range donors {
		d := &donors[i]
		if d.Available || d.LastDonationDate == nil || !d.IsPastCooldown(today) {
			continue
		}
		due = append(due, *d)
	}

	if len(due) == 0 || s.notifSvc == nil {
		return 0, nil
	}
	count, err := s.notifSvc.NotifyEligible(ctx, due)
	if err != nil {
		return 0, fmt.Errorf("failed to send eligibility reminders: %w", err)
	}
	return count, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}
