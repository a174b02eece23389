package camp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"blood-connect/internal/domain"
	"blood-connect/internal/repository"
	"blood-connect/internal/service/helpers"
	"blood-connect/internal/service/notification"
)

type Service interface {
	List(ctx context.Context) ([]domain.DonationCamp, error)
	Upcoming(ctx context.Context) ([]domain.DonationCamp, error)
	GetByID(ctx context.Context, id string) (*domain.DonationCamp, error)
	Create(ctx context.Context, input domain.CreateCampInput) (*domain.DonationCamp, error)
	BookSlot(ctx context.Context, userID, campID string, input domain.BookSlotInput) (*domain.CampBooking, error)
	CancelBooking(ctx context.Context, bookingID string) (*domain.CampBooking, error)
	GetBooking(ctx context.Context, bookingID string) (*domain.CampBooking, error)
	ListUserBookings(ctx context.Context, userID string) ([]domain.CampBooking, error)
	SendReminders(ctx context.Context, campID string) (int, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	campRepo    repository.CampRepository
	bookingRepo repository.BookingRepository
	notifSvc    notification.Service
	rt          helpers.Runtime

	// mu serializes every operation that writes both bookings and camps.
	mu sync.Mutex
}

func NewService(campRepo repository.CampRepository, bookingRepo repository.BookingRepository, rt helpers.Runtime) Service {
	return &service{
		campRepo:    campRepo,
		bookingRepo: bookingRepo,
		rt:          rt,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) List(ctx context.Context) ([]domain.DonationCamp, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}
	camps, err := s.campRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sortByDate(camps)
	return camps, nil
}

// Upcoming returns camps dated today or later that still have free slots.
func (s *service) Upcoming(ctx context.Context) ([]domain.DonationCamp, error) {
	camps, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	today := s.rt.Today()
	upcoming := []domain.DonationCamp{}
	for _, c := range camps {
		if !domain.DateOf(c.Date).Before(today) && c.SlotsAvailable > 0 {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}

func sortByDate(camps []domain.DonationCamp) {
	sort.SliceStable(camps, func(i, j int) bool {
		return camps[i].Date.Before(camps[j].Date)
	})
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.DonationCamp, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}
	camp, err := s.campRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if camp == nil {
		return nil, domain.ErrCampNotFound
	}
	return camp, nil
}

func (s *service) Create(ctx context.Context, input domain.CreateCampInput) (*domain.DonationCamp, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("camp name is required: %w", domain.ErrValidation)
	}
	if input.TotalSlots <= 0 {
		return nil, fmt.Errorf("total slots must be positive: %w", domain.ErrValidation)
	}
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}

	now := s.rt.Timestamp()
	camp := &domain.DonationCamp{
		ID:             helpers.NewID(),
		Name:           input.Name,
		Location:       input.Location,
		Date:           domain.DateOf(input.Date),
		Time:           input.Time,
		Organizer:      input.Organizer,
		SlotsAvailable: input.TotalSlots,
		TotalSlots:     input.TotalSlots,
		CreatedAt:      &now,
	}
	if err := s.campRepo.Create(ctx, camp); err != nil {
		return nil, fmt.Errorf("failed to create camp: %w", err)
	}

	s.rt.Log().Info("donation camp created",
		zap.String("camp_id", camp.ID),
		zap.String("name", camp.Name),
		zap.Int("total_slots", camp.TotalSlots))
	return camp, nil
}

// BookSlot takes a slot and records the booking as one step. The slot is
// taken first; if the booking write fails the slot is given back.
func (s *service) BookSlot(ctx context.Context, userID, campID string, input domain.BookSlotInput) (*domain.CampBooking, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	camp, err := s.campRepo.GetByID(ctx, campID)
	if err != nil {
		return nil, err
	}
	if camp == nil {
		return nil, domain.ErrCampNotFound
	}
	if camp.SlotsAvailable <= 0 {
		return nil, domain.ErrNoSlotsAvailable
	}

	existing, err := s.bookingRepo.FindConfirmed(ctx, userID, campID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyBooked
	}

	camp, err = s.campRepo.Update(ctx, campID, func(c *domain.DonationCamp) error {
		return c.TakeSlot()
	})
	if err != nil {
		return nil, err
	}
	if camp == nil {
		return nil, domain.ErrCampNotFound
	}

	booking := &domain.CampBooking{
		ID:          helpers.NewID(),
		UserID:      userID,
		CampID:      campID,
		BookingDate: s.rt.Timestamp(),
		Status:      domain.BookingConfirmed,
		SlotTime:    input.SlotTime,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if _, rerr := s.campRepo.Update(ctx, campID, releaseSlot); rerr != nil {
			s.rt.Log().Error("failed to release slot after booking failure",
				zap.String("camp_id", campID),
				zap.Error(rerr))
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.rt.Log().Info("camp slot booked",
		zap.String("booking_id", booking.ID),
		zap.String("camp_id", campID),
		zap.String("user_id", userID),
		zap.Int("slots_available", camp.SlotsAvailable))

	if s.notifSvc != nil {
		if _, err := s.notifSvc.NotifyBookingConfirmed(ctx, userID, camp); err != nil {
			s.rt.Log().Warn("failed to notify booker", zap.String("booking_id", booking.ID), zap.Error(err))
		}
	}

	return booking, nil
}

// CancelBooking frees the slot held by a confirmed booking. Cancelling an
// already cancelled booking changes nothing.
func (s *service) CancelBooking(ctx context.Context, bookingID string) (*domain.CampBooking, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}
	switch booking.Status {
	case domain.BookingCancelled:
		return booking, nil
	case domain.BookingCompleted:
		return nil, domain.ErrBookingNotActive
	}

	booking, err = s.bookingRepo.Update(ctx, bookingID, func(b *domain.CampBooking) error {
		b.Status = domain.BookingCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}

	camp, err := s.campRepo.Update(ctx, booking.CampID, releaseSlot)
	if err != nil {
		if _, rerr := s.bookingRepo.Update(ctx, bookingID, func(b *domain.CampBooking) error {
			b.Status = domain.BookingConfirmed
			return nil
		}); rerr != nil {
			s.rt.Log().Error("failed to restore booking after slot release failure",
				zap.String("booking_id", bookingID),
				zap.Error(rerr))
		}
		return nil, fmt.Errorf("failed to release slot: %w", err)
	}
	if camp == nil {
		s.rt.Log().Warn("cancelled booking for a camp that no longer exists",
			zap.String("booking_id", bookingID),
			zap.String("camp_id", booking.CampID))
	}

	s.rt.Log().Info("camp booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("camp_id", booking.CampID))
	return booking, nil
}

func releaseSlot(c *domain.DonationCamp) error {
	c.ReleaseSlot()
	return nil
}

func (s *service) GetBooking(ctx context.Context, bookingID string) (*domain.CampBooking, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}
	return booking, nil
}

func (s *service) ListUserBookings(ctx context.Context, userID string) ([]domain.CampBooking, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}
	return s.bookingRepo.ListByUser(ctx, userID)
}

// SendReminders notifies everyone holding a confirmed booking for the camp.
func (s *service) SendReminders(ctx context.Context, campID string) (int, error) {
	camp, err := s.GetByID(ctx, campID)
	if err != nil {
		return 0, err
	}

	bookings, err := s.bookingRepo.ListByCamp(ctx, campID)
	if err != nil {
		return 0, err
	}

	var userIDs []string
	for _, b := range bookings {
		if b.Status == domain.BookingConfirmed {
			userIDs = append(userIDs, b.UserID)
		}
	}

	if len(userIDs) == 0 || s.notifSvc == nil {
		return 0, nil
	}
	count, err := s.notifSvc.NotifyCampReminder(ctx, camp, userIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to send camp reminders: %w", err)
	}
	return count, nil
}
