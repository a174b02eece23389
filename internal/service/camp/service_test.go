package camp_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blood-connect/internal/domain"
	"blood-connect/internal/repository"
	"blood-connect/internal/service/camp"
	"blood-connect/internal/service/helpers"
	"blood-connect/internal/service/notification"
)

var today = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func newRuntime() helpers.Runtime {
	return helpers.NewRuntime(zap.NewNop(), func() time.Time { return today.Add(8 * time.Hour) }, 0)
}

func setup(t *testing.T, camps ...domain.DonationCamp) (camp.Service, *repository.Repositories) {
	t.Helper()
	repos := repository.NewRepositories(repository.NewMemoryStore())
	_, err := repos.Seed(context.Background(), &repository.SeedData{Camps: camps})
	require.NoError(t, err)

	rt := newRuntime()
	svc := camp.NewService(repos.Camp, repos.Booking, rt)
	svc.SetNotificationService(notification.NewService(repos.Notification, repos.User, nil, rt))
	return svc, repos
}

func newCamp(id string, date time.Time, slots, total int) domain.DonationCamp {
	return domain.DonationCamp{
		ID: id, Name: "Camp " + id, Location: "Delhi", Date: date, Time: "09:00 - 17:00",
		Organizer: "Red Cross", SlotsAvailable: slots, TotalSlots: total,
	}
}

func slotsOf(t *testing.T, repos *repository.Repositories, id string) int {
	t.Helper()
	c, err := repos.Camp.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c.SlotsAvailable
}

func TestBookSlot(t *testing.T) {
	svc, repos := setup(t, newCamp("C1", today.AddDate(0, 0, 7), 3, 5))
	ctx := context.Background()
	slot := "10:30"

	booking, err := svc.BookSlot(ctx, "U1", "C1", domain.BookSlotInput{SlotTime: &slot})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, booking.Status)
	assert.Equal(t, "C1", booking.CampID)
	assert.Equal(t, &slot, booking.SlotTime)
	assert.Equal(t, 2, slotsOf(t, repos, "C1"))

	notifs, _, err := repos.Notification.ListByUser(ctx, "U1", true, domain.DefaultPagination())
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, "Camp Booking Confirmed", notifs[0].Title)
	assert.Equal(t, domain.NotifInfo, notifs[0].Type)
}

func TestBookSlot_Failures(t *testing.T) {
	svc, repos := setup(t,
		newCamp("FULL", today.AddDate(0, 0, 7), 0, 5),
		newCamp("OPEN", today.AddDate(0, 0, 7), 5, 5),
	)
	ctx := context.Background()

	_, err := svc.BookSlot(ctx, "U1", "missing", domain.BookSlotInput{})
	assert.ErrorIs(t, err, domain.ErrCampNotFound)

	for i := 0; i < 3; i++ {
		_, err = svc.BookSlot(ctx, "U1", "FULL", domain.BookSlotInput{})
		assert.ErrorIs(t, err, domain.ErrNoSlotsAvailable)
		assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	}
	assert.Zero(t, slotsOf(t, repos, "FULL"))

	_, err = svc.BookSlot(ctx, "U1", "OPEN", domain.BookSlotInput{})
	require.NoError(t, err)
	_, err = svc.BookSlot(ctx, "U1", "OPEN", domain.BookSlotInput{})
	assert.ErrorIs(t, err, domain.ErrAlreadyBooked)
	assert.ErrorIs(t, err, domain.ErrDuplicateState)
	assert.Equal(t, 4, slotsOf(t, repos, "OPEN"))
}

func TestBookCancelRoundTrip(t *testing.T) {
	svc, repos := setup(t, newCamp("C1", today.AddDate(0, 0, 7), 5, 5))
	ctx := context.Background()

	for round := 0; round < 2; round++ {
		booking, err := svc.BookSlot(ctx, "U1", "C1", domain.BookSlotInput{})
		require.NoError(t, err)
		assert.Equal(t, 4, slotsOf(t, repos, "C1"))

		cancelled, err := svc.CancelBooking(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, cancelled.Status)
		assert.Equal(t, 5, slotsOf(t, repos, "C1"))
	}

	bookings, err := svc.ListUserBookings(ctx, "U1")
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestCancelBooking(t *testing.T) {
	svc, repos := setup(t, newCamp("C1", today.AddDate(0, 0, 7), 5, 5))
	ctx := context.Background()

	t.Run("Unknown booking", func(t *testing.T) {
		_, err := svc.CancelBooking(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	})

	t.Run("Second cancel is a no-op", func(t *testing.T) {
		booking, err := svc.BookSlot(ctx, "U2", "C1", domain.BookSlotInput{})
		require.NoError(t, err)

		_, err = svc.CancelBooking(ctx, booking.ID)
		require.NoError(t, err)
		_, err = svc.CancelBooking(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, slotsOf(t, repos, "C1"))
	})

	t.Run("Completed booking stays", func(t *testing.T) {
		require.NoError(t, repos.Booking.Create(ctx, &domain.CampBooking{
			ID: "DONE", UserID: "U3", CampID: "C1", Status: domain.BookingCompleted,
		}))

		_, err := svc.CancelBooking(ctx, "DONE")
		assert.ErrorIs(t, err, domain.ErrBookingNotActive)
	})

	t.Run("Slots never exceed total", func(t *testing.T) {
		require.NoError(t, repos.Booking.Create(ctx, &domain.CampBooking{
			ID: "STRAY", UserID: "U4", CampID: "C1", Status: domain.BookingConfirmed,
		}))

		_, err := svc.CancelBooking(ctx, "STRAY")
		require.NoError(t, err)
		assert.Equal(t, 5, slotsOf(t, repos, "C1"))
	})
}

func TestBookSlot_LastSlotUnderContention(t *testing.T) {
	svc, repos := setup(t, newCamp("C1", today.AddDate(0, 0, 7), 1, 10))
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		full      int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.BookSlot(ctx, "U"+string(rune('A'+i)), "C1", domain.BookSlotInput{})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrNoSlotsAvailable):
				full++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 19, full)
	assert.Zero(t, slotsOf(t, repos, "C1"))

	bookings, err := repos.Booking.ListByCamp(ctx, "C1")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

type failingBookings struct {
	repository.BookingRepository
}

func (failingBookings) Create(context.Context, *domain.CampBooking) error {
	return errors.New("disk full")
}

func TestBookSlot_ReleasesSlotWhenBookingWriteFails(t *testing.T) {
	repos := repository.NewRepositories(repository.NewMemoryStore())
	ctx := context.Background()
	_, err := repos.Seed(ctx, &repository.SeedData{Camps: []domain.DonationCamp{newCamp("C1", today, 2, 2)}})
	require.NoError(t, err)

	svc := camp.NewService(repos.Camp, failingBookings{repos.Booking}, newRuntime())

	_, err = svc.BookSlot(ctx, "U1", "C1", domain.BookSlotInput{})
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 2, slotsOf(t, repos, "C1"))
}

func TestUpcoming(t *testing.T) {
	svc, _ := setup(t,
		newCamp("LATER", today.AddDate(0, 1, 0), 5, 5),
		newCamp("PAST", today.AddDate(0, 0, -1), 5, 5),
		newCamp("TODAY", today, 5, 5),
		newCamp("FULL", today.AddDate(0, 0, 3), 0, 5),
	)

	camps, err := svc.Upcoming(context.Background())
	require.NoError(t, err)
	ids := []string{}
	for _, c := range camps {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"TODAY", "LATER"}, ids)
}

func TestCreate(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, domain.CreateCampInput{
		Name: "Summer Drive", Location: "Pune", Date: today.AddDate(0, 0, 10).Add(14 * time.Hour),
		Time: "10:00 - 16:00", Organizer: "Rotary", TotalSlots: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, c.SlotsAvailable)
	assert.Equal(t, today.AddDate(0, 0, 10), c.Date)

	fetched, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Drive", fetched.Name)

	_, err = svc.Create(ctx, domain.CreateCampInput{Name: "Empty", TotalSlots: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSendReminders(t *testing.T) {
	svc, repos := setup(t, newCamp("C1", today.AddDate(0, 0, 2), 5, 5))
	ctx := context.Background()

	for _, user := range []string{"U1", "U2", "U3"} {
		_, err := svc.BookSlot(ctx, user, "C1", domain.BookSlotInput{})
		require.NoError(t, err)
	}
	bookings, err := svc.ListUserBookings(ctx, "U3")
	require.NoError(t, err)
	_, err = svc.CancelBooking(ctx, bookings[0].ID)
	require.NoError(t, err)

	count, err := svc.SendReminders(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	reminders, _, err := repos.Notification.ListByUser(ctx, "U1", false, domain.DefaultPagination())
	require.NoError(t, err)
	require.Len(t, reminders, 2)
	assert.Equal(t, "Upcoming Donation Camp", reminders[0].Title)

	_, err = svc.SendReminders(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCampNotFound)
}
