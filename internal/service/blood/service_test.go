package blood_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blood-connect/internal/domain"
	"blood-connect/internal/repository"
	"blood-connect/internal/service/blood"
	"blood-connect/internal/service/geo"
	"blood-connect/internal/service/helpers"
	"blood-connect/internal/service/notification"
)

var today = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	svc   blood.Service
	repos *repository.Repositories
	ctx   context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := repository.NewRepositories(repository.NewMemoryStore())
	rt := helpers.NewRuntime(zap.NewNop(), func() time.Time { return today.Add(10 * time.Hour) }, 0)

	svc := blood.NewService(repos.BloodRequest, repos.Inventory, repos.User, geo.NewHashDistance(), rt)
	svc.SetNotificationService(notification.NewService(repos.Notification, repos.User, nil, rt))

	return &fixture{svc: svc, repos: repos, ctx: context.Background()}
}

func (f *fixture) addUser(t *testing.T, u domain.User) {
	t.Helper()
	require.NoError(t, f.repos.User.Create(f.ctx, &u))
}

func date(s string) *time.Time {
	t, _ := domain.ParseDate(s)
	return &t
}

func eligibleDonor(id string, bt domain.BloodType) domain.User {
	return domain.User{
		ID: id, Name: id, Role: domain.RoleDonor, BloodGroup: bt, Location: "Delhi",
		Available: true, NextEligibleDate: date("2025-05-01"),
	}
}

func requestInput(bt domain.BloodType, urgency domain.Urgency) domain.CreateBloodRequestInput {
	return domain.CreateBloodRequestInput{
		RecipientID: "R1", RecipientName: "Anita Verma", BloodGroup: bt,
		Quantity: 2, Urgency: urgency, Hospital: "Apollo Hospital",
	}
}

func TestCreateRequest_EmergencyMatchesImmediately(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, domain.User{ID: "R1", Role: domain.RoleRecipient})
	f.addUser(t, eligibleDonor("D1", domain.BloodONegative))
	f.addUser(t, eligibleDonor("D2", domain.BloodONegative))
	f.addUser(t, eligibleDonor("D3", domain.BloodOPositive))

	req, err := f.svc.CreateRequest(f.ctx, requestInput(domain.BloodONegative, domain.UrgencyEmergency))
	require.NoError(t, err)

	assert.Equal(t, domain.RequestMatched, req.Status)
	assert.ElementsMatch(t, []string{"D1", "D2"}, req.MatchedDonors)
	assert.Equal(t, today, req.RequestDate)

	unread, err := f.repos.Notification.CountUnread(f.ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread, "recipient hears about the match")
}

func TestCreateRequest_NormalStaysPending(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, eligibleDonor("D1", domain.BloodAPositive))

	req, err := f.svc.CreateRequest(f.ctx, requestInput(domain.BloodAPositive, domain.UrgencyNormal))
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, req.Status)
	assert.Empty(t, req.MatchedDonors)

	// Donor fan-out happens regardless of urgency.
	unread, err := f.repos.Notification.CountUnread(f.ctx, "D1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	result, err := f.svc.AutoMatch(f.ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, []string{"D1"}, result.DonorIDs)
	assert.Empty(t, result.Donors[0].PasswordHash)

	stored, err := f.svc.GetRequest(f.ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestMatched, stored.Status)
}

func TestCreateRequest_EmergencyWithoutDonorsStaysPending(t *testing.T) {
	f := newFixture(t)
	cooling := eligibleDonor("D1", domain.BloodBPositive)
	cooling.NextEligibleDate = date("2025-08-01")
	f.addUser(t, cooling)

	req, err := f.svc.CreateRequest(f.ctx, requestInput(domain.BloodBPositive, domain.UrgencyUrgent))
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, req.Status)
}

func TestCreateRequest_RejectsBadInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateRequest(f.ctx, requestInput("C+", domain.UrgencyNormal))
	assert.ErrorIs(t, err, domain.ErrValidation)

	in := requestInput(domain.BloodAPositive, domain.UrgencyNormal)
	in.Quantity = 0
	_, err = f.svc.CreateRequest(f.ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAutoMatch_MissingRequestIsNoOp(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.AutoMatch(f.ctx, "does-not-exist")
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Empty(t, result.DonorIDs)
}

func TestAutoMatch_DoesNotReopenCancelled(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, eligibleDonor("D1", domain.BloodAPositive))

	req, err := f.svc.CreateRequest(f.ctx, requestInput(domain.BloodAPositive, domain.UrgencyNormal))
	require.NoError(t, err)
	_, err = f.svc.CancelRequest(f.ctx, req.ID)
	require.NoError(t, err)

	result, err := f.svc.AutoMatch(f.ctx, req.ID)
	require.NoError(t, err)
	assert.False(t, result.Matched)

	stored, err := f.svc.GetRequest(f.ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestCancelled, stored.Status)
}

func TestAutoMatch_DoesNotRewindInProcess(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, eligibleDonor("D1", domain.BloodONegative))

	req, err := f.svc.CreateRequest(f.ctx, requestInput(domain.BloodONegative, domain.UrgencyEmergency))
	require.NoError(t, err)
	require.Equal(t, domain.RequestMatched, req.Status)

	_, err = f.svc.AdvanceStatus(f.ctx, req.ID, domain.RequestInProcess)
	require.NoError(t, err)
	f.addUser(t, eligibleDonor("D2", domain.BloodONegative))

	result, err := f.svc.AutoMatch(f.ctx, req.ID)
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Empty(t, result.DonorIDs)

	stored, err := f.svc.GetRequest(f.ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestInProcess, stored.Status)
	assert.Equal(t, []string{"D1"}, stored.MatchedDonors)
}

func TestAutoMatch_RefreshesMatchedDonors(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, eligibleDonor("D1", domain.BloodONegative))

	req, err := f.svc.CreateRequest(f.ctx, requestInput(domain.BloodONegative, domain.UrgencyUrgent))
	require.NoError(t, err)
	require.Equal(t, domain.RequestMatched, req.Status)

	f.addUser(t, eligibleDonor("D2", domain.BloodONegative))
	result, err := f.svc.AutoMatch(f.ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.ElementsMatch(t, []string{"D1", "D2"}, result.DonorIDs)
}

func TestStatusUpdates(t *testing.T) {
	f := newFixture(t)
	req, err := f.svc.CreateRequest(f.ctx, requestInput(domain.BloodAPositive, domain.UrgencyNormal))
	require.NoError(t, err)

	t.Run("UpdateStatus is permissive", func(t *testing.T) {
		updated, err := f.svc.UpdateStatus(f.ctx, req.ID, domain.RequestCompleted)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestCompleted, updated.Status)

		updated, err = f.svc.UpdateStatus(f.ctx, req.ID, domain.RequestPending)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestPending, updated.Status)
	})

	t.Run("AdvanceStatus enforces the lifecycle", func(t *testing.T) {
		_, err := f.svc.AdvanceStatus(f.ctx, req.ID, domain.RequestCompleted)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		for _, next := range []domain.RequestStatus{domain.RequestMatched, domain.RequestInProcess, domain.RequestCompleted} {
			updated, err := f.svc.AdvanceStatus(f.ctx, req.ID, next)
			require.NoError(t, err)
			assert.Equal(t, next, updated.Status)
		}

		_, err = f.svc.AdvanceStatus(f.ctx, req.ID, domain.RequestCancelled)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("Unknown request", func(t *testing.T) {
		_, err := f.svc.UpdateStatus(f.ctx, "nope", domain.RequestMatched)
		assert.ErrorIs(t, err, domain.ErrRequestNotFound)
		_, err = f.svc.CancelRequest(f.ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Unknown status", func(t *testing.T) {
		_, err := f.svc.UpdateStatus(f.ctx, req.ID, "Lost")
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestListRequests(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		_, err := f.svc.CreateRequest(f.ctx, requestInput(domain.BloodAPositive, domain.UrgencyNormal))
		require.NoError(t, err)
	}
	other := requestInput(domain.BloodBPositive, domain.UrgencyNormal)
	other.RecipientID = "R2"
	created, err := f.svc.CreateRequest(f.ctx, other)
	require.NoError(t, err)
	_, err = f.svc.CancelRequest(f.ctx, created.ID)
	require.NoError(t, err)

	page, err := f.svc.ListRequests(f.ctx, nil, domain.PaginationParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.TotalItems)
	assert.Len(t, page.Data, 2)
	assert.True(t, page.HasNext)

	cancelled := domain.RequestCancelled
	page, err = f.svc.ListRequests(f.ctx, &cancelled, domain.DefaultPagination())
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, created.ID, page.Data[0].ID)

	mine, err := f.svc.ListRequestsByRecipient(f.ctx, "R1")
	require.NoError(t, err)
	assert.Len(t, mine, 3)
}

func seedInventory(t *testing.T, f *fixture, entries map[domain.BloodType]int) {
	t.Helper()
	var items []domain.BloodInventory
	for _, bt := range domain.BloodTypes {
		units, ok := entries[bt]
		if !ok {
			continue
		}
		inv := domain.BloodInventory{ID: "INV-" + bt.String(), BloodGroup: bt, Location: "Central Blood Bank"}
		inv.SetUnits(units)
		items = append(items, inv)
	}
	_, err := f.repos.Seed(f.ctx, &repository.SeedData{Inventory: items})
	require.NoError(t, err)
}

func TestAdjustInventory_RemoveToCritical(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, domain.User{ID: "ADMIN", Role: domain.RoleAdmin})
	seedInventory(t, f, map[domain.BloodType]int{domain.BloodONegative: 25})

	inv, err := f.svc.RemoveUnits(f.ctx, domain.BloodONegative, 20)
	require.NoError(t, err)
	assert.Equal(t, 5, inv.Units)
	assert.Equal(t, domain.StockCritical, inv.Status)

	alerts, total, err := f.repos.Notification.ListByUser(f.ctx, "ADMIN", true, domain.DefaultPagination())
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "Low Blood Stock Alert", alerts[0].Title)
	assert.Equal(t, domain.NotifAlert, alerts[0].Type)
	assert.Contains(t, alerts[0].Message, "critical (5 units remaining)")
}

func TestAdjustInventory_InsufficientStockLeavesUnits(t *testing.T) {
	f := newFixture(t)
	seedInventory(t, f, map[domain.BloodType]int{domain.BloodAPositive: 25})

	_, err := f.svc.RemoveUnits(f.ctx, domain.BloodAPositive, 26)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	inv, err := f.svc.GetInventoryByType(f.ctx, domain.BloodAPositive)
	require.NoError(t, err)
	assert.Equal(t, 25, inv.Units)
	assert.Equal(t, domain.StockAvailable, inv.Status)
}

func TestAdjustInventory_AddReclassifiesWithoutAlert(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, domain.User{ID: "ADMIN", Role: domain.RoleAdmin})
	seedInventory(t, f, map[domain.BloodType]int{domain.BloodBNegative: 3})

	inv, err := f.svc.AddUnits(f.ctx, domain.BloodBNegative, 10)
	require.NoError(t, err)
	assert.Equal(t, 13, inv.Units)
	assert.Equal(t, domain.StockLow, inv.Status)

	unread, err := f.repos.Notification.CountUnread(f.ctx, "ADMIN")
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestAdjustInventory_Errors(t *testing.T) {
	f := newFixture(t)
	seedInventory(t, f, map[domain.BloodType]int{domain.BloodAPositive: 25})

	_, err := f.svc.RemoveUnits(f.ctx, domain.BloodABNegative, 5)
	assert.ErrorIs(t, err, domain.ErrInventoryNotFound)

	_, err = f.svc.AddUnits(f.ctx, domain.BloodType("X+"), 5)
	assert.ErrorIs(t, err, domain.ErrInvalidBloodType)

	_, err = f.svc.AddUnits(f.ctx, domain.BloodAPositive, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidUnits)

	_, err = f.svc.AdjustInventory(f.ctx, domain.AdjustInventoryInput{BloodGroup: domain.BloodAPositive, Units: 1, Direction: "sideways"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAdjustInventory_AddStartsMissingRow(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.AddUnits(f.ctx, domain.BloodAPositive, 5)
	require.NoError(t, err)
	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, 5, inv.Units)
	assert.Equal(t, domain.StockCritical, inv.Status)

	inv, err = f.svc.AddUnits(f.ctx, domain.BloodAPositive, 20)
	require.NoError(t, err)
	assert.Equal(t, 25, inv.Units)
	assert.Equal(t, domain.StockAvailable, inv.Status)

	all, err := f.svc.ListInventory(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdateInventoryItem(t *testing.T) {
	f := newFixture(t)
	seedInventory(t, f, map[domain.BloodType]int{domain.BloodOPositive: 45})

	units := 15
	location := "North Wing"
	inv, err := f.svc.UpdateInventoryItem(f.ctx, "INV-O+", domain.UpdateInventoryInput{Units: &units, Location: &location})
	require.NoError(t, err)
	assert.Equal(t, domain.StockLow, inv.Status)
	assert.Equal(t, "North Wing", inv.Location)

	_, err = f.svc.UpdateInventoryItem(f.ctx, "INV-missing", domain.UpdateInventoryInput{Units: &units})
	assert.ErrorIs(t, err, domain.ErrInventoryNotFound)
}

func TestStatistics(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, eligibleDonor("D1", domain.BloodAPositive))
	busy := eligibleDonor("D2", domain.BloodBPositive)
	busy.Available = false
	f.addUser(t, busy)
	f.addUser(t, domain.User{ID: "R1", Role: domain.RoleRecipient})
	seedInventory(t, f, map[domain.BloodType]int{
		domain.BloodOPositive: 45, domain.BloodANegative: 12, domain.BloodONegative: 8, domain.BloodABNegative: 2,
	})

	first, err := f.svc.CreateRequest(f.ctx, requestInput(domain.BloodBPositive, domain.UrgencyNormal))
	require.NoError(t, err)
	_, err = f.svc.CreateRequest(f.ctx, requestInput(domain.BloodBPositive, domain.UrgencyNormal))
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(f.ctx, first.ID, domain.RequestCompleted)
	require.NoError(t, err)

	stats, err := f.svc.Statistics(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.PendingRequests)
	assert.Equal(t, int64(1), stats.CompletedRequests)
	assert.Equal(t, int64(2), stats.TotalDonors)
	assert.Equal(t, int64(1), stats.AvailableDonors)
	assert.Equal(t, []domain.BloodType{domain.BloodANegative}, stats.LowStockTypes)
	assert.Equal(t, []domain.BloodType{domain.BloodABNegative, domain.BloodONegative}, stats.CriticalStockTypes)
}

func TestSearchCompatibleDonors(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, eligibleDonor("D1", domain.BloodONegative))
	mumbai := eligibleDonor("D2", domain.BloodAPositive)
	mumbai.Location = "Mumbai"
	f.addUser(t, mumbai)
	f.addUser(t, eligibleDonor("D3", domain.BloodBPositive))

	all, err := f.svc.SearchCompatibleDonors(f.ctx, domain.BloodAPositive, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	local, err := f.svc.SearchCompatibleDonors(f.ctx, domain.BloodAPositive, "mumbai")
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, "D2", local[0].ID)
	assert.NotNil(t, local[0].Distance)

	_, err = f.svc.SearchCompatibleDonors(f.ctx, "Z", "")
	assert.ErrorIs(t, err, domain.ErrInvalidBloodType)
}
