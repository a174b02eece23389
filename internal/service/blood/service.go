package blood

import (
	"context"

	"blood-connect/internal/domain"
	"blood-connect/internal/repository"
	"blood-connect/internal/service/geo"
	"blood-connect/internal/service/helpers"
	"blood-connect/internal/service/notification"
)

type Service interface {
	CreateRequest(ctx context.Context, input domain.CreateBloodRequestInput) (*domain.BloodRequest, error)
	AutoMatch(ctx context.Context, requestID string) (*domain.MatchResult, error)
	GetRequest(ctx context.Context, id string) (*domain.BloodRequest, error)
	ListRequests(ctx context.Context, status *domain.RequestStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.BloodRequest], error)
	ListRequestsByRecipient(ctx context.Context, recipientID string) ([]domain.BloodRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.BloodRequest, error)
	AdvanceStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.BloodRequest, error)
	CancelRequest(ctx context.Context, id string) (*domain.BloodRequest, error)
	SearchCompatibleDonors(ctx context.Context, bloodGroup domain.BloodType, location string) ([]domain.User, error)

	ListInventory(ctx context.Context) ([]domain.BloodInventory, error)
	GetInventoryByType(ctx context.Context, bloodGroup domain.BloodType) (*domain.BloodInventory, error)
	AdjustInventory(ctx context.Context, input domain.AdjustInventoryInput) (*domain.BloodInventory, error)
	AddUnits(ctx context.Context, bloodGroup domain.BloodType, units int) (*domain.BloodInventory, error)
	RemoveUnits(ctx context.Context, bloodGroup domain.BloodType, units int) (*domain.BloodInventory, error)
	UpdateInventoryItem(ctx context.Context, id string, input domain.UpdateInventoryInput) (*domain.BloodInventory, error)

	Statistics(ctx context.Context) (*domain.Statistics, error)

	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	requestRepo   repository.BloodRequestRepository
	inventoryRepo repository.InventoryRepository
	userRepo      repository.UserRepository
	notifSvc      notification.Service
	distance      geo.DistanceProvider
	rt            helpers.Runtime
}

func NewService(
	requestRepo repository.BloodRequestRepository,
	inventoryRepo repository.InventoryRepository,
	userRepo repository.UserRepository,
	distance geo.DistanceProvider,
	rt helpers.Runtime,
) Service {
	return &service{
		requestRepo:   requestRepo,
		inventoryRepo: inventoryRepo,
		userRepo:      userRepo,
		distance:      distance,
		rt:            rt,
	}
}

// SetNotificationService wires the fan-out after construction. Without it
// the workflows run silently.
func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}
