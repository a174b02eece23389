package repository

import (
	"context"

	"blood-connect/internal/domain"
)

type BloodRequestRepository interface {
	Create(ctx context.Context, req *domain.BloodRequest) error
	GetByID(ctx context.Context, id string) (*domain.BloodRequest, error)
	List(ctx context.Context) ([]domain.BloodRequest, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]domain.BloodRequest, error)
	Update(ctx context.Context, id string, fn func(*domain.BloodRequest) error) (*domain.BloodRequest, error)
}

type bloodRequestRepository struct {
	requests *Collection[domain.BloodRequest]
}

func NewBloodRequestRepository(store RecordStore) BloodRequestRepository {
	return &bloodRequestRepository{
		requests: NewCollection(store, CollectionBloodRequests, func(r *domain.BloodRequest) string { return r.ID }),
	}
}

func (r *bloodRequestRepository) Create(ctx context.Context, req *domain.BloodRequest) error {
	return r.requests.Append(ctx, *req)
}

func (r *bloodRequestRepository) GetByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	return r.requests.Find(ctx, id)
}

func (r *bloodRequestRepository) List(ctx context.Context) ([]domain.BloodRequest, error) {
	return r.requests.GetAll(ctx)
}

func (r *bloodRequestRepository) ListByRecipient(ctx context.Context, recipientID string) ([]domain.BloodRequest, error) {
	all, err := r.requests.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	requests := []domain.BloodRequest{}
	for _, req := range all {
		if req.RecipientID == recipientID {
			requests = append(requests, req)
		}
	}
	return requests, nil
}

// Update returns nil when the request does not exist. An error from fn
// leaves the stored request unchanged.
func (r *bloodRequestRepository) Update(ctx context.Context, id string, fn func(*domain.BloodRequest) error) (*domain.BloodRequest, error) {
	return r.requests.UpdateWhere(ctx, func(req *domain.BloodRequest) bool { return req.ID == id }, fn)
}
