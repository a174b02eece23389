package blood

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"blood-connect/internal/domain"
	"blood-connect/internal/service/geo"
	"blood-connect/internal/service/helpers"
	"blood-connect/internal/service/matching"
)

var errNotMatchable = errors.New("request is past matching")

func matchable(status domain.RequestStatus) bool {
	return status == domain.RequestPending || status == domain.RequestMatched
}

func (s *service) CreateRequest(ctx context.Context, input domain.CreateBloodRequestInput) (*domain.BloodRequest, error) {
	if !input.BloodGroup.IsValid() {
		return nil, domain.ErrInvalidBloodType
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", domain.ErrValidation)
	}
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}

	urgency := input.Urgency
	if urgency == "" {
		urgency = domain.UrgencyNormal
	}

	req := &domain.BloodRequest{
		ID:            helpers.NewID(),
		RecipientID:   input.RecipientID,
		RecipientName: input.RecipientName,
		BloodGroup:    input.BloodGroup,
		Quantity:      input.Quantity,
		Urgency:       urgency,
		Hospital:      input.Hospital,
		Status:        domain.RequestPending,
		RequestDate:   s.rt.Today(),
		DoctorNote:    input.DoctorNote,
		ContactNumber: input.ContactNumber,
		RequiredBy:    input.RequiredBy,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create blood request: %w", err)
	}

	s.rt.Log().Info("blood request created",
		zap.String("request_id", req.ID),
		zap.String("blood_group", req.BloodGroup.String()),
		zap.String("urgency", string(req.Urgency)))

	if req.Urgency.Elevated() {
		if _, err := s.AutoMatch(ctx, req.ID); err != nil {
			s.rt.Log().Warn("failed to match donors", zap.String("request_id", req.ID), zap.Error(err))
		} else if fresh, err := s.requestRepo.GetByID(ctx, req.ID); err == nil && fresh != nil {
			req = fresh
		}
	}

	if s.notifSvc != nil {
		if _, err := s.notifSvc.NotifyRequestDonors(ctx, req); err != nil {
			s.rt.Log().Warn("failed to notify donors", zap.String("request_id", req.ID), zap.Error(err))
		}
	}

	return req, nil
}

// AutoMatch runs the matching engine for a request. A missing request is a
// no-op with Matched=false. Only Pending and Matched requests are updated, so
// a request never moves back from In Process or a closed state.
func (s *service) AutoMatch(ctx context.Context, requestID string) (*domain.MatchResult, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}

	result := &domain.MatchResult{RequestID: requestID, DonorIDs: []string{}, Donors: []domain.User{}}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get blood request: %w", err)
	}
	if req == nil || !matchable(req.Status) {
		return result, nil
	}

	donors, err := s.userRepo.ListByRole(ctx, domain.RoleDonor)
	if err != nil {
		return nil, fmt.Errorf("failed to get donors: %w", err)
	}

	matches := matching.FindMatches(req.BloodGroup, donors, s.rt.Today(), "")
	if len(matches) == 0 {
		s.rt.Log().Info("no donors matched", zap.String("request_id", requestID))
		return result, nil
	}

	ids := matching.IDs(matches)
	now := s.rt.Timestamp()
	updated, err := s.requestRepo.Update(ctx, requestID, func(r *domain.BloodRequest) error {
		if !matchable(r.Status) {
			return errNotMatchable
		}
		r.Status = domain.RequestMatched
		r.MatchedDonors = ids
		r.UpdatedAt = &now
		return nil
	})
	if errors.Is(err, errNotMatchable) {
		s.rt.Log().Info("request moved on before match", zap.String("request_id", requestID))
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update blood request: %w", err)
	}
	if updated == nil {
		return result, nil
	}

	result.Matched = true
	result.DonorIDs = ids
	result.Donors = domain.PublicUsers(matches)

	s.rt.Log().Info("donors matched",
		zap.String("request_id", requestID),
		zap.Int("donors", len(ids)))

	if s.notifSvc != nil {
		if _, err := s.notifSvc.NotifyMatch(ctx, updated, len(ids)); err != nil {
			s.rt.Log().Warn("failed to notify recipient", zap.String("request_id", requestID), zap.Error(err))
		}
	}

	return result, nil
}

func (s *service) GetRequest(ctx context.Context, id string) (*domain.BloodRequest, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrRequestNotFound
	}
	return req, nil
}

// ListRequests returns requests newest first, optionally narrowed to one status.
func (s *service) ListRequests(ctx context.Context, status *domain.RequestStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.BloodRequest], error) {
	if err := s.rt.Delay(ctx); err != nil {
		return domain.PaginatedResponse[domain.BloodRequest]{}, err
	}
	params.Validate()

	all, err := s.requestRepo.List(ctx)
	if err != nil {
		return domain.PaginatedResponse[domain.BloodRequest]{}, err
	}

	requests := []domain.BloodRequest{}
	for _, r := range all {
		if status == nil || r.Status == *status {
			requests = append(requests, r)
		}
	}
	sortNewestFirst(requests)

	page, total := domain.Paginate(requests, params)
	return domain.NewPaginatedResponse(page, params.Page, params.PageSize, total), nil
}

func (s *service) ListRequestsByRecipient(ctx context.Context, recipientID string) ([]domain.BloodRequest, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}
	requests, err := s.requestRepo.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(requests)
	return requests, nil
}

func sortNewestFirst(requests []domain.BloodRequest) {
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].RequestDate.After(requests[j].RequestDate)
	})
}

// UpdateStatus overwrites the status without checking the lifecycle.
func (s *service) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.BloodRequest, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.setStatus(ctx, id, func(r *domain.BloodRequest) error {
		r.Status = status
		return nil
	})
}

// AdvanceStatus moves a request along Pending -> Matched -> In Process ->
// Completed, or Pending -> Cancelled, and rejects anything else.
func (s *service) AdvanceStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.BloodRequest, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.setStatus(ctx, id, func(r *domain.BloodRequest) error {
		if !r.Status.CanTransitionTo(status) {
			return fmt.Errorf("%s to %s: %w", r.Status, status, domain.ErrInvalidTransition)
		}
		r.Status = status
		return nil
	})
}

// CancelRequest releases nothing: requests reserve donors, not inventory.
func (s *service) CancelRequest(ctx context.Context, id string) (*domain.BloodRequest, error) {
	return s.UpdateStatus(ctx, id, domain.RequestCancelled)
}

func (s *service) setStatus(ctx context.Context, id string, fn func(*domain.BloodRequest) error) (*domain.BloodRequest, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}

	now := s.rt.Timestamp()
	updated, err := s.requestRepo.Update(ctx, id, func(r *domain.BloodRequest) error {
		if err := fn(r); err != nil {
			return err
		}
		r.UpdatedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrRequestNotFound
	}

	s.rt.Log().Info("blood request status updated",
		zap.String("request_id", id),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

// SearchCompatibleDonors lists donors who could give to bloodGroup right now.
// With a location, donors are narrowed to it and ranked by distance from it.
func (s *service) SearchCompatibleDonors(ctx context.Context, bloodGroup domain.BloodType, location string) ([]domain.User, error) {
	if !bloodGroup.IsValid() {
		return nil, domain.ErrInvalidBloodType
	}
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}

	donors, err := s.userRepo.ListByRole(ctx, domain.RoleDonor)
	if err != nil {
		return nil, fmt.Errorf("failed to get donors: %w", err)
	}

	if location != "" && s.distance != nil {
		if err := geo.Annotate(ctx, s.distance, location, donors); err != nil {
			return nil, fmt.Errorf("failed to compute distances: %w", err)
		}
	}

	return domain.PublicUsers(matching.FindMatches(bloodGroup, donors, s.rt.Today(), location)), nil
}
