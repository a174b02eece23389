package blood

import (
	"context"

	"blood-connect/internal/domain"
)

// Statistics scans the collections on every call.
func (s *service) Statistics(ctx context.Context) (*domain.Statistics, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	donors, err := s.userRepo.ListByRole(ctx, domain.RoleDonor)
	if err != nil {
		return nil, err
	}
	inventory, err := s.inventoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.Statistics{
		TotalRequests:      int64(len(requests)),
		TotalDonors:        int64(len(donors)),
		LowStockTypes:      []domain.BloodType{},
		CriticalStockTypes: []domain.BloodType{},
	}

	for _, r := range requests {
		switch r.Status {
		case domain.RequestPending:
			stats.PendingRequests++
		case domain.RequestCompleted:
			stats.CompletedRequests++
		}
	}

	for _, d := range donors {
		if d.Available {
			stats.AvailableDonors++
		}
	}

	for _, inv := range inventory {
		switch domain.Classify(inv.Units) {
		case domain.StockLow:
			stats.LowStockTypes = append(stats.LowStockTypes, inv.BloodGroup)
		case domain.StockCritical:
			stats.CriticalStockTypes = append(stats.CriticalStockTypes, inv.BloodGroup)
		}
	}

	return stats, nil
}
