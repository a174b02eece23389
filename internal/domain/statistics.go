package domain

type Statistics struct {
	TotalRequests      int64       `json:"total_requests"`
	PendingRequests    int64       `json:"pending_requests"`
	CompletedRequests  int64       `json:"completed_requests"`
	TotalDonors        int64       `json:"total_donors"`
	AvailableDonors    int64       `json:"available_donors"`
	LowStockTypes      []BloodType `json:"low_stock_types"`
	CriticalStockTypes []BloodType `json:"critical_stock_types"`
}

type DonorStats struct {
	TotalDonations   int     `json:"total_donations"`
	LastDonation     *string `json:"last_donation"`
	NextEligibleDate *string `json:"next_eligible_date"`
	LivesSaved       int     `json:"lives_saved"`
	UpcomingCamps    int     `json:"upcoming_camps"`
}

// LivesSavedPerDonation is the rule of thumb shown on donor dashboards.
const LivesSavedPerDonation = 3
