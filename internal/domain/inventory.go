package domain

import "time"

type InventoryStatus string

const (
	StockAvailable InventoryStatus = "Available"
	StockLow       InventoryStatus = "Low Stock"
	StockCritical  InventoryStatus = "Critical"
)

const (
	CriticalStockThreshold = 10
	LowStockThreshold      = 20
)

// Classify maps an on-hand unit count to its stock tier.
func Classify(units int) InventoryStatus {
	switch {
	case units < CriticalStockThreshold:
		return StockCritical
	case units < LowStockThreshold:
		return StockLow
	default:
		return StockAvailable
	}
}

// Severity orders tiers so a drop can be detected: Available < Low Stock < Critical.
func (s InventoryStatus) Severity() int {
	switch s {
	case StockCritical:
		return 2
	case StockLow:
		return 1
	default:
		return 0
	}
}

type BloodInventory struct {
	ID         string          `json:"id" yaml:"id"`
	BloodGroup BloodType       `json:"blood_group" yaml:"blood_group"`
	Units      int             `json:"units" yaml:"units"`
	Status     InventoryStatus `json:"status" yaml:"status"`
	Location   string          `json:"location" yaml:"location"`
	ExpiryDate time.Time       `json:"expiry_date" yaml:"expiry_date"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// SetUnits stores the new count and recomputes the tier from it.
func (i *BloodInventory) SetUnits(units int) {
	i.Units = units
	i.Status = Classify(units)
}

type AdjustDirection string

const (
	AdjustAdd    AdjustDirection = "add"
	AdjustRemove AdjustDirection = "remove"
)

func (d AdjustDirection) IsValid() bool {
	return d == AdjustAdd || d == AdjustRemove
}

type AdjustInventoryInput struct {
	BloodGroup BloodType       `json:"blood_group" validate:"required,bloodtype"`
	Units      int             `json:"units" validate:"required,gt=0"`
	Direction  AdjustDirection `json:"direction" validate:"required,oneof=add remove"`
}

type UpdateInventoryInput struct {
	Units      *int       `json:"units,omitempty" validate:"omitempty,gte=0"`
	Location   *string    `json:"location,omitempty" validate:"omitempty,min=2"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}
