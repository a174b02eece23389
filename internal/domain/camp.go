package domain

import "time"

type DonationCamp struct {
	ID             string     `json:"id" yaml:"id"`
	Name           string     `json:"name" yaml:"name"`
	Location       string     `json:"location" yaml:"location"`
	Date           time.Time  `json:"date" yaml:"date"`
	Time           string     `json:"time" yaml:"time"`
	Organizer      string     `json:"organizer" yaml:"organizer"`
	SlotsAvailable int        `json:"slots_available" yaml:"slots_available"`
	TotalSlots     int        `json:"total_slots" yaml:"total_slots"`
	CreatedAt      *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// TakeSlot consumes one slot. It never drives capacity below zero.
func (c *DonationCamp) TakeSlot() error {
	if c.SlotsAvailable <= 0 {
		return ErrNoSlotsAvailable
	}
	c.SlotsAvailable--
	return nil
}

// ReleaseSlot returns one slot, capped at TotalSlots.
func (c *DonationCamp) ReleaseSlot() {
	if c.SlotsAvailable < c.TotalSlots {
		c.SlotsAvailable++
	}
}

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
	BookingCompleted BookingStatus = "Completed"
)

type CampBooking struct {
	ID          string        `json:"id" yaml:"id"`
	UserID      string        `json:"user_id" yaml:"user_id"`
	CampID      string        `json:"camp_id" yaml:"camp_id"`
	BookingDate time.Time     `json:"booking_date" yaml:"booking_date"`
	Status      BookingStatus `json:"status" yaml:"status"`
	SlotTime    *string       `json:"slot_time,omitempty" yaml:"slot_time,omitempty"`
}

type CreateCampInput struct {
	Name       string    `json:"name" validate:"required,min=3"`
	Location   string    `json:"location" validate:"required"`
	Date       time.Time `json:"date" validate:"required"`
	Time       string    `json:"time" validate:"required"`
	Organizer  string    `json:"organizer" validate:"required"`
	TotalSlots int       `json:"total_slots" validate:"required,gt=0"`
}

type BookSlotInput struct {
	SlotTime *string `json:"slot_time,omitempty" validate:"omitempty,max=32"`
}
