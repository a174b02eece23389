package domain

import "time"

type Urgency string

const (
	UrgencyNormal    Urgency = "Normal"
	UrgencyUrgent    Urgency = "Urgent"
	UrgencyEmergency Urgency = "Emergency"
)

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyNormal, UrgencyUrgent, UrgencyEmergency:
		return true
	default:
		return false
	}
}

// Elevated urgencies trigger donor matching as soon as the request is created.
func (u Urgency) Elevated() bool {
	return u == UrgencyUrgent || u == UrgencyEmergency
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "Pending"
	RequestMatched   RequestStatus = "Matched"
	RequestInProcess RequestStatus = "In Process"
	RequestCompleted RequestStatus = "Completed"
	RequestCancelled RequestStatus = "Cancelled"
)

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestPending:   {RequestMatched, RequestCancelled},
	RequestMatched:   {RequestInProcess},
	RequestInProcess: {RequestCompleted},
}

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestMatched, RequestInProcess, RequestCompleted, RequestCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo implements the strict lifecycle
// Pending -> Matched -> In Process -> Completed, with Pending -> Cancelled.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s RequestStatus) IsTerminal() bool {
	return s == RequestCompleted || s == RequestCancelled
}

type BloodRequest struct {
	ID            string        `json:"id" yaml:"id"`
	RecipientID   string        `json:"recipient_id" yaml:"recipient_id"`
	RecipientName string        `json:"recipient_name" yaml:"recipient_name"`
	BloodGroup    BloodType     `json:"blood_group" yaml:"blood_group"`
	Quantity      int           `json:"quantity" yaml:"quantity"`
	Urgency       Urgency       `json:"urgency" yaml:"urgency"`
	Hospital      string        `json:"hospital" yaml:"hospital"`
	Status        RequestStatus `json:"status" yaml:"status"`
	RequestDate   time.Time     `json:"request_date" yaml:"request_date"`
	MatchedDonors []string      `json:"matched_donors,omitempty" yaml:"matched_donors,omitempty"`
	DoctorNote    *string       `json:"doctor_note,omitempty" yaml:"doctor_note,omitempty"`
	ContactNumber *string       `json:"contact_number,omitempty" yaml:"contact_number,omitempty"`
	RequiredBy    *time.Time    `json:"required_by,omitempty" yaml:"required_by,omitempty"`
	UpdatedAt     *time.Time    `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

type CreateBloodRequestInput struct {
	RecipientID   string     `json:"recipient_id" validate:"required"`
	RecipientName string     `json:"recipient_name" validate:"required"`
	BloodGroup    BloodType  `json:"blood_group" validate:"required,bloodtype"`
	Quantity      int        `json:"quantity" validate:"required,gt=0"`
	Urgency       Urgency    `json:"urgency" validate:"required,oneof=Normal Urgent Emergency"`
	Hospital      string     `json:"hospital" validate:"required,min=2"`
	DoctorNote    *string    `json:"doctor_note,omitempty" validate:"omitempty,max=500"`
	ContactNumber *string    `json:"contact_number,omitempty" validate:"omitempty,max=32"`
	RequiredBy    *time.Time `json:"required_by,omitempty"`
}

type UpdateRequestStatusInput struct {
	Status RequestStatus `json:"status" validate:"required,requeststatus"`
}

// MatchResult is the outcome of an auto-match run. Matched is false both
// when the request does not exist and when no donor qualified.
type MatchResult struct {
	RequestID string   `json:"request_id"`
	Matched   bool     `json:"matched"`
	DonorIDs  []string `json:"donor_ids"`
	Donors    []User   `json:"donors"`
}
