package domain

import "strings"

type BloodType string

const (
	BloodAPositive  BloodType = "A+"
	BloodANegative  BloodType = "A-"
	BloodBPositive  BloodType = "B+"
	BloodBNegative  BloodType = "B-"
	BloodABPositive BloodType = "AB+"
	BloodABNegative BloodType = "AB-"
	BloodOPositive  BloodType = "O+"
	BloodONegative  BloodType = "O-"
)

// BloodTypes lists every type in display order.
var BloodTypes = []BloodType{
	BloodAPositive, BloodANegative,
	BloodBPositive, BloodBNegative,
	BloodABPositive, BloodABNegative,
	BloodOPositive, BloodONegative,
}

// compatibleRecipients maps a donor type to every recipient type that can
// safely receive it.
var compatibleRecipients = map[BloodType][]BloodType{
	BloodONegative:  {BloodONegative, BloodOPositive, BloodANegative, BloodAPositive, BloodBNegative, BloodBPositive, BloodABNegative, BloodABPositive},
	BloodOPositive:  {BloodOPositive, BloodAPositive, BloodBPositive, BloodABPositive},
	BloodANegative:  {BloodANegative, BloodAPositive, BloodABNegative, BloodABPositive},
	BloodAPositive:  {BloodAPositive, BloodABPositive},
	BloodBNegative:  {BloodBNegative, BloodBPositive, BloodABNegative, BloodABPositive},
	BloodBPositive:  {BloodBPositive, BloodABPositive},
	BloodABNegative: {BloodABNegative, BloodABPositive},
	BloodABPositive: {BloodABPositive},
}

func (b BloodType) IsValid() bool {
	_, ok := compatibleRecipients[b]
	return ok
}

func (b BloodType) String() string {
	return string(b)
}

// ParseBloodType accepts the canonical notation plus the forms that survive
// URL decoding ("A " for "A+") and a unicode minus sign.
func ParseBloodType(raw string) (BloodType, error) {
	s := strings.TrimLeft(strings.ReplaceAll(raw, "−", "-"), " ")
	if base := strings.TrimRight(s, " "); base != s {
		s = base
		if base != "" && !strings.HasSuffix(base, "+") && !strings.HasSuffix(base, "-") {
			s = base + "+"
		}
	}
	bt := BloodType(strings.ToUpper(strings.TrimSpace(s)))
	if !bt.IsValid() {
		return "", ErrInvalidBloodType
	}
	return bt, nil
}

// CompatibleRecipients returns the recipient types that can receive blood
// from donor. Unknown types yield an empty slice.
func CompatibleRecipients(donor BloodType) []BloodType {
	recipients := compatibleRecipients[donor]
	out := make([]BloodType, len(recipients))
	copy(out, recipients)
	return out
}

// CanReceive reports whether recipient can receive blood from donor.
func CanReceive(recipient, donor BloodType) bool {
	for _, r := range compatibleRecipients[donor] {
		if r == recipient {
			return true
		}
	}
	return false
}

// CompatibleDonors is the inverted view of the table: every donor type whose
// blood recipient can receive.
func CompatibleDonors(recipient BloodType) []BloodType {
	var donors []BloodType
	for _, d := range BloodTypes {
		if CanReceive(recipient, d) {
			donors = append(donors, d)
		}
	}
	return donors
}
