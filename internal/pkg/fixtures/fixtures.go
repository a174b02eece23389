package fixtures

import (
	_ "embed"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"blood-connect/internal/domain"
	"blood-connect/internal/repository"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// seedUser carries the plaintext password that is hashed during load.
type seedUser struct {
	domain.User `yaml:",inline"`
	Password    string `yaml:"password"`
}

type document struct {
	Users         []seedUser              `yaml:"users"`
	BloodRequests []domain.BloodRequest   `yaml:"blood_requests"`
	Inventory     []domain.BloodInventory `yaml:"blood_inventory"`
	Camps         []domain.DonationCamp   `yaml:"donation_camps"`
	Bookings      []domain.CampBooking    `yaml:"camp_bookings"`
	Notifications []domain.Notification   `yaml:"notifications"`
}

// Default returns the built-in demo data set. cost is the bcrypt cost used
// for seeded passwords.
func Default(cost int) (*repository.SeedData, error) {
	return Parse(defaultFixtures, cost)
}

// LoadFile reads a fixtures file in the same format as the built-in one.
func LoadFile(path string, cost int) (*repository.SeedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, cost)
}

func Parse(data []byte, cost int) (*repository.SeedData, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	seed := &repository.SeedData{
		BloodRequests: doc.BloodRequests,
		Inventory:     doc.Inventory,
		Camps:         doc.Camps,
		Bookings:      doc.Bookings,
		Notifications: doc.Notifications,
	}

	for _, su := range doc.Users {
		u := su.User
		if !u.Role.IsValid() {
			return nil, fmt.Errorf("fixture user %s has unknown role %q", u.ID, u.Role)
		}
		if u.BloodGroup != "" && !u.BloodGroup.IsValid() {
			return nil, fmt.Errorf("fixture user %s: %w", u.ID, domain.ErrInvalidBloodType)
		}
		if su.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), cost)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password for %s: %w", u.ID, err)
			}
			u.PasswordHash = string(hash)
		}
		seed.Users = append(seed.Users, u)
	}

	// Stored tiers are never trusted; they are derived from units.
	for i := range seed.Inventory {
		seed.Inventory[i].SetUnits(seed.Inventory[i].Units)
	}

	return seed, nil
}
