package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blood-connect/internal/domain"
)

func TestDefault(t *testing.T) {
	seed, err := Default(bcrypt.MinCost)
	require.NoError(t, err)

	assert.Len(t, seed.Users, 9)
	assert.Len(t, seed.BloodRequests, 3)
	assert.Len(t, seed.Inventory, 8)
	assert.Len(t, seed.Camps, 3)
	assert.Len(t, seed.Bookings, 2)
	assert.Len(t, seed.Notifications, 3)

	admin := seed.Users[2]
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))

	donor := seed.Users[0]
	require.NotNil(t, donor.NextEligibleDate)
	assert.Equal(t, "2025-02-15", donor.NextEligibleDate.Format(domain.DateLayout))
	assert.Equal(t, domain.BloodOPositive, donor.BloodGroup)
}

func TestDefault_ReclassifiesInventory(t *testing.T) {
	seed, err := Default(bcrypt.MinCost)
	require.NoError(t, err)

	for _, inv := range seed.Inventory {
		assert.Equal(t, domain.Classify(inv.Units), inv.Status, inv.ID)
	}
	// O- holds 8 units, which is below the critical threshold.
	assert.Equal(t, domain.StockCritical, seed.Inventory[1].Status)
}

func TestParse_RejectsUnknownRole(t *testing.T) {
	_, err := Parse([]byte("users:\n  - id: X\n    role: superuser\n"), bcrypt.MinCost)
	assert.Error(t, err)
}

func TestParse_RejectsBadBloodGroup(t *testing.T) {
	_, err := Parse([]byte("users:\n  - id: X\n    role: donor\n    blood_group: C+\n"), bcrypt.MinCost)
	assert.ErrorIs(t, err, domain.ErrInvalidBloodType)
}
