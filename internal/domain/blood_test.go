package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompatibleRecipients_Sizes(t *testing.T) {
	expected := map[BloodType]int{
		BloodONegative:  8,
		BloodOPositive:  4,
		BloodANegative:  4,
		BloodAPositive:  2,
		BloodBNegative:  4,
		BloodBPositive:  2,
		BloodABNegative: 2,
		BloodABPositive: 1,
	}

	for _, bt := range BloodTypes {
		t.Run(string(bt), func(t *testing.T) {
			recipients := CompatibleRecipients(bt)
			assert.Len(t, recipients, expected[bt])
			assert.GreaterOrEqual(t, len(recipients), 1)
			assert.LessOrEqual(t, len(recipients), 8)
			assert.Contains(t, recipients, bt, "every type can receive its own type")
		})
	}
}

func TestCompatibleRecipients_UniversalDonor(t *testing.T) {
	recipients := CompatibleRecipients(BloodONegative)
	assert.ElementsMatch(t, BloodTypes, recipients)
}

func TestCompatibleRecipients_ReturnsCopy(t *testing.T) {
	recipients := CompatibleRecipients(BloodONegative)
	recipients[0] = BloodABPositive

	assert.Equal(t, BloodONegative, CompatibleRecipients(BloodONegative)[0])
}

func TestCompatibleRecipients_Unknown(t *testing.T) {
	assert.Empty(t, CompatibleRecipients(BloodType("C+")))
}

func TestCompatibleDonors(t *testing.T) {
	assert.ElementsMatch(t, []BloodType{BloodONegative}, CompatibleDonors(BloodONegative))
	assert.ElementsMatch(t, BloodTypes, CompatibleDonors(BloodABPositive))
	assert.ElementsMatch(t,
		[]BloodType{BloodAPositive, BloodANegative, BloodOPositive, BloodONegative},
		CompatibleDonors(BloodAPositive))
}

func TestCompatibleDonors_OnlyABPositiveCanReceiveFromABPositive(t *testing.T) {
	var recipientsOfABPos []BloodType
	for _, recipient := range BloodTypes {
		if CanReceive(recipient, BloodABPositive) {
			recipientsOfABPos = append(recipientsOfABPos, recipient)
		}
	}
	assert.Equal(t, []BloodType{BloodABPositive}, recipientsOfABPos)
}

func TestCanReceive(t *testing.T) {
	tests := []struct {
		recipient BloodType
		donor     BloodType
		want      bool
	}{
		{BloodABPositive, BloodONegative, true},
		{BloodONegative, BloodOPositive, false},
		{BloodAPositive, BloodANegative, true},
		{BloodANegative, BloodAPositive, false},
		{BloodBPositive, BloodAPositive, false},
		{BloodABNegative, BloodBNegative, true},
		{BloodOPositive, BloodABPositive, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.recipient)+"<-"+string(tt.donor), func(t *testing.T) {
			assert.Equal(t, tt.want, CanReceive(tt.recipient, tt.donor))
		})
	}
}

func TestCanReceive_AgreesWithInvertedView(t *testing.T) {
	for _, recipient := range BloodTypes {
		donors := CompatibleDonors(recipient)
		for _, donor := range BloodTypes {
			assert.Equal(t, CanReceive(recipient, donor), containsType(donors, donor),
				"recipient %s donor %s", recipient, donor)
		}
	}
}

func TestParseBloodType(t *testing.T) {
	tests := []struct {
		raw  string
		want BloodType
	}{
		{"A+", BloodAPositive},
		{"ab-", BloodABNegative},
		{" O- ", BloodONegative},
		{"AB ", BloodABPositive},
		{"B−", BloodBNegative},
	}
	for _, tt := range tests {
		got, err := ParseBloodType(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseBloodType("Z+")
	assert.ErrorIs(t, err, ErrInvalidBloodType)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseBloodType("")
	assert.Error(t, err)
}

func containsType(types []BloodType, bt BloodType) bool {
	for _, t := range types {
		if t == bt {
			return true
		}
	}
	return false
}
