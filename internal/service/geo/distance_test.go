package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blood-connect/internal/domain"
)

func TestHashDistance_DeterministicAndSymmetric(t *testing.T) {
	ctx := context.Background()
	p := NewHashDistance()

	d1, err := p.Distance(ctx, "Delhi", "Mumbai")
	require.NoError(t, err)
	d2, _ := p.Distance(ctx, "Delhi", "Mumbai")
	d3, _ := p.Distance(ctx, " mumbai ", "DELHI")

	assert.Equal(t, d1, d2)
	assert.Equal(t, d1, d3)
}

func TestHashDistance_Range(t *testing.T) {
	ctx := context.Background()
	p := NewHashDistance()
	places := []string{"Delhi", "Mumbai", "Chennai", "Bangalore", "Hyderabad", "Pune", "", "Kolkata"}

	for _, a := range places {
		for _, b := range places {
			d, err := p.Distance(ctx, a, b)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, d, 1.0)
			assert.Less(t, d, 15.0)
		}
	}
}

type fixedDistance map[string]float64

func (f fixedDistance) Distance(_ context.Context, _, to string) (float64, error) {
	d, ok := f[to]
	if !ok {
		return 0, errors.New("unknown location")
	}
	return d, nil
}

func TestAnnotateAndWithinRadius(t *testing.T) {
	ctx := context.Background()
	donors := []domain.User{
		{ID: "a", Location: "Near"},
		{ID: "b", Location: "Far"},
		{ID: "c"},
	}

	require.NoError(t, Annotate(ctx, fixedDistance{"Near": 2, "Far": 12}, "origin", donors))
	require.NotNil(t, donors[0].Distance)
	assert.Equal(t, 2.0, *donors[0].Distance)
	assert.Nil(t, donors[2].Distance)

	within := WithinRadius(donors, 10)
	require.Len(t, within, 1)
	assert.Equal(t, "a", within[0].ID)
}

func TestAnnotate_PropagatesProviderError(t *testing.T) {
	donors := []domain.User{{ID: "a", Location: "Nowhere"}}
	err := Annotate(context.Background(), fixedDistance{}, "origin", donors)
	assert.Error(t, err)
}
