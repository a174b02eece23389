package geo

import (
	"context"
	"hash/fnv"
	"strings"

	"blood-connect/internal/domain"
)

// DistanceProvider estimates the distance in kilometres between two
// free-text locations.
type DistanceProvider interface {
	Distance(ctx context.Context, from, to string) (float64, error)
}

const (
	minHashKm = 1.0
	maxHashKm = 15.0
)

// HashDistance is a deterministic stand-in for a geocoding service. The same
// pair of locations always yields the same distance in [1, 15) km, and the
// pair is unordered.
type HashDistance struct{}

func NewHashDistance() HashDistance {
	return HashDistance{}
}

func (HashDistance) Distance(_ context.Context, from, to string) (float64, error) {
	a := strings.ToLower(strings.TrimSpace(from))
	b := strings.ToLower(strings.TrimSpace(to))
	if a > b {
		a, b = b, a
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(a))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(b))

	// One decimal place, like the mock distances the dashboards show.
	tenths := h.Sum64() % uint64((maxHashKm-minHashKm)*10)
	return minHashKm + float64(tenths)/10, nil
}

// Annotate sets Distance on each donor relative to origin. Donors with no
// location are left without a distance.
func Annotate(ctx context.Context, p DistanceProvider, origin string, donors []domain.User) error {
	for i := range donors {
		if donors[i].Location == "" {
			donors[i].Distance = nil
			continue
		}
		d, err := p.Distance(ctx, origin, donors[i].Location)
		if err != nil {
			return err
		}
		donors[i].Distance = &d
	}
	return nil
}

// WithinRadius keeps donors whose Distance is set and at most maxKm.
func WithinRadius(donors []domain.User, maxKm float64) []domain.User {
	out := []domain.User{}
	for _, d := range donors {
		if d.Distance != nil && *d.Distance <= maxKm {
			out = append(out, d)
		}
	}
	return out
}
