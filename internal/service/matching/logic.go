package matching

import (
	"sort"
	"strings"
	"time"

	"blood-connect/internal/domain"
)

// EligibleForMatching is the predicate used by auto-match and compatible
// donor search: the donor's type can be given to requested, the donor is
// available, and the post-donation cooldown has ended.
func EligibleForMatching(d *domain.User, requested domain.BloodType, today time.Time) bool {
	return domain.CanReceive(requested, d.BloodGroup) &&
		d.Available &&
		d.IsPastCooldown(today)
}

// EligibleForRequestAlert picks donors to alert about a new request. It is
// intentionally narrower than EligibleForMatching: exact type and available,
// with no cooldown check.
func EligibleForRequestAlert(d *domain.User, requested domain.BloodType) bool {
	return d.BloodGroup == requested && d.Available
}

// LocationMatches is a case-insensitive substring test. An empty filter
// matches everything.
func LocationMatches(location, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(location), strings.ToLower(filter))
}

// FindMatches returns the donors eligible for a request of the given type,
// ordered by SortCandidates. An empty result is a valid outcome.
func FindMatches(requested domain.BloodType, donors []domain.User, today time.Time, location string) []domain.User {
	matches := []domain.User{}
	for i := range donors {
		d := &donors[i]
		if !EligibleForMatching(d, requested, today) {
			continue
		}
		if !LocationMatches(d.Location, location) {
			continue
		}
		matches = append(matches, *d)
	}
	SortCandidates(matches)
	return matches
}

// SortCandidates orders by distance when every candidate carries one.
// Otherwise donors who have waited longest since their last donation come
// first, with never-donated donors ahead of everyone. The sort is stable.
func SortCandidates(donors []domain.User) {
	if allHaveDistance(donors) {
		sort.SliceStable(donors, func(i, j int) bool {
			return *donors[i].Distance < *donors[j].Distance
		})
		return
	}

	sort.SliceStable(donors, func(i, j int) bool {
		a, b := donors[i].LastDonationDate, donors[j].LastDonationDate
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return true
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})
}

func allHaveDistance(donors []domain.User) bool {
	if len(donors) == 0 {
		return false
	}
	for i := range donors {
		if donors[i].Distance == nil {
			return false
		}
	}
	return true
}

// IDs extracts donor ids in order.
func IDs(donors []domain.User) []string {
	ids := make([]string, len(donors))
	for i := range donors {
		ids[i] = donors[i].ID
	}
	return ids
}

// Filter holds the optional exact-match criteria of a donor search.
type Filter struct {
	BloodGroup *domain.BloodType
	Location   string
	Available  *bool
}

func (f Filter) Accepts(d *domain.User) bool {
	if f.BloodGroup != nil && d.BloodGroup != *f.BloodGroup {
		return false
	}
	if f.Available != nil && d.Available != *f.Available {
		return false
	}
	return LocationMatches(d.Location, f.Location)
}

func (f Filter) Apply(donors []domain.User) []domain.User {
	out := []domain.User{}
	for i := range donors {
		if f.Accepts(&donors[i]) {
			out = append(out, donors[i])
		}
	}
	return out
}
