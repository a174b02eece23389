package donor

import (
	"fmt"
	"sync"
	"time"

	"github.com/teambition/rrule-go"
)

// DefaultCooldownRule is the three-month wait between whole-blood donations.
const DefaultCooldownRule = "FREQ=MONTHLY;INTERVAL=3"

// Cooldown computes the next date a donor may give blood again from a
// recurrence rule anchored at the donation date.
type Cooldown struct {
	mu   sync.Mutex
	rule *rrule.RRule
}

func NewCooldown(rule string) (*Cooldown, error) {
	if rule == "" {
		rule = DefaultCooldownRule
	}
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cooldown rule: %w", err)
	}
	return &Cooldown{rule: r}, nil
}

// NextEligible returns the first occurrence of the rule strictly after from.
// Monthly and yearly rules are anchored on the first of the month and the
// day offset is added back, so Nov 30 + 3 months rolls over to early March
// like calendar addition instead of skipping to May.
func (c *Cooldown) NextEligible(from time.Time) time.Time {
	if c == nil || c.rule == nil {
		return from.AddDate(0, 3, 0)
	}

	anchor, offset := from, 0
	switch c.rule.OrigOptions.Freq {
	case rrule.MONTHLY, rrule.YEARLY:
		anchor = time.Date(from.Year(), from.Month(), 1, from.Hour(), from.Minute(), from.Second(), 0, from.Location())
		offset = from.Day() - 1
	}

	// DTStart mutates the rule, so occurrences are computed one at a time.
	c.mu.Lock()
	c.rule.DTStart(anchor)
	next := c.rule.After(anchor, false)
	c.mu.Unlock()

	if next.IsZero() {
		return from.AddDate(0, 3, 0)
	}
	return next.AddDate(0, 0, offset)
}
