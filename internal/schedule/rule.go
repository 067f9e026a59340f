package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidRule marks a recurrence rule that fails validation. Rules are
// validated at save time; the expander still checks so that a corrupt row
// degrades to a skipped item instead of a bad feed.
var ErrInvalidRule = errors.New("invalid recurrence rule")

type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
	FreqYearly  Frequency = "yearly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FreqDaily, FreqWeekly, FreqMonthly, FreqYearly:
		return true
	default:
		return false
	}
}

func ParseFrequency(input string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(input)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: unknown frequency %q", ErrInvalidRule, input)
	}
	return f, nil
}

// RecurrenceRule defines the cadence of a recurring series.
// ByWeekday is only meaningful for weekly rules; an empty set falls back to
// the weekday of Start.
type RecurrenceRule struct {
	Freq      Frequency      `json:"freq"`
	Interval  int            `json:"interval"`
	ByWeekday []time.Weekday `json:"by_weekday,omitempty"`
	Start     time.Time      `json:"start"`
	Until     *time.Time     `json:"until,omitempty"`
}

func (r RecurrenceRule) Validate() error {
	if !r.Freq.IsValid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidRule, r.Freq)
	}
	if r.Interval < 1 {
		return fmt.Errorf("%w: interval must be >= 1, got %d", ErrInvalidRule, r.Interval)
	}
	if len(r.ByWeekday) > 0 && r.Freq != FreqWeekly {
		return fmt.Errorf("%w: by_weekday is only allowed for weekly rules", ErrInvalidRule)
	}
	for _, wd := range r.ByWeekday {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidRule, wd)
		}
	}
	if r.Start.IsZero() {
		return fmt.Errorf("%w: start datetime is required", ErrInvalidRule)
	}
	if r.Until != nil && r.Until.Before(r.Start) {
		return fmt.Errorf("%w: until precedes start", ErrInvalidRule)
	}
	return nil
}
