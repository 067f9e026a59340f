package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// maxOccurrencesPerSeries caps expansion of a single series so a corrupt
// rule cannot blow up a feed request. Windows are at most a week, so real
// series never get close.
const maxOccurrencesPerSeries = 1000

// Window is the half-open range [Start, End) a view requests instances for.
// The zero Window means unbounded and is only meaningful for non-recurring
// items (windowless list queries).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Expand materializes the occurrences of one base item inside the window.
// It is pure and restartable: same inputs, same output, no side effects.
//
// Non-recurring items contribute zero or one instance. Recurring items
// contribute one instance per cadence date inside the window, minus deleted
// exceptions, with overrides substituting their stored fields.
func Expand(base Base, exceptions ExceptionSet, window Window) ([]Instance, error) {
	if base.Rule == nil {
		return expandSingle(base, window), nil
	}

	if window.IsZero() {
		return nil, errors.New("expand: window required for recurring items")
	}
	if err := base.Rule.Validate(); err != nil {
		return nil, fmt.Errorf("expand %s %s: %w", base.Kind, base.ID, err)
	}
	if !window.End.After(window.Start) {
		return nil, fmt.Errorf("expand: window end %s not after start %s", window.End, window.Start)
	}

	var (
		starts []time.Time
		err    error
	)
	switch base.Rule.Freq {
	case FreqDaily, FreqWeekly:
		starts, err = cadenceByRRule(*base.Rule, window)
	case FreqMonthly, FreqYearly:
		starts = cadenceByMonths(*base.Rule, window)
	}
	if err != nil {
		return nil, fmt.Errorf("expand %s %s: %w", base.Kind, base.ID, err)
	}

	out := make([]Instance, 0, len(starts))
	for _, occStart := range starts {
		inst, ok := materialize(base, occStart, exceptions)
		if !ok {
			continue
		}
		out = append(out, inst)
	}
	return out, nil
}

func expandSingle(base Base, window Window) []Instance {
	anchor := sortDate(base.End, base.Start, base.CreatedAt)
	if !window.IsZero() && !window.Contains(anchor) {
		return nil
	}

	occDate := anchor
	if base.Start != nil {
		occDate = *base.Start
	}

	return []Instance{{
		BaseID:         base.ID,
		Kind:           base.Kind,
		OccurrenceDate: startOfDay(occDate),
		Start:          base.Start,
		End:            base.End,
		AllDay:         base.AllDay,
		Title:          base.Title,
		Description:    base.Description,
		Status:         base.Status,
		Priority:       base.Priority,
		Complexity:     base.Complexity,
		ProjectID:      base.ProjectID,
		Location:       base.Location,
		Color:          base.Color,
		TagIDs:         base.TagIDs,
		Recurring:      false,
		Cancelled:      base.Status == StatusEventCancelled,
		CreatedAt:      base.CreatedAt,
		SortDate:       anchor,
	}}
}

// cadenceByRRule generates daily/weekly occurrence start times through
// rrule-go. A weekly rule with an empty weekday set falls back to the
// weekday of the rule's start, which is rrule's own default.
func cadenceByRRule(r RecurrenceRule, window Window) ([]time.Time, error) {
	opt := rrule.ROption{
		Freq:     rrule.DAILY,
		Interval: r.Interval,
		Dtstart:  r.Start,
	}
	if r.Freq == FreqWeekly {
		opt.Freq = rrule.WEEKLY
		for _, wd := range r.ByWeekday {
			opt.Byweekday = append(opt.Byweekday, rruleWeekdays[wd])
		}
	}
	if r.Until != nil {
		opt.Until = *r.Until
	}

	rr, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	// Between is inclusive on both ends; back off one nanosecond to keep
	// the window half-open.
	starts := rr.Between(window.Start, window.End.Add(-time.Nanosecond), true)
	if len(starts) > maxOccurrencesPerSeries {
		starts = starts[:maxOccurrencesPerSeries]
	}
	return starts, nil
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// cadenceByMonths handles monthly and yearly rules with day-of-month
// clamping: a series anchored on Jan 31 lands on Feb 28 (29 in leap years).
// RFC 5545 BYMONTHDAY skips short months instead, so this cannot go through
// rrule-go.
func cadenceByMonths(r RecurrenceRule, window Window) []time.Time {
	step := r.Interval
	if r.Freq == FreqYearly {
		step *= 12
	}

	// Start near the window instead of walking from the rule's anchor;
	// clamping can pull a candidate earlier in its month, so step back one.
	k := 0
	if window.Start.After(r.Start) {
		k = monthsBetween(r.Start, window.Start)/step - 1
		if k < 0 {
			k = 0
		}
	}

	var out []time.Time
	for ; len(out) < maxOccurrencesPerSeries; k++ {
		c := addMonthsClamped(r.Start, k*step)
		if !c.Before(window.End) {
			break
		}
		if r.Until != nil && c.After(*r.Until) {
			break
		}
		if c.Before(window.Start) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	total := y*12 + int(m) - 1 + months
	ny, nm := total/12, time.Month(total%12+1)
	if last := daysInMonth(ny, nm); d > last {
		d = last
	}
	hh, mi, ss := t.Clock()
	return time.Date(ny, nm, d, hh, mi, ss, t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// materialize builds the instance for one cadence date, applying the
// exception record for that date if any. Returns false when the occurrence
// is deleted.
func materialize(base Base, occStart time.Time, exceptions ExceptionSet) (Instance, bool) {
	ex, hasEx := exceptions.Lookup(occStart)
	if hasEx && ex.Deleted {
		return Instance{}, false
	}

	start := occStart
	var end *time.Time
	switch {
	case base.AllDay:
		start = startOfDay(occStart)
		e := start.Add(24 * time.Hour)
		end = &e
	case base.Start != nil && base.End != nil:
		e := occStart.Add(base.End.Sub(*base.Start))
		end = &e
	case base.DurationMin > 0:
		e := occStart.Add(time.Duration(base.DurationMin) * time.Minute)
		end = &e
	}

	status := base.Status
	overrideID := ""
	if hasEx && ex.Override != nil {
		ov := ex.Override
		overrideID = ov.ID
		if ov.Status != "" {
			status = ov.Status
		}
		if ov.Start != nil {
			start = *ov.Start
		}
		if ov.End != nil {
			end = ov.End
		}
	}

	startPtr := start
	return Instance{
		BaseID:         base.ID,
		Kind:           base.Kind,
		OccurrenceDate: startOfDay(occStart),
		Start:          &startPtr,
		End:            end,
		AllDay:         base.AllDay,
		Title:          base.Title,
		Description:    base.Description,
		Status:         status,
		Priority:       base.Priority,
		Complexity:     base.Complexity,
		ProjectID:      base.ProjectID,
		Location:       base.Location,
		Color:          base.Color,
		TagIDs:         base.TagIDs,
		Recurring:      true,
		Cancelled:      status == StatusEventCancelled,
		OverrideID:     overrideID,
		CreatedAt:      base.CreatedAt,
		SortDate:       sortDate(end, &startPtr, base.CreatedAt),
	}, true
}
