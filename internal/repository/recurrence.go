package repository

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/aandrewjuan1/planner-api/internal/schedule"
)

// recurrenceCols holds the nullable recurrence columns shared by the tasks
// and events tables.
type recurrenceCols struct {
	freq     sql.NullString
	interval sql.NullInt64
	weekdays pq.Int64Array
	start    sql.NullTime
	until    sql.NullTime
}

func (c *recurrenceCols) dests() []any {
	return []any{&c.freq, &c.interval, &c.weekdays, &c.start, &c.until}
}

// rule rebuilds the rule from scanned columns; nil when the item is not
// recurring.
func (c *recurrenceCols) rule() *schedule.RecurrenceRule {
	if !c.freq.Valid || !c.start.Valid {
		return nil
	}
	r := &schedule.RecurrenceRule{
		Freq:     schedule.Frequency(c.freq.String),
		Interval: int(c.interval.Int64),
		Start:    c.start.Time,
	}
	for _, wd := range c.weekdays {
		r.ByWeekday = append(r.ByWeekday, time.Weekday(wd))
	}
	if c.until.Valid {
		u := c.until.Time
		r.Until = &u
	}
	return r
}

// recurrenceArgs flattens a rule into insert/update arguments in column
// order freq, interval, weekdays, start, until.
func recurrenceArgs(r *schedule.RecurrenceRule) []any {
	if r == nil {
		return []any{nil, nil, pq.Int64Array(nil), nil, nil}
	}
	wds := make(pq.Int64Array, 0, len(r.ByWeekday))
	for _, wd := range r.ByWeekday {
		wds = append(wds, int64(wd))
	}
	return []any{string(r.Freq), r.Interval, wds, r.Start, r.Until}
}
