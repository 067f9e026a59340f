package model

import (
	"time"

	"github.com/aandrewjuan1/planner-api/internal/schedule"
)

// InstanceOverride is the lazily-created row backing one edited occurrence
// of a recurring series. It exists only once an occurrence has been mutated
// (status change, move); untouched occurrences stay ephemeral.
type InstanceOverride struct {
	ID             string        `json:"id"`
	Kind           schedule.Kind `json:"kind"`
	SeriesID       string        `json:"series_id"`
	OccurrenceDate time.Time     `json:"occurrence_date"`
	Status         string        `json:"status"`
	StartAt        *time.Time    `json:"start_at,omitempty"`
	EndAt          *time.Time    `json:"end_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Exception is the per-date record against a recurring series. Unique per
// (kind, series, date) at the schema level. A deleted exception suppresses
// the occurrence; otherwise Override substitutes its stored fields.
type Exception struct {
	Kind           schedule.Kind     `json:"kind"`
	SeriesID       string            `json:"series_id"`
	OccurrenceDate time.Time         `json:"occurrence_date"`
	Deleted        bool              `json:"deleted"`
	Override       *InstanceOverride `json:"override,omitempty"`
}

// ExceptionSets converts repository rows into the date-keyed sets the
// expander consumes, grouped by series ID.
func ExceptionSets(rows []Exception) map[string]schedule.ExceptionSet {
	out := make(map[string]schedule.ExceptionSet)
	for _, row := range rows {
		set, ok := out[row.SeriesID]
		if !ok {
			set = make(schedule.ExceptionSet)
			out[row.SeriesID] = set
		}
		ex := schedule.Exception{Deleted: row.Deleted}
		if row.Override != nil {
			ex.Override = &schedule.Override{
				ID:     row.Override.ID,
				Status: row.Override.Status,
				Start:  row.Override.StartAt,
				End:    row.Override.EndAt,
			}
		}
		set[schedule.DateKey(row.OccurrenceDate)] = ex
	}
	return out
}
