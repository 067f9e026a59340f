package service

import (
	"fmt"
	"time"

	"github.com/aandrewjuan1/planner-api/internal/model"
	"github.com/aandrewjuan1/planner-api/internal/schedule"
)

// taskBase and eventBase snapshot persisted items into the renderer-agnostic
// shape the expander consumes.

func taskBase(t model.Task) schedule.Base {
	projectID := ""
	if t.ProjectID != nil {
		projectID = *t.ProjectID
	}
	return schedule.Base{
		ID:          t.ID,
		Kind:        schedule.KindTask,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Complexity:  string(t.Complexity),
		ProjectID:   projectID,
		DurationMin: t.DurationMin,
		Start:       t.StartAt,
		End:         t.EndAt,
		TagIDs:      t.TagIDs,
		CreatedAt:   t.CreatedAt,
		Rule:        t.Recurrence,
	}
}

func eventBase(e model.Event) schedule.Base {
	return schedule.Base{
		ID:          e.ID,
		Kind:        schedule.KindEvent,
		Title:       e.Title,
		Description: e.Description,
		Status:      string(e.Status),
		Location:    e.Location,
		Color:       e.Color,
		AllDay:      e.AllDay,
		Start:       e.StartAt,
		End:         e.EndAt,
		TagIDs:      e.TagIDs,
		CreatedAt:   e.CreatedAt,
		Rule:        e.Recurrence,
	}
}

// parseDateTime parses an RFC3339 string into *time.Time. Returns nil if
// input is nil.
func parseDateTime(field string, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s format, expected RFC3339", ErrInvalidInput, field)
	}
	return &t, nil
}

// RecurrenceInput is the transport shape of a recurrence rule.
type RecurrenceInput struct {
	Freq     string  `json:"freq"`
	Interval int     `json:"interval"`
	Weekdays []int   `json:"weekdays,omitempty"`
	Start    string  `json:"start"`
	Until    *string `json:"until,omitempty"`
}

// parseRecurrence validates and converts a recurrence input. Malformed
// rules are rejected here, at save time; they never reach the expander.
func parseRecurrence(in *RecurrenceInput) (*schedule.RecurrenceRule, error) {
	if in == nil {
		return nil, nil
	}
	freq, err := schedule.ParseFrequency(in.Freq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	start, err := time.Parse(time.RFC3339, in.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid recurrence start, expected RFC3339", ErrInvalidInput)
	}
	rule := &schedule.RecurrenceRule{
		Freq:     freq,
		Interval: in.Interval,
		Start:    start,
	}
	for _, wd := range in.Weekdays {
		if wd < 0 || wd > 6 {
			return nil, fmt.Errorf("%w: weekday %d out of range 0-6", ErrInvalidInput, wd)
		}
		rule.ByWeekday = append(rule.ByWeekday, time.Weekday(wd))
	}
	if in.Until != nil {
		until, err := time.Parse(time.RFC3339, *in.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid recurrence until, expected RFC3339", ErrInvalidInput)
		}
		rule.Until = &until
	}
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return rule, nil
}
