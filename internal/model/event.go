package model

import (
	"time"

	"github.com/aandrewjuan1/planner-api/internal/schedule"
)

type EventStatus string

const (
	EventStatusScheduled EventStatus = schedule.StatusEventScheduled
	EventStatusTentative EventStatus = schedule.StatusEventTentative
	EventStatusOngoing   EventStatus = schedule.StatusEventOngoing
	EventStatusCompleted EventStatus = schedule.StatusEventCompleted
	EventStatusCancelled EventStatus = schedule.StatusEventCancelled
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusScheduled, EventStatusTentative, EventStatusOngoing,
		EventStatusCompleted, EventStatusCancelled:
		return true
	default:
		return false
	}
}

type Event struct {
	ID          string                   `json:"id"`
	UserID      string                   `json:"user_id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Location    string                   `json:"location"`
	Color       string                   `json:"color"`
	AllDay      bool                     `json:"all_day"`
	Status      EventStatus              `json:"status"`
	StartAt     *time.Time               `json:"start_at,omitempty"`
	EndAt       *time.Time               `json:"end_at,omitempty"`
	Recurrence  *schedule.RecurrenceRule `json:"recurrence,omitempty"`
	TagIDs      []string                 `json:"tag_ids"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}
