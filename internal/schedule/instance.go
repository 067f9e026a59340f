package schedule

import "time"

// Kind discriminates the two item kinds that flow through the feed.
type Kind string

const (
	KindTask  Kind = "task"
	KindEvent Kind = "event"
)

func (k Kind) IsValid() bool {
	return k == KindTask || k == KindEvent
}

// Base is the renderer-agnostic snapshot of a persisted item that the
// expander works from. The feed layer builds one per accessible task/event;
// the expander never touches storage.
type Base struct {
	ID          string
	Kind        Kind
	Title       string
	Description string
	Status      string
	Priority    string // tasks only, empty for events
	Complexity  string // tasks only
	ProjectID   string // tasks only
	Location    string // events only
	Color       string // events only
	AllDay      bool
	DurationMin int
	Start       *time.Time
	End         *time.Time
	TagIDs      []string
	CreatedAt   time.Time
	Rule        *RecurrenceRule
}

// Instance is one concrete dated occurrence of a base item. Instances are
// computed fresh on every feed assembly and never mutated in place; status
// changes go back through the persisted override row or the base item.
type Instance struct {
	BaseID         string     `json:"base_id"`
	Kind           Kind       `json:"kind"`
	OccurrenceDate time.Time  `json:"occurrence_date"`
	Start          *time.Time `json:"start,omitempty"`
	End            *time.Time `json:"end,omitempty"`
	AllDay         bool       `json:"all_day"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority,omitempty"`
	Complexity     string     `json:"complexity,omitempty"`
	ProjectID      string     `json:"project_id,omitempty"`
	Location       string     `json:"location,omitempty"`
	Color          string     `json:"color,omitempty"`
	TagIDs         []string   `json:"tag_ids,omitempty"`
	Recurring      bool       `json:"recurring"`
	Cancelled      bool       `json:"-"`
	OverrideID     string     `json:"override_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`

	// SortDate is the uniform placement key: end if present, else start,
	// else the creation timestamp.
	SortDate time.Time `json:"sort_date"`
}

func sortDate(end, start *time.Time, createdAt time.Time) time.Time {
	if end != nil {
		return *end
	}
	if start != nil {
		return *start
	}
	return createdAt
}
