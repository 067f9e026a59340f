package schedule

import "time"

// DateKeyLayout keys exceptions and overrides by calendar date. One exception
// per (series, date) is enforced at the storage layer; this package only
// reads the map.
const DateKeyLayout = "2006-01-02"

func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// Override is the persisted replacement content for a single occurrence,
// materialized lazily the first time an occurrence is edited. Nil fields
// inherit from the base item.
type Override struct {
	ID     string
	Status string
	Start  *time.Time
	End    *time.Time
}

// Exception is the per-date record against a recurring series: either the
// occurrence is deleted outright, or an override substitutes its fields.
type Exception struct {
	Deleted  bool
	Override *Override
}

// ExceptionSet maps a date key (DateKeyLayout) to its exception.
type ExceptionSet map[string]Exception

func (s ExceptionSet) Lookup(t time.Time) (Exception, bool) {
	if s == nil {
		return Exception{}, false
	}
	ex, ok := s[DateKey(t)]
	return ex, ok
}
