package schedule

// Query is the serializable filter state for one feed request. Zero values
// mean "no constraint"; all set criteria combine with AND.
type Query struct {
	Kind     Kind     `json:"kind,omitempty"`
	Priority string   `json:"priority,omitempty"`
	Status   string   `json:"status,omitempty"`
	TagIDs   []string `json:"tag_ids,omitempty"`

	// Schedulable drops instances that have neither a start nor an end
	// datetime; they cannot be positioned on a time grid.
	Schedulable bool `json:"schedulable,omitempty"`
}

// Filter returns the instances matching q. Cancelled instances are always
// excluded. The input slice is not mutated.
func Filter(instances []Instance, q Query) []Instance {
	out := make([]Instance, 0, len(instances))
	for _, in := range instances {
		if in.Cancelled {
			continue
		}
		if q.Kind != "" && in.Kind != q.Kind {
			continue
		}
		// Events carry no priority, so they never match a priority filter.
		if q.Priority != "" && in.Priority != q.Priority {
			continue
		}
		if q.Status != "" && in.Status != q.Status {
			continue
		}
		if len(q.TagIDs) > 0 && !intersects(in.TagIDs, q.TagIDs) {
			continue
		}
		if q.Schedulable && in.Start == nil && in.End == nil {
			continue
		}
		out = append(out, in)
	}
	return out
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
