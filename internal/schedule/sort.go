package schedule

import (
	"sort"
	"strings"
	"time"
)

type SortKey string

const (
	SortPriority  SortKey = "priority"
	SortCreatedAt SortKey = "created_at"
	SortStart     SortKey = "start_datetime"
	SortEnd       SortKey = "end_datetime"
	SortTitle     SortKey = "title"
	SortStatus    SortKey = "status"
)

func (k SortKey) IsValid() bool {
	switch k {
	case SortPriority, SortCreatedAt, SortStart, SortEnd, SortTitle, SortStatus:
		return true
	default:
		return false
	}
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

var priorityRank = map[string]int{
	"urgent": 4,
	"high":   3,
	"medium": 2,
	"low":    1,
}

// Sort orders instances by key with a stable, total order: the primary
// comparator (sign-flipped by direction), then base ID, then kind. The
// tie-break is not affected by direction. An unrecognized key falls back to
// created_at descending. The input slice is not mutated.
func Sort(instances []Instance, key SortKey, dir Direction) []Instance {
	if !key.IsValid() {
		key = SortCreatedAt
		dir = Desc
	}
	if dir != Desc {
		dir = Asc
	}

	out := make([]Instance, len(instances))
	copy(out, instances)

	sort.SliceStable(out, func(i, j int) bool {
		c := compareBy(out[i], out[j], key)
		if dir == Desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		if out[i].BaseID != out[j].BaseID {
			return out[i].BaseID < out[j].BaseID
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

func compareBy(a, b Instance, key SortKey) int {
	switch key {
	case SortPriority:
		return priorityRank[a.Priority] - priorityRank[b.Priority]
	case SortStart:
		return compareTimePtr(a.Start, b.Start)
	case SortEnd:
		return compareTimePtr(a.End, b.End)
	case SortTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortStatus:
		// Lexicographic on the raw status code, not a semantic ordering.
		return strings.Compare(a.Status, b.Status)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

// compareTimePtr treats an absent timestamp as the lowest value.
func compareTimePtr(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}
