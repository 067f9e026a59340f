package schedule

import "time"

// ViewMode selects which rendering surface the feed is assembled for.
type ViewMode string

const (
	ViewList  ViewMode = "list"
	ViewBoard ViewMode = "board"
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
)

// TimeGrid reports whether the view positions instances on a time grid,
// which requires a start or end datetime.
func (m ViewMode) TimeGrid() bool {
	return m == ViewDay || m == ViewWeek
}

// ResolveWindow computes the half-open window for a view. List, board and
// the daily grid use the single day of anchor; the weekly grid uses the
// seven days starting from weekAnchor's week. Unrecognized modes fall back
// to the single-day window of now. weekStart is a deployment convention,
// not a per-request choice.
func ResolveWindow(mode ViewMode, anchor, weekAnchor time.Time, weekStart time.Weekday, now time.Time) Window {
	switch mode {
	case ViewList, ViewBoard, ViewDay:
		if anchor.IsZero() {
			anchor = now
		}
		return dayWindow(anchor)
	case ViewWeek:
		if weekAnchor.IsZero() {
			weekAnchor = now
		}
		ws := startOfWeek(weekAnchor, weekStart)
		return Window{Start: ws, End: ws.AddDate(0, 0, 7)}
	default:
		return dayWindow(now)
	}
}

func dayWindow(t time.Time) Window {
	start := startOfDay(t)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	back := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return startOfDay(t).AddDate(0, 0, -back)
}
