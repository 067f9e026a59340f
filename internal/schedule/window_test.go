package schedule_test

import (
	"testing"
	"time"

	"github.com/aandrewjuan1/planner-api/internal/schedule"
)

func TestResolveWindow(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC) // a Wednesday
	anchor := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		mode       schedule.ViewMode
		anchor     time.Time
		weekAnchor time.Time
		weekStart  time.Weekday
		wantStart  time.Time
		wantEnd    time.Time
	}{
		{
			name:      "list defaults to today",
			mode:      schedule.ViewList,
			weekStart: time.Monday,
			wantStart: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "day with explicit anchor",
			mode:      schedule.ViewDay,
			anchor:    anchor,
			weekStart: time.Monday,
			wantStart: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "board uses the anchor day",
			mode:      schedule.ViewBoard,
			anchor:    anchor,
			weekStart: time.Monday,
			wantStart: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "week snaps back to monday",
			mode:       schedule.ViewWeek,
			weekAnchor: now, // Wednesday
			weekStart:  time.Monday,
			wantStart:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			wantEnd:    time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "week with sunday start",
			mode:       schedule.ViewWeek,
			weekAnchor: now,
			weekStart:  time.Sunday,
			wantStart:  time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
			wantEnd:    time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "week anchored on its own start day",
			mode:      schedule.ViewWeek,
			weekAnchor: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), // a Monday
			weekStart: time.Monday,
			wantStart: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "unknown mode falls back to today",
			mode:      "timeline",
			anchor:    anchor,
			weekStart: time.Monday,
			wantStart: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedule.ResolveWindow(tt.mode, tt.anchor, tt.weekAnchor, tt.weekStart, now)
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("expected start %s, got %s", tt.wantStart, got.Start)
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("expected end %s, got %s", tt.wantEnd, got.End)
			}
		})
	}
}

func TestWindowContains(t *testing.T) {
	w := schedule.Window{
		Start: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
	}

	if !w.Contains(w.Start) {
		t.Error("window start must be included")
	}
	if w.Contains(w.End) {
		t.Error("window end must be excluded")
	}
	if w.Contains(w.Start.Add(-time.Nanosecond)) {
		t.Error("instant before start must be excluded")
	}
}

func TestTimeGrid(t *testing.T) {
	if schedule.ViewList.TimeGrid() || schedule.ViewBoard.TimeGrid() {
		t.Error("list and board are not time-grid views")
	}
	if !schedule.ViewDay.TimeGrid() || !schedule.ViewWeek.TimeGrid() {
		t.Error("day and week are time-grid views")
	}
}
