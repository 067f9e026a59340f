package schedule

import "time"

// gridSlot is the resolution of the daily/weekly time grids.
const gridSlot = 30 * time.Minute

// GridSlot computes the display placement of an instance on a time grid:
// the start is snapped down to the preceding 30-minute boundary and the
// duration is rounded up to the next 30-minute boundary. This is a rendering
// concern layered on top of expansion, not part of it. ok is false when the
// instance carries no datetime at all and cannot be positioned.
func GridSlot(in Instance) (start, end time.Time, ok bool) {
	anchor := in.Start
	if anchor == nil {
		anchor = in.End
	}
	if anchor == nil {
		return time.Time{}, time.Time{}, false
	}

	start = snapDown(*anchor)

	dur := gridSlot
	if in.Start != nil && in.End != nil && in.End.After(*in.Start) {
		dur = roundUp(in.End.Sub(*in.Start))
	}
	return start, start.Add(dur), true
}

func snapDown(t time.Time) time.Time {
	day := startOfDay(t)
	offset := t.Sub(day) / gridSlot * gridSlot
	return day.Add(offset)
}

func roundUp(d time.Duration) time.Duration {
	if d <= 0 {
		return gridSlot
	}
	slots := (d + gridSlot - 1) / gridSlot
	return slots * gridSlot
}
