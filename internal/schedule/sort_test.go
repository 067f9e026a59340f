package schedule_test

import (
	"testing"
	"time"

	"github.com/aandrewjuan1/planner-api/internal/schedule"
)

func TestSortPriority(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []schedule.Instance{
		{BaseID: "b", Kind: schedule.KindTask, Priority: "low", CreatedAt: created},
		{BaseID: "a", Kind: schedule.KindTask, Priority: "urgent", CreatedAt: created},
		{BaseID: "c", Kind: schedule.KindTask, Priority: "medium", CreatedAt: created},
		{BaseID: "d", Kind: schedule.KindEvent, CreatedAt: created}, // no priority
	}

	got := ids(schedule.Sort(in, schedule.SortPriority, schedule.Desc))
	want := []string{"a", "c", "b", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	got = ids(schedule.Sort(in, schedule.SortPriority, schedule.Asc))
	want = []string{"d", "b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("asc: expected %v, got %v", want, got)
		}
	}
}

func TestSortTieBreakIsDirectionIndependent(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []schedule.Instance{
		{BaseID: "z", Kind: schedule.KindTask, Priority: "high", CreatedAt: created},
		{BaseID: "a", Kind: schedule.KindTask, Priority: "high", CreatedAt: created},
	}

	asc := ids(schedule.Sort(in, schedule.SortPriority, schedule.Asc))
	desc := ids(schedule.Sort(in, schedule.SortPriority, schedule.Desc))
	if asc[0] != "a" || desc[0] != "a" {
		t.Errorf("tie-break must order by base ID regardless of direction: asc=%v desc=%v", asc, desc)
	}
}

func TestSortStartNilLowest(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	early := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	late := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	in := []schedule.Instance{
		{BaseID: "b", Kind: schedule.KindTask, Start: &late, CreatedAt: created},
		{BaseID: "c", Kind: schedule.KindTask, CreatedAt: created}, // no start
		{BaseID: "a", Kind: schedule.KindTask, Start: &early, CreatedAt: created},
	}

	got := ids(schedule.Sort(in, schedule.SortStart, schedule.Asc))
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSortTitleCaseInsensitive(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []schedule.Instance{
		{BaseID: "1", Kind: schedule.KindTask, Title: "banana", CreatedAt: created},
		{BaseID: "2", Kind: schedule.KindTask, Title: "Apple", CreatedAt: created},
	}

	got := schedule.Sort(in, schedule.SortTitle, schedule.Asc)
	if got[0].Title != "Apple" {
		t.Errorf("expected case-insensitive title order, got %v", ids(got))
	}
}

func TestSortStatusLexicographic(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []schedule.Instance{
		{BaseID: "1", Kind: schedule.KindTask, Status: schedule.StatusTaskToDo, CreatedAt: created},
		{BaseID: "2", Kind: schedule.KindTask, Status: schedule.StatusTaskDoing, CreatedAt: created},
		{BaseID: "3", Kind: schedule.KindTask, Status: schedule.StatusTaskDone, CreatedAt: created},
	}

	// Plain string order: doing < done < to_do.
	got := ids(schedule.Sort(in, schedule.SortStatus, schedule.Asc))
	want := []string{"2", "3", "1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSortUnknownKeyFallsBack(t *testing.T) {
	early := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	in := []schedule.Instance{
		{BaseID: "old", Kind: schedule.KindTask, CreatedAt: early},
		{BaseID: "new", Kind: schedule.KindTask, CreatedAt: late},
	}

	// Unknown key means newest first, whatever direction was asked for.
	got := ids(schedule.Sort(in, "due_date", schedule.Asc))
	if got[0] != "new" {
		t.Errorf("expected fallback to created_at desc, got %v", got)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []schedule.Instance{
		{BaseID: "b", Kind: schedule.KindTask, Priority: "low", CreatedAt: created},
		{BaseID: "a", Kind: schedule.KindTask, Priority: "urgent", CreatedAt: created},
	}

	schedule.Sort(in, schedule.SortPriority, schedule.Desc)
	if in[0].BaseID != "b" {
		t.Error("input slice reordered in place")
	}
}
