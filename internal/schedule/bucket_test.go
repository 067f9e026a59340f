package schedule_test

import (
	"testing"

	"github.com/aandrewjuan1/planner-api/internal/schedule"
)

func TestBucketByStatus(t *testing.T) {
	in := []schedule.Instance{
		{BaseID: "t1", Kind: schedule.KindTask, Status: schedule.StatusTaskToDo},
		{BaseID: "t2", Kind: schedule.KindTask, Status: schedule.StatusTaskDoing},
		{BaseID: "t3", Kind: schedule.KindTask, Status: schedule.StatusTaskDone},
		{BaseID: "e1", Kind: schedule.KindEvent, Status: schedule.StatusEventScheduled},
		{BaseID: "e2", Kind: schedule.KindEvent, Status: schedule.StatusEventTentative},
		{BaseID: "e3", Kind: schedule.KindEvent, Status: schedule.StatusEventOngoing},
		{BaseID: "e4", Kind: schedule.KindEvent, Status: schedule.StatusEventCompleted},
		{BaseID: "e5", Kind: schedule.KindEvent, Status: schedule.StatusEventCancelled},
	}

	got := schedule.BucketByStatus(in)

	wantByBucket := map[schedule.Bucket][]string{
		schedule.BucketToDo:  {"t1", "e1", "e2"},
		schedule.BucketDoing: {"t2", "e3"},
		schedule.BucketDone:  {"t3", "e4"},
	}

	if len(got) != 3 {
		t.Fatalf("expected exactly three buckets, got %d", len(got))
	}
	for bucket, want := range wantByBucket {
		members := ids(got[bucket])
		if len(members) != len(want) {
			t.Fatalf("bucket %s: expected %v, got %v", bucket, want, members)
		}
		for i := range want {
			if members[i] != want[i] {
				t.Errorf("bucket %s position %d: expected %s, got %s", bucket, i, want[i], members[i])
			}
		}
	}
}

func TestBucketByStatusEmptyInput(t *testing.T) {
	got := schedule.BucketByStatus(nil)

	for _, b := range []schedule.Bucket{schedule.BucketToDo, schedule.BucketDoing, schedule.BucketDone} {
		members, ok := got[b]
		if !ok {
			t.Errorf("bucket %s missing from empty result", b)
		}
		if len(members) != 0 {
			t.Errorf("bucket %s not empty: %v", b, ids(members))
		}
	}
}
