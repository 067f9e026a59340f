package schedule

// Per-kind status vocabularies. Tasks move to_do -> doing -> done; events
// have a scheduling lifecycle of their own.
const (
	StatusTaskToDo  = "to_do"
	StatusTaskDoing = "doing"
	StatusTaskDone  = "done"

	StatusEventScheduled = "scheduled"
	StatusEventTentative = "tentative"
	StatusEventOngoing   = "ongoing"
	StatusEventCompleted = "completed"
	StatusEventCancelled = "cancelled"
)

// Bucket is a kanban column.
type Bucket string

const (
	BucketToDo  Bucket = "to_do"
	BucketDoing Bucket = "doing"
	BucketDone  Bucket = "done"
)

// statusBuckets folds the two vocabularies into the three kanban columns.
var statusBuckets = map[string]Bucket{
	StatusTaskToDo:       BucketToDo,
	StatusEventScheduled: BucketToDo,
	StatusEventTentative: BucketToDo,
	StatusTaskDoing:      BucketDoing,
	StatusEventOngoing:   BucketDoing,
	StatusTaskDone:       BucketDone,
	StatusEventCompleted: BucketDone,
}

// BucketByStatus groups instances into kanban columns, preserving input
// order within each column. Instances whose status maps to no column (e.g.
// cancelled events that slipped past filtering) are omitted.
func BucketByStatus(instances []Instance) map[Bucket][]Instance {
	out := map[Bucket][]Instance{
		BucketToDo:  {},
		BucketDoing: {},
		BucketDone:  {},
	}
	for _, in := range instances {
		b, ok := statusBuckets[in.Status]
		if !ok {
			continue
		}
		out[b] = append(out[b], in)
	}
	return out
}
