package model

import (
	"time"

	"github.com/aandrewjuan1/planner-api/internal/schedule"
)

type TaskStatus string

const (
	TaskStatusToDo  TaskStatus = schedule.StatusTaskToDo
	TaskStatusDoing TaskStatus = schedule.StatusTaskDoing
	TaskStatusDone  TaskStatus = schedule.StatusTaskDone
)

func (s TaskStatus) IsValid() bool {
	return s == TaskStatusToDo || s == TaskStatusDoing || s == TaskStatusDone
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	default:
		return false
	}
}

type TaskComplexity string

const (
	TaskComplexitySimple   TaskComplexity = "simple"
	TaskComplexityModerate TaskComplexity = "moderate"
	TaskComplexityComplex  TaskComplexity = "complex"
)

func (c TaskComplexity) IsValid() bool {
	switch c {
	case TaskComplexitySimple, TaskComplexityModerate, TaskComplexityComplex:
		return true
	default:
		return false
	}
}

type Task struct {
	ID          string                   `json:"id"`
	UserID      string                   `json:"user_id"`
	ProjectID   *string                  `json:"project_id,omitempty"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Status      TaskStatus               `json:"status"`
	Priority    TaskPriority             `json:"priority"`
	Complexity  TaskComplexity           `json:"complexity"`
	DurationMin int                      `json:"duration_min"`
	StartAt     *time.Time               `json:"start_at,omitempty"`
	EndAt       *time.Time               `json:"end_at,omitempty"`
	Recurrence  *schedule.RecurrenceRule `json:"recurrence,omitempty"`
	TagIDs      []string                 `json:"tag_ids"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}
