package models

import "time"

// TaskStatus represents the status of a task
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// Valid reports whether s is one of the two persisted statuses
func (s TaskStatus) Valid() bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

// Task represents a single to-do item
type Task struct {
	ID              string     `bson:"-" json:"id"`
	TaskName        string     `bson:"taskName" json:"taskName"`
	TaskDescription string     `bson:"taskDescription,omitempty" json:"taskDescription,omitempty"`
	Status          TaskStatus `bson:"status" json:"status"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Completed reports whether the task is marked done
func (t Task) Completed() bool {
	return t.Status == TaskStatusCompleted
}

// TaskDraft holds the fields of a task before the store assigns an ID
type TaskDraft struct {
	TaskName        string     `json:"taskName"`
	TaskDescription string     `json:"taskDescription,omitempty"`
	Status          TaskStatus `json:"status"`
}

// NewTaskDraft builds a pending draft from the create form values
func NewTaskDraft(title, description string) TaskDraft {
	return TaskDraft{
		TaskName:        title,
		TaskDescription: description,
		Status:          TaskStatusPending,
	}
}
