package services

import (
	"context"
	"fmt"
	"log"

	"todolist/internal/models"
)

// TaskService implements the to-do operations on top of a TaskStore
type TaskService struct {
	store TaskStore
}

// NewTaskService creates a new task service
func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

// ListTasks returns every task
func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask stores a new pending task
func (s *TaskService) CreateTask(ctx context.Context, title, description string) (*models.Task, error) {
	task, err := s.store.Insert(ctx, models.NewTaskDraft(title, description))
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	log.Printf("[TASKS] Created task %s (%q)", task.ID, task.TaskName)
	return task, nil
}

// SetTaskDone marks a task completed when done is true and pending otherwise
func (s *TaskService) SetTaskDone(ctx context.Context, id string, done models.DoneFlag) (*models.Task, error) {
	task, err := s.store.UpdateStatus(ctx, id, done.Status())
	if err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	log.Printf("[TASKS] Task %s is now %s", task.ID, task.Status)
	return task, nil
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	log.Printf("[TASKS] Deleted task %s", task.ID)
	return task, nil
}
