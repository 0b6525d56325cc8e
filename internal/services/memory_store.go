package services

import (
	"context"
	"sync"
	"time"

	"todolist/internal/models"
	"todolist/internal/validation"

	"github.com/google/uuid"
)

// MemoryTaskStore keeps tasks in process memory. Contents are lost on restart.
type MemoryTaskStore struct {
	validator *validation.TaskValidator
	tasks     map[string]*models.Task
	order     []string
	mutex     sync.RWMutex
}

// NewMemoryTaskStore creates an empty in-memory store
func NewMemoryTaskStore(validator *validation.TaskValidator) *MemoryTaskStore {
	return &MemoryTaskStore{
		validator: validator,
		tasks:     make(map[string]*models.Task),
	}
}

// FindAll returns copies of all tasks in insertion order
func (s *MemoryTaskStore) FindAll(ctx context.Context) ([]models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	tasks := make([]models.Task, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, *s.tasks[id])
	}
	return tasks, nil
}

// Insert validates the draft and stores it under a fresh UUID
func (s *MemoryTaskStore) Insert(ctx context.Context, draft models.TaskDraft) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateDraft(draft); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	task := &models.Task{
		ID:              uuid.New().String(),
		TaskName:        draft.TaskName,
		TaskDescription: draft.TaskDescription,
		Status:          draft.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)

	stored := *task
	return &stored, nil
}

// UpdateStatus sets the status of a task
func (s *MemoryTaskStore) UpdateStatus(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStatus(status); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return nil, models.ErrTaskNotFound
	}

	task.Status = status
	task.UpdatedAt = time.Now()

	updated := *task
	return &updated, nil
}

// Delete removes a task and returns it
func (s *MemoryTaskStore) Delete(ctx context.Context, id string) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return nil, models.ErrTaskNotFound
	}

	delete(s.tasks, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return task, nil
}

// Close is a no-op for the in-memory store
func (s *MemoryTaskStore) Close(ctx context.Context) error {
	return nil
}
