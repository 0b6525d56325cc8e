package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todolist/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskValidator checks tasks before they are written
type TaskValidator interface {
	ValidateDraft(draft models.TaskDraft) error
	ValidateStatus(status models.TaskStatus) error
}

// taskDocument is the stored shape of a task
type taskDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	TaskName        string             `bson:"taskName"`
	TaskDescription string             `bson:"taskDescription,omitempty"`
	Status          models.TaskStatus  `bson:"status"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func (d taskDocument) toTask() *models.Task {
	return &models.Task{
		ID:              d.ID.Hex(),
		TaskName:        d.TaskName,
		TaskDescription: d.TaskDescription,
		Status:          d.Status,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// TaskStore persists tasks in a MongoDB collection
type TaskStore struct {
	collection *mongo.Collection
	validator  TaskValidator
	timeout    time.Duration
}

// NewTaskStore creates a task store over collection
func NewTaskStore(collection *mongo.Collection, validator TaskValidator, timeout time.Duration) *TaskStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TaskStore{
		collection: collection,
		validator:  validator,
		timeout:    timeout,
	}
}

// FindAll returns every task in natural (insertion) order
func (s *TaskStore) FindAll(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	tasks := make([]models.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, *doc.toTask())
	}
	return tasks, nil
}

// Insert validates the draft and stores it
func (s *TaskStore) Insert(ctx context.Context, draft models.TaskDraft) (*models.Task, error) {
	if err := s.validator.ValidateDraft(draft); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := time.Now().UTC()
	doc := taskDocument{
		ID:              primitive.NewObjectID(),
		TaskName:        draft.TaskName,
		TaskDescription: draft.TaskDescription,
		Status:          draft.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	return doc.toTask(), nil
}

// UpdateStatus sets the status of a task and returns the updated record
func (s *TaskStore) UpdateStatus(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error) {
	if err := s.validator.ValidateStatus(status); err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// An ID that is not an ObjectID cannot match any document
		return nil, models.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc taskDocument
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return doc.toTask(), nil
}

// Delete removes a task and returns the removed record
func (s *TaskStore) Delete(ctx context.Context, id string) (*models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var doc taskDocument
	err = s.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return doc.toTask(), nil
}

// Close disconnects the client that owns the collection
func (s *TaskStore) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.collection.Database().Client().Disconnect(ctx)
}
