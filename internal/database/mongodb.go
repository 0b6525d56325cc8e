package database

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"todolist/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBClient wraps the MongoDB client and the tasks collection
type MongoDBClient struct {
	client     *mongo.Client
	database   *mongo.Database
	collection *mongo.Collection
	timeout    time.Duration
}

// NewMongoDBClient creates a MongoDB client for the task collection.
// The driver connects lazily, so an unreachable server is not an error here; call Ping to check.
func NewMongoDBClient(cfg config.MongoDBConfig) (*MongoDBClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logURI := RedactURI(cfg.URI)
	log.Printf("[MONGO] Attempting to connect to MongoDB at %s", logURI)

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.Timeout)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB at %s: %w", logURI, err)
	}

	database := client.Database(cfg.Database)

	return &MongoDBClient{
		client:     client,
		database:   database,
		collection: database.Collection(cfg.Collection),
		timeout:    cfg.Timeout,
	}, nil
}

// Ping verifies the server is reachable and creates the collection indexes
func (c *MongoDBClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := c.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	if err := EnsureIndexes(ctx, c.collection); err != nil {
		// Index might already exist with other options, that's okay
		log.Printf("[MONGO] Note: index creation: %v", err)
	}
	return nil
}

// TaskStore returns a task store backed by this client's collection
func (c *MongoDBClient) TaskStore(validator TaskValidator) *TaskStore {
	return NewTaskStore(c.collection, validator, c.timeout)
}

// EnsureIndexes creates the status index used when filtering the list by state
func EnsureIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index().SetName("status_1"),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create status index: %w", err)
	}
	return nil
}

// RedactURI masks the password in a connection URI for logging
func RedactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "<unparseable uri>"
	}
	return u.Redacted()
}
