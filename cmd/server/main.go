package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"todolist/internal/api"
	"todolist/internal/config"
	"todolist/internal/database"
	"todolist/internal/middleware"
	"todolist/internal/services"
	"todolist/internal/validation"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	validator, err := validation.NewTaskValidator()
	if err != nil {
		log.Fatalf("Failed to load task schemas: %v", err)
	}

	store, err := newTaskStore(cfg, validator)
	if err != nil {
		log.Fatalf("Failed to initialize task store: %v", err)
	}

	// Access log is best effort; the server runs without it if the file cannot be opened
	var accessLog *middleware.AccessLog
	if cfg.Log.AccessLogPath != "" {
		accessLog, err = middleware.OpenAccessLog(cfg.Log.AccessLogPath)
		if err != nil {
			log.Printf("WARNING: access log disabled: %v", err)
			accessLog = nil
		}
	}

	// Initialize services and handlers
	taskService := services.NewTaskService(store)
	handlers := api.NewHandlers(taskService)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           api.SetupRoutes(handlers, accessLog),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server is running on http://%s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.Server.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"todolist": func(ctx context.Context) error {
				log.Println("Shutting down gracefully...")
				// Drain requests before the store goes away
				if err := server.Shutdown(ctx); err != nil {
					log.Printf("HTTP server shutdown: %v", err)
				}
				if accessLog != nil {
					if err := accessLog.Close(); err != nil {
						log.Printf("Access log close: %v", err)
					}
				}
				return store.Close(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Server exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// newTaskStore builds the store selected by TASK_STORE
func newTaskStore(cfg *config.Config, validator *validation.TaskValidator) (services.TaskStore, error) {
	if cfg.Store.Driver == config.StoreMemory {
		log.Printf("Using in-memory task store, tasks will not survive a restart")
		return services.NewMemoryTaskStore(validator), nil
	}

	mongoClient, err := database.NewMongoDBClient(cfg.MongoDB)
	if err != nil {
		return nil, err
	}

	// A failed ping is not fatal: requests will return 500 until the database is reachable
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := mongoClient.Ping(ctx); err != nil {
		log.Printf("WARNING: MongoDB connection error: %v", err)
	} else {
		log.Printf("MongoDB connected successfully (database: %s, collection: %s)",
			cfg.MongoDB.Database, cfg.MongoDB.Collection)
	}

	return mongoClient.TaskStore(validator), nil
}
