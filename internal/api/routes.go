package api

import (
	"embed"
	"html/template"
	"net/http"

	"todolist/internal/middleware"

	"github.com/gin-gonic/gin"
)

const listTemplate = "todolist.html"

//go:embed templates/*.html
var templateFS embed.FS

// SetupRoutes configures all routes and returns the server handler.
// accessLog may be nil to disable request logging.
func SetupRoutes(handlers *Handlers, accessLog *middleware.AccessLog) http.Handler {
	router := gin.Default()

	if accessLog != nil {
		router.Use(accessLog.Handler())
	}

	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	router.GET("/", handlers.ListTasksHandler)

	todos := router.Group("/todos")
	{
		todos.POST("", handlers.CreateTaskHandler)
		todos.PUT("/:id", handlers.ToggleTaskHandler)
		todos.DELETE("/:id", handlers.DeleteTaskHandler)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return middleware.MethodOverride(router)
}
