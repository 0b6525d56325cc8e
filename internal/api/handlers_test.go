package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"todolist/internal/models"
	"todolist/internal/services"
	"todolist/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStore fails every operation the way an unreachable database would
type brokenStore struct{}

var errUnreachable = errors.New("server selection timeout")

func (brokenStore) FindAll(ctx context.Context) ([]models.Task, error) { return nil, errUnreachable }
func (brokenStore) Insert(ctx context.Context, draft models.TaskDraft) (*models.Task, error) {
	return nil, errUnreachable
}
func (brokenStore) UpdateStatus(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error) {
	return nil, errUnreachable
}
func (brokenStore) Delete(ctx context.Context, id string) (*models.Task, error) {
	return nil, errUnreachable
}
func (brokenStore) Close(ctx context.Context) error { return nil }

type testApp struct {
	store   *services.MemoryTaskStore
	handler http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	validator, err := validation.NewTaskValidator()
	require.NoError(t, err)
	store := services.NewMemoryTaskStore(validator)

	return &testApp{
		store:   store,
		handler: SetupRoutes(NewHandlers(services.NewTaskService(store)), nil),
	}
}

func (a *testApp) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *testApp) tasks(t *testing.T) []models.Task {
	t.Helper()
	tasks, err := a.store.FindAll(context.Background())
	require.NoError(t, err)
	return tasks
}

func TestListTasks_Empty(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "No tasks yet.")
}

func TestCreateTask(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/todos", url.Values{"title": {"Buy milk"}, "description": {"two litres"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	tasks := app.tasks(t)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].TaskName)
	assert.Equal(t, "two litres", tasks[0].TaskDescription)
	assert.Equal(t, models.TaskStatusPending, tasks[0].Status)
}

func TestCreateTask_JSONBody(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/todos", bytes.NewBufferString(`{"title":"Walk dog"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	require.Len(t, app.tasks(t), 1)
}

func TestCreateTask_MissingTitle(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"absent", url.Values{"description": {"orphan"}}},
		{"empty", url.Values{"title": {""}}},
		{"no body", url.Values{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t)

			w := app.do(http.MethodPost, "/todos", tc.form)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Task title is required.", w.Body.String())
			assert.Empty(t, app.tasks(t))
		})
	}
}

func TestCreateTask_UniqueIDs(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 5; i++ {
		w := app.do(http.MethodPost, "/todos", url.Values{"title": {"same title"}})
		require.Equal(t, http.StatusFound, w.Code)
	}

	seen := make(map[string]bool)
	for _, task := range app.tasks(t) {
		assert.False(t, seen[task.ID])
		seen[task.ID] = true
	}
	assert.Len(t, seen, 5)
}

func TestToggleTask(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodPost, "/todos", url.Values{"title": {"Buy milk"}})
	id := app.tasks(t)[0].ID

	tests := []struct {
		done string
		want models.TaskStatus
	}{
		{"true", models.TaskStatusCompleted},
		{"false", models.TaskStatusPending},
		{"true", models.TaskStatusCompleted},
		{"yes", models.TaskStatusPending},
		{"", models.TaskStatusPending},
	}

	for _, tc := range tests {
		w := app.do(http.MethodPost, "/todos/"+id+"?_method=PUT", url.Values{"done": {tc.done}})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.Equal(t, tc.want, app.tasks(t)[0].Status, "done=%q", tc.done)
	}
}

func TestToggleTask_DirectPUT(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodPost, "/todos", url.Values{"title": {"Buy milk"}})
	id := app.tasks(t)[0].ID

	w := app.do(http.MethodPut, "/todos/"+id, url.Values{"done": {"true"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, models.TaskStatusCompleted, app.tasks(t)[0].Status)
}

func TestToggleTask_JSONBoolean(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodPost, "/todos", url.Values{"title": {"Buy milk"}})
	id := app.tasks(t)[0].ID

	req := httptest.NewRequest(http.MethodPut, "/todos/"+id, bytes.NewBufferString(`{"done": true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, models.TaskStatusCompleted, app.tasks(t)[0].Status)
}

func TestToggleTask_NotFound(t *testing.T) {
	app := newTestApp(t)

	for _, done := range []string{"true", "false"} {
		w := app.do(http.MethodPost, "/todos/does-not-exist?_method=PUT", url.Values{"done": {done}})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Task not found.", w.Body.String())
	}
	assert.Empty(t, app.tasks(t))
}

func TestDeleteTask(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodPost, "/todos", url.Values{"title": {"keep"}})
	app.do(http.MethodPost, "/todos", url.Values{"title": {"drop"}})
	tasks := app.tasks(t)
	require.Len(t, tasks, 2)

	w := app.do(http.MethodPost, "/todos/"+tasks[1].ID+"?_method=DELETE", url.Values{})

	assert.Equal(t, http.StatusFound, w.Code)
	remaining := app.tasks(t)
	require.Len(t, remaining, 1)
	assert.Equal(t, tasks[0].ID, remaining[0].ID)
}

func TestDeleteTask_NotFound(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodPost, "/todos", url.Values{"title": {"keep"}})

	w := app.do(http.MethodDelete, "/todos/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, app.tasks(t), 1)
}

func TestStoreErrorsReturn500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := SetupRoutes(NewHandlers(services.NewTaskService(brokenStore{})), nil)

	tests := []struct {
		name    string
		method  string
		target  string
		form    string
		message string
	}{
		{"list", http.MethodGet, "/", "", "Failed to load to-do list."},
		{"create", http.MethodPost, "/todos", "title=x", "Failed to add task."},
		{"toggle", http.MethodPut, "/todos/abc", "done=true", "Failed to update task."},
		{"delete", http.MethodDelete, "/todos/abc", "", "Failed to delete task."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.form))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, tc.message, w.Body.String())
		})
	}
}

func TestListReflectsStoreAfterMutations(t *testing.T) {
	app := newTestApp(t)

	app.do(http.MethodPost, "/todos", url.Values{"title": {"Buy milk"}})
	app.do(http.MethodPost, "/todos", url.Values{"title": {"Walk dog"}})
	app.do(http.MethodPost, "/todos", url.Values{"title": {"Pay rent"}})
	tasks := app.tasks(t)
	require.Len(t, tasks, 3)

	app.do(http.MethodPost, "/todos/"+tasks[0].ID+"?_method=PUT", url.Values{"done": {"true"}})
	app.do(http.MethodPost, "/todos/"+tasks[1].ID+"?_method=DELETE", url.Values{})

	w := app.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "Buy milk")
	assert.Contains(t, body, "Pay rent")
	assert.NotContains(t, body, "Walk dog")
	assert.Contains(t, body, `class="todo completed" data-id="`+tasks[0].ID+`"`)
	assert.Contains(t, body, `class="todo pending" data-id="`+tasks[2].ID+`"`)
}

func TestBuyMilkWalkthrough(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/todos", url.Values{"title": {"Buy milk"}})
	require.Equal(t, http.StatusFound, w.Code)
	task := app.tasks(t)[0]
	assert.Equal(t, models.TaskStatusPending, task.Status)

	w = app.do(http.MethodPost, "/todos/"+task.ID+"?_method=PUT", url.Values{"done": {"true"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, models.TaskStatusCompleted, app.tasks(t)[0].Status)

	w = app.do(http.MethodPost, "/todos/"+task.ID+"?_method=DELETE", url.Values{})
	require.Equal(t, http.StatusFound, w.Code)

	w = app.do(http.MethodGet, "/", nil)
	assert.NotContains(t, w.Body.String(), "Buy milk")
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
