package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayhew-amaya/taskflow-api/internal/app"
	"github.com/mayhew-amaya/taskflow-api/internal/rest/models"
	"github.com/mayhew-amaya/taskflow-api/internal/storage/sqlite"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	store, err := sqlite.New(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return app.NewRouter("test", log, store)
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createTask(t *testing.T, router *gin.Engine, body string) models.Task {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/tasks", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

func listTasks(t *testing.T, router *gin.Engine, path string) []models.Task {
	t.Helper()

	w := doRequest(t, router, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)

	var tasks []models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	return tasks
}

func TestCreateTask(t *testing.T) {
	router := newTestRouter(t)

	task := createTask(t, router, `{"title":"buy milk","description":"2 liters"}`)

	assert.Positive(t, task.ID)
	assert.Equal(t, "buy milk", task.Title)
	assert.Equal(t, "2 liters", task.Description)
	assert.False(t, task.Completed)
	assert.False(t, task.CreatedAt.IsZero())

	second := createTask(t, router, `{"title":"walk dog"}`)
	assert.NotEqual(t, task.ID, second.ID)
}

func TestCreateTask_InvalidPayload(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"description":"no title"}`},
		{"empty title", `{"title":""}`},
		{"blank title", `{"title":"   "}`},
		{"malformed json", `{"title":`},
		{"wrong type", `{"title":123}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/tasks", tc.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Contains(t, body, "errors")
		})
	}

	// no row may have been created by any rejected request
	assert.Empty(t, listTasks(t, router, "/tasks"))
}

func TestListTasks_EmptyStore(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListTasks_FilterByCompleted(t *testing.T) {
	router := newTestRouter(t)

	open := createTask(t, router, `{"title":"open"}`)
	done := createTask(t, router, `{"title":"done"}`)

	w := doRequest(t, router, http.MethodPatch, fmt.Sprintf("/tasks/%d", done.ID), `{"completed":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	completed := listTasks(t, router, "/tasks?completed=true")
	require.Len(t, completed, 1)
	assert.Equal(t, done.ID, completed[0].ID)

	pending := listTasks(t, router, "/tasks?completed=false")
	require.Len(t, pending, 1)
	assert.Equal(t, open.ID, pending[0].ID)

	w = doRequest(t, router, http.MethodGet, "/tasks?completed=maybe", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetTask(t *testing.T) {
	router := newTestRouter(t)

	created := createTask(t, router, `{"title":"findable"}`)

	w := doRequest(t, router, http.MethodGet, fmt.Sprintf("/tasks/%d", created.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, created.ID, task.ID)
	assert.Equal(t, "findable", task.Title)
}

func TestGetTask_NotFound(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/tasks/12345", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, "/tasks/not-a-number", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTask_MergesFields(t *testing.T) {
	router := newTestRouter(t)

	created := createTask(t, router, `{"title":"original","description":"keep me"}`)

	time.Sleep(10 * time.Millisecond)

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/tasks/%d", created.ID), `{"completed":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/tasks/%d", created.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.True(t, task.Completed)
	assert.Equal(t, "original", task.Title)
	assert.Equal(t, "keep me", task.Description)
	assert.False(t, task.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateTask_PutAndPatchBehaveIdentically(t *testing.T) {
	router := newTestRouter(t)

	created := createTask(t, router, `{"title":"original","description":"keep me"}`)

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		w := doRequest(t, router, method, fmt.Sprintf("/tasks/%d", created.ID), `{"title":"renamed by `+method+`"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var task models.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
		assert.Equal(t, "renamed by "+method, task.Title)
		assert.Equal(t, "keep me", task.Description)
	}
}

func TestUpdateTask_Invalid(t *testing.T) {
	router := newTestRouter(t)

	created := createTask(t, router, `{"title":"original"}`)
	path := fmt.Sprintf("/tasks/%d", created.ID)

	w := doRequest(t, router, http.MethodPut, path, `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(t, router, http.MethodPut, path, `{"title":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(t, router, http.MethodPut, "/tasks/9999", `{"completed":true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTask_Idempotence(t *testing.T) {
	router := newTestRouter(t)

	created := createTask(t, router, `{"title":"short lived"}`)
	path := fmt.Sprintf("/tasks/%d", created.ID)

	w := doRequest(t, router, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Empty(t, listTasks(t, router, "/tasks"))

	// second delete is a clean 404, not a crash
	w = doRequest(t, router, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
