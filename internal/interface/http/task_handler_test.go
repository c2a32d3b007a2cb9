package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasks_RequireAuth(t *testing.T) {
	api := newTestAPI(t)

	rec, _ := api.do(t, http.MethodGet, "/api/tasks/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = api.do(t, http.MethodPost, "/api/tasks/", "", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTasks_CreateAndGet(t *testing.T) {
	api := newTestAPI(t)
	token, id := api.signup(t, "a@x.com", "pw123456")

	rec, env := api.do(t, http.MethodPost, "/api/tasks/", token, map[string]any{
		"title":       "Buy milk",
		"description": "2 liters",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Buy milk", env.Data["title"])
	assert.Equal(t, "2 liters", env.Data["description"])
	assert.Equal(t, false, env.Data["completed"])
	assert.Equal(t, float64(id), env.Data["user_id"])
	taskID := int64(env.Data["id"].(float64))
	require.Positive(t, taskID)

	rec, env = api.do(t, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Buy milk", env.Data["title"])
}

func TestTasks_CreateValidation(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.signup(t, "a@x.com", "pw123456")

	rec, env := api.do(t, http.MethodPost, "/api/tasks/", token, map[string]any{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rec, _ = api.do(t, http.MethodPost, "/api/tasks/", token, map[string]any{
		"title": strings.Repeat("x", 256),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = api.do(t, http.MethodPost, "/api/tasks/", token, map[string]any{
		"title":       "ok",
		"description": strings.Repeat("x", 1001),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTasks_OwnerScoping(t *testing.T) {
	api := newTestAPI(t)
	tokenA, _ := api.signup(t, "a@x.com", "pw123456")
	tokenB, _ := api.signup(t, "b@x.com", "pw123456")

	_, env := api.do(t, http.MethodPost, "/api/tasks/", tokenA, map[string]any{"title": "Buy milk"})
	taskID := int64(env.Data["id"].(float64))

	// Another user's task: 403, never 404.
	rec, env := api.do(t, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), tokenB, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	rec, _ = api.do(t, http.MethodPut, fmt.Sprintf("/api/tasks/%d", taskID), tokenB, map[string]any{"title": "hijack"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = api.do(t, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", taskID), tokenB, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Absent id: 404.
	rec, env = api.do(t, http.MethodGet, "/api/tasks/999", tokenA, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	// B's list must not contain A's task.
	rec, env = api.do(t, http.MethodGet, "/api/tasks/", tokenB, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), env.Data["total"])
}

func TestTasks_List(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.signup(t, "a@x.com", "pw123456")

	for i := 1; i <= 3; i++ {
		rec, _ := api.do(t, http.MethodPost, "/api/tasks/", token, map[string]any{
			"title": fmt.Sprintf("task %d", i),
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, env := api.do(t, http.MethodGet, "/api/tasks/?limit=2&offset=0", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	tasks := env.Data["tasks"].([]any)
	assert.Len(t, tasks, 2)
	assert.Equal(t, float64(3), env.Data["total"])

	rec, _ = api.do(t, http.MethodGet, "/api/tasks/?limit=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = api.do(t, http.MethodGet, "/api/tasks/?limit=101", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTasks_Toggle(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.signup(t, "a@x.com", "pw123456")

	_, env := api.do(t, http.MethodPost, "/api/tasks/", token, map[string]any{"title": "Buy milk"})
	taskID := int64(env.Data["id"].(float64))

	rec, env := api.do(t, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/toggle", taskID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, env.Data["completed"])

	rec, env = api.do(t, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/toggle", taskID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, env.Data["completed"])
}

func TestTasks_PartialUpdate(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.signup(t, "a@x.com", "pw123456")

	_, env := api.do(t, http.MethodPost, "/api/tasks/", token, map[string]any{
		"title":       "Buy milk",
		"description": "2 liters",
	})
	taskID := int64(env.Data["id"].(float64))

	rec, env := api.do(t, http.MethodPut, fmt.Sprintf("/api/tasks/%d", taskID), token, map[string]any{
		"title": "Buy oat milk",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Buy oat milk", env.Data["title"])
	assert.Equal(t, "2 liters", env.Data["description"])
}

func TestTasks_EmptyUpdateRefreshesTimestamp(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.signup(t, "a@x.com", "pw123456")

	_, env := api.do(t, http.MethodPost, "/api/tasks/", token, map[string]any{"title": "Buy milk"})
	taskID := int64(env.Data["id"].(float64))
	before, err := time.Parse(time.RFC3339Nano, env.Data["updated_at"].(string))
	require.NoError(t, err)

	rec, env := api.do(t, http.MethodPut, fmt.Sprintf("/api/tasks/%d", taskID), token, map[string]any{})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Buy milk", env.Data["title"])

	after, err := time.Parse(time.RFC3339Nano, env.Data["updated_at"].(string))
	require.NoError(t, err)
	assert.True(t, after.After(before), "updated_at must strictly increase")
}

func TestTasks_Delete(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.signup(t, "a@x.com", "pw123456")

	_, env := api.do(t, http.MethodPost, "/api/tasks/", token, map[string]any{"title": "Buy milk"})
	taskID := int64(env.Data["id"].(float64))

	rec, _ := api.do(t, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", taskID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = api.do(t, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTasks_InvalidID(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.signup(t, "a@x.com", "pw123456")

	rec, env := api.do(t, http.MethodGet, "/api/tasks/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

// Full walk through the documented example: signup, create, toggle, and a
// cross-user read that is rejected.
func TestTasks_EndToEnd(t *testing.T) {
	api := newTestAPI(t)
	tokenA, _ := api.signup(t, "a@x.com", "pw123456")

	rec, env := api.do(t, http.MethodPost, "/api/tasks/", tokenA, map[string]any{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, rec.Code)
	taskID := int64(env.Data["id"].(float64))
	assert.Equal(t, float64(1), env.Data["id"])
	assert.Equal(t, false, env.Data["completed"])

	rec, env = api.do(t, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/toggle", taskID), tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, env.Data["completed"])

	tokenB, _ := api.signup(t, "b@x.com", "pw123456")
	rec, _ = api.do(t, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), tokenB, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
