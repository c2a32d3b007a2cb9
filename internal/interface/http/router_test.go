package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/danisworo/taskhub/internal/application"
	handlers "github.com/danisworo/taskhub/internal/interface/http"
	"github.com/danisworo/taskhub/internal/interface/middleware"
	"github.com/danisworo/taskhub/internal/router/modules"
	"github.com/danisworo/taskhub/pkg/helpers"
	"github.com/danisworo/taskhub/pkg/validation"
)

// envelope mirrors the response wrapper for assertions.
type envelope struct {
	Status  int            `json:"status"`
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Error   *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

type testAPI struct {
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	jwtm := helpers.NewJWTManager("test-secret", time.Hour)
	authSvc := application.NewAuthService(newMemUserRepo(), jwtm, nil, nil, nil, time.Hour, "http://localhost/reset")
	taskSvc := application.NewTaskService(newMemTaskRepo(), nil)

	authHandler := handlers.NewAuthHandler(authSvc, nil, "localhost", false)
	taskHandler := handlers.NewTaskHandler(taskSvc, nil)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	api := r.Group("/api")
	modules.NewAuthModule(authHandler, jwtm).Register(api)
	modules.NewTaskModule(taskHandler, jwtm).Register(api)

	return &testAPI{router: r}
}

func (a *testAPI) do(t *testing.T, method, path, token string, payload any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	if len(rec.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	}
	return rec, env
}

// signup registers a user and returns its token and numeric id.
func (a *testAPI) signup(t *testing.T, email, password string) (string, int64) {
	t.Helper()
	rec, env := a.do(t, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "signup body: %s", rec.Body.String())
	token, _ := env.Data["access_token"].(string)
	require.NotEmpty(t, token)
	user, _ := env.Data["user"].(map[string]any)
	require.NotNil(t, user)
	id, _ := user["id"].(float64)
	return token, int64(id)
}
