package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	authmw "github.com/Revasall/TO-DO-List-project/internal/middleware/auth"
	"github.com/Revasall/TO-DO-List-project/internal/models"
	"github.com/Revasall/TO-DO-List-project/internal/mykafka"
	"github.com/Revasall/TO-DO-List-project/internal/repo"
	"github.com/Revasall/TO-DO-List-project/internal/service"
)

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	DB    *gorm.DB
	Auth  *AuthHTTP
	Users *UserHTTP
	Tasks *TaskHTTP
	MW    *authmw.RequireAuth
	Svc   *service.AuthService
}

func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := InitTestDB(t)
	rp := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{
		Repo:          rp,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
	taskSvc := &service.TaskService{Repo: rp}
	prod := &mykafka.Producer{}

	return &testEnv{
		T:     t,
		E:     echo.New(),
		DB:    db,
		Auth:  &AuthHTTP{Svc: authSvc, Producer: prod},
		Users: &UserHTTP{Svc: authSvc},
		Tasks: &TaskHTTP{Svc: taskSvc, Producer: prod},
		MW:    &authmw.RequireAuth{Svc: authSvc},
		Svc:   authSvc,
	}
}

func (env *testEnv) doJSONRequest(method, path string, payload any, headers map[string]string) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(env.T, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func bearer(token string) map[string]string {
	return map[string]string{echo.HeaderAuthorization: "Bearer " + token}
}

// registerUser drives the register handler and returns the wire-shape
// token pair.
func (env *testEnv) registerUser(username, email, password string) map[string]string {
	env.T.Helper()

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, nil)
	require.NoError(env.T, env.Auth.Register(c))
	require.Equal(env.T, http.StatusCreated, rec.Code)

	var pair map[string]string
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &pair))
	return pair
}

func requireHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
	return he
}
