package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ashurbayy/lifechip/config"
	"github.com/ashurbayy/lifechip/internal/session"
	"github.com/ashurbayy/lifechip/internal/store"
)

type testEnv struct {
	router   *gin.Engine
	store    *store.MemStore
	sessions *session.Manager
}

// newTestEnv wires a router against a fresh in-memory store so tests cannot
// observe each other's state.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:                  config.Test,
		ServerHost:           "127.0.0.1",
		ServerPort:           "0",
		SessionSecret:        "test-secret",
		SessionTTL:           time.Hour,
		SessionPruneInterval: time.Hour,
		CORSOrigins:          []string{"http://localhost:5173"},
		LogLevel:             "error",
	}

	st := store.NewMemStore()
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	t.Cleanup(sessions.Stop)

	return &testEnv{
		router:   SetupRouter(cfg, st, sessions, nil, zap.NewNop()),
		store:    st,
		sessions: sessions,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) register(t *testing.T, username, email, password string) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"username":        username,
		"email":           email,
		"password":        password,
		"confirmPassword": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

// login returns the session cookie established by a successful login.
func (e *testEnv) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return sessionCookie(t, w)
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	t.Fatalf("no %s cookie in response", session.CookieName)
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
