package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"username":        "alice",
		"email":           "alice@example.com",
		"password":        "secret1",
		"confirmPassword": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "alice@example.com", body["email"])
	// The credential never leaves the server.
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "passwordHash")
}

func TestRegisterPasswordMismatch(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"username":        "alice",
		"email":           "alice@example.com",
		"password":        "secret1",
		"confirmPassword": "different",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Passwords do not match", decodeBody(t, w)["message"])
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"username":        "alice",
		"email":           "not-an-email",
		"password":        "secret1",
		"confirmPassword": "secret1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok, w.Body.String())
	assert.Contains(t, errs, "email")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1")

	w := env.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"username":        "alice2",
		"email":           "alice@example.com",
		"password":        "secret1",
		"confirmPassword": "secret1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already in use", decodeBody(t, w)["message"])
}

func TestLoginSetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1")

	w := env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	body := decodeBody(t, w)
	assert.Equal(t, "alice", body["username"])
	assert.NotContains(t, body, "password")
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1")

	badPassword := env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	unknownEmail := env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "secret1",
	})

	require.Equal(t, http.StatusUnauthorized, badPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// Responses must not reveal whether the email exists.
	assert.Equal(t, badPassword.Body.String(), unknownEmail.Body.String())
}

func TestLoginValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok, w.Body.String())
	assert.Contains(t, errs, "password")
}

func TestMeRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeReturnsAccount(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1")
	cookie := env.login(t, "alice@example.com", "secret1")

	w := env.do(t, http.MethodGet, "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "alice", body["username"])
	assert.NotContains(t, body, "password")
}

func TestLogoutRevokesSession(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1")
	cookie := env.login(t, "alice@example.com", "secret1")

	w := env.do(t, http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// The old cookie no longer authorizes anything.
	w = env.do(t, http.MethodGet, "/api/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTamperedCookieRejected(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1")
	cookie := env.login(t, "alice@example.com", "secret1")
	cookie.Value += "tampered"

	w := env.do(t, http.MethodGet, "/api/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
