package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmergencyLookupUnknownChip(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/emergency/CHIP-404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmergencyLookupIsPublic(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1")
	cookie := env.login(t, "alice@example.com", "secret1")

	created := env.do(t, http.MethodPost, "/api/medical-profile", gin.H{
		"chipId":     "CHIP-1",
		"bloodType":  "B+",
		"conditions": []string{"asthma"},
		"emergencyContacts": []gin.H{
			{"name": "Dana", "relationship": "spouse", "phone": "+100200300"},
		},
	}, cookie)
	require.Equal(t, http.StatusCreated, created.Code)

	// No cookie: the lookup must work for emergency responders.
	w := env.do(t, http.MethodGet, "/api/emergency/CHIP-1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "B+", body["bloodType"])
	assert.Equal(t, []any{"asthma"}, body["conditions"])

	contacts, ok := body["emergencyContacts"].([]any)
	require.True(t, ok)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Dana", contacts[0].(map[string]any)["name"])

	// Identity and chip data must never leak through the public view.
	assert.NotContains(t, body, "id")
	assert.NotContains(t, body, "userId")
	assert.NotContains(t, body, "chipId")
	assert.NotContains(t, body, "username")
	assert.NotContains(t, body, "email")
	assert.NotContains(t, body, "password")
}

func TestEmergencyLookupResponseShape(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1")
	cookie := env.login(t, "alice@example.com", "secret1")

	created := env.do(t, http.MethodPost, "/api/medical-profile", gin.H{
		"chipId":    "CHIP-1",
		"bloodType": "O+",
		"allergies": []string{"peanuts"},
	}, cookie)
	require.Equal(t, http.StatusCreated, created.Code)

	w := env.do(t, http.MethodGet, "/api/emergency/CHIP-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Omitted lists are empty lists; never-set contacts and notes are null.
	assert.JSONEq(t, `{
		"bloodType": "O+",
		"allergies": ["peanuts"],
		"medications": [],
		"conditions": [],
		"emergencyContacts": null,
		"notes": null
	}`, w.Body.String())
}
