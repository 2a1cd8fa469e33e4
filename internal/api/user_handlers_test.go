package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUser_Defaults(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/user")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[UserResponse](t, resp.Body.Bytes())
	assert.False(t, envelope.Data.IsOnboarded)
	assert.Empty(t, envelope.Data.Profile.Name)
}

func TestCompleteOnboarding(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/user/onboarding", map[string]any{
		"name": "Rahim",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[UserResponse](t, resp.Body.Bytes())
	assert.True(t, envelope.Data.IsOnboarded)
	assert.Equal(t, "Rahim", envelope.Data.Profile.Name)
}

func TestCompleteOnboarding_ResetsProfile(t *testing.T) {
	ts := setupTestServer(t)

	patchResp := ts.api.Patch("/api/v1/user/profile", map[string]any{
		"bio": "likes fish curry",
	})
	require.Equal(t, http.StatusOK, patchResp.Code)

	resp := ts.api.Post("/api/v1/user/onboarding", map[string]any{
		"name": "Rahim",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[UserResponse](t, resp.Body.Bytes())
	assert.Equal(t, "Rahim", envelope.Data.Profile.Name)
	assert.Empty(t, envelope.Data.Profile.Bio, "onboarding starts from a fresh profile")
}

func TestUpdateProfile(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Patch("/api/v1/user/profile", map[string]any{
		"name":  "Rahim",
		"email": "rahim@example.com",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[UserResponse](t, resp.Body.Bytes())
	assert.Equal(t, "Rahim", envelope.Data.Profile.Name)
	assert.Equal(t, "rahim@example.com", envelope.Data.Profile.Email)
	assert.False(t, envelope.Data.IsOnboarded, "editing the profile does not complete onboarding")
}

func TestUpdateProfile_BadEmail(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Patch("/api/v1/user/profile", map[string]any{
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	envelope := decodeEnvelope[struct{}](t, resp.Body.Bytes())
	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestSignOut(t *testing.T) {
	ts := setupTestServer(t)

	onboardResp := ts.api.Post("/api/v1/user/onboarding", map[string]any{
		"name": "Rahim",
	})
	require.Equal(t, http.StatusOK, onboardResp.Code)

	resp := ts.api.Post("/api/v1/user/signout")
	assert.Equal(t, http.StatusNoContent, resp.Code)

	getResp := ts.api.Get("/api/v1/user")
	envelope := decodeEnvelope[UserResponse](t, getResp.Body.Bytes())
	assert.False(t, envelope.Data.IsOnboarded)
	assert.Empty(t, envelope.Data.Profile.Name)
}
