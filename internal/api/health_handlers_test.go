package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[HealthResponse](t, resp.Body.Bytes())
	assert.True(t, envelope.Success)
	assert.Equal(t, "healthy", envelope.Data.Status)
	assert.Equal(t, "healthy", envelope.Data.Components["store"].Status)
	assert.Equal(t, "healthy", envelope.Data.Components["sse"].Status)
}

func TestGetInstance(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/instance")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[InstanceResponse](t, resp.Body.Bytes())
	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.InstallID)
	assert.Equal(t, "Test Server", envelope.Data.Name)
	assert.False(t, envelope.Data.CreatedAt.IsZero())
}

func TestGetInstance_InstallIDStableAcrossServers(t *testing.T) {
	ts := setupTestServer(t)

	first := decodeEnvelope[InstanceResponse](t, ts.api.Get("/api/v1/instance").Body.Bytes())
	second := decodeEnvelope[InstanceResponse](t, ts.api.Get("/api/v1/instance").Body.Bytes())

	assert.Equal(t, first.Data.InstallID, second.Data.InstallID)
}
