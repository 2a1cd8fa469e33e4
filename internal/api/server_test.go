package api

import (
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/hatkhataapp/hatkhata-server/internal/config"
	"github.com/hatkhataapp/hatkhata-server/internal/domain"
	"github.com/hatkhataapp/hatkhata-server/internal/export"
	"github.com/hatkhataapp/hatkhata-server/internal/sse"
	"github.com/hatkhataapp/hatkhata-server/internal/store"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer creates a server over an in-memory backend.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	manager := sse.NewManager(logger)
	handler := sse.NewHandler(manager, logger)

	st, err := store.New(store.NewMemory(), manager, nil, logger)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Name:        "Test Server",
			Port:        "8080",
			CORSOrigins: []string{"*"},
		},
	}

	srv := NewServer(st, export.NewExporter(st.Lists), handler, cfg, logger)

	return &testServer{
		Server: srv,
		api:    humatest.Wrap(t, srv.api),
	}
}

// decodeEnvelope unmarshals a recorded response body into a typed envelope.
func decodeEnvelope[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()

	var envelope testEnvelope[T]
	err := json.Unmarshal(body, &envelope)
	require.NoError(t, err)
	return envelope
}

// createTestList creates a list through the API and returns it.
func (ts *testServer) createTestList(t *testing.T, title string, items ...map[string]any) domain.BazaarList {
	t.Helper()

	body := map[string]any{"title": title}
	if len(items) > 0 {
		body["items"] = items
	}

	resp := ts.api.Post("/api/v1/lists", body)
	require.Equal(t, http.StatusOK, resp.Code, "create list failed: %s", resp.Body.String())

	envelope := decodeEnvelope[domain.BazaarList](t, resp.Body.Bytes())
	require.True(t, envelope.Success)
	require.NotEmpty(t, envelope.Data.ID)
	return envelope.Data
}
