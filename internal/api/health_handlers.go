package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)

	huma.Register(s.api, huma.Operation{
		OperationID: "getInstance",
		Method:      http.MethodGet,
		Path:        "/api/v1/instance",
		Summary:     "Get server instance",
		Description: "Returns the stable install identity of this server",
		Tags:        []string{"Instance"},
	}, s.handleGetInstance)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy or degraded"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy or degraded"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	// Handle nil store (e.g., in tests)
	if s.store == nil {
		components["store"] = ComponentHealth{Status: "degraded", Message: "store not configured"}
		overall = "degraded"
	} else {
		components["store"] = ComponentHealth{Status: "healthy"}
	}

	if s.sseHandler == nil {
		components["sse"] = ComponentHealth{Status: "degraded", Message: "event stream not configured"}
		if overall == "healthy" {
			overall = "degraded"
		}
	} else {
		components["sse"] = ComponentHealth{Status: "healthy"}
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// InstanceResponse contains server instance data in API responses.
type InstanceResponse struct {
	InstallID string    `json:"install_id" doc:"Stable install identifier"`
	Name      string    `json:"name" doc:"Server name"`
	Version   string    `json:"version" doc:"Server version"`
	CreatedAt time.Time `json:"created_at" doc:"First launch timestamp"`
}

// InstanceOutput wraps the instance response for Huma.
type InstanceOutput struct {
	Body InstanceResponse
}

func (s *Server) handleGetInstance(_ context.Context, _ *struct{}) (*InstanceOutput, error) {
	inst := s.store.Instance

	return &InstanceOutput{
		Body: InstanceResponse{
			InstallID: inst.InstallID,
			Name:      s.cfg.Server.Name,
			Version:   serverVersion,
			CreatedAt: inst.CreatedAt,
		},
	}, nil
}
