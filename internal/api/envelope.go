package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the wire protocol version for response envelopes.
// Bump only when the envelope structure itself changes, not the payloads.
const envelopeVersion = 1

// Envelope is the consistent JSON structure wrapping every API response.
//
// Success:        {"v": 1, "success": true, "data": {...}}
// Simple error:   {"v": 1, "success": false, "error": "message"}
// Detailed error: {"v": 1, "success": false, "code": "...", "message": "...", "details": {...}}
type Envelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps all huma responses in the versioned envelope.
// The client depends on the exact field names here, in particular "v".
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		if apiErr.Code != "" {
			return &Envelope{
				V:       envelopeVersion,
				Success: false,
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			}, nil
		}
		return &Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
		}, nil
	}

	return &Envelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
