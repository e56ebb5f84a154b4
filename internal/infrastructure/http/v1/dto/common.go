// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"storechain/internal/core/id"
)

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// IDListResponse for collection listings.
type IDListResponse struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

// NewIDListResponse creates an id list response.
func NewIDListResponse(ids []id.ID) IDListResponse {
	out := make([]string, len(ids))
	for i, v := range ids {
		out[i] = v.String()
	}
	return IDListResponse{IDs: out, Count: len(out)}
}

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func idStrings(ids []id.ID) []string {
	out := make([]string, len(ids))
	for i, v := range ids {
		out[i] = v.String()
	}
	return out
}
