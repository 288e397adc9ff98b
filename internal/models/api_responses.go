// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

// Package models defines the shared API wire types.
package models

import (
	"time"
)

// APIResponse is the standardized wrapper returned by every HTTP
// endpoint, for both successful and error responses.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"recommendations": [...], "total_candidates": 12},
//	  "metadata": {
//	    "timestamp": "2026-09-01T12:00:00Z",
//	    "latency_ms": 3,
//	    "cached": false
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "Invalid interaction type",
//	    "details": {"field": "type"}
//	  },
//	  "metadata": {"timestamp": "2026-09-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability. LatencyMS is
// the server-side processing time; Cached reports whether the payload
// came from the engine's response cache.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	LatencyMS int64     `json:"latency_ms,omitempty"`
	Cached    bool      `json:"cached,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// APIError carries structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - STORAGE_UNAVAILABLE: Interaction store cannot be reached
//   - NOT_FOUND: Resource doesn't exist
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - INTERNAL_ERROR: Unexpected server failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes used across handlers.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)
