// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package models

// APIResponse is the standardized wrapper used by all HTTP endpoints.
//
// Success indicates whether the request completed; Data carries the payload
// for successful responses and Error the details otherwise. Paginated
// listings additionally populate Pagination; fixed-size snapshots such as
// trending omit it.
//
// Example paginated response:
//
//	{
//	  "success": true,
//	  "data": [ {recipe}, {recipe} ],
//	  "pagination": {
//	    "page": 1, "limit": 10, "total": 42, "pages": 5,
//	    "hasNext": true, "hasPrev": false
//	  }
//	}
//
// Example error response:
//
//	{
//	  "success": false,
//	  "error": { "code": "INVALID_ID", "message": "author id is not a valid UUID" }
//	}
type APIResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *APIError   `json:"error,omitempty"`
}

// Pagination carries page metadata for list responses.
//
// Pages is ceil(Total/Limit); HasNext is Page < Pages and HasPrev is
// Page > 1. A page past the end of the result set produces an empty data
// array with HasNext false, never an error.
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// APIError is the structured error payload.
//
// Common codes:
//   - VALIDATION_ERROR: request body failed field validation
//   - INVALID_ID: identifier is not in UUID format
//   - NOT_FOUND: resource does not exist
//   - DUPLICATE: unique constraint violated (username/email)
//   - STORE_ERROR: persistence layer failure (transient)
//   - SERVICE_UNAVAILABLE: circuit breaker open
//   - METHOD_NOT_ALLOWED: route exists but not for this HTTP method
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
