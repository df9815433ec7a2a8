// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/forkful/forkful/internal/database"
	"github.com/forkful/forkful/internal/logging"
	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/validation"
)

// maxBodyBytes caps request bodies; recipe payloads are small.
const maxBodyBytes = 1 << 20

// sanitizeLogValue replaces control characters so attacker-controlled
// strings cannot forge log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends an APIResponse with proper headers.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a weak ETag from the payload using FNV-1a.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends a structured error response.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().
			Str("code", sanitizeLogValue(code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Success: false,
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondStoreError maps persistence and breaker failures onto the API
// error vocabulary.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
	case errors.Is(err, database.ErrDuplicate):
		respondError(w, http.StatusConflict, "DUPLICATE", "Resource already exists", nil)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"Storage temporarily unavailable, try again shortly", err)
	default:
		respondError(w, http.StatusInternalServerError, "STORE_ERROR",
			"Failed to access storage", err)
	}
}

// decodeJSONBody reads and decodes a JSON request body into dest.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"Request body is not valid JSON: "+err.Error(), nil)
		return false
	}
	return true
}

// validateRequest validates a request struct and writes the validation
// error response on failure. Returns true when the request is valid.
func validateRequest(w http.ResponseWriter, v interface{}) bool {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return true
	}

	apiErr := validationErr.ToAPIError()
	respondJSON(w, http.StatusBadRequest, &models.APIResponse{
		Success: false,
		Error: &models.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		},
	})
	return false
}

// requireUUIDParam validates that a path or query identifier is a UUID.
// Writes the INVALID_ID response and returns false when it is not.
func requireUUIDParam(w http.ResponseWriter, name, value string) bool {
	if _, err := uuid.Parse(value); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID",
			fmt.Sprintf("%s is not a valid UUID", name), nil)
		return false
	}
	return true
}
