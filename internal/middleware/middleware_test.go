// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forkful/forkful/internal/logging"
)

func TestRequestIDGeneratesWhenAbsent(t *testing.T) {
	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = logging.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil))

	if captured == "" {
		t.Error("expected a generated request ID in context")
	}
	if got := rec.Header().Get(RequestIDHeader); got != captured {
		t.Errorf("response header %q does not match context ID %q", got, captured)
	}
}

func TestRequestIDEchoesInbound(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
	req.Header.Set(RequestIDHeader, "client-supplied-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "client-supplied-id" {
		t.Errorf("expected inbound request ID to be echoed, got %q", got)
	}
}

func TestMetricsResponseWriterCapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	mw := &metricsResponseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	mw.WriteHeader(http.StatusTeapot)
	mw.WriteHeader(http.StatusOK) // second write must not overwrite

	if mw.statusCode != http.StatusTeapot {
		t.Errorf("expected captured status 418, got %d", mw.statusCode)
	}
}

func TestMetricsResponseWriterImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	mw := &metricsResponseWriter{ResponseWriter: rec}

	if _, err := mw.Write([]byte("ok")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if mw.statusCode != http.StatusOK {
		t.Errorf("expected implicit 200 on first Write, got %d", mw.statusCode)
	}
}
