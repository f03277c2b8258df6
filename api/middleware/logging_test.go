package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jpcarreras/garagehub-admin/pkg/logger"
)

func TestLoggingCapturesDownstreamStatus(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Output: &buf})

	handler := Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/payments/x", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusTeapot {
		t.Fatalf("status must pass through to the client, got %d", resp.Code)
	}
	out := buf.String()
	if !strings.Contains(out, "request.complete") {
		t.Fatalf("missing completion line: %s", out)
	}
	if !strings.Contains(out, `"status":418`) {
		t.Fatalf("completion line should carry the downstream status: %s", out)
	}
}

func TestLoggingDefaultsImplicitOK(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Output: &buf})

	handler := Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Writing a body without an explicit WriteHeader is a 200.
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if !strings.Contains(buf.String(), `"status":200`) {
		t.Fatalf("implicit writes should log as 200: %s", buf.String())
	}
}

func TestLoggingNilLoggerPassesThrough(t *testing.T) {
	handler := Logging(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.Code)
	}
}
