package server

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-chi-polynomial/internal/calculator"
	"go-chi-polynomial/internal/observability"
	"go-chi-polynomial/internal/store"
	"go-chi-polynomial/internal/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	observability.Logger = zap.NewNop()

	s, err := store.New(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	return NewRouter(calculator.NewHandler(s, 64))
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// Touch the store so its counter vector has a series to expose.
	_ = testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/calculator/polynomials/missing", nil), router)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/metrics", nil), router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	if !strings.Contains(w.Body.String(), "polynomial_store_operations_total") {
		t.Fatal("expected store counter in /metrics output")
	}
}

func TestNewRouterCalculatorAddEchoesRequestID(t *testing.T) {
	if err := calculator.InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/add",
		`{"a":{"coefficients":[6,-2,5],"exponents":[0,1,3]},"b":{"text":"-3.0x3+2.0x1+10.0x5-5.0x2"}}`)
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Result().Body, &payload)

	if got := payload["request_id"]; got != requestID {
		t.Fatalf("expected request_id %q in body, got %#v", requestID, got)
	}

	result, ok := payload["result"].(map[string]any)
	if !ok {
		t.Fatalf("expected result object, got %#v", payload["result"])
	}
	if got := result["pretty"]; got != "6-5x^2+2x^3+10x^5" {
		t.Fatalf("expected pretty %q, got %#v", "6-5x^2+2x^3+10x^5", got)
	}
}

func TestNewRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/calculator/divide", nil), router)

	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)
}
