package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "github.com/couchcryptid/unit-converter-service/internal/adapter/http"
	"github.com/couchcryptid/unit-converter-service/internal/domain"
	"github.com/couchcryptid/unit-converter-service/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(t *testing.T, readyErr error) (*httpadapter.Server, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, metrics, slog.Default()), metrics
}

func do(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv, _ := newTestServer(t, fmt.Errorf("conversion pipeline is not running"))
	rec := do(t, srv, http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "conversion pipeline is not running", body["error"])
}

func TestAlwaysReady(t *testing.T) {
	srv := httpadapter.NewServer(":0", httpadapter.AlwaysReady{}, observability.NewMetricsForTesting(), slog.Default())
	rec := do(t, srv, http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestListCategories(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/api/v1/categories", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body []struct {
		Category string   `json:"category"`
		Title    string   `json:"title"`
		Units    []string `json:"units"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 3)
	assert.Equal(t, "length", body[0].Category)
	assert.Equal(t, "Length", body[0].Title)
	assert.Equal(t, domain.Units(domain.Length), body[0].Units)
	assert.Equal(t, "Temperature", body[2].Title)
}

func TestListUnits(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	t.Run("known category", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/v1/categories/Weight/units", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Category string   `json:"category"`
			Units    []string `json:"units"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "weight", body.Category)
		assert.Equal(t, []string{"mg", "g", "kg", "ton", "ounce", "pound"}, body.Units)
	})

	t.Run("unknown category", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/v1/categories/volume/units", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "unknown category")
	})
}

func TestConvert(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { domain.SetClock(clockwork.NewRealClock()) })

	srv, metrics := newTestServer(t, nil)
	rec := do(t, srv, http.MethodPost, "/api/v1/convert",
		`{"category":"length","value":1,"from":"m","to":"mm"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var res domain.ConversionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, domain.Length, res.Category)
	assert.Equal(t, 1000.0, res.Result)
	assert.Equal(t, "1 m = 1000.00 mm", res.Display)
	assert.Empty(t, res.Error)
	assert.True(t, fixed.Equal(res.ProcessedAt))
	assert.NotEmpty(t, res.ID)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Conversions.WithLabelValues("length", observability.OutcomeSuccess)))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.HTTPRequestDuration))
}

func TestConvert_ZeroValueIsAccepted(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := do(t, srv, http.MethodPost, "/api/v1/convert",
		`{"category":"temperature","value":0,"from":"celsius","to":"fahrenheit"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var res domain.ConversionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 32.0, res.Result)
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "malformed json",
			body:       `{"category":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "unknown field",
			body:       `{"category":"length","value":1,"from":"m","to":"mm","precision":4}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "missing value",
			body:       `{"category":"length","from":"m","to":"mm"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "value is required",
		},
		{
			name:       "missing units",
			body:       `{"category":"length","value":1}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "from is required; to is required",
		},
		{
			name:       "negative length",
			body:       `{"category":"length","value":-1,"from":"m","to":"mm"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "must not be negative",
		},
		{
			name:       "result overflows",
			body:       `{"category":"weight","value":1e300,"from":"ton","to":"mg"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "out of range",
		},
		{
			name:       "unknown unit",
			body:       `{"category":"length","value":1,"from":"m","to":"parsecs"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  `unknown length unit "parsecs"`,
		},
		{
			name:       "unknown category",
			body:       `{"category":"volume","value":1,"from":"l","to":"ml"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "unknown category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, nil)
			rec := do(t, srv, http.MethodPost, "/api/v1/convert", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body["error"], tt.wantError)
		})
	}
}

func TestConvert_NegativeTemperatureAccepted(t *testing.T) {
	srv, metrics := newTestServer(t, nil)
	rec := do(t, srv, http.MethodPost, "/api/v1/convert",
		`{"category":"temperature","value":-40,"from":"celsius","to":"fahrenheit"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Conversions.WithLabelValues("temperature", observability.OutcomeSuccess)))
}

func TestConvert_UnknownUnitCounted(t *testing.T) {
	srv, metrics := newTestServer(t, nil)
	do(t, srv, http.MethodPost, "/api/v1/convert",
		`{"category":"weight","value":1,"from":"stone","to":"kg"}`)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Conversions.WithLabelValues("weight", observability.OutcomeUnknownUnit)))
}

func TestConvert_OverflowCountedInvalid(t *testing.T) {
	srv, metrics := newTestServer(t, nil)
	do(t, srv, http.MethodPost, "/api/v1/convert",
		`{"category":"length","value":1e308,"from":"mile","to":"mm"}`)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Conversions.WithLabelValues("length", observability.OutcomeInvalid)))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.Conversions.WithLabelValues("length", observability.OutcomeSuccess)))
}
