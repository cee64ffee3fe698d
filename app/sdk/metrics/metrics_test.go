package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Counters(t *testing.T) {
	ctx := context.Background()

	errorsBefore := testutil.ToFloat64(m.errors)
	panicsBefore := testutil.ToFloat64(m.panics)

	AddErrors(ctx)
	AddPanics(ctx)
	AddPanics(ctx)
	AddRequest(ctx, http.MethodGet, "GET /api/vehicles", http.StatusOK, 20*time.Millisecond)

	assert.Equal(t, errorsBefore+1, testutil.ToFloat64(m.errors))
	assert.Equal(t, panicsBefore+2, testutil.ToFloat64(m.panics))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "GET /api/vehicles", "200")))
}

func Test_Handler(t *testing.T) {
	AddRequest(context.Background(), http.MethodPost, "POST /api/slots", http.StatusCreated, time.Millisecond)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `kangaroute_http_requests_total{method="POST",path="POST /api/slots",status="201"}`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
