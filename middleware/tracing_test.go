package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracingNamesSpansByRoute(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	router := mux.NewRouter()
	router.Use(Tracing)
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, id := range []string{"64b7f0f0f0f0f0f0f0f0f0f0", "64b7f0f0f0f0f0f0f0f0f0f1"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	for _, s := range spans {
		assert.Equal(t, "GET /api/products/{id}", s.Name())
	}
}

func TestSpanNameWithoutRoute(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/plain", nil)
	assert.Equal(t, "GET /plain", spanName(r))
}
