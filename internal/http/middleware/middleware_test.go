package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecolog/freightquote/internal/config"
	"github.com/ecolog/freightquote/internal/http/middleware"
	"github.com/ecolog/freightquote/internal/observability"
)

func TestChain_Order(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := middleware.Chain(tag("first"), tag("second"), tag("third"))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			order = append(order, "handler")
			w.WriteHeader(http.StatusNoContent)
		}),
	)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "third", "handler"}, order)
}

func TestTrace_InjectsIDs(t *testing.T) {
	var requestID, traceID string
	handler := middleware.Trace()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		requestID = observability.GetRequestID(r.Context())
		traceID = observability.GetTraceID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, traceID, 32)
	require.NotEmpty(t, requestID)
	require.Equal(t, requestID, w.Header().Get("X-Request-Id"))
	require.Equal(t, traceID, w.Header().Get("X-Trace-Id"))

	t.Run("keeps caller request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", "req-from-dashboard")

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		require.Equal(t, "req-from-dashboard", requestID)
		require.Equal(t, "req-from-dashboard", w.Header().Get("X-Request-Id"))
	})
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects beyond burst", func(t *testing.T) {
		handler := middleware.RateLimit(&config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2})(ok)

		codes := make([]int, 0, 3)
		for range 3 {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			codes = append(codes, w.Code)
		}
		require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("disabled when rate is zero", func(t *testing.T) {
		handler := middleware.RateLimit(&config.RateLimitConfig{RequestsPerSecond: 0})(ok)

		for range 100 {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestCORS_Preflight(t *testing.T) {
	handler := middleware.CORS(&config.CORSConfig{
		AllowedOrigins: []string{"https://ecolog.com.br"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/quotations/estimate", nil)
	req.Header.Set("Origin", "https://ecolog.com.br")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, "https://ecolog.com.br", w.Header().Get("Access-Control-Allow-Origin"))
}
