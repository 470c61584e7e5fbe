package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observedRequest struct {
	method string
	path   string
	status int
}

type fakeObserver struct {
	requests []observedRequest
}

func (f *fakeObserver) ObserveRequest(method, path string, status int, _ time.Duration) {
	f.requests = append(f.requests, observedRequest{method, path, status})
}

func TestLoggingMiddleware(t *testing.T) {
	t.Run("Propaga o ID de correlação recebido", func(t *testing.T) {
		observer := &fakeObserver{}
		handler := LoggingMiddleware(observer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

		req := httptest.NewRequest(http.MethodPost, "/v1/optimization-insights/analyze", nil)
		req.Header.Set(CorrelationIDHeader, "abc-123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "abc-123", rec.Header().Get(CorrelationIDHeader))
		require.Len(t, observer.requests, 1)
		assert.Equal(t, observedRequest{http.MethodPost, "/v1/optimization-insights/analyze", http.StatusCreated}, observer.requests[0])
	})

	t.Run("Gera um ID quando não recebe", func(t *testing.T) {
		handler := LoggingMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, rec.Header().Get(CorrelationIDHeader), 36)
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"SRV_001"`)
}

func TestCors(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		origins  []string
		method   string
		origin   string
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:    "Origem liberada recebe os cabeçalhos",
			origins: []string{"http://localhost:3000"},
			method:  http.MethodGet,
			origin:  "http://localhost:3000",
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
			},
		},
		{
			name:    "Origem desconhecida não recebe cabeçalhos",
			origins: []string{"http://localhost:3000"},
			method:  http.MethodGet,
			origin:  "https://evil.example",
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			},
		},
		{
			name:    "Preflight responde sem chamar o handler",
			origins: []string{"*"},
			method:  http.MethodOptions,
			origin:  "https://app.example",
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNoContent, rec.Code)
				assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/optimization-insights/analyze", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			Cors(tt.origins)(next).ServeHTTP(rec, req)

			tt.validate(t, rec)
		})
	}
}
