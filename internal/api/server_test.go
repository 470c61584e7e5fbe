package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-optimizer-api/internal/config"
	"github.com/vfg2006/traffic-optimizer-api/internal/metrics"
	"github.com/vfg2006/traffic-optimizer-api/internal/usecases/optimizing/mocks"
	"go.uber.org/mock/gomock"
)

func TestNewHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{Server: config.Server{AllowedOrigins: []string{"http://localhost:3000"}}}
	registry := metrics.NewRegistry()
	handler := NewHandler(cfg, mocks.NewMockOptimizer(ctrl), nil, registry, nil)

	t.Run("Healthcheck responde 200", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
	})

	t.Run("Rota desconhecida responde com o corpo de erro padrão", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/unknown", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"VAL_004"`)
	})

	t.Run("Método não suportado", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/optimization-insights/analyze", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"VAL_005"`)
	})

	t.Run("Métricas incluem as requisições anteriores", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `traffic_optimizer_http_requests_total{method="GET",status="404"} 1`)
	})
}

func TestNew(t *testing.T) {
	_, err := New(&config.Config{}, nil, nil, nil, nil)
	assert.Error(t, err)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv, err := New(&config.Config{Server: config.Server{Host: "127.0.0.1", Port: "0"}}, mocks.NewMockOptimizer(ctrl), nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", srv.httpServer.Addr)
}
