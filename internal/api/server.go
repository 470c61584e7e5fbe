package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-optimizer-api/internal/api/handler"
	"github.com/vfg2006/traffic-optimizer-api/internal/api/handler/router"
	"github.com/vfg2006/traffic-optimizer-api/internal/config"
	"github.com/vfg2006/traffic-optimizer-api/internal/metrics"
	"github.com/vfg2006/traffic-optimizer-api/internal/usecases/optimizing"
	"github.com/vfg2006/traffic-optimizer-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// New monta o router com as rotas de otimização e a cadeia de middlewares.
// digest pode ser nil quando o resumo agendado está desabilitado.
func New(
	cfg *config.Config,
	optimizer optimizing.Optimizer,
	digest handler.DigestRunner,
	registry *metrics.Registry,
	checks map[string]handler.Pinger,
) (*Server, error) {
	if optimizer == nil {
		return nil, fmt.Errorf("serviço de otimização não informado")
	}
	if registry == nil {
		registry = metrics.NewRegistry()
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, optimizer, digest, registry, checks),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}, nil
}

// NewHandler expõe o handler HTTP completo, usado também nos testes
func NewHandler(
	cfg *config.Config,
	optimizer optimizing.Optimizer,
	digest handler.DigestRunner,
	registry *metrics.Registry,
	checks map[string]handler.Pinger,
) http.Handler {
	cronServices := handler.CronJobServices{OptimizationDigestService: digest}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(checks)...),
		router.WithRoutes(handler.Metrics(registry.Handler())...),
		router.WithRoutes(handler.OptimizationInsights(optimizer)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(registry),
		middleware.Cors(cfg.Server.AllowedOrigins),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("server: listening")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("server: listen failed")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("server: interrupt signal received")
	case <-ctx.Done():
		logrus.Info("server: application context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("server: graceful shutdown started")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server: shutdown failed")
		return err
	}

	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("server: http server stopped")
	return nil
}
