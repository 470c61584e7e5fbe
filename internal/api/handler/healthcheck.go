package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

const healthcheckTimeout = 2 * time.Second

// Pinger é uma dependência verificada pelo healthcheck
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapta uma função ao Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type healthResponse struct {
	Status string            `json:"status"`
	Time   string            `json:"time"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthcheckHandler responde 503 quando alguma dependência não responde ao ping
func HealthcheckHandler(checks map[string]Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
		defer cancel()

		response := healthResponse{
			Status: "ok",
			Time:   time.Now().Format(time.RFC3339),
		}
		status := http.StatusOK

		names := make([]string, 0, len(checks))
		for name := range checks {
			names = append(names, name)
		}
		sort.Strings(names)

		if len(names) > 0 {
			response.Checks = make(map[string]string, len(names))
		}
		for _, name := range names {
			if err := checks[name].Ping(ctx); err != nil {
				logrus.WithFields(logrus.Fields{
					"dependency": name,
					"error":      err.Error(),
				}).Warn("healthcheck: dependency unavailable")

				response.Checks[name] = "unavailable"
				response.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			response.Checks[name] = "ok"
		}

		writeJSON(w, r, status, response)
	})
}
