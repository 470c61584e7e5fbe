package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-optimizer-api/internal/scheduler"
	"github.com/vfg2006/traffic-optimizer-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeDigest = "optimization-digest"
	CronJobTypeAll    = "all"
)

// DigestRunner é o serviço de resumo agendado visto pelos handlers
type DigestRunner interface {
	TriggerManualRun()
	GetStatus() map[string]any
	Entries() []scheduler.DigestEntry
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	OptimizationDigestService DigestRunner
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		logrus.WithField("type", cronType).Info("cron: manual run requested")

		switch cronType {
		case CronJobTypeDigest, CronJobTypeAll:
			if services.OptimizationDigestService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de resumo de otimização não disponível", nil)
				return
			}
			services.OptimizationDigestService.TriggerManualRun()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: optimization-digest, all", nil)
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.OptimizationDigestService != nil {
			status[CronJobTypeDigest] = services.OptimizationDigestService.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}

// GetDigest retorna o último resultado agendado de cada campanha
func GetDigest(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entries := []scheduler.DigestEntry{}
		if services.OptimizationDigestService != nil {
			entries = services.OptimizationDigestService.Entries()
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"campaigns": entries})
	})
}
