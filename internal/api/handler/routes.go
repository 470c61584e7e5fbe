package handler

import (
	"net/http"

	"github.com/vfg2006/traffic-optimizer-api/internal/api/handler/router"
	"github.com/vfg2006/traffic-optimizer-api/internal/usecases/optimizing"
)

func Healthcheck(checks map[string]Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(checks),
		},
	}
}

func Metrics(handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}

func OptimizationInsights(service optimizing.Optimizer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/optimization-insights/analyze",
			Method:  http.MethodPost,
			Handler: AnalyzeCampaign(service),
		},
		{
			Path:    "/v1/optimization-insights/module/:module_name",
			Method:  http.MethodPost,
			Handler: RunOptimizationModule(service),
		},
		{
			Path:    "/v1/optimization-insights/config",
			Method:  http.MethodPost,
			Handler: SaveCampaignConfig(service),
		},
		{
			Path:    "/v1/optimization-insights/config/:campaign_id",
			Method:  http.MethodGet,
			Handler: GetCampaignConfig(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
		{
			Path:    "/v1/optimization-insights/digest",
			Method:  http.MethodGet,
			Handler: GetDigest(services),
		},
	}
}
