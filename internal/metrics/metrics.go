package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
)

const namespace = "traffic_optimizer"

// Registry agrupa as métricas das análises de otimização
type Registry struct {
	registry *prometheus.Registry

	Analyses         prometheus.Counter
	AnalysisDuration prometheus.Histogram
	AdSetsAnalyzed   prometheus.Histogram
	Recommendations  *prometheus.CounterVec
	DetectorFailures *prometheus.CounterVec
	Errors           *prometheus.CounterVec
	EstimatedSavings prometheus.Counter
	EstimatedRevenue prometheus.Counter
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		Analyses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Total number of completed optimization analyses",
			},
		),

		AnalysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_duration_seconds",
				Help:      "Duration of an optimization analysis, data fetch included",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),

		AdSetsAnalyzed: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "adsets_per_analysis",
				Help:      "Number of ad sets evaluated per analysis",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
		),

		Recommendations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recommendations_total",
				Help:      "Recommendations emitted by module and priority",
			},
			[]string{"module", "priority"},
		),

		DetectorFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "detector_failures_total",
				Help:      "Detector executions that failed and were isolated",
			},
			[]string{"module"},
		),

		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analysis_errors_total",
				Help:      "Analyses rejected or aborted, by error code",
			},
			[]string{"code"},
		),

		EstimatedSavings: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "estimated_savings_total",
				Help:      "Sum of estimated savings across analyses",
			},
		),

		EstimatedRevenue: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "estimated_revenue_increase_total",
				Help:      "Sum of estimated revenue increase across analyses",
			},
		),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method and status code",
			},
			[]string{"method", "status"},
		),

		// path fica fora dos labels: rotas com campaign_id explodiriam a cardinalidade
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration by method",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.Analyses,
		r.AnalysisDuration,
		r.AdSetsAnalyzed,
		r.Recommendations,
		r.DetectorFailures,
		r.Errors,
		r.EstimatedSavings,
		r.EstimatedRevenue,
		r.HTTPRequests,
		r.HTTPDuration,
	)

	return r
}

func (r *Registry) ObserveAnalysis(result *domain.AnalysisResult, adSets int, duration time.Duration) {
	r.Analyses.Inc()
	r.AnalysisDuration.Observe(duration.Seconds())
	r.AdSetsAnalyzed.Observe(float64(adSets))

	if result == nil {
		return
	}

	for _, rec := range result.Recommendations {
		r.Recommendations.WithLabelValues(string(rec.Module), string(rec.Priority)).Inc()
	}

	for _, failure := range result.Failures {
		r.DetectorFailures.WithLabelValues(string(failure.Module)).Inc()
	}

	// contadores não aceitam valores negativos
	if savings := result.Summary.TotalEstimatedSavings.InexactFloat64(); savings > 0 {
		r.EstimatedSavings.Add(savings)
	}
	if revenue := result.Summary.TotalEstimatedRevenueIncrease.InexactFloat64(); revenue > 0 {
		r.EstimatedRevenue.Add(revenue)
	}
}

func (r *Registry) ObserveError(code string) {
	if code == "" {
		code = "unknown"
	}
	r.Errors.WithLabelValues(code).Inc()
}

func (r *Registry) ObserveRequest(method, _ string, status int, duration time.Duration) {
	r.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	r.HTTPDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// Handler expõe as métricas no formato do Prometheus
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
