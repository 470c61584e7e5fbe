package optimizing

import (
	"context"
	"time"

	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces_mock.go -package=mocks

// AdSetSource fornece as métricas dos ad sets de uma campanha
type AdSetSource interface {
	GetAdSetMetrics(ctx context.Context, campaignID string, filters *domain.InsigthFilters) ([]domain.RawAdSetMetrics, error)
}

// ConfigStore persiste as metas por campanha.
// GetByCampaignID devolve nil, nil quando não há configuração salva.
type ConfigStore interface {
	GetByCampaignID(ctx context.Context, campaignID string) (*domain.CampaignConfig, error)
	SaveOrUpdate(ctx context.Context, config *domain.CampaignConfig) (*domain.CampaignConfig, error)
}

// Recorder registra métricas das execuções
type Recorder interface {
	ObserveAnalysis(result *domain.AnalysisResult, adSets int, duration time.Duration)
	ObserveError(code string)
}

type noopRecorder struct{}

func (noopRecorder) ObserveAnalysis(*domain.AnalysisResult, int, time.Duration) {}
func (noopRecorder) ObserveError(string)                                       {}
