package optimizing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
	"github.com/vfg2006/traffic-optimizer-api/pkg/apiErrors"
	"github.com/vfg2006/traffic-optimizer-api/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

type Optimizer interface {
	Analyze(ctx context.Context, request *domain.AnalyzeRequest) (*domain.OptimizationReport, error)
	RunModule(ctx context.Context, campaignID string, module string, filters *domain.InsigthFilters) (*domain.OptimizationReport, error)
	GetCampaignConfig(ctx context.Context, campaignID string) (*domain.CampaignConfig, error)
	SaveCampaignConfig(ctx context.Context, campaignID string, cfg domain.ModuleConfig) (*domain.CampaignConfig, error)
}

type Service struct {
	source       AdSetSource
	store        ConfigStore
	orchestrator *Orchestrator
	thresholds   Thresholds
	recorder     Recorder
	now          func() time.Time
}

func NewService(
	source AdSetSource,
	store ConfigStore,
	orchestrator *Orchestrator,
	thresholds Thresholds,
	recorder Recorder,
) Optimizer {
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &Service{
		source:       source,
		store:        store,
		orchestrator: orchestrator,
		thresholds:   thresholds.Normalize(),
		recorder:     recorder,
		now:          time.Now,
	}
}

// Analyze busca os ad sets da campanha, resolve as metas e executa os módulos pedidos.
// Modules nil equivale a "all".
func (s *Service) Analyze(ctx context.Context, request *domain.AnalyzeRequest) (*domain.OptimizationReport, error) {
	report, err := s.analyze(ctx, request)
	if err != nil {
		s.recorder.ObserveError(errorCode(err))
		return nil, err
	}
	return report, nil
}

func (s *Service) RunModule(ctx context.Context, campaignID string, module string, filters *domain.InsigthFilters) (*domain.OptimizationReport, error) {
	if _, err := ParseModule(module); err != nil {
		s.recorder.ObserveError(errorCode(err))
		return nil, err
	}

	return s.Analyze(ctx, &domain.AnalyzeRequest{
		CampaignID: campaignID,
		Modules:    []string{module},
		Filters:    filters,
	})
}

func (s *Service) analyze(ctx context.Context, request *domain.AnalyzeRequest) (*domain.OptimizationReport, error) {
	started := s.now()

	if request == nil || strings.TrimSpace(request.CampaignID) == "" {
		return nil, &OptimizationError{
			Err:     ErrInvalidInput,
			Code:    apiErrors.ErrMissingRequiredData,
			Field:   "campaign_id",
			Details: "campaign_id is required",
		}
	}

	ctx = log.WithCampaignID(ctx, request.CampaignID)
	logger := log.ForContext(ctx)

	modules := request.Modules
	if modules == nil {
		modules = []string{AllModulesKeyword}
	}
	selection, err := ParseModuleSelection(modules)
	if err != nil {
		return nil, err
	}

	if err := ValidateModuleConfig(request.Overrides); err != nil {
		return nil, err
	}

	if err := request.Filters.Validate(); err != nil {
		return nil, &OptimizationError{
			Err:     ErrInvalidInput,
			Code:    apiErrors.ErrInvalidFormat,
			Field:   "date_range",
			Details: err.Error(),
		}
	}

	raw, err := s.source.GetAdSetMetrics(ctx, request.CampaignID, request.Filters)
	if err != nil {
		logger.WithFields(log.Fields{
			"campaign_id": request.CampaignID,
			"error":       err.Error(),
		}).Error("optimizing: failed to fetch ad set metrics")

		return nil, &OptimizationError{Err: ErrDataSource, Code: apiErrors.ErrDataSource, Details: err.Error()}
	}

	if len(raw) == 0 {
		return nil, NewOptimizationError(ErrInvalidInput, apiErrors.ErrNoAdSets, "no ad sets found for campaign "+request.CampaignID)
	}

	stored, err := s.configFor(ctx, request.CampaignID)
	if err != nil {
		return nil, err
	}

	enriched := EnrichAll(raw)
	resolved := ResolveConfig(stored.Merge(request.Overrides), enriched, s.thresholds)

	result, err := s.orchestrator.Run(selection, enriched, resolved)
	if err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{
		"campaign_id":     request.CampaignID,
		"run_id":          result.RunID,
		"adsets":          len(enriched),
		"recommendations": result.Summary.TotalRecommendations,
		"modules_run":     result.Summary.ModulesRun,
		"modules_failed":  result.Summary.ModulesFailed,
	}).Info("optimizing: analysis completed")

	s.recorder.ObserveAnalysis(result, len(enriched), s.now().Sub(started))

	return &domain.OptimizationReport{
		CampaignID:      request.CampaignID,
		RunID:           result.RunID,
		Recommendations: result.Recommendations,
		Summary:         result.Summary,
		Config:          resolved,
		Failures:        result.Failures,
		AdSetsAnalyzed:  len(enriched),
		AnalyzedAt:      s.now(),
	}, nil
}

func (s *Service) configFor(ctx context.Context, campaignID string) (domain.ModuleConfig, error) {
	if s.store == nil {
		return domain.ModuleConfig{}, nil
	}

	stored, err := s.store.GetByCampaignID(ctx, campaignID)
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"campaign_id": campaignID,
			"error":       err.Error(),
		}).Error("optimizing: failed to load campaign config")

		return domain.ModuleConfig{}, NewOptimizationError(ErrConfigStore, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return stored.ModuleConfig(), nil
}

func (s *Service) GetCampaignConfig(ctx context.Context, campaignID string) (*domain.CampaignConfig, error) {
	if strings.TrimSpace(campaignID) == "" {
		return nil, &OptimizationError{Err: ErrInvalidInput, Code: apiErrors.ErrMissingRequiredData, Field: "campaign_id"}
	}

	stored, err := s.store.GetByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, NewOptimizationError(ErrConfigStore, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if stored == nil {
		return &domain.CampaignConfig{CampaignID: campaignID}, nil
	}

	return stored, nil
}

// SaveCampaignConfig valida as metas e grava a configuração da campanha.
// account_avg_cpa é sempre derivado e nunca é persistido.
func (s *Service) SaveCampaignConfig(ctx context.Context, campaignID string, cfg domain.ModuleConfig) (*domain.CampaignConfig, error) {
	if strings.TrimSpace(campaignID) == "" {
		return nil, &OptimizationError{Err: ErrInvalidInput, Code: apiErrors.ErrMissingRequiredData, Field: "campaign_id"}
	}

	if err := ValidateModuleConfig(cfg); err != nil {
		return nil, err
	}

	saved, err := s.store.SaveOrUpdate(ctx, &domain.CampaignConfig{
		CampaignID: campaignID,
		TargetCPA:  cfg.TargetCPA,
		TargetROAS: cfg.TargetROAS,
	})
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"campaign_id": campaignID,
			"error":       err.Error(),
		}).Error("optimizing: failed to save campaign config")

		return nil, NewOptimizationError(ErrConfigStore, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return saved, nil
}

func errorCode(err error) string {
	var optErr *OptimizationError
	if errors.As(err, &optErr) {
		return optErr.Code
	}
	return apiErrors.ErrInternalServer
}
