package optimizing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
	"github.com/vfg2006/traffic-optimizer-api/internal/usecases/optimizing/mocks"
	"github.com/vfg2006/traffic-optimizer-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func campaignAdSets() []domain.RawAdSetMetrics {
	return []domain.RawAdSetMetrics{
		{AdSetID: "as_1", Spend: dec("100"), Impressions: 10000, Clicks: 200, Actions: purchases(10)},
		{AdSetID: "as_2", Spend: dec("200"), Impressions: 12000, Clicks: 240, Actions: purchases(10)},
	}
}

func TestService_Analyze(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		request  *domain.AnalyzeRequest
		setup    func(source *mocks.MockAdSetSource, store *mocks.MockConfigStore, recorder *mocks.MockRecorder)
		validate func(t *testing.T, report *domain.OptimizationReport, err error)
	}{
		{
			name:    "Sem configuração salva - usa média da conta e ROAS padrão",
			request: &domain.AnalyzeRequest{CampaignID: "cmp_1"},
			setup: func(source *mocks.MockAdSetSource, store *mocks.MockConfigStore, recorder *mocks.MockRecorder) {
				source.EXPECT().GetAdSetMetrics(gomock.Any(), "cmp_1", gomock.Nil()).Return(campaignAdSets(), nil)
				store.EXPECT().GetByCampaignID(gomock.Any(), "cmp_1").Return(nil, nil)
				recorder.EXPECT().ObserveAnalysis(gomock.Any(), 2, gomock.Any())
			},
			validate: func(t *testing.T, report *domain.OptimizationReport, err error) {
				require.NoError(t, err)
				assert.Equal(t, "cmp_1", report.CampaignID)
				assert.Equal(t, "svc", report.RunID)
				assert.Equal(t, 2, report.AdSetsAnalyzed)
				assert.False(t, report.Config.TargetCPA.Valid)
				assertNullDecimal(t, "15", report.Config.AccountAvgCPA)
				assertNullDecimal(t, "4", report.Config.TargetROAS)
				assert.Equal(t, domain.AllModules(), report.Summary.ModulesRun)
			},
		},
		{
			name: "Override da requisição tem precedência sobre a configuração salva",
			request: &domain.AnalyzeRequest{
				CampaignID: "cmp_2",
				Modules:    []string{"bleeding_budget"},
				Overrides:  domain.ModuleConfig{TargetCPA: nullDec("10")},
			},
			setup: func(source *mocks.MockAdSetSource, store *mocks.MockConfigStore, recorder *mocks.MockRecorder) {
				source.EXPECT().GetAdSetMetrics(gomock.Any(), "cmp_2", gomock.Nil()).Return(campaignAdSets(), nil)
				store.EXPECT().GetByCampaignID(gomock.Any(), "cmp_2").Return(&domain.CampaignConfig{
					CampaignID: "cmp_2",
					TargetCPA:  nullDec("50"),
					TargetROAS: nullDec("2"),
				}, nil)
				recorder.EXPECT().ObserveAnalysis(gomock.Any(), 2, gomock.Any())
			},
			validate: func(t *testing.T, report *domain.OptimizationReport, err error) {
				require.NoError(t, err)
				assertNullDecimal(t, "10", report.Config.TargetCPA)
				assertNullDecimal(t, "2", report.Config.TargetROAS)
				assert.Equal(t, []domain.Module{domain.ModuleBleedingBudget}, report.Summary.ModulesRun)

				// as_2 tem CPA 20 contra meta 10
				require.Len(t, report.Recommendations, 1)
				assert.Equal(t, "as_2", report.Recommendations[0].RelatedEntityID)
				assert.Equal(t, domain.PriorityCritical, report.Recommendations[0].Priority)
				assert.Equal(t, "svc-001", report.Recommendations[0].ID)
			},
		},
		{
			name:    "Módulo inválido - falha antes de buscar dados",
			request: &domain.AnalyzeRequest{CampaignID: "cmp_3", Modules: []string{"not_a_module"}},
			setup: func(source *mocks.MockAdSetSource, store *mocks.MockConfigStore, recorder *mocks.MockRecorder) {
				recorder.EXPECT().ObserveError(apiErrors.ErrInvalidModule)
			},
			validate: func(t *testing.T, report *domain.OptimizationReport, err error) {
				assert.Nil(t, report)
				assert.True(t, errors.Is(err, ErrInvalidModule))
			},
		},
		{
			name: "Override inválido - erro de configuração",
			request: &domain.AnalyzeRequest{
				CampaignID: "cmp_4",
				Overrides:  domain.ModuleConfig{TargetROAS: nullDec("-2")},
			},
			setup: func(source *mocks.MockAdSetSource, store *mocks.MockConfigStore, recorder *mocks.MockRecorder) {
				recorder.EXPECT().ObserveError(apiErrors.ErrInvalidConfiguration)
			},
			validate: func(t *testing.T, report *domain.OptimizationReport, err error) {
				assert.True(t, errors.Is(err, ErrInvalidConfiguration))
			},
		},
		{
			name:    "Campanha sem ad sets - erro de entrada",
			request: &domain.AnalyzeRequest{CampaignID: "cmp_5"},
			setup: func(source *mocks.MockAdSetSource, store *mocks.MockConfigStore, recorder *mocks.MockRecorder) {
				source.EXPECT().GetAdSetMetrics(gomock.Any(), "cmp_5", gomock.Nil()).Return([]domain.RawAdSetMetrics{}, nil)
				recorder.EXPECT().ObserveError(apiErrors.ErrNoAdSets)
			},
			validate: func(t *testing.T, report *domain.OptimizationReport, err error) {
				assert.True(t, errors.Is(err, ErrInvalidInput))
				var optErr *OptimizationError
				require.True(t, errors.As(err, &optErr))
				assert.Equal(t, apiErrors.ErrNoAdSets, optErr.Code)
			},
		},
		{
			name:    "Falha na fonte de dados",
			request: &domain.AnalyzeRequest{CampaignID: "cmp_6"},
			setup: func(source *mocks.MockAdSetSource, store *mocks.MockConfigStore, recorder *mocks.MockRecorder) {
				source.EXPECT().GetAdSetMetrics(gomock.Any(), "cmp_6", gomock.Nil()).Return(nil, errors.New("timeout"))
				recorder.EXPECT().ObserveError(apiErrors.ErrDataSource)
			},
			validate: func(t *testing.T, report *domain.OptimizationReport, err error) {
				assert.True(t, errors.Is(err, ErrDataSource))
				assert.Contains(t, err.Error(), "timeout")
			},
		},
		{
			name:    "Falha ao ler configuração salva",
			request: &domain.AnalyzeRequest{CampaignID: "cmp_7"},
			setup: func(source *mocks.MockAdSetSource, store *mocks.MockConfigStore, recorder *mocks.MockRecorder) {
				source.EXPECT().GetAdSetMetrics(gomock.Any(), "cmp_7", gomock.Nil()).Return(campaignAdSets(), nil)
				store.EXPECT().GetByCampaignID(gomock.Any(), "cmp_7").Return(nil, errors.New("connection refused"))
				recorder.EXPECT().ObserveError(apiErrors.ErrDatabaseOperation)
			},
			validate: func(t *testing.T, report *domain.OptimizationReport, err error) {
				assert.True(t, errors.Is(err, ErrConfigStore))
			},
		},
		{
			name:    "Sem campaign_id",
			request: &domain.AnalyzeRequest{},
			setup: func(source *mocks.MockAdSetSource, store *mocks.MockConfigStore, recorder *mocks.MockRecorder) {
				recorder.EXPECT().ObserveError(apiErrors.ErrMissingRequiredData)
			},
			validate: func(t *testing.T, report *domain.OptimizationReport, err error) {
				assert.True(t, errors.Is(err, ErrInvalidInput))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := mocks.NewMockAdSetSource(ctrl)
			store := mocks.NewMockConfigStore(ctrl)
			recorder := mocks.NewMockRecorder(ctrl)
			tt.setup(source, store, recorder)

			orchestrator := NewOrchestrator(DefaultThresholds(), WithRunIDGenerator(fixedRunID("svc")))
			service := NewService(source, store, orchestrator, DefaultThresholds(), recorder)

			report, err := service.Analyze(ctx, tt.request)
			tt.validate(t, report, err)
		})
	}
}

func TestService_RunModule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockAdSetSource(ctrl)
	store := mocks.NewMockConfigStore(ctrl)

	service := NewService(source, store, NewOrchestrator(DefaultThresholds()), DefaultThresholds(), nil)

	_, err := service.RunModule(context.Background(), "cmp_1", "sentiment", nil)
	assert.True(t, errors.Is(err, ErrInvalidModule))

	source.EXPECT().GetAdSetMetrics(gomock.Any(), "cmp_1", gomock.Nil()).Return(campaignAdSets(), nil)
	store.EXPECT().GetByCampaignID(gomock.Any(), "cmp_1").Return(nil, nil)

	report, err := service.RunModule(context.Background(), "cmp_1", "creative_fatigue", nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.Module{domain.ModuleCreativeFatigue}, report.Summary.ModulesRun)
}

func TestService_CampaignConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("Salva configuração válida", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mocks.NewMockConfigStore(ctrl)
		service := NewService(nil, store, NewOrchestrator(DefaultThresholds()), DefaultThresholds(), nil)

		now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		store.EXPECT().
			SaveOrUpdate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cfg *domain.CampaignConfig) (*domain.CampaignConfig, error) {
				assert.Equal(t, "cmp_1", cfg.CampaignID)
				cfg.ID = 1
				cfg.CreatedAt = now
				cfg.UpdatedAt = now
				return cfg, nil
			})

		saved, err := service.SaveCampaignConfig(ctx, "cmp_1", domain.ModuleConfig{TargetCPA: nullDec("25"), AccountAvgCPA: nullDec("9")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), saved.ID)
		assertNullDecimal(t, "25", saved.TargetCPA)
		assert.False(t, saved.TargetROAS.Valid)
	})

	t.Run("Rejeita meta não positiva sem gravar", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mocks.NewMockConfigStore(ctrl)
		service := NewService(nil, store, NewOrchestrator(DefaultThresholds()), DefaultThresholds(), nil)

		_, err := service.SaveCampaignConfig(ctx, "cmp_1", domain.ModuleConfig{TargetCPA: nullDec("0")})

		var optErr *OptimizationError
		require.True(t, errors.As(err, &optErr))
		assert.Equal(t, "target_cpa", optErr.Field)
	})

	t.Run("Campanha sem configuração retorna configuração vazia", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mocks.NewMockConfigStore(ctrl)
		store.EXPECT().GetByCampaignID(gomock.Any(), "cmp_9").Return(nil, nil)
		service := NewService(nil, store, NewOrchestrator(DefaultThresholds()), DefaultThresholds(), nil)

		cfg, err := service.GetCampaignConfig(ctx, "cmp_9")
		require.NoError(t, err)
		assert.Equal(t, "cmp_9", cfg.CampaignID)
		assert.False(t, cfg.TargetCPA.Valid)
	})
}
