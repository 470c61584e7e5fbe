package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/traffic-optimizer-api/infrastructure/repository/mocks"
	"github.com/vfg2006/traffic-optimizer-api/internal/config"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
	"github.com/vfg2006/traffic-optimizer-api/internal/usecases/optimizing/mocks"
	"go.uber.org/mock/gomock"
)

type recordingInvalidator struct {
	mu        sync.Mutex
	campaigns []string
	err       error
}

func (r *recordingInvalidator) Invalidate(_ context.Context, campaignID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.campaigns = append(r.campaigns, campaignID)
	return r.err
}

func digestConfig(enabled bool) *config.Config {
	return &config.Config{
		OptimizationDigest: config.OptimizationDigest{
			CronSchedule:      "0 7 * * *",
			MaxConcurrentJobs: 2,
			Enabled:           enabled,
		},
	}
}

func reportFor(campaignID string, critical int) *domain.OptimizationReport {
	return &domain.OptimizationReport{
		CampaignID:     campaignID,
		RunID:          "run-" + campaignID,
		AdSetsAnalyzed: 3,
		AnalyzedAt:     time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC),
		Summary: domain.Summary{
			TotalRecommendations:  critical,
			CriticalIssues:        critical,
			TotalEstimatedSavings: decimal.NewFromInt(int64(critical) * 100),
			ModulesRun:            domain.AllModules(),
		},
	}
}

func TestOptimizationDigestService_runDigest(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		setup    func(repo *repomocks.MockCampaignConfigRepository, optimizer *mocks.MockOptimizer)
		validate func(t *testing.T, service *OptimizationDigestService, invalidator *recordingInvalidator)
	}{
		{
			name: "Analisa todas as campanhas configuradas",
			setup: func(repo *repomocks.MockCampaignConfigRepository, optimizer *mocks.MockOptimizer) {
				repo.EXPECT().ListCampaignIDs(gomock.Any()).Return([]string{"cmp_b", "cmp_a"}, nil)

				optimizer.EXPECT().
					Analyze(gomock.Any(), &domain.AnalyzeRequest{CampaignID: "cmp_a"}).
					Return(reportFor("cmp_a", 2), nil)
				optimizer.EXPECT().
					Analyze(gomock.Any(), &domain.AnalyzeRequest{CampaignID: "cmp_b"}).
					Return(reportFor("cmp_b", 0), nil)
			},
			validate: func(t *testing.T, service *OptimizationDigestService, invalidator *recordingInvalidator) {
				entries := service.Entries()
				require.Len(t, entries, 2)
				assert.Equal(t, "cmp_a", entries[0].CampaignID)
				assert.Equal(t, "run-cmp_a", entries[0].RunID)
				assert.Equal(t, 2, entries[0].Summary.CriticalIssues)
				assert.Equal(t, 3, entries[0].AdSetsAnalyzed)
				assert.Empty(t, entries[0].Error)
				assert.Equal(t, "cmp_b", entries[1].CampaignID)

				assert.ElementsMatch(t, []string{"cmp_a", "cmp_b"}, invalidator.campaigns)
			},
		},
		{
			name: "Falha de uma campanha não interrompe as demais",
			setup: func(repo *repomocks.MockCampaignConfigRepository, optimizer *mocks.MockOptimizer) {
				repo.EXPECT().ListCampaignIDs(gomock.Any()).Return([]string{"cmp_a", "cmp_b"}, nil)

				optimizer.EXPECT().
					Analyze(gomock.Any(), &domain.AnalyzeRequest{CampaignID: "cmp_a"}).
					Return(nil, errors.New("meta unavailable"))
				optimizer.EXPECT().
					Analyze(gomock.Any(), &domain.AnalyzeRequest{CampaignID: "cmp_b"}).
					Return(reportFor("cmp_b", 1), nil)
			},
			validate: func(t *testing.T, service *OptimizationDigestService, _ *recordingInvalidator) {
				entries := service.Entries()
				require.Len(t, entries, 2)
				assert.Equal(t, "meta unavailable", entries[0].Error)
				assert.Empty(t, entries[0].RunID)
				assert.Equal(t, 1, entries[1].Summary.CriticalIssues)
			},
		},
		{
			name: "Erro ao listar campanhas não executa análises",
			setup: func(repo *repomocks.MockCampaignConfigRepository, optimizer *mocks.MockOptimizer) {
				repo.EXPECT().ListCampaignIDs(gomock.Any()).Return(nil, errors.New("db down"))
			},
			validate: func(t *testing.T, service *OptimizationDigestService, invalidator *recordingInvalidator) {
				assert.Empty(t, service.Entries())
				assert.Empty(t, invalidator.campaigns)
			},
		},
		{
			name: "Sem campanhas configuradas",
			setup: func(repo *repomocks.MockCampaignConfigRepository, optimizer *mocks.MockOptimizer) {
				repo.EXPECT().ListCampaignIDs(gomock.Any()).Return([]string{}, nil)
			},
			validate: func(t *testing.T, service *OptimizationDigestService, _ *recordingInvalidator) {
				assert.Empty(t, service.Entries())
				assert.False(t, service.GetStatus()["digest_running"].(bool))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := repomocks.NewMockCampaignConfigRepository(ctrl)
			optimizer := mocks.NewMockOptimizer(ctrl)
			invalidator := &recordingInvalidator{}

			tt.setup(repo, optimizer)

			service := NewOptimizationDigestService(repo, optimizer, invalidator, digestConfig(true))
			service.runDigest(ctx)

			tt.validate(t, service, invalidator)
		})
	}
}

func TestOptimizationDigestService_InvalidatorFailureIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockCampaignConfigRepository(ctrl)
	optimizer := mocks.NewMockOptimizer(ctrl)
	invalidator := &recordingInvalidator{err: errors.New("redis down")}

	repo.EXPECT().ListCampaignIDs(gomock.Any()).Return([]string{"cmp_a"}, nil)
	optimizer.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(reportFor("cmp_a", 1), nil)

	service := NewOptimizationDigestService(repo, optimizer, invalidator, digestConfig(true))
	service.runDigest(context.Background())

	entries := service.Entries()
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Error)
}

func TestOptimizationDigestService_Start(t *testing.T) {
	t.Run("Desabilitado não agenda nada", func(t *testing.T) {
		service := NewOptimizationDigestService(nil, nil, nil, digestConfig(false))

		require.NoError(t, service.Start(context.Background()))
		assert.Empty(t, service.scheduler.Jobs())
	})

	t.Run("Cron inválido retorna erro", func(t *testing.T) {
		cfg := digestConfig(true)
		cfg.OptimizationDigest.CronSchedule = "not a cron"

		service := NewOptimizationDigestService(nil, nil, nil, cfg)

		assert.Error(t, service.Start(context.Background()))
	})

	t.Run("Agenda o job e para com o contexto", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		service := NewOptimizationDigestService(nil, nil, nil, digestConfig(true))

		require.NoError(t, service.Start(ctx))
		assert.Len(t, service.scheduler.Jobs(), 1)
		assert.True(t, service.scheduler.IsRunning())

		cancel()
		assert.Eventually(t, func() bool { return !service.scheduler.IsRunning() }, time.Second, 10*time.Millisecond)
	})
}

func TestOptimizationDigestService_GetStatus(t *testing.T) {
	service := NewOptimizationDigestService(nil, nil, nil, digestConfig(true))

	status := service.GetStatus()
	assert.Equal(t, true, status["digest_enabled"])
	assert.Equal(t, "0 7 * * *", status["digest_cron"])
	assert.Equal(t, 2, status["digest_max_concurrent"])
	assert.Equal(t, false, status["digest_running"])
}
