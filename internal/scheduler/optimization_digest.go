package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-optimizer-api/internal/config"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
	"github.com/vfg2006/traffic-optimizer-api/internal/usecases/optimizing"
)

// CampaignLister lista as campanhas com metas salvas
type CampaignLister interface {
	ListCampaignIDs(ctx context.Context) ([]string, error)
}

// SnapshotInvalidator descarta snapshots em cache antes da reanálise
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, campaignID string) error
}

// OptimizationDigestConfig representa a configuração do agendador do resumo de otimização
type OptimizationDigestConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	Enabled             bool
}

// DigestEntry é o último resultado da análise agendada de uma campanha
type DigestEntry struct {
	CampaignID     string         `json:"campaign_id"`
	RunID          string         `json:"run_id,omitempty"`
	Summary        domain.Summary `json:"summary"`
	AdSetsAnalyzed int            `json:"adsets_analyzed"`
	AnalyzedAt     time.Time      `json:"analyzed_at"`
	Error          string         `json:"error,omitempty"`
}

// OptimizationDigestService reanalisa periodicamente as campanhas configuradas
type OptimizationDigestService struct {
	scheduler         *gocron.Scheduler
	config            OptimizationDigestConfig
	campaigns         CampaignLister
	optimizer         optimizing.Optimizer
	invalidator       SnapshotInvalidator
	digestRunning     bool
	digestMutex       sync.Mutex
	entriesMutex      sync.RWMutex
	entries           map[string]DigestEntry
	lastRunStartedAt  time.Time
	lastRunFinishedAt time.Time
}

// NewOptimizationDigestService cria o serviço. invalidator pode ser nil quando o cache está desligado.
func NewOptimizationDigestService(
	campaigns CampaignLister,
	optimizer optimizing.Optimizer,
	invalidator SnapshotInvalidator,
	appConfig *config.Config,
) *OptimizationDigestService {
	digestConfig := OptimizationDigestConfig{
		CronSchedule:        appConfig.OptimizationDigest.CronSchedule,
		RequestDelaySeconds: appConfig.OptimizationDigest.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.OptimizationDigest.MaxConcurrentJobs,
		Enabled:             appConfig.OptimizationDigest.Enabled,
	}

	if digestConfig.MaxConcurrentJobs <= 0 {
		digestConfig.MaxConcurrentJobs = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         digestConfig.CronSchedule,
		"request_delay_seconds": digestConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   digestConfig.MaxConcurrentJobs,
		"enabled":               digestConfig.Enabled,
	}).Info("digest: scheduler configuration loaded")

	return &OptimizationDigestService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      digestConfig,
		campaigns:   campaigns,
		optimizer:   optimizer,
		invalidator: invalidator,
		entries:     make(map[string]DigestEntry),
	}
}

// Start inicia o agendador
func (s *OptimizationDigestService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("digest: disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("digest: starting scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runDigest(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar resumo de otimização: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("digest: stopping scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *OptimizationDigestService) runDigest(ctx context.Context) {
	s.digestMutex.Lock()
	if s.digestRunning {
		s.digestMutex.Unlock()
		logrus.Info("digest: already running, skipping")
		return
	}
	s.digestRunning = true
	s.lastRunStartedAt = time.Now()
	s.digestMutex.Unlock()

	defer func() {
		s.digestMutex.Lock()
		s.digestRunning = false
		s.lastRunFinishedAt = time.Now()
		s.digestMutex.Unlock()
	}()

	startTime := time.Now()

	campaignIDs, err := s.campaigns.ListCampaignIDs(ctx)
	if err != nil {
		logrus.WithError(err).Error("digest: error listing configured campaigns")
		return
	}

	if len(campaignIDs) == 0 {
		logrus.Info("digest: no configured campaigns")
		return
	}

	s.processCampaigns(ctx, campaignIDs)

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"campaigns": len(campaignIDs),
	}).Info("digest: run completed")
}

func (s *OptimizationDigestService) processCampaigns(ctx context.Context, campaignIDs []string) {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, campaignID := range campaignIDs {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(id string) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			s.store(s.analyzeCampaign(ctx, id))

			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}(campaignID)
	}

	wg.Wait()
}

func (s *OptimizationDigestService) analyzeCampaign(ctx context.Context, campaignID string) DigestEntry {
	entry := DigestEntry{CampaignID: campaignID, AnalyzedAt: time.Now()}

	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, campaignID); err != nil {
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaignID,
				"error":       err.Error(),
			}).Warn("digest: could not invalidate cached snapshot")
		}
	}

	report, err := s.optimizer.Analyze(ctx, &domain.AnalyzeRequest{CampaignID: campaignID})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaignID,
			"error":       err.Error(),
		}).Error("digest: analysis failed")
		entry.Error = err.Error()
		return entry
	}

	entry.RunID = report.RunID
	entry.Summary = report.Summary
	entry.AdSetsAnalyzed = report.AdSetsAnalyzed
	entry.AnalyzedAt = report.AnalyzedAt

	logrus.WithFields(logrus.Fields{
		"campaign_id":     campaignID,
		"run_id":          report.RunID,
		"recommendations": report.Summary.TotalRecommendations,
		"critical":        report.Summary.CriticalIssues,
	}).Info("digest: campaign analyzed")

	return entry
}

func (s *OptimizationDigestService) store(entry DigestEntry) {
	s.entriesMutex.Lock()
	defer s.entriesMutex.Unlock()
	s.entries[entry.CampaignID] = entry
}

// Entries retorna o último resultado de cada campanha, ordenado por campaign_id
func (s *OptimizationDigestService) Entries() []DigestEntry {
	s.entriesMutex.RLock()
	defer s.entriesMutex.RUnlock()

	entries := make([]DigestEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CampaignID < entries[j].CampaignID
	})

	return entries
}

// TriggerManualRun inicia manualmente o resumo de otimização
func (s *OptimizationDigestService) TriggerManualRun() {
	s.digestMutex.Lock()
	if s.digestRunning {
		s.digestMutex.Unlock()
		logrus.Info("digest: already running, ignoring manual request")
		return
	}
	s.digestMutex.Unlock()

	logrus.Info("digest: manual run requested")
	go s.runDigest(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *OptimizationDigestService) GetStatus() map[string]any {
	s.digestMutex.Lock()
	defer s.digestMutex.Unlock()

	return map[string]any{
		"digest_enabled":         s.config.Enabled,
		"digest_cron":            s.config.CronSchedule,
		"digest_max_concurrent":  s.config.MaxConcurrentJobs,
		"digest_request_delay_s": s.config.RequestDelaySeconds,
		"digest_running":         s.digestRunning,
		"last_run_started_at":    s.lastRunStartedAt,
		"last_run_finished_at":   s.lastRunFinishedAt,
	}
}
