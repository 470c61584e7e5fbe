package meta

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/traffic-optimizer-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-optimizer-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-optimizer-api/internal/config"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
	"github.com/vfg2006/traffic-optimizer-api/pkg/log"
)

const platformBreakdown = "publisher_platform"

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
	now    func() time.Time
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
		now:    time.Now,
	}
}

// GetAdSetMetrics busca os ad sets da campanha na janela pedida, com o período anterior
// como linha de base e a quebra por plataforma. As duas consultas extras são opcionais:
// se falharem o resultado segue sem elas.
func (s *MetaIntegrator) GetAdSetMetrics(ctx context.Context, campaignID string, filters *domain.InsigthFilters) ([]domain.RawAdSetMetrics, error) {
	logger := log.ForContext(ctx)
	window := s.window(filters)

	current, err := s.Client.GetAdSetInsightsByCampaignID(ctx, campaignID, window)
	if err != nil {
		return nil, errors.Wrapf(err, "meta: fetching ad set insights for campaign %s", campaignID)
	}

	records := make([]domain.RawAdSetMetrics, 0, len(current))
	index := make(map[string]int, len(current))
	for _, insight := range current {
		raw := FactoryRawAdSetMetrics(insight)
		if raw.DateStart == "" {
			raw.DateStart = window.Since.Format(time.DateOnly)
			raw.DateStop = window.Until.Format(time.DateOnly)
		}
		index[raw.AdSetID] = len(records)
		records = append(records, raw)
	}

	if len(records) == 0 {
		return records, nil
	}

	previous, err := s.Client.GetAdSetInsightsByCampaignID(ctx, campaignID, window.Previous())
	if err != nil {
		logger.WithFields(log.Fields{
			"campaign_id": campaignID,
			"error":       err.Error(),
		}).Warn("meta: previous period unavailable, analysis continues without baseline")
	} else {
		for _, insight := range previous {
			if i, ok := index[insight.AdSetID]; ok {
				records[i].PreviousPeriod = FactoryPeriodMetrics(insight)
			}
		}
	}

	platforms, err := s.Client.GetAdSetInsightsByCampaignID(ctx, campaignID, window, platformBreakdown)
	if err != nil {
		logger.WithFields(log.Fields{
			"campaign_id": campaignID,
			"error":       err.Error(),
		}).Warn("meta: platform breakdown unavailable")
	} else {
		for _, insight := range platforms {
			if i, ok := index[insight.AdSetID]; ok && insight.PublisherPlatform != "" {
				records[i].PlatformBreakdown = append(records[i].PlatformBreakdown, FactoryPlatformMetrics(insight))
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"adsets":      len(records),
		"since":       window.Since.Format(time.DateOnly),
		"until":       window.Until.Format(time.DateOnly),
	}).Debug("meta: ad set metrics assembled")

	return records, nil
}

// window usa as datas dos filtros ou, sem elas, os últimos LookbackDays terminando ontem
func (s *MetaIntegrator) window(filters *domain.InsigthFilters) metaclient.TimeRange {
	if filters.HasPeriod() {
		return metaclient.TimeRange{Since: *filters.StartDate, Until: *filters.EndDate}
	}

	days := s.cfg.Meta.LookbackDays
	if days <= 0 {
		days = 14
	}

	now := s.now()
	until := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	return metaclient.TimeRange{
		Since: until.AddDate(0, 0, -(days - 1)),
		Until: until,
	}
}

func FactoryRawAdSetMetrics(insight metadomain.AdSetInsight) domain.RawAdSetMetrics {
	fields := logrus.Fields{"adset_id": insight.AdSetID}

	return domain.RawAdSetMetrics{
		AdSetID:      insight.AdSetID,
		AdSetName:    insight.AdSetName,
		CampaignID:   insight.CampaignID,
		DateStart:    insight.DateStart,
		DateStop:     insight.DateStop,
		Spend:        parseDecimal(fields, "spend", insight.Spend),
		Impressions:  parseInt(fields, "impressions", insight.Impressions),
		Clicks:       parseInt(fields, "clicks", insight.Clicks),
		Reach:        parseInt(fields, "reach", insight.Reach),
		Frequency:    parseDecimal(fields, "frequency", insight.Frequency),
		Actions:      factoryActions(fields, insight.Actions),
		ActionValues: factoryActionValues(fields, insight.ActionValues),
	}
}

func FactoryPeriodMetrics(insight metadomain.AdSetInsight) *domain.PeriodMetrics {
	fields := logrus.Fields{"adset_id": insight.AdSetID, "period": "previous"}

	return &domain.PeriodMetrics{
		DateStart:   insight.DateStart,
		DateStop:    insight.DateStop,
		Spend:       parseDecimal(fields, "spend", insight.Spend),
		Impressions: parseInt(fields, "impressions", insight.Impressions),
		Clicks:      parseInt(fields, "clicks", insight.Clicks),
	}
}

func FactoryPlatformMetrics(insight metadomain.AdSetInsight) domain.PlatformMetrics {
	fields := logrus.Fields{"adset_id": insight.AdSetID, "platform": insight.PublisherPlatform}

	return domain.PlatformMetrics{
		Platform:    insight.PublisherPlatform,
		Spend:       parseDecimal(fields, "spend", insight.Spend),
		Impressions: parseInt(fields, "impressions", insight.Impressions),
		Clicks:      parseInt(fields, "clicks", insight.Clicks),
		Actions:     factoryActions(fields, insight.Actions),
	}
}

func factoryActions(fields logrus.Fields, actions []metadomain.Action) []domain.Action {
	result := make([]domain.Action, 0, len(actions))
	for _, action := range actions {
		result = append(result, domain.Action{
			ActionType: action.ActionType,
			Value:      parseInt(fields, "action:"+action.ActionType, action.Value),
		})
	}
	return result
}

func factoryActionValues(fields logrus.Fields, values []metadomain.Action) []domain.ActionValue {
	result := make([]domain.ActionValue, 0, len(values))
	for _, value := range values {
		result = append(result, domain.ActionValue{
			ActionType: value.ActionType,
			Value:      parseDecimal(fields, "action_value:"+value.ActionType, value.Value),
		})
	}
	return result
}

// parseInt converte campos numéricos da Graph API; vazio ou inválido vira zero
func parseInt(fields logrus.Fields, name, value string) int64 {
	if value == "" {
		return 0
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		// action values de contagem às vezes vêm como "12.0"
		if d, decErr := decimal.NewFromString(value); decErr == nil {
			return d.IntPart()
		}

		logrus.WithFields(fields).WithFields(logrus.Fields{
			"field": name,
			"value": value,
			"error": err.Error(),
		}).Warn("meta: error converting value to integer")
		return 0
	}

	return parsed
}

func parseDecimal(fields logrus.Fields, name, value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}

	parsed, err := decimal.NewFromString(value)
	if err != nil {
		logrus.WithFields(fields).WithFields(logrus.Fields{
			"field": name,
			"value": value,
			"error": err.Error(),
		}).Warn("meta: error converting value to decimal")
		return decimal.Zero
	}

	return parsed
}
