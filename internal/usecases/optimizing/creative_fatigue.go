package optimizing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
)

const fatigueFrequencyBonus = 5

// CreativeFatigueDetector procura ad sets cujo CTR caiu em relação ao período anterior.
// Sem período anterior usa uma heurística de CTR baixo com exposição alta.
type CreativeFatigueDetector struct {
	thresholds Thresholds
}

func NewCreativeFatigueDetector(thresholds Thresholds) *CreativeFatigueDetector {
	return &CreativeFatigueDetector{thresholds: thresholds.Normalize()}
}

func (d *CreativeFatigueDetector) Detect(records []domain.EnrichedAdSetMetrics, cfg domain.ModuleConfig) ([]domain.Recommendation, error) {
	median := medianSpend(records)

	recommendations := make([]domain.Recommendation, 0)
	for _, record := range records {
		if record.Impressions == 0 {
			continue
		}

		if record.BaselineCTR.Valid && record.BaselineCTR.Decimal.IsPositive() {
			if recommendation, ok := d.baselineDecline(record); ok {
				recommendations = append(recommendations, recommendation)
			}
			continue
		}

		if recommendation, ok := d.lowCTRHeuristic(record, median); ok {
			recommendations = append(recommendations, recommendation)
		}
	}

	return recommendations, nil
}

func (d *CreativeFatigueDetector) baselineDecline(record domain.EnrichedAdSetMetrics) (domain.Recommendation, bool) {
	baseline := record.BaselineCTR.Decimal
	decline := baseline.Sub(record.CTR).Div(baseline)
	if decline.LessThan(decimal.NewFromFloat(d.thresholds.FatigueCTRDecline)) {
		return domain.Recommendation{}, false
	}

	declinePct := decline.Mul(decimal.NewFromInt(100))
	confidence := clampConfidence(50+int(declinePct.Round(0).IntPart()), d.thresholds.MaxConfidence)

	recommendation := domain.Recommendation{
		Type:              domain.RecommendationCreativeAlert,
		Priority:          domain.PriorityHigh,
		RelatedEntityID:   record.AdSetID,
		RelatedEntityName: record.AdSetName,
		DetectedValue:     defined(record.CTR.Round(4)),
		BenchmarkValue:    defined(baseline.Round(4)),
		MetricLabel:       "CTR",
		Message: fmt.Sprintf(
			"CTR of ad set %q dropped %s%% against the previous period (%s%% to %s%%). Rotate in fresh creatives.",
			record.AdSetName,
			declinePct.StringFixed(0),
			baseline.Mul(decimal.NewFromInt(100)).StringFixed(2),
			record.CTR.Mul(decimal.NewFromInt(100)).StringFixed(2),
		),
		Confidence: confidence,
	}

	if record.WindowDays > 0 {
		dailySpend := record.Spend.Div(decimal.NewFromInt(int64(record.WindowDays)))
		atRisk := dailySpend.Mul(decimal.NewFromInt(int64(d.thresholds.FatigueForwardWindowDays)))
		recommendation.EstimatedSavings = defined(money(atRisk))
	}

	return recommendation, true
}

func (d *CreativeFatigueDetector) lowCTRHeuristic(record domain.EnrichedAdSetMetrics, median decimal.Decimal) (domain.Recommendation, bool) {
	floor := decimal.NewFromFloat(d.thresholds.FatigueCTRFloor)
	if !record.CTR.LessThan(floor) {
		return domain.Recommendation{}, false
	}

	if !record.Spend.GreaterThan(median) {
		return domain.Recommendation{}, false
	}

	gap, _ := floor.Sub(record.CTR).Div(floor).Float64()
	confidence := 40 + int(math.Round(20*gap))

	reason := "above-median spend"
	// frequência alta só reforça o sinal
	if record.EffectiveFrequency.Valid &&
		record.EffectiveFrequency.Decimal.GreaterThanOrEqual(decimal.NewFromFloat(d.thresholds.FatigueFrequencyCeiling)) {
		confidence += fatigueFrequencyBonus
		reason = fmt.Sprintf("above-median spend and a frequency of %s", record.EffectiveFrequency.Decimal.StringFixed(1))
	}
	confidence = clampConfidence(confidence, d.thresholds.FatigueHeuristicMaxConfidence)

	return domain.Recommendation{
		Type:              domain.RecommendationCreativeAlert,
		Priority:          domain.PriorityMedium,
		RelatedEntityID:   record.AdSetID,
		RelatedEntityName: record.AdSetName,
		DetectedValue:     defined(record.CTR.Round(4)),
		BenchmarkValue:    defined(floor),
		MetricLabel:       "CTR",
		Message: fmt.Sprintf(
			"Ad set %q has a CTR of %s%% with %s. The creative may be fatigued; no previous period was available to confirm.",
			record.AdSetName,
			record.CTR.Mul(decimal.NewFromInt(100)).StringFixed(2),
			reason,
		),
		Confidence: confidence,
	}, true
}
