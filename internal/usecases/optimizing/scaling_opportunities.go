package optimizing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
)

// scalingMaxConfidence limita a confiança de oportunidades, que dependem de projeção
const scalingMaxConfidence = 90

// ScalingOpportunitiesDetector encontra ad sets com eficiência bem acima dos benchmarks
type ScalingOpportunitiesDetector struct {
	thresholds Thresholds
}

func NewScalingOpportunitiesDetector(thresholds Thresholds) *ScalingOpportunitiesDetector {
	return &ScalingOpportunitiesDetector{thresholds: thresholds.Normalize()}
}

func (d *ScalingOpportunitiesDetector) Detect(records []domain.EnrichedAdSetMetrics, cfg domain.ModuleConfig) ([]domain.Recommendation, error) {
	cpaBenchmark, hasCPA := cfg.CPABenchmark()
	targetROAS, hasROAS := cfg.ROASBenchmark()

	recommendations := make([]domain.Recommendation, 0)
	if !hasCPA && !hasROAS {
		return recommendations, nil
	}

	cpaLimit := cpaBenchmark.Mul(decimal.NewFromFloat(d.thresholds.ScalingCPAMultiplier))
	roasLimit := targetROAS.Mul(decimal.NewFromFloat(d.thresholds.ScalingROASMultiplier))

	for _, record := range records {
		cpaHit := hasCPA && record.CPA.Valid && record.CPA.Decimal.LessThan(cpaLimit)
		roasHit := hasROAS && record.ROAS.Valid && record.ROAS.Decimal.GreaterThan(roasLimit)

		if cpaHit || roasHit {
			recommendations = append(recommendations, d.scale(record, cfg, cpaHit))
			continue
		}

		if hasCPA {
			recommendations = append(recommendations, d.platformArbitrage(record, cpaBenchmark, cpaLimit)...)
		}
	}

	return recommendations, nil
}

func (d *ScalingOpportunitiesDetector) scale(record domain.EnrichedAdSetMetrics, cfg domain.ModuleConfig, cpaHit bool) domain.Recommendation {
	cpaBenchmark, _ := cfg.CPABenchmark()
	targetROAS, _ := cfg.ROASBenchmark()

	recommendation := domain.Recommendation{
		Type:              domain.RecommendationScalingOpportunity,
		Priority:          domain.PriorityOpportunity,
		RelatedEntityID:   record.AdSetID,
		RelatedEntityName: record.AdSetName,
		Confidence:        sampleConfidence(record.Impressions, record.Conversions, min(d.thresholds.MaxConfidence, scalingMaxConfidence)),
	}

	if cpaHit {
		recommendation.DetectedValue = defined(money(record.CPA.Decimal))
		recommendation.BenchmarkValue = defined(money(cpaBenchmark))
		recommendation.MetricLabel = "CPA"
		recommendation.Message = fmt.Sprintf(
			"Ad set %q converts at a CPA of %s against a benchmark of %s. Consider raising its budget by %s%%.",
			record.AdSetName,
			record.CPA.Decimal.StringFixed(2),
			cpaBenchmark.StringFixed(2),
			decimal.NewFromFloat(d.thresholds.ScalingBudgetIncrease*100).StringFixed(0),
		)
	} else {
		recommendation.DetectedValue = defined(record.ROAS.Decimal.Round(2))
		recommendation.BenchmarkValue = defined(targetROAS.Round(2))
		recommendation.MetricLabel = "ROAS"
		recommendation.Message = fmt.Sprintf(
			"Ad set %q returns a ROAS of %s against a target of %s. Consider raising its budget by %s%%.",
			record.AdSetName,
			record.ROAS.Decimal.StringFixed(2),
			targetROAS.StringFixed(2),
			decimal.NewFromFloat(d.thresholds.ScalingBudgetIncrease*100).StringFixed(0),
		)
	}

	if increase, ok := d.revenueIncrease(record, cfg); ok {
		recommendation.EstimatedRevenueIncrease = defined(money(increase))
	}

	return recommendation
}

// revenueIncrease projeta as conversões extras do aumento de orçamento pelo valor de referência
// por conversão (target_roas * benchmark de CPA). Sem benchmark de CPA usa o ROAS medido.
func (d *ScalingOpportunitiesDetector) revenueIncrease(record domain.EnrichedAdSetMetrics, cfg domain.ModuleConfig) (decimal.Decimal, bool) {
	budgetIncrease := record.Spend.Mul(decimal.NewFromFloat(d.thresholds.ScalingBudgetIncrease))
	diminishing := decimal.NewFromFloat(d.thresholds.ScalingDiminishingReturns)

	cpaBenchmark, hasCPA := cfg.CPABenchmark()
	targetROAS, hasROAS := cfg.ROASBenchmark()
	if hasCPA && hasROAS && record.CPA.Valid && record.CPA.Decimal.IsPositive() {
		extraConversions := budgetIncrease.Div(record.CPA.Decimal)
		valuePerConversion := targetROAS.Mul(cpaBenchmark)
		return extraConversions.Mul(valuePerConversion).Mul(diminishing), true
	}

	if record.ROAS.Valid {
		return budgetIncrease.Mul(record.ROAS.Decimal).Mul(diminishing), true
	}

	return decimal.Zero, false
}

func (d *ScalingOpportunitiesDetector) platformArbitrage(record domain.EnrichedAdSetMetrics, cpaBenchmark, cpaLimit decimal.Decimal) []domain.Recommendation {
	recommendations := make([]domain.Recommendation, 0)
	for _, platform := range record.PlatformBreakdown {
		conversions := domain.CountConversions(platform.Actions)
		if conversions == 0 {
			continue
		}

		platformCPA := platform.Spend.Div(decimal.NewFromInt(conversions))
		if !platformCPA.LessThan(cpaLimit) {
			continue
		}

		recommendations = append(recommendations, domain.Recommendation{
			Type:              domain.RecommendationPlatformArbitrage,
			Priority:          domain.PriorityOpportunity,
			RelatedEntityID:   record.AdSetID,
			RelatedEntityName: record.AdSetName,
			DetectedValue:     defined(money(platformCPA)),
			BenchmarkValue:    defined(money(cpaBenchmark)),
			MetricLabel:       fmt.Sprintf("CPA (%s)", platform.Platform),
			Message: fmt.Sprintf(
				"On %s, ad set %q converts at a CPA of %s against a benchmark of %s. Shift budget toward this placement.",
				platform.Platform,
				record.AdSetName,
				platformCPA.StringFixed(2),
				cpaBenchmark.StringFixed(2),
			),
			Confidence: sampleConfidence(platform.Impressions, conversions, min(d.thresholds.MaxConfidence, scalingMaxConfidence)),
		})
	}
	return recommendations
}
