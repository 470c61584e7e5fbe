package optimizing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
)

// BleedingBudgetDetector aponta ad sets que gastam sem converter ou com CPA muito acima do benchmark
type BleedingBudgetDetector struct {
	thresholds Thresholds
}

func NewBleedingBudgetDetector(thresholds Thresholds) *BleedingBudgetDetector {
	return &BleedingBudgetDetector{thresholds: thresholds.Normalize()}
}

func (d *BleedingBudgetDetector) Detect(records []domain.EnrichedAdSetMetrics, cfg domain.ModuleConfig) ([]domain.Recommendation, error) {
	benchmark, hasBenchmark := cfg.CPABenchmark()
	criticalCPA := benchmark.Mul(decimal.NewFromFloat(d.thresholds.BleedingCriticalMultiplier))
	highCPA := benchmark.Mul(decimal.NewFromFloat(d.thresholds.BleedingHighMultiplier))
	spendFloor := decimal.NewFromFloat(d.thresholds.MinSpendFloor)

	recommendations := make([]domain.Recommendation, 0)
	for _, record := range records {
		if record.Conversions == 0 {
			if !record.Spend.GreaterThan(spendFloor) {
				continue
			}
			recommendations = append(recommendations, d.zeroConversion(record, benchmark, hasBenchmark))
			continue
		}

		if !hasBenchmark || !record.CPA.Valid {
			continue
		}

		var priority domain.Priority
		switch cpa := record.CPA.Decimal; {
		case cpa.GreaterThan(criticalCPA):
			priority = domain.PriorityCritical
		case cpa.GreaterThan(highCPA):
			priority = domain.PriorityHigh
		default:
			continue
		}

		savings := record.Spend.Sub(decimal.NewFromInt(record.Conversions).Mul(benchmark))
		if savings.IsNegative() {
			savings = decimal.Zero
		}

		recommendations = append(recommendations, domain.Recommendation{
			Type:              domain.RecommendationBudgetWaste,
			Priority:          priority,
			RelatedEntityID:   record.AdSetID,
			RelatedEntityName: record.AdSetName,
			DetectedValue:     defined(money(record.CPA.Decimal)),
			BenchmarkValue:    defined(money(benchmark)),
			MetricLabel:       "CPA",
			Message: fmt.Sprintf(
				"Ad set %q has a CPA of %s, %s%% above the benchmark of %s. Reduce its budget or review targeting.",
				record.AdSetName,
				record.CPA.Decimal.StringFixed(2),
				record.CPA.Decimal.Div(benchmark).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).StringFixed(0),
				benchmark.StringFixed(2),
			),
			EstimatedSavings: defined(money(savings)),
			Confidence:       sampleConfidence(record.Impressions, record.Conversions, d.thresholds.MaxConfidence),
		})
	}

	return recommendations, nil
}

func (d *BleedingBudgetDetector) zeroConversion(record domain.EnrichedAdSetMetrics, benchmark decimal.Decimal, hasBenchmark bool) domain.Recommendation {
	recommendation := domain.Recommendation{
		Type:              domain.RecommendationBudgetWaste,
		Priority:          domain.PriorityCritical,
		RelatedEntityID:   record.AdSetID,
		RelatedEntityName: record.AdSetName,
		DetectedValue:     defined(money(record.Spend)),
		MetricLabel:       "Spend without conversions",
		Message: fmt.Sprintf(
			"Ad set %q spent %s without a single conversion. Pause it or rework the offer.",
			record.AdSetName,
			record.Spend.StringFixed(2),
		),
		EstimatedSavings: defined(money(record.Spend)),
		Confidence:       sampleConfidence(record.Impressions, 0, d.thresholds.MaxConfidence),
	}
	if hasBenchmark {
		recommendation.BenchmarkValue = defined(money(benchmark))
	}
	return recommendation
}
