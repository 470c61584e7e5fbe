package optimizing

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
)

// Detector analisa os ad sets enriquecidos e devolve recomendações.
// Implementações não devem alterar os registros recebidos.
type Detector interface {
	Detect(records []domain.EnrichedAdSetMetrics, cfg domain.ModuleConfig) ([]domain.Recommendation, error)
}

// DetectorFunc adapta uma função para a interface Detector
type DetectorFunc func(records []domain.EnrichedAdSetMetrics, cfg domain.ModuleConfig) ([]domain.Recommendation, error)

func (f DetectorFunc) Detect(records []domain.EnrichedAdSetMetrics, cfg domain.ModuleConfig) ([]domain.Recommendation, error) {
	return f(records, cfg)
}

func newDetector(module domain.Module, thresholds Thresholds) Detector {
	switch module {
	case domain.ModuleBleedingBudget:
		return NewBleedingBudgetDetector(thresholds)
	case domain.ModuleCreativeFatigue:
		return NewCreativeFatigueDetector(thresholds)
	case domain.ModuleScaling:
		return NewScalingOpportunitiesDetector(thresholds)
	}
	panic(fmt.Sprintf("optimizing: no detector for module %q", module))
}

// sampleConfidence cresce com o volume de impressões e conversões e nunca passa de ceiling
func sampleConfidence(impressions, conversions int64, ceiling int) int {
	impressionScore := math.Min(1, math.Log10(float64(impressions)+1)/5)
	conversionScore := math.Min(1, math.Log10(float64(conversions)+1)/2)

	confidence := 50 + int(math.Round(25*impressionScore+20*conversionScore))
	return clampConfidence(confidence, ceiling)
}

func clampConfidence(confidence, ceiling int) int {
	if confidence > ceiling {
		return ceiling
	}
	if confidence < 0 {
		return 0
	}
	return confidence
}

func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func medianSpend(records []domain.EnrichedAdSetMetrics) decimal.Decimal {
	spends := make([]decimal.Decimal, 0, len(records))
	for _, record := range records {
		if record.Impressions > 0 {
			spends = append(spends, record.Spend)
		}
	}
	if len(spends) == 0 {
		return decimal.Zero
	}

	sort.Slice(spends, func(i, j int) bool { return spends[i].LessThan(spends[j]) })

	mid := len(spends) / 2
	if len(spends)%2 == 1 {
		return spends[mid]
	}
	return spends[mid-1].Add(spends[mid]).Div(decimal.NewFromInt(2))
}
