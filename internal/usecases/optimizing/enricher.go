package optimizing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
)

var thousand = decimal.NewFromInt(1000)

// Enrich calcula as métricas derivadas de um ad set.
// Não altera o registro de entrada.
func Enrich(raw domain.RawAdSetMetrics) domain.EnrichedAdSetMetrics {
	enriched := domain.EnrichedAdSetMetrics{
		RawAdSetMetrics: raw,
		CTR:             decimal.Zero,
	}

	impressions := decimal.NewFromInt(raw.Impressions)
	clicks := decimal.NewFromInt(raw.Clicks)

	if raw.Impressions > 0 {
		enriched.CTR = clicks.Div(impressions)
		enriched.CPM = defined(raw.Spend.Div(impressions).Mul(thousand))
	}

	if raw.Clicks > 0 {
		enriched.CPC = defined(raw.Spend.Div(clicks))
	}

	enriched.Conversions = domain.CountConversions(raw.Actions)
	if enriched.Conversions > 0 {
		enriched.CPA = defined(raw.Spend.Div(decimal.NewFromInt(enriched.Conversions)))
	}

	enriched.Revenue = revenue(raw.ActionValues)
	if enriched.Revenue.Valid && raw.Spend.IsPositive() {
		enriched.ROAS = defined(enriched.Revenue.Decimal.Div(raw.Spend))
	}

	switch {
	case raw.Frequency.IsPositive():
		enriched.EffectiveFrequency = defined(raw.Frequency)
	case raw.Reach > 0:
		enriched.EffectiveFrequency = defined(impressions.Div(decimal.NewFromInt(raw.Reach)))
	}

	if prev := raw.PreviousPeriod; prev != nil && prev.Impressions > 0 {
		enriched.BaselineCTR = defined(decimal.NewFromInt(prev.Clicks).Div(decimal.NewFromInt(prev.Impressions)))
	}

	enriched.WindowDays = windowDays(raw.DateStart, raw.DateStop)

	return enriched
}

// EnrichAll enriquece os registros preservando ordem e quantidade
func EnrichAll(records []domain.RawAdSetMetrics) []domain.EnrichedAdSetMetrics {
	enriched := make([]domain.EnrichedAdSetMetrics, 0, len(records))
	for _, raw := range records {
		enriched = append(enriched, Enrich(raw))
	}
	return enriched
}

func defined(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func revenue(values []domain.ActionValue) decimal.NullDecimal {
	total := decimal.Zero
	found := false
	for _, value := range values {
		if domain.IsRevenueAction(value.ActionType) {
			total = total.Add(value.Value)
			found = true
		}
	}
	if !found {
		return decimal.NullDecimal{}
	}
	return defined(total)
}

func windowDays(start, stop string) int {
	if start == "" || stop == "" {
		return 0
	}
	from, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return 0
	}
	to, err := time.Parse(time.DateOnly, stop)
	if err != nil || to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}
