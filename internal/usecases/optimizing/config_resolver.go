package optimizing

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
)

// ValidateModuleConfig rejeita qualquer benchmark informado que não seja positivo
func ValidateModuleConfig(cfg domain.ModuleConfig) error {
	fields := []struct {
		name  string
		value decimal.NullDecimal
	}{
		{"target_cpa", cfg.TargetCPA},
		{"target_roas", cfg.TargetROAS},
		{"account_avg_cpa", cfg.AccountAvgCPA},
	}

	for _, field := range fields {
		if field.value.Valid && !field.value.Decimal.IsPositive() {
			return NewConfigurationError(field.name, "must be a positive number")
		}
	}

	return nil
}

// AccountAverageCPA é o gasto total dividido pelo total de conversões, ou zero sem conversões
func AccountAverageCPA(records []domain.EnrichedAdSetMetrics) decimal.Decimal {
	spend := decimal.Zero
	var conversions int64
	for _, record := range records {
		spend = spend.Add(record.Spend)
		conversions += record.Conversions
	}
	if conversions == 0 {
		return decimal.Zero
	}
	return spend.Div(decimal.NewFromInt(conversions))
}

// ResolveConfig completa a configuração explícita com os valores derivados da conta.
// target_cpa nunca é inventado; target_roas cai para o padrão da política.
func ResolveConfig(explicit domain.ModuleConfig, records []domain.EnrichedAdSetMetrics, thresholds Thresholds) domain.ModuleConfig {
	resolved := explicit

	if !resolved.AccountAvgCPA.Valid {
		resolved.AccountAvgCPA = defined(AccountAverageCPA(records))
	}

	if !resolved.TargetROAS.Valid {
		resolved.TargetROAS = defined(decimal.NewFromFloat(thresholds.DefaultTargetROAS))
	}

	return resolved
}
