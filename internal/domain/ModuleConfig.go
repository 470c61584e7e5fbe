package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ModuleConfig contém os benchmarks usados pelos detectores.
// Um campo com Valid=false está ausente.
type ModuleConfig struct {
	TargetCPA     decimal.NullDecimal `json:"target_cpa"`
	TargetROAS    decimal.NullDecimal `json:"target_roas"`
	AccountAvgCPA decimal.NullDecimal `json:"account_avg_cpa"`
}

// CPABenchmark retorna target_cpa quando positivo, senão account_avg_cpa quando positivo
func (c ModuleConfig) CPABenchmark() (decimal.Decimal, bool) {
	if c.TargetCPA.Valid && c.TargetCPA.Decimal.IsPositive() {
		return c.TargetCPA.Decimal, true
	}
	if c.AccountAvgCPA.Valid && c.AccountAvgCPA.Decimal.IsPositive() {
		return c.AccountAvgCPA.Decimal, true
	}
	return decimal.Zero, false
}

// ROASBenchmark retorna target_roas quando positivo
func (c ModuleConfig) ROASBenchmark() (decimal.Decimal, bool) {
	if c.TargetROAS.Valid && c.TargetROAS.Decimal.IsPositive() {
		return c.TargetROAS.Decimal, true
	}
	return decimal.Zero, false
}

// Merge sobrepõe os campos presentes em override
func (c ModuleConfig) Merge(override ModuleConfig) ModuleConfig {
	merged := c
	if override.TargetCPA.Valid {
		merged.TargetCPA = override.TargetCPA
	}
	if override.TargetROAS.Valid {
		merged.TargetROAS = override.TargetROAS
	}
	if override.AccountAvgCPA.Valid {
		merged.AccountAvgCPA = override.AccountAvgCPA
	}
	return merged
}

// CampaignConfig é a configuração de metas salva para uma campanha
type CampaignConfig struct {
	ID         int64               `json:"id"`
	CampaignID string              `json:"campaign_id"`
	TargetCPA  decimal.NullDecimal `json:"target_cpa"`
	TargetROAS decimal.NullDecimal `json:"target_roas"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// ModuleConfig converte a configuração salva para o formato dos detectores
func (c *CampaignConfig) ModuleConfig() ModuleConfig {
	if c == nil {
		return ModuleConfig{}
	}
	return ModuleConfig{
		TargetCPA:  c.TargetCPA,
		TargetROAS: c.TargetROAS,
	}
}
