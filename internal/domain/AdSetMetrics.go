package domain

import (
	"github.com/shopspring/decimal"
)

// Tipos de ação do Meta considerados conversão
const (
	ActionTypePurchase     = "purchase"
	ActionTypeOmniPurchase = "omni_purchase"
	ActionTypeLead         = "lead"
)

// Action é uma contagem de ações reportada pela plataforma
type Action struct {
	ActionType string `json:"action_type"`
	Value      int64  `json:"value"`
}

// ActionValue é o valor monetário atribuído a um tipo de ação
type ActionValue struct {
	ActionType string          `json:"action_type"`
	Value      decimal.Decimal `json:"value"`
}

// PeriodMetrics guarda os números de um período anterior usado como linha de base
type PeriodMetrics struct {
	DateStart   string          `json:"date_start,omitempty"`
	DateStop    string          `json:"date_stop,omitempty"`
	Spend       decimal.Decimal `json:"spend"`
	Impressions int64           `json:"impressions"`
	Clicks      int64           `json:"clicks"`
}

// PlatformMetrics é a quebra de um ad set por plataforma de veiculação
type PlatformMetrics struct {
	Platform    string          `json:"platform"`
	Spend       decimal.Decimal `json:"spend"`
	Impressions int64           `json:"impressions"`
	Clicks      int64           `json:"clicks"`
	Actions     []Action        `json:"actions,omitempty"`
}

// RawAdSetMetrics representa os números de um ad set como chegam da fonte de dados.
// Campos numéricos ausentes são zero.
type RawAdSetMetrics struct {
	AdSetID           string            `json:"adset_id"`
	AdSetName         string            `json:"adset_name"`
	CampaignID        string            `json:"campaign_id,omitempty"`
	DateStart         string            `json:"date_start,omitempty"`
	DateStop          string            `json:"date_stop,omitempty"`
	Spend             decimal.Decimal   `json:"spend"`
	Impressions       int64             `json:"impressions"`
	Clicks            int64             `json:"clicks"`
	Reach             int64             `json:"reach"`
	Frequency         decimal.Decimal   `json:"frequency"`
	Actions           []Action          `json:"actions,omitempty"`
	ActionValues      []ActionValue     `json:"action_values,omitempty"`
	PreviousPeriod    *PeriodMetrics    `json:"previous_period,omitempty"`
	PlatformBreakdown []PlatformMetrics `json:"platform_breakdown,omitempty"`
}

// EnrichedAdSetMetrics é o ad set com as métricas derivadas calculadas.
// Valores indefinidos (divisão por zero, dado ausente) ficam com Valid=false.
type EnrichedAdSetMetrics struct {
	RawAdSetMetrics
	CTR                decimal.Decimal     `json:"ctr"`
	CPC                decimal.NullDecimal `json:"cpc"`
	CPM                decimal.NullDecimal `json:"cpm"`
	Conversions        int64               `json:"conversions"`
	CPA                decimal.NullDecimal `json:"cpa"`
	Revenue            decimal.NullDecimal `json:"revenue"`
	ROAS               decimal.NullDecimal `json:"roas"`
	EffectiveFrequency decimal.NullDecimal `json:"effective_frequency"`
	BaselineCTR        decimal.NullDecimal `json:"baseline_ctr"`
	WindowDays         int                 `json:"window_days"`
}

// IsConversionAction indica se o tipo de ação conta como conversão
func IsConversionAction(actionType string) bool {
	switch actionType {
	case ActionTypePurchase, ActionTypeOmniPurchase, ActionTypeLead:
		return true
	}
	return false
}

// IsRevenueAction indica se o valor da ação conta como receita
func IsRevenueAction(actionType string) bool {
	return actionType == ActionTypePurchase || actionType == ActionTypeOmniPurchase
}

// CountConversions soma as ações de conversão
func CountConversions(actions []Action) int64 {
	var total int64
	for _, action := range actions {
		if IsConversionAction(action.ActionType) {
			total += action.Value
		}
	}
	return total
}
