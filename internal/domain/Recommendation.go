package domain

import (
	"github.com/shopspring/decimal"
)

// Module identifica um detector de otimização
type Module string

const (
	ModuleBleedingBudget  Module = "bleeding_budget"
	ModuleCreativeFatigue Module = "creative_fatigue"
	ModuleScaling         Module = "scaling"
)

// AllModules retorna os módulos na ordem canônica de execução
func AllModules() []Module {
	return []Module{ModuleBleedingBudget, ModuleCreativeFatigue, ModuleScaling}
}

type RecommendationType string

const (
	RecommendationBudgetWaste        RecommendationType = "budget_waste"
	RecommendationCreativeAlert      RecommendationType = "creative_alert"
	RecommendationScalingOpportunity RecommendationType = "scaling_opportunity"
	RecommendationCostEfficiency     RecommendationType = "cost_efficiency"
	RecommendationSentimentWarning   RecommendationType = "sentiment_warning"
	RecommendationLearningPhase      RecommendationType = "learning_phase"
	RecommendationPlatformArbitrage  RecommendationType = "platform_arbitrage"
	RecommendationDayparting         RecommendationType = "dayparting"
)

type Priority string

const (
	PriorityCritical    Priority = "CRITICAL"
	PriorityHigh        Priority = "HIGH"
	PriorityMedium      Priority = "MEDIUM"
	PriorityLow         Priority = "LOW"
	PriorityOpportunity Priority = "OPPORTUNITY"
)

// Rank define a ordem de apresentação: menor vem primeiro
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	case PriorityOpportunity:
		return 4
	}
	return 5
}

// Recommendation é uma sugestão gerada por um detector para um ad set
type Recommendation struct {
	ID                       string              `json:"id"`
	Type                     RecommendationType  `json:"type"`
	Priority                 Priority            `json:"priority"`
	RelatedEntityID          string              `json:"related_entity_id"`
	RelatedEntityName        string              `json:"related_entity_name"`
	DetectedValue            decimal.NullDecimal `json:"detected_value"`
	BenchmarkValue           decimal.NullDecimal `json:"benchmark_value"`
	MetricLabel              string              `json:"metric_label"`
	Message                  string              `json:"message"`
	EstimatedSavings         decimal.NullDecimal `json:"estimated_savings"`
	EstimatedRevenueIncrease decimal.NullDecimal `json:"estimated_revenue_increase"`
	Confidence               int                 `json:"confidence"`
	Module                   Module              `json:"module"`
}
