package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary agrega as recomendações de uma execução
type Summary struct {
	TotalRecommendations          int             `json:"total_recommendations"`
	CriticalIssues                int             `json:"critical_issues"`
	HighPriority                  int             `json:"high_priority"`
	MediumPriority                int             `json:"medium_priority"`
	LowPriority                   int             `json:"low_priority"`
	Opportunities                 int             `json:"opportunities"`
	TotalEstimatedSavings         decimal.Decimal `json:"total_estimated_savings"`
	TotalEstimatedRevenueIncrease decimal.Decimal `json:"total_estimated_revenue_increase"`
	ModulesRun                    []Module        `json:"modules_run"`
	ModulesFailed                 []Module        `json:"modules_failed,omitempty"`
}

// DetectorFailure registra um detector que falhou durante a execução
type DetectorFailure struct {
	Module Module `json:"module"`
	Reason string `json:"reason"`
}

// AnalysisResult é a saída do orquestrador
type AnalysisResult struct {
	RunID           string            `json:"run_id"`
	Recommendations []Recommendation  `json:"recommendations"`
	Summary         Summary           `json:"summary"`
	Failures        []DetectorFailure `json:"failures,omitempty"`
}

// AnalyzeRequest é o pedido de análise de uma campanha
type AnalyzeRequest struct {
	CampaignID string
	Modules    []string
	Overrides  ModuleConfig
	Filters    *InsigthFilters
}

// OptimizationReport é a resposta completa de uma análise
type OptimizationReport struct {
	CampaignID      string            `json:"campaign_id"`
	RunID           string            `json:"run_id"`
	Recommendations []Recommendation  `json:"recommendations"`
	Summary         Summary           `json:"summary"`
	Config          ModuleConfig      `json:"config"`
	Failures        []DetectorFailure `json:"failures,omitempty"`
	AdSetsAnalyzed  int               `json:"adsets_analyzed"`
	AnalyzedAt      time.Time         `json:"analyzed_at"`
}
