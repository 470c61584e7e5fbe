package optimizing

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
)

// Summarize agrega as recomendações. Estimativas ausentes contam como zero.
func Summarize(recommendations []domain.Recommendation, modulesRun []domain.Module, failures []domain.DetectorFailure) domain.Summary {
	summary := domain.Summary{
		TotalRecommendations:          len(recommendations),
		TotalEstimatedSavings:         decimal.Zero,
		TotalEstimatedRevenueIncrease: decimal.Zero,
		ModulesRun:                    modulesRun,
	}
	if summary.ModulesRun == nil {
		summary.ModulesRun = make([]domain.Module, 0)
	}

	for _, recommendation := range recommendations {
		switch recommendation.Priority {
		case domain.PriorityCritical:
			summary.CriticalIssues++
		case domain.PriorityHigh:
			summary.HighPriority++
		case domain.PriorityMedium:
			summary.MediumPriority++
		case domain.PriorityLow:
			summary.LowPriority++
		case domain.PriorityOpportunity:
			summary.Opportunities++
		}

		if recommendation.EstimatedSavings.Valid {
			summary.TotalEstimatedSavings = summary.TotalEstimatedSavings.Add(recommendation.EstimatedSavings.Decimal)
		}
		if recommendation.EstimatedRevenueIncrease.Valid {
			summary.TotalEstimatedRevenueIncrease = summary.TotalEstimatedRevenueIncrease.Add(recommendation.EstimatedRevenueIncrease.Decimal)
		}
	}

	for _, failure := range failures {
		summary.ModulesFailed = append(summary.ModulesFailed, failure.Module)
	}

	return summary
}
