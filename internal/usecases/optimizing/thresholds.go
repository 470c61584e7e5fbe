package optimizing

import (
	"github.com/vfg2006/traffic-optimizer-api/internal/config"
)

// Thresholds reúne os parâmetros de ajuste dos detectores.
// Os valores padrão são os de DefaultThresholds.
type Thresholds struct {
	BleedingCriticalMultiplier float64 `yaml:"bleeding_critical_multiplier"`
	BleedingHighMultiplier     float64 `yaml:"bleeding_high_multiplier"`
	MinSpendFloor              float64 `yaml:"min_spend_floor"`
	MaxConfidence              int     `yaml:"max_confidence"`

	FatigueCTRDecline             float64 `yaml:"fatigue_ctr_decline"`
	FatigueCTRFloor               float64 `yaml:"fatigue_ctr_floor"`
	FatigueFrequencyCeiling       float64 `yaml:"fatigue_frequency_ceiling"`
	FatigueForwardWindowDays      int     `yaml:"fatigue_forward_window_days"`
	FatigueHeuristicMaxConfidence int     `yaml:"fatigue_heuristic_max_confidence"`

	ScalingCPAMultiplier      float64 `yaml:"scaling_cpa_multiplier"`
	ScalingROASMultiplier     float64 `yaml:"scaling_roas_multiplier"`
	ScalingBudgetIncrease     float64 `yaml:"scaling_budget_increase"`
	ScalingDiminishingReturns float64 `yaml:"scaling_diminishing_returns"`

	DefaultTargetROAS float64 `yaml:"default_target_roas"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		BleedingCriticalMultiplier: 1.5,
		BleedingHighMultiplier:     1.2,
		MinSpendFloor:              50,
		MaxConfidence:              95,

		FatigueCTRDecline:             0.25,
		FatigueCTRFloor:               0.008,
		FatigueFrequencyCeiling:       3.0,
		FatigueForwardWindowDays:      7,
		FatigueHeuristicMaxConfidence: 60,

		ScalingCPAMultiplier:      0.7,
		ScalingROASMultiplier:     1.3,
		ScalingBudgetIncrease:     0.5,
		ScalingDiminishingReturns: 0.7,

		DefaultTargetROAS: 4.0,
	}
}

// ThresholdsFromConfig monta os thresholds a partir da configuração da aplicação
func ThresholdsFromConfig(cfg config.Optimization) Thresholds {
	return Thresholds{
		BleedingCriticalMultiplier: cfg.BleedingCriticalMultiplier,
		BleedingHighMultiplier:     cfg.BleedingHighMultiplier,
		MinSpendFloor:              cfg.MinSpendFloor,
		MaxConfidence:              cfg.MaxConfidence,

		FatigueCTRDecline:             cfg.FatigueCTRDecline,
		FatigueCTRFloor:               cfg.FatigueCTRFloor,
		FatigueFrequencyCeiling:       cfg.FatigueFrequencyCeiling,
		FatigueForwardWindowDays:      cfg.FatigueForwardWindowDays,
		FatigueHeuristicMaxConfidence: cfg.FatigueHeuristicMaxConfidence,

		ScalingCPAMultiplier:      cfg.ScalingCPAMultiplier,
		ScalingROASMultiplier:     cfg.ScalingROASMultiplier,
		ScalingBudgetIncrease:     cfg.ScalingBudgetIncrease,
		ScalingDiminishingReturns: cfg.ScalingDiminishingReturns,

		DefaultTargetROAS: cfg.DefaultTargetROAS,
	}.Normalize()
}

// confidenceCeiling é o teto das confianças: nenhum detector afirma certeza
const confidenceCeiling = 95

// Normalize troca valores não positivos pelo padrão e limita as confianças a confidenceCeiling
func (t Thresholds) Normalize() Thresholds {
	def := DefaultThresholds()

	positive := func(v *float64, fallback float64) {
		if *v <= 0 {
			*v = fallback
		}
	}
	confidence := func(v *int, fallback int) {
		if *v <= 0 {
			*v = fallback
		}
		if *v > confidenceCeiling {
			*v = confidenceCeiling
		}
	}

	positive(&t.BleedingCriticalMultiplier, def.BleedingCriticalMultiplier)
	positive(&t.BleedingHighMultiplier, def.BleedingHighMultiplier)
	positive(&t.MinSpendFloor, def.MinSpendFloor)
	confidence(&t.MaxConfidence, def.MaxConfidence)

	positive(&t.FatigueCTRDecline, def.FatigueCTRDecline)
	positive(&t.FatigueCTRFloor, def.FatigueCTRFloor)
	positive(&t.FatigueFrequencyCeiling, def.FatigueFrequencyCeiling)
	if t.FatigueForwardWindowDays <= 0 {
		t.FatigueForwardWindowDays = def.FatigueForwardWindowDays
	}
	confidence(&t.FatigueHeuristicMaxConfidence, def.FatigueHeuristicMaxConfidence)

	positive(&t.ScalingCPAMultiplier, def.ScalingCPAMultiplier)
	positive(&t.ScalingROASMultiplier, def.ScalingROASMultiplier)
	positive(&t.ScalingBudgetIncrease, def.ScalingBudgetIncrease)
	positive(&t.ScalingDiminishingReturns, def.ScalingDiminishingReturns)

	positive(&t.DefaultTargetROAS, def.DefaultTargetROAS)

	return t
}
