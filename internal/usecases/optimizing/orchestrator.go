package optimizing

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
	"github.com/vfg2006/traffic-optimizer-api/pkg/apiErrors"
	"github.com/vfg2006/traffic-optimizer-api/pkg/log"
	"github.com/vfg2006/traffic-optimizer-api/pkg/utils"
)

// Orchestrator executa os detectores selecionados e consolida o resultado
type Orchestrator struct {
	detectors map[domain.Module]Detector
	parallel  bool
	newRunID  func() (string, error)
	logger    log.Logger
}

type OrchestratorOption func(*Orchestrator)

// WithDetector substitui o detector de um módulo
func WithDetector(module domain.Module, detector Detector) OrchestratorOption {
	return func(o *Orchestrator) {
		o.detectors[module] = detector
	}
}

// WithParallelDetectors define se os detectores rodam em goroutines separadas
func WithParallelDetectors(parallel bool) OrchestratorOption {
	return func(o *Orchestrator) {
		o.parallel = parallel
	}
}

// WithRunIDGenerator troca o gerador do identificador de execução
func WithRunIDGenerator(generator func() (string, error)) OrchestratorOption {
	return func(o *Orchestrator) {
		o.newRunID = generator
	}
}

func NewOrchestrator(thresholds Thresholds, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		detectors: make(map[domain.Module]Detector),
		parallel:  true,
		newRunID:  utils.GenerateRunID,
		logger:    log.L,
	}

	for _, module := range domain.AllModules() {
		o.detectors[module] = newDetector(module, thresholds)
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

type detectorOutcome struct {
	module          domain.Module
	recommendations []domain.Recommendation
	err             error
}

// Run executa os módulos selecionados sobre os ad sets enriquecidos.
// A falha de um detector não interrompe os demais.
func (o *Orchestrator) Run(selection ModuleSelection, records []domain.EnrichedAdSetMetrics, cfg domain.ModuleConfig) (*domain.AnalysisResult, error) {
	if len(records) == 0 {
		return nil, NewOptimizationError(ErrInvalidInput, apiErrors.ErrOptimizationInput, "no ad set records to analyze")
	}

	modules := selection.Modules()
	if len(modules) == 0 {
		return nil, NewOptimizationError(ErrInvalidModule, apiErrors.ErrInvalidModule, "no modules selected")
	}

	runID, err := o.newRunID()
	if err != nil {
		return nil, fmt.Errorf("error generating run id: %w", err)
	}

	outcomes := make([]detectorOutcome, len(modules))
	if o.parallel {
		var wg sync.WaitGroup
		for i, module := range modules {
			wg.Add(1)
			go func(i int, module domain.Module) {
				defer wg.Done()
				outcomes[i] = o.runDetector(module, records, cfg)
			}(i, module)
		}
		wg.Wait()
	} else {
		for i, module := range modules {
			outcomes[i] = o.runDetector(module, records, cfg)
		}
	}

	result := &domain.AnalysisResult{
		RunID:           runID,
		Recommendations: make([]domain.Recommendation, 0),
	}

	modulesRun := make([]domain.Module, 0, len(modules))
	for _, outcome := range outcomes {
		if outcome.err != nil {
			o.logger.WithFields(log.Fields{
				"run_id": runID,
				"module": outcome.module,
				"error":  outcome.err.Error(),
			}).Error("optimizing: detector failed, excluding module from results")

			result.Failures = append(result.Failures, domain.DetectorFailure{
				Module: outcome.module,
				Reason: outcome.err.Error(),
			})
			continue
		}

		modulesRun = append(modulesRun, outcome.module)
		result.Recommendations = append(result.Recommendations, outcome.recommendations...)
	}

	sort.SliceStable(result.Recommendations, func(i, j int) bool {
		return result.Recommendations[i].Priority.Rank() < result.Recommendations[j].Priority.Rank()
	})

	for i := range result.Recommendations {
		result.Recommendations[i].ID = fmt.Sprintf("%s-%03d", runID, i+1)
	}

	result.Summary = Summarize(result.Recommendations, modulesRun, result.Failures)

	return result, nil
}

func (o *Orchestrator) runDetector(module domain.Module, records []domain.EnrichedAdSetMetrics, cfg domain.ModuleConfig) (outcome detectorOutcome) {
	outcome.module = module

	defer func() {
		if r := recover(); r != nil {
			outcome.recommendations = nil
			outcome.err = NewModuleError(ErrDetectorFailure, apiErrors.ErrInternalServer, module, fmt.Sprintf("panic: %v", r))
		}
	}()

	detector, ok := o.detectors[module]
	if !ok || detector == nil {
		outcome.err = NewModuleError(ErrDetectorFailure, apiErrors.ErrInternalServer, module, "detector not registered")
		return outcome
	}

	// cada detector recebe a própria cópia dos registros
	recommendations, err := detector.Detect(slices.Clone(records), cfg)
	if err != nil {
		outcome.err = NewModuleError(ErrDetectorFailure, apiErrors.ErrInternalServer, module, err.Error())
		return outcome
	}

	for i := range recommendations {
		recommendations[i].Module = module
	}
	outcome.recommendations = recommendations

	return outcome
}
