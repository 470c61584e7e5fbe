package optimizing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
	"github.com/vfg2006/traffic-optimizer-api/pkg/apiErrors"
)

// Erros específicos do contexto de otimização
var (
	// Erros de entrada
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidModule        = errors.New("invalid module")
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// Erros de execução
	ErrDetectorFailure = errors.New("detector failure")

	// Erros de colaboradores externos
	ErrDataSource  = errors.New("error fetching ad set metrics")
	ErrConfigStore = errors.New("error accessing campaign config store")
)

// OptimizationError é um erro com contexto adicional para a análise
type OptimizationError struct {
	Err     error         // Erro base
	Code    string        // Código de erro para API
	Field   string        // Campo de configuração inválido (quando aplicável)
	Module  domain.Module // Módulo envolvido (quando aplicável)
	Details string        // Detalhes adicionais
}

// Error implementa a interface error
func (e *OptimizationError) Error() string {
	msg := e.Err.Error()
	if e.Module != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Module)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Field)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

// Unwrap retorna o erro subjacente
func (e *OptimizationError) Unwrap() error {
	return e.Err
}

// NewOptimizationError cria um novo OptimizationError
func NewOptimizationError(err error, code string, details string) *OptimizationError {
	return &OptimizationError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewConfigurationError cria um erro de configuração apontando o campo inválido
func NewConfigurationError(field string, details string) *OptimizationError {
	return &OptimizationError{
		Err:     ErrInvalidConfiguration,
		Code:    apiErrors.ErrInvalidConfiguration,
		Field:   field,
		Details: details,
	}
}

// NewModuleError cria um erro associado a um módulo
func NewModuleError(err error, code string, module domain.Module, details string) *OptimizationError {
	return &OptimizationError{
		Err:     err,
		Code:    code,
		Module:  module,
		Details: details,
	}
}
