package optimizing

import (
	"strings"

	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
	"github.com/vfg2006/traffic-optimizer-api/pkg/apiErrors"
)

// AllModulesKeyword seleciona todos os módulos
const AllModulesKeyword = "all"

// ModuleSelection é um conjunto validado de módulos a executar
type ModuleSelection struct {
	selected map[domain.Module]bool
}

func SelectAll() ModuleSelection {
	selection := ModuleSelection{selected: make(map[domain.Module]bool)}
	for _, module := range domain.AllModules() {
		selection.selected[module] = true
	}
	return selection
}

// ParseModule valida o nome de um único módulo
func ParseModule(name string) (domain.Module, error) {
	name = strings.TrimSpace(name)
	for _, module := range domain.AllModules() {
		if string(module) == name {
			return module, nil
		}
	}
	return "", &OptimizationError{
		Err:     ErrInvalidModule,
		Code:    apiErrors.ErrInvalidModule,
		Module:  domain.Module(name),
		Details: "available: " + availableModules(),
	}
}

// ParseModuleSelection valida a lista de módulos pedida.
// "all" em qualquer posição seleciona todos; lista vazia é inválida.
func ParseModuleSelection(names []string) (ModuleSelection, error) {
	if len(names) == 0 {
		return ModuleSelection{}, NewOptimizationError(ErrInvalidModule, apiErrors.ErrInvalidModule, "no modules selected")
	}

	all := false
	selection := ModuleSelection{selected: make(map[domain.Module]bool)}
	for _, name := range names {
		if strings.TrimSpace(name) == AllModulesKeyword {
			all = true
			continue
		}

		module, err := ParseModule(name)
		if err != nil {
			return ModuleSelection{}, err
		}
		selection.selected[module] = true
	}

	if all {
		return SelectAll(), nil
	}
	return selection, nil
}

// Modules devolve os módulos selecionados na ordem canônica
func (s ModuleSelection) Modules() []domain.Module {
	modules := make([]domain.Module, 0, len(s.selected))
	for _, module := range domain.AllModules() {
		if s.selected[module] {
			modules = append(modules, module)
		}
	}
	return modules
}

func (s ModuleSelection) Contains(module domain.Module) bool {
	return s.selected[module]
}

func availableModules() string {
	names := make([]string, 0, len(domain.AllModules())+1)
	for _, module := range domain.AllModules() {
		names = append(names, string(module))
	}
	names = append(names, AllModulesKeyword)
	return strings.Join(names, ", ")
}
