package handler

import (
	"errors"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
	"github.com/vfg2006/traffic-optimizer-api/internal/usecases/optimizing"
	"github.com/vfg2006/traffic-optimizer-api/pkg/apiErrors"
	"github.com/vfg2006/traffic-optimizer-api/pkg/log"
	"github.com/vfg2006/traffic-optimizer-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// AnalyzeRequest é o corpo de POST /v1/optimization-insights/analyze.
// As metas ficam como RawMessage para que valores não numéricos virem erro de configuração.
type AnalyzeRequest struct {
	CampaignID    string              `json:"campaign_id"`
	Modules       []string            `json:"modules"`
	TargetCPA     jsoniter.RawMessage `json:"target_cpa"`
	TargetROAS    jsoniter.RawMessage `json:"target_roas"`
	AccountAvgCPA jsoniter.RawMessage `json:"account_avg_cpa"`
	StartDate     string              `json:"start_date"`
	EndDate       string              `json:"end_date"`
}

// ModuleRequest é o corpo de POST /v1/optimization-insights/module/:module_name
type ModuleRequest struct {
	CampaignID string `json:"campaign_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// CampaignConfigRequest é o corpo de POST /v1/optimization-insights/config
type CampaignConfigRequest struct {
	CampaignID string              `json:"campaign_id"`
	TargetCPA  jsoniter.RawMessage `json:"target_cpa"`
	TargetROAS jsoniter.RawMessage `json:"target_roas"`
}

func AnalyzeCampaign(service optimizing.Optimizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var body AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			logger.WithField("error", err.Error()).Warn("optimization: invalid analyze request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		overrides, err := parseModuleConfig(body.TargetCPA, body.TargetROAS, body.AccountAvgCPA)
		if err != nil {
			writeOptimizationError(w, r, err)
			return
		}

		filters, err := parseFilters(body.StartDate, body.EndDate)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato AAAA-MM-DD", map[string]string{"error": err.Error()})
			return
		}

		logger.WithFields(log.Fields{
			"campaign_id": body.CampaignID,
			"modules":     body.Modules,
		}).Info("optimization: analyze requested")

		report, err := service.Analyze(r.Context(), &domain.AnalyzeRequest{
			CampaignID: strings.TrimSpace(body.CampaignID),
			Modules:    body.Modules,
			Overrides:  overrides,
			Filters:    filters,
		})
		if err != nil {
			writeOptimizationError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	})
}

func RunOptimizationModule(service optimizing.Optimizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		module := httprouter.ParamsFromContext(r.Context()).ByName("module_name")

		var body ModuleRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			logger.WithField("error", err.Error()).Warn("optimization: invalid module request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		filters, err := parseFilters(body.StartDate, body.EndDate)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato AAAA-MM-DD", map[string]string{"error": err.Error()})
			return
		}

		logger.WithFields(log.Fields{
			"campaign_id": body.CampaignID,
			"module":      module,
		}).Info("optimization: single module requested")

		report, err := service.RunModule(r.Context(), strings.TrimSpace(body.CampaignID), module, filters)
		if err != nil {
			writeOptimizationError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	})
}

func SaveCampaignConfig(service optimizing.Optimizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var body CampaignConfigRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			logger.WithField("error", err.Error()).Warn("optimization: invalid config request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		cfg, err := parseModuleConfig(body.TargetCPA, body.TargetROAS, nil)
		if err != nil {
			writeOptimizationError(w, r, err)
			return
		}

		saved, err := service.SaveCampaignConfig(r.Context(), strings.TrimSpace(body.CampaignID), cfg)
		if err != nil {
			writeOptimizationError(w, r, err)
			return
		}

		logger.WithField("campaign_id", saved.CampaignID).Info("optimization: campaign config saved")

		writeJSON(w, r, http.StatusOK, saved)
	})
}

func GetCampaignConfig(service optimizing.Optimizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("campaign_id")

		cfg, err := service.GetCampaignConfig(r.Context(), campaignID)
		if err != nil {
			writeOptimizationError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, cfg)
	})
}

// parseModuleConfig aceita número, string numérica ou null em cada meta
func parseModuleConfig(targetCPA, targetROAS, accountAvgCPA jsoniter.RawMessage) (domain.ModuleConfig, error) {
	var cfg domain.ModuleConfig
	var err error

	if cfg.TargetCPA, err = parseTarget("target_cpa", targetCPA); err != nil {
		return cfg, err
	}
	if cfg.TargetROAS, err = parseTarget("target_roas", targetROAS); err != nil {
		return cfg, err
	}
	if cfg.AccountAvgCPA, err = parseTarget("account_avg_cpa", accountAvgCPA); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func parseTarget(field string, raw jsoniter.RawMessage) (decimal.NullDecimal, error) {
	value := strings.TrimSpace(string(raw))
	if value == "" || value == "null" {
		return decimal.NullDecimal{}, nil
	}

	value = strings.Trim(value, `"`)
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}, optimizing.NewConfigurationError(field, "must be a positive number")
	}

	return decimal.NewNullDecimal(parsed), nil
}

func parseFilters(start, end string) (*domain.InsigthFilters, error) {
	if start == "" && end == "" {
		return nil, nil
	}

	startDate, err := utils.ParseDate(start)
	if err != nil {
		return nil, err
	}

	endDate, err := utils.ParseDate(end)
	if err != nil {
		return nil, err
	}

	return &domain.InsigthFilters{StartDate: startDate, EndDate: endDate}, nil
}

var errorMessages = map[string]string{
	apiErrors.ErrMissingRequiredData:  "Dados obrigatórios ausentes",
	apiErrors.ErrInvalidFormat:        "Formato de dados inválido",
	apiErrors.ErrOptimizationInput:    "Dados de entrada inválidos para análise",
	apiErrors.ErrInvalidModule:        "Módulo de otimização desconhecido",
	apiErrors.ErrInvalidConfiguration: "Configuração de metas inválida",
	apiErrors.ErrDataSource:           "Não foi possível obter as métricas da campanha",
	apiErrors.ErrNoAdSets:             "Campanha sem ad sets para analisar",
	apiErrors.ErrDatabaseOperation:    "Erro ao acessar a configuração da campanha",
}

func writeOptimizationError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context())

	var optErr *optimizing.OptimizationError
	if !errors.As(err, &optErr) {
		logger.WithField("error", err.Error()).Error("optimization: unexpected error")

		apiErr := apiErrors.FromError(err, apiErrors.ErrInternalServer)
		apiErrors.WriteError(w, apiErr.Code, "Erro interno do servidor", nil)
		return
	}

	details := map[string]string{}
	if optErr.Field != "" {
		details["field"] = optErr.Field
	}
	if optErr.Module != "" {
		details["module"] = string(optErr.Module)
	}
	if optErr.Details != "" {
		details["reason"] = optErr.Details
	}

	message, ok := errorMessages[optErr.Code]
	if !ok {
		message = "Erro interno do servidor"
	}

	fields := log.Fields{"code": optErr.Code, "error": err.Error()}
	if apiErrors.StatusFor(optErr.Code) >= http.StatusInternalServerError {
		logger.WithFields(fields).Error("optimization: request failed")
	} else {
		logger.WithFields(fields).Warn("optimization: request rejected")
	}

	apiErrors.WriteError(w, optErr.Code, message, details)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithField("error", err.Error()).Error("optimization: failed to encode response")
	}
}
