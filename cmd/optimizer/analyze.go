package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
	"github.com/vfg2006/traffic-optimizer-api/internal/usecases/optimizing"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshot é o arquivo de entrada do comando analyze
type Snapshot struct {
	CampaignID string                   `json:"campaign_id"`
	AdSets     []domain.RawAdSetMetrics `json:"adsets"`
}

// snapshotSource serve os ad sets lidos do arquivo como fonte de dados
type snapshotSource struct {
	snapshot Snapshot
}

func (s snapshotSource) GetAdSetMetrics(context.Context, string, *domain.InsigthFilters) ([]domain.RawAdSetMetrics, error) {
	return s.snapshot.AdSets, nil
}

type analyzeOptions struct {
	snapshotPath   string
	thresholdsPath string
	modules        []string
	targetCPA      string
	targetROAS     string
	accountAvgCPA  string
	sequential     bool
}

func newAnalyzeCmd() *cobra.Command {
	opts := analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analisa um snapshot de ad sets e imprime o relatório em JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("modules") {
				opts.modules = nil
			}
			return runAnalyze(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.snapshotPath, "snapshot", "", "Arquivo JSON com campaign_id e adsets")
	cmd.Flags().StringVar(&opts.thresholdsPath, "thresholds", "", "Arquivo YAML com os thresholds dos detectores")
	cmd.Flags().StringSliceVar(&opts.modules, "modules", nil, "Módulos a executar (padrão: all)")
	cmd.Flags().StringVar(&opts.targetCPA, "target-cpa", "", "CPA alvo")
	cmd.Flags().StringVar(&opts.targetROAS, "target-roas", "", "ROAS alvo")
	cmd.Flags().StringVar(&opts.accountAvgCPA, "account-avg-cpa", "", "CPA médio da conta")
	cmd.Flags().BoolVar(&opts.sequential, "sequential", false, "Executa os detectores em sequência")
	_ = cmd.MarkFlagRequired("snapshot")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts analyzeOptions) error {
	snapshot, err := loadSnapshot(opts.snapshotPath)
	if err != nil {
		return err
	}

	thresholds, err := loadThresholds(opts.thresholdsPath)
	if err != nil {
		return err
	}

	overrides, err := parseOverrides(opts)
	if err != nil {
		return err
	}

	orchestrator := optimizing.NewOrchestrator(thresholds, optimizing.WithParallelDetectors(!opts.sequential))
	service := optimizing.NewService(snapshotSource{snapshot: snapshot}, nil, orchestrator, thresholds, nil)

	report, err := service.Analyze(cmd.Context(), &domain.AnalyzeRequest{
		CampaignID: snapshot.CampaignID,
		Modules:    opts.modules,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func loadSnapshot(path string) (Snapshot, error) {
	var snapshot Snapshot

	data, err := os.ReadFile(path)
	if err != nil {
		return snapshot, fmt.Errorf("erro ao ler snapshot: %w", err)
	}

	if err := json.Unmarshal(data, &snapshot); err != nil {
		return snapshot, fmt.Errorf("snapshot inválido: %w", err)
	}

	if strings.TrimSpace(snapshot.CampaignID) == "" {
		snapshot.CampaignID = "local"
	}

	return snapshot, nil
}

// loadThresholds parte dos padrões e sobrepõe apenas as chaves presentes no arquivo
func loadThresholds(path string) (optimizing.Thresholds, error) {
	thresholds := optimizing.DefaultThresholds()
	if path == "" {
		return thresholds, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return thresholds, fmt.Errorf("erro ao ler thresholds: %w", err)
	}

	if err := yaml.Unmarshal(data, &thresholds); err != nil {
		return thresholds, fmt.Errorf("thresholds inválidos: %w", err)
	}

	return thresholds.Normalize(), nil
}

func parseOverrides(opts analyzeOptions) (domain.ModuleConfig, error) {
	var cfg domain.ModuleConfig
	var err error

	if cfg.TargetCPA, err = parseFlagDecimal("target_cpa", opts.targetCPA); err != nil {
		return cfg, err
	}
	if cfg.TargetROAS, err = parseFlagDecimal("target_roas", opts.targetROAS); err != nil {
		return cfg, err
	}
	if cfg.AccountAvgCPA, err = parseFlagDecimal("account_avg_cpa", opts.accountAvgCPA); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func parseFlagDecimal(field, value string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.NullDecimal{}, nil
	}

	parsed, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.NullDecimal{}, optimizing.NewConfigurationError(field, "must be a positive number")
	}

	return decimal.NewNullDecimal(parsed), nil
}
