package main

import (
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "optimizer",
		Short: "Recomendações de otimização para ad sets do Meta",
		Long: `optimizer executa os detectores de otimização sobre um snapshot local de ad sets
ou prepara o banco usado pela API.

Exemplos:
  optimizer analyze --snapshot campanha.json
  optimizer analyze --snapshot campanha.json --modules bleeding_budget --target-cpa 45
  optimizer migrate`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			logrus.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Nível de log (debug|info|warn|error)")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newMigrateCmd())

	return rootCmd
}
