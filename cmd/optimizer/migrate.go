package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/traffic-optimizer-api/infrastructure/database/migrations"
	"github.com/vfg2006/traffic-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-optimizer-api/infrastructure/migration"
	"github.com/vfg2006/traffic-optimizer-api/internal/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica as migrations pendentes no PostgreSQL configurado",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}

			conn, err := postgres.NewConnection(cmd.Context(), cfg.Database)
			if err != nil {
				return fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
			}
			defer conn.Close()

			return runMigrate(cmd, conn)
		},
	}
}

func runMigrate(cmd *cobra.Command, conn postgres.Conn) error {
	applied, err := migration.Apply(cmd.Context(), conn, migrations.FS)
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nenhuma migration pendente")
		return nil
	}

	for _, version := range applied {
		fmt.Fprintf(cmd.OutOrStdout(), "aplicada: %s\n", version)
	}
	return nil
}
