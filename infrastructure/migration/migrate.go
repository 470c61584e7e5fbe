package migration

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-optimizer-api/infrastructure/database/postgres"
)

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    VARCHAR(255) PRIMARY KEY,
	applied_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
)`

// Apply executa os scripts .sql ainda não aplicados, cada um na sua transação,
// e registra a versão em schema_migrations. Retorna as versões aplicadas agora.
func Apply(ctx context.Context, conn postgres.Conn, scripts fs.FS) ([]string, error) {
	if _, err := conn.Exec(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("erro ao criar schema_migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return nil, err
	}

	files, err := fs.Glob(scripts, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	done := make([]string, 0)
	for _, file := range files {
		version := strings.TrimSuffix(file, ".sql")
		if _, ok := applied[version]; ok {
			continue
		}

		content, err := fs.ReadFile(scripts, file)
		if err != nil {
			return done, fmt.Errorf("erro ao ler %s: %w", file, err)
		}

		startTime := time.Now()
		err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, string(content)); err != nil {
				return err
			}

			query, args, err := squirrel.
				Insert("schema_migrations").
				Columns("version").
				Values(version).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			_, err = tx.ExecContext(ctx, query, args...)
			return err
		})
		if err != nil {
			return done, fmt.Errorf("erro ao aplicar %s: %w", file, err)
		}

		logrus.WithFields(logrus.Fields{
			"version":  version,
			"duration": time.Since(startTime).String(),
		}).Info("migration: applied")

		done = append(done, version)
	}

	return done, nil
}

func appliedVersions(ctx context.Context, conn postgres.Queryer) (map[string]struct{}, error) {
	rows, err := conn.Query(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("erro ao listar migrations aplicadas: %w", err)
	}
	defer rows.Close()

	versions := make(map[string]struct{})
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		versions[version] = struct{}{}
	}

	return versions, rows.Err()
}
