package postgres

import (
	"context"
	"database/sql"
)

// Queryer é o subconjunto usado pelos repositórios, implementado por *Connection
type Queryer interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) *sql.Row
}
