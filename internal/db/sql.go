package db

import (
	"context"
	"fmt"

	"github.com/jacobarthurs/pgseq/internal/sequence"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// SQLQuerier adapts a database/sql handle, for callers that already manage
// a pool.
type SQLQuerier struct {
	db *sqlx.DB
}

func NewSQLQuerier(db *sqlx.DB) *SQLQuerier {
	return &SQLQuerier{db: db}
}

// OpenSQL opens a pool through the pgx stdlib driver and pings it.
func OpenSQL(ctx context.Context, connStr string) (*SQLQuerier, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return NewSQLQuerier(db), nil
}

func (q *SQLQuerier) Query(ctx context.Context, sql string) ([]sequence.Row, error) {
	rows, err := q.db.QueryxContext(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	var out []sequence.Row
	for rows.Next() {
		m := make(map[string]any)
		if err := rows.MapScan(m); err != nil {
			return nil, fmt.Errorf("reading rows: %w", err)
		}
		for k, v := range m {
			if b, ok := v.([]byte); ok {
				m[k] = string(b)
			}
		}
		out = append(out, sequence.Row(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return out, nil
}

func (q *SQLQuerier) Close() error {
	return q.db.Close()
}
