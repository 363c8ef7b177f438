package db

import (
	"context"
	"fmt"

	"github.com/jacobarthurs/pgseq/internal/sequence"

	"github.com/jackc/pgx/v5"
)

// Conn runs catalog queries over a single pgx connection.
type Conn struct {
	conn *pgx.Conn
}

func Connect(ctx context.Context, connStr string) (*Conn, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return &Conn{conn: conn}, nil
}

// Query runs sql inside a read-only transaction that is always rolled back.
func (c *Conn) Query(ctx context.Context, sql string) ([]sequence.Row, error) {
	tx, err := c.conn.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	out := make([]sequence.Row, len(maps))
	for i, m := range maps {
		out[i] = sequence.Row(m)
	}
	return out, nil
}

func (c *Conn) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}
