package feature

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// PostgresSource reads every row of a PostgreSQL table.
type PostgresSource struct {
	DSN      string
	Table    string
	IDColumn string
}

func (s *PostgresSource) Name() string {
	return "postgres:" + s.Table
}

// Connect opens a database/sql handle backed by pgx
func (s *PostgresSource) Connect(ctx context.Context) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(s.DSN)
	if err != nil {
		return nil, err
	}
	db := stdlib.OpenDB(*cfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s *PostgresSource) Load(ctx context.Context) ([]*Feature, error) {
	query, err := selectQuery(s.Table, s.IDColumn)
	if err != nil {
		return nil, err
	}

	db, err := s.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	defer func() { _ = db.Close() }()

	features, err := queryFeatures(ctx, db, query, s.IDColumn)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.Name(), err)
	}
	return features, nil
}
