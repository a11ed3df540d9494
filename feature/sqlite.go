package feature

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteSource reads every row of a table from a SQLite database file.
type SQLiteSource struct {
	Path     string
	Table    string
	IDColumn string
}

func (s *SQLiteSource) Name() string {
	return "sqlite:" + s.Path + "#" + s.Table
}

// Connect opens the database and verifies it is reachable
func (s *SQLiteSource) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s *SQLiteSource) Load(ctx context.Context) ([]*Feature, error) {
	query, err := selectQuery(s.Table, s.IDColumn)
	if err != nil {
		return nil, err
	}

	db, err := s.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", s.Path, err)
	}
	defer func() { _ = db.Close() }()

	features, err := queryFeatures(ctx, db, query, s.IDColumn)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.Name(), err)
	}
	return features, nil
}
