package feature

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"
)

// ErrUnknownSource is returned by NewSource for an unsupported source type
var ErrUnknownSource = errors.New("unknown feature source")

// Source types
const (
	SourceGeoJSON  = "geojson"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// Source loads features from a backing store.
type Source interface {
	// Name identifies the source in logs and captions
	Name() string

	// Load reads every feature. Implementations honor ctx cancellation.
	Load(ctx context.Context) ([]*Feature, error)
}

// SourceConfig describes where a layer's features come from.
type SourceConfig struct {
	Type     string `yaml:"type"`
	Path     string `yaml:"path"`
	DSN      string `yaml:"dsn"`
	Table    string `yaml:"table"`
	IDColumn string `yaml:"idColumn"`
}

// NewSource builds the source described by cfg. An empty type means geojson.
func NewSource(cfg SourceConfig) (Source, error) {
	switch cfg.Type {
	case "", SourceGeoJSON:
		if cfg.Path == "" {
			return nil, fmt.Errorf("geojson source requires a path")
		}
		return &FileSource{Path: cfg.Path}, nil
	case SourceSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite source requires a path")
		}
		return &SQLiteSource{Path: cfg.Path, Table: cfg.Table, IDColumn: cfg.IDColumn}, nil
	case SourcePostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres source requires a dsn")
		}
		return &PostgresSource{DSN: cfg.DSN, Table: cfg.Table, IDColumn: cfg.IDColumn}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Type)
	}
}

// FileSource reads a GeoJSON file
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string {
	return "geojson:" + s.Path
}

func (s *FileSource) Load(ctx context.Context) ([]*Feature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer func() { _ = f.Close() }()

	features, err := DecodeGeoJSON(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return features, nil
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func quoteIdent(ident string) string {
	// ident is validated to contain no quotes; safe to wrap
	return `"` + ident + `"`
}

// selectQuery builds the table scan shared by the SQL sources
func selectQuery(table, idColumn string) (string, error) {
	if !identRe.MatchString(table) {
		return "", fmt.Errorf("invalid table name %q (must match %s)", table, identRe.String())
	}
	q := "SELECT * FROM " + quoteIdent(table)
	if idColumn != "" {
		if !identRe.MatchString(idColumn) {
			return "", fmt.Errorf("invalid id column %q (must match %s)", idColumn, identRe.String())
		}
		q += " ORDER BY " + quoteIdent(idColumn)
	}
	return q, nil
}

// queryFeatures turns every row of query into a feature. Columns keep select
// order; idColumn, when set, becomes the feature id instead of a property.
func queryFeatures(ctx context.Context, db *sql.DB, query, idColumn string) ([]*Feature, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var features []*Feature
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		f := &Feature{Properties: NewProperties()}
		for i, col := range cols {
			v := columnValue(values[i])
			if idColumn != "" && col == idColumn {
				f.ID = idString(v)
				continue
			}
			f.Properties.Set(col, v)
		}
		if f.ID == "" {
			f.ID = NewID()
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return features, nil
}

// columnValue maps a driver value onto the property scalar types
func columnValue(v interface{}) interface{} {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case int16:
		return int64(t)
	case float32:
		return float64(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return v
	}
}

func idString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprint(v)
	}
}
