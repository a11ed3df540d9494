package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/boolean-maybe/mapfilter/feature"
	"github.com/boolean-maybe/mapfilter/filter"
	"github.com/boolean-maybe/mapfilter/layer"
	"github.com/boolean-maybe/mapfilter/store"
)

func runFilter(env *Env, args []string) error {
	fs, level := newFlagSet(env, "filter")
	expr := fs.StringP("expr", "e", "", "filter expression (defaults to the layer filter with --layer)")
	layerName := fs.StringP("layer", "l", "", "read features from the named layer")
	table := fs.String("table", "features", "table to read when FILE is a SQLite database")
	idsOnly := fs.Bool("ids", false, "print matching ids only, one per line")
	if err := parseFlags(env, fs, level, args); err != nil {
		return err
	}

	var (
		cfg     feature.SourceConfig
		columns []string
	)
	switch {
	case *layerName != "" && fs.NArg() > 0:
		return fmt.Errorf("%w: give either FILE or --layer, not both", errUsage)
	case *layerName != "":
		l, err := findLayer(*layerName)
		if err != nil {
			return err
		}
		cfg = l.Source
		columns = l.Columns
		if !fs.Changed("expr") {
			*expr = l.FilterText
		}
	case fs.NArg() == 1:
		cfg = fileSourceConfig(fs.Arg(0), *table)
	default:
		return fmt.Errorf("%w: expected one FILE or --layer NAME", errUsage)
	}
	if *layerName == "" && !fs.Changed("expr") {
		return fmt.Errorf("%w: -e EXPR is required", errUsage)
	}

	// a layer without a filter shows everything; an explicit -e must compile
	var pred filter.Predicate
	if fs.Changed("expr") || strings.TrimSpace(*expr) != "" {
		f, err := filter.Compile(*expr)
		if err != nil {
			return err
		}
		pred = f.Predicate()
	}

	src, err := feature.NewSource(cfg)
	if err != nil {
		return err
	}
	s := store.NewInMemoryStore(src.Name())
	if err := store.Load(context.Background(), src, s); err != nil {
		return err
	}

	matches := s.Search(pred)
	if *idsOnly {
		for _, f := range matches {
			_, _ = fmt.Fprintln(env.Stdout, f.ID)
		}
		return nil
	}
	renderFeatures(env.Stdout, matches, columns)
	_, _ = fmt.Fprintf(env.Stderr, "%d of %d features\n", len(matches), s.Count())
	return nil
}

// fileSourceConfig picks the source type from the file extension
func fileSourceConfig(path, table string) feature.SourceConfig {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return feature.SourceConfig{Type: feature.SourceSQLite, Path: path, Table: table}
	default:
		return feature.SourceConfig{Type: feature.SourceGeoJSON, Path: path}
	}
}

func findLayer(name string) (*layer.Layer, error) {
	layers, err := layer.LoadLayers()
	if err != nil {
		return nil, err
	}
	l := layer.FindLayer(layers, name)
	if l == nil {
		return nil, fmt.Errorf("layer %q not found", name)
	}
	return l, nil
}

// featureColumns returns columns, or every property key in first-seen order
func featureColumns(columns []string, features []*feature.Feature) []string {
	if len(columns) > 0 {
		return columns
	}
	seen := make(map[string]bool)
	var out []string
	for _, f := range features {
		for _, k := range f.Properties.Keys() {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}

func renderFeatures(w io.Writer, features []*feature.Feature, columns []string) {
	columns = featureColumns(columns, features)

	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{"id"}, columns...))
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, f := range features {
		row := make([]string, 0, len(columns)+1)
		row = append(row, f.ID)
		for _, c := range columns {
			row = append(row, f.Properties.String(c))
		}
		table.Append(row)
	}
	table.Render()
}
