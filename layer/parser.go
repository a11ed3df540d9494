package layer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"

	"github.com/boolean-maybe/mapfilter/feature"
	"github.com/boolean-maybe/mapfilter/filter"
	"github.com/boolean-maybe/mapfilter/timespec"
)

// parseLayerConfig validates a layerFileConfig and turns it into a Layer
func parseLayerConfig(cfg layerFileConfig, source string) (*Layer, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, fmt.Errorf("layer (%s): missing name", source)
	}

	key, r, err := parseKey(cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("layer %q (%s): parsing key: %w", cfg.Name, source, err)
	}

	color, err := parseColor(cfg.Color)
	if err != nil {
		return nil, fmt.Errorf("layer %q (%s): %w", cfg.Name, source, err)
	}

	switch cfg.Source.Type {
	case "", feature.SourceGeoJSON, feature.SourceSQLite, feature.SourcePostgres:
	default:
		return nil, fmt.Errorf("layer %q (%s): %w: %q", cfg.Name, source, feature.ErrUnknownSource, cfg.Source.Type)
	}

	l := &Layer{
		Name:        cfg.Name,
		Key:         key,
		Rune:        r,
		Color:       color,
		Source:      cfg.Source,
		FilterText:  strings.TrimSpace(cfg.Filter),
		Columns:     cfg.Columns,
		Default:     cfg.Default != nil && *cfg.Default,
		FilePath:    source,
		ConfigIndex: -1, // set by caller for configured layers
		config:      cfg,
	}

	if l.FilterText != "" {
		f, err := filter.Compile(l.FilterText)
		if err != nil {
			return nil, fmt.Errorf("layer %q (%s): parsing filter: %w", cfg.Name, source, err)
		}
		l.Filter = f
	}

	if cfg.Time != nil {
		if cfg.Time.Property == "" {
			return nil, fmt.Errorf("layer %q (%s): time dimension requires 'property'", cfg.Name, source)
		}
		if cfg.Time.Spec == "" {
			return nil, fmt.Errorf("layer %q (%s): time dimension requires 'spec'", cfg.Name, source)
		}
		spec, err := timespec.Parse(cfg.Time.Spec)
		if err != nil {
			return nil, fmt.Errorf("layer %q (%s): parsing time spec: %w", cfg.Name, source, err)
		}
		l.Time = &TimeDimension{Property: cfg.Time.Property, Text: cfg.Time.Spec, Spec: spec}
	}

	return l, nil
}

// parseLayerYAML parses a single layer definition
func parseLayerYAML(data []byte, source string) (*Layer, error) {
	var cfg layerFileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return parseLayerConfig(cfg, source)
}

// parseKey accepts a single printable character or F1..F12. Empty means no key.
func parseKey(s string) (tcell.Key, rune, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return tcell.KeyNUL, 0, nil
	}

	if len(s) >= 2 && (s[0] == 'F' || s[0] == 'f') {
		if n, err := strconv.Atoi(s[1:]); err == nil {
			if n < 1 || n > 12 {
				return 0, 0, fmt.Errorf("function key %q out of range F1-F12", s)
			}
			return tcell.KeyF1 + tcell.Key(n-1), 0, nil
		}
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, 0, fmt.Errorf("key %q must be a single character or F1-F12", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsPrint(r) || unicode.IsSpace(r) {
		return 0, 0, fmt.Errorf("key %q is not printable", s)
	}
	return tcell.KeyRune, r, nil
}

// parseColor resolves a color name or #rrggbb; empty means the theme default
func parseColor(s string) (tcell.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "default") {
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault {
		return tcell.ColorDefault, fmt.Errorf("unknown color %q", s)
	}
	return c, nil
}

// keyName renders an activation key for logs and help text
func keyName(key tcell.Key, r rune) string {
	switch {
	case key == tcell.KeyRune:
		return string(r)
	case key >= tcell.KeyF1 && key <= tcell.KeyF12:
		return "F" + strconv.Itoa(int(key-tcell.KeyF1)+1)
	default:
		return ""
	}
}

// KeyName renders the layer's activation key, empty when it has none
func (l *Layer) KeyName() string {
	return keyName(l.Key, l.Rune)
}
