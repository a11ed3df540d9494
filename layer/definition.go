// Package layer loads layer definitions: which features to show, how to
// filter them and how to step through their time dimension.
package layer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/boolean-maybe/mapfilter/feature"
	"github.com/boolean-maybe/mapfilter/filter"
	"github.com/boolean-maybe/mapfilter/timespec"
)

// Layer is a parsed layer definition.
type Layer struct {
	Name        string                // display name shown in caption
	Key         tcell.Key             // tcell key constant (KeyRune or KeyF1..KeyF12)
	Rune        rune                  // printable character when Key is KeyRune
	Color       tcell.Color           // caption color (ColorDefault = theme color)
	Source      feature.SourceConfig  // where the features come from, paths resolved
	Filter      *filter.Filter        // initial filter (nil = all features)
	FilterText  string                // initial filter expression
	Time        *TimeDimension        // nil when the layer has no time dimension
	Columns     []string              // property columns shown in tables (empty = first keys)
	Default     bool                  // true if this layer should open on startup
	FilePath    string                // source file path (for error messages)
	ConfigIndex int                   // index in layers.yaml (-1 if embedded)
	config      layerFileConfig       // raw definition, kept for merging
	baseDir     string                // directory relative source paths resolve against
}

// TimeDimension binds a feature property to a time spec.
type TimeDimension struct {
	Property string        // feature property holding the feature's instant
	Text     string        // spec as written
	Spec     timespec.Spec // parsed Range or List
}

// GetActivationKey returns the key that switches to this layer
func (l *Layer) GetActivationKey() (tcell.Key, rune) {
	return l.Key, l.Rune
}

// layerFileConfig is a layer in YAML definitions.
type layerFileConfig struct {
	Name    string               `yaml:"name"`
	Key     string               `yaml:"key"`
	Color   string               `yaml:"color"`
	Default *bool                `yaml:"default"`
	Source  feature.SourceConfig `yaml:"source"`
	Filter  string               `yaml:"filter"`
	Columns []string             `yaml:"columns"`
	Time    *timeFileConfig      `yaml:"time"`
}

type timeFileConfig struct {
	Property string `yaml:"property"`
	Spec     string `yaml:"spec"`
}

// LayersFile represents the YAML structure of a layers.yaml file
type LayersFile struct {
	Layers []layerFileConfig `yaml:"layers"`
}
