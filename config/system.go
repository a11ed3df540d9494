package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/boolean-maybe/mapfilter/feature"
)

//go:embed sample_features.geojson
var sampleFeatures string

// idPlaceholder marks feature ids in the sample data that get a generated id
const idPlaceholder = "XXXXXXXX"

const defaultConfig = `logging:
  level: error
appearance:
  theme: auto
time:
  maxSteps: 10000
  playInterval: 1s
table:
  maxRows: 500
`

const defaultLayers = `layers:
  - name: Events
    key: E
    color: "#4169e1"
    default: true
    source:
      type: geojson
      path: data/sample.geojson
    columns: [place, kind, mag, time]
    time:
      property: time
      spec: 2013-07-14T00:00:00Z/2013-07-15T00:00:00Z/PT1H
  - name: Strong
    key: S
    color: orange
    filter: mag >= 4
    source:
      type: geojson
      path: data/sample.geojson
    columns: [place, mag, depth]
`

// sampleData returns the sample collection with every id placeholder replaced
func sampleData() string {
	out := sampleFeatures
	for strings.Contains(out, idPlaceholder) {
		out = strings.Replace(out, idPlaceholder, feature.NewID(), 1)
	}
	return out
}

// BootstrapSystem creates the project directory and seeds it with a sample
// data file, config.yaml and layers.yaml. Returns the created files.
func BootstrapSystem() ([]string, error) {
	if err := EnsureDirs(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	files := []struct {
		path    string
		content string
		what    string
	}{
		{filepath.Join(GetDataDir(), "sample.geojson"), sampleData(), "sample data"},
		{GetProjectConfigFile(), defaultConfig, "default config.yaml"},
		{DefaultLayersFilePath(), defaultLayers, "default layers.yaml"},
	}

	var created []string
	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil {
			continue
		}
		//nolint:gosec // G306: 0644 is appropriate for project files
		if err := os.WriteFile(f.path, []byte(f.content), 0644); err != nil {
			return created, fmt.Errorf("write %s: %w", f.what, err)
		}
		created = append(created, f.path)
	}

	return created, nil
}
