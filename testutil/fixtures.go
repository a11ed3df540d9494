package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// FixtureFeature is a point feature written by WriteGeoJSON
type FixtureFeature struct {
	ID         string
	Lon, Lat   float64
	Properties map[string]interface{}
}

// SampleFeatures are a handful of 2013-07-14 events, in load order
func SampleFeatures() []FixtureFeature {
	return []FixtureFeature{
		{ID: "sf", Lon: -122.41, Lat: 37.77, Properties: map[string]interface{}{"place": "San Francisco", "kind": "quake", "mag": 2.4, "time": "2013-07-14T00:15:00Z"}},
		{ID: "tk", Lon: 139.69, Lat: 35.68, Properties: map[string]interface{}{"place": "Tokyo", "kind": "quake", "mag": 5.1, "time": "2013-07-14T01:25:59Z"}},
		{ID: "kt", Lon: -19.02, Lat: 63.63, Properties: map[string]interface{}{"place": "Katla", "kind": "eruption", "mag": 3.0, "time": "2013-07-14T01:04:32Z"}},
		{ID: "sc", Lon: -70.65, Lat: -33.45, Properties: map[string]interface{}{"place": "Santiago", "kind": "quake", "mag": 6.2, "time": "2013-07-14T02:10:00Z"}},
	}
}

// WriteGeoJSON writes features as a FeatureCollection to dir/name and returns the path
func WriteGeoJSON(t *testing.T, dir, name string, features []FixtureFeature) string {
	t.Helper()

	type geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	type geoFeature struct {
		Type       string                 `json:"type"`
		ID         string                 `json:"id"`
		Geometry   geometry               `json:"geometry"`
		Properties map[string]interface{} `json:"properties"`
	}

	collection := struct {
		Type     string       `json:"type"`
		Features []geoFeature `json:"features"`
	}{Type: "FeatureCollection"}
	for _, f := range features {
		collection.Features = append(collection.Features, geoFeature{
			Type:       "Feature",
			ID:         f.ID,
			Geometry:   geometry{Type: "Point", Coordinates: []float64{f.Lon, f.Lat}},
			Properties: f.Properties,
		})
	}

	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
