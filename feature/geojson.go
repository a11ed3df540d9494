package feature

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// geoJSONObject holds the members of a FeatureCollection or Feature that are
// read. Properties stay raw so their key order can be walked.
type geoJSONObject struct {
	Type       string          `json:"type"`
	ID         json.RawMessage `json:"id"`
	Features   json.RawMessage `json:"features"`
	Properties json.RawMessage `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// DecodeGeoJSON reads a GeoJSON FeatureCollection or a single Feature.
//
// Properties keep document order. Scalars become string, int64, float64,
// bool or nil; nested objects and arrays are kept as their compact JSON text.
func DecodeGeoJSON(r io.Reader) ([]*Feature, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("geojson: empty document")
		}
		return nil, fmt.Errorf("geojson: %w", err)
	}
	if jsonKind(raw) != '{' {
		return nil, fmt.Errorf("geojson: top level must be an object")
	}

	var doc geoJSONObject
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}

	switch doc.Type {
	case "FeatureCollection":
		switch jsonKind(doc.Features) {
		case 0, 'n':
			return []*Feature{}, nil
		case '[':
		default:
			return nil, fmt.Errorf("geojson: \"features\" must be an array")
		}
		var items []json.RawMessage
		if err := json.Unmarshal(doc.Features, &items); err != nil {
			return nil, fmt.Errorf("geojson: features: %w", err)
		}
		features := make([]*Feature, 0, len(items))
		for i, item := range items {
			f, err := decodeFeature(item)
			if err != nil {
				return nil, fmt.Errorf("geojson: feature %d: %w", i, err)
			}
			features = append(features, f)
		}
		return features, nil
	case "Feature":
		f, err := featureFromObject(doc)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		return []*Feature{f}, nil
	default:
		return nil, fmt.Errorf("geojson: unsupported type %q", doc.Type)
	}
}

func decodeFeature(raw json.RawMessage) (*Feature, error) {
	if jsonKind(raw) != '{' {
		return nil, fmt.Errorf("feature must be an object")
	}
	var obj geoJSONObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	return featureFromObject(obj)
}

func featureFromObject(obj geoJSONObject) (*Feature, error) {
	f := New(featureID(obj.ID))

	switch jsonKind(obj.Properties) {
	case 0, 'n':
	case '{':
		if err := decodeProperties(obj.Properties, f.Properties); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("properties must be an object")
	}

	if jsonKind(obj.Geometry) == '{' {
		var g map[string]interface{}
		if err := json.Unmarshal(obj.Geometry, &g); err != nil {
			return nil, fmt.Errorf("geometry: %w", err)
		}
		f.Geometry = g
	}
	return f, nil
}

// featureID renders a string or number id as text; anything else is no id
func featureID(raw json.RawMessage) string {
	switch jsonKind(raw) {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(bytes.TrimSpace(raw))
	}
	return ""
}

// decodeProperties walks the members of a JSON object in document order
func decodeProperties(raw json.RawMessage, props *Properties) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil { // opening brace
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var member json.RawMessage
		if err := dec.Decode(&member); err != nil {
			return fmt.Errorf("property %q: %w", key, err)
		}
		value, err := decodeValue(member)
		if err != nil {
			return fmt.Errorf("property %q: %w", key, err)
		}
		props.Set(key, value)
	}
	return nil
}

func decodeValue(raw json.RawMessage) (interface{}, error) {
	switch jsonKind(raw) {
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
		return buf.String(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		return n.Float64()
	}
	return v, nil
}

// jsonKind returns the first significant byte of a JSON value, 0 when absent
func jsonKind(raw json.RawMessage) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}
