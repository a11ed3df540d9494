package feature

import (
	"strings"

	"github.com/boolean-maybe/mapfilter/filter"
)

// Properties is an ordered mapping of scalar property values.
// It keeps keys in insertion order and implements filter.Getter.
type Properties struct {
	keys   []string
	values map[string]interface{}
}

// NewProperties creates an empty property mapping
func NewProperties() *Properties {
	return &Properties{values: make(map[string]interface{})}
}

// Set stores value under key. New keys are appended; existing keys keep
// their position.
func (p *Properties) Set(key string, value interface{}) {
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get implements filter.Getter
func (p *Properties) Get(key string) (interface{}, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the keys in order
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of properties
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// String returns the display form of a property, empty when absent or nil.
func (p *Properties) String(key string) string {
	v, ok := p.Get(key)
	if !ok || v == nil {
		return ""
	}
	return filter.ToString(v)
}

// Format renders all properties as "k=v" pairs in order
func (p *Properties) Format() string {
	if p == nil {
		return ""
	}
	parts := make([]string, 0, len(p.keys))
	for _, k := range p.keys {
		parts = append(parts, k+"="+p.String(k))
	}
	return strings.Join(parts, " ")
}

var _ filter.Getter = (*Properties)(nil)
