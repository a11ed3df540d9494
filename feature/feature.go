// Package feature holds the feature model (id, ordered properties, geometry)
// and the sources features are loaded from.
package feature

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Feature is a single map feature. Geometry is carried through untouched.
type Feature struct {
	ID         string
	Properties *Properties
	Geometry   map[string]interface{}
}

// New creates a feature with empty properties. An empty id is replaced by a
// generated one.
func New(id string) *Feature {
	if id == "" {
		id = NewID()
	}
	return &Feature{ID: id, Properties: NewProperties()}
}

// Get implements filter.Getter over the feature's properties
func (f *Feature) Get(key string) (interface{}, bool) {
	if f == nil {
		return nil, false
	}
	return f.Properties.Get(key)
}

// NewID generates an 8-character random alphanumeric ID (lowercase)
func NewID() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	const length = 8
	id, err := gonanoid.Generate(alphabet, length)
	if err != nil {
		return "feature0"
	}
	return id
}
