package model

import (
	"strings"
)

// ViewID identifies a view type
type ViewID string

// view identifiers
const (
	HelpViewID        ViewID = "help"
	LayerViewIDPrefix ViewID = "layer:" // Prefix for layer views
)

// IsLayerViewID checks if a ViewID is for a layer view
func IsLayerViewID(id ViewID) bool {
	return strings.HasPrefix(string(id), string(LayerViewIDPrefix))
}

// GetLayerName extracts the layer name from a layer ViewID
func GetLayerName(id ViewID) string {
	return strings.TrimPrefix(string(id), string(LayerViewIDPrefix))
}

// MakeLayerViewID creates a ViewID for a layer with the given name
func MakeLayerViewID(name string) ViewID {
	return ViewID(string(LayerViewIDPrefix) + name)
}
