package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/boolean-maybe/mapfilter/feature"
	"github.com/boolean-maybe/mapfilter/filter"
)

// ErrNotFound is returned when a feature id is not in the store
var ErrNotFound = errors.New("feature not found")

// Store is the interface for feature storage engines.
// Implementations must be thread-safe and notify listeners on changes.
type Store interface {
	// AddListener registers a callback for change notifications.
	// returns a listener ID that can be used to remove the listener.
	AddListener(listener ChangeListener) int

	// RemoveListener removes a previously registered listener by ID
	RemoveListener(id int)

	// Replace swaps the whole feature set
	Replace(features []*feature.Feature)

	// GetFeature retrieves a feature by ID
	GetFeature(id string) (*feature.Feature, error)

	// GetAllFeatures returns all features in load order
	GetAllFeatures() []*feature.Feature

	// Search returns the features the predicate accepts, in load order.
	// A nil predicate matches everything.
	Search(pred filter.Predicate) []*feature.Feature

	// Count returns the number of features
	Count() int

	// GetStats returns statistics for the caption (source, counts)
	GetStats() []Stat
}

// ChangeListener is called when the store's data changes
type ChangeListener func()

// Stat represents a statistic to be displayed in the header
type Stat struct {
	Name  string
	Value string
	Order int
}

// Load reads every feature from src into s, replacing its contents.
func Load(ctx context.Context, src feature.Source, s Store) error {
	features, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", src.Name(), err)
	}
	s.Replace(features)
	slog.Debug("loaded features", "source", src.Name(), "count", len(features))
	return nil
}
