package store

import (
	"strconv"
	"strings"
	"sync"

	"github.com/boolean-maybe/mapfilter/feature"
	"github.com/boolean-maybe/mapfilter/filter"
)

// InMemoryStore is an in-memory feature repository
type InMemoryStore struct {
	mu             sync.RWMutex
	name           string
	features       []*feature.Feature
	byID           map[string]*feature.Feature
	listeners      map[int]ChangeListener
	nextListenerID int
}

func normalizeFeatureID(id string) string {
	return strings.TrimSpace(id)
}

// NewInMemoryStore creates a new in-memory feature store. name labels the
// store in stats.
func NewInMemoryStore(name string) *InMemoryStore {
	return &InMemoryStore{
		name:           name,
		byID:           make(map[string]*feature.Feature),
		listeners:      make(map[int]ChangeListener),
		nextListenerID: 1, // Start at 1 to avoid conflict with zero-value sentinel
	}
}

// AddListener registers a callback for change notifications.
// returns a listener ID that can be used to remove the listener.
func (s *InMemoryStore) AddListener(listener ChangeListener) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = listener
	return id
}

// RemoveListener removes a previously registered listener by ID
func (s *InMemoryStore) RemoveListener(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

// notifyListeners calls all registered listeners
func (s *InMemoryStore) notifyListeners() {
	s.mu.RLock()
	listeners := make([]ChangeListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}

// Replace swaps the whole feature set. Later duplicates of an id win the
// id lookup but every feature stays in the ordered list.
func (s *InMemoryStore) Replace(features []*feature.Feature) {
	s.mu.Lock()
	s.features = make([]*feature.Feature, 0, len(features))
	s.byID = make(map[string]*feature.Feature, len(features))
	for _, f := range features {
		if f == nil {
			continue
		}
		s.features = append(s.features, f)
		s.byID[normalizeFeatureID(f.ID)] = f
	}
	s.mu.Unlock()
	s.notifyListeners()
}

// GetFeature retrieves a feature by ID
func (s *InMemoryStore) GetFeature(id string) (*feature.Feature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.byID[normalizeFeatureID(id)]
	if !ok {
		return nil, ErrNotFound
	}
	return f, nil
}

// GetAllFeatures returns all features
func (s *InMemoryStore) GetAllFeatures() []*feature.Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*feature.Feature, len(s.features))
	copy(out, s.features)
	return out
}

// Search returns the features pred accepts
func (s *InMemoryStore) Search(pred filter.Predicate) []*feature.Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*feature.Feature
	for _, f := range s.features {
		if pred != nil && !pred(f) {
			continue
		}
		results = append(results, f)
	}
	return results
}

// Count returns the number of features
func (s *InMemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.features)
}

// GetStats returns the source label and feature count
func (s *InMemoryStore) GetStats() []Stat {
	return []Stat{
		{Name: "Source", Value: s.name, Order: 1},
		{Name: "Features", Value: strconv.Itoa(s.Count()), Order: 2},
	}
}

// ensure InMemoryStore implements Store
var _ Store = (*InMemoryStore)(nil)
