// Package model holds the observable UI state shared by controllers and views.
package model

import (
	"strings"
	"sync"

	"github.com/boolean-maybe/mapfilter/filter"
)

// FilterStateListener is called when the filter expression or its validity changes
type FilterStateListener func()

// FilterState holds the filter expression typed by the user and its compiled form.
// While the expression is invalid nothing matches; an empty expression matches everything.
type FilterState struct {
	mu             sync.RWMutex
	text           string
	compiled       *filter.Filter
	err            error
	invalid        bool
	listeners      map[int]FilterStateListener
	nextListenerID int
}

// NewFilterState creates a filter state with no expression
func NewFilterState() *FilterState {
	return &FilterState{
		listeners:      make(map[int]FilterStateListener),
		nextListenerID: 1, // Start at 1 to avoid conflict with zero-value sentinel
	}
}

// SetExpression compiles text and replaces the active filter.
// Returns the compile error, if any.
func (fs *FilterState) SetExpression(text string) error {
	trimmed := strings.TrimSpace(text)

	var compiled *filter.Filter
	var err error
	if trimmed != "" {
		compiled, err = filter.Compile(trimmed)
	}

	fs.mu.Lock()
	fs.text = text
	if err != nil {
		fs.err = err
		fs.invalid = true
	} else {
		fs.compiled = compiled
		fs.err = nil
		fs.invalid = false
	}
	fs.mu.Unlock()

	fs.notifyListeners()
	return err
}

// Text returns the expression as last entered
func (fs *FilterState) Text() string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.text
}

// HasError reports whether the last expression failed to compile
func (fs *FilterState) HasError() bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.invalid
}

// Error returns the last compile error, nil when the expression is valid
func (fs *FilterState) Error() error {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.err
}

// Filter returns the compiled filter; nil when the expression is empty or invalid
func (fs *FilterState) Filter() *filter.Filter {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if fs.invalid {
		return nil
	}
	return fs.compiled
}

// Active reports whether a valid non-empty filter is in effect
func (fs *FilterState) Active() bool {
	return fs.Filter() != nil
}

// Matches evaluates the current filter against props
func (fs *FilterState) Matches(props filter.Getter) bool {
	return fs.Predicate()(props)
}

// Predicate snapshots the current filter as a predicate
func (fs *FilterState) Predicate() filter.Predicate {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	switch {
	case fs.invalid:
		return func(filter.Getter) bool { return false }
	case fs.compiled == nil:
		return func(filter.Getter) bool { return true }
	default:
		return fs.compiled.Predicate()
	}
}

// AddListener registers a callback for filter changes
func (fs *FilterState) AddListener(listener FilterStateListener) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	id := fs.nextListenerID
	fs.nextListenerID++
	fs.listeners[id] = listener
	return id
}

// RemoveListener removes a listener by ID
func (fs *FilterState) RemoveListener(id int) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.listeners, id)
}

func (fs *FilterState) notifyListeners() {
	fs.mu.RLock()
	listeners := make([]FilterStateListener, 0, len(fs.listeners))
	for _, l := range fs.listeners {
		listeners = append(listeners, l)
	}
	fs.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}
