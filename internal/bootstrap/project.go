package bootstrap

import (
	"fmt"

	"github.com/boolean-maybe/mapfilter/config"
)

// EnsureProjectInitialized ensures the project directory exists, offering to
// create it with sample data.
// Returns (proceed, error) where proceed indicates if the user wants to continue.
func EnsureProjectInitialized() (bool, error) {
	proceed, err := config.EnsureProjectInitialized()
	if err != nil {
		return false, fmt.Errorf("initialize project: %w", err)
	}
	return proceed, nil
}
