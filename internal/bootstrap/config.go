package bootstrap

import (
	"fmt"

	"github.com/boolean-maybe/mapfilter/config"
)

// LoadConfig reads config.yaml; the explorer refuses to start on a malformed file.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	return cfg, nil
}
