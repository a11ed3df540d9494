package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
)

// PromptForProjectInit presents a Huh form for project initialization.
// Returns (createSample, proceed, error)
func PromptForProjectInit() (bool, bool, error) {
	createSample := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("No " + projectDirName + " directory found. Create one?").
				Description("Adds config.yaml, layers.yaml and a sample GeoJSON file").
				Affirmative("Create").
				Negative("Skip").
				Value(&createSample),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("form error: %w", err)
	}

	return createSample, true, nil
}

// EnsureProjectInitialized offers to bootstrap the project if .mapfilter is missing.
// Returns (proceed, error).
// If proceed is false, the user canceled initialization.
func EnsureProjectInitialized() (bool, error) {
	projectDir := GetProjectConfigDir()
	if _, err := os.Stat(projectDir); err == nil {
		return true, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat project directory: %w", err)
	}

	createSample, proceed, err := PromptForProjectInit()
	if err != nil {
		return false, fmt.Errorf("failed to prompt for project initialization: %w", err)
	}
	if !proceed {
		return false, nil
	}
	if !createSample {
		slog.Info("project initialization skipped", "dir", projectDir)
		return true, nil
	}

	created, err := BootstrapSystem()
	if err != nil {
		return false, fmt.Errorf("failed to bootstrap project: %w", err)
	}
	for _, path := range created {
		slog.Info("created project file", "path", path)
	}
	return true, nil
}
