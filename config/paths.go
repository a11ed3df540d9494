package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoHome is returned when neither an override variable nor a home directory is available
	ErrNoHome = errors.New("unable to determine home directory")

	// ErrPathManagerInit wraps any failure resolving the directory layout
	ErrPathManagerInit = errors.New("failed to initialize path manager")
)

const (
	appName = "mapfilter"

	// projectDirName holds project-local config, layers and data
	projectDirName = ".mapfilter"

	defaultLayersFilename = "layers.yaml"
	configFilename        = "config.yaml"
	dataDirName           = "data"
)

type dirKind int

const (
	userConfig dirKind = iota
	userCache
)

// platform captures the environment a directory is resolved against
type platform struct {
	goos   string
	getenv func(string) string
	home   func() (string, error)
	isDir  func(string) bool
}

func hostPlatform() platform {
	return platform{
		goos:   runtime.GOOS,
		getenv: os.Getenv,
		home:   os.UserHomeDir,
		isDir: func(p string) bool {
			info, err := os.Stat(p)
			return err == nil && info.IsDir()
		},
	}
}

// userDir resolves the per-user directory of the given kind. XDG variables
// win on every OS; otherwise each OS has its native location.
func (p platform) userDir(kind dirKind) (string, error) {
	xdgVar, winVar := "XDG_CONFIG_HOME", "APPDATA"
	if kind == userCache {
		xdgVar, winVar = "XDG_CACHE_HOME", "LOCALAPPDATA"
	}
	if v := p.getenv(xdgVar); v != "" {
		return filepath.Join(v, appName), nil
	}
	if p.goos == "windows" {
		if v := p.getenv(winVar); v != "" {
			return filepath.Join(v, appName), nil
		}
	}

	home, err := p.home()
	if err != nil || home == "" {
		return "", ErrNoHome
	}

	switch p.goos {
	case "darwin":
		if kind == userCache {
			return filepath.Join(home, "Library", "Caches", appName), nil
		}
		if p.isDir(filepath.Join(home, ".config")) {
			return filepath.Join(home, ".config", appName), nil
		}
		return filepath.Join(home, "Library", "Application Support", appName), nil
	case "windows":
		if kind == userCache {
			return filepath.Join(home, "AppData", "Local", appName), nil
		}
		return filepath.Join(home, "AppData", "Roaming", appName), nil
	default:
		if kind == userCache {
			return filepath.Join(home, ".cache", appName), nil
		}
		return filepath.Join(home, ".config", appName), nil
	}
}

// Layout is the resolved set of directories mapfilter reads and writes
type Layout struct {
	ConfigDir   string
	CacheDir    string
	ProjectRoot string
}

func resolveLayout(p platform, cwd string) (*Layout, error) {
	cfg, err := p.userDir(userConfig)
	if err != nil {
		return nil, fmt.Errorf("config directory: %w", err)
	}
	cache, err := p.userDir(userCache)
	if err != nil {
		return nil, fmt.Errorf("cache directory: %w", err)
	}
	return &Layout{ConfigDir: cfg, CacheDir: cache, ProjectRoot: cwd}, nil
}

func (l *Layout) projectDir() string { return filepath.Join(l.ProjectRoot, projectDirName) }

func (l *Layout) dataDir() string { return filepath.Join(l.projectDir(), dataDirName) }

// layersCandidates lists layers.yaml locations, lowest precedence first
func (l *Layout) layersCandidates() []string {
	return []string{
		filepath.Join(l.ConfigDir, defaultLayersFilename),
		filepath.Join(l.projectDir(), defaultLayersFilename),
		defaultLayersFilename,
	}
}

var (
	layoutMu sync.Mutex
	layout   *Layout
)

func currentLayout() (*Layout, error) {
	layoutMu.Lock()
	defer layoutMu.Unlock()
	if layout != nil {
		return layout, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("working directory: %w", err)
	}
	l, err := resolveLayout(hostPlatform(), cwd)
	if err != nil {
		return nil, err
	}
	layout = l
	return layout, nil
}

func mustLayout() *Layout {
	l, err := currentLayout()
	if err != nil {
		panic(fmt.Sprintf("paths unavailable: %v (call InitPaths first)", err))
	}
	return l
}

// InitPaths resolves the directory layout. Call it before any Get* accessor.
func InitPaths() error {
	if _, err := currentLayout(); err != nil {
		return fmt.Errorf("%w: %v", ErrPathManagerInit, err)
	}
	return nil
}

// ResetPathManager drops the resolved layout so the next call re-resolves
// against the current environment and working directory.
func ResetPathManager() {
	layoutMu.Lock()
	layout = nil
	layoutMu.Unlock()
}

func GetConfigDir() string { return mustLayout().ConfigDir }

func GetCacheDir() string { return mustLayout().CacheDir }

// GetConfigFile returns the user-level config.yaml
func GetConfigFile() string { return filepath.Join(mustLayout().ConfigDir, configFilename) }

// GetLogFile returns where the explorer appends its log
func GetLogFile() string { return filepath.Join(mustLayout().CacheDir, appName+".log") }

// GetProjectConfigDir returns <cwd>/.mapfilter
func GetProjectConfigDir() string { return mustLayout().projectDir() }

func GetProjectConfigFile() string {
	return filepath.Join(mustLayout().projectDir(), configFilename)
}

// GetDataDir returns the project-local directory for GeoJSON and other layer data
func GetDataDir() string { return mustLayout().dataDir() }

// GetLayerSearchPaths returns the directories relative layer sources are
// looked up in, in order.
func GetLayerSearchPaths() []string {
	l := mustLayout()
	return []string{l.projectDir(), l.dataDir(), l.ConfigDir}
}

// DefaultLayersFilePath is where a fresh layers.yaml is written
func DefaultLayersFilePath() string {
	return filepath.Join(mustLayout().projectDir(), defaultLayersFilename)
}

// FindLayersFiles returns the existing layers.yaml files in merge order: user
// config first, then project, then cwd. Files declaring `layers: []` and
// duplicates of an earlier candidate are skipped.
func FindLayersFiles() []string {
	var found []string
	seen := map[string]struct{}{}
	for _, path := range mustLayout().layersCandidates() {
		key := path
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
		if _, dup := seen[key]; dup {
			continue
		}
		if _, err := os.Stat(path); err != nil || declaresNoLayers(path) {
			continue
		}
		seen[key] = struct{}{}
		found = append(found, path)
	}
	return found
}

func declaresNoLayers(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var doc struct {
		Layers []yaml.Node `yaml:"layers"`
	}
	if yaml.Unmarshal(data, &doc) != nil {
		return false
	}
	return doc.Layers != nil && len(doc.Layers) == 0
}

// EnsureDirs creates the user config, cache and project data directories.
// A cache directory that cannot be created is not an error.
func EnsureDirs() error {
	l := mustLayout()
	//nolint:gosec // G301: user-owned directories
	if err := os.MkdirAll(l.ConfigDir, 0755); err != nil {
		return fmt.Errorf("create config directory %s: %w", l.ConfigDir, err)
	}
	//nolint:gosec // G301: user-owned directories
	_ = os.MkdirAll(l.CacheDir, 0755)
	//nolint:gosec // G301: user-owned directories
	if err := os.MkdirAll(l.dataDir(), 0755); err != nil {
		return fmt.Errorf("create data directory %s: %w", l.dataDir(), err)
	}
	return nil
}
