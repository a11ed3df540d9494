package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the decoded config.yaml, after defaults, MAPFILTER_* environment
// variables and the --log-level flag have been applied.
type Config struct {
	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`

	Appearance struct {
		Theme string `mapstructure:"theme"` // dark, light or auto
	} `mapstructure:"appearance"`

	Time struct {
		MaxSteps     int           `mapstructure:"maxSteps"`
		PlayInterval time.Duration `mapstructure:"playInterval"`
	} `mapstructure:"time"`

	Table struct {
		MaxRows int `mapstructure:"maxRows"`
	} `mapstructure:"table"`
}

const (
	defaultMaxSteps     = 10000
	defaultPlayInterval = time.Second
	defaultMaxRows      = 500
	defaultTheme        = "auto"
)

var defaultSettings = []struct {
	key   string
	value any
}{
	{"logging.level", "error"},
	{"appearance.theme", defaultTheme},
	{"time.maxSteps", defaultMaxSteps},
	{"time.playInterval", defaultPlayInterval},
	{"table.maxRows", defaultMaxRows},
}

var (
	loadedMu sync.RWMutex
	loaded   *Config
)

// LoadConfig reads config.yaml from the project dir, the user config dir or
// the working directory, first match wins. A missing file is not an error.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range []string{GetProjectConfigDir(), GetConfigDir(), "."} {
		v.AddConfigPath(dir)
	}
	for _, d := range defaultSettings {
		v.SetDefault(d.key, d.value)
	}

	// MAPFILTER_TABLE_MAXROWS overrides table.maxRows
	v.SetEnvPrefix("MAPFILTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var notFound viper.ConfigFileNotFoundError
	switch err := v.ReadInConfig(); {
	case err == nil:
		slog.Debug("loaded configuration", "file", v.ConfigFileUsed())
	case errors.As(err, &notFound):
		slog.Debug("no config.yaml found, using defaults")
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := bindLogLevelFlag(v, os.Args[1:]); err != nil {
		slog.Warn("ignoring command line flags", "error", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	loadedMu.Lock()
	loaded = cfg
	loadedMu.Unlock()
	return cfg, nil
}

// normalize replaces out of range values with their defaults
func (c *Config) normalize() {
	if c.Time.MaxSteps < 1 {
		c.Time.MaxSteps = defaultMaxSteps
	}
	if c.Time.PlayInterval <= 0 {
		c.Time.PlayInterval = defaultPlayInterval
	}
	if c.Table.MaxRows < 1 {
		c.Table.MaxRows = defaultMaxRows
	}
	if c.Appearance.Theme == "" {
		c.Appearance.Theme = defaultTheme
	}
}

func bindLogLevelFlag(v *viper.Viper, args []string) error {
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return v.BindPFlag("logging.level", fs.Lookup("log-level"))
}

// current returns the last loaded config, or the defaults when nothing was loaded
func current() *Config {
	loadedMu.RLock()
	defer loadedMu.RUnlock()
	if loaded != nil {
		return loaded
	}
	cfg := &Config{}
	cfg.normalize()
	return cfg
}

func GetMaxSteps() int { return current().Time.MaxSteps }

// GetPlayInterval returns the delay between steps while a time dimension plays
func GetPlayInterval() time.Duration { return current().Time.PlayInterval }

// GetMaxRows caps the rows a feature table renders
func GetMaxRows() int { return current().Table.MaxRows }

// GetEffectiveTheme resolves "auto" from COLORFGBG ("fg;bg"); background
// palette indexes 8 and above are light.
func GetEffectiveTheme() string {
	if theme := current().Appearance.Theme; theme != "auto" {
		return theme
	}
	fgbg := os.Getenv("COLORFGBG")
	if i := strings.LastIndexByte(fgbg, ';'); i >= 0 {
		if bg, err := strconv.Atoi(fgbg[i+1:]); err == nil && bg >= 8 {
			return "light"
		}
	}
	return "dark"
}

func GetContentBackgroundColor() tcell.Color {
	if GetEffectiveTheme() == "dark" {
		return tcell.ColorBlack
	}
	return tcell.ColorDefault
}

func GetContentTextColor() tcell.Color {
	if GetEffectiveTheme() == "dark" {
		return tcell.ColorWhite
	}
	return tcell.ColorBlack
}
