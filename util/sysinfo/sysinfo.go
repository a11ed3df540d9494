// Package sysinfo collects the environment details that affect how mapfilter
// looks and where it reads its files from.
package sysinfo

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/boolean-maybe/mapfilter/config"
)

// SystemInfo is a snapshot of the client environment.
type SystemInfo struct {
	Version      string
	OS           string // runtime.GOOS
	Architecture string // runtime.GOARCH

	// Terminal
	TermType      string // $TERM
	ColorTerm     string // $COLORTERM
	ColorFGBG     string // $COLORFGBG
	DetectedTheme string // "dark", "light", "unknown"
	ColorSupport  string // "monochrome", "16-color", "256-color", "truecolor", "unknown"
	ColorCount    int

	// Paths, empty when config.InitPaths has not run
	ConfigDir        string
	CacheDir         string
	ProjectConfigDir string
	LogFile          string
	LayersFiles      []string
}

// NewSystemInfo collects system information using terminfo lookup, without
// starting a screen.
func NewSystemInfo() *SystemInfo {
	info := &SystemInfo{
		Version:      config.Version,
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		TermType:     os.Getenv("TERM"),
		ColorTerm:    os.Getenv("COLORTERM"),
		ColorFGBG:    os.Getenv("COLORFGBG"),
	}
	info.DetectedTheme = detectTheme(info.ColorFGBG)
	info.ColorSupport, info.ColorCount = colorSupport(info.ColorTerm, info.TermType)
	info.collectPaths()
	return info
}

// collectPaths fills the path fields; the path manager panics when uninitialized
func (s *SystemInfo) collectPaths() {
	defer func() {
		_ = recover()
	}()
	s.ConfigDir = config.GetConfigDir()
	s.CacheDir = config.GetCacheDir()
	s.ProjectConfigDir = config.GetProjectConfigDir()
	s.LogFile = config.GetLogFile()
	s.LayersFiles = config.FindLayersFiles()
}

// String renders the snapshot for the info command
func (s *SystemInfo) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "mapfilter %s (%s/%s)\n\n", s.Version, s.OS, s.Architecture)

	b.WriteString("Terminal\n")
	fmt.Fprintf(&b, "  TERM:       %s\n", s.TermType)
	fmt.Fprintf(&b, "  COLORTERM:  %s\n", s.ColorTerm)
	fmt.Fprintf(&b, "  COLORFGBG:  %s\n", s.ColorFGBG)
	fmt.Fprintf(&b, "  Theme:      %s\n", s.DetectedTheme)
	fmt.Fprintf(&b, "  Colors:     %s (%d)\n", s.ColorSupport, s.ColorCount)
	b.WriteString("\n")

	b.WriteString("Paths\n")
	fmt.Fprintf(&b, "  Config:     %s\n", s.ConfigDir)
	fmt.Fprintf(&b, "  Cache:      %s\n", s.CacheDir)
	fmt.Fprintf(&b, "  Project:    %s\n", s.ProjectConfigDir)
	fmt.Fprintf(&b, "  Log file:   %s\n", s.LogFile)
	if len(s.LayersFiles) == 0 {
		b.WriteString("  Layers:     (embedded only)\n")
	}
	for _, f := range s.LayersFiles {
		fmt.Fprintf(&b, "  Layers:     %s\n", f)
	}

	return b.String()
}

// detectTheme reads the background color index from $COLORFGBG ("fg;bg" or
// "fg;default;bg"). 0-7 are dark backgrounds, 8 and up light.
func detectTheme(colorFGBG string) string {
	if colorFGBG == "" {
		return "unknown"
	}
	parts := strings.Split(colorFGBG, ";")
	if len(parts) < 2 {
		return "unknown"
	}
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return "unknown"
	}
	if bg >= 8 {
		return "light"
	}
	return "dark"
}

// colorSupport prefers $COLORTERM, which modern terminals use to advertise
// truecolor, then falls back to the terminfo entry for $TERM.
func colorSupport(colorTerm, term string) (string, int) {
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		return "truecolor", 1 << 24
	}
	if term == "" {
		return "unknown", 0
	}
	ti, err := tcell.LookupTerminfo(term)
	if err != nil || ti == nil {
		return "unknown", 0
	}
	return classifyColors(ti.Colors), ti.Colors
}

func classifyColors(colors int) string {
	switch {
	case colors >= 1<<24:
		return "truecolor"
	case colors >= 256:
		return "256-color"
	case colors >= 16:
		return "16-color"
	case colors >= 2:
		return "monochrome"
	default:
		return "unknown"
	}
}
