package layer

import (
	"os"
	"path/filepath"

	"github.com/boolean-maybe/mapfilter/config"
)

// findDataFile searches for a layer's data file.
// Search order: absolute path → layer file dir → cwd → layer search paths.
// Returns "" when the file cannot be found.
func findDataFile(filename, baseDir string, searchPaths []string) string {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename
		}
		return ""
	}

	var paths []string
	if baseDir != "" {
		paths = append(paths, filepath.Join(baseDir, filename))
	}
	paths = append(paths, filename)
	for _, dir := range searchPaths {
		paths = append(paths, filepath.Join(dir, filename))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// resolveSourcePath rewrites a file-backed source path to the file found on
// disk. Unresolved paths are kept as written so the load error names them.
func resolveSourcePath(l *Layer) {
	if l.Source.Path == "" || l.Source.Type == "postgres" {
		return
	}
	if path := findDataFile(l.Source.Path, l.baseDir, config.GetLayerSearchPaths()); path != "" {
		l.Source.Path = path
	}
}
