package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func fakePlatform(goos string, env map[string]string, home string, dirs ...string) platform {
	return platform{
		goos:   goos,
		getenv: func(k string) string { return env[k] },
		home: func() (string, error) {
			if home == "" {
				return "", errors.New("no home")
			}
			return home, nil
		},
		isDir: func(p string) bool {
			for _, d := range dirs {
				if d == p {
					return true
				}
			}
			return false
		},
	}
}

func TestUserDir(t *testing.T) {
	home := filepath.Join("/", "home", "ana")

	tests := []struct {
		name string
		p    platform
		kind dirKind
		want string
	}{
		{"xdg config wins", fakePlatform("darwin", map[string]string{"XDG_CONFIG_HOME": "/x"}, home), userConfig, filepath.Join("/x", "mapfilter")},
		{"xdg cache wins", fakePlatform("windows", map[string]string{"XDG_CACHE_HOME": "/c"}, home), userCache, filepath.Join("/c", "mapfilter")},
		{"linux config", fakePlatform("linux", nil, home), userConfig, filepath.Join(home, ".config", "mapfilter")},
		{"linux cache", fakePlatform("linux", nil, home), userCache, filepath.Join(home, ".cache", "mapfilter")},
		{"darwin native config", fakePlatform("darwin", nil, home), userConfig, filepath.Join(home, "Library", "Application Support", "mapfilter")},
		{"darwin with dot config", fakePlatform("darwin", nil, home, filepath.Join(home, ".config")), userConfig, filepath.Join(home, ".config", "mapfilter")},
		{"darwin cache", fakePlatform("darwin", nil, home), userCache, filepath.Join(home, "Library", "Caches", "mapfilter")},
		{"windows appdata", fakePlatform("windows", map[string]string{"APPDATA": "/roam"}, ""), userConfig, filepath.Join("/roam", "mapfilter")},
		{"windows local appdata", fakePlatform("windows", map[string]string{"LOCALAPPDATA": "/local"}, ""), userCache, filepath.Join("/local", "mapfilter")},
		{"windows fallback", fakePlatform("windows", nil, home), userCache, filepath.Join(home, "AppData", "Local", "mapfilter")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.p.userDir(tt.kind)
			if err != nil {
				t.Fatalf("userDir() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("userDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserDirWithoutHome(t *testing.T) {
	_, err := fakePlatform("linux", nil, "").userDir(userConfig)
	if !errors.Is(err, ErrNoHome) {
		t.Errorf("error = %v, want ErrNoHome", err)
	}
	if _, err := resolveLayout(fakePlatform("linux", nil, ""), "/p"); !errors.Is(err, ErrNoHome) {
		t.Errorf("resolveLayout error = %v, want ErrNoHome", err)
	}
}

func TestAccessors(t *testing.T) {
	root := useTempProject(t)
	project := filepath.Join(root, ".mapfilter")
	cfg := filepath.Join(root, "xdg-config", "mapfilter")
	cache := filepath.Join(root, "xdg-cache", "mapfilter")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"config dir", GetConfigDir(), cfg},
		{"cache dir", GetCacheDir(), cache},
		{"config file", GetConfigFile(), filepath.Join(cfg, "config.yaml")},
		{"log file", GetLogFile(), filepath.Join(cache, "mapfilter.log")},
		{"project dir", GetProjectConfigDir(), project},
		{"project config", GetProjectConfigFile(), filepath.Join(project, "config.yaml")},
		{"data dir", GetDataDir(), filepath.Join(project, "data")},
		{"default layers", DefaultLayersFilePath(), filepath.Join(project, "layers.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	wantSearch := []string{project, filepath.Join(project, "data"), cfg}
	if got := GetLayerSearchPaths(); !reflect.DeepEqual(got, wantSearch) {
		t.Errorf("GetLayerSearchPaths() = %v, want %v", got, wantSearch)
	}
}

func TestResetPathManagerPicksUpNewEnvironment(t *testing.T) {
	useTempProject(t)
	first := GetConfigDir()

	other := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", other)
	if GetConfigDir() != first {
		t.Fatal("layout should stay cached until reset")
	}

	ResetPathManager()
	if err := InitPaths(); err != nil {
		t.Fatalf("InitPaths() error = %v", err)
	}
	if got, want := GetConfigDir(), filepath.Join(other, "mapfilter"); got != want {
		t.Errorf("GetConfigDir() = %q, want %q", got, want)
	}
}

func TestEnsureDirs(t *testing.T) {
	useTempProject(t)
	if err := EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() error = %v", err)
	}
	for _, dir := range []string{GetConfigDir(), GetCacheDir(), GetDataDir()} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("%s not created: %v", dir, err)
		}
	}
}

func TestFindLayersFiles(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		project string
		cwd     string
		want    []string // relative labels: user, project, cwd
	}{
		{"none", "", "", "", nil},
		{"user only", "layers:\n  - name: A\n", "", "", []string{"user"}},
		{"merge order", "layers:\n  - name: A\n", "layers:\n  - name: B\n", "layers:\n  - name: C\n", []string{"user", "project", "cwd"}},
		{"explicit empty list skipped", "layers: []\n", "layers:\n  - name: B\n", "", []string{"project"}},
		{"file without layers key kept", "views: {}\n", "", "", []string{"user"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useTempProject(t)
			paths := map[string]string{
				"user":    filepath.Join(GetConfigDir(), "layers.yaml"),
				"project": DefaultLayersFilePath(),
				"cwd":     "layers.yaml",
			}
			for label, content := range map[string]string{"user": tt.user, "project": tt.project, "cwd": tt.cwd} {
				if content == "" {
					continue
				}
				if err := os.MkdirAll(filepath.Dir(paths[label]), 0755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(paths[label], []byte(content), 0644); err != nil {
					t.Fatal(err)
				}
			}

			var want []string
			for _, label := range tt.want {
				want = append(want, paths[label])
			}
			if got := FindLayersFiles(); !reflect.DeepEqual(got, want) {
				t.Errorf("FindLayersFiles() = %v, want %v", got, want)
			}
		})
	}
}
