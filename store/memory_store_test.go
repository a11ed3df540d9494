package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/boolean-maybe/mapfilter/feature"
	"github.com/boolean-maybe/mapfilter/filter"
)

func newFeature(id string, kv ...interface{}) *feature.Feature {
	f := feature.New(id)
	for i := 0; i+1 < len(kv); i += 2 {
		f.Properties.Set(kv[i].(string), kv[i+1])
	}
	return f
}

func seededStore() *InMemoryStore {
	s := NewInMemoryStore("test")
	s.Replace([]*feature.Feature{
		newFeature("a", "foo", "bar", "no", int64(1)),
		newFeature("b", "foo", "baz", "no", int64(3)),
		newFeature("c", "foo", "qux", "no", int64(12)),
	})
	return s
}

func TestSearch(t *testing.T) {
	s := seededStore()

	tests := []struct {
		name     string
		expr     string
		expected []string
	}{
		{"equality", `foo == "bar"`, []string{"a"}},
		{"like", `foo like "ba"`, []string{"a", "b"}},
		{"numeric", `no >= 3`, []string{"b", "c"}},
		{"none", `foo == "bar" and foo == "baz"`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := s.Search(filter.MustCompile(tt.expr).Predicate())
			var ids []string
			for _, f := range results {
				ids = append(ids, f.ID)
			}
			if len(ids) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, ids)
			}
			for i := range ids {
				if ids[i] != tt.expected[i] {
					t.Errorf("result %d: expected %s, got %s", i, tt.expected[i], ids[i])
				}
			}
		})
	}

	if got := len(s.Search(nil)); got != 3 {
		t.Errorf("nil predicate should match all, got %d", got)
	}
}

func TestGetFeature(t *testing.T) {
	s := seededStore()

	f, err := s.GetFeature(" b ")
	if err != nil {
		t.Fatalf("GetFeature failed: %v", err)
	}
	if f.Properties.String("foo") != "baz" {
		t.Errorf("unexpected feature %s", f.Properties.Format())
	}

	if _, err := s.GetFeature("zzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListeners(t *testing.T) {
	s := NewInMemoryStore("test")

	calls := 0
	id := s.AddListener(func() { calls++ })
	if id != 1 {
		t.Errorf("expected first listener id 1, got %d", id)
	}

	s.Replace([]*feature.Feature{newFeature("a")})
	if calls != 1 {
		t.Errorf("expected 1 notification, got %d", calls)
	}

	s.RemoveListener(id)
	s.Replace(nil)
	if calls != 1 {
		t.Errorf("removed listener should not fire, got %d calls", calls)
	}
	if s.Count() != 0 {
		t.Errorf("expected empty store, got %d", s.Count())
	}
}

func TestGetAllFeaturesReturnsCopy(t *testing.T) {
	s := seededStore()
	all := s.GetAllFeatures()
	all[0] = nil
	if s.GetAllFeatures()[0] == nil {
		t.Error("GetAllFeatures must not expose internal slice")
	}
}

func TestGetStats(t *testing.T) {
	stats := seededStore().GetStats()
	if len(stats) != 2 || stats[0].Value != "test" || stats[1].Value != "3" {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.geojson")
	doc := `{"type": "FeatureCollection", "features": [{"type": "Feature", "id": "x", "properties": {"foo": "bar"}}]}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s := NewInMemoryStore(path)
	if err := Load(context.Background(), &feature.FileSource{Path: path}, s); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Count() != 1 {
		t.Errorf("expected 1 feature, got %d", s.Count())
	}

	err := Load(context.Background(), &feature.FileSource{Path: path + ".missing"}, s)
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if s.Count() != 1 {
		t.Error("failed load must not clear the store")
	}
}
