package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/boolean-maybe/mapfilter/feature"
	"github.com/boolean-maybe/mapfilter/layer"
	"github.com/boolean-maybe/mapfilter/model"
	"github.com/boolean-maybe/mapfilter/store"
	"github.com/boolean-maybe/mapfilter/timespec"
)

// staticSource serves a fixed feature set
type staticSource struct {
	features []*feature.Feature
	err      error
	loads    int
}

func (s *staticSource) Name() string { return "static" }

func (s *staticSource) Load(ctx context.Context) ([]*feature.Feature, error) {
	s.loads++
	return s.features, s.err
}

func newTestFeature(id string, kv ...interface{}) *feature.Feature {
	f := feature.New(id)
	for i := 0; i+1 < len(kv); i += 2 {
		f.Properties.Set(kv[i].(string), kv[i+1])
	}
	return f
}

// hour 0..3 of 2013-07-14 in epoch ms
const (
	h0 = int64(1373760000000)
	h1 = h0 + 3600000
	h2 = h1 + 3600000
)

func newTimedController(t *testing.T) (*LayerController, *staticSource) {
	t.Helper()
	src := &staticSource{features: []*feature.Feature{
		newTestFeature("a", "kind", "quake", "mag", 4.5, "time", "2013-07-14T00:10:00Z"),
		newTestFeature("b", "kind", "quake", "mag", 2.0, "time", h0+30*60000),
		newTestFeature("c", "kind", "blast", "mag", 3.0, "time", "2013-07-14T01:00:00Z"),
		newTestFeature("d", "kind", "quake", "mag", 5.1, "time", float64(h2)),
		newTestFeature("e", "kind", "quake", "mag", 6.0),
		newTestFeature("f", "kind", "quake", "time", "not a time"),
	}}

	spec := timespec.Range{Start: h0, End: h2, Duration: 3600000}
	l := &layer.Layer{
		Name: "Events",
		Time: &layer.TimeDimension{Property: "time", Spec: spec},
	}

	s := store.NewInMemoryStore("Events")
	lc := NewLayerController(s, src, l, model.NewFilterState(), model.NewTimeDimension(spec, 0))
	if err := lc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	return lc, src
}

func ids(features []*feature.Feature) []string {
	out := make([]string, len(features))
	for i, f := range features {
		out[i] = f.ID
	}
	return out
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestLayerController_VisibleFeaturesByStep(t *testing.T) {
	lc, _ := newTimedController(t)
	td := lc.GetTimeDimension()

	tests := []struct {
		step int
		want []string
	}{
		{0, []string{"a", "b"}},
		{1, []string{"c"}},
		{2, []string{"d"}},
	}

	for _, tt := range tests {
		td.SetIndex(tt.step)
		if got := ids(lc.VisibleFeatures()); !equalIDs(got, tt.want) {
			t.Errorf("step %d: VisibleFeatures() = %v, want %v", tt.step, got, tt.want)
		}
	}
}

func TestLayerController_FilterAndTime(t *testing.T) {
	lc, _ := newTimedController(t)

	lc.HandleFilter("mag >= 4")
	if got := ids(lc.VisibleFeatures()); !equalIDs(got, []string{"a"}) {
		t.Errorf("VisibleFeatures() = %v, want [a]", got)
	}

	lc.HandleFilter("mag >= ")
	if !lc.GetFilterState().HasError() {
		t.Fatal("expected filter error flag")
	}
	if got := lc.VisibleFeatures(); len(got) != 0 {
		t.Errorf("invalid filter should show nothing, got %v", ids(got))
	}

	if !lc.HandleAction(ActionClearFilter) {
		t.Error("ActionClearFilter should be handled")
	}
	if got := ids(lc.VisibleFeatures()); !equalIDs(got, []string{"a", "b"}) {
		t.Errorf("after clear VisibleFeatures() = %v, want [a b]", got)
	}
	if lc.HandleAction(ActionClearFilter) {
		t.Error("clearing an empty filter should not be handled")
	}
}

func TestLayerController_NoTimeDimension(t *testing.T) {
	src := &staticSource{features: []*feature.Feature{
		newTestFeature("x", "mag", 1),
		newTestFeature("y", "mag", 5),
	}}
	l := &layer.Layer{Name: "Plain"}
	lc := NewLayerController(store.NewInMemoryStore("Plain"), src, l, model.NewFilterState(), nil)
	if err := lc.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := lc.VisibleFeatures(); len(got) != 2 {
		t.Errorf("expected all features, got %v", ids(got))
	}
	for _, a := range []ActionID{ActionNextStep, ActionPrevStep, ActionFirstStep, ActionLastStep, ActionTogglePlay} {
		if lc.HandleAction(a) {
			t.Errorf("HandleAction(%s) should not be handled without a time dimension", a)
		}
	}
	if lc.GetActionRegistry().Match(keyEvent(' ')) != nil {
		t.Error("play key should not be registered without a time dimension")
	}
}

func TestLayerController_StepActions(t *testing.T) {
	lc, _ := newTimedController(t)
	td := lc.GetTimeDimension()

	if lc.HandleAction(ActionPrevStep) {
		t.Error("prev at first step should not be handled")
	}
	if !lc.HandleAction(ActionNextStep) || td.Index() != 1 {
		t.Errorf("next step: index %d, want 1", td.Index())
	}
	lc.HandleAction(ActionLastStep)
	if td.Index() != 2 {
		t.Errorf("last step: index %d, want 2", td.Index())
	}

	// play from the end restarts at the first step
	if !lc.HandleAction(ActionTogglePlay) || !td.Playing() {
		t.Fatal("toggle play should start playback")
	}
	if td.Index() != 0 {
		t.Errorf("playing from the end should rewind, index %d", td.Index())
	}
	lc.HandleAction(ActionTogglePlay)
	if td.Playing() {
		t.Error("second toggle should pause")
	}
}

func TestLayerController_ReloadError(t *testing.T) {
	lc, src := newTimedController(t)
	src.err = errors.New("boom")

	if err := lc.Reload(context.Background()); err == nil {
		t.Fatal("expected reload error")
	}
	if lc.GetStore().Count() != 6 {
		t.Errorf("failed reload should keep features, got %d", lc.GetStore().Count())
	}
	if src.loads != 2 {
		t.Errorf("expected 2 loads, got %d", src.loads)
	}
}

func TestInstantOf(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		want   int64
		wantOK bool
	}{
		{"iso string", "2013-07-14T00:00:00Z", h0, true},
		{"int64 millis", h1, h1, true},
		{"int millis", 42, 42, true},
		{"float millis", float64(h2), h2, true},
		{"garbage string", "yesterday", 0, false},
		{"empty string", " ", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := instantOf(tt.value)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("instantOf(%v) = %d, %v, want %d, %v", tt.value, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
