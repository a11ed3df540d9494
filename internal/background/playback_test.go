package background

import (
	"context"
	"testing"
	"time"

	"github.com/boolean-maybe/mapfilter/controller"
	"github.com/boolean-maybe/mapfilter/feature"
	"github.com/boolean-maybe/mapfilter/layer"
	"github.com/boolean-maybe/mapfilter/model"
	"github.com/boolean-maybe/mapfilter/store"
	"github.com/boolean-maybe/mapfilter/timespec"
)

func newController(t *testing.T, name, spec string) *controller.LayerController {
	t.Helper()
	l := &layer.Layer{Name: name}
	var td *model.TimeDimension
	if spec != "" {
		parsed, err := timespec.Parse(spec)
		if err != nil {
			t.Fatalf("parse %q: %v", spec, err)
		}
		l.Time = &layer.TimeDimension{Property: "time", Text: spec, Spec: parsed}
		td = model.NewTimeDimension(parsed, 100)
	}
	src := &feature.FileSource{Path: "unused.geojson"}
	return controller.NewLayerController(store.NewInMemoryStore(name), src, l, model.NewFilterState(), td)
}

func TestStartPlayback(t *testing.T) {
	timed := newController(t, "Timed", "2013-07-14T00:00:00Z/2013-07-14T03:00:00Z/PT1H")
	untimed := newController(t, "Plain", "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	players := StartPlayback(ctx, map[string]*controller.LayerController{
		"Timed": timed,
		"Plain": untimed,
	}, nil, 5*time.Millisecond)

	if len(players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(players))
	}

	td := timed.GetTimeDimension()
	td.SetPlaying(true)

	deadline := time.After(2 * time.Second)
	for td.Playing() {
		select {
		case <-deadline:
			t.Fatalf("playback did not reach the end, index %d of %d", td.Index(), td.Len())
		case <-time.After(5 * time.Millisecond):
		}
	}
	if !td.AtEnd() {
		t.Errorf("playback stopped at %d, want last step %d", td.Index(), td.Len()-1)
	}
}
