package integration

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/boolean-maybe/mapfilter/testutil"
)

func TestFilterInputIsLive(t *testing.T) {
	ta := testutil.NewTestApp(t)
	defer ta.Cleanup()

	ta.SendKey(tcell.KeyRune, 'S', tcell.ModNone)
	lv := ta.ActiveLayerView()

	ta.SendKey(tcell.KeyRune, '/', tcell.ModNone)
	if !lv.IsFilterFocused() {
		t.Fatal("/ should focus the filter input")
	}

	// keys that are actions elsewhere are text while the filter is focused
	ta.SendKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	ta.SendText("5 and place like 'ago'")

	fs := ta.Layer("Strong").GetFilterState()
	if fs.Text() != "mag >= 5 and place like 'ago'" {
		t.Fatalf("filter text = %q", fs.Text())
	}
	if found, _, _ := ta.FindText("Santiago"); !found {
		ta.DumpScreen()
		t.Error("Santiago should match")
	}
	if found, _, _ := ta.FindText("Tokyo"); found {
		ta.DumpScreen()
		t.Error("Tokyo should be filtered out")
	}

	ta.SendKey(tcell.KeyEnter, 0, tcell.ModNone)
	if lv.IsFilterFocused() {
		t.Error("Enter should return focus to the table")
	}
}

func TestFilterErrorShowsMessage(t *testing.T) {
	ta := testutil.NewTestApp(t)
	defer ta.Cleanup()

	ta.SendKey(tcell.KeyRune, '/', tcell.ModNone)
	ta.SendText("mag >")

	fs := ta.Layer("Events").GetFilterState()
	if !fs.HasError() {
		t.Fatal("incomplete expression should set the error flag")
	}
	if found, _, _ := ta.FindText("parse error"); !found {
		ta.DumpScreen()
		t.Error("parse error message should be visible")
	}
	if found, _, _ := ta.FindText("San Francisco"); found {
		ta.DumpScreen()
		t.Error("no features should be shown while the filter is invalid")
	}

	ta.SendText(" 2")
	if fs.HasError() {
		t.Errorf("completed expression still in error: %v", fs.Error())
	}
	if found, _, _ := ta.FindText("parse error"); found {
		ta.DumpScreen()
		t.Error("error message should clear")
	}
}

func TestClearFilterKey(t *testing.T) {
	ta := testutil.NewTestApp(t)
	defer ta.Cleanup()

	ta.SendKey(tcell.KeyRune, 'S', tcell.ModNone)
	ta.SendKey(tcell.KeyRune, 'c', tcell.ModNone)

	fs := ta.Layer("Strong").GetFilterState()
	if fs.Active() || fs.Text() != "" {
		t.Errorf("filter should be cleared, text %q", fs.Text())
	}
	if found, _, _ := ta.FindText("Katla"); !found {
		ta.DumpScreen()
		t.Error("Katla should be listed once the filter is cleared")
	}
	if found, _, y := ta.FindText("Filter:"); found && strings.Contains(ta.GetTextAt(0, y, 100), "mag") {
		t.Errorf("filter input not cleared: %q", ta.GetTextAt(0, y, 100))
	}
}

func TestFilterIsPerLayer(t *testing.T) {
	ta := testutil.NewTestApp(t)
	defer ta.Cleanup()

	ta.SendKey(tcell.KeyRune, '/', tcell.ModNone)
	ta.SendText("kind = 'eruption'")
	ta.SendKey(tcell.KeyEnter, 0, tcell.ModNone)

	ta.SendKey(tcell.KeyRune, 'S', tcell.ModNone)
	if got := ta.Layer("Strong").GetFilterState().Text(); got != "mag >= 4" {
		t.Errorf("Strong filter = %q, want its own", got)
	}

	ta.SendKey(tcell.KeyRune, 'E', tcell.ModNone)
	if got := ta.Layer("Events").GetFilterState().Text(); got != "kind = 'eruption'" {
		t.Errorf("Events filter = %q, want it kept", got)
	}
}
