package view

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/component"
	"github.com/boolean-maybe/mapfilter/config"
	"github.com/boolean-maybe/mapfilter/controller"
	"github.com/boolean-maybe/mapfilter/feature"
	"github.com/boolean-maybe/mapfilter/model"
	"github.com/boolean-maybe/mapfilter/store"
)

const (
	filterLabel = "Filter: "
	// columns shown when a layer does not list its own
	defaultColumnCount = 5
)

// LayerView renders one layer: caption, filter input, feature table, time bar
type LayerView struct {
	root        *tview.Flex
	caption     *GradientCaptionRow
	filterInput *component.CompletionInput
	keyList     *component.WordList
	message     *tview.TextView
	table       *tview.Table
	timeBar     *TimeBar // nil when the layer has no time dimension

	controller *controller.LayerController
	registry   *controller.ActionRegistry
	maxRows    int
	visible    int
	truncated  bool
	// set while the input is updated from the filter state
	syncingText bool

	storeListenerID  int
	filterListenerID int
	timeListenerID   int
	focusSetter      func(p tview.Primitive)
	onStatsChanged   func()
}

// NewLayerView creates a layer view backed by lc
func NewLayerView(lc *controller.LayerController, maxRows int) *LayerView {
	lv := &LayerView{
		controller: lc,
		registry:   lc.GetActionRegistry(),
		maxRows:    maxRows,
	}
	lv.build()
	return lv
}

func (lv *LayerView) build() {
	l := lv.controller.GetLayer()
	colors := config.GetColors()

	lv.caption = NewGradientCaptionRow([]string{l.Name}, layerCaptionGradient(l.Color), colors.CaptionText)

	lv.filterInput = component.NewCompletionInput(nil)
	lv.filterInput.SetLabel(filterLabel).
		SetLabelColor(colors.FilterLabelColor).
		SetFieldBackgroundColor(colors.FilterBackgroundColor).
		SetFieldTextColor(colors.FilterTextColor)
	lv.filterInput.SetText(lv.controller.GetFilterState().Text())
	lv.filterInput.SetChangedFunc(func(text string) {
		if !lv.syncingText {
			lv.controller.HandleFilter(text)
		}
	})
	lv.filterInput.SetDoneFunc(func(key tcell.Key) {
		if lv.focusSetter != nil {
			lv.focusSetter(lv.table)
		}
	})

	lv.keyList = component.NewWordList(nil)

	lv.message = tview.NewTextView().SetDynamicColors(true).SetWrap(false)

	lv.table = tview.NewTable().
		SetFixed(1, 0).
		SetSelectable(true, false).
		SetSelectedStyle(tcell.StyleDefault.Background(colors.TableSelectedColor))

	if td := lv.controller.GetTimeDimension(); td != nil {
		lv.timeBar = NewTimeBar(td)
	}

	lv.root = tview.NewFlex().SetDirection(tview.FlexRow)
	lv.root.AddItem(lv.caption, 1, 0, false)
	lv.root.AddItem(lv.filterInput, 1, 0, false)
	lv.root.AddItem(lv.keyList, 1, 0, false)
	lv.root.AddItem(lv.message, 1, 0, false)
	lv.root.AddItem(lv.table, 0, 1, true)
	if lv.timeBar != nil {
		lv.root.AddItem(lv.timeBar, 1, 0, false)
	}

	lv.refresh()
}

// refresh rebuilds the table and status lines from the controller
func (lv *LayerView) refresh() {
	features := lv.controller.VisibleFeatures()
	lv.visible = len(features)
	lv.truncated = lv.maxRows > 0 && len(features) > lv.maxRows
	if lv.truncated {
		features = features[:lv.maxRows]
	}
	lv.fillTable(features)
	lv.refreshKeys()
	lv.refreshFilterStatus()

	if lv.timeBar != nil {
		lv.timeBar.Refresh()
	}

	if lv.onStatsChanged != nil {
		lv.onStatsChanged()
	}
}

func (lv *LayerView) refreshFilterStatus() {
	colors := config.GetColors()
	fs := lv.controller.GetFilterState()
	if text := fs.Text(); lv.filterInput.GetText() != text {
		lv.syncingText = true
		lv.filterInput.SetText(text)
		lv.syncingText = false
	}
	if fs.HasError() {
		lv.filterInput.SetLabelColor(colors.FilterErrorColor)
		lv.message.SetText("[red]" + tview.Escape(fs.Error().Error()))
		return
	}
	lv.filterInput.SetLabelColor(colors.FilterLabelColor)
	if lv.truncated {
		lv.message.SetText(fmt.Sprintf("%sshowing first %d of %d", colors.StatusLabel, lv.maxRows, lv.visible))
	} else {
		lv.message.SetText("")
	}
}

func (lv *LayerView) fillTable(features []*feature.Feature) {
	colors := config.GetColors()
	selected, _ := lv.table.GetSelection()
	lv.table.Clear()

	columns := tableColumns(lv.controller.GetLayer().Columns, features)
	lv.table.SetCell(0, 0, tview.NewTableCell("id").SetTextColor(colors.TableHeaderColor).SetSelectable(false))
	for i, c := range columns {
		lv.table.SetCell(0, i+1, tview.NewTableCell(tview.Escape(c)).SetTextColor(colors.TableHeaderColor).SetSelectable(false).SetExpansion(1))
	}

	for r, f := range features {
		lv.table.SetCell(r+1, 0, tview.NewTableCell(tview.Escape(f.ID)).SetTextColor(colors.TableIDColor))
		for i, c := range columns {
			lv.table.SetCell(r+1, i+1, tview.NewTableCell(tview.Escape(f.Properties.String(c))).SetTextColor(colors.TableTextColor).SetMaxWidth(40))
		}
	}

	if len(features) == 0 {
		return
	}
	if selected < 1 {
		selected = 1
	}
	if selected > len(features) {
		selected = len(features)
	}
	lv.table.Select(selected, 0)
}

// refreshKeys lists the layer's property keys, highlighting those the filter
// reads, and offers them with the filter keywords for completion
func (lv *LayerView) refreshKeys() {
	keys := propertyKeys(lv.controller.GetStore().GetAllFeatures())
	lv.keyList.SetWords(keys)
	if f := lv.controller.GetFilterState().Filter(); f != nil {
		lv.keyList.SetHighlighted(f.Fields())
	} else {
		lv.keyList.SetHighlighted(nil)
	}
	lv.filterInput.SetWords(append(keys, filterKeywords...))
}

// filterKeywords are offered for completion after the property keys
var filterKeywords = []string{"and", "or", "not", "in", "like"}

// propertyKeys returns every property key in first-seen order
func propertyKeys(features []*feature.Feature) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, f := range features {
		for _, k := range f.Properties.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// tableColumns returns the configured columns, or the first property keys of the first feature
func tableColumns(configured []string, features []*feature.Feature) []string {
	if len(configured) > 0 {
		return configured
	}
	if len(features) == 0 {
		return nil
	}
	keys := features[0].Properties.Keys()
	if len(keys) > defaultColumnCount {
		keys = keys[:defaultColumnCount]
	}
	return keys
}

// GetPrimitive returns the root tview primitive
func (lv *LayerView) GetPrimitive() tview.Primitive {
	return lv.root
}

// GetActionRegistry returns the view's action registry
func (lv *LayerView) GetActionRegistry() *controller.ActionRegistry {
	return lv.registry
}

// GetViewID returns the view identifier
func (lv *LayerView) GetViewID() model.ViewID {
	return model.MakeLayerViewID(lv.controller.GetLayerName())
}

// OnFocus subscribes to store, filter and time changes
func (lv *LayerView) OnFocus() {
	lv.storeListenerID = lv.controller.GetStore().AddListener(lv.refresh)
	lv.filterListenerID = lv.controller.GetFilterState().AddListener(lv.refresh)
	if td := lv.controller.GetTimeDimension(); td != nil {
		lv.timeListenerID = td.AddListener(lv.refresh)
	}
	lv.refresh()
}

// OnBlur unsubscribes from all listeners
func (lv *LayerView) OnBlur() {
	lv.controller.GetStore().RemoveListener(lv.storeListenerID)
	lv.controller.GetFilterState().RemoveListener(lv.filterListenerID)
	if td := lv.controller.GetTimeDimension(); td != nil {
		td.RemoveListener(lv.timeListenerID)
	}
}

// FocusFilter returns the filter input to focus
func (lv *LayerView) FocusFilter() tview.Primitive {
	return lv.filterInput
}

// IsFilterFocused returns whether the filter input currently has focus
func (lv *LayerView) IsFilterFocused() bool {
	return lv.filterInput.HasFocus()
}

// SetFocusSetter sets the callback used to move focus back to the table
func (lv *LayerView) SetFocusSetter(setter func(p tview.Primitive)) {
	lv.focusSetter = setter
}

// SetStatsChangedHandler registers a callback run after every refresh
func (lv *LayerView) SetStatsChangedHandler(handler func()) {
	lv.onStatsChanged = handler
}

// MoveSelection moves the selected table row by delta
func (lv *LayerView) MoveSelection(delta int) bool {
	rows := lv.table.GetRowCount() - 1 // header row
	if rows <= 0 {
		return false
	}
	cur, _ := lv.table.GetSelection()
	next := cur + delta
	if next < 1 {
		next = 1
	}
	if next > rows {
		next = rows
	}
	if next == cur {
		return false
	}
	lv.table.Select(next, 0)
	return true
}

// SelectedID returns the id of the selected feature, empty when nothing is shown
func (lv *LayerView) SelectedID() string {
	row, _ := lv.table.GetSelection()
	if row < 1 || row >= lv.table.GetRowCount() {
		return ""
	}
	return lv.table.GetCell(row, 0).Text
}

// GetStats returns header stats: store stats plus visible count and step
func (lv *LayerView) GetStats() []store.Stat {
	stats := lv.controller.GetStore().GetStats()
	stats = append(stats, store.Stat{Name: "Visible", Value: strconv.Itoa(lv.visible), Order: 10})
	if td := lv.controller.GetTimeDimension(); td != nil {
		stats = append(stats, store.Stat{Name: "Step", Value: fmt.Sprintf("%d/%d", td.Index()+1, td.Len()), Order: 11})
	}
	return stats
}
