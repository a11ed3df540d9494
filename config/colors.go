package config

// Color and style definitions for the UI: gradients, tcell colors, tview color tags.

import (
	"github.com/gdamore/tcell/v2"
)

// Gradient defines a start and end RGB color for a gradient transition
type Gradient struct {
	Start [3]int // R, G, B (0-255)
	End   [3]int // R, G, B (0-255)
}

// ColorConfig holds all color and style definitions per view
type ColorConfig struct {
	// Layer caption
	CaptionText     tcell.Color
	CaptionGradient Gradient // used when a layer has no color of its own

	// Filter input
	FilterLabelColor      tcell.Color
	FilterErrorColor      tcell.Color
	FilterBackgroundColor tcell.Color
	FilterTextColor       tcell.Color
	CompletionHintColor   tcell.Color

	// Property key list under the filter
	PropertyKeyForeground tcell.Color
	PropertyKeyBackground tcell.Color
	PropertyKeyUsed       tcell.Color // keys the current filter reads

	// Feature table
	TableHeaderColor   tcell.Color
	TableIDColor       tcell.Color
	TableTextColor     tcell.Color
	TableSelectedColor tcell.Color

	// Time bar
	TimeBarLabel   string // tview color string like "[orange]"
	TimeBarValue   string // tview color string like "[white]"
	TimeBarPlaying string
	TimeBarKey     string
	TimeBarTrack   Gradient // filled part of the step progress bar
	TimeBarEmpty   string   // unfilled part of the progress bar

	// Status line
	StatusLabel string
	StatusValue string

	// Key bar
	KeyBarGlobalKey string
	KeyBarLayerKey  string
	KeyBarViewKey   string
	KeyBarLabel     string
}

// DefaultColors returns the default color configuration
func DefaultColors() *ColorConfig {
	return &ColorConfig{
		CaptionText: tcell.PaletteColor(153), // Sky Blue (ANSI 153)
		CaptionGradient: Gradient{
			Start: [3]int{25, 25, 112},  // Midnight Blue
			End:   [3]int{65, 105, 225}, // Royal Blue
		},

		FilterLabelColor:      tcell.ColorWhite,
		FilterErrorColor:      tcell.ColorRed,
		FilterBackgroundColor: tcell.ColorDefault,
		FilterTextColor:       tcell.ColorWhite,
		CompletionHintColor:   tcell.NewRGBColor(128, 128, 128),

		PropertyKeyForeground: tcell.NewRGBColor(180, 200, 220),
		PropertyKeyBackground: tcell.NewRGBColor(30, 50, 80),
		PropertyKeyUsed:       tcell.NewRGBColor(255, 200, 80),

		TableHeaderColor:   tcell.ColorYellow,
		TableIDColor:       tcell.NewRGBColor(30, 144, 255), // Dodger Blue
		TableTextColor:     tcell.NewRGBColor(184, 184, 184),
		TableSelectedColor: tcell.PaletteColor(33),

		TimeBarLabel:   "[orange]",
		TimeBarValue:   "[#cccccc]",
		TimeBarPlaying: "[green]",
		TimeBarKey:     "[yellow]",
		TimeBarTrack: Gradient{
			Start: [3]int{0, 95, 135},  // Deep Sky Blue 4
			End:   [3]int{95, 215, 255}, // Steel Blue 1
		},
		TimeBarEmpty: "[#3a3a3a]",

		StatusLabel: "[#767676]",
		StatusValue: "[#cccccc]",

		KeyBarGlobalKey: "[orange]",
		KeyBarLayerKey:  "[#87d7ff]",
		KeyBarViewKey:   "[yellow]",
		KeyBarLabel:     "[#a0a0a0]",
	}
}

// Global color config instance
var globalColors *ColorConfig
var colorsInitialized bool

// GetColors returns the global color configuration with theme-aware overrides
func GetColors() *ColorConfig {
	if !colorsInitialized {
		globalColors = DefaultColors()
		if GetEffectiveTheme() == "light" {
			globalColors.FilterLabelColor = tcell.ColorBlack
			globalColors.FilterTextColor = tcell.ColorBlack
			globalColors.TableTextColor = tcell.ColorBlack
			globalColors.TimeBarValue = "[black]"
		}
		colorsInitialized = true
	}
	return globalColors
}

// SetColors sets a custom color configuration
func SetColors(colors *ColorConfig) {
	globalColors = colors
	colorsInitialized = colors != nil
}
