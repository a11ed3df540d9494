// Package renderer turns markdown into text for tview primitives.
package renderer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/config"
)

// MarkdownRenderer renders markdown to tview-tagged text
type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}

// GlamourRenderer renders markdown with glamour and converts its ANSI output to tview tags
type GlamourRenderer struct {
	term *glamour.TermRenderer
}

// NewGlamourRenderer creates a renderer using the effective theme
func NewGlamourRenderer(wordWrap int) (*GlamourRenderer, error) {
	style := "dark"
	if config.GetEffectiveTheme() == "light" {
		style = "light"
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("create glamour renderer: %w", err)
	}
	return &GlamourRenderer{term: term}, nil
}

// Render implements MarkdownRenderer
func (r *GlamourRenderer) Render(markdown string) (string, error) {
	out, err := r.term.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return tview.TranslateANSI(out), nil
}

// FallbackRenderer shows markdown as escaped plain text
type FallbackRenderer struct{}

// Render implements MarkdownRenderer
func (FallbackRenderer) Render(markdown string) (string, error) {
	return tview.Escape(strings.TrimSpace(markdown)) + "\n", nil
}

// New returns a glamour renderer, or the plain fallback if glamour cannot be set up
func New(wordWrap int) MarkdownRenderer {
	r, err := NewGlamourRenderer(wordWrap)
	if err != nil {
		return FallbackRenderer{}
	}
	return r
}
