package component

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/config"
)

// CompletionInput is an input field that completes the word under the cursor.
// When the last word of the input is a prefix of exactly one known word, the
// rest of that word is drawn greyed after the text; Tab accepts it.
type CompletionInput struct {
	*tview.InputField
	words       []string
	currentHint string
	onSubmit    func(text string)
	hintColor   tcell.Color
}

// NewCompletionInput creates a completion input for the given words.
func NewCompletionInput(words []string) *CompletionInput {
	inputField := tview.NewInputField()
	inputField.SetFieldBackgroundColor(config.GetContentBackgroundColor())
	inputField.SetFieldTextColor(config.GetContentTextColor())

	return &CompletionInput{
		InputField: inputField,
		words:      words,
		hintColor:  config.GetColors().CompletionHintColor,
	}
}

// SetWords replaces the completion candidates.
func (ci *CompletionInput) SetWords(words []string) *CompletionInput {
	ci.words = words
	ci.updateHint()
	return ci
}

// SetSubmitHandler sets the callback for Enter. The hint is not included.
func (ci *CompletionInput) SetSubmitHandler(handler func(text string)) *CompletionInput {
	ci.onSubmit = handler
	return ci
}

// Hint returns the pending completion, empty when there is none
func (ci *CompletionInput) Hint() string {
	return ci.currentHint
}

// lastWord returns the trailing identifier of text
func lastWord(text string) string {
	i := len(text)
	for i > 0 && isWordByte(text[i-1]) {
		i--
	}
	return text[i:]
}

func isWordByte(ch byte) bool {
	return ch == '_' || ch == '.' || (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// updateHint recalculates the hint with case-insensitive prefix matching.
func (ci *CompletionInput) updateHint() {
	ci.currentHint = ""
	word := lastWord(ci.GetText())
	if word == "" {
		return
	}

	wordLower := strings.ToLower(word)
	var match string
	for _, w := range ci.words {
		if len(w) <= len(word) || !strings.HasPrefix(strings.ToLower(w), wordLower) {
			continue
		}
		if match != "" && match != w {
			return
		}
		match = w
	}
	if match != "" {
		ci.currentHint = match[len(word):]
	}
}

// Draw renders the input field and the completion hint.
func (ci *CompletionInput) Draw(screen tcell.Screen) {
	ci.InputField.Draw(screen)

	if ci.currentHint == "" {
		return
	}
	x, y, width, height := ci.GetRect()
	if width <= 0 || height <= 0 {
		return
	}

	hintX := x + tview.TaggedStringWidth(ci.GetLabel()) + utf8.RuneCountInString(ci.GetText())
	style := tcell.StyleDefault.Foreground(ci.hintColor)
	for i, ch := range ci.currentHint {
		if hintX+i >= x+width {
			break
		}
		screen.SetContent(hintX+i, y, ch, nil, style)
	}
}

// InputHandler accepts the hint on Tab and reports Enter to the submit handler.
// Every other key goes to the input field.
func (ci *CompletionInput) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return ci.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyTab:
			if ci.currentHint != "" {
				ci.SetText(ci.GetText() + ci.currentHint)
				ci.currentHint = ""
			}
			return
		case tcell.KeyEnter:
			if ci.onSubmit != nil {
				ci.onSubmit(ci.GetText())
			}
		}

		if handler := ci.InputField.InputHandler(); handler != nil {
			handler(event, setFocus)
		}
		ci.updateHint()
	})
}
