// Package command parses free-form phrases into typed slide-edit actions.
//
// Matching is deliberately a rule table, not NLU: every category is an
// ordered list of trigger substrings, checked case-insensitively. The first
// category that matches wins, and within a category the first listed trigger
// found in the phrase wins. Both orderings are load-bearing: the tables
// overlap in substrings (e.g. "change to" matches inside longer triggers)
// and reordering them changes behavior.
package command

import (
	"log/slog"
	"strings"

	"github.com/voxdeck/voxdeck/internal/element"
)

// Action is the category of mutation a command requests.
type Action string

const (
	// ActionNone means the phrase did not match any known command.
	ActionNone Action = "none"

	ActionChangeText  Action = "change_text"
	ActionResize      Action = "resize"
	ActionMove        Action = "move"
	ActionChangeFont  Action = "change_font"
	ActionChangeColor Action = "change_color"
)

// Resize factors applied for grow/shrink requests.
const (
	ScaleUp   = 1.2
	ScaleDown = 0.8
)

// Parsed is the typed result of parsing one phrase. Only the fields relevant
// to Action are meaningful; everything else is left zero.
type Parsed struct {
	Action Action

	// NewText is the replacement text for ActionChangeText.
	NewText string

	// ScaleFactor is the relative size change for ActionResize.
	ScaleFactor float64

	// FontFamily is the requested family for ActionChangeFont.
	FontFamily string

	// Color is the resolved palette color for ActionChangeColor.
	Color element.RGB

	// ColorName is the palette name the color was resolved from.
	ColorName string
}

// namedColor pairs a palette name with its RGB value. The palette is ordered
// so tests can enumerate it.
type namedColor struct {
	Name string
	RGB  element.RGB
}

// Palette is the fixed set of color names the parser recognizes.
var Palette = []namedColor{
	{"green", element.RGB{Red: 0, Green: 1, Blue: 0}},
	{"red", element.RGB{Red: 1, Green: 0, Blue: 0}},
	{"blue", element.RGB{Red: 0, Green: 0, Blue: 1}},
	{"black", element.RGB{Red: 0, Green: 0, Blue: 0}},
	{"white", element.RGB{Red: 1, Green: 1, Blue: 1}},
}

// colorTriggers are the phrasings that mark a color-change intent. A color
// name alone is not enough; "make the title red square" style false
// positives are filtered by requiring one of these alongside a palette name.
var colorTriggers = []string{
	"make it", "change color to", "set color to",
	"change to", "make text", "set text color to",
	"change text color to", "make the text", "change the color",
	"set the color", "color the text",
}

// fontTriggers mark a font-change intent. The text after the trigger becomes
// the family name.
var fontTriggers = []string{
	"change font to", "set font to", "make font",
	"change to font", "use font", "switch to font",
	"make all fonts", "change all fonts to", "set all fonts to",
	"make fonts", "change fonts to", "set fonts to",
}

// bareFontTriggers are the triggers where the family may follow directly
// with no "to" (e.g. "make all fonts helvetica").
var bareFontTriggers = []string{"make all fonts", "make fonts"}

// textTriggers mark a text-replacement intent.
var textTriggers = []string{
	"change to", "change it to", "make it say",
	"set it to", "replace with", "update to",
	"set to", "change the text to say", "change the text to",
	"change to say", "say",
}

// growTriggers and shrinkTriggers mark resize intents.
var growTriggers = []string{
	"bigger", "larger", "increase size", "make it bigger",
	"expand", "grow", "enlarge", "increase", "make bigger",
	"increase the size", "make it larger", "make the image bigger",
	"increase image size", "enlarge the image", "make image bigger",
}

var shrinkTriggers = []string{
	"smaller", "decrease size", "make it smaller", "shrink",
	"reduce", "make smaller", "decrease", "reduce size",
	"decrease the size", "make it reduce", "make the image smaller",
	"decrease image size", "shrink the image", "make image smaller",
}

// MoveVerbs are the verbs that mark a move intent. They are checked by the
// orchestrator before general dispatch, not by Parse itself, because a move
// phrase usually also matches a text trigger ("put it to the left").
var MoveVerbs = []string{"move", "place", "put", "position", "relocate"}

// ContainsMoveVerb reports whether the phrase carries a move intent.
func ContainsMoveVerb(phrase string) bool {
	p := strings.ToLower(phrase)
	for _, verb := range MoveVerbs {
		if strings.Contains(p, verb) {
			return true
		}
	}
	return false
}

// Parse converts a raw phrase into a typed action. It is a pure function of
// the phrase; unmatched input yields ActionNone, which callers must treat as
// "not understood" rather than an error.
func Parse(phrase string) Parsed {
	p := strings.ToLower(strings.TrimSpace(phrase))
	slog.Debug("parsing phrase", "phrase", p)

	// Colors first: they are the most specific, and their triggers overlap
	// the text-change triggers ("change to red" must not become a text edit).
	for _, c := range Palette {
		if !strings.Contains(p, c.Name) {
			continue
		}
		for _, trigger := range colorTriggers {
			if strings.Contains(p, trigger) {
				slog.Debug("matched color change", "color", c.Name)
				return Parsed{Action: ActionChangeColor, Color: c.RGB, ColorName: c.Name}
			}
		}
	}

	for _, trigger := range fontTriggers {
		if !strings.Contains(p, trigger) {
			continue
		}
		if _, after, ok := strings.Cut(p, trigger); ok && strings.TrimSpace(after) != "" {
			family := stripQuotes(strings.TrimSpace(after))
			slog.Debug("matched font change", "family", family)
			return Parsed{Action: ActionChangeFont, FontFamily: family}
		}
		// "make all fonts helvetica" puts the family inside the matched
		// region of longer triggers; recover it by removing the trigger.
		for _, bare := range bareFontTriggers {
			if trigger != bare {
				continue
			}
			if rest := strings.TrimSpace(strings.ReplaceAll(p, trigger, "")); rest != "" {
				slog.Debug("matched font change", "family", rest)
				return Parsed{Action: ActionChangeFont, FontFamily: rest}
			}
		}
	}

	for _, trigger := range textTriggers {
		if _, after, ok := strings.Cut(p, trigger); ok {
			if text := stripQuotes(strings.TrimSpace(after)); text != "" {
				slog.Debug("matched text change", "text", text)
				return Parsed{Action: ActionChangeText, NewText: text}
			}
		}
	}

	// Loose fallback: "change ... to ..." with no listed trigger still reads
	// as a text edit, taking everything after the last "to".
	if strings.Contains(p, "change") && strings.Contains(p, "to") {
		idx := strings.LastIndex(p, "to")
		if text := stripQuotes(strings.TrimSpace(p[idx+len("to"):])); text != "" {
			slog.Debug("matched text change fallback", "text", text)
			return Parsed{Action: ActionChangeText, NewText: text}
		}
	}

	for _, trigger := range growTriggers {
		if strings.Contains(p, trigger) {
			slog.Debug("matched resize", "direction", "grow")
			return Parsed{Action: ActionResize, ScaleFactor: ScaleUp}
		}
	}
	for _, trigger := range shrinkTriggers {
		if strings.Contains(p, trigger) {
			slog.Debug("matched resize", "direction", "shrink")
			return Parsed{Action: ActionResize, ScaleFactor: ScaleDown}
		}
	}

	slog.Debug("no action matched")
	return Parsed{Action: ActionNone}
}

// stripQuotes removes one layer of surrounding single or double quotes.
func stripQuotes(s string) string {
	s = strings.Trim(s, "'")
	s = strings.Trim(s, `"`)
	return s
}
