// Package editor implements the command orchestrator.
//
// One call to Process resolves one command end to end: fetch a fresh snapshot
// of the presentation, parse the phrase, find the target element, apply one
// mutation, and render a user-facing reply. No state survives between calls
// and no error escapes Process; every failure becomes a readable message.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/voxdeck/voxdeck/internal/command"
	"github.com/voxdeck/voxdeck/internal/element"
	"github.com/voxdeck/voxdeck/internal/locate"
	"github.com/voxdeck/voxdeck/internal/message"
	"github.com/voxdeck/voxdeck/internal/slides"
	"github.com/voxdeck/voxdeck/internal/speech"
)

// Fixed replies for the failure taxonomy. Unparseable intent and missing
// targets are user-level outcomes, not errors.
const (
	ReplyNoElements = "I don't see any elements in the presentation."

	ReplyNotFound = "I couldn't find the element you're referring to. " +
		"Try being more specific about what you want to modify."

	ReplyHelp = "I'm not sure what you want me to do. Try saying:\n" +
		"- 'Make the title bigger'\n" +
		"- 'Change the text to say [new text]'\n" +
		"- 'Make all fonts [font name]'\n" +
		"- 'Make the image bigger'"
)

// moveZones maps direction words to the zone a move request targets.
// Ordered: the first word found in the phrase wins.
var moveZones = []struct {
	Keyword string
	Zone    element.GridPosition
}{
	{"bottom", element.Bottom},
	{"top", element.Top},
	{"left", element.Left},
	{"right", element.Right},
	{"center", element.Center},
}

// positionWords are the words that make a phrase element-addressable by
// position; their presence routes target selection through the locator.
var positionWords = []string{"title", "top", "bottom", "left", "right", "center", "up", "down"}

// Editor orchestrates parsing, locating and mutating.
type Editor struct {
	svc         slides.Service
	locator     *locate.Locator
	transcriber speech.Transcriber // nil when audio input is not used
	slideWidth  float64
	slideHeight float64
}

// New creates an Editor for a canvas of the given dimensions in EMU.
// Zero dimensions fall back to the standard 16:9 canvas.
func New(svc slides.Service, transcriber speech.Transcriber, slideWidth, slideHeight float64) *Editor {
	if slideWidth <= 0 {
		slideWidth = element.DefaultSlideWidth
	}
	if slideHeight <= 0 {
		slideHeight = element.DefaultSlideHeight
	}
	return &Editor{
		svc:         svc,
		locator:     locate.New(slideWidth, slideHeight),
		transcriber: transcriber,
		slideWidth:  slideWidth,
		slideHeight: slideHeight,
	}
}

// Handle processes a single request through the full pipeline, transcribing
// audio first when present. This function is passed as the transport.Handler
// to each transport.
func (e *Editor) Handle(ctx context.Context, req *message.Request) (*message.Result, error) {
	start := time.Now()
	logger := slog.With("request_id", req.ID, "source", req.Source)

	result := &message.Result{RequestID: req.ID}

	var phrase string
	switch {
	case req.HasAudio():
		if e.transcriber == nil {
			result.Error = "audio input received but no transcriber is configured"
			return result, nil
		}
		logger.Debug("transcribing audio", "content_type", req.ContentType, "bytes", len(req.Audio))
		text, err := e.transcriber.Transcribe(ctx, req.Audio, req.ContentType)
		if err != nil {
			result.Error = fmt.Sprintf("transcription failed: %v", err)
			logger.Error("transcription failed", "error", err)
			return result, nil
		}
		phrase = text
	case req.Text != "":
		phrase = req.Text
	default:
		result.Error = "request has no audio and no text"
		return result, nil
	}

	result.Transcript = phrase
	result.Reply = e.Process(ctx, phrase)
	logger.Info("request complete", "duration", time.Since(start))
	return result, nil
}

// Process resolves one phrase against a fresh snapshot of the presentation.
// It always returns a user-facing reply; failures never propagate.
func (e *Editor) Process(ctx context.Context, phrase string) string {
	logger := slog.With("phrase", phrase)
	logger.Info("processing command")

	elements, err := e.svc.Fetch(ctx)
	if err != nil {
		logger.Error("snapshot fetch failed", "error", err)
		return apology(err)
	}
	if len(elements) == 0 {
		logger.Info("presentation is empty")
		return ReplyNoElements
	}

	parsed := command.Parse(phrase)

	// Move intent is checked before general dispatch: a move phrase usually
	// also matches a text-change trigger ("put it to the left") and must not
	// be dispatched as one.
	if command.ContainsMoveVerb(phrase) {
		if reply, handled := e.move(ctx, elements, phrase); handled {
			return reply
		}
	}

	if parsed.Action == command.ActionNone {
		logger.Info("could not understand command")
		return ReplyHelp
	}

	// "Make all fonts X" fans out over every element; per-element failures
	// are counted, not fatal.
	if parsed.Action == command.ActionChangeFont && strings.Contains(strings.ToLower(phrase), "all") {
		return e.changeAllFonts(ctx, elements, parsed.FontFamily)
	}

	target, ok := e.findTarget(elements, phrase)
	if !ok {
		logger.Info("no target element found")
		return ReplyNotFound
	}
	logger.Debug("selected target", "object_id", target.ObjectID, "type", target.Type)

	return e.apply(ctx, target, parsed)
}

// move handles a phrase with a move verb. It reports handled=false when the
// phrase names no direction, in which case normal dispatch continues.
func (e *Editor) move(ctx context.Context, elements map[string]element.Element, phrase string) (string, bool) {
	p := strings.ToLower(phrase)

	var zone element.GridPosition
	found := false
	for _, mz := range moveZones {
		if strings.Contains(p, mz.Keyword) {
			zone = mz.Zone
			found = true
			break
		}
	}
	if !found {
		return "", false
	}

	// Prefer the title when named, otherwise the first text element.
	var target *element.Element
	if strings.Contains(p, "title") {
		if title, ok := locate.FindTitle(elements); ok {
			target = title
		}
	}
	if target == nil {
		for _, el := range sortedElements(elements) {
			if el.Type == element.TypeText {
				t := el
				target = &t
				break
			}
		}
	}
	if target == nil {
		return "I couldn't find the text element to move", true
	}

	dest := element.GridPoint(zone, e.slideWidth, e.slideHeight)
	slog.Info("moving element", "object_id", target.ObjectID, "zone", zone, "x", dest.X, "y", dest.Y)

	err := e.svc.SetAbsoluteTransform(ctx, target.ObjectID,
		target.Scale.X, target.Scale.Y, dest.X, dest.Y)
	if err != nil {
		slog.Error("move failed", "object_id", target.ObjectID, "error", err)
		return fmt.Sprintf("Sorry, I ran into an error while moving the text: %v", err), true
	}
	return fmt.Sprintf("Done! I've moved the text to the %s of the slide", zone), true
}

// changeAllFonts applies a font family to every element, counting successes.
func (e *Editor) changeAllFonts(ctx context.Context, elements map[string]element.Element, family string) string {
	succeeded := 0
	for _, el := range sortedElements(elements) {
		if err := e.svc.SetFont(ctx, el.ObjectID, family); err != nil {
			slog.Error("font update failed", "object_id", el.ObjectID, "error", err)
			continue
		}
		succeeded++
	}

	if succeeded == 0 {
		return "Sorry, I wasn't able to update any fonts"
	}
	slog.Info("updated fonts", "family", family, "elements", succeeded)
	return fmt.Sprintf("Done! I've updated the font to %s for %d elements", family, succeeded)
}

// findTarget picks the single element a phrase refers to: the first image for
// image requests, the locator for position-addressed requests, and the title
// (or failing that, the first element) when the phrase names no position.
func (e *Editor) findTarget(elements map[string]element.Element, phrase string) (*element.Element, bool) {
	p := strings.ToLower(phrase)

	if strings.Contains(p, "image") {
		for _, el := range sortedElements(elements) {
			if el.IsImage() {
				t := el
				return &t, true
			}
		}
	}

	for _, word := range positionWords {
		if strings.Contains(p, word) {
			return e.locator.Locate(elements, phrase)
		}
	}

	if title, ok := locate.FindTitle(elements); ok {
		return title, true
	}
	if all := sortedElements(elements); len(all) > 0 {
		t := all[0]
		return &t, true
	}
	return nil, false
}

// apply dispatches one mutation for the parsed action and phrases the reply.
func (e *Editor) apply(ctx context.Context, target *element.Element, parsed command.Parsed) string {
	var err error
	var reply string

	switch parsed.Action {
	case command.ActionResize:
		err = e.svc.SetRelativeScale(ctx, target.ObjectID, parsed.ScaleFactor)
		kind := "text"
		if target.IsImage() {
			kind = "image"
		}
		direction := "bigger"
		if parsed.ScaleFactor < 1 {
			direction = "smaller"
		}
		reply = fmt.Sprintf("Done! I've made the %s %s", kind, direction)

	case command.ActionChangeText:
		err = e.svc.SetText(ctx, target.ObjectID, parsed.NewText)
		reply = "Done! I've updated the text"

	case command.ActionChangeFont:
		err = e.svc.SetFont(ctx, target.ObjectID, parsed.FontFamily)
		reply = fmt.Sprintf("Done! I've updated the font to %s", parsed.FontFamily)

	case command.ActionChangeColor:
		err = e.svc.SetTextColor(ctx, target.ObjectID, parsed.Color)
		reply = fmt.Sprintf("Done! I've updated the text color to %s", parsed.ColorName)

	default:
		return ReplyHelp
	}

	if err != nil {
		slog.Error("mutation failed", "action", parsed.Action, "object_id", target.ObjectID, "error", err)
		return apology(err)
	}
	slog.Info("mutation applied", "action", parsed.Action, "object_id", target.ObjectID)
	return reply
}

// sortedElements returns the snapshot in a stable order (page, then id), so
// "first element" selections do not depend on map iteration.
func sortedElements(elements map[string]element.Element) []element.Element {
	out := make([]element.Element, 0, len(elements))
	for _, el := range elements {
		out = append(out, el)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PageNumber != out[j].PageNumber {
			return out[i].PageNumber < out[j].PageNumber
		}
		return out[i].ObjectID < out[j].ObjectID
	})
	return out
}

func apology(err error) string {
	return fmt.Sprintf("Sorry, I ran into an error: %v", err)
}
