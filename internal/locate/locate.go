// Package locate resolves an ambiguous natural-language reference to a single
// concrete slide element.
//
// The search is two-stage: exact grid-zone match first, then a relaxed match
// that accepts any element sharing one zone component with the target. Ties
// are broken by content length. The relaxed stage trades precision for never
// leaving a request unresolved when any plausible element exists.
package locate

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/voxdeck/voxdeck/internal/element"
)

// TitleMarker is the content that identifies the deck's title element.
const TitleMarker = "welcome to voxdeck"

// positionGroup is one direction keyword with its spoken synonyms.
type positionGroup struct {
	Name     string
	Keywords []string
}

// PositionGroups maps spoken direction words onto grid-zone components.
var PositionGroups = []positionGroup{
	{"top", []string{"top", "upper", "above", "up", "top of", "upper part", "at the top"}},
	{"bottom", []string{"bottom", "lower", "below", "down", "bottom of", "lower part", "at the bottom"}},
	{"left", []string{"left", "leftmost", "beginning", "start", "left side", "on the left"}},
	{"right", []string{"right", "rightmost", "end", "right side", "on the right"}},
	{"center", []string{"center", "middle", "centered", "centre", "in the middle"}},
}

// Locator finds elements on a canvas of known dimensions.
type Locator struct {
	slideWidth  float64
	slideHeight float64
}

// New creates a Locator for the given canvas dimensions, in EMU.
// Zero dimensions fall back to the standard 16:9 canvas.
func New(slideWidth, slideHeight float64) *Locator {
	if slideWidth <= 0 {
		slideWidth = element.DefaultSlideWidth
	}
	if slideHeight <= 0 {
		slideHeight = element.DefaultSlideHeight
	}
	return &Locator{slideWidth: slideWidth, slideHeight: slideHeight}
}

// TargetZone derives the grid zone a phrase refers to, along with the raw
// direction components the phrase named. Matched direction groups are
// collected, sorted alphabetically and joined; a phrase with no direction
// words resolves to center.
//
// The raw components matter separately from the zone: an alphabetical join
// can produce a label outside the zone set ("top right" joins to
// "right_top"), which collapses to center for the exact-match pass while the
// relaxed pass still honors the named directions.
func (l *Locator) TargetZone(phrase string) (element.GridPosition, []string) {
	p := strings.ToLower(phrase)

	var parts []string
	for _, group := range PositionGroups {
		for _, kw := range group.Keywords {
			if strings.Contains(p, kw) {
				parts = append(parts, group.Name)
				slog.Debug("matched position keyword", "group", group.Name, "keyword", kw)
				break
			}
		}
	}

	sort.Strings(parts)
	if len(parts) == 0 {
		parts = []string{"center"}
	}
	return element.ParseGridPosition(strings.Join(parts, "_")), parts
}

// FindTitle returns the element whose content carries the title marker.
func FindTitle(elements map[string]element.Element) (*element.Element, bool) {
	for _, el := range elements {
		if strings.Contains(strings.ToLower(el.Content), TitleMarker) {
			found := el
			return &found, true
		}
	}
	return nil, false
}

// Locate returns the single best-matching element for a phrase, or false when
// nothing plausible exists.
func (l *Locator) Locate(elements map[string]element.Element, phrase string) (*element.Element, bool) {
	logger := slog.With("phrase", phrase)

	// A phrase naming the title always resolves to the title element when
	// present, regardless of any direction words also in the phrase.
	if strings.Contains(strings.ToLower(phrase), "title") {
		if title, ok := FindTitle(elements); ok {
			logger.Debug("resolved title element", "object_id", title.ObjectID)
			return title, true
		}
	}

	target, targetParts := l.TargetZone(phrase)
	logger.Debug("searching zone", "zone", target, "parts", targetParts)

	var matches []element.Element
	for _, el := range elements {
		zone := element.Classify(
			el.Position.X, el.Position.Y,
			el.Size.Width, el.Size.Height,
			l.slideWidth, l.slideHeight,
		)
		if zone == target {
			matches = append(matches, el)
		}
	}

	if len(matches) == 0 {
		// Relaxed pass: accept any element whose zone shares a component
		// with the directions the phrase named ("top" matches a "top right"
		// request). This uses the raw components, not the collapsed zone.
		for _, el := range elements {
			zone := element.Classify(
				el.Position.X, el.Position.Y,
				el.Size.Width, el.Size.Height,
				l.slideWidth, l.slideHeight,
			)
			if sharesComponent(strings.Split(string(zone), "_"), targetParts) {
				matches = append(matches, el)
				logger.Debug("partial zone match", "object_id", el.ObjectID, "zone", zone)
			}
		}
	}

	if len(matches) == 0 {
		logger.Debug("no element found for zone", "zone", target)
		return nil, false
	}

	// Prefer the element with the most content.
	sort.SliceStable(matches, func(i, j int) bool {
		return len(matches[i].Content) > len(matches[j].Content)
	})
	best := matches[0]
	logger.Debug("located element", "object_id", best.ObjectID, "content_length", len(best.Content))
	return &best, true
}

func sharesComponent(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
