// Package slides defines the interface to the remote presentation document.
//
// The editor core only works with this contract: fetch a snapshot, mutate one
// element. The concrete Google Slides client lives in the google subpackage;
// tests substitute a fake.
package slides

import (
	"context"

	"github.com/voxdeck/voxdeck/internal/element"
)

// Service is the seam between the command engine and the presentation backend.
// Every mutation either succeeds or returns a transport-level error; the
// editor converts those into user-facing messages.
type Service interface {
	// Fetch reads the full element set of the presentation. It must reflect
	// current geometry, content and ids; nothing is cached between calls.
	Fetch(ctx context.Context) (map[string]element.Element, error)

	// SetText replaces the entire text of an element.
	SetText(ctx context.Context, objectID, text string) error

	// SetRelativeScale resizes an element by a factor relative to its
	// current size. Text elements grow or shrink by font size, images by
	// transform scale; the backend decides which applies.
	SetRelativeScale(ctx context.Context, objectID string, factor float64) error

	// SetAbsoluteTransform replaces an element's transform outright,
	// moving it to the given translation with the given scale.
	SetAbsoluteTransform(ctx context.Context, objectID string, scaleX, scaleY, translateX, translateY float64) error

	// SetFont changes the font family of all text in an element.
	SetFont(ctx context.Context, objectID, family string) error

	// SetTextColor changes the foreground color of all text in an element.
	SetTextColor(ctx context.Context, objectID string, color element.RGB) error
}
