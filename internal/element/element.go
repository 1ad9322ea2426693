// Package element defines the slide element types flowing through the voxdeck pipeline.
//
// An element is one positioned object (text box, shape, image) on a slide.
// Elements are read from a presentation snapshot and are immutable for the
// duration of a single command.
package element

// Google Slides positions elements in EMU (English Metric Units).
// These are the dimensions of a standard 16:9 canvas.
const (
	DefaultSlideWidth  = 9144000.0
	DefaultSlideHeight = 5143500.0
)

// Type identifies what kind of object an element is.
type Type string

const (
	TypeText  Type = "text"
	TypeShape Type = "shape"
	TypeImage Type = "image"
)

// ImagePlaceholder is the content assigned to image elements, which carry no text.
const ImagePlaceholder = "[Image]"

// Point is an x/y offset on the slide canvas, in EMU.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height extent on the slide canvas, in EMU.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Scale is a transform scale factor pair. Moves must carry the element's
// current scale because the backend transform update is absolute.
type Scale struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RGB is a color with components in [0, 1], matching the Slides API rgbColor shape.
type RGB struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// Element is one addressable object in a presentation snapshot.
type Element struct {
	// ObjectID is the stable identifier assigned by the presentation service.
	ObjectID string `json:"object_id"`

	// Type is the element kind (text, shape, image).
	Type Type `json:"element_type"`

	// Content is the extracted text run. Image elements carry ImagePlaceholder.
	Content string `json:"content"`

	// Position is the top-left offset of the element, in EMU.
	Position Point `json:"position"`

	// Size is the element's extent, in EMU.
	Size Size `json:"size"`

	// Scale is the element's current transform scale (1,1 when unscaled).
	Scale Scale `json:"scale"`

	// PageNumber is the 1-based index of the containing slide.
	PageNumber int `json:"page_number"`
}

// IsImage reports whether the element is an image.
func (e *Element) IsImage() bool { return e.Type == TypeImage }
