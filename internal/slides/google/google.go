// Package google implements the slides.Service interface against the Google
// Slides v1 REST API.
//
// It talks to presentations.get and presentations.batchUpdate directly over
// HTTP rather than through the generated API client; the two calls voxdeck
// needs do not justify the dependency. Authentication uses an OAuth installed
// app flow: a client secret file plus a previously authorized token file,
// refreshed automatically by the token source.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/voxdeck/voxdeck/internal/config"
	"github.com/voxdeck/voxdeck/internal/element"
)

const (
	defaultBaseURL = "https://slides.googleapis.com"
	scope          = "https://www.googleapis.com/auth/presentations"

	// Text elements resize by font size, not by transform. One resize step
	// adjusts the font by this many points.
	fontStepPt = 5.0
)

// Client is a Google Slides API client bound to one presentation.
type Client struct {
	baseURL        string
	presentationID string
	client         *http.Client
}

// New creates a client from config, loading the OAuth client secret and the
// stored user token. The returned client refreshes its token transparently.
func New(ctx context.Context, cfg config.GoogleConfig, presentationID string) (*Client, error) {
	if presentationID == "" {
		return nil, fmt.Errorf("presentation id is required")
	}

	secret, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading client secret: %w", err)
	}
	oauthCfg, err := google.ConfigFromJSON(secret, scope)
	if err != nil {
		return nil, fmt.Errorf("parsing client secret: %w", err)
	}

	tokBytes, err := os.ReadFile(cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("reading token file (run authorization first): %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(tokBytes, &tok); err != nil {
		return nil, fmt.Errorf("parsing token file: %w", err)
	}

	baseURL := cfg.Endpoint
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		presentationID: presentationID,
		client:         oauthCfg.Client(ctx, &tok),
	}, nil
}

// NewWithHTTPClient creates a client with an explicit HTTP client, bypassing
// OAuth. Used in tests against a stub server.
func NewWithHTTPClient(baseURL, presentationID string, hc *http.Client) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		presentationID: presentationID,
		client:         hc,
	}
}

// --- Wire types (subset of the Slides API surface voxdeck reads) ---

type presentation struct {
	Slides []slide `json:"slides"`
}

type slide struct {
	PageElements []pageElement `json:"pageElements"`
}

type pageElement struct {
	ObjectID  string     `json:"objectId"`
	Size      *dimension `json:"size"`
	Transform *transform `json:"transform"`
	Shape     *shape     `json:"shape"`
	Image     *struct{}  `json:"image"`
}

type dimension struct {
	Width  magnitude `json:"width"`
	Height magnitude `json:"height"`
}

type magnitude struct {
	Magnitude float64 `json:"magnitude"`
}

type transform struct {
	ScaleX     float64 `json:"scaleX"`
	ScaleY     float64 `json:"scaleY"`
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
}

type shape struct {
	Text *textBody `json:"text"`
}

type textBody struct {
	TextElements []textElement `json:"textElements"`
}

type textElement struct {
	TextRun *textRun `json:"textRun"`
}

type textRun struct {
	Content string    `json:"content"`
	Style   *runStyle `json:"style"`
}

type runStyle struct {
	FontSize *magnitude `json:"fontSize"`
}

// Fetch reads the presentation and extracts its addressable elements.
// Text shapes with empty trimmed content are skipped entirely; images get a
// placeholder content string.
func (c *Client) Fetch(ctx context.Context) (map[string]element.Element, error) {
	pres, err := c.getPresentation(ctx)
	if err != nil {
		return nil, err
	}

	elements := make(map[string]element.Element)
	for pageNo, sl := range pres.Slides {
		for _, pe := range sl.PageElements {
			el, ok := toElement(pe, pageNo+1)
			if !ok {
				continue
			}
			elements[el.ObjectID] = el
			slog.Debug("snapshot element",
				"object_id", el.ObjectID,
				"type", el.Type,
				"page", el.PageNumber,
				"content_length", len(el.Content))
		}
	}

	slog.Info("presentation snapshot complete", "elements", len(elements))
	return elements, nil
}

func toElement(pe pageElement, pageNumber int) (element.Element, bool) {
	var pos element.Point
	scale := element.Scale{X: 1, Y: 1}
	if pe.Transform != nil {
		pos = element.Point{X: pe.Transform.TranslateX, Y: pe.Transform.TranslateY}
		if pe.Transform.ScaleX != 0 {
			scale.X = pe.Transform.ScaleX
		}
		if pe.Transform.ScaleY != 0 {
			scale.Y = pe.Transform.ScaleY
		}
	}
	var size element.Size
	if pe.Size != nil {
		size = element.Size{Width: pe.Size.Width.Magnitude, Height: pe.Size.Height.Magnitude}
	}

	switch {
	case pe.Shape != nil && pe.Shape.Text != nil:
		content := strings.TrimSpace(extractText(pe.Shape.Text))
		if content == "" {
			return element.Element{}, false
		}
		return element.Element{
			ObjectID:   pe.ObjectID,
			Type:       element.TypeText,
			Content:    content,
			Position:   pos,
			Size:       size,
			Scale:      scale,
			PageNumber: pageNumber,
		}, true

	case pe.Image != nil:
		return element.Element{
			ObjectID:   pe.ObjectID,
			Type:       element.TypeImage,
			Content:    element.ImagePlaceholder,
			Position:   pos,
			Size:       size,
			Scale:      scale,
			PageNumber: pageNumber,
		}, true
	}

	return element.Element{}, false
}

func extractText(body *textBody) string {
	var sb strings.Builder
	for _, te := range body.TextElements {
		if te.TextRun != nil {
			sb.WriteString(te.TextRun.Content)
		}
	}
	return sb.String()
}

// SetText replaces the full text of an element with a delete-then-insert pair.
func (c *Client) SetText(ctx context.Context, objectID, text string) error {
	reqs := []map[string]any{
		{
			"deleteText": map[string]any{
				"objectId":  objectID,
				"textRange": map[string]string{"type": "ALL"},
			},
		},
		{
			"insertText": map[string]any{
				"objectId":       objectID,
				"insertionIndex": 0,
				"text":           text,
			},
		},
	}
	return c.batchUpdate(ctx, reqs)
}

// SetRelativeScale resizes an element. The Slides API has no relative resize,
// so the element is re-read first: text shapes step their font size up or
// down, images multiply their current transform scale by the factor.
func (c *Client) SetRelativeScale(ctx context.Context, objectID string, factor float64) error {
	pe, err := c.findElement(ctx, objectID)
	if err != nil {
		return err
	}

	switch {
	case pe.Shape != nil && pe.Shape.Text != nil:
		current := currentFontSize(pe.Shape.Text)
		step := fontStepPt
		if factor < 1 {
			step = -fontStepPt
		}
		newSize := current + step
		slog.Debug("adjusting font size", "object_id", objectID, "from_pt", current, "to_pt", newSize)
		return c.batchUpdate(ctx, []map[string]any{{
			"updateTextStyle": map[string]any{
				"objectId":  objectID,
				"textRange": map[string]string{"type": "ALL"},
				"style": map[string]any{
					"fontSize": map[string]any{"magnitude": newSize, "unit": "PT"},
				},
				"fields": "fontSize",
			},
		}})

	default:
		tf := transform{ScaleX: 1, ScaleY: 1}
		if pe.Transform != nil {
			tf = *pe.Transform
			if tf.ScaleX == 0 {
				tf.ScaleX = 1
			}
			if tf.ScaleY == 0 {
				tf.ScaleY = 1
			}
		}
		slog.Debug("scaling transform",
			"object_id", objectID,
			"scale_x", tf.ScaleX*factor,
			"scale_y", tf.ScaleY*factor)
		return c.SetAbsoluteTransform(ctx, objectID,
			tf.ScaleX*factor, tf.ScaleY*factor, tf.TranslateX, tf.TranslateY)
	}
}

// currentFontSize returns the font size of the first styled run, defaulting
// to 12pt when the run carries no explicit size.
func currentFontSize(body *textBody) float64 {
	for _, te := range body.TextElements {
		if te.TextRun != nil && te.TextRun.Style != nil && te.TextRun.Style.FontSize != nil {
			return te.TextRun.Style.FontSize.Magnitude
		}
	}
	return 12
}

// SetAbsoluteTransform replaces an element's transform outright.
func (c *Client) SetAbsoluteTransform(ctx context.Context, objectID string, scaleX, scaleY, translateX, translateY float64) error {
	return c.batchUpdate(ctx, []map[string]any{{
		"updatePageElementTransform": map[string]any{
			"objectId": objectID,
			"transform": map[string]any{
				"scaleX":     scaleX,
				"scaleY":     scaleY,
				"translateX": translateX,
				"translateY": translateY,
				"unit":       "EMU",
			},
			"applyMode": "ABSOLUTE",
		},
	}})
}

// SetFont changes the font family of all text in an element.
func (c *Client) SetFont(ctx context.Context, objectID, family string) error {
	return c.batchUpdate(ctx, []map[string]any{{
		"updateTextStyle": map[string]any{
			"objectId":  objectID,
			"textRange": map[string]string{"type": "ALL"},
			"style":     map[string]any{"fontFamily": family},
			"fields":    "fontFamily",
		},
	}})
}

// SetTextColor changes the foreground color of all text in an element.
func (c *Client) SetTextColor(ctx context.Context, objectID string, color element.RGB) error {
	return c.batchUpdate(ctx, []map[string]any{{
		"updateTextStyle": map[string]any{
			"objectId":  objectID,
			"textRange": map[string]string{"type": "ALL"},
			"style": map[string]any{
				"foregroundColor": map[string]any{
					"opaqueColor": map[string]any{
						"rgbColor": color,
					},
				},
			},
			"fields": "foregroundColor",
		},
	}})
}

// --- HTTP plumbing ---

func (c *Client) getPresentation(ctx context.Context) (*presentation, error) {
	url := fmt.Sprintf("%s/v1/presentations/%s", c.baseURL, c.presentationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching presentation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("fetching presentation (status %d): %s", resp.StatusCode, body)
	}

	var pres presentation
	if err := json.NewDecoder(resp.Body).Decode(&pres); err != nil {
		return nil, fmt.Errorf("decoding presentation: %w", err)
	}
	return &pres, nil
}

func (c *Client) findElement(ctx context.Context, objectID string) (*pageElement, error) {
	pres, err := c.getPresentation(ctx)
	if err != nil {
		return nil, err
	}
	for _, sl := range pres.Slides {
		for i := range sl.PageElements {
			if sl.PageElements[i].ObjectID == objectID {
				return &sl.PageElements[i], nil
			}
		}
	}
	return nil, fmt.Errorf("element %s not found in presentation", objectID)
}

func (c *Client) batchUpdate(ctx context.Context, requests []map[string]any) error {
	body, err := json.Marshal(map[string]any{"requests": requests})
	if err != nil {
		return fmt.Errorf("marshalling batch update: %w", err)
	}

	url := fmt.Sprintf("%s/v1/presentations/%s:batchUpdate", c.baseURL, c.presentationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("batch update request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("batch update failed (status %d): %s", resp.StatusCode, respBody)
	}

	slog.Debug("batch update applied", "requests", len(requests))
	return nil
}
