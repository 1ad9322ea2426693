package editor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxdeck/voxdeck/internal/element"
	"github.com/voxdeck/voxdeck/internal/message"
)

// mutation records one call against the fake service.
type mutation struct {
	op       string
	objectID string
	text     string
	factor   float64
	family   string
	color    element.RGB
	x, y     float64
	sx, sy   float64
}

// fakeService implements slides.Service in memory.
type fakeService struct {
	elements  map[string]element.Element
	fetchErr  error
	mutateErr map[string]error // objectID -> error
	calls     []mutation
}

func (f *fakeService) Fetch(ctx context.Context) (map[string]element.Element, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.elements, nil
}

func (f *fakeService) fail(objectID string) error {
	if f.mutateErr == nil {
		return nil
	}
	return f.mutateErr[objectID]
}

func (f *fakeService) SetText(ctx context.Context, objectID, text string) error {
	f.calls = append(f.calls, mutation{op: "set_text", objectID: objectID, text: text})
	return f.fail(objectID)
}

func (f *fakeService) SetRelativeScale(ctx context.Context, objectID string, factor float64) error {
	f.calls = append(f.calls, mutation{op: "scale", objectID: objectID, factor: factor})
	return f.fail(objectID)
}

func (f *fakeService) SetAbsoluteTransform(ctx context.Context, objectID string, scaleX, scaleY, translateX, translateY float64) error {
	f.calls = append(f.calls, mutation{op: "transform", objectID: objectID, sx: scaleX, sy: scaleY, x: translateX, y: translateY})
	return f.fail(objectID)
}

func (f *fakeService) SetFont(ctx context.Context, objectID, family string) error {
	f.calls = append(f.calls, mutation{op: "set_font", objectID: objectID, family: family})
	return f.fail(objectID)
}

func (f *fakeService) SetTextColor(ctx context.Context, objectID string, color element.RGB) error {
	f.calls = append(f.calls, mutation{op: "set_color", objectID: objectID, color: color})
	return f.fail(objectID)
}

const (
	slideW = element.DefaultSlideWidth
	slideH = element.DefaultSlideHeight
)

func textEl(id, content string, fx, fy float64) element.Element {
	return element.Element{
		ObjectID:   id,
		Type:       element.TypeText,
		Content:    content,
		Position:   element.Point{X: slideW * fx, Y: slideH * fy},
		Size:       element.Size{Width: slideW * 0.02, Height: slideH * 0.02},
		Scale:      element.Scale{X: 1, Y: 1},
		PageNumber: 1,
	}
}

func imageEl(id string, fx, fy float64) element.Element {
	e := textEl(id, element.ImagePlaceholder, fx, fy)
	e.Type = element.TypeImage
	return e
}

func newSnapshot(els ...element.Element) map[string]element.Element {
	m := make(map[string]element.Element, len(els))
	for _, e := range els {
		m[e.ObjectID] = e
	}
	return m
}

func TestProcessEmptyPresentation(t *testing.T) {
	svc := &fakeService{elements: map[string]element.Element{}}
	ed := New(svc, nil, slideW, slideH)

	got := ed.Process(context.Background(), "make the title bigger")
	assert.Equal(t, ReplyNoElements, got)
	assert.Empty(t, svc.calls)
}

func TestProcessFetchFailure(t *testing.T) {
	svc := &fakeService{fetchErr: errors.New("presentation unavailable")}
	ed := New(svc, nil, slideW, slideH)

	got := ed.Process(context.Background(), "make the title bigger")
	assert.Contains(t, got, "error")
	assert.Contains(t, got, "presentation unavailable")
}

func TestProcessNotUnderstood(t *testing.T) {
	svc := &fakeService{elements: newSnapshot(textEl("a", "Welcome to VoxDeck", 0.4, 0.1))}
	ed := New(svc, nil, slideW, slideH)

	got := ed.Process(context.Background(), "do a backflip")
	assert.Equal(t, ReplyHelp, got)
	assert.Empty(t, svc.calls)
}

func TestProcessResizeTitle(t *testing.T) {
	svc := &fakeService{elements: newSnapshot(
		textEl("title", "Welcome to VoxDeck", 0.4, 0.1),
		textEl("body", "some body text", 0.4, 0.5),
	)}
	ed := New(svc, nil, slideW, slideH)

	got := ed.Process(context.Background(), "make the title bigger")
	assert.Equal(t, "Done! I've made the text bigger", got)

	require.Len(t, svc.calls, 1)
	assert.Equal(t, mutation{op: "scale", objectID: "title", factor: 1.2}, svc.calls[0])
}

func TestProcessResizeImage(t *testing.T) {
	svc := &fakeService{elements: newSnapshot(
		textEl("title", "Welcome to VoxDeck", 0.4, 0.1),
		imageEl("img", 0.8, 0.8),
	)}
	ed := New(svc, nil, slideW, slideH)

	got := ed.Process(context.Background(), "make the image smaller")
	assert.Equal(t, "Done! I've made the image smaller", got)

	require.Len(t, svc.calls, 1)
	assert.Equal(t, mutation{op: "scale", objectID: "img", factor: 0.8}, svc.calls[0])
}

func TestProcessChangeText(t *testing.T) {
	svc := &fakeService{elements: newSnapshot(
		textEl("title", "Welcome to VoxDeck", 0.4, 0.1),
	)}
	ed := New(svc, nil, slideW, slideH)

	got := ed.Process(context.Background(), "change the title to say 'Hello World'")
	assert.Equal(t, "Done! I've updated the text", got)

	require.Len(t, svc.calls, 1)
	assert.Equal(t, mutation{op: "set_text", objectID: "title", text: "hello world"}, svc.calls[0])
}

func TestProcessChangeColor(t *testing.T) {
	svc := &fakeService{elements: newSnapshot(
		textEl("title", "Welcome to VoxDeck", 0.4, 0.1),
	)}
	ed := New(svc, nil, slideW, slideH)

	got := ed.Process(context.Background(), "change the color of the title to blue")
	assert.Equal(t, "Done! I've updated the text color to blue", got)

	require.Len(t, svc.calls, 1)
	assert.Equal(t, "set_color", svc.calls[0].op)
	assert.Equal(t, element.RGB{Red: 0, Green: 0, Blue: 1}, svc.calls[0].color)
}

func TestProcessMutationFailure(t *testing.T) {
	svc := &fakeService{
		elements:  newSnapshot(textEl("title", "Welcome to VoxDeck", 0.4, 0.1)),
		mutateErr: map[string]error{"title": errors.New("rate limit exceeded")},
	}
	ed := New(svc, nil, slideW, slideH)

	got := ed.Process(context.Background(), "make the title bigger")
	assert.Contains(t, got, "error")
	assert.Contains(t, got, "rate limit exceeded")
}

func TestProcessTargetNotFound(t *testing.T) {
	svc := &fakeService{elements: newSnapshot(
		textEl("header", "headline", 0.4, 0.05),
	)}
	ed := New(svc, nil, slideW, slideH)

	got := ed.Process(context.Background(), "make the bottom text bigger")
	assert.Equal(t, ReplyNotFound, got)
	assert.Empty(t, svc.calls)
}

func TestProcessAllFonts(t *testing.T) {
	t.Run("partial failure still counts successes", func(t *testing.T) {
		svc := &fakeService{
			elements: newSnapshot(
				textEl("a", "one", 0.1, 0.1),
				textEl("b", "two", 0.4, 0.4),
				textEl("c", "three", 0.8, 0.8),
			),
			mutateErr: map[string]error{"b": errors.New("locked")},
		}
		ed := New(svc, nil, slideW, slideH)

		got := ed.Process(context.Background(), "make all fonts Helvetica")
		assert.Equal(t, "Done! I've updated the font to helvetica for 2 elements", got)
		assert.Len(t, svc.calls, 3)
	})

	t.Run("total failure", func(t *testing.T) {
		svc := &fakeService{
			elements: newSnapshot(textEl("a", "one", 0.1, 0.1)),
			mutateErr: map[string]error{
				"a": errors.New("locked"),
			},
		}
		ed := New(svc, nil, slideW, slideH)

		got := ed.Process(context.Background(), "make all fonts Helvetica")
		assert.Equal(t, "Sorry, I wasn't able to update any fonts", got)
	})
}

func TestProcessMove(t *testing.T) {
	title := textEl("title", "Welcome to VoxDeck", 0.4, 0.5)
	title.Scale = element.Scale{X: 2, Y: 3}

	svc := &fakeService{elements: newSnapshot(title, imageEl("img", 0.8, 0.8))}
	ed := New(svc, nil, slideW, slideH)

	got := ed.Process(context.Background(), "move the title to the top")
	assert.Equal(t, "Done! I've moved the text to the top of the slide", got)

	require.Len(t, svc.calls, 1)
	call := svc.calls[0]
	assert.Equal(t, "transform", call.op)
	assert.Equal(t, "title", call.objectID)
	// The move preserves the element's current scale.
	assert.Equal(t, 2.0, call.sx)
	assert.Equal(t, 3.0, call.sy)

	want := element.GridPoint(element.Top, slideW, slideH)
	assert.Equal(t, want.X, call.x)
	assert.Equal(t, want.Y, call.y)
}

func TestProcessMoveWithoutDirectionFallsThrough(t *testing.T) {
	svc := &fakeService{elements: newSnapshot(textEl("a", "text", 0.4, 0.4))}
	ed := New(svc, nil, slideW, slideH)

	// A move verb with no direction word is not a move; nothing else in the
	// phrase parses either.
	got := ed.Process(context.Background(), "move it somewhere nice")
	assert.Equal(t, ReplyHelp, got)
	assert.Empty(t, svc.calls)
}

func TestProcessMoveFailure(t *testing.T) {
	svc := &fakeService{
		elements:  newSnapshot(textEl("a", "text", 0.4, 0.4)),
		mutateErr: map[string]error{"a": errors.New("boom")},
	}
	ed := New(svc, nil, slideW, slideH)

	got := ed.Process(context.Background(), "move the text to the left")
	assert.Contains(t, got, "error")
	assert.Contains(t, got, "boom")
}

// stubTranscriber returns a fixed phrase.
type stubTranscriber struct {
	text string
	err  error
}

func (s *stubTranscriber) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	return s.text, s.err
}

func (s *stubTranscriber) Close() error { return nil }

func TestHandleText(t *testing.T) {
	svc := &fakeService{elements: newSnapshot(textEl("title", "Welcome to VoxDeck", 0.4, 0.1))}
	ed := New(svc, nil, slideW, slideH)

	result, err := ed.Handle(context.Background(), &message.Request{
		ID:   "req-1",
		Text: "make the title bigger",
	})
	require.NoError(t, err)
	assert.Equal(t, "req-1", result.RequestID)
	assert.Equal(t, "make the title bigger", result.Transcript)
	assert.Equal(t, "Done! I've made the text bigger", result.Reply)
	assert.Empty(t, result.Error)
}

func TestHandleAudio(t *testing.T) {
	svc := &fakeService{elements: newSnapshot(textEl("title", "Welcome to VoxDeck", 0.4, 0.1))}
	ed := New(svc, &stubTranscriber{text: "make the title smaller"}, slideW, slideH)

	result, err := ed.Handle(context.Background(), &message.Request{
		ID:          "req-2",
		Audio:       []byte{1, 2, 3},
		ContentType: "audio/wav",
	})
	require.NoError(t, err)
	assert.Equal(t, "make the title smaller", result.Transcript)
	assert.Equal(t, "Done! I've made the text smaller", result.Reply)
}

func TestHandleAudioTranscriptionFailure(t *testing.T) {
	svc := &fakeService{elements: newSnapshot(textEl("title", "Welcome to VoxDeck", 0.4, 0.1))}
	ed := New(svc, &stubTranscriber{err: fmt.Errorf("no speech detected")}, slideW, slideH)

	result, err := ed.Handle(context.Background(), &message.Request{
		ID:          "req-3",
		Audio:       []byte{1},
		ContentType: "audio/wav",
	})
	require.NoError(t, err)
	assert.Contains(t, result.Error, "no speech detected")
	assert.Empty(t, result.Reply)
}

func TestHandleEmptyRequest(t *testing.T) {
	svc := &fakeService{elements: newSnapshot()}
	ed := New(svc, nil, slideW, slideH)

	result, err := ed.Handle(context.Background(), &message.Request{ID: "req-4"})
	require.NoError(t, err)
	assert.Equal(t, "request has no audio and no text", result.Error)
	assert.Empty(t, svc.calls)
}

func TestHandleAudioWithoutTranscriber(t *testing.T) {
	svc := &fakeService{elements: newSnapshot()}
	ed := New(svc, nil, slideW, slideH)

	result, err := ed.Handle(context.Background(), &message.Request{
		ID:    "req-5",
		Audio: []byte{1},
	})
	require.NoError(t, err)
	assert.Contains(t, result.Error, "no transcriber")
}
