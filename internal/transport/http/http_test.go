package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxdeck/voxdeck/internal/message"
)

func echoHandler(captured **message.Request) func(context.Context, *message.Request) (*message.Result, error) {
	return func(ctx context.Context, req *message.Request) (*message.Result, error) {
		*captured = req
		return &message.Result{RequestID: req.ID, Reply: "Done! I've updated the text"}, nil
	}
}

func TestHandleCommandJSON(t *testing.T) {
	var got *message.Request
	tr := New(0)

	body := `{"id": "req-1", "source": "cli", "text": "change the title to say hello"}`
	r := httptest.NewRequest(http.MethodPost, "/command", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	tr.handleCommand(w, r, echoHandler(&got))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, "req-1", got.ID)
	assert.Equal(t, "cli", got.Source)
	assert.Equal(t, "change the title to say hello", got.Text)
	assert.False(t, got.Timestamp.IsZero())

	var result message.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "req-1", result.RequestID)
	assert.Equal(t, "Done! I've updated the text", result.Reply)
}

func TestHandleCommandRawAudio(t *testing.T) {
	var got *message.Request
	tr := New(0)

	r := httptest.NewRequest(http.MethodPost, "/command", bytes.NewReader([]byte{1, 2, 3}))
	r.Header.Set("Content-Type", "audio/wav")
	r.Header.Set("X-Voxdeck-Source", "phone-alice")
	w := httptest.NewRecorder()

	tr.handleCommand(w, r, echoHandler(&got))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, []byte{1, 2, 3}, got.Audio)
	assert.Equal(t, "audio/wav", got.ContentType)
	assert.Equal(t, "phone-alice", got.Source)
	// IDs are generated when the client does not supply one.
	assert.NotEmpty(t, got.ID)
}

func TestHandleCommandInvalidJSON(t *testing.T) {
	var got *message.Request
	tr := New(0)

	r := httptest.NewRequest(http.MethodPost, "/command", strings.NewReader("{not json"))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	tr.handleCommand(w, r, echoHandler(&got))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, got)
}

func TestHandleCommandHandlerError(t *testing.T) {
	tr := New(0)

	r := httptest.NewRequest(http.MethodPost, "/command", strings.NewReader(`{"text": "hi"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	tr.handleCommand(w, r, func(ctx context.Context, req *message.Request) (*message.Result, error) {
		return nil, errors.New("pipeline down")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "pipeline down")
}
