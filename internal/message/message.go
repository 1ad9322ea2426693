// Package message defines the wire envelope flowing between transports and
// the editor pipeline.
package message

import (
	"time"
)

// Request represents an incoming command from any transport.
type Request struct {
	// ID is a unique identifier for this request (UUID).
	ID string `json:"id"`

	// Source identifies the sender (e.g., "cli", "phone-alice").
	Source string `json:"source"`

	// Audio is the raw audio payload. Nil if the request is text-only.
	Audio []byte `json:"audio,omitempty"`

	// ContentType is the MIME type of the audio (e.g., "audio/wav").
	ContentType string `json:"content_type,omitempty"`

	// Text is an optional pre-transcribed command (bypasses transcription).
	Text string `json:"text,omitempty"`

	// Timestamp is when the request was received.
	Timestamp time.Time `json:"timestamp"`
}

// HasAudio returns true if the request contains an audio payload.
func (r *Request) HasAudio() bool {
	return len(r.Audio) > 0
}

// Result is the outcome of processing one command.
type Result struct {
	// RequestID is the original request ID.
	RequestID string `json:"request_id"`

	// Transcript is the text produced by transcription (the input text for
	// text-only requests).
	Transcript string `json:"transcript,omitempty"`

	// Reply is the user-facing outcome of the command. It is always set on
	// a processed request, including "not understood" and apology replies.
	Reply string `json:"reply,omitempty"`

	// Error is set if the request never reached command processing
	// (no input, transcription failure).
	Error string `json:"error,omitempty"`
}
