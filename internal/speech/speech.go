// Package speech defines the interfaces for audio capture, transcription and
// spoken replies.
//
// The editor core never touches audio; these seams exist so the voice loop
// and the transports can feed it plain text. Voxdeck ships a Whisper-backed
// transcriber, an external-process recorder and a Piper synthesizer.
package speech

import "context"

// Transcriber converts audio bytes to text.
type Transcriber interface {
	// Transcribe converts one utterance to text. contentType is the MIME
	// type of the audio (e.g., "audio/wav").
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)

	// Close releases any resources held by the transcriber.
	Close() error
}

// Recorder captures one utterance from the microphone.
type Recorder interface {
	// Record captures audio and returns it with its MIME type.
	Record(ctx context.Context) (audio []byte, contentType string, err error)
}

// Synthesizer converts text to audio for spoken replies.
type Synthesizer interface {
	// Synthesize generates WAV audio from the given text.
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// Close releases any resources held by the synthesizer.
	Close() error
}
