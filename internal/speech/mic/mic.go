// Package mic implements the speech.Recorder interface using an external
// capture program (arecord by default, sox/rec also work).
//
// Recording a fixed-length window through a subprocess keeps voxdeck free of
// cgo audio bindings; the capture program writes a WAV stream to stdout.
package mic

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/voxdeck/voxdeck/internal/config"
)

// Recorder captures fixed-length utterances from the default input device.
type Recorder struct {
	command    string
	seconds    int
	sampleRate int
}

// New creates a recorder from config.
func New(cfg config.SpeechConfig) *Recorder {
	command := cfg.RecordCommand
	if command == "" {
		command = "arecord"
	}
	seconds := cfg.RecordSeconds
	if seconds <= 0 {
		seconds = 5
	}
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 16000
	}
	return &Recorder{command: command, seconds: seconds, sampleRate: rate}
}

// Record runs the capture program for the configured window and returns the
// WAV bytes it wrote to stdout.
func (r *Recorder) Record(ctx context.Context) ([]byte, string, error) {
	args := r.args()
	slog.Debug("recording", "command", r.command, "args", args)

	out, err := exec.CommandContext(ctx, r.command, args...).Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, "", fmt.Errorf("%s failed: %s", r.command, ee.Stderr)
		}
		return nil, "", fmt.Errorf("running %s: %w", r.command, err)
	}
	if len(out) == 0 {
		return nil, "", fmt.Errorf("%s produced no audio", r.command)
	}

	slog.Debug("recording complete", "bytes", len(out))
	return out, "audio/wav", nil
}

func (r *Recorder) args() []string {
	switch r.command {
	case "sox", "rec":
		// rec -q -r 16000 -c 1 -t wav - trim 0 5
		return []string{
			"-q", "-r", strconv.Itoa(r.sampleRate), "-c", "1",
			"-t", "wav", "-", "trim", "0", strconv.Itoa(r.seconds),
		}
	default:
		// arecord -q -f S16_LE -r 16000 -c 1 -t wav -d 5 -
		return []string{
			"-q", "-f", "S16_LE", "-r", strconv.Itoa(r.sampleRate), "-c", "1",
			"-t", "wav", "-d", strconv.Itoa(r.seconds), "-",
		}
	}
}

// Play writes WAV audio to the default output device via aplay. Used by the
// voice loop to speak replies.
func Play(ctx context.Context, wav []byte) error {
	cmd := exec.CommandContext(ctx, "aplay", "-q", "-")
	cmd.Stdin = bytes.NewReader(wav)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("playing audio: %w", err)
	}
	return nil
}
