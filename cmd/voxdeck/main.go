// Voxdeck lets you edit a slide presentation with short natural-language
// commands, typed or spoken.
//
// Usage:
//
//	voxdeck -text "make the title bigger"     run one text command
//	voxdeck -listen [-continuous]             voice command loop
//	voxdeck                                   serve transports as a daemon
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/voxdeck/voxdeck/internal/config"
	"github.com/voxdeck/voxdeck/internal/editor"
	"github.com/voxdeck/voxdeck/internal/health"
	"github.com/voxdeck/voxdeck/internal/slides/google"
	"github.com/voxdeck/voxdeck/internal/speech"
	"github.com/voxdeck/voxdeck/internal/speech/mic"
	"github.com/voxdeck/voxdeck/internal/speech/piper"
	"github.com/voxdeck/voxdeck/internal/speech/whisper"
	"github.com/voxdeck/voxdeck/internal/transport"
	grpctransport "github.com/voxdeck/voxdeck/internal/transport/grpc"
	httptransport "github.com/voxdeck/voxdeck/internal/transport/http"
	mqtttransport "github.com/voxdeck/voxdeck/internal/transport/mqtt"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/voxdeck.yaml)")
	text := flag.String("text", "", "process one text command and exit")
	listen := flag.Bool("listen", false, "listen for voice commands")
	continuous := flag.Bool("continuous", false, "keep listening for voice commands (with -listen)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("voxdeck %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)
	slog.Info("voxdeck starting", "version", version)

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Google Slides client for the target presentation.
	svc, err := google.New(ctx, cfg.Google, cfg.Presentation.ID)
	if err != nil {
		slog.Error("failed to create slides client", "error", err)
		os.Exit(1)
	}

	// Transcriber is optional: text-only use works without an API key.
	var transcriber speech.Transcriber
	if cfg.Speech.OpenAIAPIKey != "" {
		transcriber = whisper.New(cfg.Speech)
		defer transcriber.Close()
	}

	ed := editor.New(svc, transcriber, cfg.Presentation.SlideWidth, cfg.Presentation.SlideHeight)

	switch {
	case *text != "":
		fmt.Println(ed.Process(ctx, *text))

	case *listen:
		if err := voiceLoop(ctx, cfg, ed, transcriber, *continuous); err != nil {
			slog.Error("voice loop failed", "error", err)
			os.Exit(1)
		}

	default:
		if err := serve(ctx, cfg, ed); err != nil {
			slog.Error("daemon failed", "error", err)
			os.Exit(1)
		}
	}
}

// voiceLoop records, transcribes and processes voice commands until the
// context is cancelled (or after one command when continuous is false).
func voiceLoop(ctx context.Context, cfg *config.Config, ed *editor.Editor, transcriber speech.Transcriber, continuous bool) error {
	if transcriber == nil {
		return fmt.Errorf("voice commands need speech.openai_api_key configured")
	}

	recorder := mic.New(cfg.Speech)

	var speaker speech.Synthesizer
	if cfg.TTS.Enabled {
		speaker = piper.New(cfg.TTS.Piper)
		defer speaker.Close()
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for {
		fmt.Fprintln(out, "Listening...")
		out.Flush()

		audio, contentType, err := recorder.Record(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Error("recording failed", "error", err)
			if !continuous {
				return err
			}
			continue
		}

		phrase, err := transcriber.Transcribe(ctx, audio, contentType)
		if err != nil {
			slog.Error("transcription failed", "error", err)
			if !continuous {
				return err
			}
			continue
		}
		if strings.TrimSpace(phrase) == "" {
			slog.Debug("empty transcription, skipping")
			if !continuous {
				return nil
			}
			continue
		}

		fmt.Fprintf(out, "Heard: %s\n", phrase)
		reply := ed.Process(ctx, phrase)
		fmt.Fprintf(out, "Result: %s\n", reply)
		out.Flush()

		if speaker != nil {
			if wav, err := speaker.Synthesize(ctx, reply); err != nil {
				slog.Warn("synthesis failed, continuing without audio", "error", err)
			} else if err := mic.Play(ctx, wav); err != nil {
				slog.Warn("playback failed", "error", err)
			}
		}

		if !continuous {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// serve runs the daemon: all enabled transports plus the health server.
func serve(ctx context.Context, cfg *config.Config, ed *editor.Editor) error {
	var transports []transport.Transport

	if cfg.Transports.HTTP.Enabled {
		transports = append(transports, httptransport.New(cfg.Transports.HTTP.Port))
	}
	if cfg.Transports.GRPC.Enabled {
		transports = append(transports, grpctransport.New(cfg.Transports.GRPC.Port))
	}
	if cfg.Transports.MQTT.Enabled {
		transports = append(transports, mqtttransport.New(cfg.Transports.MQTT.Broker, cfg.Transports.MQTT.Topic))
	}
	if len(transports) == 0 {
		return fmt.Errorf("no transports enabled, enable at least one in config")
	}

	// Start health check server.
	healthServer := health.New(cfg.Server.HealthPort)
	go func() {
		if err := healthServer.ListenAndServe(ctx); err != nil {
			slog.Error("health server failed", "error", err)
		}
	}()

	// Start all transports.
	var wg sync.WaitGroup
	for _, t := range transports {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(ctx, ed.Handle); err != nil {
				slog.Error("transport failed", "name", t.Name(), "error", err)
			}
		}(t)
	}

	// Mark as ready once all transports are started.
	healthServer.SetReady(true)
	slog.Info("voxdeck ready",
		"transports", len(transports),
		"health_port", cfg.Server.HealthPort)

	// Block until shutdown signal.
	<-ctx.Done()
	slog.Info("shutdown signal received, draining...")

	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	wg.Wait()
	slog.Info("voxdeck stopped")
	return nil
}
