// Package http implements the HTTP transport for voxdeck.
//
// It exposes a REST endpoint that accepts a command as JSON or as raw audio
// bytes and returns the editor's reply. Best suited for web clients, phones,
// and anything that prefers plain HTTP.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/voxdeck/voxdeck/docs"
	"github.com/voxdeck/voxdeck/internal/message"
	"github.com/voxdeck/voxdeck/internal/transport"
)

// Transport implements transport.Transport over HTTP.
type Transport struct {
	port   int
	server *http.Server
}

// New creates a new HTTP transport on the given port.
func New(port int) *Transport {
	return &Transport{port: port}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Listen starts the HTTP server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	mux := http.NewServeMux()

	// POST /command accepts audio or text, returns the reply.
	mux.HandleFunc("POST /command", func(w http.ResponseWriter, r *http.Request) {
		t.handleCommand(w, r, handler)
	})

	// Swagger UI, serving the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	t.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", t.port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http transport listening", "port", t.port)

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.server.Shutdown(shutdownCtx)
	}()

	if err := t.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// handleCommand processes a POST /command request.
//
// @Summary     Run a voice or text command against the presentation
// @Description Accepts a JSON request (with pre-transcribed text) or raw audio bytes.
// @Description Audio is transcribed, the phrase is interpreted, and the matching slide
// @Description mutation is applied. The reply describes the outcome in plain language.
// @Tags        command
// @Accept      json
// @Accept      audio/wav
// @Accept      audio/ogg
// @Produce     json
// @Param       request  body      message.Request  true  "Command request (JSON). For raw audio, POST the bytes directly with the appropriate Content-Type."
// @Param       X-Voxdeck-Source  header  string  false  "Sender identifier (used with raw audio uploads)"
// @Success     200  {object}  message.Result  "Command outcome"
// @Failure     400  {string}  string  "Invalid request body"
// @Failure     500  {string}  string  "Internal processing error"
// @Router      /command [post]
func (t *Transport) handleCommand(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	var req message.Request

	contentType := r.Header.Get("Content-Type")
	switch {
	case contentType == "application/json":
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
			return
		}
	default:
		// Treat body as raw audio; source comes from a header.
		audio, err := io.ReadAll(io.LimitReader(r.Body, 25<<20)) // 25 MB limit
		if err != nil {
			http.Error(w, "reading audio: "+err.Error(), http.StatusBadRequest)
			return
		}
		req.Audio = audio
		req.ContentType = contentType
		req.Source = r.Header.Get("X-Voxdeck-Source")
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.Timestamp = time.Now()

	result, err := handler(r.Context(), &req)
	if err != nil {
		slog.Error("command failed", "error", err)
		http.Error(w, "command error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}
	return nil
}
