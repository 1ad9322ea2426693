// Package transport defines the interface for pluggable command transports.
//
// Each transport (HTTP, gRPC, MQTT) accepts incoming command requests and
// hands them to the editor through the Handler contract. The editor doesn't
// care how commands arrive; the reply always goes back to the sender over
// the transport that received the request.
package transport

import (
	"context"

	"github.com/voxdeck/voxdeck/internal/message"
)

// Handler is a function that processes an incoming request and returns a
// result. The editor provides this handler to each transport.
type Handler func(ctx context.Context, req *message.Request) (*message.Result, error)

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "http", "grpc", "mqtt").
	Name() string

	// Listen starts accepting incoming requests and dispatches them to the
	// handler. It blocks until the context is cancelled.
	Listen(ctx context.Context, handler Handler) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}
