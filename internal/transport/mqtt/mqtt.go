// Package mqtt implements the MQTT transport for voxdeck.
//
// MQTT suits fixed voice buttons and other lightweight devices. This
// transport subscribes to a configurable command topic and publishes replies
// back to the sender's reply topic.
package mqtt

import (
	"context"
	"log/slog"

	"github.com/voxdeck/voxdeck/internal/transport"
)

// Transport implements transport.Transport over MQTT.
type Transport struct {
	broker string
	topic  string
}

// New creates a new MQTT transport.
func New(broker, topic string) *Transport {
	return &Transport{broker: broker, topic: topic}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "mqtt" }

// Listen connects to the MQTT broker and subscribes to the configured topic.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	// TODO: Implement MQTT client connection, subscription, and reply publish.
	// Recommended library: github.com/eclipse/paho.mqtt.golang
	_ = handler
	slog.Info("mqtt transport listening", "broker", t.broker, "topic", t.topic)
	<-ctx.Done()
	return nil
}

// Close disconnects from the MQTT broker.
func (t *Transport) Close() error {
	// TODO: Disconnect MQTT client.
	return nil
}
