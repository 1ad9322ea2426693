// Package config handles loading and validating the voxdeck configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/voxdeck/voxdeck/internal/element"
)

// Config is the root configuration for voxdeck.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Transports   TransportsConfig   `mapstructure:"transports"`
	Presentation PresentationConfig `mapstructure:"presentation"`
	Google       GoogleConfig       `mapstructure:"google"`
	Speech       SpeechConfig       `mapstructure:"speech"`
	TTS          TTSConfig          `mapstructure:"tts"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig holds the health check server settings.
type ServerConfig struct {
	HealthPort int `mapstructure:"health_port"`
}

// TransportsConfig holds the configuration for each transport layer.
type TransportsConfig struct {
	GRPC GRPCConfig `mapstructure:"grpc"`
	HTTP HTTPConfig `mapstructure:"http"`
	MQTT MQTTConfig `mapstructure:"mqtt"`
}

// GRPCConfig configures the gRPC transport.
type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// MQTTConfig configures the MQTT transport.
type MQTTConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Broker  string `mapstructure:"broker"`
	Topic   string `mapstructure:"topic"`
}

// PresentationConfig identifies the target document and its canvas.
type PresentationConfig struct {
	// ID is the presentation identifier, usually "${PRESENTATION_ID}".
	ID string `mapstructure:"id"`

	// SlideWidth and SlideHeight are the canvas dimensions in EMU.
	// Defaults cover the standard 16:9 canvas.
	SlideWidth  float64 `mapstructure:"slide_width"`
	SlideHeight float64 `mapstructure:"slide_height"`
}

// GoogleConfig holds Google Slides API credentials.
type GoogleConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	TokenFile       string `mapstructure:"token_file"`

	// Endpoint overrides the Slides API base URL (used in tests).
	Endpoint string `mapstructure:"endpoint"`
}

// SpeechConfig holds transcription and microphone settings for the voice loop.
type SpeechConfig struct {
	OpenAIAPIKey       string `mapstructure:"openai_api_key"`
	TranscriptionModel string `mapstructure:"transcription_model"`

	// RecordCommand is the external capture program (arecord, sox, rec).
	RecordCommand string `mapstructure:"record_command"`
	RecordSeconds int    `mapstructure:"record_seconds"`
	SampleRate    int    `mapstructure:"sample_rate"`
}

// TTSConfig selects and configures spoken replies for the voice loop.
type TTSConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	Backend string      `mapstructure:"backend"` // "piper"
	Piper   PiperConfig `mapstructure:"piper"`
}

// PiperConfig holds Piper TTS settings (Wyoming protocol endpoint).
type PiperConfig struct {
	Endpoint string `mapstructure:"endpoint"` // Wyoming TCP endpoint (host:port)
	Voice    string `mapstructure:"voice"`    // Piper voice model name
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./voxdeck.yaml, ./configs/voxdeck.yaml, /etc/voxdeck/voxdeck.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("transports.grpc.enabled", false)
	v.SetDefault("transports.grpc.port", 50051)
	v.SetDefault("transports.http.enabled", true)
	v.SetDefault("transports.http.port", 8080)
	v.SetDefault("transports.mqtt.enabled", false)
	v.SetDefault("transports.mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("transports.mqtt.topic", "voxdeck/#")
	v.SetDefault("presentation.id", "")
	v.SetDefault("presentation.slide_width", element.DefaultSlideWidth)
	v.SetDefault("presentation.slide_height", element.DefaultSlideHeight)
	v.SetDefault("google.credentials_file", "credentials.json")
	v.SetDefault("google.token_file", "token.json")
	v.SetDefault("speech.transcription_model", "whisper-1")
	v.SetDefault("speech.record_command", "arecord")
	v.SetDefault("speech.record_seconds", 5)
	v.SetDefault("speech.sample_rate", 16000)
	v.SetDefault("tts.enabled", false)
	v.SetDefault("tts.backend", "piper")
	v.SetDefault("tts.piper.endpoint", "localhost:10200")
	v.SetDefault("tts.piper.voice", "en_US-lessac-medium")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("voxdeck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/voxdeck")
	}

	// Environment variables: VOXDECK_PRESENTATION_ID, VOXDECK_LOGGING_LEVEL, etc.
	v.SetEnvPrefix("VOXDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional; env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${OPENAI_API_KEY}")
	cfg.Presentation.ID = resolveEnvRef(cfg.Presentation.ID)
	cfg.Speech.OpenAIAPIKey = resolveEnvRef(cfg.Speech.OpenAIAPIKey)

	return &cfg, nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
