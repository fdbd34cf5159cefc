package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel        string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort        string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	BoardSize       int           `yaml:"board-size" env:"BOARD_SIZE" env-default:"3"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	WebSocket       WebSocket     `yaml:"websocket"`
	Telemetry       Telemetry     `yaml:"telemetry"`
}

type WebSocket struct {
	ReadBufferSize  int           `yaml:"read-buffer-size" env:"WS_READ_BUFFER_SIZE" env-default:"1024"`
	WriteBufferSize int           `yaml:"write-buffer-size" env:"WS_WRITE_BUFFER_SIZE" env-default:"1024"`
	WriteWait       time.Duration `yaml:"write-wait" env:"WS_WRITE_WAIT" env-default:"10s"`
	MaxMessageSize  int64         `yaml:"max-message-size" env:"WS_MAX_MESSAGE_SIZE" env-default:"4096"`
}

type Telemetry struct {
	Enabled        bool          `yaml:"enabled" env:"TELEMETRY_ENABLED" env-default:"false"`
	ServiceName    string        `yaml:"service-name" env:"TELEMETRY_SERVICE_NAME" env-default:"tictactoe-history"`
	ServiceVersion string        `yaml:"service-version" env:"TELEMETRY_SERVICE_VERSION" env-default:"v0.1.0"`
	PrettyPrint    bool          `yaml:"pretty-print" env:"TELEMETRY_PRETTY_PRINT" env-default:"false"`
	MetricInterval time.Duration `yaml:"metric-interval" env:"TELEMETRY_METRIC_INTERVAL" env-default:"60s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the yaml file at path, then applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// HTTPAddr - listen address for the HTTP server.
func (that *Config) HTTPAddr() string {
	return ":" + that.HTTPPort
}
