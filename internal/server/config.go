package server

import "time"

const defaultStopTimeout = 5 * time.Second

// Config represents the configuration of the Server.
type Config struct {
	// Address for the HTTP server to listen on.
	HTTPAddr string `yaml:"http_addr"`
	// Address for the gRPC server to listen on. gRPC is disabled if empty.
	GRPCAddr string `yaml:"grpc_addr"`
	// MaxConnections limits simultaneous HTTP connections. Zero means no
	// limit.
	MaxConnections int `yaml:"max_connections"`
	// StopTimeout bounds the graceful stop of both servers.
	StopTimeout time.Duration `yaml:"stop_timeout"`
}

// Default sets the default values for the configuration.
func (m *Config) Default() {
	m.HTTPAddr = "[::1]:14080"
	m.GRPCAddr = "[::1]:14081"
	m.StopTimeout = defaultStopTimeout
}

// GetStopTimeout returns the stop timeout, or its default if unset.
func (m *Config) GetStopTimeout() time.Duration {
	if m.StopTimeout <= 0 {
		return defaultStopTimeout
	}
	return m.StopTimeout
}
