package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/yanet-platform/shutdown/internal/monitoring/logger"
	"github.com/yanet-platform/shutdown/internal/scheduler"
	"github.com/yanet-platform/shutdown/internal/server"
	"github.com/yanet-platform/shutdown/internal/utils/coalescer"
)

const (
	defaultWorkers         = 4
	defaultShutdownTimeout = 30 * time.Second
)

type Config struct {
	Logger *logger.Config `yaml:"logging"`
	Server *server.Config `yaml:"server"`

	Workers *WorkersConfig `yaml:"workers"`

	// ShutdownTimeout bounds how long the application waits for every task
	// to finish once shutdown begins.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// WorkersConfig describes the periodic workers run by the application.
type WorkersConfig struct {
	// Count is the number of workers. Defaults to 4.
	Count *int `yaml:"count"`
	// Scheduler configures how often each worker runs its job.
	Scheduler scheduler.Config `yaml:"scheduler"`
}

// GetCount returns the number of workers, or its default if unset.
func (m *WorkersConfig) GetCount() int {
	if m == nil || m.Count == nil {
		return defaultWorkers
	}
	return *m.Count
}

// GetScheduler returns the scheduler configuration of the workers.
func (m *WorkersConfig) GetScheduler() scheduler.Config {
	if m == nil {
		return scheduler.Config{}
	}
	return m.Scheduler
}

// GetShutdownTimeout returns the shutdown timeout, or its default if unset.
func (m Config) GetShutdownTimeout() time.Duration {
	if m.ShutdownTimeout <= 0 {
		return defaultShutdownTimeout
	}
	return m.ShutdownTimeout
}

func defaultServerConfig() *server.Config {
	config := &server.Config{}
	config.Default()
	return config
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err = yaml.UnmarshalStrict(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.Server = coalescer.Coalesce(config.Server, defaultServerConfig())

	return config, nil
}
