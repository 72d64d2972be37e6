package logger

import (
	"errors"

	"go.uber.org/zap/zapcore"

	"github.com/yanet-platform/shutdown/internal/utils/coalescer"
)

// Config represents the logger configuration.
type Config struct {
	// Name is attached to every entry as the logger name.
	Name string `yaml:"name"`
	// Encoding is the log encoding.
	// Possible values: json, console. Defaults to json.
	Encoding string `yaml:"encoding"`
	// Level is the log level.
	Level zapcore.Level `yaml:"level"`
	// File additionally writes logs into a rotated file.
	File *FileConfig `yaml:"file"`
	// OTEL is the OTEL exporter configuration.
	OTEL *OTELConfig `yaml:"otel_exporter"`
}

// ErrEmptyFilePath is returned when a log file section sets no path.
var ErrEmptyFilePath = errors.New("log file path is empty")

// FileConfig describes a log file rotated by size.
type FileConfig struct {
	// Path of the log file. Required.
	Path string `yaml:"path"`
	// MaxSizeMB is the size in megabytes at which the file is rotated.
	MaxSizeMB int `yaml:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `yaml:"max_backups"`
	// Compress enables gzip compression of rotated files.
	Compress bool `yaml:"compress"`
}

func (m *Config) encoding() string {
	return coalescer.Coalesce(m.Encoding, "json")
}

func (m *FileConfig) validate() error {
	if m.Path == "" {
		return ErrEmptyFilePath
	}
	return nil
}
