package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/getmockd/mockwatchlogs/pkg/logging"
	"github.com/getmockd/mockwatchlogs/pkg/logstore"
)

// Defaults.
const (
	DefaultHost                    = "0.0.0.0"
	DefaultPort                    = 6000
	DefaultTimeoutSeconds          = 30
	DefaultMetricsPath             = "/metrics"
	DefaultRequestLogEntries       = 1000
	DefaultRequestLogBuffer        = 256
	DefaultServiceUnavailableGroup = "ServiceUnavailable"
)

// ServerConfiguration defines the emulator's runtime settings.
type ServerConfiguration struct {
	// Host is the interface to listen on.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	// Port is the listen port; 0 picks a free port.
	Port int `json:"port" yaml:"port"`
	// ReadTimeout is the HTTP read timeout in seconds.
	ReadTimeout int `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`
	// WriteTimeout is the HTTP write timeout in seconds.
	WriteTimeout int `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`

	// Region and AccountID appear in generated ARNs.
	Region    string `json:"region,omitempty" yaml:"region,omitempty"`
	AccountID string `json:"accountId,omitempty" yaml:"accountId,omitempty"`

	Logging    LoggingConfig    `json:"logging" yaml:"logging"`
	Metrics    MetricsConfig    `json:"metrics" yaml:"metrics"`
	RequestLog RequestLogConfig `json:"requestLog" yaml:"requestLog"`
	Compat     CompatConfig     `json:"compat" yaml:"compat"`
	TestHooks  TestHooksConfig  `json:"testHooks" yaml:"testHooks"`

	// Seed preloads groups, streams and events at startup and after a reset.
	Seed []SeedGroup `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// LoggingConfig configures the operational logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	// File, when set, also writes JSON logs to a rotating file.
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB  int    `json:"maxSizeMB,omitempty" yaml:"maxSizeMB,omitempty"`
	MaxBackups int    `json:"maxBackups,omitempty" yaml:"maxBackups,omitempty"`
	MaxAgeDays int    `json:"maxAgeDays,omitempty" yaml:"maxAgeDays,omitempty"`
	Compress   bool   `json:"compress,omitempty" yaml:"compress,omitempty"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
}

// RequestLogConfig configures the in-memory request history.
type RequestLogConfig struct {
	// MaxEntries bounds the history; 0 disables it.
	MaxEntries int `json:"maxEntries" yaml:"maxEntries"`
	// Buffer is the async delivery queue length.
	Buffer int `json:"buffer,omitempty" yaml:"buffer,omitempty"`
}

// CompatConfig holds wire-compatibility switches.
type CompatConfig struct {
	// AlreadyExistsStatus is the HTTP status of ResourceAlreadyExistsException.
	// The emulator answers 404 by default; the real service answers 400.
	AlreadyExistsStatus int `json:"alreadyExistsStatus,omitempty" yaml:"alreadyExistsStatus,omitempty"`
}

// TestHooksConfig configures failure injection for client tests.
type TestHooksConfig struct {
	// ServiceUnavailableGroup makes every request naming this group fail with
	// ServiceUnavailableException. Empty disables the hook.
	ServiceUnavailableGroup string `json:"serviceUnavailableGroup" yaml:"serviceUnavailableGroup"`
}

// SeedGroup is a log group to preload.
type SeedGroup struct {
	Name    string       `json:"name" yaml:"name"`
	Streams []SeedStream `json:"streams,omitempty" yaml:"streams,omitempty"`
}

// SeedStream is a log stream to preload.
type SeedStream struct {
	Name   string      `json:"name" yaml:"name"`
	Events []SeedEvent `json:"events,omitempty" yaml:"events,omitempty"`
}

// SeedEvent is a log event to preload.
type SeedEvent struct {
	Message   string `json:"message" yaml:"message"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
}

// DefaultServerConfiguration returns a ServerConfiguration with sensible defaults.
func DefaultServerConfiguration() *ServerConfiguration {
	return &ServerConfiguration{
		Host:         DefaultHost,
		Port:         DefaultPort,
		ReadTimeout:  DefaultTimeoutSeconds,
		WriteTimeout: DefaultTimeoutSeconds,
		Logging: LoggingConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
		RequestLog: RequestLogConfig{
			MaxEntries: DefaultRequestLogEntries,
			Buffer:     DefaultRequestLogBuffer,
		},
		TestHooks: TestHooksConfig{
			ServiceUnavailableGroup: DefaultServiceUnavailableGroup,
		},
	}
}

// Addr returns the listen address.
func (s *ServerConfiguration) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ReadTimeoutDuration returns the read timeout as a duration.
func (s *ServerConfiguration) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns the write timeout as a duration.
func (s *ServerConfiguration) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// LoggerConfig converts the logging section into a logging.Config.
func (s *ServerConfiguration) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(s.Logging.Level)
	cfg.Format = logging.ParseFormat(s.Logging.Format)
	cfg.File = logging.FileConfig{
		Path:       s.Logging.File,
		MaxSizeMB:  s.Logging.MaxSizeMB,
		MaxBackups: s.Logging.MaxBackups,
		MaxAgeDays: s.Logging.MaxAgeDays,
		Compress:   s.Logging.Compress,
	}
	return cfg
}

// SeedGroups converts the seed section into store seed data.
func (s *ServerConfiguration) SeedGroups() []logstore.SeedGroup {
	if len(s.Seed) == 0 {
		return nil
	}
	groups := make([]logstore.SeedGroup, 0, len(s.Seed))
	for _, g := range s.Seed {
		sg := logstore.SeedGroup{Name: g.Name}
		for _, st := range g.Streams {
			ss := logstore.SeedStream{Name: st.Name}
			for _, e := range st.Events {
				ss.Events = append(ss.Events, logstore.LogEvent{Message: e.Message, Timestamp: e.Timestamp})
			}
			sg.Streams = append(sg.Streams, ss)
		}
		groups = append(groups, sg)
	}
	return groups
}

// String summarizes the listening configuration.
func (s *ServerConfiguration) String() string {
	return fmt.Sprintf("%s (metrics=%t, requestLog=%d)", s.Addr(), s.Metrics.Enabled, s.RequestLog.MaxEntries)
}
