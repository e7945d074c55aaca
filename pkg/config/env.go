package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables that override file and default settings.
const (
	EnvPort     = "MOCKWATCHLOGS_PORT"
	EnvLogLevel = "MOCKWATCHLOGS_LOG_LEVEL"
)

// ApplyEnv overrides settings from the environment. lookup is normally
// os.LookupEnv; nil uses it.
func (s *ServerConfiguration) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q: %w", EnvPort, v, err)
		}
		s.Port = port
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		s.Logging.Level = v
	}

	return s.Validate()
}
