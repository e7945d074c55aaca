package config

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/getmockd/mockwatchlogs/pkg/logstore"
)

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var validLogFormats = map[string]bool{
	"text": true,
	"json": true,
}

// ValidationError reports an invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks if the ServerConfiguration is valid.
func (s *ServerConfiguration) Validate() error {
	if s.Port < 0 || s.Port >= 65536 {
		return &ValidationError{Field: "port", Message: "port must be between 0 and 65535"}
	}

	if s.ReadTimeout < 0 {
		return &ValidationError{Field: "readTimeout", Message: "readTimeout must be >= 0"}
	}
	if s.WriteTimeout < 0 {
		return &ValidationError{Field: "writeTimeout", Message: "writeTimeout must be >= 0"}
	}

	if s.Logging.Level != "" && !validLogLevels[strings.ToLower(s.Logging.Level)] {
		return &ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown level %q, use debug, info, warn or error", s.Logging.Level),
		}
	}
	if s.Logging.Format != "" && !validLogFormats[strings.ToLower(s.Logging.Format)] {
		return &ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format %q, use text or json", s.Logging.Format),
		}
	}
	if err := validateParentDirExists(s.Logging.File, "logging.file"); err != nil {
		return err
	}

	if s.Metrics.Enabled && !strings.HasPrefix(s.Metrics.Path, "/") {
		return &ValidationError{Field: "metrics.path", Message: "metrics path must start with /"}
	}

	if s.RequestLog.MaxEntries < 0 {
		return &ValidationError{Field: "requestLog.maxEntries", Message: "maxEntries must be >= 0"}
	}
	if s.RequestLog.Buffer < 0 {
		return &ValidationError{Field: "requestLog.buffer", Message: "buffer must be >= 0"}
	}

	if st := s.Compat.AlreadyExistsStatus; st != 0 && (st < 400 || st > 599 || http.StatusText(st) == "") {
		return &ValidationError{
			Field:   "compat.alreadyExistsStatus",
			Message: fmt.Sprintf("%d is not an HTTP error status", st),
		}
	}

	return s.validateSeed()
}

func (s *ServerConfiguration) validateSeed() error {
	groups := make(map[string]bool, len(s.Seed))
	for i, g := range s.Seed {
		field := fmt.Sprintf("seed[%d]", i)
		if err := logstore.ValidateGroupName(g.Name); err != nil {
			return &ValidationError{Field: field + ".name", Message: err.Error()}
		}
		if groups[g.Name] {
			return &ValidationError{Field: field + ".name", Message: fmt.Sprintf("duplicate log group %q", g.Name)}
		}
		groups[g.Name] = true

		streams := make(map[string]bool, len(g.Streams))
		for j, st := range g.Streams {
			sf := fmt.Sprintf("%s.streams[%d].name", field, j)
			if err := logstore.ValidateStreamName(st.Name); err != nil {
				return &ValidationError{Field: sf, Message: err.Error()}
			}
			if streams[st.Name] {
				return &ValidationError{Field: sf, Message: fmt.Sprintf("duplicate log stream %q", st.Name)}
			}
			streams[st.Name] = true
		}
	}
	return nil
}

// validateParentDirExists checks that the directory holding path exists.
// Returns nil if the path is empty.
func validateParentDirExists(path, fieldName string) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &ValidationError{Field: fieldName, Message: fmt.Sprintf("directory does not exist: %s", dir)}
		}
		return &ValidationError{Field: fieldName, Message: fmt.Sprintf("cannot access directory: %s", dir)}
	}
	if !info.IsDir() {
		return &ValidationError{Field: fieldName, Message: fmt.Sprintf("not a directory: %s", dir)}
	}
	return nil
}
