// Package cli provides the command-line interface for mockwatchlogs.
//
// Commands:
//   - serve: run the emulator in the foreground until SIGINT/SIGTERM
//   - config: print the effective configuration as YAML
//   - version: show build information
//
// Settings are resolved in order: defaults, --config file, environment
// (MOCKWATCHLOGS_PORT, MOCKWATCHLOGS_LOG_LEVEL), then explicitly set flags.
package cli
