// Package logging provides structured logging configuration for the emulator.
//
// It wraps log/slog so every component logs the same way. A logger writes
// text or JSON to Output (stderr by default) and, when File.Path is set, also
// writes JSON to a size-rotated file.
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	    File:   logging.FileConfig{Path: "/var/log/mockwatchlogs.log", MaxSizeMB: 50},
//	})
//
//	logger.Info("server started", "port", 4566)
//
// Components accept a *slog.Logger in their constructor or through an option.
// If none is provided, they use logging.Nop().
package logging
