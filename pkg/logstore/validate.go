package logstore

import "strings"

const maxNameLength = 512

// ValidateGroupName checks a log group name: 1 to 512 characters from
// [A-Za-z0-9._/#-].
func ValidateGroupName(name string) error {
	if name == "" {
		return &InvalidParameterError{Field: "logGroupName", Message: "must not be empty"}
	}
	if len(name) > maxNameLength {
		return &InvalidParameterError{Field: "logGroupName", Message: "must be at most 512 characters"}
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '-', r == '_', r == '/', r == '#':
		default:
			return &InvalidParameterError{Field: "logGroupName", Message: "contains an invalid character " + string(r)}
		}
	}
	return nil
}

// ValidateStreamName checks a log stream name: 1 to 512 characters without
// ':' or '*'.
func ValidateStreamName(name string) error {
	if name == "" {
		return &InvalidParameterError{Field: "logStreamName", Message: "must not be empty"}
	}
	if len(name) > maxNameLength {
		return &InvalidParameterError{Field: "logStreamName", Message: "must be at most 512 characters"}
	}
	if strings.ContainsAny(name, ":*") {
		return &InvalidParameterError{Field: "logStreamName", Message: "must not contain ':' or '*'"}
	}
	return nil
}
