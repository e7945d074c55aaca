package logstore

import (
	"errors"
	"fmt"
)

// Resource names the level of the hierarchy an error refers to.
type Resource string

// Resources.
const (
	ResourceGroup  Resource = "log group"
	ResourceStream Resource = "log stream"
)

// NotFoundError is returned when a group or stream does not exist.
// Resource is the most specific level that was missing.
type NotFoundError struct {
	Resource Resource
	Group    string
	Stream   string
}

func (e *NotFoundError) Error() string {
	if e.Resource == ResourceStream {
		return fmt.Sprintf("log stream %q not found in log group %q", e.Stream, e.Group)
	}
	return fmt.Sprintf("log group %q not found", e.Group)
}

// AlreadyExistsError is returned when a group or stream name is taken.
type AlreadyExistsError struct {
	Resource Resource
	Group    string
	Stream   string
}

func (e *AlreadyExistsError) Error() string {
	if e.Resource == ResourceStream {
		return fmt.Sprintf("log stream %q already exists in log group %q", e.Stream, e.Group)
	}
	return fmt.Sprintf("log group %q already exists", e.Group)
}

// InvalidParameterError is returned when an input value is missing or malformed.
type InvalidParameterError struct {
	Field   string
	Message string
}

func (e *InvalidParameterError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Message)
	}
	return e.Message
}

func groupNotFound(group string) error {
	return &NotFoundError{Resource: ResourceGroup, Group: group}
}

func streamNotFound(group, stream string) error {
	return &NotFoundError{Resource: ResourceStream, Group: group, Stream: stream}
}

// IsNotFound reports whether err is a NotFoundError at any level.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsGroupNotFound reports whether err reports a missing group.
func IsGroupNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) && nf.Resource == ResourceGroup
}

// IsStreamNotFound reports whether err reports a missing stream.
func IsStreamNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) && nf.Resource == ResourceStream
}

// IsAlreadyExists reports whether err is an AlreadyExistsError.
func IsAlreadyExists(err error) bool {
	var ae *AlreadyExistsError
	return errors.As(err, &ae)
}

// IsInvalidParameter reports whether err is an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var ip *InvalidParameterError
	return errors.As(err, &ip)
}
