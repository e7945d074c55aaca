package logsapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getmockd/mockwatchlogs/pkg/logstore"
)

// Wire error type tags.
const (
	TypeResourceNotFound      = "ResourceNotFoundException"
	TypeResourceAlreadyExists = "ResourceAlreadyExistsException"
	TypeServiceUnavailable    = "ServiceUnavailableException"
	TypeInvalidParameter      = "InvalidParameterException"
	TypeSerialization         = "SerializationException"
	TypeUnknownOperation      = "UnknownOperationException"
	TypeService               = "ServiceException"
)

// ServiceError is the wire error envelope.
type ServiceError struct {
	Type       string `json:"__type"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// MalformedRequestError is returned when a body does not decode into the
// action's input shape.
type MalformedRequestError struct {
	Action Action
	Err    error
}

func (e *MalformedRequestError) Error() string {
	return fmt.Sprintf("malformed %s request: %v", e.Action, e.Err)
}

func (e *MalformedRequestError) Unwrap() error { return e.Err }

// UnrecognizedActionError is returned for an action identifier outside the
// supported set.
type UnrecognizedActionError struct {
	Target string
}

func (e *UnrecognizedActionError) Error() string {
	if e.Target == "" {
		return "missing " + TargetHeader + " header"
	}
	return fmt.Sprintf("unrecognized action %q", e.Target)
}

// ServiceUnavailableError is produced only by the unavailable-group test hook.
type ServiceUnavailableError struct {
	Group string
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("service unavailable for log group %q", e.Group)
}

// internalError wraps a recovered handler panic.
type internalError struct {
	value any
}

func (e *internalError) Error() string {
	return fmt.Sprintf("internal failure: %v", e.value)
}

// Mapper converts errors into wire envelopes.
type Mapper struct {
	// AlreadyExistsStatus is the status for ResourceAlreadyExistsException.
	// The emulator has always answered 404 here, while the real service uses
	// 400; zero keeps 404.
	AlreadyExistsStatus int
}

// Map converts err into a ServiceError. A *ServiceError passes through
// unchanged; unknown errors become ServiceException with status 500.
func (m Mapper) Map(err error) *ServiceError {
	var (
		se *ServiceError
		nf *logstore.NotFoundError
		ae *logstore.AlreadyExistsError
		ip *logstore.InvalidParameterError
		mr *MalformedRequestError
		ua *UnrecognizedActionError
		su *ServiceUnavailableError
		ie *internalError
	)

	switch {
	case errors.As(err, &se):
		return se
	case errors.As(err, &nf):
		return &ServiceError{
			Type:       TypeResourceNotFound,
			Message:    notFoundMessage(nf.Resource),
			StatusCode: http.StatusNotFound,
		}
	case errors.As(err, &ae):
		status := m.AlreadyExistsStatus
		if status == 0 {
			status = http.StatusNotFound
		}
		return &ServiceError{
			Type:       TypeResourceAlreadyExists,
			Message:    fmt.Sprintf("The specified %s already exists", ae.Resource),
			StatusCode: status,
		}
	case errors.As(err, &ip):
		return &ServiceError{
			Type:       TypeInvalidParameter,
			Message:    ip.Error(),
			StatusCode: http.StatusBadRequest,
		}
	case errors.As(err, &mr):
		return &ServiceError{
			Type:       TypeSerialization,
			Message:    mr.Error(),
			StatusCode: http.StatusBadRequest,
		}
	case errors.As(err, &ua):
		return &ServiceError{
			Type:       TypeUnknownOperation,
			Message:    ua.Error(),
			StatusCode: http.StatusBadRequest,
		}
	case errors.As(err, &su):
		return &ServiceError{
			Type:       TypeServiceUnavailable,
			Message:    "The service cannot complete the request.",
			StatusCode: http.StatusServiceUnavailable,
		}
	case errors.As(err, &ie):
		return &ServiceError{
			Type:       TypeService,
			Message:    "The service encountered an internal error.",
			StatusCode: http.StatusInternalServerError,
		}
	default:
		return &ServiceError{
			Type:       TypeService,
			Message:    err.Error(),
			StatusCode: http.StatusInternalServerError,
		}
	}
}

func notFoundMessage(r logstore.Resource) string {
	if r == logstore.ResourceStream {
		return "Stream not found"
	}
	return "Group not found"
}
