package logsapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/getmockd/mockwatchlogs/pkg/logging"
	"github.com/getmockd/mockwatchlogs/pkg/logstore"
	"github.com/getmockd/mockwatchlogs/pkg/requestlog"
)

// Dispatcher routes a request to its handler by action identifier, runs the
// handler with exclusive access to the store, and encodes the outcome.
type Dispatcher struct {
	guard            *logstore.Guard
	handlers         Handlers
	mapper           Mapper
	unavailableGroup string
	requestLogger    requestlog.Logger
	log              *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// WithRegion sets the region used in ARNs.
func WithRegion(region string) Option {
	return func(d *Dispatcher) { d.handlers.Region = region }
}

// WithAccountID sets the account used in ARNs.
func WithAccountID(account string) Option {
	return func(d *Dispatcher) { d.handlers.AccountID = account }
}

// WithAlreadyExistsStatus overrides the status for ResourceAlreadyExistsException.
func WithAlreadyExistsStatus(status int) Option {
	return func(d *Dispatcher) { d.mapper.AlreadyExistsStatus = status }
}

// WithUnavailableGroup installs a test-only failure hook: any request naming
// this log group fails with ServiceUnavailableException before the store is
// consulted. An empty name disables the hook. It is not part of the emulated
// service's behavior and exists so clients can exercise their handling of
// that error.
func WithUnavailableGroup(name string) Option {
	return func(d *Dispatcher) { d.unavailableGroup = name }
}

// WithRequestLogger sets the sink that receives one entry per request.
func WithRequestLogger(l requestlog.Logger) Option {
	return func(d *Dispatcher) { d.requestLogger = l }
}

// NewDispatcher creates a Dispatcher over guard.
func NewDispatcher(guard *logstore.Guard, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		guard: guard,
		log:   logging.Nop(),
	}
	if d.guard == nil {
		d.guard = logstore.NewGuard(nil)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Result is the outcome of a dispatched request.
type Result struct {
	Action     Action
	StatusCode int
	Body       []byte
	// Err is set when the request failed; Body then holds its encoding.
	Err *ServiceError
}

// Dispatch handles one request. It never panics: decode failures, unknown
// actions and handler panics all become error results.
func (d *Dispatcher) Dispatch(target string, body []byte) *Result {
	action := ParseAction(target)

	var (
		out any
		err error
	)
	switch action {
	case ActionCreateLogGroup:
		out, err = invoke(d, action, body, d.handlers.CreateLogGroup)
	case ActionCreateLogStream:
		out, err = invoke(d, action, body, d.handlers.CreateLogStream)
	case ActionDeleteLogGroup:
		out, err = invoke(d, action, body, d.handlers.DeleteLogGroup)
	case ActionDeleteLogStream:
		out, err = invoke(d, action, body, d.handlers.DeleteLogStream)
	case ActionDescribeLogGroups:
		out, err = invoke(d, action, body, d.handlers.DescribeLogGroups)
	case ActionDescribeLogStreams:
		out, err = invoke(d, action, body, d.handlers.DescribeLogStreams)
	case ActionGetLogEvents:
		out, err = invoke(d, action, body, d.handlers.GetLogEvents)
	case ActionPutLogEvents:
		out, err = invoke(d, action, body, d.handlers.PutLogEvents)
	default:
		err = &UnrecognizedActionError{Target: target}
	}

	if err != nil {
		return d.failure(action, err)
	}

	encoded, err := json.Marshal(out)
	if err != nil {
		return d.failure(action, err)
	}
	return &Result{Action: action, StatusCode: http.StatusOK, Body: encoded}
}

func (d *Dispatcher) failure(action Action, err error) *Result {
	se := d.mapper.Map(err)
	if se.StatusCode >= 500 {
		d.log.Warn("request failed", "action", action.String(), "type", se.Type, "error", err)
	} else {
		d.log.Debug("request rejected", "action", action.String(), "type", se.Type, "error", err)
	}
	encoded, _ := json.Marshal(se)
	return &Result{Action: action, StatusCode: se.StatusCode, Body: encoded, Err: se}
}

// groupNamer is implemented by inputs that name a log group.
type groupNamer interface {
	logGroupName() string
}

func (in *DescribeLogStreamsInput) logGroupName() string { return in.LogGroupName }
func (in *CreateLogGroupInput) logGroupName() string     { return in.LogGroupName }
func (in *CreateLogStreamInput) logGroupName() string    { return in.LogGroupName }
func (in *DeleteLogGroupInput) logGroupName() string     { return in.LogGroupName }
func (in *DeleteLogStreamInput) logGroupName() string    { return in.LogGroupName }
func (in *PutLogEventsInput) logGroupName() string       { return in.LogGroupName }
func (in *GetLogEventsInput) logGroupName() string       { return in.LogGroupName }

func (in *DescribeLogGroupsInput) logGroupName() string {
	if in.LogGroupNamePrefix == nil {
		return ""
	}
	return *in.LogGroupNamePrefix
}

// invoke decodes the body into In, applies the test hook and runs fn under the
// store guard. The store is never touched when decoding fails.
func invoke[In, Out any](d *Dispatcher, action Action, body []byte, fn func(*logstore.Store, *In) (*Out, error)) (any, error) {
	in := new(In)
	if err := decode(body, in); err != nil {
		return nil, &MalformedRequestError{Action: action, Err: err}
	}

	if d.unavailableGroup != "" {
		if gn, ok := any(in).(groupNamer); ok && gn.logGroupName() == d.unavailableGroup {
			return nil, &ServiceUnavailableError{Group: d.unavailableGroup}
		}
	}

	var out *Out
	err := d.guard.Do(func(s *logstore.Store) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &internalError{value: r}
			}
		}()
		out, err = fn(s, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// decode parses a request body. An empty body is treated as an empty object.
func decode(body []byte, v any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}
	return json.Unmarshal(body, v)
}
