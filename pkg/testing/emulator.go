package testing

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/getmockd/mockwatchlogs/pkg/client"
	"github.com/getmockd/mockwatchlogs/pkg/config"
	"github.com/getmockd/mockwatchlogs/pkg/engine"
	"github.com/getmockd/mockwatchlogs/pkg/logsapi"
	"github.com/getmockd/mockwatchlogs/pkg/logstore"
	"github.com/getmockd/mockwatchlogs/pkg/requestlog"
)

// Emulator is a running emulator bound to one test.
type Emulator struct {
	t       testing.TB
	server  *engine.Server
	httpSrv *httptest.Server
	client  *client.Client
	once    sync.Once
}

// Option adjusts the emulator configuration before it starts.
type Option func(*config.ServerConfiguration)

// WithSeed preloads groups, streams and events.
func WithSeed(groups ...config.SeedGroup) Option {
	return func(c *config.ServerConfiguration) {
		c.Seed = append(c.Seed, groups...)
	}
}

// WithAlreadyExistsStatus sets the status of ResourceAlreadyExistsException.
func WithAlreadyExistsStatus(status int) Option {
	return func(c *config.ServerConfiguration) {
		c.Compat.AlreadyExistsStatus = status
	}
}

// WithUnavailableGroup sets the group name that triggers
// ServiceUnavailableException. Empty disables the hook.
func WithUnavailableGroup(name string) Option {
	return func(c *config.ServerConfiguration) {
		c.TestHooks.ServiceUnavailableGroup = name
	}
}

// WithConfig applies an arbitrary configuration change.
func WithConfig(fn func(*config.ServerConfiguration)) Option {
	return fn
}

// New starts an emulator for the duration of t.
func New(t testing.TB, opts ...Option) *Emulator {
	t.Helper()

	cfg := config.DefaultServerConfiguration()
	cfg.Port = 0
	cfg.Metrics.Enabled = false
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid emulator configuration: %v", err)
	}

	srv, err := engine.NewServer(cfg)
	if err != nil {
		t.Fatalf("start emulator: %v", err)
	}

	e := &Emulator{
		t:      t,
		server: srv,
	}
	e.httpSrv = httptest.NewServer(e.server.Handler())
	e.client = client.New(e.httpSrv.URL)
	t.Cleanup(e.Stop)
	return e
}

// URL returns the endpoint clients should be configured with.
func (e *Emulator) URL() string {
	return e.httpSrv.URL
}

// Client returns a client bound to the emulator.
func (e *Emulator) Client() *client.Client {
	return e.client
}

// Server returns the underlying engine.
func (e *Emulator) Server() *engine.Server {
	return e.server
}

// Stop shuts the emulator down. It is called automatically at cleanup.
func (e *Emulator) Stop() {
	e.once.Do(func() {
		e.httpSrv.Close()
		_ = e.server.Close()
	})
}

// Reset restores the store to its seeded contents.
func (e *Emulator) Reset() {
	e.t.Helper()
	if err := e.server.Reset(); err != nil {
		e.t.Fatalf("reset emulator: %v", err)
	}
}

// CreateGroup creates a log group through the API.
func (e *Emulator) CreateGroup(name string) {
	e.t.Helper()
	if err := e.client.CreateLogGroup(context.Background(), &logsapi.CreateLogGroupInput{LogGroupName: name}); err != nil {
		e.t.Fatalf("create log group %q: %v", name, err)
	}
}

// CreateStream creates a log stream through the API.
func (e *Emulator) CreateStream(group, stream string) {
	e.t.Helper()
	in := &logsapi.CreateLogStreamInput{LogGroupName: group, LogStreamName: stream}
	if err := e.client.CreateLogStream(context.Background(), in); err != nil {
		e.t.Fatalf("create log stream %q/%q: %v", group, stream, err)
	}
}

// PutEvents appends events through the API.
func (e *Emulator) PutEvents(group, stream string, events ...logsapi.InputLogEvent) {
	e.t.Helper()
	in := &logsapi.PutLogEventsInput{LogGroupName: group, LogStreamName: stream, LogEvents: events}
	if events == nil {
		in.LogEvents = []logsapi.InputLogEvent{}
	}
	if _, err := e.client.PutLogEvents(context.Background(), in); err != nil {
		e.t.Fatalf("put log events %q/%q: %v", group, stream, err)
	}
}

// Events returns the stored events of a stream, read directly from the store.
func (e *Emulator) Events(group, stream string) []logstore.LogEvent {
	e.t.Helper()
	var events []logstore.LogEvent
	err := e.server.Guard().Do(func(s *logstore.Store) error {
		var err error
		events, err = s.ReadLogs(group, stream, logstore.Query{})
		return err
	})
	if err != nil {
		e.t.Fatalf("read events %q/%q: %v", group, stream, err)
	}
	return events
}

// HasGroup reports whether a log group exists.
func (e *Emulator) HasGroup(name string) bool {
	var ok bool
	_ = e.server.Guard().Do(func(s *logstore.Store) error {
		_, ok = s.Group(name)
		return nil
	})
	return ok
}

// Requests returns the recorded request history, newest first.
func (e *Emulator) Requests(filter *requestlog.Filter) []*requestlog.Entry {
	return e.server.RequestLogs(filter)
}
