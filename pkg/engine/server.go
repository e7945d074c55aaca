package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/getmockd/mockwatchlogs/pkg/config"
	"github.com/getmockd/mockwatchlogs/pkg/logging"
	"github.com/getmockd/mockwatchlogs/pkg/logsapi"
	"github.com/getmockd/mockwatchlogs/pkg/logstore"
	"github.com/getmockd/mockwatchlogs/pkg/metrics"
	"github.com/getmockd/mockwatchlogs/pkg/requestlog"
)

const shutdownTimeout = 5 * time.Second

// Server is the emulator engine.
type Server struct {
	cfg        *config.ServerConfiguration
	guard      *logstore.Guard
	dispatcher *logsapi.Dispatcher
	requests   *requestlog.MemoryStore // nil when the request log is disabled
	async      *requestlog.AsyncLogger
	handler    http.Handler
	log        *slog.Logger
	clock      func() time.Time

	mu         sync.RWMutex
	httpServer *http.Server
	listener   net.Listener
	running    bool
	startTime  time.Time
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock sets the clock used for creation and ingestion times.
func WithClock(now func() time.Time) ServerOption {
	return func(s *Server) {
		if now != nil {
			s.clock = now
		}
	}
}

// NewServer creates a new Server with the given configuration. A nil
// configuration uses the defaults. The store is seeded immediately; a seed
// that cannot be applied is an error, as it is for Reset.
func NewServer(cfg *config.ServerConfiguration, opts ...ServerOption) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultServerConfiguration()
	}

	s := &Server{
		cfg:   cfg,
		log:   logging.Nop(),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "engine")

	s.guard = logstore.NewGuard(logstore.New(logstore.WithClock(s.clock)))
	if err := s.seed(); err != nil {
		return nil, fmt.Errorf("seed store: %w", err)
	}

	dispatcherOpts := []logsapi.Option{
		logsapi.WithLogger(s.log.With("subcomponent", "dispatcher")),
		logsapi.WithRegion(cfg.Region),
		logsapi.WithAccountID(cfg.AccountID),
		logsapi.WithAlreadyExistsStatus(cfg.Compat.AlreadyExistsStatus),
		logsapi.WithUnavailableGroup(cfg.TestHooks.ServiceUnavailableGroup),
	}
	if cfg.RequestLog.MaxEntries > 0 {
		s.requests = requestlog.NewMemoryStore(cfg.RequestLog.MaxEntries)
		s.async = requestlog.NewAsync(s.requests, cfg.RequestLog.Buffer, s.log.With("subcomponent", "requestlog"))
		dispatcherOpts = append(dispatcherOpts, logsapi.WithRequestLogger(s.async))
	}
	s.dispatcher = logsapi.NewDispatcher(s.guard, dispatcherOpts...)

	if cfg.Metrics.Enabled {
		metrics.Init()
		metrics.SetStoreStats(s.Stats)
	}

	s.handler = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/{$}", s.dispatcher)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("POST /_reset", s.handleReset)
	mux.HandleFunc("GET /_requests", s.handleListRequests)
	mux.HandleFunc("DELETE /_requests", s.handleClearRequests)
	if s.cfg.Metrics.Enabled {
		mux.Handle("GET "+s.cfg.Metrics.Path, metrics.Handler())
	}
	return mux
}

func (s *Server) seed() error {
	groups := s.cfg.SeedGroups()
	if len(groups) == 0 {
		return nil
	}
	return s.guard.Do(func(st *logstore.Store) error {
		return st.Seed(groups)
	})
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start binds the listener and serves in the background. A configured port of
// 0 picks a free port; Port reports the result.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server is already running")
	}

	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr(), err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.cfg.ReadTimeoutDuration(),
		ReadTimeout:       s.cfg.ReadTimeoutDuration(),
		WriteTimeout:      s.cfg.WriteTimeoutDuration(),
		ErrorLog:          slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}

	srv := s.httpServer
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("HTTP server error", "error", err)
		}
	}()

	s.running = true
	s.startTime = s.clock()
	s.log.Info("engine started", "addr", ln.Addr().String())
	return nil
}

// Stop gracefully shuts down the server and flushes the request log.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	}
	if s.async != nil {
		s.async.Sync()
	}

	s.running = false
	s.listener = nil
	s.log.Info("engine stopped")
	return errors.Join(errs...)
}

// Close stops the server and releases the request log worker. The server
// cannot be restarted afterwards.
func (s *Server) Close() error {
	err := s.Stop()
	if s.async != nil {
		s.async.Close()
	}
	return err
}

// IsRunning reports whether the server is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Port returns the bound port, or the configured port before Start.
func (s *Server) Port() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
			return addr.Port
		}
	}
	return s.cfg.Port
}

// URL returns the base URL clients should use.
func (s *Server) URL() string {
	host := s.cfg.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(s.Port()))
}

// Uptime returns the server uptime in seconds.
func (s *Server) Uptime() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return 0
	}
	return int(s.clock().Sub(s.startTime).Seconds())
}

// Config returns the server configuration.
func (s *Server) Config() *config.ServerConfiguration {
	return s.cfg
}

// Guard returns the store guard, for inspecting state in tests.
func (s *Server) Guard() *logstore.Guard {
	return s.guard
}

// Stats returns the store's occupancy.
func (s *Server) Stats() logstore.Stats {
	var stats logstore.Stats
	_ = s.guard.Do(func(st *logstore.Store) error {
		stats = st.Stats()
		return nil
	})
	return stats
}

// Reset drops every group and re-applies the configured seed.
func (s *Server) Reset() error {
	err := s.guard.Do(func(st *logstore.Store) error {
		st.Reset()
		if groups := s.cfg.SeedGroups(); len(groups) > 0 {
			return st.Seed(groups)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	s.log.Info("store reset")
	return nil
}

// RequestLogs returns recorded requests newest first. Pending entries are
// flushed first, so requests that have completed are always visible.
func (s *Server) RequestLogs(filter *requestlog.Filter) []*requestlog.Entry {
	if s.requests == nil {
		return []*requestlog.Entry{}
	}
	s.async.Sync()
	return s.requests.List(filter)
}

// ClearRequestLogs removes all recorded requests.
func (s *Server) ClearRequestLogs() {
	if s.requests == nil {
		return
	}
	s.async.Sync()
	s.requests.Clear()
}

// RequestLogCount returns the number of recorded requests.
func (s *Server) RequestLogCount() int {
	if s.requests == nil {
		return 0
	}
	s.async.Sync()
	return s.requests.Count()
}
