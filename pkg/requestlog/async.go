package requestlog

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/getmockd/mockwatchlogs/pkg/logging"
)

// DefaultBuffer is the channel size used when none is given.
const DefaultBuffer = 256

type item struct {
	entry *Entry
	ack   chan struct{}
}

// AsyncLogger forwards entries to another Logger on a background goroutine.
// Log never blocks: entries are dropped when the buffer is full or after
// Close. A panic in the wrapped Logger is recovered and logged.
type AsyncLogger struct {
	next Logger
	log  *slog.Logger

	mu      sync.RWMutex
	closed  bool
	ch      chan item
	done    chan struct{}
	dropped atomic.Uint64
}

var _ Logger = (*AsyncLogger)(nil)

// NewAsync starts an AsyncLogger in front of next.
func NewAsync(next Logger, buffer int, log *slog.Logger) *AsyncLogger {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	if log == nil {
		log = logging.Nop()
	}
	a := &AsyncLogger{
		next: next,
		log:  log,
		ch:   make(chan item, buffer),
		done: make(chan struct{}),
	}
	go a.run()
	return a
}

// Log enqueues entry without blocking.
func (a *AsyncLogger) Log(entry *Entry) {
	if entry == nil {
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		a.dropped.Add(1)
		return
	}
	select {
	case a.ch <- item{entry: entry}:
	default:
		a.dropped.Add(1)
	}
}

// Sync blocks until every entry enqueued before the call has been delivered.
func (a *AsyncLogger) Sync() {
	ack := make(chan struct{})
	a.mu.RLock()
	if a.closed {
		a.mu.RUnlock()
		return
	}
	a.ch <- item{ack: ack}
	a.mu.RUnlock()
	<-ack
}

// Dropped returns how many entries were discarded.
func (a *AsyncLogger) Dropped() uint64 {
	return a.dropped.Load()
}

// Close stops accepting entries and waits for the queue to drain.
func (a *AsyncLogger) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		<-a.done
		return
	}
	a.closed = true
	close(a.ch)
	a.mu.Unlock()
	<-a.done
}

func (a *AsyncLogger) run() {
	defer close(a.done)
	for it := range a.ch {
		if it.ack != nil {
			close(it.ack)
			continue
		}
		a.deliver(it.entry)
	}
}

func (a *AsyncLogger) deliver(entry *Entry) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("request log sink panicked", "panic", r)
		}
	}()
	if a.next != nil {
		a.next.Log(entry)
	}
}
