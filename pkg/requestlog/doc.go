// Package requestlog records one entry per emulated API call so tests and
// operators can inspect what a client actually sent.
//
// It is distinct from operational logging (log/slog). Entries carry the
// action, the log group and stream named in the body, the response status and
// the wire error type, if any.
//
// # Sinks
//
// Logger is the minimal sink interface the dispatcher writes to. MemoryStore
// keeps a bounded FIFO of entries and can be queried. AsyncLogger wraps any
// Logger so that Log never blocks the caller: entries go through a buffered
// channel, are dropped when it is full, and a panicking sink is recovered.
//
//	store := requestlog.NewMemoryStore(1000)
//	sink := requestlog.NewAsync(store, 256, logger)
//	defer sink.Close()
//
//	sink.Log(&requestlog.Entry{Action: "PutLogEvents", ResponseStatus: 200})
package requestlog
