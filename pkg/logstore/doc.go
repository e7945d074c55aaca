// Package logstore holds the in-memory state of the emulated log service.
//
// The data model is a three level hierarchy:
//
//   - Store: every log group, keyed by name
//   - Group: a named container of streams, kept in creation order
//   - Stream: an append-only sequence of LogEvent values
//
// Identity is by name only. Group names are unique within a Store and stream
// names are unique within their Group. Deleting a group removes its streams.
// Appending never reorders or drops previously stored events.
//
// # Thread Safety
//
// A Store is not safe for concurrent use. Wrap it in a Guard and run every
// operation inside Guard.Do, which holds a single mutex for the whole store:
//
//	guard := logstore.NewGuard(logstore.New())
//
//	err := guard.Do(func(s *logstore.Store) error {
//	    if err := s.InsertGroup("app"); err != nil {
//	        return err
//	    }
//	    return s.InsertStream("app", "web-1")
//	})
//
// Operations never block or perform I/O, so the lock is only held for the
// duration of in-memory work.
package logstore
