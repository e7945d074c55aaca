package logstore

import "strings"

// LogEvent is a single timestamped message.
type LogEvent struct {
	// Message is the raw event text.
	Message string
	// Timestamp is when the event occurred, in milliseconds since the epoch.
	Timestamp int64
	// IngestionTime is set by the store when the event is appended.
	IngestionTime int64
}

// Stream is a named, append-only sequence of log events owned by a Group.
type Stream struct {
	// Name is unique within the owning group.
	Name string
	// CreationTime is in milliseconds since the epoch.
	CreationTime int64

	events        []LogEvent
	storedBytes   int64
	lastIngestion int64
	puts          uint64
}

// Len returns the number of stored events.
func (s *Stream) Len() int {
	return len(s.events)
}

// Events returns a copy of the stored events in insertion order.
func (s *Stream) Events() []LogEvent {
	out := make([]LogEvent, len(s.events))
	copy(out, s.events)
	return out
}

// StoredBytes is the sum of stored message lengths.
func (s *Stream) StoredBytes() int64 {
	return s.storedBytes
}

// LastIngestionTime returns the ingestion time of the latest append, or 0.
func (s *Stream) LastIngestionTime() int64 {
	return s.lastIngestion
}

// FirstEventTimestamp returns the smallest stored event timestamp.
func (s *Stream) FirstEventTimestamp() (int64, bool) {
	if len(s.events) == 0 {
		return 0, false
	}
	first := s.events[0].Timestamp
	for _, e := range s.events[1:] {
		if e.Timestamp < first {
			first = e.Timestamp
		}
	}
	return first, true
}

// LastEventTimestamp returns the largest stored event timestamp.
func (s *Stream) LastEventTimestamp() (int64, bool) {
	if len(s.events) == 0 {
		return 0, false
	}
	last := s.events[0].Timestamp
	for _, e := range s.events[1:] {
		if e.Timestamp > last {
			last = e.Timestamp
		}
	}
	return last, true
}

// SequenceToken returns the placeholder upload sequence token, matching the
// nextSequenceToken of the latest non-empty append. It is empty until then
// and is never checked against incoming puts.
func (s *Stream) SequenceToken() string {
	if s.puts == 0 {
		return ""
	}
	return formatSequenceToken(s.puts + 1)
}

// Group is a named container of streams.
type Group struct {
	// Name is unique within the store.
	Name string
	// CreationTime is in milliseconds since the epoch.
	CreationTime int64

	streams map[string]*Stream
	order   []string
}

func newGroup(name string, now int64) *Group {
	return &Group{
		Name:         name,
		CreationTime: now,
		streams:      make(map[string]*Stream),
	}
}

// Stream looks up a stream by name.
func (g *Group) Stream(name string) (*Stream, bool) {
	s, ok := g.streams[name]
	return s, ok
}

// Streams returns the group's streams in creation order.
// When prefix is non-empty only streams whose name starts with it are included.
func (g *Group) Streams(prefix string) []*Stream {
	out := make([]*Stream, 0, len(g.order))
	for _, name := range g.order {
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		out = append(out, g.streams[name])
	}
	return out
}

// StreamCount returns the number of streams in the group.
func (g *Group) StreamCount() int {
	return len(g.order)
}

// StoredBytes is the sum of stored bytes across the group's streams.
func (g *Group) StoredBytes() int64 {
	var total int64
	for _, s := range g.streams {
		total += s.storedBytes
	}
	return total
}

func (g *Group) addStream(name string, now int64) {
	g.streams[name] = &Stream{Name: name, CreationTime: now}
	g.order = append(g.order, name)
}

func (g *Group) removeStream(name string) {
	delete(g.streams, name)
	for i, n := range g.order {
		if n == name {
			g.order = append(g.order[:i], g.order[i+1:]...)
			return
		}
	}
}

// Query selects events from a stream.
type Query struct {
	// StartTime is an inclusive lower bound on Timestamp. Nil means unbounded.
	StartTime *int64
	// EndTime is an exclusive upper bound on Timestamp. Nil means unbounded.
	EndTime *int64
	// Limit caps the number of returned events. Zero means no cap.
	Limit int
	// StartFromHead picks the oldest events when Limit truncates the result.
	// Otherwise the newest events are kept. Order is always chronological.
	StartFromHead bool
}

func (q Query) matches(e LogEvent) bool {
	if q.StartTime != nil && e.Timestamp < *q.StartTime {
		return false
	}
	if q.EndTime != nil && e.Timestamp >= *q.EndTime {
		return false
	}
	return true
}

// Stats summarizes the contents of a Store.
type Stats struct {
	Groups      int   `json:"groups"`
	Streams     int   `json:"streams"`
	Events      int   `json:"events"`
	StoredBytes int64 `json:"storedBytes"`
}

// SeedGroup describes a group to preload into a Store.
type SeedGroup struct {
	Name    string
	Streams []SeedStream
}

// SeedStream describes a stream to preload, with optional events.
type SeedStream struct {
	Name   string
	Events []LogEvent
}
