package logstore

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Store owns every log group. It is not safe for concurrent use; see Guard.
type Store struct {
	groups map[string]*Group
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for creation and ingestion times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		groups: make(map[string]*Group),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

// Group looks up a group by name.
func (s *Store) Group(name string) (*Group, bool) {
	g, ok := s.groups[name]
	return g, ok
}

// Groups returns the groups whose name starts with prefix, sorted by name.
// An empty prefix matches every group.
func (s *Store) Groups(prefix string) []*Group {
	out := make([]*Group, 0, len(s.groups))
	for name, g := range s.groups {
		if strings.HasPrefix(name, prefix) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// InsertGroup creates an empty group.
func (s *Store) InsertGroup(name string) error {
	if err := ValidateGroupName(name); err != nil {
		return err
	}
	if _, exists := s.groups[name]; exists {
		return &AlreadyExistsError{Resource: ResourceGroup, Group: name}
	}
	s.groups[name] = newGroup(name, s.nowMillis())
	return nil
}

// DeleteGroup removes a group together with all of its streams.
func (s *Store) DeleteGroup(name string) error {
	if _, ok := s.groups[name]; !ok {
		return groupNotFound(name)
	}
	delete(s.groups, name)
	return nil
}

// InsertStream creates an empty stream inside an existing group.
func (s *Store) InsertStream(group, stream string) error {
	g, ok := s.groups[group]
	if !ok {
		return groupNotFound(group)
	}
	if err := ValidateStreamName(stream); err != nil {
		return err
	}
	if _, exists := g.streams[stream]; exists {
		return &AlreadyExistsError{Resource: ResourceStream, Group: group, Stream: stream}
	}
	g.addStream(stream, s.nowMillis())
	return nil
}

// DeleteStream removes a stream and its events.
func (s *Store) DeleteStream(group, stream string) error {
	g, ok := s.groups[group]
	if !ok {
		return groupNotFound(group)
	}
	if _, ok := g.streams[stream]; !ok {
		return streamNotFound(group, stream)
	}
	g.removeStream(stream)
	return nil
}

// Streams returns a group's streams in creation order, filtered by name prefix.
func (s *Store) Streams(group, prefix string) ([]*Stream, error) {
	g, ok := s.groups[group]
	if !ok {
		return nil, groupNotFound(group)
	}
	return g.Streams(prefix), nil
}

func (s *Store) stream(group, stream string) (*Stream, error) {
	g, ok := s.groups[group]
	if !ok {
		return nil, groupNotFound(group)
	}
	st, ok := g.streams[stream]
	if !ok {
		return nil, streamNotFound(group, stream)
	}
	return st, nil
}

// AppendLogs appends events to a stream in the order given and returns the
// stream's next sequence token. An empty batch leaves the events untouched.
func (s *Store) AppendLogs(group, stream string, events []LogEvent) (string, error) {
	st, err := s.stream(group, stream)
	if err != nil {
		return "", err
	}
	if len(events) == 0 {
		return formatSequenceToken(st.puts + 1), nil
	}

	ingested := s.nowMillis()
	for _, e := range events {
		e.IngestionTime = ingested
		st.events = append(st.events, e)
		st.storedBytes += int64(len(e.Message))
	}
	st.lastIngestion = ingested
	st.puts++
	return formatSequenceToken(st.puts + 1), nil
}

// ReadLogs returns a copy of the stream's events selected by q, in stored order.
func (s *Store) ReadLogs(group, stream string, q Query) ([]LogEvent, error) {
	st, err := s.stream(group, stream)
	if err != nil {
		return nil, err
	}

	out := make([]LogEvent, 0, len(st.events))
	for _, e := range st.events {
		if q.matches(e) {
			out = append(out, e)
		}
	}

	if q.Limit > 0 && len(out) > q.Limit {
		if q.StartFromHead {
			out = out[:q.Limit]
		} else {
			out = out[len(out)-q.Limit:]
		}
	}
	return out, nil
}

// Reset drops every group.
func (s *Store) Reset() {
	s.groups = make(map[string]*Group)
}

// Stats counts groups, streams and events.
func (s *Store) Stats() Stats {
	var st Stats
	st.Groups = len(s.groups)
	for _, g := range s.groups {
		st.Streams += len(g.order)
		for _, stream := range g.streams {
			st.Events += len(stream.events)
			st.StoredBytes += stream.storedBytes
		}
	}
	return st
}

// Seed creates the given groups, streams and events. Groups or streams that
// already exist are reused, so seeding is safe to repeat after a Reset.
func (s *Store) Seed(groups []SeedGroup) error {
	for _, sg := range groups {
		if err := s.InsertGroup(sg.Name); err != nil && !IsAlreadyExists(err) {
			return fmt.Errorf("seed group %q: %w", sg.Name, err)
		}
		for _, ss := range sg.Streams {
			if err := s.InsertStream(sg.Name, ss.Name); err != nil && !IsAlreadyExists(err) {
				return fmt.Errorf("seed stream %q/%q: %w", sg.Name, ss.Name, err)
			}
			if _, err := s.AppendLogs(sg.Name, ss.Name, ss.Events); err != nil {
				return fmt.Errorf("seed events %q/%q: %w", sg.Name, ss.Name, err)
			}
		}
	}
	return nil
}

func formatSequenceToken(n uint64) string {
	return fmt.Sprintf("%056d", n)
}
