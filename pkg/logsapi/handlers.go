package logsapi

import (
	"fmt"
	"sort"

	"github.com/getmockd/mockwatchlogs/internal/id"
	"github.com/getmockd/mockwatchlogs/pkg/logstore"
)

const (
	// DefaultRegion is used in ARNs when no region is configured.
	DefaultRegion = "us-east-1"
	// DefaultAccountID is used in ARNs when no account is configured.
	DefaultAccountID = "000000000000"

	maxGetLogEventsLimit       = 10000
	maxDescribeLogStreamsLimit = 50
	orderByLogStreamName       = "LogStreamName"
	orderByLastEventTime       = "LastEventTime"
)

// Handlers implements one function per action. Each runs against a Store the
// caller has exclusive access to and never touches the wire format.
type Handlers struct {
	Region    string
	AccountID string
}

func (h Handlers) region() string {
	if h.Region == "" {
		return DefaultRegion
	}
	return h.Region
}

func (h Handlers) account() string {
	if h.AccountID == "" {
		return DefaultAccountID
	}
	return h.AccountID
}

func (h Handlers) groupARN(group string) string {
	return fmt.Sprintf("arn:aws:logs:%s:%s:log-group:%s:*", h.region(), h.account(), group)
}

func (h Handlers) streamARN(group, stream string) string {
	return fmt.Sprintf("arn:aws:logs:%s:%s:log-group:%s:log-stream:%s", h.region(), h.account(), group, stream)
}

func requireName(field, value string) error {
	if value == "" {
		return &logstore.InvalidParameterError{Field: field, Message: "is required"}
	}
	return nil
}

// DescribeLogStreams lists the streams of a group, optionally filtered by name prefix.
func (h Handlers) DescribeLogStreams(s *logstore.Store, in *DescribeLogStreamsInput) (*DescribeLogStreamsOutput, error) {
	if err := requireName("logGroupName", in.LogGroupName); err != nil {
		return nil, err
	}

	prefix := ""
	if in.LogStreamNamePrefix != nil {
		prefix = *in.LogStreamNamePrefix
	}
	// Without orderBy, streams keep creation order.
	orderBy := ""
	if in.OrderBy != nil {
		orderBy = *in.OrderBy
	}
	switch orderBy {
	case "", orderByLogStreamName:
	case orderByLastEventTime:
		if prefix != "" {
			return nil, &logstore.InvalidParameterError{
				Field:   "orderBy",
				Message: "cannot order by LastEventTime with a logStreamNamePrefix",
			}
		}
	default:
		return nil, &logstore.InvalidParameterError{Field: "orderBy", Message: "must be LogStreamName or LastEventTime"}
	}
	if in.Limit != nil && (*in.Limit < 1 || *in.Limit > maxDescribeLogStreamsLimit) {
		return nil, &logstore.InvalidParameterError{Field: "limit", Message: "must be between 1 and 50"}
	}

	streams, err := s.Streams(in.LogGroupName, prefix)
	if err != nil {
		return nil, err
	}

	switch orderBy {
	case orderByLogStreamName:
		sort.SliceStable(streams, func(i, j int) bool {
			return streams[i].Name < streams[j].Name
		})
	case orderByLastEventTime:
		sort.SliceStable(streams, func(i, j int) bool {
			ti, _ := streams[i].LastEventTimestamp()
			tj, _ := streams[j].LastEventTimestamp()
			return ti < tj
		})
	}
	if in.Descending != nil && *in.Descending {
		for i, j := 0, len(streams)-1; i < j; i, j = i+1, j-1 {
			streams[i], streams[j] = streams[j], streams[i]
		}
	}

	out := &DescribeLogStreamsOutput{LogStreams: make([]LogStream, 0, len(streams))}
	if in.Limit != nil && int(*in.Limit) < len(streams) {
		streams = streams[:*in.Limit]
		out.NextToken = strPtr(id.Token())
	}
	for _, st := range streams {
		out.LogStreams = append(out.LogStreams, h.logStream(in.LogGroupName, st))
	}
	return out, nil
}

func (h Handlers) logStream(group string, st *logstore.Stream) LogStream {
	ls := LogStream{
		Arn:           strPtr(h.streamARN(group, st.Name)),
		CreationTime:  int64Ptr(st.CreationTime),
		LogStreamName: strPtr(st.Name),
		StoredBytes:   int64Ptr(st.StoredBytes()),
	}
	if first, ok := st.FirstEventTimestamp(); ok {
		ls.FirstEventTimestamp = int64Ptr(first)
	}
	if last, ok := st.LastEventTimestamp(); ok {
		ls.LastEventTimestamp = int64Ptr(last)
	}
	if ingested := st.LastIngestionTime(); ingested != 0 {
		ls.LastIngestionTime = int64Ptr(ingested)
	}
	if token := st.SequenceToken(); token != "" {
		ls.UploadSequenceToken = strPtr(token)
	}
	return ls
}

// DescribeLogGroups resolves a single group by name prefix. The prefix is
// required: listing every group is not supported. The first matching group in
// name order is returned together with a fabricated continuation token.
func (h Handlers) DescribeLogGroups(s *logstore.Store, in *DescribeLogGroupsInput) (*DescribeLogGroupsOutput, error) {
	if in.LogGroupNamePrefix == nil || *in.LogGroupNamePrefix == "" {
		return nil, &logstore.InvalidParameterError{Field: "logGroupNamePrefix", Message: "is required"}
	}
	prefix := *in.LogGroupNamePrefix

	matches := s.Groups(prefix)
	if len(matches) == 0 {
		return nil, &logstore.NotFoundError{Resource: logstore.ResourceGroup, Group: prefix}
	}

	return &DescribeLogGroupsOutput{
		LogGroups: []LogGroup{{LogGroupName: strPtr(matches[0].Name)}},
		NextToken: strPtr(id.Token()),
	}, nil
}

// CreateLogGroup creates an empty group.
func (h Handlers) CreateLogGroup(s *logstore.Store, in *CreateLogGroupInput) (*Empty, error) {
	if err := requireName("logGroupName", in.LogGroupName); err != nil {
		return nil, err
	}
	if err := s.InsertGroup(in.LogGroupName); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

// CreateLogStream creates an empty stream in an existing group.
func (h Handlers) CreateLogStream(s *logstore.Store, in *CreateLogStreamInput) (*Empty, error) {
	if err := requireName("logGroupName", in.LogGroupName); err != nil {
		return nil, err
	}
	if err := requireName("logStreamName", in.LogStreamName); err != nil {
		return nil, err
	}
	if err := s.InsertStream(in.LogGroupName, in.LogStreamName); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

// DeleteLogGroup removes a group and all of its streams.
func (h Handlers) DeleteLogGroup(s *logstore.Store, in *DeleteLogGroupInput) (*Empty, error) {
	if err := requireName("logGroupName", in.LogGroupName); err != nil {
		return nil, err
	}
	if err := s.DeleteGroup(in.LogGroupName); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

// DeleteLogStream removes a single stream.
func (h Handlers) DeleteLogStream(s *logstore.Store, in *DeleteLogStreamInput) (*Empty, error) {
	if err := requireName("logGroupName", in.LogGroupName); err != nil {
		return nil, err
	}
	if err := requireName("logStreamName", in.LogStreamName); err != nil {
		return nil, err
	}
	if err := s.DeleteStream(in.LogGroupName, in.LogStreamName); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

// PutLogEvents appends events to a stream. The incoming sequence token is
// accepted and ignored.
func (h Handlers) PutLogEvents(s *logstore.Store, in *PutLogEventsInput) (*PutLogEventsOutput, error) {
	if err := requireName("logGroupName", in.LogGroupName); err != nil {
		return nil, err
	}
	if err := requireName("logStreamName", in.LogStreamName); err != nil {
		return nil, err
	}

	events := make([]logstore.LogEvent, len(in.LogEvents))
	for i, e := range in.LogEvents {
		events[i] = logstore.LogEvent{Message: e.Message, Timestamp: e.Timestamp}
	}

	token, err := s.AppendLogs(in.LogGroupName, in.LogStreamName, events)
	if err != nil {
		return nil, err
	}
	return &PutLogEventsOutput{NextSequenceToken: strPtr(token)}, nil
}

// GetLogEvents returns a stream's events, oldest first, filtered by the
// optional time window.
func (h Handlers) GetLogEvents(s *logstore.Store, in *GetLogEventsInput) (*GetLogEventsOutput, error) {
	if err := requireName("logGroupName", in.LogGroupName); err != nil {
		return nil, err
	}
	if err := requireName("logStreamName", in.LogStreamName); err != nil {
		return nil, err
	}

	q := logstore.Query{StartTime: in.StartTime, EndTime: in.EndTime}
	if in.Limit != nil {
		if *in.Limit < 1 || *in.Limit > maxGetLogEventsLimit {
			return nil, &logstore.InvalidParameterError{Field: "limit", Message: "must be between 1 and 10000"}
		}
		q.Limit = int(*in.Limit)
	}
	if in.StartFromHead != nil {
		q.StartFromHead = *in.StartFromHead
	}

	events, err := s.ReadLogs(in.LogGroupName, in.LogStreamName, q)
	if err != nil {
		return nil, err
	}

	out := &GetLogEventsOutput{Events: make([]OutputLogEvent, 0, len(events))}
	for _, e := range events {
		out.Events = append(out.Events, OutputLogEvent{
			IngestionTime: int64Ptr(e.IngestionTime),
			Message:       strPtr(e.Message),
			Timestamp:     int64Ptr(e.Timestamp),
		})
	}
	out.NextForwardToken = strPtr(fmt.Sprintf("f/%056d", len(events)))
	out.NextBackwardToken = strPtr(fmt.Sprintf("b/%056d", 0))
	return out, nil
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }
