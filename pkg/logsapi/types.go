package logsapi

// Wire shapes for the CloudWatch Logs JSON protocol. Field names are part of
// the public contract; optional response fields are omitted when unset.

// InputLogEvent is an event as submitted by PutLogEvents.
type InputLogEvent struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// OutputLogEvent is an event as returned by GetLogEvents.
type OutputLogEvent struct {
	IngestionTime *int64  `json:"ingestionTime,omitempty"`
	Message       *string `json:"message,omitempty"`
	Timestamp     *int64  `json:"timestamp,omitempty"`
}

// LogStream describes a stream in DescribeLogStreams output.
type LogStream struct {
	Arn                 *string `json:"arn,omitempty"`
	CreationTime        *int64  `json:"creationTime,omitempty"`
	FirstEventTimestamp *int64  `json:"firstEventTimestamp,omitempty"`
	LastEventTimestamp  *int64  `json:"lastEventTimestamp,omitempty"`
	LastIngestionTime   *int64  `json:"lastIngestionTime,omitempty"`
	LogStreamName       *string `json:"logStreamName,omitempty"`
	StoredBytes         *int64  `json:"storedBytes,omitempty"`
	UploadSequenceToken *string `json:"uploadSequenceToken,omitempty"`
}

// LogGroup describes a group in DescribeLogGroups output.
type LogGroup struct {
	Arn          *string `json:"arn,omitempty"`
	CreationTime *int64  `json:"creationTime,omitempty"`
	LogGroupName *string `json:"logGroupName,omitempty"`
	StoredBytes  *int64  `json:"storedBytes,omitempty"`
}

// DescribeLogStreamsInput is the DescribeLogStreams request.
type DescribeLogStreamsInput struct {
	Descending          *bool   `json:"descending,omitempty"`
	Limit               *int64  `json:"limit,omitempty"`
	LogGroupName        string  `json:"logGroupName"`
	LogStreamNamePrefix *string `json:"logStreamNamePrefix,omitempty"`
	NextToken           *string `json:"nextToken,omitempty"`
	OrderBy             *string `json:"orderBy,omitempty"`
}

// DescribeLogStreamsOutput is the DescribeLogStreams response.
type DescribeLogStreamsOutput struct {
	LogStreams []LogStream `json:"logStreams"`
	NextToken  *string     `json:"nextToken,omitempty"`
}

// DescribeLogGroupsInput is the DescribeLogGroups request.
type DescribeLogGroupsInput struct {
	Limit              *int64  `json:"limit,omitempty"`
	LogGroupNamePrefix *string `json:"logGroupNamePrefix,omitempty"`
	NextToken          *string `json:"nextToken,omitempty"`
}

// DescribeLogGroupsOutput is the DescribeLogGroups response.
type DescribeLogGroupsOutput struct {
	LogGroups []LogGroup `json:"logGroups"`
	NextToken *string    `json:"nextToken,omitempty"`
}

// CreateLogGroupInput is the CreateLogGroup request.
type CreateLogGroupInput struct {
	KmsKeyID     *string           `json:"kmsKeyId,omitempty"`
	LogGroupName string            `json:"logGroupName"`
	Tags         map[string]string `json:"tags,omitempty"`
}

// CreateLogStreamInput is the CreateLogStream request.
type CreateLogStreamInput struct {
	LogGroupName  string `json:"logGroupName"`
	LogStreamName string `json:"logStreamName"`
}

// DeleteLogGroupInput is the DeleteLogGroup request.
type DeleteLogGroupInput struct {
	LogGroupName string `json:"logGroupName"`
}

// DeleteLogStreamInput is the DeleteLogStream request.
type DeleteLogStreamInput struct {
	LogGroupName  string `json:"logGroupName"`
	LogStreamName string `json:"logStreamName"`
}

// PutLogEventsInput is the PutLogEvents request.
type PutLogEventsInput struct {
	LogEvents     []InputLogEvent `json:"logEvents"`
	LogGroupName  string          `json:"logGroupName"`
	LogStreamName string          `json:"logStreamName"`
	SequenceToken *string         `json:"sequenceToken,omitempty"`
}

// PutLogEventsOutput is the PutLogEvents response.
type PutLogEventsOutput struct {
	NextSequenceToken     *string                `json:"nextSequenceToken,omitempty"`
	RejectedLogEventsInfo *RejectedLogEventsInfo `json:"rejectedLogEventsInfo,omitempty"`
}

// RejectedLogEventsInfo is never populated; events are always accepted.
type RejectedLogEventsInfo struct {
	ExpiredLogEventEndIndex  *int64 `json:"expiredLogEventEndIndex,omitempty"`
	TooNewLogEventStartIndex *int64 `json:"tooNewLogEventStartIndex,omitempty"`
	TooOldLogEventEndIndex   *int64 `json:"tooOldLogEventEndIndex,omitempty"`
}

// GetLogEventsInput is the GetLogEvents request.
type GetLogEventsInput struct {
	EndTime       *int64  `json:"endTime,omitempty"`
	Limit         *int64  `json:"limit,omitempty"`
	LogGroupName  string  `json:"logGroupName"`
	LogStreamName string  `json:"logStreamName"`
	NextToken     *string `json:"nextToken,omitempty"`
	StartFromHead *bool   `json:"startFromHead,omitempty"`
	StartTime     *int64  `json:"startTime,omitempty"`
}

// GetLogEventsOutput is the GetLogEvents response.
type GetLogEventsOutput struct {
	Events            []OutputLogEvent `json:"events"`
	NextBackwardToken *string          `json:"nextBackwardToken,omitempty"`
	NextForwardToken  *string          `json:"nextForwardToken,omitempty"`
}

// Empty is the acknowledgment body for actions without output.
type Empty struct{}
