package requestlog

import (
	"time"

	"github.com/tidwall/gjson"
)

// Entry captures a single dispatched request and its outcome.
type Entry struct {
	// ID is a unique identifier for the log entry.
	ID string `json:"id"`

	// RequestID is the value returned to the client in x-amzn-RequestId.
	RequestID string `json:"requestId,omitempty"`

	// Timestamp is when the request was received.
	Timestamp time.Time `json:"timestamp"`

	// Action is the resolved operation name, "Unknown" when unrecognized.
	Action string `json:"action"`

	// Target is the raw action identifier as sent by the client.
	Target string `json:"target,omitempty"`

	LogGroupName  string `json:"logGroupName,omitempty"`
	LogStreamName string `json:"logStreamName,omitempty"`

	// EventCount is the number of log events in a PutLogEvents body.
	EventCount int `json:"eventCount,omitempty"`

	// BodySize is the request body size in bytes.
	BodySize int `json:"bodySize"`

	// RemoteAddr is the client address.
	RemoteAddr string `json:"remoteAddr,omitempty"`

	// ResponseStatus is the HTTP status returned.
	ResponseStatus int `json:"responseStatus"`

	// ErrorType is the wire error type tag when the request failed.
	ErrorType string `json:"errorType,omitempty"`

	// DurationMs is the request processing time in milliseconds.
	DurationMs int `json:"durationMs"`
}

// Failed reports whether the request produced an error response.
func (e *Entry) Failed() bool {
	return e.ErrorType != "" || e.ResponseStatus >= 400
}

// FillFromBody extracts the group, stream and event count from a raw request
// body. Bodies that fail to decode still yield whatever fields are readable.
func (e *Entry) FillFromBody(body []byte) {
	e.BodySize = len(body)
	if len(body) == 0 {
		return
	}
	res := gjson.GetManyBytes(body, "logGroupName", "logGroupNamePrefix", "logStreamName", "logEvents.#")
	e.LogGroupName = res[0].String()
	if e.LogGroupName == "" {
		e.LogGroupName = res[1].String()
	}
	e.LogStreamName = res[2].String()
	e.EventCount = int(res[3].Int())
}
