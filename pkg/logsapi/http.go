package logsapi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/getmockd/mockwatchlogs/internal/id"
	"github.com/getmockd/mockwatchlogs/pkg/httputil"
	"github.com/getmockd/mockwatchlogs/pkg/metrics"
	"github.com/getmockd/mockwatchlogs/pkg/requestlog"
)

// MaxBodyBytes bounds the size of a request body.
const MaxBodyBytes = 10 << 20

// ServeHTTP serves the JSON protocol: POST with the action in X-Amz-Target.
// Every response carries a fresh x-amzn-RequestId.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := id.RequestID()
	target := r.Header.Get(TargetHeader)

	var (
		result *Result
		body   []byte
	)
	if r.Method != http.MethodPost {
		result = d.failure(ParseAction(target), &ServiceError{
			Type:       TypeUnknownOperation,
			Message:    fmt.Sprintf("method %s is not supported, use POST", r.Method),
			StatusCode: http.StatusMethodNotAllowed,
		})
	} else {
		var err error
		body, err = io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
		if err != nil {
			action := ParseAction(target)
			result = d.failure(action, &MalformedRequestError{Action: action, Err: err})
		} else {
			result = d.Dispatch(target, body)
		}
	}

	// Recorded before the response is written so that a client observing the
	// response can also observe its history entry.
	d.record(r, requestID, target, body, result, time.Since(start))

	w.Header().Set(httputil.RequestIDHeader, requestID)
	if result.StatusCode == http.StatusMethodNotAllowed {
		w.Header().Set("Allow", http.MethodPost)
	}
	httputil.WriteAWSJSON(w, result.StatusCode, result.Body)
}

// record feeds metrics and the request log. A panicking sink is recovered and
// never changes the response.
func (d *Dispatcher) record(r *http.Request, requestID, target string, body []byte, result *Result, elapsed time.Duration) {
	entry := &requestlog.Entry{
		RequestID:      requestID,
		Timestamp:      time.Now().Add(-elapsed),
		Action:         result.Action.String(),
		Target:         target,
		RemoteAddr:     r.RemoteAddr,
		ResponseStatus: result.StatusCode,
		DurationMs:     int(elapsed.Milliseconds()),
	}
	entry.FillFromBody(body)
	if result.Err != nil {
		entry.ErrorType = result.Err.Type
	}

	metrics.ObserveRequest(entry.Action, entry.ResponseStatus, entry.ErrorType, elapsed)
	if result.Action == ActionPutLogEvents && result.Err == nil {
		metrics.AddIngestedEvents(entry.EventCount)
	}

	if d.requestLogger == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			d.log.Error("request logger panicked", "panic", rec, "requestId", requestID)
		}
	}()
	d.requestLogger.Log(entry)
}
