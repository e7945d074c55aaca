package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockwatchlogs/pkg/config"
	"github.com/getmockd/mockwatchlogs/pkg/engine"
	"github.com/getmockd/mockwatchlogs/pkg/logsapi"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := config.DefaultServerConfiguration()
	cfg.Port = 0
	srv, err := engine.NewServer(cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Close()
	})
	return New(ts.URL + "/")
}

func strPtr(s string) *string { return &s }

func TestClient_RoundTrip(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.CreateLogGroup(ctx, &logsapi.CreateLogGroupInput{LogGroupName: "g"}))
	require.NoError(t, c.CreateLogStream(ctx, &logsapi.CreateLogStreamInput{LogGroupName: "g", LogStreamName: "s"}))

	put, err := c.PutLogEvents(ctx, &logsapi.PutLogEventsInput{
		LogGroupName:  "g",
		LogStreamName: "s",
		LogEvents: []logsapi.InputLogEvent{
			{Message: "first", Timestamp: 10},
			{Message: "second", Timestamp: 20},
		},
	})
	require.NoError(t, err)
	assert.NotNil(t, put.NextSequenceToken)

	got, err := c.GetLogEvents(ctx, &logsapi.GetLogEventsInput{LogGroupName: "g", LogStreamName: "s"})
	require.NoError(t, err)
	require.Len(t, got.Events, 2)
	assert.Equal(t, "first", *got.Events[0].Message)
	assert.Equal(t, int64(20), *got.Events[1].Timestamp)

	streams, err := c.DescribeLogStreams(ctx, &logsapi.DescribeLogStreamsInput{LogGroupName: "g"})
	require.NoError(t, err)
	require.Len(t, streams.LogStreams, 1)
	assert.Equal(t, *put.NextSequenceToken, *streams.LogStreams[0].UploadSequenceToken)

	groups, err := c.DescribeLogGroups(ctx, &logsapi.DescribeLogGroupsInput{LogGroupNamePrefix: strPtr("g")})
	require.NoError(t, err)
	require.Len(t, groups.LogGroups, 1)

	require.NoError(t, c.DeleteLogStream(ctx, &logsapi.DeleteLogStreamInput{LogGroupName: "g", LogStreamName: "s"}))
	require.NoError(t, c.DeleteLogGroup(ctx, &logsapi.DeleteLogGroupInput{LogGroupName: "g"}))
}

func TestClient_APIError(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.DescribeLogStreams(ctx, &logsapi.DescribeLogStreamsInput{LogGroupName: "missing"})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Group not found", apiErr.Message)
	assert.NotEmpty(t, apiErr.RequestID)

	require.NoError(t, c.CreateLogGroup(ctx, &logsapi.CreateLogGroupInput{LogGroupName: "g"}))
	err = c.CreateLogGroup(ctx, &logsapi.CreateLogGroupInput{LogGroupName: "g"})
	assert.True(t, IsAlreadyExists(err))
	assert.False(t, IsNotFound(err))
}

func TestClient_Invoke(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)

	status, body, err := c.Invoke(context.Background(), "Logs_20140328.Nope", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), logsapi.TypeUnknownOperation)
}

func TestClient_EngineEndpoints(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))
	require.NoError(t, c.CreateLogGroup(ctx, &logsapi.CreateLogGroupInput{LogGroupName: "g"}))

	status, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Store.Groups)

	requests, err := c.Requests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "CreateLogGroup", requests[0].Action)
	assert.Equal(t, "g", requests[0].LogGroupName)

	require.NoError(t, c.Reset(ctx))
	status, err = c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Store.Groups)
}

func TestParseAPIError_NonEnvelopeBody(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer ts.Close()

	err := New(ts.URL).CreateLogGroup(context.Background(), &logsapi.CreateLogGroupInput{LogGroupName: "g"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, logsapi.TypeService, apiErr.Type)
	assert.Equal(t, "upstream broke", apiErr.Message)
}
