package testing

import (
	"context"
	"net/http"
	stdtesting "testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockwatchlogs/pkg/client"
	"github.com/getmockd/mockwatchlogs/pkg/config"
	"github.com/getmockd/mockwatchlogs/pkg/logsapi"
	"github.com/getmockd/mockwatchlogs/pkg/logstore"
)

const (
	testGroup  = "test-group"
	testStream = "test-log-stream"
)

func strPtr(s string) *string { return &s }

func TestDescribeGroup(t *stdtesting.T) {
	t.Parallel()
	logs := New(t)
	logs.CreateGroup(testGroup)

	out, err := logs.Client().DescribeLogGroups(context.Background(), &logsapi.DescribeLogGroupsInput{
		LogGroupNamePrefix: strPtr(testGroup),
	})
	require.NoError(t, err)
	assert.Equal(t, []logsapi.LogGroup{{LogGroupName: strPtr(testGroup)}}, out.LogGroups)
}

func TestGroupNotFound(t *stdtesting.T) {
	t.Parallel()
	logs := New(t)

	_, err := logs.Client().DescribeLogStreams(context.Background(), &logsapi.DescribeLogStreamsInput{
		LogGroupName: "non-existant-group",
	})
	assert.True(t, client.IsNotFound(err))
}

func TestGroupFound(t *stdtesting.T) {
	t.Parallel()
	logs := New(t)
	logs.CreateGroup(testGroup)

	out, err := logs.Client().DescribeLogStreams(context.Background(), &logsapi.DescribeLogStreamsInput{
		LogGroupName: testGroup,
	})
	require.NoError(t, err)
	assert.Empty(t, out.LogStreams)
}

func TestStreamFound(t *stdtesting.T) {
	t.Parallel()
	logs := New(t)
	logs.CreateGroup(testGroup)
	logs.CreateStream(testGroup, testStream)

	out, err := logs.Client().DescribeLogStreams(context.Background(), &logsapi.DescribeLogStreamsInput{
		LogGroupName: testGroup,
	})
	require.NoError(t, err)
	require.Len(t, out.LogStreams, 1)
	assert.Equal(t, testStream, *out.LogStreams[0].LogStreamName)
}

func TestStreamFailure(t *stdtesting.T) {
	t.Parallel()
	logs := New(t)

	_, err := logs.Client().DescribeLogStreams(context.Background(), &logsapi.DescribeLogStreamsInput{
		LogGroupName: "ServiceUnavailable",
	})

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, logsapi.TypeServiceUnavailable, apiErr.Type)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestCreateGroupTwice(t *stdtesting.T) {
	t.Parallel()
	logs := New(t)
	logs.CreateGroup(testGroup)

	err := logs.Client().CreateLogGroup(context.Background(), &logsapi.CreateLogGroupInput{LogGroupName: testGroup})
	assert.True(t, client.IsAlreadyExists(err))
	assert.Equal(t, 1, logs.Server().Stats().Groups)
}

func TestCreateStreamInMissingGroup(t *stdtesting.T) {
	t.Parallel()
	logs := New(t)

	err := logs.Client().CreateLogStream(context.Background(), &logsapi.CreateLogStreamInput{
		LogGroupName:  "missing",
		LogStreamName: testStream,
	})
	assert.True(t, client.IsNotFound(err))
}

func TestPutLogsEmpty(t *stdtesting.T) {
	t.Parallel()
	logs := New(t)
	logs.CreateGroup(testGroup)
	logs.CreateStream(testGroup, testStream)

	logs.PutEvents(testGroup, testStream)

	logs.AssertEventCount(testGroup, testStream, 0)
	out, err := logs.Client().GetLogEvents(context.Background(), &logsapi.GetLogEventsInput{
		LogGroupName:  testGroup,
		LogStreamName: testStream,
	})
	require.NoError(t, err)
	assert.Empty(t, out.Events)
}

func TestPutLogsNonEmpty(t *stdtesting.T) {
	t.Parallel()
	logs := New(t)
	logs.CreateGroup(testGroup)
	logs.CreateStream(testGroup, testStream)

	logs.PutEvents(testGroup, testStream, logsapi.InputLogEvent{Message: "hello world", Timestamp: 1600000000000})

	logs.AssertEventCount(testGroup, testStream, 1)
	logs.AssertMessages(testGroup, testStream, "hello world")

	out, err := logs.Client().GetLogEvents(context.Background(), &logsapi.GetLogEventsInput{
		LogGroupName:  testGroup,
		LogStreamName: testStream,
	})
	require.NoError(t, err)
	require.Len(t, out.Events, 1)
	assert.Equal(t, "hello world", *out.Events[0].Message)
	assert.Equal(t, int64(1600000000000), *out.Events[0].Timestamp)
}

func TestTimeFilter(t *stdtesting.T) {
	t.Parallel()
	logs := New(t)
	logs.CreateGroup(testGroup)
	logs.CreateStream(testGroup, testStream)
	logs.PutEvents(testGroup, testStream,
		logsapi.InputLogEvent{Message: "a", Timestamp: 5},
		logsapi.InputLogEvent{Message: "b", Timestamp: 15},
		logsapi.InputLogEvent{Message: "c", Timestamp: 10},
	)

	start := int64(10)
	out, err := logs.Client().GetLogEvents(context.Background(), &logsapi.GetLogEventsInput{
		LogGroupName:  testGroup,
		LogStreamName: testStream,
		StartTime:     &start,
	})
	require.NoError(t, err)
	require.Len(t, out.Events, 2)
	assert.Equal(t, "b", *out.Events[0].Message)
	assert.Equal(t, "c", *out.Events[1].Message)
}

func TestOptions(t *stdtesting.T) {
	t.Parallel()
	logs := New(t,
		WithSeed(config.SeedGroup{
			Name: "preloaded",
			Streams: []config.SeedStream{{
				Name:   "s",
				Events: []config.SeedEvent{{Message: "seeded", Timestamp: 1}},
			}},
		}),
		WithAlreadyExistsStatus(http.StatusBadRequest),
		WithUnavailableGroup(""),
		WithConfig(func(c *config.ServerConfiguration) { c.Region = "ap-south-1" }),
	)

	logs.AssertGroupExists("preloaded")
	logs.AssertMessages("preloaded", "s", "seeded")
	logs.CreateGroup("ServiceUnavailable")

	err := logs.Client().CreateLogGroup(context.Background(), &logsapi.CreateLogGroupInput{LogGroupName: "preloaded"})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	logs.CreateStream("preloaded", "extra")
	logs.Reset()
	assert.True(t, logs.HasGroup("preloaded"))
	assert.False(t, logs.HasGroup("ServiceUnavailable"))
	logs.AssertEventCount("preloaded", "s", 1)
}

func TestAssertCalled(t *stdtesting.T) {
	t.Parallel()
	logs := New(t)
	logs.CreateGroup("a")
	logs.CreateGroup("b")
	logs.CreateStream("a", "s")

	logs.AssertCalled("CreateLogGroup", 2)
	logs.AssertCalled("CreateLogStream", 1)
	logs.AssertCalled("PutLogEvents", 0)
}

func TestEvents_ReturnsCopy(t *stdtesting.T) {
	t.Parallel()
	logs := New(t)
	logs.CreateGroup(testGroup)
	logs.CreateStream(testGroup, testStream)
	logs.PutEvents(testGroup, testStream, logsapi.InputLogEvent{Message: "orig", Timestamp: 1})

	events := logs.Events(testGroup, testStream)
	events[0] = logstore.LogEvent{Message: "mutated"}

	logs.AssertMessages(testGroup, testStream, "orig")
}

func TestStop_Idempotent(t *stdtesting.T) {
	t.Parallel()
	logs := New(t)
	logs.Stop()
	assert.NotPanics(t, logs.Stop)
}
