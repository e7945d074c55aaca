package engine

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockwatchlogs/pkg/config"
	"github.com/getmockd/mockwatchlogs/pkg/logsapi"
)

func testConfig() *config.ServerConfiguration {
	cfg := config.DefaultServerConfiguration()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	return cfg
}

func newTestServer(t *testing.T, cfg *config.ServerConfiguration) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Close()
	})
	return srv, ts
}

func callAction(t *testing.T, baseURL, action, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, baseURL+"/", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set(logsapi.TargetHeader, logsapi.ServiceNamespace+"."+action)
	req.Header.Set("Content-Type", "application/x-amz-json-1.1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Parallel()
		srv, err := NewServer(nil)
		require.NoError(t, err)
		defer srv.Close()
		require.NotNil(t, srv)
		assert.Equal(t, config.DefaultPort, srv.Config().Port)
		assert.False(t, srv.IsRunning())
		assert.Equal(t, 0, srv.Uptime())
	})

	t.Run("nil logger falls back to nop", func(t *testing.T) {
		t.Parallel()
		srv, err := NewServer(testConfig(), WithLogger(nil))
		require.NoError(t, err)
		defer srv.Close()
		assert.NotNil(t, srv.log)
	})

	t.Run("seeds the store", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.Seed = []config.SeedGroup{{
			Name: "seeded",
			Streams: []config.SeedStream{{
				Name:   "s",
				Events: []config.SeedEvent{{Message: "m", Timestamp: 1}},
			}},
		}}
		srv, err := NewServer(cfg)
		require.NoError(t, err)
		defer srv.Close()

		stats := srv.Stats()
		assert.Equal(t, 1, stats.Groups)
		assert.Equal(t, 1, stats.Streams)
		assert.Equal(t, 1, stats.Events)
	})

	t.Run("unusable seed is an error", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.Seed = []config.SeedGroup{
			{Name: "ok"},
			{Name: "bad:name"},
		}
		srv, err := NewServer(cfg)
		require.Error(t, err)
		assert.Nil(t, srv)
		assert.Contains(t, err.Error(), "seed store")
	})
}

func TestServer_StartStop(t *testing.T) {
	t.Parallel()
	srv, err := NewServer(testConfig())
	require.NoError(t, err)
	defer srv.Close()

	require.NoError(t, srv.Start())
	assert.True(t, srv.IsRunning())
	assert.NotZero(t, srv.Port())
	assert.Error(t, srv.Start(), "second start must fail")

	status, body := callAction(t, srv.URL(), "CreateLogGroup", `{"logGroupName":"live"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "{}", body)

	require.NoError(t, srv.Stop())
	assert.False(t, srv.IsRunning())
	require.NoError(t, srv.Stop(), "stop is idempotent")
}

func TestServer_Scenario(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, testConfig())

	status, _ := callAction(t, ts.URL, "CreateLogGroup", `{"logGroupName":"test-group"}`)
	require.Equal(t, http.StatusOK, status)

	status, body := callAction(t, ts.URL, "DescribeLogStreams", `{"logGroupName":"test-group"}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"logStreams":[]}`, body)

	status, _ = callAction(t, ts.URL, "CreateLogStream", `{"logGroupName":"test-group","logStreamName":"test-log-stream"}`)
	require.Equal(t, http.StatusOK, status)

	status, _ = callAction(t, ts.URL, "PutLogEvents",
		`{"logGroupName":"test-group","logStreamName":"test-log-stream","logEvents":[{"message":"hello world","timestamp":1}]}`)
	require.Equal(t, http.StatusOK, status)

	status, body = callAction(t, ts.URL, "GetLogEvents", `{"logGroupName":"test-group","logStreamName":"test-log-stream"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"message":"hello world"`)

	status, body = callAction(t, ts.URL, "DescribeLogStreams", `{"logGroupName":"nope"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "ResourceNotFoundException")
}

func TestServer_ConfigWiring(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Compat.AlreadyExistsStatus = http.StatusBadRequest
	cfg.TestHooks.ServiceUnavailableGroup = "Flaky"
	cfg.Region = "eu-central-1"
	_, ts := newTestServer(t, cfg)

	callAction(t, ts.URL, "CreateLogGroup", `{"logGroupName":"g"}`)
	status, _ := callAction(t, ts.URL, "CreateLogGroup", `{"logGroupName":"g"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := callAction(t, ts.URL, "CreateLogGroup", `{"logGroupName":"Flaky"}`)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, body, "ServiceUnavailableException")

	status, _ = callAction(t, ts.URL, "CreateLogGroup", `{"logGroupName":"ServiceUnavailable"}`)
	assert.Equal(t, http.StatusOK, status)

	callAction(t, ts.URL, "CreateLogStream", `{"logGroupName":"g","logStreamName":"s"}`)
	_, body = callAction(t, ts.URL, "DescribeLogStreams", `{"logGroupName":"g"}`)
	assert.Contains(t, body, "arn:aws:logs:eu-central-1:")
}

func TestServer_Health(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, testConfig())

	var body map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/health", &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestServer_StatusAndReset(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Seed = []config.SeedGroup{{Name: "base"}}
	srv, ts := newTestServer(t, cfg)

	callAction(t, ts.URL, "CreateLogGroup", `{"logGroupName":"extra"}`)
	callAction(t, ts.URL, "CreateLogStream", `{"logGroupName":"extra","logStreamName":"s"}`)

	var status StatusResponse
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/status", &status))
	assert.Equal(t, 2, status.Store.Groups)
	assert.Equal(t, 1, status.Store.Streams)
	assert.Equal(t, 2, status.RequestLog)

	resp, err := http.Post(ts.URL+"/_reset", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	stats := srv.Stats()
	assert.Equal(t, 1, stats.Groups, "reset keeps the seed")
	assert.Equal(t, 0, stats.Streams)

	code, _ := callAction(t, ts.URL, "DescribeLogStreams", `{"logGroupName":"extra"}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestServer_RequestLog(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, testConfig())

	callAction(t, ts.URL, "CreateLogGroup", `{"logGroupName":"g"}`)
	callAction(t, ts.URL, "CreateLogGroup", `{"logGroupName":"g"}`)
	callAction(t, ts.URL, "DescribeLogGroups", `{"logGroupNamePrefix":"g"}`)

	var all struct {
		Requests []map[string]any `json:"requests"`
		Count    int              `json:"count"`
		Total    int              `json:"total"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/_requests", &all))
	assert.Equal(t, 3, all.Count)
	assert.Equal(t, "DescribeLogGroups", all.Requests[0]["action"])

	var failed struct {
		Requests []map[string]any `json:"requests"`
	}
	getJSON(t, ts.URL+"/_requests?hasError=true", &failed)
	require.Len(t, failed.Requests, 1)
	assert.Equal(t, "ResourceAlreadyExistsException", failed.Requests[0]["errorType"])

	var limited struct {
		Count int `json:"count"`
	}
	getJSON(t, ts.URL+"/_requests?action=CreateLogGroup&limit=1", &limited)
	assert.Equal(t, 1, limited.Count)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/_requests?limit=abc", nil))

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/_requests", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	getJSON(t, ts.URL+"/_requests", &all)
	assert.Equal(t, 0, all.Total)
}

func TestServer_RequestLogDisabled(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.RequestLog.MaxEntries = 0
	srv, ts := newTestServer(t, cfg)

	callAction(t, ts.URL, "CreateLogGroup", `{"logGroupName":"g"}`)
	assert.Empty(t, srv.RequestLogs(nil))
	assert.Equal(t, 0, srv.RequestLogCount())
}

func TestServer_Metrics(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, testConfig())

	callAction(t, ts.URL, "CreateLogGroup", `{"logGroupName":"metrics-group"}`)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `mockwatchlogs_requests_total{action="CreateLogGroup"`)
}

func TestServer_MetricsDisabled(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Metrics.Enabled = false
	_, ts := newTestServer(t, cfg)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_UnknownPath(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, testConfig())

	resp, err := http.Post(ts.URL+"/other", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
