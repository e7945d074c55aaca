// Package metrics exposes Prometheus metrics for the emulator.
//
// Metrics live in a dedicated registry, not prometheus.DefaultRegisterer.
//
// # Default Metrics
//
//   - mockwatchlogs_requests_total: Counter (labels: action, status)
//   - mockwatchlogs_request_duration_seconds: Histogram (labels: action)
//   - mockwatchlogs_errors_total: Counter (labels: type)
//   - mockwatchlogs_events_ingested_total: Counter
//   - mockwatchlogs_uptime_seconds: Gauge
//   - mockwatchlogs_log_groups, mockwatchlogs_log_streams,
//     mockwatchlogs_log_events, mockwatchlogs_stored_bytes: Gauges read from
//     the store at scrape time
//
// The Go runtime and process collectors are registered as well.
//
// # Usage
//
//	metrics.Init()
//	metrics.SetStoreStats(func() logstore.Stats { ... })
//	mux.Handle("/metrics", metrics.Handler())
//
//	metrics.ObserveRequest("PutLogEvents", 200, "", elapsed)
package metrics
