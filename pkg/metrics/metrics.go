package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mockwatchlogs"

// Default metrics. These are nil until Init is called.
var (
	// RequestsTotal counts dispatched API requests.
	// Labels: action, status
	RequestsTotal *prometheus.CounterVec

	// RequestDuration tracks API request latency in seconds.
	// Labels: action
	RequestDuration *prometheus.HistogramVec

	// ErrorsTotal counts error responses by wire error type.
	// Labels: type
	ErrorsTotal *prometheus.CounterVec

	// EventsIngestedTotal counts log events accepted by PutLogEvents.
	EventsIngestedTotal prometheus.Counter
)

var (
	initOnce  sync.Once
	registry  *prometheus.Registry
	storeColl = &storeCollector{}
	startTime = time.Now()
)

// Init creates the registry and the default metrics. It is safe to call more
// than once; later calls return the same registry.
func Init() *prometheus.Registry {
	initOnce.Do(func() {
		registry = prometheus.NewRegistry()
		factory := promauto.With(registry)

		RequestsTotal = factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"action", "status"},
		)
		RequestDuration = factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "API request latency in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"action"},
		)
		ErrorsTotal = factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total number of error responses by error type",
			},
			[]string{"type"},
		)
		EventsIngestedTotal = factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_ingested_total",
			Help:      "Total number of log events accepted",
		})
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Seconds since the process started",
		}, func() float64 { return time.Since(startTime).Seconds() })

		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			storeColl,
		)
	})
	return registry
}

// Registry returns the metrics registry, initializing it if needed.
func Registry() *prometheus.Registry {
	return Init()
}

// Handler returns the HTTP handler serving the registry in the Prometheus
// exposition format.
func Handler() http.Handler {
	reg := Init()
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// ObserveRequest records one API request. errType is the wire error type tag,
// empty on success. It is a no-op before Init.
func ObserveRequest(action string, status int, errType string, elapsed time.Duration) {
	if RequestsTotal == nil {
		return
	}
	RequestsTotal.WithLabelValues(action, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(action).Observe(elapsed.Seconds())
	if errType != "" {
		ErrorsTotal.WithLabelValues(errType).Inc()
	}
}

// AddIngestedEvents adds n accepted log events.
func AddIngestedEvents(n int) {
	if EventsIngestedTotal == nil || n <= 0 {
		return
	}
	EventsIngestedTotal.Add(float64(n))
}
