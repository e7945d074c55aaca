package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/getmockd/mockwatchlogs/pkg/logstore"
)

// StatsFunc returns a snapshot of store occupancy.
type StatsFunc func() logstore.Stats

var (
	groupsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "log_groups"),
		"Number of log groups in the store", nil, nil)
	streamsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "log_streams"),
		"Number of log streams in the store", nil, nil)
	eventsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "log_events"),
		"Number of log events in the store", nil, nil)
	bytesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "stored_bytes"),
		"Total message bytes held by the store", nil, nil)
)

// storeCollector reads store occupancy at scrape time.
type storeCollector struct {
	stats atomic.Pointer[StatsFunc]
}

// SetStoreStats sets the function consulted for store gauges. Passing nil
// stops reporting them.
func SetStoreStats(fn StatsFunc) {
	if fn == nil {
		storeColl.stats.Store(nil)
		return
	}
	storeColl.stats.Store(&fn)
}

func (c *storeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- groupsDesc
	ch <- streamsDesc
	ch <- eventsDesc
	ch <- bytesDesc
}

func (c *storeCollector) Collect(ch chan<- prometheus.Metric) {
	fn := c.stats.Load()
	if fn == nil {
		return
	}
	st := (*fn)()
	ch <- prometheus.MustNewConstMetric(groupsDesc, prometheus.GaugeValue, float64(st.Groups))
	ch <- prometheus.MustNewConstMetric(streamsDesc, prometheus.GaugeValue, float64(st.Streams))
	ch <- prometheus.MustNewConstMetric(eventsDesc, prometheus.GaugeValue, float64(st.Events))
	ch <- prometheus.MustNewConstMetric(bytesDesc, prometheus.GaugeValue, float64(st.StoredBytes))
}
