// Package metrics exposes pool usage statistics as Prometheus metrics.
//
// Pools are registered under a name; the collector snapshots their counters
// at scrape time, so pools pay nothing between scrapes.
//
// Example:
//
//	pm := metrics.NewPoolMetrics()
//	prometheus.MustRegister(pm)
//
//	pool := refpool.NewSharedPool[Node](4096)
//	pm.Register("node", pool)
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ajitpratap0/poolkit/pkg/refpool"
)

// Source is the surface a pool exposes for scraping. Both *refpool.Pool and
// *fakepool.Pool satisfy it.
type Source interface {
	Len() int
	Cap() int
	Stats() refpool.Stats
}

// PoolMetrics is a prometheus.Collector over a set of named pools.
type PoolMetrics struct {
	mu    sync.RWMutex
	pools map[string]Source

	size      *prometheus.Desc
	capacity  *prometheus.Desc
	reused    *prometheus.Desc
	fresh     *prometheus.Desc
	recycled  *prometheus.Desc
	discarded *prometheus.Desc
}

// NewPoolMetrics creates an empty collector. Register it with a Prometheus
// registry once, then attach pools with Register as they are created.
func NewPoolMetrics() *PoolMetrics {
	return &PoolMetrics{
		pools: make(map[string]Source),
		size: prometheus.NewDesc(
			"poolkit_pool_size",
			"Number of slots currently on the free-list",
			[]string{"pool"}, nil,
		),
		capacity: prometheus.NewDesc(
			"poolkit_pool_capacity",
			"Maximum number of slots the pool retains",
			[]string{"pool"}, nil,
		),
		reused: prometheus.NewDesc(
			"poolkit_pool_reused_total",
			"Constructions served from the free-list",
			[]string{"pool"}, nil,
		),
		fresh: prometheus.NewDesc(
			"poolkit_pool_fresh_total",
			"Constructions that allocated fresh storage",
			[]string{"pool"}, nil,
		),
		recycled: prometheus.NewDesc(
			"poolkit_pool_recycled_total",
			"Slots returned to the free-list",
			[]string{"pool"}, nil,
		),
		discarded: prometheus.NewDesc(
			"poolkit_pool_discarded_total",
			"Slots dropped because the free-list was full",
			[]string{"pool"}, nil,
		),
	}
}

// Register attaches a pool under the given name, replacing any previous
// pool registered under it.
func (m *PoolMetrics) Register(name string, src Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pools[name] = src
}

// Unregister detaches the named pool.
func (m *PoolMetrics) Unregister(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pools, name)
}

// Describe implements prometheus.Collector.
func (m *PoolMetrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.size
	ch <- m.capacity
	ch <- m.reused
	ch <- m.fresh
	ch <- m.recycled
	ch <- m.discarded
}

// Collect implements prometheus.Collector. Counters are snapshots of the
// pool's own atomic statistics.
func (m *PoolMetrics) Collect(ch chan<- prometheus.Metric) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for name, src := range m.pools {
		stats := src.Stats()
		ch <- prometheus.MustNewConstMetric(m.size, prometheus.GaugeValue, float64(src.Len()), name)
		ch <- prometheus.MustNewConstMetric(m.capacity, prometheus.GaugeValue, float64(src.Cap()), name)
		ch <- prometheus.MustNewConstMetric(m.reused, prometheus.CounterValue, float64(stats.Reused), name)
		ch <- prometheus.MustNewConstMetric(m.fresh, prometheus.CounterValue, float64(stats.Fresh), name)
		ch <- prometheus.MustNewConstMetric(m.recycled, prometheus.CounterValue, float64(stats.Recycled), name)
		ch <- prometheus.MustNewConstMetric(m.discarded, prometheus.CounterValue, float64(stats.Discarded), name)
	}
}
