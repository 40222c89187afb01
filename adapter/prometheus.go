package adapter

import (
	"fmt"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/srediag/stately/api"
)

// CounterCollector exports a dynamic set of named counters as one gauge
// family, labelled by counter name. Counters may be added and removed while
// the collector is registered.
type CounterCollector struct {
	desc     *prometheus.Desc
	counters cmap.ConcurrentMap[string, api.Counter]
}

var _ prometheus.Collector = (*CounterCollector)(nil)

// NewCounterCollector returns a collector for the gauge family fqName.
func NewCounterCollector(fqName, help string) *CounterCollector {
	return &CounterCollector{
		desc:     prometheus.NewDesc(fqName, help, []string{"counter"}, nil),
		counters: cmap.New[api.Counter](),
	}
}

// Add exports c under name. It fails if name is already exported.
func (cc *CounterCollector) Add(name string, c api.Counter) error {
	if !cc.counters.SetIfAbsent(name, c) {
		return fmt.Errorf("counter %q already exported", name)
	}
	return nil
}

// Remove stops exporting name.
func (cc *CounterCollector) Remove(name string) {
	cc.counters.Remove(name)
}

// Describe implements prometheus.Collector.
func (cc *CounterCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- cc.desc
}

// Collect implements prometheus.Collector.
func (cc *CounterCollector) Collect(ch chan<- prometheus.Metric) {
	for name, c := range cc.counters.Items() {
		ch <- prometheus.MustNewConstMetric(cc.desc, prometheus.GaugeValue, float64(c.Get()), name)
	}
}
