package adapter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	metricnoop "go.opentelemetry.io/otel/metric/noop"

	"github.com/srediag/stately/pkg/concurrency"
)

func gaugeValues(t *testing.T, reg *prometheus.Registry, family string) map[string]float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]float64)
	for _, mf := range mfs {
		if mf.GetName() != family {
			continue
		}
		for _, m := range mf.GetMetric() {
			out[labelValue(m, "counter")] = m.GetGauge().GetValue()
		}
	}
	return out
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func TestCounterCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	cc := NewCounterCollector("stately_counter_value", "Current counter values.")
	require.NoError(t, reg.Register(cc))

	inflight := concurrency.NewAtomicCounter(3)
	total := concurrency.NewMutexCounter(-7)
	require.NoError(t, cc.Add("inflight", inflight))
	require.NoError(t, cc.Add("total", total))
	assert.Error(t, cc.Add("total", inflight))

	assert.Equal(t, map[string]float64{"inflight": 3, "total": -7}, gaugeValues(t, reg, "stately_counter_value"))

	inflight.Increment()
	cc.Remove("total")
	assert.Equal(t, map[string]float64{"inflight": 4}, gaugeValues(t, reg, "stately_counter_value"))
}

func TestCounterCheck(t *testing.T) {
	c := concurrency.NewAtomicCounter(0)
	check := CounterCheck(c, 0, 2)
	assert.NoError(t, check())
	c.Set(3)
	assert.Error(t, check())
	c.Set(-1)
	assert.Error(t, check())

	health := healthcheck.NewHandler()
	health.AddReadinessCheck("inflight", CounterCheck(c, 0, 2))

	rec := httptest.NewRecorder()
	health.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	c.Set(1)
	rec = httptest.NewRecorder()
	health.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterOTelGauge(t *testing.T) {
	meter := metricnoop.NewMeterProvider().Meter("stately-test")
	reg, err := RegisterOTelGauge(meter, "stately.counter", "test counter",
		concurrency.NewAtomicCounter(1), attribute.String("counter", "x"))
	require.NoError(t, err)
	assert.NoError(t, reg.Unregister())
}
