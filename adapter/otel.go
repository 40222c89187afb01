// Package adapter integrates stately counters with external monitoring systems.
package adapter

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/srediag/stately/api"
)

// RegisterOTelGauge exports c as an observable int64 gauge named name on
// meter. The returned registration stops the export when unregistered.
func RegisterOTelGauge(meter metric.Meter, name, description string, c api.Counter, attrs ...attribute.KeyValue) (metric.Registration, error) {
	gauge, err := meter.Int64ObservableGauge(name, metric.WithDescription(description))
	if err != nil {
		return nil, err
	}
	opt := metric.WithAttributes(attrs...)
	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(gauge, c.Get(), opt)
		return nil
	}, gauge)
}
