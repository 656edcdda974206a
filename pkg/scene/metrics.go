package scene

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/simdash/simcar/log"
)

// RegisterMetrics exposes the buffer counters as observable gauges on
// the global meter provider. Without a configured provider the
// registration is a no-op.
func (b *Buffer) RegisterMetrics(name string) {
	meter := otel.GetMeterProvider().Meter(fmt.Sprintf("simcar.scene.%s", name))
	register := func(metricName, desc, unit string, valueProvider func() int64) {
		if _, err := meter.Int64ObservableGauge(
			metricName,
			metric.WithDescription(desc),
			metric.WithUnit(unit),
			metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
				o.Observe(valueProvider(),
					metric.WithAttributes(attribute.String("buffer", name)))
				return nil
			})); err != nil {
			log.Error("failed to register metric",
				log.String("metric", metricName),
				log.ErrorField(err))
		}
	}
	type data struct {
		name  string
		desc  string
		unit  string
		value func() int64
	}
	for _, d := range []*data{
		{
			"simcar.scene.geoms", "Number of buffered primitives", "{count}",
			func() int64 { return int64(b.Len()) },
		},
		{
			"simcar.scene.capacity", "Buffer capacity", "{count}",
			func() int64 { return int64(b.Cap()) },
		},
		{
			"simcar.scene.dropped", "Primitives dropped at capacity", "{count}",
			func() int64 { return int64(b.TotalDropped()) },
		},
	} {
		register(d.name, d.desc, d.unit, d.value)
	}
}
