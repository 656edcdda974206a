package config

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/simdash/simcar/log"
)

// Telemetry owns the installed meter provider.
type Telemetry struct {
	provider *sdkmetric.MeterProvider
}

// SetupTelemetry installs a global meter provider exporting to the
// configured otlp endpoint, or to stdout when none is set.
func SetupTelemetry(ctx context.Context) (*Telemetry, error) {
	var (
		exporter sdkmetric.Exporter
		err      error
	)
	if TelemetryEndpoint != "" {
		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(TelemetryEndpoint),
			otlpmetricgrpc.WithInsecure())
	} else {
		exporter, err = stdoutmetric.New()
	}
	if err != nil {
		return nil, err
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter,
				sdkmetric.WithInterval(10*time.Second))),
	)
	otel.SetMeterProvider(provider)
	return &Telemetry{provider: provider}, nil
}

func (t *Telemetry) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := t.provider.Shutdown(ctx); err != nil {
		log.Warn("telemetry shutdown", log.ErrorField(err))
	}
}
