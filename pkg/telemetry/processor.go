package telemetry

import (
	"math"

	"github.com/samber/lo"

	"github.com/simdash/simcar/log"
	"github.com/simdash/simcar/pkg/model"
)

// Processor derives the dashboard telemetry from raw simulation
// signals. It is single-writer: the host calls Update once per
// simulation step and reads State between steps.
type Processor struct {
	state       model.TelemetryState
	fuelReserve float64
	logger      *log.Logger
	sink        func(model.TelemetryState)
}

type ProcessorOption func(p *Processor)

// WithSink installs a callback receiving a snapshot after every
// update. The callback runs on the simulation step path and must not
// block.
func WithSink(sink func(model.TelemetryState)) ProcessorOption {
	return func(p *Processor) {
		p.sink = sink
	}
}

func WithLogger(logger *log.Logger) ProcessorOption {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithFuelReserve overrides the initial fuel reserve.
func WithFuelReserve(reserve float64) ProcessorOption {
	return func(p *Processor) {
		p.fuelReserve = reserve
		p.state.FuelPercent = reserve
	}
}

func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{
		fuelReserve: model.FullFuelPercent,
		state: model.TelemetryState{
			RPM:          model.IdleRPM,
			FuelPercent:  model.FullFuelPercent,
			TemperatureC: model.MinTemperatureC,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.Default().Named("telemetry")
	}
	return p
}

// Update derives the telemetry fields from the planar velocity.
// Speed converts to km/h, rpm follows speed on an affine curve, the
// fuel reserve drains by a fixed amount (wrapping back to full on
// depletion) and temperature follows rpm. All derived values are
// clamped to their closed ranges.
func (p *Processor) Update(vx, vy, simTime float64) {
	s := &p.state
	s.SpeedKmh = math.Hypot(vx, vy) * model.KmhPerMps
	s.RPM = lo.Clamp(s.SpeedKmh*model.RPMPerKmh+model.IdleRPM,
		model.IdleRPM, model.MaxRPM)

	p.fuelReserve -= model.FuelDecayPerTick
	if p.fuelReserve < 0 {
		p.fuelReserve = model.FullFuelPercent
	}
	s.FuelPercent = p.fuelReserve

	s.TemperatureC = lo.Clamp(
		model.MinTemperatureC+(s.RPM/model.MaxRPM)*model.TemperatureSpanC,
		model.MinTemperatureC, model.MaxTemperatureC)

	// once per simulated second
	if math.Mod(simTime, 1.0) < 0.01 {
		p.logger.Debug("dashboard",
			log.Float64("speedKmh", s.SpeedKmh),
			log.Float64("rpm", s.RPM),
			log.Float64("fuel", s.FuelPercent),
			log.Float64("tempC", s.TemperatureC))
	}
	if p.sink != nil {
		p.sink(*s)
	}
}

// State returns the current telemetry snapshot.
func (p *Processor) State() model.TelemetryState {
	return p.state
}

// FuelReserve exposes the internal reserve; it mirrors FuelPercent.
func (p *Processor) FuelReserve() float64 {
	return p.fuelReserve
}
