package model

// Derivation constants for the dashboard telemetry. Speed maps to rpm
// by an affine curve, rpm to coolant temperature; fuel drains by a
// fixed amount per update.
const (
	KmhPerMps = 3.6

	IdleRPM   = 800.0
	MaxRPM    = 8000.0
	RPMPerKmh = 40.0

	MinTemperatureC   = 60.0
	MaxTemperatureC   = 120.0
	TemperatureSpanC  = 60.0
	FullFuelPercent   = 100.0
	FuelDecayPerTick  = 0.001
	LowFuelPercent    = 20.0
	HighRPMThreshold  = 6000.0
	OverheatThreshold = 100.0
)

// Gauge full-scale values.
const (
	SpeedGaugeMaxKmh = 50.0
	RPMGaugeMax      = MaxRPM
)

// TelemetryState holds the derived vehicle state shown on the
// dashboard. All fields stay within their closed ranges after every
// update: rpm in [800,8000], temperature in [60,120], fuel in [0,100].
type TelemetryState struct {
	SpeedKmh     float64
	RPM          float64
	FuelPercent  float64
	TemperatureC float64
}
