package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	LogLevel          string  // sets the log level (zap log level values)
	LogFormat         string  // text vs json
	LogFilter         string  // zapfilter rules for named loggers
	EnableTelemetry   bool    // enable otel metrics
	TelemetryEndpoint string  // otlp grpc endpoint; empty means stdout exporter
	Steps             int     // number of simulation steps for a headless run
	StepSize          float64 // simulation step size in seconds
	SceneCapacity     int     // max primitives per frame in the scene buffer
	Seed              uint64  // goal relocation seed; 0 picks a random one
	WindowWidth       int     // viewer window width
	WindowHeight      int     // viewer window height
	ManualControl     bool    // viewer starts with the autopilot off
)
