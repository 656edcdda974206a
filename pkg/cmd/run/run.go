package run

import (
	"context"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/spf13/cobra"
	otlpruntime "go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/simdash/simcar/log"
	"github.com/simdash/simcar/pkg/config"
	"github.com/simdash/simcar/pkg/goal"
	"github.com/simdash/simcar/pkg/model"
	"github.com/simdash/simcar/pkg/scene"
	"github.com/simdash/simcar/pkg/sim"
	"github.com/simdash/simcar/pkg/task"
	"github.com/simdash/simcar/pkg/telemetry"
)

func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "runs the simulation headless",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation()
		},
	}
	cmd.Flags().IntVar(&config.Steps,
		"steps",
		10000,
		"number of simulation steps")
	cmd.Flags().Float64Var(&config.StepSize,
		"step-size",
		0.01,
		"simulation step size in seconds")
	cmd.Flags().IntVar(&config.SceneCapacity,
		"scene-capacity",
		200,
		"scene buffer capacity in primitives")
	cmd.Flags().Uint64Var(&config.Seed,
		"seed",
		0,
		"goal relocation seed (0 picks a random one)")
	cmd.Flags().BoolVar(&config.EnableTelemetry,
		"enable-telemetry",
		false,
		"enables otel metrics")
	cmd.Flags().StringVar(&config.TelemetryEndpoint,
		"telemetry-endpoint",
		"",
		"otlp grpc endpoint receiving metrics (default: stdout exporter)")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func setupLogger() {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	log.ResetDefault(logger.WithFilterRules(config.LogFilter))
}

//nolint:funlen // by design
func runSimulation() error {
	setupLogger()

	var otelShutdown func()
	if config.EnableTelemetry {
		log.Info("Enabling telemetry")
		if t, err := config.SetupTelemetry(context.Background()); err == nil {
			otelShutdown = t.Shutdown
		} else {
			log.Warn("Could not setup telemetry", log.ErrorField(err))
		}
		if err := otlpruntime.Start(); err != nil {
			log.Warn("Could not start runtime metrics", log.ErrorField(err))
		}
	}

	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.Info("Starting simulation",
		log.Int("steps", config.Steps),
		log.Float64("stepSize", config.StepSize),
		log.Uint64("seed", seed))

	state := sim.NewState()
	car := sim.NewKinematic()
	buf := scene.NewBuffer(config.SceneCapacity)
	buf.RegisterMetrics("overlay")

	src := make(chan model.TelemetryState, 64)
	bs := telemetry.NewBroadcastServer("telemetry", src)
	sub := bs.Subscribe()

	var wg sync.WaitGroup
	var maxSpeed float64
	var snapshots int
	wg.Add(1)
	go func() {
		defer wg.Done()
		for snap := range sub {
			snapshots++
			if snap.SpeedKmh > maxSpeed {
				maxSpeed = snap.SpeedKmh
			}
		}
	}()

	proc := telemetry.NewProcessor(
		telemetry.WithSink(func(snap model.TelemetryState) {
			select {
			case src <- snap:
			default: // never stall the step path
			}
		}))
	simpleCar := task.NewSimpleCar(
		task.WithTelemetryProcessor(proc),
		task.WithGoalController(goal.NewController(
			goal.WithRandSource(rand.NewPCG(seed, seed)))))

	for i := 0; i < config.Steps; i++ {
		sim.DriveToGoal(state)
		car.Step(state, config.StepSize)
		simpleCar.Step(state)
		buf.Reset()
		simpleCar.RenderOverlay(state, buf)
	}

	bs.Close()
	wg.Wait()
	if otelShutdown != nil {
		otelShutdown()
	}

	final := simpleCar.Telemetry().State()
	log.Info("Simulation finished",
		log.Float64("simTime", state.Time),
		log.Int("goalsReached", simpleCar.Goal().Relocations()),
		log.Int("snapshots", snapshots),
		log.Float64("maxSpeedKmh", maxSpeed),
		log.Float64("fuel", final.FuelPercent),
		log.Int("geomsPerFrame", buf.Len()),
		log.Uint64("droppedTotal", buf.TotalDropped()))
	return nil
}
