package viewer

import (
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/simdash/simcar/log"
	"github.com/simdash/simcar/pkg/config"
	"github.com/simdash/simcar/pkg/goal"
	"github.com/simdash/simcar/pkg/scene"
	"github.com/simdash/simcar/pkg/sim"
	"github.com/simdash/simcar/pkg/task"
	"github.com/simdash/simcar/pkg/viewer"
)

func NewViewerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewer",
		Short: "opens a window rendering the simulation and dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startViewer()
		},
	}
	cmd.Flags().IntVar(&config.WindowWidth,
		"width",
		1024,
		"window width")
	cmd.Flags().IntVar(&config.WindowHeight,
		"height",
		768,
		"window height")
	cmd.Flags().IntVar(&config.SceneCapacity,
		"scene-capacity",
		200,
		"scene buffer capacity in primitives")
	cmd.Flags().Uint64Var(&config.Seed,
		"seed",
		0,
		"goal relocation seed (0 picks a random one)")
	cmd.Flags().BoolVar(&config.ManualControl,
		"manual",
		false,
		"start with the autopilot off (drive with the arrow keys)")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func startViewer() error {
	logger := log.DevLogger(
		os.Stderr,
		parseLogLevel(config.LogLevel, log.InfoLevel),
		log.WithCaller(true),
		log.AddCallerSkip(1))
	log.ResetDefault(logger.WithFilterRules(config.LogFilter))

	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	state := sim.NewState()
	buf := scene.NewBuffer(config.SceneCapacity)
	simpleCar := task.NewSimpleCar(
		task.WithGoalController(goal.NewController(
			goal.WithRandSource(rand.NewPCG(seed, seed)))))

	opts := []viewer.Option{
		viewer.WithWindowSize(config.WindowWidth, config.WindowHeight),
	}
	if config.ManualControl {
		opts = append(opts, viewer.WithManualControl())
	}

	log.Info("Starting viewer", log.Uint64("seed", seed))
	return viewer.New(simpleCar, state, buf, opts...).Run()
}
