package task

import (
	"github.com/simdash/simcar/pkg/goal"
	"github.com/simdash/simcar/pkg/overlay"
	"github.com/simdash/simcar/pkg/scene"
	"github.com/simdash/simcar/pkg/sim"
	"github.com/simdash/simcar/pkg/telemetry"
)

const simpleCarName = "SimpleCar"

func init() {
	Register(simpleCarName, func() Task { return NewSimpleCar() })
}

// SimpleCar drives the car toward a randomly relocated goal and draws
// the dashboard overlay. Each instance owns its goal controller,
// telemetry processor and overlay renderer.
type SimpleCar struct {
	goal      *goal.Controller
	telemetry *telemetry.Processor
	overlay   *overlay.Renderer
}

type SimpleCarOption func(c *SimpleCar)

func WithGoalController(ctrl *goal.Controller) SimpleCarOption {
	return func(c *SimpleCar) { c.goal = ctrl }
}

func WithTelemetryProcessor(proc *telemetry.Processor) SimpleCarOption {
	return func(c *SimpleCar) { c.telemetry = proc }
}

func WithOverlayRenderer(r *overlay.Renderer) SimpleCarOption {
	return func(c *SimpleCar) { c.overlay = r }
}

func NewSimpleCar(opts ...SimpleCarOption) *SimpleCar {
	c := &SimpleCar{}
	for _, opt := range opts {
		opt(c)
	}
	if c.goal == nil {
		c.goal = goal.NewController()
	}
	if c.telemetry == nil {
		c.telemetry = telemetry.NewProcessor()
	}
	if c.overlay == nil {
		c.overlay = overlay.NewRenderer()
	}
	return c
}

func (c *SimpleCar) Name() string { return simpleCarName }

// ComputeResidual reports the planner residual: planar offset to the
// goal plus the raw controls, which the planner drives toward zero.
func (c *SimpleCar) ComputeResidual(s *sim.State) [4]float64 {
	return [4]float64{
		s.Qpos[0] - s.MocapPos[0],
		s.Qpos[1] - s.MocapPos[1],
		s.Ctrl[0],
		s.Ctrl[1],
	}
}

// Step runs the goal transition and refreshes the telemetry from the
// current velocity, once per simulation step.
func (c *SimpleCar) Step(s *sim.State) {
	c.goal.Step(s)
	c.telemetry.Update(s.Qvel[0], s.Qvel[1], s.Time)
}

// RenderOverlay emits the dashboard for the current state into buf.
func (c *SimpleCar) RenderOverlay(s *sim.State, buf *scene.Buffer) {
	c.overlay.Render(s, c.telemetry.State(), buf)
}

// Goal exposes the goal controller (for run statistics).
func (c *SimpleCar) Goal() *goal.Controller { return c.goal }

// Telemetry exposes the telemetry processor.
func (c *SimpleCar) Telemetry() *telemetry.Processor { return c.telemetry }
