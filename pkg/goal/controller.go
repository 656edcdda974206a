// Package goal implements the goal relocation state machine: watch the
// distance between car and goal marker, redraw the goal uniformly at a
// random position once the car gets within tolerance.
package goal

import (
	"math"
	"math/rand/v2"

	"github.com/simdash/simcar/pkg/sim"
)

// State of the controller as observed after a Step.
type State int

const (
	Seeking State = iota
	Reached
)

func (s State) String() string {
	if s == Reached {
		return "reached"
	}
	return "seeking"
}

// Bounds is the axis-aligned region new goals are drawn from.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

const (
	defaultTolerance = 0.2
	defaultExtent    = 2.0
	groundHeight     = 0.01
)

// Controller relocates the goal marker whenever the car reaches it.
// There is no hysteresis: a goal can be reached and relocated on every
// step.
type Controller struct {
	tolerance   float64
	bounds      Bounds
	rng         *rand.Rand
	state       State
	relocations int
}

type ControllerOption func(c *Controller)

func WithTolerance(tolerance float64) ControllerOption {
	return func(c *Controller) { c.tolerance = tolerance }
}

func WithBounds(b Bounds) ControllerOption {
	return func(c *Controller) { c.bounds = b }
}

// WithRandSource injects the random source; tests pass a fixed seed.
func WithRandSource(src rand.Source) ControllerOption {
	return func(c *Controller) { c.rng = rand.New(src) }
}

func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		tolerance: defaultTolerance,
		bounds: Bounds{
			MinX: -defaultExtent, MaxX: defaultExtent,
			MinY: -defaultExtent, MaxY: defaultExtent,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c
}

// Step checks the distance to the goal and relocates it when reached.
// The transition back to Seeking is immediate: the reported state is
// Reached only if the car is already within tolerance of the newly
// drawn goal.
func (c *Controller) Step(s *sim.State) State {
	if c.distanceToGoal(s) < c.tolerance {
		s.MocapPos[0] = c.uniform(c.bounds.MinX, c.bounds.MaxX)
		s.MocapPos[1] = c.uniform(c.bounds.MinY, c.bounds.MaxY)
		s.MocapPos[2] = groundHeight
		c.relocations++
	}
	if c.distanceToGoal(s) < c.tolerance {
		c.state = Reached
	} else {
		c.state = Seeking
	}
	return c.state
}

func (c *Controller) distanceToGoal(s *sim.State) float64 {
	return math.Hypot(s.MocapPos[0]-s.Qpos[0], s.MocapPos[1]-s.Qpos[1])
}

func (c *Controller) uniform(minVal, maxVal float64) float64 {
	return minVal + c.rng.Float64()*(maxVal-minVal)
}

// State reports the state observed by the last Step.
func (c *Controller) State() State { return c.state }

// Relocations counts how many times the goal has been redrawn.
func (c *Controller) Relocations() int { return c.relocations }
