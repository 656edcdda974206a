// Package sim holds the slice of simulation state the dashboard task
// reads and writes. The physics engine itself stays external; State is
// the data contract between it and the task, and Kinematic is a small
// demo integrator so the repo runs end to end without one.
package sim

// State mirrors the simulation fields consumed by the task: planar
// position/velocity of the car, the control vector, the mutable goal
// marker position, simulation time and a body-name lookup.
type State struct {
	// Qpos is [x, y, heading].
	Qpos []float64
	// Qvel is [vx, vy, yawRate].
	Qvel []float64
	// Ctrl is [forward, turn], each in [-1,1].
	Ctrl []float64
	// MocapPos is the goal marker world position.
	MocapPos [3]float64
	// Time is the simulation time in seconds.
	Time float64

	bodies map[string][3]float64
}

func NewState() *State {
	return &State{
		Qpos:   make([]float64, 3),
		Qvel:   make([]float64, 3),
		Ctrl:   make([]float64, 2),
		bodies: make(map[string][3]float64),
	}
}

// BodyPosition looks up a body's world position by name.
func (s *State) BodyPosition(name string) ([3]float64, bool) {
	pos, ok := s.bodies[name]
	return pos, ok
}

// SetBody records a body's world position.
func (s *State) SetBody(name string, pos [3]float64) {
	if s.bodies == nil {
		s.bodies = make(map[string][3]float64)
	}
	s.bodies[name] = pos
}
