package sim

import (
	"math"

	"github.com/samber/lo"
)

// CarBodyName is the body the overlay's position label follows.
const CarBodyName = "car"

// Kinematic is a unicycle-model car: the forward control accelerates
// along the heading, the turn control changes the heading, and a drag
// term limits the top speed.
type Kinematic struct {
	maxAccel    float64 // m/s^2 at full forward control
	maxTurnRate float64 // rad/s at full turn control
	drag        float64 // 1/s velocity decay

	speed float64
}

type KinematicOption func(k *Kinematic)

func WithMaxAccel(accel float64) KinematicOption {
	return func(k *Kinematic) { k.maxAccel = accel }
}

func WithMaxTurnRate(rate float64) KinematicOption {
	return func(k *Kinematic) { k.maxTurnRate = rate }
}

func NewKinematic(opts ...KinematicOption) *Kinematic {
	k := &Kinematic{
		maxAccel:    8.0,
		maxTurnRate: 2.5,
		drag:        1.2,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Step advances the car by dt seconds and refreshes the car body
// position.
func (k *Kinematic) Step(s *State, dt float64) {
	forward := lo.Clamp(s.Ctrl[0], -1, 1)
	turn := lo.Clamp(s.Ctrl[1], -1, 1)

	heading := s.Qpos[2] + turn*k.maxTurnRate*dt
	k.speed += (forward*k.maxAccel - k.drag*k.speed) * dt

	s.Qvel[0] = k.speed * math.Cos(heading)
	s.Qvel[1] = k.speed * math.Sin(heading)
	s.Qvel[2] = turn * k.maxTurnRate

	s.Qpos[0] += s.Qvel[0] * dt
	s.Qpos[1] += s.Qvel[1] * dt
	s.Qpos[2] = heading

	s.Time += dt
	s.SetBody(CarBodyName, [3]float64{s.Qpos[0], s.Qpos[1], 0})
}

// Speed reports the scalar forward speed in m/s.
func (k *Kinematic) Speed() float64 { return k.speed }
