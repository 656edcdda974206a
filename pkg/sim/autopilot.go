package sim

import (
	"math"

	"github.com/samber/lo"
)

// DriveToGoal writes a simple steer-and-go control toward the goal
// marker: turn proportionally to the heading error, slow down while
// the nose is off target or the goal is near.
func DriveToGoal(s *State) {
	dx := s.MocapPos[0] - s.Qpos[0]
	dy := s.MocapPos[1] - s.Qpos[1]
	dist := math.Hypot(dx, dy)

	headingErr := normalizeAngle(math.Atan2(dy, dx) - s.Qpos[2])
	s.Ctrl[1] = lo.Clamp(2.0*headingErr, -1, 1)

	forward := lo.Clamp(dist, 0, 1)
	// back off while turning hard
	forward *= lo.Clamp(1.0-math.Abs(headingErr)/math.Pi*1.5, 0.1, 1)
	s.Ctrl[0] = forward
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
