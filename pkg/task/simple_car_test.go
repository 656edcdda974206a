package task

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simdash/simcar/pkg/goal"
	"github.com/simdash/simcar/pkg/scene"
	"github.com/simdash/simcar/pkg/sim"
)

func TestSimpleCar_ComputeResidual(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(s *sim.State)
		want   [4]float64
	}{
		{
			name:  "at origin with goal ahead",
			setup: func(s *sim.State) { s.MocapPos = [3]float64{1, 2, 0.01} },
			want:  [4]float64{-1, -2, 0, 0},
		},
		{
			name: "offset with active controls",
			setup: func(s *sim.State) {
				s.Qpos[0], s.Qpos[1] = 2, 3
				s.MocapPos = [3]float64{0.5, 1, 0.01}
				s.Ctrl[0], s.Ctrl[1] = 0.3, -0.2
			},
			want: [4]float64{1.5, 2, 0.3, -0.2},
		},
		{
			name: "on the goal",
			setup: func(s *sim.State) {
				s.Qpos[0], s.Qpos[1] = 1, 1
				s.MocapPos = [3]float64{1, 1, 0.01}
			},
			want: [4]float64{0, 0, 0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSimpleCar()
			s := sim.NewState()
			tt.setup(s)
			if diff := cmp.Diff(tt.want, c.ComputeResidual(s)); diff != "" {
				t.Errorf("residual mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSimpleCar_StepRelocatesGoalAndUpdatesTelemetry(t *testing.T) {
	c := NewSimpleCar(
		WithGoalController(goal.NewController(
			goal.WithRandSource(rand.NewPCG(11, 12)))))
	s := sim.NewState()
	s.Qvel[0] = 10
	s.MocapPos = [3]float64{0.1, 0, 0.01}

	c.Step(s)

	assert.Equal(t, 1, c.Goal().Relocations())
	assert.InDelta(t, 36.0, c.Telemetry().State().SpeedKmh, 1e-9)
}

func TestSimpleCar_StepLeavesDistantGoalAlone(t *testing.T) {
	c := NewSimpleCar(
		WithGoalController(goal.NewController(
			goal.WithRandSource(rand.NewPCG(11, 12)))))
	s := sim.NewState()
	s.MocapPos = [3]float64{1.5, 1.5, 0.01}

	c.Step(s)

	assert.Equal(t, 0, c.Goal().Relocations())
	assert.Equal(t, goal.Seeking, c.Goal().State())
}

func TestSimpleCar_RenderOverlay(t *testing.T) {
	c := NewSimpleCar()
	s := sim.NewState()
	buf := scene.NewBuffer(200)

	c.RenderOverlay(s, buf)

	assert.Greater(t, buf.Len(), 0)
}

func TestRegistry(t *testing.T) {
	factory, ok := Lookup("SimpleCar")
	require.True(t, ok)

	tk := factory()
	assert.Equal(t, "SimpleCar", tk.Name())

	assert.Contains(t, Names(), "SimpleCar")

	_, ok = Lookup("NoSuchTask")
	assert.False(t, ok)
}

func TestRegister_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register("SimpleCar", func() Task { return NewSimpleCar() })
	})
}
