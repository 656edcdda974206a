//nolint:funlen // ok for tests
package overlay

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simdash/simcar/pkg/model"
	"github.com/simdash/simcar/pkg/scene"
	"github.com/simdash/simcar/pkg/sim"
)

func findLabel(buf *scene.Buffer, prefix string) (scene.Primitive, bool) {
	for _, p := range buf.Primitives() {
		if p.Kind == scene.KindLabel && strings.HasPrefix(p.Label, prefix) {
			return p, true
		}
	}
	return scene.Primitive{}, false
}

func hasLabel(buf *scene.Buffer, prefix string) bool {
	_, ok := findLabel(buf, prefix)
	return ok
}

func TestSpeedometer_PrimitiveBreakdown(t *testing.T) {
	buf := scene.NewBuffer(100)
	Speedometer(buf, 36, 0, 0, 0.8)

	// 3 face discs, 12 minor + 4 major ticks, 6 scale labels, pointer
	// with tail, 2 hub discs, readout + unit + title labels
	require.Equal(t, 32, buf.Len())

	prims := buf.Primitives()
	for i := 0; i < 3; i++ {
		assert.Equal(t, scene.KindEllipsoid, prims[i].Kind)
	}
	for i := 3; i < 19; i++ {
		assert.Equal(t, scene.KindBox, prims[i].Kind)
	}

	assert.True(t, hasLabel(buf, "SPEED"))
	assert.True(t, hasLabel(buf, "km/h"))
	assert.True(t, hasLabel(buf, "36.0"))
	assert.True(t, hasLabel(buf, "0"))
	assert.True(t, hasLabel(buf, "50"))
}

func TestSpeedometer_PointerAngle(t *testing.T) {
	const (
		cx, cy = 1.5, -0.5
		size   = 0.8
		speed  = 36.0
	)
	buf := scene.NewBuffer(100)
	Speedometer(buf, speed, cx, cy, size)

	// pointer body follows the 16 ticks and 6 scale labels
	p := buf.Primitives()[25]
	require.Equal(t, scene.KindBox, p.Kind)

	ratio := speed / model.SpeedGaugeMaxKmh
	angle := ratio*2*math.Pi - math.Pi/2
	wantX := cx + size*pointerScale*math.Cos(angle)
	wantY := cy + size*pointerScale*math.Sin(angle)

	gotX := p.Pos[0] + p.Rot[0]*p.Size[0]
	gotY := p.Pos[1] + p.Rot[3]*p.Size[0]
	assert.InDelta(t, wantX, gotX, 1e-9)
	assert.InDelta(t, wantY, gotY, 1e-9)
}

func TestSpeedometer_PointerClampsBeyondFullScale(t *testing.T) {
	buf := scene.NewBuffer(100)
	Speedometer(buf, 500, 0, 0, 0.8)
	full := buf.Primitives()[25]

	buf2 := scene.NewBuffer(100)
	Speedometer(buf2, model.SpeedGaugeMaxKmh, 0, 0, 0.8)
	atMax := buf2.Primitives()[25]

	assert.InDelta(t, atMax.Pos[0], full.Pos[0], 1e-9)
	assert.InDelta(t, atMax.Pos[1], full.Pos[1], 1e-9)
}

func TestTachometer_HighRPMWarning(t *testing.T) {
	tests := []struct {
		name   string
		rpm    float64
		checks func(t *testing.T, buf *scene.Buffer)
	}{
		{
			name: "below threshold",
			rpm:  5000,
			checks: func(t *testing.T, buf *scene.Buffer) {
				t.Helper()
				assert.Equal(t, 31, buf.Len())
				assert.False(t, hasLabel(buf, "HIGH RPM!"))
			},
		},
		{
			name: "in the red band",
			rpm:  7000,
			checks: func(t *testing.T, buf *scene.Buffer) {
				t.Helper()
				// three warning discs plus the warning label
				assert.Equal(t, 35, buf.Len())
				assert.True(t, hasLabel(buf, "HIGH RPM!"))

				// halfway into the band the innermost disc carries
				// half its base opacity
				warn := buf.Primitives()[3]
				assert.Equal(t, scene.KindEllipsoid, warn.Kind)
				assert.InDelta(t, 0.15, warn.Color.A, 1e-9)
			},
		},
		{
			name: "at redline",
			rpm:  8000,
			checks: func(t *testing.T, buf *scene.Buffer) {
				t.Helper()
				warn := buf.Primitives()[3]
				assert.InDelta(t, 0.3, warn.Color.A, 1e-9)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := scene.NewBuffer(100)
			Tachometer(buf, tt.rpm, 0, 0, 0.8)
			tt.checks(t, buf)
		})
	}
}

func TestFuelBar_SteppedColors(t *testing.T) {
	tests := []struct {
		name string
		fuel float64
		want scene.RGBA
	}{
		{name: "green above half", fuel: 75, want: scene.RGBA{R: 0.2, G: 1.0, B: 0.2, A: 1}},
		{name: "yellow above low", fuel: 35, want: scene.RGBA{R: 1.0, G: 1.0, B: 0.2, A: 1}},
		{name: "red below low", fuel: 15, want: scene.RGBA{R: 1.0, G: 0.2, B: 0.2, A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := scene.NewBuffer(50)
			FuelBar(NewContext(), buf, tt.fuel, 0, 0, 1.5, 0.4)

			bar := buf.Primitives()[0]
			assert.Equal(t, scene.KindBox, bar.Kind)
			assert.Equal(t, tt.want, bar.Color)
			// bar width proportional to the remaining fuel
			assert.InDelta(t, tt.fuel/100*1.5, bar.Size[0], 1e-9)
		})
	}
}

func TestFuelBar_LowFuelLabel(t *testing.T) {
	buf := scene.NewBuffer(50)
	FuelBar(NewContext(), buf, 15, 0, 0, 1.5, 0.4)
	assert.True(t, hasLabel(buf, "LOW FUEL!"))
	assert.True(t, hasLabel(buf, "FUEL: 15.0%"))

	buf = scene.NewBuffer(50)
	FuelBar(NewContext(), buf, 21, 0, 0, 1.5, 0.4)
	assert.False(t, hasLabel(buf, "LOW FUEL!"))
}

func TestFuelBar_BlinkAdvancesOnlyWhileLow(t *testing.T) {
	ctx := NewContext()

	renderLow := func() int {
		buf := scene.NewBuffer(50)
		FuelBar(ctx, buf, 10, 0, 0, 1.5, 0.4)
		return buf.Len()
	}

	// healthy frames leave the accumulator untouched
	buf := scene.NewBuffer(50)
	FuelBar(ctx, buf, 80, 0, 0, 1.5, 0.4)
	assert.Equal(t, 0.0, ctx.BlinkPhase())

	// the overlay becomes visible once the accumulator passes the half
	// period, on the sixth warning frame
	base := renderLow()
	for i := 0; i < 4; i++ {
		assert.Equal(t, base, renderLow())
	}
	assert.Equal(t, base+1, renderLow())
}

func TestFuelBar_EmptyTankBackdrop(t *testing.T) {
	buf := scene.NewBuffer(50)
	FuelBar(NewContext(), buf, 0, 0, 0, 1.5, 0.4)

	backdrop := buf.Primitives()[0]
	assert.Equal(t, scene.RGBA{R: 0.3, G: 0.3, B: 0.3, A: 0.5}, backdrop.Color)
	assert.True(t, hasLabel(buf, "LOW FUEL!"))
}

func TestTemperatureBar_Overheat(t *testing.T) {
	ctx := NewContext()
	buf := scene.NewBuffer(50)
	TemperatureBar(ctx, buf, 110, 0, 0, 1.5, 0.4)

	assert.True(t, hasLabel(buf, "OVERHEAT!"))
	assert.True(t, hasLabel(buf, "TEMP: 110.0°C"))
	assert.Greater(t, ctx.HeatPhase(), 0.0)

	// pulse rectangle covers the full bar footprint
	pulse := buf.Primitives()[2]
	assert.Equal(t, [3]float64{1.5, 0.4, 0.001}, pulse.Size)
	wantAlpha := 0.3 + 0.3*math.Sin(heatStep*5)
	assert.InDelta(t, wantAlpha, pulse.Color.A, 1e-9)
}

func TestTemperatureBar_NominalHasNoWarning(t *testing.T) {
	ctx := NewContext()
	buf := scene.NewBuffer(50)
	TemperatureBar(ctx, buf, 80, 0, 0, 1.5, 0.4)

	assert.False(t, hasLabel(buf, "OVERHEAT!"))
	assert.Equal(t, 0.0, ctx.HeatPhase())
}

func TestTemperatureColorRamp(t *testing.T) {
	cold := temperatureColor(0)
	assert.InDelta(t, 1.0, cold.B, 1e-9)
	assert.InDelta(t, 0.3, cold.R, 1e-9)

	hot := temperatureColor(1)
	assert.InDelta(t, 1.0, hot.R, 1e-9)
	assert.InDelta(t, 0.0, hot.G, 1e-9)
	assert.InDelta(t, 0.0, hot.B, 1e-9)

	// mid ramp trends warm as the ratio climbs
	assert.Less(t, temperatureColor(0.3).R, temperatureColor(0.7).R)
	assert.Greater(t, temperatureColor(0.3).B, temperatureColor(0.7).B)
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()
	s := sim.NewState()
	s.MocapPos = [3]float64{1.2, -0.7, 0.01}
	s.SetBody(sim.CarBodyName, [3]float64{0.5, 0.25, 0})
	tele := model.TelemetryState{SpeedKmh: 36, RPM: 2240, FuelPercent: 80, TemperatureC: 76.8}

	buf := scene.NewBuffer(200)
	r.Render(s, tele, buf)

	assert.True(t, hasLabel(buf, "CAR DASHBOARD"))
	assert.True(t, hasLabel(buf, "Car: (0.50, 0.25)"))
	assert.True(t, hasLabel(buf, "Goal: (1.20, -0.70)"))

	var sphere *scene.Primitive
	for i, p := range buf.Primitives() {
		if p.Kind == scene.KindSphere {
			sphere = &buf.Primitives()[i]
			break
		}
	}
	require.NotNil(t, sphere, "goal marker missing")
	assert.Equal(t, [3]float64{1.2, -0.7, 0.2}, sphere.Pos)
	assert.Equal(t, scene.RGBA{R: 1, A: 0.8}, sphere.Color)
}

func TestRenderer_RenderSkipsMissingCarLabel(t *testing.T) {
	r := NewRenderer()
	s := sim.NewState()
	buf := scene.NewBuffer(200)
	r.Render(s, model.TelemetryState{}, buf)

	assert.False(t, hasLabel(buf, "Car: ("))
	assert.True(t, hasLabel(buf, "Goal: ("))
}

func TestRenderer_RenderTolerantOfBadBuffers(t *testing.T) {
	r := NewRenderer()
	s := sim.NewState()
	tele := model.TelemetryState{}

	assert.NotPanics(t, func() { r.Render(s, tele, nil) })

	empty := scene.NewBuffer(0)
	r.Render(s, tele, empty)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, uint64(0), empty.Dropped())

	// a tiny buffer fills and drops the rest silently
	tiny := scene.NewBuffer(5)
	r.Render(s, tele, tiny)
	assert.Equal(t, 5, tiny.Len())
	assert.Greater(t, tiny.Dropped(), uint64(0))
}
