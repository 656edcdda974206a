package overlay

import (
	"fmt"

	"github.com/simdash/simcar/pkg/model"
	"github.com/simdash/simcar/pkg/scene"
	"github.com/simdash/simcar/pkg/sim"
)

// Fixed screen-relative layout: gauges on one row above the ground
// plane origin, bars on the row below, title on top.
const (
	screenCenterX = 0.0
	screenTop     = 3.0

	gaugeRowY   = screenTop - 2.0
	barRowY     = screenTop - 3.5
	gaugeOffset = 2.5
	gaugeSize   = 0.8
	barWidth    = 1.5
	barHeight   = 0.4

	goalMarkerRadius = 0.15
	goalMarkerZ      = 0.2
	goalLabelZ       = 0.5
	carLabelLift     = 2.0
)

// Renderer drives one overlay pass per frame. Each Renderer owns its
// animation Context; do not share one across task instances.
type Renderer struct {
	ctx         *Context
	carBodyName string
}

type RendererOption func(r *Renderer)

func WithCarBodyName(name string) RendererOption {
	return func(r *Renderer) { r.carBodyName = name }
}

func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		ctx:         NewContext(),
		carBodyName: sim.CarBodyName,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Context exposes the renderer's animation context.
func (r *Renderer) Context() *Context { return r.ctx }

// Render emits the full instrument cluster plus goal and car markers
// into buf. A nil or zero-capacity buffer skips the pass entirely;
// everything else degrades to dropped primitives, never an error.
func (r *Renderer) Render(s *sim.State, t model.TelemetryState, buf *scene.Buffer) {
	if buf == nil || buf.Cap() == 0 {
		return
	}

	buf.Label(screenCenterX, screenTop-0.5, 0.5, "CAR DASHBOARD", 0.25, 0.0, 0.5, 1.0)

	Speedometer(buf, t.SpeedKmh, screenCenterX-gaugeOffset, gaugeRowY, gaugeSize)
	Tachometer(buf, t.RPM, screenCenterX+gaugeOffset, gaugeRowY, gaugeSize)
	FuelBar(r.ctx, buf, t.FuelPercent, screenCenterX-gaugeOffset, barRowY, barWidth, barHeight)
	TemperatureBar(r.ctx, buf, t.TemperatureC, screenCenterX+gaugeOffset, barRowY, barWidth, barHeight)

	// the goal reads as a physical object, not flat overlay content
	buf.Sphere(s.MocapPos[0], s.MocapPos[1], goalMarkerZ, goalMarkerRadius,
		scene.RGBA{R: 1, A: 0.8})

	if pos, ok := s.BodyPosition(r.carBodyName); ok {
		buf.Label(pos[0], pos[1], pos[2]+carLabelLift,
			fmt.Sprintf("Car: (%.2f, %.2f)", pos[0], pos[1]), 0.1, 0.0, 1.0, 0.0)
	}

	buf.Label(s.MocapPos[0], s.MocapPos[1], goalLabelZ,
		fmt.Sprintf("Goal: (%.2f, %.2f)", s.MocapPos[0], s.MocapPos[1]),
		0.1, 1.0, 0.0, 0.0)
}
