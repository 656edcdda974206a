// Package viewer is an ebiten host renderer for the dashboard task:
// it steps the kinematic car, runs the task transition and paints the
// emitted scene primitives into a window.
package viewer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/simdash/simcar/pkg/scene"
	"github.com/simdash/simcar/pkg/sim"
	"github.com/simdash/simcar/pkg/task"
)

const simDt = 1.0 / 60.0

// Viewer implements ebiten.Game around one task instance.
type Viewer struct {
	state *sim.State
	car   *sim.Kinematic
	task  task.Task
	buf   *scene.Buffer

	width, height int
	autopilot     bool
	paused        bool

	bgColor   color.RGBA
	gridColor color.RGBA
}

type Option func(v *Viewer)

func WithWindowSize(width, height int) Option {
	return func(v *Viewer) {
		v.width = width
		v.height = height
	}
}

func WithManualControl() Option {
	return func(v *Viewer) { v.autopilot = false }
}

func New(t task.Task, state *sim.State, buf *scene.Buffer, opts ...Option) *Viewer {
	v := &Viewer{
		state:     state,
		car:       sim.NewKinematic(),
		task:      t,
		buf:       buf,
		width:     1024,
		height:    768,
		autopilot: true,
		bgColor:   color.RGBA{24, 28, 34, 255},
		gridColor: color.RGBA{50, 56, 64, 255},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Run opens the window and blocks until it closes.
func (v *Viewer) Run() error {
	ebiten.SetWindowSize(v.width, v.height)
	ebiten.SetWindowTitle("SimCar Dashboard")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}

func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.autopilot = !v.autopilot
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.state.Qpos[0], v.state.Qpos[1], v.state.Qpos[2] = 0, 0, 0
	}
	if v.paused {
		return nil
	}

	if v.autopilot {
		sim.DriveToGoal(v.state)
	} else {
		v.manualControl()
	}
	v.car.Step(v.state, simDt)
	v.task.Step(v.state)
	return nil
}

func (v *Viewer) manualControl() {
	v.state.Ctrl[0], v.state.Ctrl[1] = 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.state.Ctrl[0] = 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.state.Ctrl[0] = -1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.state.Ctrl[1] = 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.state.Ctrl[1] = -1
	}
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.bgColor)
	v.drawGrid(screen)
	v.drawCar(screen)

	v.buf.Reset()
	v.task.RenderOverlay(v.state, v.buf)
	for i := range v.buf.Primitives() {
		v.drawPrimitive(screen, &v.buf.Primitives()[i])
	}

	residual := v.task.ComputeResidual(v.state)
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"t=%6.1fs  geoms=%d dropped=%d  residual=(%+.2f %+.2f)\n"+
			"[A] autopilot:%v  [space] pause  [R] reset  arrows: drive",
		v.state.Time, v.buf.Len(), v.buf.TotalDropped(),
		residual[0], residual[1], v.autopilot))
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width, v.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// worldToScreen projects ground-plane coordinates; the dashboard and
// arena fit a roughly 7x5.5 world window.
func (v *Viewer) worldToScreen(x, y float64) (float32, float32) {
	scale := v.scale()
	sx := float64(v.width)/2 + x*scale
	sy := float64(v.height)/2 - (y-0.9)*scale
	return float32(sx), float32(sy)
}

func (v *Viewer) scale() float64 {
	s := float64(v.height) / 5.5
	if w := float64(v.width) / 7.2; w < s {
		s = w
	}
	return s
}

func (v *Viewer) drawGrid(screen *ebiten.Image) {
	for i := -2; i <= 2; i++ {
		x1, y1 := v.worldToScreen(float64(i), -2)
		x2, y2 := v.worldToScreen(float64(i), 2)
		vector.StrokeLine(screen, x1, y1, x2, y2, 1, v.gridColor, true)
		x1, y1 = v.worldToScreen(-2, float64(i))
		x2, y2 = v.worldToScreen(2, float64(i))
		vector.StrokeLine(screen, x1, y1, x2, y2, 1, v.gridColor, true)
	}
}

func (v *Viewer) drawCar(screen *ebiten.Image) {
	carColor := color.RGBA{90, 160, 255, 255}
	v.fillRotatedBox(screen,
		v.state.Qpos[0], v.state.Qpos[1], 0.18, 0.1, v.state.Qpos[2], carColor)
	// nose marker
	nx := v.state.Qpos[0] + 0.16*math.Cos(v.state.Qpos[2])
	ny := v.state.Qpos[1] + 0.16*math.Sin(v.state.Qpos[2])
	sx, sy := v.worldToScreen(nx, ny)
	vector.DrawFilledCircle(screen, sx, sy, 3, color.RGBA{255, 255, 255, 255}, true)
}

func (v *Viewer) drawPrimitive(screen *ebiten.Image, p *scene.Primitive) {
	switch p.Kind {
	case scene.KindBox:
		angle := math.Atan2(p.Rot[3], p.Rot[0])
		v.fillRotatedBox(screen, p.Pos[0], p.Pos[1], p.Size[0], p.Size[1],
			angle, toRGBA(p.Color))
	case scene.KindEllipsoid, scene.KindSphere:
		sx, sy := v.worldToScreen(p.Pos[0], p.Pos[1])
		r := float32(p.Size[0] * v.scale())
		vector.DrawFilledCircle(screen, sx, sy, r, toRGBA(p.Color), true)
	case scene.KindLabel:
		sx, sy := v.worldToScreen(p.Pos[0], p.Pos[1])
		offset := float32(len(p.Label)) * 3 // rough centering
		ebitenutil.DebugPrintAt(screen, p.Label, int(sx-offset), int(sy)-6)
	}
}

// fillRotatedBox draws a box of the given half extents rotated about
// its center, as two triangles.
func (v *Viewer) fillRotatedBox(
	screen *ebiten.Image, cx, cy, halfW, halfH, angle float64, c color.RGBA,
) {
	cosA := math.Cos(angle)
	sinA := math.Sin(angle)
	corners := [4][2]float64{
		{-halfW, -halfH}, {halfW, -halfH}, {halfW, halfH}, {-halfW, halfH},
	}
	vs := make([]ebiten.Vertex, 4)
	for i, corner := range corners {
		wx := cx + corner[0]*cosA - corner[1]*sinA
		wy := cy + corner[0]*sinA + corner[1]*cosA
		sx, sy := v.worldToScreen(wx, wy)
		vs[i] = ebiten.Vertex{
			DstX: sx, DstY: sy,
			ColorR: float32(c.R) / 255, ColorG: float32(c.G) / 255,
			ColorB: float32(c.B) / 255, ColorA: float32(c.A) / 255,
		}
	}
	is := []uint16{0, 1, 2, 0, 2, 3}
	screen.DrawTriangles(vs, is, whiteSubImage, nil)
}

func toRGBA(c scene.RGBA) color.RGBA {
	// premultiply; color.RGBA is alpha-premultiplied
	return color.RGBA{
		R: uint8(clamp01(c.R) * clamp01(c.A) * 255),
		G: uint8(clamp01(c.G) * clamp01(c.A) * 255),
		B: uint8(clamp01(c.B) * clamp01(c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}()
