package overlay

import (
	"math"
	"strconv"

	"github.com/samber/lo"

	"github.com/simdash/simcar/pkg/model"
	"github.com/simdash/simcar/pkg/scene"
)

// Circular gauge proportions, as fractions of the gauge size.
const (
	outerBezelScale = 1.05
	innerBezelScale = 0.95
	minorTickInner  = 0.8
	majorTickInner  = 0.75
	tickOuter       = 0.9
	scaleLabelPos   = 0.7
	pointerScale    = 0.6
	tailScale       = 0.2
	hubOuterScale   = 0.06
	hubInnerScale   = 0.04

	minorTickCount = 12
	majorTickCount = 4
)

// Speedometer draws a full analog speed gauge centered at (x,y):
// backdrop, bezel rings, ticks, scale labels, pointer with tail, hub,
// readout and title. The pointer sweeps the full circle from the top,
// 0 to 50 km/h.
func Speedometer(buf *scene.Buffer, speedKmh, x, y, size float64) {
	// face and bezel
	buf.Disc(x, y, size, scene.RGBA{R: 0.7, G: 0.7, B: 0.75, A: 0.7})
	buf.Disc(x, y, size*outerBezelScale, scene.RGBA{R: 0.4, G: 0.7, B: 1.0, A: 0.6})
	buf.Disc(x, y, size*innerBezelScale, scene.RGBA{R: 0.3, G: 0.3, B: 0.4, A: 0.8})

	drawMinorTicks(buf, x, y, size, scene.RGBA{R: 0.1, G: 0.1, B: 0.2, A: 0.8})
	drawMajorTicks(buf, x, y, size, scene.RGBA{R: 0.0, G: 0.5, B: 1.0, A: 0.9})

	// 0..50 in steps of 10, index 0 at the top
	for i := 0; i < 6; i++ {
		angle := float64(i) * (2 * math.Pi / 6)
		cosA := math.Cos(angle - math.Pi/2)
		sinA := math.Sin(angle - math.Pi/2)
		buf.Label(x+size*scaleLabelPos*cosA, y+size*scaleLabelPos*sinA, 0.01,
			strconv.Itoa(i*10), 0.1, 0.1, 0.1, 0.9)
	}

	ratio := lo.Clamp(speedKmh/model.SpeedGaugeMaxKmh, 0, 1)
	drawPointer(buf, x, y, size, ratio, scene.RGBA{R: 1, A: 1})

	drawHub(buf, x, y, size)

	buf.Label(x, y, 0.02, formatFixed(speedKmh, 1), 0.15, 0.15, 0.1, 0.9)
	buf.Label(x, y-size*0.25, 0.02, "km/h", 0.08, 0.0, 0.3, 0.8)
	buf.Label(x, y+size*1.2, 0.02, "SPEED", 0.15, 0.0, 0.5, 1.0)
}

// Tachometer draws the rpm gauge. Above 6000 rpm it layers three
// warning discs whose opacity grows with how deep the needle sits in
// the red band, and adds a warning label.
func Tachometer(buf *scene.Buffer, rpm, x, y, size float64) {
	buf.Disc(x, y, size, scene.RGBA{R: 0.75, G: 0.75, B: 0.7, A: 0.7})
	buf.Disc(x, y, size*outerBezelScale, scene.RGBA{R: 1.0, G: 0.6, B: 0.3, A: 0.6})
	buf.Disc(x, y, size*innerBezelScale, scene.RGBA{R: 0.4, G: 0.3, B: 0.2, A: 0.8})

	if rpm > model.HighRPMThreshold {
		warningRatio := lo.Clamp((rpm-model.HighRPMThreshold)/
			(model.MaxRPM-model.HighRPMThreshold), 0, 1)
		for i := 0; i < 3; i++ {
			alpha := 0.3 + 0.7*(float64(i)/3.0)
			buf.Disc(x, y, size*(0.9-float64(i)*0.05),
				scene.RGBA{R: 1.0, G: 0.3, B: 0.3, A: alpha * warningRatio})
		}
	}

	drawMinorTicks(buf, x, y, size, scene.RGBA{R: 0.1, G: 0.1, B: 0.2, A: 0.8})
	drawMajorTicks(buf, x, y, size, scene.RGBA{R: 1.0, G: 0.6, B: 0.3, A: 0.9})

	// 0..8 x1000 in steps of 2, index 0 at the top
	for i := 0; i < 5; i++ {
		angle := float64(i) * (2 * math.Pi / 5)
		cosA := math.Cos(angle - math.Pi/2)
		sinA := math.Sin(angle - math.Pi/2)
		buf.Label(x+size*scaleLabelPos*cosA, y+size*scaleLabelPos*sinA, 0.01,
			strconv.Itoa(i*2), 0.1, 0.1, 0.1, 0.9)
	}

	ratio := lo.Clamp(rpm/model.RPMGaugeMax, 0, 1)
	drawPointer(buf, x, y, size, ratio, scene.RGBA{G: 1, A: 1})

	drawHub(buf, x, y, size)

	buf.Label(x, y, 0.02, formatFixed(rpm, 0), 0.15, 0.15, 0.1, 0.9)
	buf.Label(x, y-size*0.25, 0.02, "RPM", 0.08, 0.0, 0.3, 0.8)
	buf.Label(x, y+size*1.2, 0.02, "TACHOMETER", 0.15, 1.0, 0.5, 0.0)

	if rpm > model.HighRPMThreshold {
		buf.Label(x, y-size*1.4, 0.02, "HIGH RPM!", 0.12, 1.0, 0.1, 0.1)
	}
}

func drawMinorTicks(buf *scene.Buffer, x, y, size float64, c scene.RGBA) {
	for i := 0; i < minorTickCount; i++ {
		angle := float64(i) * (2 * math.Pi / minorTickCount)
		cosA := math.Cos(angle)
		sinA := math.Sin(angle)
		buf.Line(
			x+size*minorTickInner*cosA, y+size*minorTickInner*sinA,
			x+size*tickOuter*cosA, y+size*tickOuter*sinA,
			0.02, c)
	}
}

func drawMajorTicks(buf *scene.Buffer, x, y, size float64, c scene.RGBA) {
	for i := 0; i < majorTickCount; i++ {
		angle := float64(i) * (2 * math.Pi / majorTickCount)
		cosA := math.Cos(angle)
		sinA := math.Sin(angle)
		buf.Line(
			x+size*majorTickInner*cosA, y+size*majorTickInner*sinA,
			x+size*tickOuter*cosA, y+size*tickOuter*sinA,
			0.03, c)
	}
}

// drawPointer maps ratio to a full-circle sweep starting at the top
// and draws the pointer body plus a short counter-rotated tail.
func drawPointer(buf *scene.Buffer, x, y, size, ratio float64, c scene.RGBA) {
	angle := ratio*2*math.Pi - math.Pi/2
	endX := x + size*pointerScale*math.Cos(angle)
	endY := y + size*pointerScale*math.Sin(angle)
	buf.Line(x, y, endX, endY, 0.025, c)

	tailX := x - size*tailScale*math.Cos(angle)*0.3
	tailY := y - size*tailScale*math.Sin(angle)*0.3
	buf.Line(x, y, tailX, tailY, 0.02, c)
}

func drawHub(buf *scene.Buffer, x, y, size float64) {
	buf.Disc(x, y, size*hubOuterScale, scene.RGBA{A: 1})
	buf.Disc(x, y, size*hubInnerScale, scene.RGBA{R: 1, G: 1, B: 1, A: 1})
}

func formatFixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
