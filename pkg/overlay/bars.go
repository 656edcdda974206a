package overlay

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/simdash/simcar/pkg/model"
	"github.com/simdash/simcar/pkg/scene"
)

const barTickCount = 5

// FuelBar draws the horizontal fuel gauge: a value-proportional bar
// centered about the anchor, stepped green/yellow/red coloring, a dark
// outline, tick marks and the low-fuel warning decoration. The blink
// accumulator in ctx advances only while the warning is active.
func FuelBar(ctx *Context, buf *scene.Buffer, fuelPercent, x, y, width, height float64) {
	fuelWidth := (fuelPercent / model.FullFuelPercent) * width
	if fuelWidth > 0.01 {
		fuelX := x - (width-fuelWidth)/2
		fuelHeight := height * 0.8

		var c scene.RGBA
		switch {
		case fuelPercent > 50:
			c = scene.RGBA{R: 0.2, G: 1.0, B: 0.2, A: 1}
		case fuelPercent > model.LowFuelPercent:
			c = scene.RGBA{R: 1.0, G: 1.0, B: 0.2, A: 1}
		default:
			c = scene.RGBA{R: 1.0, G: 0.2, B: 0.2, A: 1}
		}

		buf.Rectangle(fuelX, y, fuelWidth, fuelHeight, c)
		buf.Rectangle(fuelX, y, fuelWidth, fuelHeight, scene.RGBA{A: 0.3})

		if fuelPercent < model.LowFuelPercent {
			ctx.blinkTimer += blinkStep
			if math.Mod(ctx.blinkTimer, 1.0) > 0.5 {
				buf.Rectangle(x, y, width, height,
					scene.RGBA{R: 1.0, G: 0.2, B: 0.2, A: 0.3})
			}
		}
	} else {
		// empty tank, just the backdrop
		buf.Rectangle(x, y, width, height*0.6, scene.RGBA{R: 0.3, G: 0.3, B: 0.3, A: 0.5})
	}

	buf.Label(x, y+height*0.8, 0.02,
		fmt.Sprintf("FUEL: %.1f%%", fuelPercent), 0.1, 0.1, 0.1, 1.0)

	if fuelPercent < model.LowFuelPercent {
		buf.Label(x, y-height*0.8, 0.02, "LOW FUEL!", 0.12, 1.0, 0.1, 0.1)
	}

	drawBarTicks(buf, x, y, width, height)
}

// TemperatureBar draws the horizontal coolant temperature gauge with a
// blue-to-red color ramp, a triangular current-value marker and the
// overheat pulse decoration.
func TemperatureBar(ctx *Context, buf *scene.Buffer, temperatureC, x, y, width, height float64) {
	ratio := lo.Clamp(
		(temperatureC-model.MinTemperatureC)/model.TemperatureSpanC, 0, 1)

	tempWidth := ratio * width
	if tempWidth > 0.01 {
		tempX := x - (width-tempWidth)/2
		tempHeight := height * 0.8

		buf.Rectangle(tempX, y, tempWidth, tempHeight, temperatureColor(ratio))
		buf.Rectangle(tempX, y, tempWidth, tempHeight, scene.RGBA{A: 0.3})

		if temperatureC > model.OverheatThreshold {
			ctx.heatTimer += heatStep
			pulse := 0.3 + 0.3*math.Sin(ctx.heatTimer*5)
			buf.Rectangle(x, y, width, height,
				scene.RGBA{R: 1.0, G: 0.3, B: 0.3, A: pulse})
		}
	} else {
		buf.Rectangle(x, y, width, height*0.6, scene.RGBA{R: 0.3, G: 0.3, B: 0.3, A: 0.5})
	}

	buf.Label(x, y+height*0.8, 0.02,
		fmt.Sprintf("TEMP: %.1f°C", temperatureC), 0.1, 0.1, 0.1, 1.0)

	if temperatureC > model.OverheatThreshold {
		buf.Label(x, y-height*0.8, 0.02, "OVERHEAT!", 0.12, 1.0, 0.1, 0.1)
	}

	drawBarTicks(buf, x, y, width, height)

	// triangular marker under the current value
	markerX := x - width/2 + width*ratio
	buf.Line(markerX, y-height*0.4, markerX-0.05, y-height*0.2, 0.03, scene.RGBA{A: 0.8})
	buf.Line(markerX, y-height*0.4, markerX+0.05, y-height*0.2, 0.03, scene.RGBA{A: 0.8})
}

// temperatureColor ramps blue→green below ratio 0.5, green→yellow up
// to 0.8 and yellow→red above, by linear segment interpolation.
func temperatureColor(ratio float64) scene.RGBA {
	switch {
	case ratio < 0.5:
		t := ratio / 0.5
		return scene.RGBA{
			R: 0.3 * (1 - t),
			G: 0.5 + 0.5*t,
			B: 1.0 * (1 - t),
			A: 1,
		}
	case ratio < 0.8:
		t := (ratio - 0.5) / 0.3
		return scene.RGBA{
			R: 0.3 + 0.7*t,
			G: 1.0 * (1 - 0.2*t),
			B: 0.5 * (1 - t),
			A: 1,
		}
	default:
		t := (ratio - 0.8) / 0.2
		return scene.RGBA{
			R: 1.0,
			G: 0.8 * (1 - t),
			B: 0.2 * (1 - t),
			A: 1,
		}
	}
}

func drawBarTicks(buf *scene.Buffer, x, y, width, height float64) {
	for i := 0; i <= barTickCount; i++ {
		markerX := x - width/2 + (width/barTickCount)*float64(i)
		buf.Line(markerX, y-height*0.4, markerX, y-height*0.2,
			0.02, scene.RGBA{R: 0.2, G: 0.2, B: 0.3, A: 0.8})
	}
}
