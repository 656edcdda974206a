// Package overlay composes the instrument cluster (speedometer,
// tachometer, fuel and temperature bars, markers and labels) into
// scene primitives, one fixed sequence per gauge per frame.
package overlay

// Per-frame increments of the warning animation accumulators. The
// blink window repeats every 1.0 of accumulated phase, visible on the
// upper half.
const (
	blinkStep = 0.1
	heatStep  = 0.05
)

// Context holds the persistent animation timers for one overlay
// instance. Concurrent task instances each own their Context, so
// blink and pulse phases never leak between them.
type Context struct {
	blinkTimer float64
	heatTimer  float64
}

func NewContext() *Context {
	return &Context{}
}

// BlinkPhase reports the accumulated low-fuel blink phase.
func (c *Context) BlinkPhase() float64 { return c.blinkTimer }

// HeatPhase reports the accumulated overheat pulse phase.
func (c *Context) HeatPhase() float64 { return c.heatTimer }
