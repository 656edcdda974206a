package scene

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestBuffer_CapacityDropsExcess(t *testing.T) {
	b := NewBuffer(5)
	for i := range 10 {
		b.Rectangle(float64(i), 0, 1, 1, RGBA{R: 1, A: 1})
	}

	assert.Equal(t, 5, b.Len())
	assert.Equal(t, uint64(5), b.Dropped())
	assert.Equal(t, uint64(5), b.TotalDropped())
	// first-come-first-kept
	for i, p := range b.Primitives() {
		assert.Equal(t, float64(i), p.Pos[0])
	}
}

func TestBuffer_ResetKeepsLifetimeDropCount(t *testing.T) {
	b := NewBuffer(2)
	for range 5 {
		b.Disc(0, 0, 1, RGBA{A: 1})
	}
	assert.Equal(t, uint64(3), b.Dropped())

	b.Reset()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, uint64(0), b.Dropped())
	assert.Equal(t, uint64(3), b.TotalDropped())

	b.Disc(0, 0, 1, RGBA{A: 1})
	assert.Equal(t, 1, b.Len())
}

func TestBuffer_Rectangle(t *testing.T) {
	b := NewBuffer(10)
	b.Rectangle(1, 2, 3, 0.5, RGBA{R: 0.2, G: 1, B: 0.2, A: 1})

	want := Primitive{
		Kind:     KindBox,
		Pos:      [3]float64{1, 2, 0},
		Size:     [3]float64{3, 0.5, 0.001},
		Rot:      Identity,
		Color:    RGBA{R: 0.2, G: 1, B: 0.2, A: 1},
		Category: CategoryDecoration,
	}
	if diff := cmp.Diff(want, b.Primitives()[0]); diff != "" {
		t.Errorf("rectangle mismatch (-want +got):\n%s", diff)
	}
}

//nolint:funlen // ok for tests
func TestBuffer_LineGeometry(t *testing.T) {
	type args struct {
		x1, y1, x2, y2, width float64
	}
	tests := []struct {
		name string
		args args
	}{
		{name: "axis aligned", args: args{0, 0, 4, 0, 0.1}},
		{name: "diagonal", args: args{1, 2, 3, 5, 0.02}},
		{name: "reverse direction", args: args{3, 5, 1, 2, 0.02}},
		{name: "vertical", args: args{-1, -1, -1, 3, 0.05}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(1)
			b.Line(tt.args.x1, tt.args.y1, tt.args.x2, tt.args.y2, tt.args.width, RGBA{A: 1})
			p := b.Primitives()[0]

			assert.Equal(t, KindBox, p.Kind)
			// midpoint
			assert.InDelta(t, (tt.args.x1+tt.args.x2)/2, p.Pos[0], 1e-12)
			assert.InDelta(t, (tt.args.y1+tt.args.y2)/2, p.Pos[1], 1e-12)
			// half extents
			assert.InDelta(t, tt.args.width/2, p.Size[1], 1e-12)

			// recover the endpoints from center, half-length and the
			// rotated local x-axis
			ex := p.Pos[0] + p.Rot[0]*p.Size[0]
			ey := p.Pos[1] + p.Rot[3]*p.Size[0]
			sx := p.Pos[0] - p.Rot[0]*p.Size[0]
			sy := p.Pos[1] - p.Rot[3]*p.Size[0]
			assert.InDelta(t, tt.args.x2, ex, 1e-12)
			assert.InDelta(t, tt.args.y2, ey, 1e-12)
			assert.InDelta(t, tt.args.x1, sx, 1e-12)
			assert.InDelta(t, tt.args.y1, sy, 1e-12)

			// proper rotation about z
			assert.InDelta(t, p.Rot[0], p.Rot[4], 1e-12)
			assert.InDelta(t, -p.Rot[1], p.Rot[3], 1e-12)
			assert.Equal(t, 1.0, p.Rot[8])
		})
	}
}

func TestBuffer_DiscIsFlattened(t *testing.T) {
	b := NewBuffer(1)
	b.Disc(0.5, -0.5, 0.15, RGBA{R: 1, A: 0.5})
	p := b.Primitives()[0]

	assert.Equal(t, KindEllipsoid, p.Kind)
	assert.Equal(t, [3]float64{0.15, 0.15, 0.001}, p.Size)
	assert.Equal(t, Identity, p.Rot)
}

func TestBuffer_SphereKeepsHeight(t *testing.T) {
	b := NewBuffer(1)
	b.Sphere(1, 2, 0.2, 0.15, RGBA{R: 1, A: 0.8})
	p := b.Primitives()[0]

	assert.Equal(t, KindSphere, p.Kind)
	assert.Equal(t, [3]float64{1, 2, 0.2}, p.Pos)
	assert.Equal(t, [3]float64{0.15, 0.15, 0.15}, p.Size)
}

func TestBuffer_LabelTruncationAndAlpha(t *testing.T) {
	b := NewBuffer(2)
	long := strings.Repeat("x", 150)
	b.Label(0, 0, 0.5, long, 0.25, 1, 1, 1)
	b.Label(0, 0, 0.5, "short", 0.2, 1, 0, 0)

	p := b.Primitives()[0]
	assert.Len(t, p.Label, MaxLabelLen)
	assert.Equal(t, 1.0, p.Color.A)
	assert.Equal(t, KindLabel, p.Kind)

	assert.Equal(t, "short", b.Primitives()[1].Label)
}
