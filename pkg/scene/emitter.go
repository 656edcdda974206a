package scene

import "math"

// Overlay primitives are thin 3D bodies on the ground plane: boxes and
// flattened ellipsoids with a near-zero vertical extent.
const flatThickness = 0.001

// Rectangle appends a flat axis-aligned box. Width and height are
// carried through unchanged into the size fields.
func (b *Buffer) Rectangle(x, y, width, height float64, c RGBA) {
	b.append(Primitive{
		Kind:     KindBox,
		Pos:      [3]float64{x, y, 0},
		Size:     [3]float64{width, height, flatThickness},
		Rot:      Identity,
		Color:    c,
		Category: CategoryDecoration,
	})
}

// Line appends a segment modeled as a thin box: half-length d/2,
// half-width width/2, centered on the midpoint and rotated about the
// vertical axis so the local x-axis aligns with the segment direction.
func (b *Buffer) Line(x1, y1, x2, y2, width float64, c RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	angle := math.Atan2(dy, dx)

	cosA := math.Cos(angle)
	sinA := math.Sin(angle)
	b.append(Primitive{
		Kind: KindBox,
		Pos:  [3]float64{(x1 + x2) / 2, (y1 + y2) / 2, 0},
		Size: [3]float64{length / 2, width / 2, flatThickness},
		Rot: [9]float64{
			cosA, -sinA, 0,
			sinA, cosA, 0,
			0, 0, 1,
		},
		Color:    c,
		Category: CategoryDecoration,
	})
}

// Disc appends a vertically flattened ellipsoid.
func (b *Buffer) Disc(x, y, radius float64, c RGBA) {
	b.append(Primitive{
		Kind:     KindEllipsoid,
		Pos:      [3]float64{x, y, 0},
		Size:     [3]float64{radius, radius, flatThickness},
		Rot:      Identity,
		Color:    c,
		Category: CategoryDecoration,
	})
}

// Sphere appends a full sphere, used for markers that must read as
// physical objects rather than flat overlay content.
func (b *Buffer) Sphere(x, y, z, radius float64, c RGBA) {
	b.append(Primitive{
		Kind:     KindSphere,
		Pos:      [3]float64{x, y, z},
		Size:     [3]float64{radius, radius, radius},
		Rot:      Identity,
		Color:    c,
		Category: CategoryDecoration,
	})
}

// Label appends an opaque text payload. Alpha is fixed at 1 and the
// text is truncated to the host limit.
func (b *Buffer) Label(x, y, z float64, text string, size, r, g, bl float64) {
	if len(text) > MaxLabelLen {
		text = text[:MaxLabelLen]
	}
	b.append(Primitive{
		Kind:     KindLabel,
		Pos:      [3]float64{x, y, z},
		Size:     [3]float64{size, size, size},
		Rot:      Identity,
		Color:    RGBA{R: r, G: g, B: bl, A: 1},
		Category: CategoryDecoration,
		Label:    text,
	})
}
