package scene

// Kind selects the geometric shape of a primitive.
type Kind int

const (
	KindBox Kind = iota
	KindEllipsoid
	KindSphere
	KindLabel
)

// Category tells the host renderer whether a primitive belongs to the
// overlay or to the physical scene.
type Category int

const (
	CategoryPhysical Category = iota
	CategoryDecoration
)

// RGBA holds color components in [0,1].
type RGBA struct {
	R, G, B, A float64
}

// MaxLabelLen is the longest label text the host representation can
// carry (a 100-byte C string on the host side).
const MaxLabelLen = 99

// Identity is the no-rotation matrix, row major.
var Identity = [9]float64{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

// Primitive is one drawable element of the overlay. Rot maps the
// primitive's local axes to world axes, row major.
type Primitive struct {
	Kind     Kind
	Pos      [3]float64
	Size     [3]float64
	Rot      [9]float64
	Color    RGBA
	Category Category
	Label    string
}

// Buffer is an append-only, capacity-bounded sequence of primitives.
// Appending beyond capacity is a no-op; the drop is counted so the
// silent overflow policy stays observable.
type Buffer struct {
	prims        []Primitive
	capacity     int
	dropped      uint64
	totalDropped uint64
}

func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{
		prims:    make([]Primitive, 0, capacity),
		capacity: capacity,
	}
}

func (b *Buffer) append(p Primitive) {
	if len(b.prims) >= b.capacity {
		b.dropped++
		b.totalDropped++
		return
	}
	b.prims = append(b.prims, p)
}

func (b *Buffer) Len() int { return len(b.prims) }

func (b *Buffer) Cap() int { return b.capacity }

// Dropped reports how many appends were discarded at capacity since
// the last Reset.
func (b *Buffer) Dropped() uint64 { return b.dropped }

// TotalDropped reports the discarded appends over the buffer lifetime.
func (b *Buffer) TotalDropped() uint64 { return b.totalDropped }

// Primitives exposes the buffered primitives in append (paint) order.
func (b *Buffer) Primitives() []Primitive { return b.prims }

// Reset clears the buffer for the next frame, keeping its capacity.
func (b *Buffer) Reset() {
	b.prims = b.prims[:0]
	b.dropped = 0
}
