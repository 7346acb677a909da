package anvil

// BoundBox is an axis-aligned rectangle in pixel space. Width and Height
// are never negative; a BoundBox fully outside a buffer is tolerated by
// every operation that accepts one and treated as a no-op.
type BoundBox struct {
	X, Y          int
	Width, Height int
}

// Area returns Width*Height.
func (b BoundBox) Area() int {
	return b.Width * b.Height
}

// clampToBuffer intersects b with the [0,w) x [0,h) rectangle, returning
// the clamped box and whether any of it survived.
func (b BoundBox) clampToBuffer(w, h int) (BoundBox, bool) {
	x0, y0 := b.X, b.Y
	x1, y1 := b.X+b.Width, b.Y+b.Height

	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > w {
		x1 = w
	}
	if y1 > h {
		y1 = h
	}

	if x0 >= x1 || y0 >= y1 {
		return BoundBox{}, false
	}
	return BoundBox{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}

// TileIndex identifies one cell of a TileGrid by row and column.
type TileIndex struct {
	Row, Col int
}
