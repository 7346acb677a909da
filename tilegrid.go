package anvil

import "math/bits"

// TileGrid tracks, per tileSize x tileSize cell of a buffer, whether that
// cell contains a recent write. It is a coarse "who needs redraw" index
// for a renderer deciding what to re-upload; it holds no pixel data of
// its own.
type TileGrid struct {
	tileSize int
	width    int
	height   int
	rows     int
	cols     int
	words    []uint32 // 32 tiles per word, bit index = row*cols+col
}

// NewTileGrid allocates a zeroed (all-clean) grid over a width x height
// buffer with the given tileSize.
func NewTileGrid(width, height, tileSize int) *TileGrid {
	g := &TileGrid{tileSize: tileSize}
	g.reshape(width, height)
	return g
}

func (g *TileGrid) reshape(width, height int) {
	g.width = width
	g.height = height
	g.cols = ceilDiv(width, g.tileSize)
	g.rows = ceilDiv(height, g.tileSize)
	g.words = make([]uint32, ceilDiv(g.rows*g.cols, 32))
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// TileSize returns the grid's tile edge length.
func (g *TileGrid) TileSize() int { return g.tileSize }

// Rows returns the number of tile rows.
func (g *TileGrid) Rows() int { return g.rows }

// Cols returns the number of tile columns.
func (g *TileGrid) Cols() int { return g.cols }

func (g *TileGrid) linear(idx TileIndex) (int, bool) {
	if idx.Row < 0 || idx.Row >= g.rows || idx.Col < 0 || idx.Col >= g.cols {
		return 0, false
	}
	return idx.Row*g.cols + idx.Col, true
}

// PixelToTile maps a pixel coordinate to the tile that contains it.
func (g *TileGrid) PixelToTile(x, y int) TileIndex {
	return TileIndex{Row: y / g.tileSize, Col: x / g.tileSize}
}

// TileBounds returns the pixel-space rectangle covered by a tile index.
// Edge tiles are clipped to the buffer, so width/height may be smaller
// than tileSize.
func (g *TileGrid) TileBounds(idx TileIndex) BoundBox {
	x := idx.Col * g.tileSize
	y := idx.Row * g.tileSize
	w := g.tileSize
	if x+w > g.width {
		w = g.width - x
	}
	h := g.tileSize
	if y+h > g.height {
		h = g.height - y
	}
	return BoundBox{X: x, Y: y, Width: w, Height: h}
}

// IsDirty reports whether a tile is marked dirty. Out-of-range indices
// return false.
func (g *TileGrid) IsDirty(idx TileIndex) bool {
	i, ok := g.linear(idx)
	if !ok {
		return false
	}
	return g.words[i/32]&(1<<uint(i%32)) != 0
}

// SetDirty sets or clears a tile's dirty flag. Out-of-range indices are
// silently accepted as no-ops.
func (g *TileGrid) SetDirty(idx TileIndex, dirty bool) {
	i, ok := g.linear(idx)
	if !ok {
		return
	}
	word := i / 32
	bit := uint32(1) << uint(i%32)
	if dirty {
		g.words[word] |= bit
	} else {
		g.words[word] &^= bit
	}
}

// MarkDirtyByPixel is a convenience for SetDirty(PixelToTile(x,y), true).
func (g *TileGrid) MarkDirtyByPixel(x, y int) {
	g.SetDirty(g.PixelToTile(x, y), true)
}

// MarkRectDirty marks every tile intersecting the pixel rectangle dirty.
func (g *TileGrid) MarkRectDirty(box BoundBox) {
	clamped, ok := box.clampToBuffer(g.width, g.height)
	if !ok {
		return
	}
	top := g.PixelToTile(clamped.X, clamped.Y)
	bottom := g.PixelToTile(clamped.X+clamped.Width-1, clamped.Y+clamped.Height-1)
	for r := top.Row; r <= bottom.Row; r++ {
		for c := top.Col; c <= bottom.Col; c++ {
			g.SetDirty(TileIndex{Row: r, Col: c}, true)
		}
	}
}

// ClearAllDirty marks every tile clean.
func (g *TileGrid) ClearAllDirty() {
	for i := range g.words {
		g.words[i] = 0
	}
}

// SetAllDirty marks every tile dirty, leaving unused trailing bits zero.
func (g *TileGrid) SetAllDirty() {
	total := g.rows * g.cols
	fullWords := total / 32
	remainder := total % 32
	for i := 0; i < fullWords; i++ {
		g.words[i] = ^uint32(0)
	}
	if remainder > 0 {
		g.words[fullWords] = (uint32(1) << uint(remainder)) - 1
	}
}

// DirtyTileIndices enumerates dirty tile indices in row-major order.
func (g *TileGrid) DirtyTileIndices() []TileIndex {
	var out []TileIndex
	total := g.rows * g.cols
	for w := range g.words {
		word := g.words[w]
		for word != 0 {
			bit := bits.TrailingZeros32(word)
			idx := w*32 + bit
			if idx >= total {
				break
			}
			out = append(out, TileIndex{Row: idx / g.cols, Col: idx % g.cols})
			word &^= 1 << uint(bit)
		}
	}
	return out
}

// Resize recomputes rows/cols for a new buffer size, preserving dirty
// bits for tile indices present in both the old and new grid.
func (g *TileGrid) Resize(newWidth, newHeight int) {
	oldRows, oldCols := g.rows, g.cols
	oldWords := g.words

	Logger().Debug("anvil: tile grid resize", "oldRows", oldRows, "oldCols", oldCols, "newWidth", newWidth, "newHeight", newHeight)

	g.reshape(newWidth, newHeight)

	minRows := oldRows
	if g.rows < minRows {
		minRows = g.rows
	}
	minCols := oldCols
	if g.cols < minCols {
		minCols = g.cols
	}

	for r := 0; r < minRows; r++ {
		for c := 0; c < minCols; c++ {
			oldIdx := r*oldCols + c
			if oldWords[oldIdx/32]&(1<<uint(oldIdx%32)) == 0 {
				continue
			}
			g.SetDirty(TileIndex{Row: r, Col: c}, true)
		}
	}
}
