package anvil

import "fmt"

// Anvil is the facade wiring PixelBuffer, TileGrid, and DiffController
// into one engine for a single layer. It is the only place that reasons
// about more than one owned subsystem at a time: every mutator touches
// the pixel bytes, the dirty index, and the pending diffs together.
//
// Anvil is strictly single-threaded: no method suspends, there are no
// background workers, and callers must serialize their own calls.
type Anvil struct {
	buffer *PixelBuffer
	tiles  *TileGrid
	diffs  *DiffController
	codec  ImageCodec
}

// NewAnvil creates an Anvil over a new transparent-black buffer of the
// given size.
func NewAnvil(width, height int, opts ...AnvilOption) *Anvil {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Anvil{
		buffer: NewPixelBuffer(width, height),
		tiles:  NewTileGrid(width, height, options.tileSize),
		diffs:  NewDiffController(options.codec),
		codec:  options.codec,
	}
}

// GetWidth returns the buffer width in pixels.
func (a *Anvil) GetWidth() int { return a.buffer.Width() }

// GetHeight returns the buffer height in pixels.
func (a *Anvil) GetHeight() int { return a.buffer.Height() }

// GetTileSize returns the TileGrid's tile edge length.
func (a *Anvil) GetTileSize() int { return a.tiles.TileSize() }

// HasPendingChanges reports whether any diff kind is currently pending.
func (a *Anvil) HasPendingChanges() bool { return a.diffs.HasPendingChanges() }

// GetPixel returns the pixel at (x,y), failing with ErrOutOfBounds if the
// coordinate is outside the buffer.
func (a *Anvil) GetPixel(x, y int) (Color, error) {
	if !a.buffer.IsInBounds(x, y) {
		return Transparent, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	return a.buffer.Get(x, y), nil
}

// SetPixel writes color at (x,y), failing with ErrOutOfBounds if the
// coordinate is outside the buffer. Records the pre-mutation color and
// marks the containing tile dirty.
func (a *Anvil) SetPixel(x, y int, color Color) error {
	if !a.buffer.IsInBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	old := a.buffer.Get(x, y)
	a.buffer.Set(x, y, color)
	a.tiles.MarkDirtyByPixel(x, y)
	a.diffs.AddPixel(x, y, old)
	return nil
}

// FillRect fills a rectangle with color, clipping to bounds. Every
// written pixel is recorded as an individual pixel diff and its tile
// marked dirty.
func (a *Anvil) FillRect(x, y, w, h int, color Color) {
	box, ok := BoundBox{X: x, Y: y, Width: w, Height: h}.clampToBuffer(a.buffer.Width(), a.buffer.Height())
	if !ok {
		return
	}
	for py := box.Y; py < box.Y+box.Height; py++ {
		for px := box.X; px < box.X+box.Width; px++ {
			old := a.buffer.Get(px, py)
			if a.buffer.Set(px, py, color) || old != color {
				a.diffs.AddPixel(px, py, old)
			}
		}
	}
	a.tiles.MarkRectDirty(box)
}

// FillAll fills the entire buffer with color and marks every tile dirty.
func (a *Anvil) FillAll(color Color) {
	a.FillRect(0, 0, a.buffer.Width(), a.buffer.Height(), color)
}

// FillMaskArea fills pixels where mask (positioned at maskOffX,maskOffY)
// is eligible under mode, recording per-pixel diffs.
func (a *Anvil) FillMaskArea(mask *Mask, maskOffX, maskOffY int, color Color, mode MaskMode) {
	maskW, maskH := mask.Width(), mask.Height()
	for y := 0; y < maskH; y++ {
		py := maskOffY + y
		for x := 0; x < maskW; x++ {
			if !mode.eligible(mask.At(x, y)) {
				continue
			}
			px := maskOffX + x
			if !a.buffer.IsInBounds(px, py) {
				continue
			}
			old := a.buffer.Get(px, py)
			if a.buffer.Set(px, py, color) {
				a.diffs.AddPixel(px, py, old)
				a.tiles.MarkDirtyByPixel(px, py)
			}
		}
	}
}

// FloodFill delegates to the buffer's scanline flood fill. It does not
// record per-pixel diffs; callers that need undo must snapshot with
// AddPartialDiff/AddCurrentWholeDiff first. Marks every tile dirty as an
// over-approximation of the visited region.
func (a *Anvil) FloodFill(startX, startY int, color Color, threshold uint8) bool {
	changed := a.buffer.FloodFill(startX, startY, color, threshold)
	if changed {
		a.tiles.SetAllDirty()
	}
	return changed
}

// TransferFromRaw composites src onto the buffer via an affine blit and
// marks every tile dirty as an over-approximation of the written area. Does not
// record diffs; wrap with a partial/whole snapshot for undo.
func (a *Anvil) TransferFromRaw(src []uint8, srcW, srcH int, offsetX, offsetY, scaleX, scaleY, rotateDeg float64, antialias AntialiasMode, flipX, flipY bool) {
	a.buffer.BlitFromRaw(src, srcW, srcH, offsetX, offsetY, scaleX, scaleY, rotateDeg, antialias, flipX, flipY)
	a.tiles.SetAllDirty()
}

// WriteRect writes src into the buffer at (x,y), clipping to bounds, and
// marks intersecting tiles dirty. Does not itself record diffs.
func (a *Anvil) WriteRect(x, y, w, h int, src []uint8) error {
	if err := a.buffer.WriteRect(x, y, w, h, src); err != nil {
		return err
	}
	a.tiles.MarkRectDirty(BoundBox{X: x, Y: y, Width: w, Height: h})
	return nil
}

// ReadRect returns a freshly allocated w*h*4 buffer sampled from (x,y,w,h).
func (a *Anvil) ReadRect(x, y, w, h int) []uint8 {
	return a.buffer.ReadRect(x, y, w, h)
}

// WritePixels bulk scatter-writes coords/colors and marks each written
// pixel's tile dirty.
func (a *Anvil) WritePixels(coords []uint32, colors []uint8) {
	a.buffer.WritePixels(coords, colors)
	for i := 0; i < len(coords)/2; i++ {
		a.tiles.MarkDirtyByPixel(int(coords[2*i]), int(coords[2*i+1]))
	}
}

// Resize reallocates the buffer and tile grid to newW x newH, preserving
// content at the origin and discarding pending diffs. Callers that need
// the resize itself to be undoable should flush or AddCurrentWholeDiff
// beforehand.
func (a *Anvil) Resize(newW, newH int) {
	a.ResizeWithOffset(newW, newH, 0, 0, 0, 0)
}

// ResizeWithOffset reallocates the buffer and tile grid to newW x newH,
// copying the intersection of the source rectangle at (srcOriginX,
// srcOriginY) into the destination at (destOriginX, destOriginY), and
// discards pending diffs.
func (a *Anvil) ResizeWithOffset(newW, newH, srcOriginX, srcOriginY, destOriginX, destOriginY int) {
	a.buffer.ResizeWithOrigins(newW, newH, srcOriginX, srcOriginY, destOriginX, destOriginY)
	a.tiles.Resize(newW, newH)
	a.diffs.Discard()
}

// ImportRaw overwrites the entire buffer from w*h*4 RGBA8 bytes, which
// may change dimensions. Fails with ErrBufferSizeMismatch on a length
// mismatch; the buffer is left unchanged in that case.
func (a *Anvil) ImportRaw(width, height int, bytes []uint8) error {
	buf, err := NewPixelBufferFromRaw(width, height, bytes)
	if err != nil {
		return err
	}
	Logger().Debug("anvil: buffer reallocation", "oldWidth", a.buffer.Width(), "oldHeight", a.buffer.Height(), "newWidth", width, "newHeight", height, "source", "import")
	a.buffer = buf
	a.tiles = NewTileGrid(width, height, a.tiles.TileSize())
	a.tiles.SetAllDirty()
	a.diffs.Discard()
	return nil
}

// ImportWebP decodes WebP bytes and overwrites the entire buffer.
// Returns false and leaves the buffer unchanged on decode failure.
func (a *Anvil) ImportWebP(width, height int, data []uint8) bool {
	raw, err := a.codec.WebPToRaw(data, width, height)
	if err != nil {
		Logger().Warn("anvil: import webp decode failed", "error", err)
		return false
	}
	return a.ImportRaw(width, height, raw) == nil
}

// ImportPNG decodes PNG bytes and overwrites the entire buffer, adopting
// the decoded image's own dimensions. Returns false and leaves the
// buffer unchanged on decode failure.
func (a *Anvil) ImportPNG(data []uint8) bool {
	raw, w, h, err := a.codec.PNGToRaw(data)
	if err != nil {
		Logger().Warn("anvil: import png decode failed", "error", err)
		return false
	}
	return a.ImportRaw(w, h, raw) == nil
}

// ExportWebP encodes the current buffer to WebP bytes via the configured codec.
func (a *Anvil) ExportWebP() ([]uint8, error) {
	return a.codec.RawToWebP(a.buffer.Bytes(), a.buffer.Width(), a.buffer.Height())
}

// ExportPNG encodes the current buffer to PNG bytes via the configured codec.
func (a *Anvil) ExportPNG() ([]uint8, error) {
	return a.codec.RawToPNG(a.buffer.Bytes(), a.buffer.Width(), a.buffer.Height())
}

// AddCurrentWholeDiff snapshots the current buffer via the codec and
// records it as the pre-image: "save before you mutate".
func (a *Anvil) AddCurrentWholeDiff() error {
	return a.diffs.AddWhole(a.buffer.Width(), a.buffer.Height(), a.buffer.Bytes())
}

// AddPartialDiff records a region pre-image. When setDirty is true, every
// tile intersecting box is also marked dirty.
func (a *Anvil) AddPartialDiff(box BoundBox, swapBuffer []uint8, setDirty bool) error {
	if err := a.diffs.AddPartial(box, swapBuffer); err != nil {
		return err
	}
	if setDirty {
		a.tiles.MarkRectDirty(box)
	}
	return nil
}

// AddPixelDiff records a single pixel pre-image without touching the buffer.
func (a *Anvil) AddPixelDiff(x, y int, colorBefore Color) {
	a.diffs.AddPixel(x, y, colorBefore)
}

// PreviewPatch returns the current pending diffs without clearing them.
func (a *Anvil) PreviewPatch() PackedDiffs { return a.diffs.PreviewPatch() }

// FlushDiffs returns the packed pending diffs and clears controller
// state. Does not itself clear tile dirtiness; the renderer's upload
// loop does that via ClearDirtyTiles.
func (a *Anvil) FlushDiffs() PackedDiffs { return a.diffs.Flush() }

// DiscardDiffs clears pending diff state without returning a patch.
func (a *Anvil) DiscardDiffs() { a.diffs.Discard() }

// GetDirtyTiles enumerates dirty tile indices in row-major order.
func (a *Anvil) GetDirtyTiles() []TileIndex { return a.tiles.DirtyTileIndices() }

// ClearDirtyTiles marks every tile clean.
func (a *Anvil) ClearDirtyTiles() { a.tiles.ClearAllDirty() }

// SetAllDirty marks every tile dirty.
func (a *Anvil) SetAllDirty() { a.tiles.SetAllDirty() }

// GetTileInfo returns the pixel-space bounds of a tile index.
func (a *Anvil) GetTileInfo(idx TileIndex) BoundBox { return a.tiles.TileBounds(idx) }
