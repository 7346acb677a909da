package anvil

import "fmt"

// DiffController collects the pre-images of a sequence of mutations and,
// on flush, emits a compact PackedDiffs the caller can store and replay
// via ApplyPatch. It tracks three diff kinds of increasing coarseness —
// pixel, partial, whole — and enforces a coercion lattice: ingesting a
// coarser kind discards whatever finer pending state it supersedes.
type DiffController struct {
	codec ImageCodec

	pixels  []PixelPatch
	partial *PackedPartial
	whole   *PackedWhole
}

// NewDiffController returns an empty controller backed by codec, used to
// pack partial and whole pre-images at ingest time.
func NewDiffController(codec ImageCodec) *DiffController {
	return &DiffController{codec: codec}
}

// AddPixel appends a pixel-level pre-image. A no-op if a partial or whole
// diff is already pending, so pending pixels stay empty whenever a
// coarser kind is set. A pending whole covers every pixel; a pending
// partial covers only its box, and pixels outside it are not recorded.
// Tile dirtiness is the facade's responsibility, not the controller's.
func (d *DiffController) AddPixel(x, y int, colorBefore Color) {
	if d.whole != nil || d.partial != nil {
		return
	}
	d.pixels = append(d.pixels, PixelPatch{X: x, Y: y, PackedColor: PackRGBA(colorBefore)})
}

// AddPartial ingests a region pre-image, packing it through the codec
// immediately and clearing any pending pixel diffs. If a whole diff is
// already pending, the partial is ignored: the whole already covers it.
func (d *DiffController) AddPartial(box BoundBox, swapBuffer []uint8) error {
	if len(swapBuffer) != box.Area()*4 {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d box", ErrPartialBufferSizeMismatch, len(swapBuffer), box.Area()*4, box.Width, box.Height)
	}
	if d.whole != nil {
		return nil
	}
	webp, err := d.codec.RawToWebP(swapBuffer, box.Width, box.Height)
	if err != nil {
		return err
	}
	d.partial = &PackedPartial{Box: box, SwapWebP: webp}
	d.pixels = nil
	return nil
}

// AddWhole ingests a whole-buffer pre-image, packing it through the codec
// immediately and clearing any pending pixel and partial diffs.
func (d *DiffController) AddWhole(width, height int, swapBuffer []uint8) error {
	webp, err := d.codec.RawToWebP(swapBuffer, width, height)
	if err != nil {
		return err
	}
	d.AddWholePacked(&PackedWhole{Width: width, Height: height, SwapWebP: webp})
	return nil
}

// AddWholePacked ingests an already-encoded whole pre-image, for callers
// that already hold a WebP snapshot (e.g. from an export). Clears
// pending pixel and partial diffs.
func (d *DiffController) AddWholePacked(packed *PackedWhole) {
	d.whole = packed
	d.partial = nil
	d.pixels = nil
}

// HasPendingChanges reports whether any diff kind is non-empty.
func (d *DiffController) HasPendingChanges() bool {
	return len(d.pixels) > 0 || d.partial != nil || d.whole != nil
}

// PreviewPatch builds and returns the current PackedDiffs without
// clearing controller state.
func (d *DiffController) PreviewPatch() PackedDiffs {
	var pixels []PixelPatch
	if len(d.pixels) > 0 {
		pixels = make([]PixelPatch, len(d.pixels))
		copy(pixels, d.pixels)
	}
	return PackedDiffs{Pixels: pixels, Partial: d.partial, Whole: d.whole}
}

// Flush returns the current PackedDiffs and resets controller state.
// Repeated flushes with no intervening writes return an empty patch.
func (d *DiffController) Flush() PackedDiffs {
	patch := d.PreviewPatch()
	d.pixels = nil
	d.partial = nil
	d.whole = nil
	return patch
}

// Discard resets controller state without returning a patch.
func (d *DiffController) Discard() {
	d.pixels = nil
	d.partial = nil
	d.whole = nil
}
