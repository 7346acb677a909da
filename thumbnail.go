package anvil

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// ThumbnailHandle is a read-only view over a buffer's current pixel
// bytes. The caller contracts not to mutate the returned slice; no copy
// is made, matching the engine's single explicit exception to "no method
// returns a reference outliving the call".
type ThumbnailHandle struct {
	Width, Height int
	Bytes         []uint8
}

// ThumbnailHandle returns a read-only view over the buffer's current bytes.
func (a *Anvil) ThumbnailHandle() ThumbnailHandle {
	return ThumbnailHandle{Width: a.buffer.Width(), Height: a.buffer.Height(), Bytes: a.buffer.Bytes()}
}

// ExportThumbnailPNG downscales the current buffer to fit within maxW x
// maxH (preserving aspect ratio) using a Catmull-Rom resampler, and
// encodes the result as PNG. If the buffer already fits, it is encoded
// at its current size.
func (a *Anvil) ExportThumbnailPNG(maxW, maxH int) ([]uint8, error) {
	w, h := a.buffer.Width(), a.buffer.Height()
	tw, th := thumbnailDims(w, h, maxW, maxH)

	src := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(src.Pix, a.buffer.Bytes())

	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("anvil: encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// thumbnailDims scales (w,h) down to fit within (maxW,maxH), preserving
// aspect ratio. Dimensions already within bounds are left unchanged.
func thumbnailDims(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	tw := int(float64(w) * scale)
	th := int(float64(h) * scale)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}
	return tw, th
}

// DirtyTileRects returns the pixel-space bounds for every dirty tile, so
// a renderer does not have to re-derive them from tile indices itself.
func (a *Anvil) DirtyTileRects() []BoundBox {
	indices := a.tiles.DirtyTileIndices()
	rects := make([]BoundBox, len(indices))
	for i, idx := range indices {
		rects[i] = a.tiles.TileBounds(idx)
	}
	return rects
}
