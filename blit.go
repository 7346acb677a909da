package anvil

import (
	"github.com/gogpu/anvil/internal/raster"
)

// AntialiasMode selects the resampling filter used by BlitFromRaw.
type AntialiasMode uint8

const (
	// AANearest is the fastest, blockiest option.
	AANearest AntialiasMode = iota
	// AABilinear interpolates between 4 neighboring source pixels.
	AABilinear
	// AABicubic interpolates with Catmull-Rom weights over a 4x4 neighborhood.
	AABicubic
)

func (m AntialiasMode) rasterMode() raster.Mode {
	switch m {
	case AABilinear:
		return raster.Bilinear
	case AABicubic:
		return raster.Bicubic
	default:
		return raster.Nearest
	}
}

// rawSource adapts a raw RGBA8 byte buffer to raster.Source.
type rawSource struct {
	w, h int
	data []uint8
}

func (s rawSource) Bounds() (int, int) { return s.w, s.h }

func (s rawSource) At(x, y int) (r, g, b, a uint8) {
	i := (y*s.w + x) * 4
	return s.data[i], s.data[i+1], s.data[i+2], s.data[i+3]
}

// BlitFromRaw composites src (srcW x srcH RGBA8) onto the buffer. The
// source is transformed scale -> flip -> rotate -> translate, resampled
// per antialias, and composited with source-over alpha blending:
// fully-transparent source pixels leave the destination untouched.
// Out-of-bounds destination pixels are skipped.
func (p *PixelBuffer) BlitFromRaw(src []uint8, srcW, srcH int, offsetX, offsetY, scaleX, scaleY, rotateDeg float64, antialias AntialiasMode, flipX, flipY bool) {
	transform := raster.BlitTransform(srcW, srcH, offsetX, offsetY, scaleX, scaleY, rotateDeg, flipX, flipY)
	inv, ok := transform.Invert()
	if !ok {
		return
	}

	source := rawSource{w: srcW, h: srcH, data: src}
	mode := antialias.rasterMode()

	// Determine the destination bounding box the transformed source can
	// possibly touch, then walk only that region.
	minX, minY, maxX, maxY := destExtent(transform, srcW, srcH, p.width, p.height)

	for dy := minY; dy < maxY; dy++ {
		for dx := minX; dx < maxX; dx++ {
			sx, sy := inv.TransformPoint(float64(dx)+0.5, float64(dy)+0.5)
			if sx < 0 || sx >= float64(srcW) || sy < 0 || sy >= float64(srcH) {
				continue
			}
			sr, sg, sb, sa := raster.Sample(source, sx, sy, mode)
			if sa == 0 {
				continue
			}
			di := p.index(dx, dy)
			dr, dg, db, da := p.data[di], p.data[di+1], p.data[di+2], p.data[di+3]
			r, g, b, a := raster.Composite(sr, sg, sb, sa, dr, dg, db, da, raster.AlphaOver)
			p.data[di] = r
			p.data[di+1] = g
			p.data[di+2] = b
			p.data[di+3] = a
		}
	}
}

// destExtent bounds the destination region a transformed srcW x srcH
// rectangle can cover, clamped to the destination buffer.
func destExtent(transform raster.Affine, srcW, srcH, dstW, dstH int) (minX, minY, maxX, maxY int) {
	corners := [4][2]float64{{0, 0}, {float64(srcW), 0}, {0, float64(srcH)}, {float64(srcW), float64(srcH)}}
	minXf, minYf := transform.TransformPoint(corners[0][0], corners[0][1])
	maxXf, maxYf := minXf, minYf
	for _, c := range corners[1:] {
		x, y := transform.TransformPoint(c[0], c[1])
		if x < minXf {
			minXf = x
		}
		if x > maxXf {
			maxXf = x
		}
		if y < minYf {
			minYf = y
		}
		if y > maxYf {
			maxYf = y
		}
	}
	minX = clampInt(int(minXf)-1, 0, dstW)
	minY = clampInt(int(minYf)-1, 0, dstH)
	maxX = clampInt(int(maxXf)+2, 0, dstW)
	maxY = clampInt(int(maxYf)+2, 0, dstH)
	return
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SliceWithMask returns a new mask.Width()*mask.Height()*4 buffer
// containing pixels sampled from (maskOffX+x, maskOffY+y) wherever the
// mask is non-zero, transparent black elsewhere.
func (p *PixelBuffer) SliceWithMask(mask *Mask, maskOffX, maskOffY int) []uint8 {
	maskW, maskH := mask.Width(), mask.Height()
	out := make([]uint8, maskW*maskH*4)
	for y := 0; y < maskH; y++ {
		for x := 0; x < maskW; x++ {
			if mask.At(x, y) == 0 {
				continue
			}
			c := p.Get(maskOffX+x, maskOffY+y)
			i := (y*maskW + x) * 4
			out[i] = c.R
			out[i+1] = c.G
			out[i+2] = c.B
			out[i+3] = c.A
		}
	}
	return out
}

// CropWithMask returns a buffer the same size as the receiver, keeping
// only pixels where mask (positioned at maskOffX,maskOffY) is non-zero;
// everything else is transparent black.
func (p *PixelBuffer) CropWithMask(mask *Mask, maskOffX, maskOffY int) []uint8 {
	maskW, maskH := mask.Width(), mask.Height()
	out := make([]uint8, p.width*p.height*4)
	for y := 0; y < maskH; y++ {
		my := maskOffY + y
		if my < 0 || my >= p.height {
			continue
		}
		for x := 0; x < maskW; x++ {
			if mask.At(x, y) == 0 {
				continue
			}
			mx := maskOffX + x
			if mx < 0 || mx >= p.width {
				continue
			}
			si := p.index(mx, my)
			di := (my*p.width + mx) * 4
			out[di] = p.data[si]
			out[di+1] = p.data[si+1]
			out[di+2] = p.data[si+2]
			out[di+3] = p.data[si+3]
		}
	}
	return out
}
