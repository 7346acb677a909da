package raster

import "math"

// Mode selects how Sample resamples a source buffer between pixel
// centers.
type Mode uint8

const (
	// Nearest selects the closest source pixel.
	Nearest Mode = iota
	// Bilinear interpolates linearly between 4 neighboring pixels.
	Bilinear
	// Bicubic interpolates with Catmull-Rom weights over a 4x4 neighborhood.
	Bicubic
)

// Source is a read-only RGBA8 pixel source for sampling.
type Source interface {
	Bounds() (w, h int)
	At(x, y int) (r, g, b, a uint8)
}

// Sample samples src at continuous pixel coordinates (x,y) using mode.
// Coordinates outside the source are clamped to the edge.
func Sample(src Source, x, y float64, mode Mode) (r, g, b, a uint8) {
	switch mode {
	case Bilinear:
		return sampleBilinear(src, x, y)
	case Bicubic:
		return sampleBicubic(src, x, y)
	default:
		return sampleNearest(src, x, y)
	}
}

func sampleNearest(src Source, x, y float64) (r, g, b, a uint8) {
	w, h := src.Bounds()
	px := clampInt(int(math.Floor(x)), 0, w-1)
	py := clampInt(int(math.Floor(y)), 0, h-1)
	return src.At(px, py)
}

func sampleBilinear(src Source, x, y float64) (r, g, b, a uint8) {
	w, h := src.Bounds()
	fx := x - 0.5
	fy := y - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)
	x1, y1 := x0+1, y0+1

	x0 = clampInt(x0, 0, w-1)
	y0 = clampInt(y0, 0, h-1)
	x1 = clampInt(x1, 0, w-1)
	y1 = clampInt(y1, 0, h-1)

	r00, g00, b00, a00 := src.At(x0, y0)
	r10, g10, b10, a10 := src.At(x1, y0)
	r01, g01, b01, a01 := src.At(x0, y1)
	r11, g11, b11, a11 := src.At(x1, y1)

	r = uint8(lerp2D(float64(r00), float64(r10), float64(r01), float64(r11), tx, ty))
	g = uint8(lerp2D(float64(g00), float64(g10), float64(g01), float64(g11), tx, ty))
	b = uint8(lerp2D(float64(b00), float64(b10), float64(b01), float64(b11), tx, ty))
	a = uint8(lerp2D(float64(a00), float64(a10), float64(a01), float64(a11), tx, ty))
	return
}

func sampleBicubic(src Source, x, y float64) (r, g, b, a uint8) {
	w, h := src.Bounds()
	fx := x - 0.5
	fy := y - 0.5
	ix := int(math.Floor(fx))
	iy := int(math.Floor(fy))
	tx := fx - float64(ix)
	ty := fy - float64(iy)

	var rVals, gVals, bVals, aVals [4][4]float64
	for dy := -1; dy <= 2; dy++ {
		for dx := -1; dx <= 2; dx++ {
			px := clampInt(ix+dx, 0, w-1)
			py := clampInt(iy+dy, 0, h-1)
			pr, pg, pb, pa := src.At(px, py)
			rVals[dy+1][dx+1] = float64(pr)
			gVals[dy+1][dx+1] = float64(pg)
			bVals[dy+1][dx+1] = float64(pb)
			aVals[dy+1][dx+1] = float64(pa)
		}
	}

	r = uint8(clampFloat(bicubicInterp(rVals, tx, ty), 0, 255))
	g = uint8(clampFloat(bicubicInterp(gVals, tx, ty), 0, 255))
	b = uint8(clampFloat(bicubicInterp(bVals, tx, ty), 0, 255))
	a = uint8(clampFloat(bicubicInterp(aVals, tx, ty), 0, 255))
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

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}

// cubicWeight computes the Catmull-Rom cubic weight for distance t.
func cubicWeight(t float64) float64 {
	absT := math.Abs(t)
	if absT < 1 {
		return 1.5*absT*absT*absT - 2.5*absT*absT + 1.0
	}
	if absT < 2 {
		return -0.5*absT*absT*absT + 2.5*absT*absT - 4.0*absT + 2.0
	}
	return 0
}

func bicubicInterp(vals [4][4]float64, tx, ty float64) float64 {
	wx := [4]float64{cubicWeight(tx + 1), cubicWeight(tx), cubicWeight(tx - 1), cubicWeight(tx - 2)}
	wy := [4]float64{cubicWeight(ty + 1), cubicWeight(ty), cubicWeight(ty - 1), cubicWeight(ty - 2)}

	var result float64
	for i := range 4 {
		for j := range 4 {
			result += vals[i][j] * wx[j] * wy[i]
		}
	}
	return result
}
