package anvil

// Color is an RGBA8 color: four non-premultiplied 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// Transparent is fully transparent black, the zero value of Color.
var Transparent = Color{}

// PackRGBA packs a Color into its transport u32 form, laid out as
// (A<<24)|(R<<16)|(G<<8)|B.
func PackRGBA(c Color) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// UnpackRGBA unpacks a u32 produced by PackRGBA back into a Color.
func UnpackRGBA(u uint32) Color {
	return Color{
		R: uint8(u >> 16),
		G: uint8(u >> 8),
		B: uint8(u),
		A: uint8(u >> 24),
	}
}

// withinThreshold reports whether every channel of a and b differs by no
// more than threshold, the flood-fill match rule.
func withinThreshold(a, b Color, threshold uint8) bool {
	return absDiff(a.R, b.R) <= threshold &&
		absDiff(a.G, b.G) <= threshold &&
		absDiff(a.B, b.B) <= threshold &&
		absDiff(a.A, b.A) <= threshold
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
