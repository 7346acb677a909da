package anvil

import "fmt"

// identityCodec is a deterministic, lossless stand-in ImageCodec for
// tests that need exact round trips without depending on a real WebP/PNG
// encoder's pixel-level behavior. It wraps raw bytes with a small header
// carrying the encoded dimensions, which it also uses to validate the
// width/height passed back on decode.
type identityCodec struct{}

var _ ImageCodec = identityCodec{}

func encodeHeader(w, h int) []uint8 {
	return []uint8{
		uint8(w), uint8(w >> 8), uint8(w >> 16), uint8(w >> 24),
		uint8(h), uint8(h >> 8), uint8(h >> 16), uint8(h >> 24),
	}
}

func decodeHeader(data []uint8) (int, int) {
	w := int(data[0]) | int(data[1])<<8 | int(data[2])<<16 | int(data[3])<<24
	h := int(data[4]) | int(data[5])<<8 | int(data[6])<<16 | int(data[7])<<24
	return w, h
}

func (identityCodec) RawToWebP(rgba []uint8, w, h int) ([]uint8, error) {
	out := append(encodeHeader(w, h), rgba...)
	return out, nil
}

func (identityCodec) WebPToRaw(data []uint8, w, h int) ([]uint8, error) {
	dw, dh := decodeHeader(data)
	if dw != w || dh != h {
		return nil, fmt.Errorf("identityCodec: dimension mismatch: got %dx%d, want %dx%d", dw, dh, w, h)
	}
	raw := make([]uint8, len(data)-8)
	copy(raw, data[8:])
	return raw, nil
}

func (identityCodec) RawToPNG(rgba []uint8, w, h int) ([]uint8, error) {
	return identityCodec{}.RawToWebP(rgba, w, h)
}

func (identityCodec) PNGToRaw(data []uint8) ([]uint8, int, int, error) {
	w, h := decodeHeader(data)
	raw, err := identityCodec{}.WebPToRaw(data, w, h)
	return raw, w, h, err
}

// failCodec errors on every call, for exercising error propagation.
type failCodec struct{}

var _ ImageCodec = failCodec{}

func (failCodec) RawToWebP([]uint8, int, int) ([]uint8, error) {
	return nil, fmt.Errorf("failCodec: RawToWebP always fails")
}

func (failCodec) WebPToRaw([]uint8, int, int) ([]uint8, error) {
	return nil, fmt.Errorf("failCodec: WebPToRaw always fails")
}

func (failCodec) RawToPNG([]uint8, int, int) ([]uint8, error) {
	return nil, fmt.Errorf("failCodec: RawToPNG always fails")
}

func (failCodec) PNGToRaw([]uint8) ([]uint8, int, int, error) {
	return nil, 0, 0, fmt.Errorf("failCodec: PNGToRaw always fails")
}

func fillRawGradient(w, h int) []uint8 {
	out := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			out[i] = uint8(x * 17)
			out[i+1] = uint8(y * 23)
			out[i+2] = uint8((x + y) * 5)
			out[i+3] = 255
		}
	}
	return out
}
