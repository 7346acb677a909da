package anvil

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/HugoSmits86/nativewebp"
)

// DefaultCodec is the concrete ImageCodec backing NewAnvil when no
// WithCodec option is supplied. It encodes WebP via nativewebp (pure Go,
// no cgo) and PNG via the standard library.
type DefaultCodec struct{}

var _ ImageCodec = DefaultCodec{}

// RawToWebP implements ImageCodec.
func (DefaultCodec) RawToWebP(rgba []uint8, w, h int) ([]uint8, error) {
	img := rgbaImage(rgba, w, h)
	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("anvil: encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// WebPToRaw implements ImageCodec.
func (DefaultCodec) WebPToRaw(data []uint8, w, h int) ([]uint8, error) {
	img, err := nativewebp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("anvil: decode webp: %w", err)
	}
	return imageToRaw(img, w, h), nil
}

// RawToPNG implements ImageCodec.
func (DefaultCodec) RawToPNG(rgba []uint8, w, h int) ([]uint8, error) {
	img := rgbaImage(rgba, w, h)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("anvil: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// PNGToRaw implements ImageCodec.
func (DefaultCodec) PNGToRaw(data []uint8) ([]uint8, int, int, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("anvil: decode png: %w", err)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	return imageToRaw(img, w, h), w, h, nil
}

// rgbaImage wraps non-premultiplied RGBA8 bytes as an image.NRGBA, the
// color model matching this engine's Color.
func rgbaImage(rgba []uint8, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, rgba)
	return img
}

// imageToRaw converts any decoded image.Image into w*h*4 non-premultiplied
// RGBA8 bytes. Source and destination dimensions are expected to match
// for a well-formed round trip; no resampling is performed.
func imageToRaw(img image.Image, w, h int) []uint8 {
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(img.Bounds())
		// Slow path: convert via the color model.
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				nrgba.Set(x, y, img.At(x, y))
			}
		}
	}

	out := make([]uint8, w*h*4)
	b := nrgba.Bounds()
	for y := 0; y < h; y++ {
		sy := b.Min.Y + y
		if sy >= b.Max.Y {
			continue
		}
		for x := 0; x < w; x++ {
			sx := b.Min.X + x
			if sx >= b.Max.X {
				continue
			}
			si := nrgba.PixOffset(sx, sy)
			di := (y*w + x) * 4
			out[di] = nrgba.Pix[si]
			out[di+1] = nrgba.Pix[si+1]
			out[di+2] = nrgba.Pix[si+2]
			out[di+3] = nrgba.Pix[si+3]
		}
	}
	return out
}
