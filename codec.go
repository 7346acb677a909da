package anvil

// ImageCodec is the consumed boundary for encoding/decoding pixel bytes
// to and from container formats. Bit-exact compatibility with any
// particular external encoder is not required: the transport format only
// needs to round-trip through the same codec's own decode.
type ImageCodec interface {
	// RawToWebP encodes w*h*4 RGBA8 bytes to a WebP byte sequence.
	RawToWebP(rgba []uint8, w, h int) ([]uint8, error)
	// WebPToRaw decodes a WebP byte sequence into w*h*4 RGBA8 bytes. May
	// be lossy depending on the encoder used to produce the bytes.
	WebPToRaw(data []uint8, w, h int) ([]uint8, error)
	// RawToPNG losslessly encodes w*h*4 RGBA8 bytes to PNG.
	RawToPNG(rgba []uint8, w, h int) ([]uint8, error)
	// PNGToRaw losslessly decodes a PNG byte sequence into w*h*4 RGBA8 bytes.
	PNGToRaw(data []uint8) ([]uint8, int, int, error)
}
