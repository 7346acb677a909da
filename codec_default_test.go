package anvil

import "testing"

func TestDefaultCodecPNGRoundTrip(t *testing.T) {
	codec := DefaultCodec{}
	raw := fillRawGradient(5, 4)

	encoded, err := codec.RawToPNG(raw, 5, 4)
	if err != nil {
		t.Fatalf("RawToPNG: %v", err)
	}
	decoded, w, h, err := codec.PNGToRaw(encoded)
	if err != nil {
		t.Fatalf("PNGToRaw: %v", err)
	}
	if w != 5 || h != 4 {
		t.Fatalf("PNGToRaw dims = (%d,%d), want (5,4)", w, h)
	}
	for i := range raw {
		if decoded[i] != raw[i] {
			t.Fatalf("PNG round trip byte %d = %d, want %d (PNG is lossless)", i, decoded[i], raw[i])
		}
	}
}

func TestDefaultCodecPNGRoundTripWithPartialAlpha(t *testing.T) {
	codec := DefaultCodec{}
	raw := []uint8{
		200, 100, 50, 128, // non-premultiplied: color survives despite partial alpha
	}
	encoded, err := codec.RawToPNG(raw, 1, 1)
	if err != nil {
		t.Fatalf("RawToPNG: %v", err)
	}
	decoded, _, _, err := codec.PNGToRaw(encoded)
	if err != nil {
		t.Fatalf("PNGToRaw: %v", err)
	}
	for i, want := range raw {
		if decoded[i] != want {
			t.Errorf("byte %d = %d, want %d (non-premultiplied round trip)", i, decoded[i], want)
		}
	}
}

func TestDefaultCodecWebPRoundTripDimensions(t *testing.T) {
	codec := DefaultCodec{}
	raw := fillRawGradient(3, 3)

	encoded, err := codec.RawToWebP(raw, 3, 3)
	if err != nil {
		t.Fatalf("RawToWebP: %v", err)
	}
	decoded, err := codec.WebPToRaw(encoded, 3, 3)
	if err != nil {
		t.Fatalf("WebPToRaw: %v", err)
	}
	if len(decoded) != len(raw) {
		t.Fatalf("WebPToRaw returned %d bytes, want %d", len(decoded), len(raw))
	}
}

func TestDefaultCodecPNGDecodeInvalidDataErrors(t *testing.T) {
	codec := DefaultCodec{}
	_, _, _, err := codec.PNGToRaw([]uint8{1, 2, 3})
	if err == nil {
		t.Fatal("expected an error decoding garbage bytes as PNG")
	}
}
