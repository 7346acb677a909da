package anvil

const defaultTileSize = 64

// AnvilOption configures an Anvil during construction with functional
// options.
//
// Example:
//
//	// Default 64px tiles, default codec
//	av := anvil.NewAnvil(800, 600)
//
//	// Custom tile size and codec (dependency injection)
//	av := anvil.NewAnvil(800, 600, anvil.WithTileSize(32), anvil.WithCodec(myCodec))
type AnvilOption func(*anvilOptions)

// anvilOptions holds optional configuration for Anvil creation.
type anvilOptions struct {
	tileSize int
	codec    ImageCodec
}

func defaultOptions() anvilOptions {
	return anvilOptions{
		tileSize: defaultTileSize,
		codec:    DefaultCodec{},
	}
}

// WithTileSize sets the TileGrid's tile edge length.
func WithTileSize(size int) AnvilOption {
	return func(o *anvilOptions) {
		o.tileSize = size
	}
}

// WithCodec sets a custom ImageCodec implementation, for dependency
// injection of alternate WebP/PNG backends.
func WithCodec(codec ImageCodec) AnvilOption {
	return func(o *anvilOptions) {
		o.codec = codec
	}
}
