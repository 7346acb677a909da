// Package anvil is a pixel-buffer processing engine for a layered raster
// editor.
//
// # Overview
//
// anvil owns the in-memory RGBA8 image of one layer and everything
// needed to mutate it deterministically, record those mutations
// compactly, and replay them for undo/redo. Three subsystems compose the
// engine:
//
//   - PixelBuffer: the authoritative byte grid — bounds-checked access,
//     rectangular read/write, flood fill, affine blit with resampling,
//     origin-aware resize.
//   - TileGrid: a coarse dirty-tile index a renderer reads to decide what
//     to re-upload.
//   - DiffController: accumulates pre-images of pending mutations and
//     packs them into a compact, replayable patch.
//
// Anvil is the facade wiring the three together.
//
// # Quick Start
//
//	import "github.com/gogpu/anvil"
//
//	av := anvil.NewAnvil(512, 512)
//	av.SetPixel(10, 10, anvil.Color{R: 255, A: 255})
//	patch := av.FlushDiffs()
//	av.ApplyPatch(&patch, anvil.Undo)
//
// # Concurrency
//
// The engine is strictly single-threaded and synchronous: no operation
// suspends, there are no background workers. Callers needing parallelism
// partition by layer (one Anvil per layer) and coordinate externally.
package anvil
