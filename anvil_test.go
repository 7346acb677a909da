package anvil

import "testing"

func TestNewAnvilDefaults(t *testing.T) {
	av := NewAnvil(100, 80)
	if av.GetWidth() != 100 || av.GetHeight() != 80 {
		t.Fatalf("dims = (%d,%d), want (100,80)", av.GetWidth(), av.GetHeight())
	}
	if av.GetTileSize() != defaultTileSize {
		t.Errorf("GetTileSize() = %d, want %d", av.GetTileSize(), defaultTileSize)
	}
	if av.HasPendingChanges() {
		t.Error("new Anvil should have no pending changes")
	}
}

func TestNewAnvilWithOptions(t *testing.T) {
	av := NewAnvil(64, 64, WithTileSize(16), WithCodec(identityCodec{}))
	if av.GetTileSize() != 16 {
		t.Errorf("GetTileSize() = %d, want 16", av.GetTileSize())
	}
}

func TestGetSetPixelBoundsChecked(t *testing.T) {
	av := NewAnvil(4, 4)
	if _, err := av.GetPixel(10, 10); err == nil {
		t.Error("GetPixel out of bounds should error")
	}
	if err := av.SetPixel(10, 10, Color{}); err == nil {
		t.Error("SetPixel out of bounds should error")
	}
	if err := av.SetPixel(1, 1, Color{R: 5, A: 255}); err != nil {
		t.Fatalf("SetPixel in bounds: %v", err)
	}
	got, err := av.GetPixel(1, 1)
	if err != nil || got != (Color{R: 5, A: 255}) {
		t.Errorf("GetPixel(1,1) = %+v, %v, want {5,0,0,255}, nil", got, err)
	}
}

// Scenario: write a pixel, flush the diff, undo it, expect the
// pre-mutation color restored and the patch itself now holds the redo.
func TestScenarioPixelWriteFlushUndo(t *testing.T) {
	av := NewAnvil(8, 8, WithCodec(identityCodec{}))
	av.SetPixel(3, 3, Color{R: 200, A: 255})

	patch := av.FlushDiffs()
	if av.HasPendingChanges() {
		t.Error("FlushDiffs should clear pending state")
	}

	if err := av.ApplyPatch(&patch, Undo); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	if got, _ := av.GetPixel(3, 3); got != Transparent {
		t.Errorf("after undo, GetPixel(3,3) = %+v, want Transparent", got)
	}
	if len(patch.Pixels) != 1 || patch.Pixels[0].PackedColor != PackRGBA(Color{R: 200, A: 255}) {
		t.Errorf("after undo, patch.Pixels = %+v, want one entry holding {200,0,0,255}", patch.Pixels)
	}
}

// Scenario: resizing with a source/dest offset must preserve surviving
// content and discard pending diffs (a resize is not itself undoable
// through the diff mechanism).
func TestScenarioResizeWithOffsetPreservesContentAndDiscardsDiffs(t *testing.T) {
	av := NewAnvil(4, 4)
	av.SetPixel(1, 1, Color{R: 77, A: 255})
	if !av.HasPendingChanges() {
		t.Fatal("expected a pending diff before resize")
	}

	av.ResizeWithOffset(6, 6, 0, 0, 1, 1)

	if av.HasPendingChanges() {
		t.Error("ResizeWithOffset should discard pending diffs")
	}
	if got, _ := av.GetPixel(2, 2); got != (Color{R: 77, A: 255}) {
		t.Errorf("GetPixel(2,2) = %+v, want {77,0,0,255} (shifted content)", got)
	}
}

// Scenario: flood fill with a threshold only affects pixels within the
// matching tolerance of the seed color.
func TestScenarioFloodFillThreshold(t *testing.T) {
	av := NewAnvil(3, 1)
	av.SetPixel(0, 0, Color{R: 100, A: 255})
	av.SetPixel(1, 0, Color{R: 108, A: 255})
	av.SetPixel(2, 0, Color{R: 250, A: 255})
	av.DiscardDiffs()
	av.ClearDirtyTiles()

	changed := av.FloodFill(0, 0, Color{B: 255, A: 255}, 10)
	if !changed {
		t.Fatal("expected FloodFill to report a change")
	}
	if got, _ := av.GetPixel(1, 0); got.B != 255 {
		t.Error("pixel within threshold should have been filled")
	}
	if got, _ := av.GetPixel(2, 0); got.B == 255 {
		t.Error("pixel beyond threshold should not have been filled")
	}
	if len(av.GetDirtyTiles()) == 0 {
		t.Error("FloodFill should mark tiles dirty")
	}
}

// Scenario: a partial diff added after pixel diffs supersedes them, and
// a subsequent whole diff supersedes everything.
func TestScenarioPartialThenWholeSupersede(t *testing.T) {
	av := NewAnvil(4, 4, WithCodec(identityCodec{}))
	av.SetPixel(0, 0, Color{R: 1, A: 255})

	box := BoundBox{X: 0, Y: 0, Width: 2, Height: 2}
	before := av.ReadRect(box.X, box.Y, box.Width, box.Height)
	if err := av.AddPartialDiff(box, before, false); err != nil {
		t.Fatalf("AddPartialDiff: %v", err)
	}
	mid := av.PreviewPatch()
	if len(mid.Pixels) != 0 || mid.Partial == nil {
		t.Fatalf("after AddPartialDiff, patch = %+v, want only a partial", mid)
	}

	if err := av.AddCurrentWholeDiff(); err != nil {
		t.Fatalf("AddCurrentWholeDiff: %v", err)
	}
	final := av.PreviewPatch()
	if final.Partial != nil || len(final.Pixels) != 0 || final.Whole == nil {
		t.Fatalf("after AddCurrentWholeDiff, patch = %+v, want only a whole", final)
	}
}

// Scenario: scattered writes across a 128x96 buffer with tileSize 32
// dirty exactly the three tiles containing the writes.
func TestScenarioTileDirtyAfterScatteredWrites(t *testing.T) {
	av := NewAnvil(128, 96, WithTileSize(32))
	av.SetPixel(5, 5, Color{R: 1, A: 255})
	av.SetPixel(40, 40, Color{R: 2, A: 255})
	av.SetPixel(100, 70, Color{R: 3, A: 255})

	got := av.GetDirtyTiles()
	want := []TileIndex{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 3}}
	if len(got) != len(want) {
		t.Fatalf("GetDirtyTiles() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GetDirtyTiles()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestImportRawMismatchLeavesBufferUnchanged(t *testing.T) {
	av := NewAnvil(2, 2)
	av.SetPixel(0, 0, Color{R: 9, A: 255})
	err := av.ImportRaw(3, 3, make([]uint8, 5))
	if err == nil {
		t.Fatal("expected error for mismatched raw length")
	}
	if av.GetWidth() != 2 || av.GetHeight() != 2 {
		t.Error("ImportRaw failure should leave buffer dimensions unchanged")
	}
	if got, _ := av.GetPixel(0, 0); got != (Color{R: 9, A: 255}) {
		t.Error("ImportRaw failure should leave buffer contents unchanged")
	}
}

func TestImportWebPDecodeFailureLeavesBufferUnchanged(t *testing.T) {
	av := NewAnvil(2, 2, WithCodec(failCodec{}))
	av.SetPixel(0, 0, Color{R: 9, A: 255})
	if ok := av.ImportWebP(2, 2, []uint8{0, 1, 2}); ok {
		t.Error("ImportWebP should report false on decode failure")
	}
	if got, _ := av.GetPixel(0, 0); got != (Color{R: 9, A: 255}) {
		t.Error("ImportWebP failure should leave buffer contents unchanged")
	}
}

func TestExportImportRawRoundTrip(t *testing.T) {
	av := NewAnvil(3, 3, WithCodec(identityCodec{}))
	av.SetPixel(1, 1, Color{R: 9, G: 8, B: 7, A: 255})
	raw := av.ReadRect(0, 0, 3, 3)

	av2 := NewAnvil(1, 1)
	if err := av2.ImportRaw(3, 3, raw); err != nil {
		t.Fatalf("ImportRaw: %v", err)
	}
	if got, _ := av2.GetPixel(1, 1); got != (Color{R: 9, G: 8, B: 7, A: 255}) {
		t.Errorf("GetPixel(1,1) after ImportRaw = %+v, want {9,8,7,255}", got)
	}
	if !av2.tiles.IsDirty(TileIndex{Row: 0, Col: 0}) {
		t.Error("ImportRaw should mark the whole buffer dirty")
	}
}

func TestFillMaskArea(t *testing.T) {
	av := NewAnvil(4, 4)
	mask, err := NewMaskFromBytes(2, 2, []uint8{
		255, 0,
		0, 255,
	})
	if err != nil {
		t.Fatalf("NewMaskFromBytes: %v", err)
	}
	av.FillMaskArea(mask, 1, 1, Color{R: 255, A: 255}, Inside)
	if got, _ := av.GetPixel(1, 1); got.R != 255 {
		t.Error("FillMaskArea should fill masked-in pixels")
	}
	if got, _ := av.GetPixel(2, 1); got != Transparent {
		t.Error("FillMaskArea should skip masked-out pixels")
	}
	if got, _ := av.GetPixel(2, 2); got.R != 255 {
		t.Error("FillMaskArea should fill the second masked-in pixel")
	}
}

func TestGetTileInfo(t *testing.T) {
	av := NewAnvil(100, 50, WithTileSize(32))
	got := av.GetTileInfo(TileIndex{Row: 0, Col: 3})
	want := BoundBox{X: 96, Y: 0, Width: 4, Height: 32}
	if got != want {
		t.Errorf("GetTileInfo = %+v, want %+v", got, want)
	}
}
