package anvil

import "fmt"

// ApplyPatch mutates the buffer according to patch and rewrites patch in
// place so it becomes its own inverse: a subsequent ApplyPatch call with
// the same patch undoes what this call just did. mode is informational
// only — because every kind carries both pre- and post-image via swap,
// the procedure is symmetric regardless of Undo/Redo.
//
// Kinds apply in a fixed order within one call: whole, then partial, then
// pixels, so a patch can express "replace everything, then overwrite a
// region, then touch specific pixels" even though typical patches carry
// only one kind.
func (a *Anvil) ApplyPatch(patch *PackedDiffs, mode PatchMode) error {
	_ = mode

	dirty := BoundBox{}
	touchedAny := false
	markDirty := func(box BoundBox) {
		if !touchedAny {
			dirty = box
			touchedAny = true
			return
		}
		dirty = unionBox(dirty, box)
	}

	if patch.Whole != nil {
		if err := a.applyWhole(patch.Whole); err != nil {
			return err
		}
		markDirty(BoundBox{X: 0, Y: 0, Width: a.buffer.Width(), Height: a.buffer.Height()})
	}

	if patch.Partial != nil {
		if err := a.applyPartial(patch.Partial); err != nil {
			return err
		}
		markDirty(patch.Partial.Box)
	}

	for i := range patch.Pixels {
		entry := &patch.Pixels[i]
		cur := a.buffer.Get(entry.X, entry.Y)
		a.buffer.Set(entry.X, entry.Y, UnpackRGBA(entry.PackedColor))
		entry.PackedColor = PackRGBA(cur)
		markDirty(BoundBox{X: entry.X, Y: entry.Y, Width: 1, Height: 1})
	}

	if touchedAny {
		a.tiles.MarkRectDirty(dirty)
	}
	return nil
}

func (a *Anvil) applyWhole(whole *PackedWhole) error {
	newBytes, err := a.codec.WebPToRaw(whole.SwapWebP, whole.Width, whole.Height)
	if err != nil {
		return fmt.Errorf("anvil: apply whole patch: %w", err)
	}
	curWebP, err := a.codec.RawToWebP(a.buffer.Bytes(), a.buffer.Width(), a.buffer.Height())
	if err != nil {
		return fmt.Errorf("anvil: apply whole patch: %w", err)
	}
	buf, err := NewPixelBufferFromRaw(whole.Width, whole.Height, newBytes)
	if err != nil {
		return fmt.Errorf("anvil: apply whole patch: %w", err)
	}
	whole.Width, whole.Height = a.buffer.Width(), a.buffer.Height()
	whole.SwapWebP = curWebP
	a.buffer = buf
	if a.buffer.Width() != a.tiles.width || a.buffer.Height() != a.tiles.height {
		a.tiles.Resize(a.buffer.Width(), a.buffer.Height())
	}
	return nil
}

func (a *Anvil) applyPartial(partial *PackedPartial) error {
	newBytes, err := a.codec.WebPToRaw(partial.SwapWebP, partial.Box.Width, partial.Box.Height)
	if err != nil {
		return fmt.Errorf("anvil: apply partial patch: %w", err)
	}
	curBytes := a.buffer.ReadRect(partial.Box.X, partial.Box.Y, partial.Box.Width, partial.Box.Height)
	curWebP, err := a.codec.RawToWebP(curBytes, partial.Box.Width, partial.Box.Height)
	if err != nil {
		return fmt.Errorf("anvil: apply partial patch: %w", err)
	}
	if err := a.buffer.WriteRect(partial.Box.X, partial.Box.Y, partial.Box.Width, partial.Box.Height, newBytes); err != nil {
		return fmt.Errorf("anvil: apply partial patch: %w", err)
	}
	partial.SwapWebP = curWebP
	return nil
}

func unionBox(a, b BoundBox) BoundBox {
	x0 := min(a.X, b.X)
	y0 := min(a.Y, b.Y)
	x1 := max(a.X+a.Width, b.X+b.Width)
	y1 := max(a.Y+a.Height, b.Y+b.Height)
	return BoundBox{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
