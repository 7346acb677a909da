package anvil

// ResizeWithOrigins reallocates the buffer to newW x newH, copying the
// intersection of the source rectangle (srcOriginX, srcOriginY, oldW -
// srcOriginX, oldH - srcOriginY) into the destination at (destOriginX,
// destOriginY). Regions not covered by the copy are left transparent.
// Supersedes a plain resize.
func (p *PixelBuffer) ResizeWithOrigins(newW, newH, srcOriginX, srcOriginY, destOriginX, destOriginY int) {
	oldW, oldH := p.width, p.height
	Logger().Debug("anvil: buffer reallocation", "oldWidth", oldW, "oldHeight", oldH, "newWidth", newW, "newHeight", newH)
	newData := make([]uint8, newW*newH*4)

	srcW := oldW - srcOriginX
	srcH := oldH - srcOriginY
	if srcW > 0 && srcH > 0 {
		for y := 0; y < srcH; y++ {
			sy := srcOriginY + y
			dy := destOriginY + y
			if sy < 0 || sy >= oldH || dy < 0 || dy >= newH {
				continue
			}
			for x := 0; x < srcW; x++ {
				sx := srcOriginX + x
				dx := destOriginX + x
				if sx < 0 || sx >= oldW || dx < 0 || dx >= newW {
					continue
				}
				si := (sy*oldW + sx) * 4
				di := (dy*newW + dx) * 4
				newData[di] = p.data[si]
				newData[di+1] = p.data[si+1]
				newData[di+2] = p.data[si+2]
				newData[di+3] = p.data[si+3]
			}
		}
	}

	p.width = newW
	p.height = newH
	p.data = newData
}
