package maskcoco

// ComputeBBox returns the inclusive bounding box of the true pixels of m in original
// (non-transposed) coordinates. ok is false for an empty mask, in which case the box is
// all zero and the annotation should be dropped.
func ComputeBBox(m *Mask) (box BBox, ok bool) {
	minX, minY := m.Width, m.Height
	maxX, maxY := -1, -1
	for y := 0; y < m.Height; y++ {
		row := m.Bits[y*m.Width : (y+1)*m.Width]
		for x, v := range row {
			if !v {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			maxY = y
		}
	}
	if maxX < 0 {
		return
	}
	box = BBox{minX, minY, maxX - minX + 1, maxY - minY + 1}
	ok = !box.Degenerate()
	return
}

func (b BBox) Floats() [4]float64 {
	return [4]float64{float64(b[0]), float64(b[1]), float64(b[2]), float64(b[3])}
}
