package maskcoco

// AssembleImage builds one annotation per mapped non-background value present in grid,
// in ascending value order. Ids are allocated from nextID and the advanced counter is
// returned. Empty submasks and degenerate boxes are skipped without error.
func AssembleImage(img Image, grid *Grid, cats *CategoryMap, nextID int) (anns []Annotation, next int) {
	next = nextID
	for _, v := range UniqueValues(grid) {
		if v == BACKGROUND_VALUE {
			continue
		}
		catId, ok := cats.Lookup(v)
		if !ok {
			continue
		}
		mask, area := Submask(grid, v)
		if area == 0 {
			continue
		}
		box, ok := ComputeBBox(mask)
		if !ok {
			continue
		}
		anns = append(anns, Annotation{
			Id:           next,
			ImageId:      img.Id,
			CategoryId:   catId,
			Segmentation: EncodeRLE(mask),
			Area:         float64(area),
			Bbox:         box.Floats(),
			IsCrowd:      ISCROWD_MARK,
			Attributes:   Attributes{Occluded: false},
		})
		next++
	}
	return
}

// 提取grid == v的二值掩膜及其像素数
func Submask(grid *Grid, v uint16) (m *Mask, area int) {
	m = NewMask(grid.Width, grid.Height)
	for i, p := range grid.Pix {
		if p == v {
			m.Bits[i] = true
			area++
		}
	}
	return
}
