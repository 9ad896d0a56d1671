package maskcoco

// EncodeRLE converts a boolean mask to COCO uncompressed RLE.
//
// Coordinate contract: the mask is transposed before being flattened, i.e. pixels are
// scanned column by column, top to bottom within a column, left to right across columns.
// Annotation tools reading the output (CVAT) load RLE in this order, so it must not be
// changed to row-major. Size stays the original [height, width].
//
// counts[0] is always a background run and is 0 when the first scanned pixel is foreground.
func EncodeRLE(m *Mask) (rle RLE) {
	h, w := m.Height, m.Width
	rle.Size = [2]int{h, w}
	rle.Counts = make([]int, 0, 8)
	var (
		prev  bool
		count int
	)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if p := m.Bits[y*w+x]; p == prev {
				count++
			} else {
				rle.Counts = append(rle.Counts, count)
				count = 1
				prev = p
			}
		}
	}
	rle.Counts = append(rle.Counts, count)
	return
}

// 将RLE还原为按列扫描的一维布尔序列
func DecodeRLE(rle RLE) (seq []bool, err error) {
	n := rle.Size[0] * rle.Size[1]
	if rle.Size[0] < 0 || rle.Size[1] < 0 {
		err = ErrInvalidRLE
		return
	}
	seq = make([]bool, 0, n)
	v := false
	for _, c := range rle.Counts {
		if c < 0 || len(seq)+c > n {
			err = ErrInvalidRLE
			return
		}
		for i := 0; i < c; i++ {
			seq = append(seq, v)
		}
		v = !v
	}
	if len(seq) != n {
		err = ErrInvalidRLE
	}
	return
}

// 将RLE还原为原始坐标系下的掩膜
func DecodeRLEMask(rle RLE) (m *Mask, err error) {
	seq, err := DecodeRLE(rle)
	if err != nil {
		return
	}
	h, w := rle.Size[0], rle.Size[1]
	m = NewMask(w, h)
	for i, v := range seq {
		m.Bits[(i%h)*w+i/h] = v
	}
	return
}

func (r RLE) Sum() (s int) {
	for _, c := range r.Counts {
		s += c
	}
	return
}
