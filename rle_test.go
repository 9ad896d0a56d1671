package maskcoco

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestEncodeRLE(t *testing.T) {
	cases := []struct {
		name   string
		mask   *Mask
		counts []int
	}{
		{"diagonal", maskOf("01", "10"), []int{1, 2, 1}},
		{"bottom row", maskOf("00", "11"), []int{1, 1, 1, 1}},
		{"right column", maskOf("01", "01"), []int{2, 2}},
		{"all false", maskOf("000", "000"), []int{6}},
		{"all true", maskOf("111", "111"), []int{0, 6}},
		{"first pixel", maskOf("100", "000"), []int{0, 1, 5}},
		{"last pixel", maskOf("000", "001"), []int{5, 1}},
		{"single pixel", maskOf("1"), []int{0, 1}},
		{"single background", maskOf("0"), []int{1}},
	}
	for _, c := range cases {
		rle := EncodeRLE(c.mask)
		if !reflect.DeepEqual(rle.Counts, c.counts) {
			t.Errorf("%s: counts %v, want %v", c.name, rle.Counts, c.counts)
		}
		if rle.Size != [2]int{c.mask.Height, c.mask.Width} {
			t.Errorf("%s: size %v", c.name, rle.Size)
		}
	}
}

func TestEncodeRLENonSquareSize(t *testing.T) {
	// 3 rows x 2 columns; column scan is 0,1,0 then 0,1,1
	rle := EncodeRLE(maskOf("00", "11", "01"))
	if rle.Size != [2]int{3, 2} {
		t.Fatalf("size %v, want [3 2]", rle.Size)
	}
	if want := []int{1, 1, 2, 2}; !reflect.DeepEqual(rle.Counts, want) {
		t.Fatalf("counts %v, want %v", rle.Counts, want)
	}
}

func TestEncodeRLERoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for n := 0; n < 200; n++ {
		h, w := 1+rnd.Intn(12), 1+rnd.Intn(12)
		m := NewMask(w, h)
		density := rnd.Float64()
		for i := range m.Bits {
			m.Bits[i] = rnd.Float64() < density
		}
		rle := EncodeRLE(m)
		if rle.Sum() != h*w {
			t.Fatalf("sum %d != %d", rle.Sum(), h*w)
		}
		if m.Bits[0] && rle.Counts[0] != 0 {
			t.Fatalf("foreground start must give leading 0, got %v", rle.Counts)
		}
		for i, c := range rle.Counts {
			if i > 0 && c == 0 {
				t.Fatalf("zero-length run at %d: %v", i, rle.Counts)
			}
		}
		seq, err := DecodeRLE(rle)
		if err != nil {
			t.Fatal(err)
		}
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				if seq[x*h+y] != m.At(x, y) {
					t.Fatalf("pixel (%d,%d) mismatch in %dx%d mask", x, y, w, h)
				}
			}
		}
		back, err := DecodeRLEMask(rle)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(back, m) {
			t.Fatalf("mask round trip mismatch for %dx%d", w, h)
		}
	}
}

func TestDecodeRLEInvalid(t *testing.T) {
	bad := []RLE{
		{Counts: []int{3}, Size: [2]int{2, 2}},
		{Counts: []int{2, 3}, Size: [2]int{2, 2}},
		{Counts: []int{-1, 5}, Size: [2]int{2, 2}},
	}
	for _, r := range bad {
		if _, err := DecodeRLE(r); err != ErrInvalidRLE {
			t.Errorf("DecodeRLE(%v) err = %v, want ErrInvalidRLE", r, err)
		}
	}
}
