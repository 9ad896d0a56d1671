package maskcoco

import (
	"os"
	"testing"

	"github.com/wgdzlh/maskcoco/log"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	log.SetLogger(zap.NewNop())
	os.Exit(m.Run())
}

// 由0/1字符串行构造掩膜，如 "0110"
func maskOf(rows ...string) *Mask {
	m := NewMask(len(rows[0]), len(rows))
	for y, r := range rows {
		for x, c := range r {
			m.Set(x, y, c == '1')
		}
	}
	return m
}

func gridOf(w, h int, fill uint16) *Grid {
	g := &Grid{Width: w, Height: h, Pix: make([]uint16, w*h)}
	for i := range g.Pix {
		g.Pix[i] = fill
	}
	return g
}

func fillRect(g *Grid, x0, y0, w, h int, v uint16) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			g.Pix[y*g.Width+x] = v
		}
	}
}
