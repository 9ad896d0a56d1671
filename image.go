package maskcoco

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/wgdzlh/maskcoco/log"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// 纯Go解码掩膜图片（PNG/JPEG/GIF/TIFF/BMP），不依赖GDAL
type ImageSource struct {
	dirSource
	logTag string
}

func NewImageSource(dir string, exts ...string) *ImageSource {
	return &ImageSource{
		dirSource: dirSource{dir: dir, exts: exts},
		logTag:    "ImageSource:",
	}
}

func (s *ImageSource) Load(e Entry) (grid *Grid, err error) {
	f, err := os.Open(e.Path)
	if err != nil {
		return
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		log.Error(s.logTag+"decode image failed", zap.String("file", e.Path), zap.Error(err))
		err = fmt.Errorf("%w: %v", ErrInvalidRaster, err)
		return
	}
	log.Debug(s.logTag+"decoded image", zap.String("file", e.Path), zap.String("format", format))
	grid = GridFromImage(img)
	return
}

// GridFromImage reads class ids from img. Gray and Gray16 values are used as is,
// paletted images use the palette index, any other colour model is reduced to
// ITU-R 601 luma exactly as PIL converts to mode "L" (straight alpha ignored, rounded).
func GridFromImage(img image.Image) *Grid {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	g := &Grid{Width: w, Height: h, Pix: make([]uint16, w*h)}
	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w]
			for x, v := range row {
				g.Pix[y*w+x] = uint16(v)
			}
		}
	case *image.Gray16:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g.Pix[y*w+x] = src.Gray16At(b.Min.X+x, b.Min.Y+y).Y
			}
		}
	case *image.Paletted:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w]
			for x, v := range row {
				g.Pix[y*w+x] = uint16(v)
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				g.Pix[y*w+x] = Luma(c.R, c.G, c.B)
			}
		}
	}
	return g
}

// PIL的L转换：L = R*299/1000 + G*587/1000 + B*114/1000，16位定点并四舍五入
func Luma(r, g, b uint8) uint16 {
	return uint16((uint32(r)*19595 + uint32(g)*38470 + uint32(b)*7471 + 0x8000) >> 16)
}
