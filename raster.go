package maskcoco

import (
	"github.com/wgdzlh/maskcoco/log"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

const (
	MASK_BAND = 1
	RGB_BANDS = 3
)

// 基于GDAL读取掩膜栅格（GeoTIFF、PNG等GDAL支持的格式），地理参考信息不参与计算
type RasterSource struct {
	dirSource
	logTag string
}

func NewRasterSource(dir string, exts ...string) *RasterSource {
	return &RasterSource{
		dirSource: dirSource{dir: dir, exts: exts},
		logTag:    "RasterSource:",
	}
}

func (r *RasterSource) Load(e Entry) (*Grid, error) {
	return r.ParseMaskRaster(e.Path)
}

// ParseMaskRaster reads class ids from a mask raster. Single band, gray+alpha and
// paletted rasters use band 1 as is (palette index for paletted). Rasters with three or
// more colour bands are reduced to luma over bands 1-3 with the weights used by
// GridFromImage, so both decoders agree on RGB(A) masks. A paletted band 1 alongside
// extra bands is rejected.
func (r *RasterSource) ParseMaskRaster(tif string) (grid *Grid, err error) {
	sds, err := gdal.Open(tif, gdal.ReadOnly)
	if err != nil {
		log.Error(r.logTag+"open raster failed", zap.String("file", tif), zap.Error(err))
		err = ErrInvalidRaster
		return
	}
	defer sds.Close()
	bc := sds.RasterCount()
	if bc < MASK_BAND {
		log.Error(r.logTag+"raster has no band", zap.String("file", tif))
		err = ErrNoRasterBand
		return
	}
	x := sds.RasterXSize()
	y := sds.RasterYSize()
	if x <= 0 || y <= 0 {
		err = ErrInvalidRaster
		return
	}
	band := sds.RasterBand(MASK_BAND)
	dt := band.RasterDataType()
	ci := band.ColorInterp()
	log.Debug(r.logTag+"read mask raster", zap.String("file", tif), zap.Int("bands", bc),
		zap.String("dt", dt.Name()), zap.Int("ci", int(ci)), zap.Int("width", x), zap.Int("height", y))
	if bc >= RGB_BANDS {
		if ci == gdal.CI_PaletteIndex {
			log.Error(r.logTag+"paletted raster with extra bands", zap.String("file", tif), zap.Int("bands", bc))
			err = ErrInvalidRaster
			return
		}
		return r.readRGBLuma(sds, tif, x, y)
	}
	grid = &Grid{Width: x, Height: y, Pix: make([]uint16, x*y)}
	// GDAL按需将Byte/Int16等类型转换为UInt16
	if err = band.IO(gdal.Read, 0, 0, x, y, grid.Pix, x, y, 0, 0); err != nil {
		log.Error(r.logTag+"read mask band failed", zap.String("file", tif), zap.Error(err))
		grid = nil
		err = ErrRasterRead
	}
	return
}

// 读取1-3波段并按PIL的L转换合成灰度
func (r *RasterSource) readRGBLuma(sds gdal.Dataset, tif string, x, y int) (grid *Grid, err error) {
	var rgb [RGB_BANDS][]uint8
	for i := range rgb {
		rgb[i] = make([]uint8, x*y)
		if err = sds.RasterBand(i+1).IO(gdal.Read, 0, 0, x, y, rgb[i], x, y, 0, 0); err != nil {
			log.Error(r.logTag+"read color band failed", zap.String("file", tif), zap.Int("band", i+1), zap.Error(err))
			err = ErrRasterRead
			return
		}
	}
	grid = &Grid{Width: x, Height: y, Pix: make([]uint16, x*y)}
	for i := range grid.Pix {
		grid.Pix[i] = Luma(rgb[0][i], rgb[1][i], rgb[2][i])
	}
	return
}
