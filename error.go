package maskcoco

import "errors"

var (
	ErrNoImages      = errors.New("no input images")
	ErrNoPixelValues = errors.New("no pixel values observed")
	ErrInvalidRaster = errors.New("invalid raster")
	ErrRasterRead    = errors.New("raster read failed")
	ErrNoRasterBand  = errors.New("raster has no band")
	ErrUnknownEntry  = errors.New("unknown source entry")
	ErrSizeMismatch  = errors.New("grid size changed between passes")
	ErrWrongGridSize = errors.New("grid pixel count mismatch")
	ErrInvalidRLE    = errors.New("invalid RLE")
)
