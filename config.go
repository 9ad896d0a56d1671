package maskcoco

const (
	BACKGROUND_VALUE = 0

	BINARY_BG_NAME      = "Background"
	BINARY_FG_NAME      = "Debris"
	BINARY_BG_CATEGORY  = 1
	BINARY_FG_CATEGORY  = 2
	CLASS_NAME_TEMPLATE = "Class%d"

	ISCROWD_MARK = 1

	TMP_DOCUMENT = ".coco_%s.json.tmp"

	DEFAULT_LICENSE_ID = 0
)

var (
	// 目录扫描时接受的掩膜文件后缀
	MaskFileExts = []string{".png", ".tif", ".tiff", ".bmp", ".jpg", ".jpeg", ".gif"}
)
