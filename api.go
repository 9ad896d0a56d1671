package maskcoco

// 类别
type Category struct {
	Id            int    `json:"id"`
	Name          string `json:"name"`
	Supercategory string `json:"supercategory"`
}

// 影像
type Image struct {
	Id           int    `json:"id"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	FileName     string `json:"file_name"`
	License      int    `json:"license"`
	FlickrUrl    string `json:"flickr_url"`
	CocoUrl      string `json:"coco_url"`
	DateCaptured int    `json:"date_captured"`
}

// COCO非压缩RLE，Size为原始(未转置的)[高, 宽]
type RLE struct {
	Counts []int  `json:"counts"`
	Size   [2]int `json:"size"`
}

type Attributes struct {
	Occluded bool `json:"occluded"`
}

// 实例标注，Bbox为[x, y, w, h]
type Annotation struct {
	Id           int        `json:"id"`
	ImageId      int        `json:"image_id"`
	CategoryId   int        `json:"category_id"`
	Segmentation RLE        `json:"segmentation"`
	Area         float64    `json:"area"`
	Bbox         [4]float64 `json:"bbox"`
	IsCrowd      int        `json:"iscrowd"`
	Attributes   Attributes `json:"attributes"`
}

type License struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
	Url  string `json:"url"`
}

type Info struct {
	Description string `json:"description"`
	Url         string `json:"url"`
	Version     string `json:"version"`
	Year        string `json:"year"`
	Contributor string `json:"contributor"`
	DateCreated string `json:"date_created"`
}

// 标注文档
type Document struct {
	Licenses    []License    `json:"licenses"`
	Info        Info         `json:"info"`
	Categories  []Category   `json:"categories"`
	Images      []Image      `json:"images"`
	Annotations []Annotation `json:"annotations"`
}

// 单张影像的类别值栅格，按行存储
type Grid struct {
	Width  int
	Height int
	Pix    []uint16
}

// 实例二值掩膜，按行存储
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

func NewMask(w, h int) *Mask {
	return &Mask{Width: w, Height: h, Bits: make([]bool, w*h)}
}

func (m *Mask) At(x, y int) bool {
	return m.Bits[y*m.Width+x]
}

func (m *Mask) Set(x, y int, v bool) {
	m.Bits[y*m.Width+x] = v
}

// [x_min, y_min, width, height]
type BBox [4]int

func (b BBox) Degenerate() bool {
	return b[2] == 0 || b[3] == 0
}

// 转换统计
type Stats struct {
	Listed      int
	Decoded     int
	Failed      int
	Annotations int
}
