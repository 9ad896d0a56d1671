package maskcoco

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/wgdzlh/maskcoco/utils"
)

// 输入源中的一张影像
type Entry struct {
	Name string // 输出文档中的file_name，同时作为排序键
	Path string
}

// 像素来源：列出影像并按需解码为类别值栅格
type PixelSource interface {
	Entries() ([]Entry, error)
	Load(e Entry) (*Grid, error)
}

func sortEntries(es []Entry) {
	sort.SliceStable(es, func(i, j int) bool {
		if es[i].Name != es[j].Name {
			return es[i].Name < es[j].Name
		}
		return es[i].Path < es[j].Path
	})
}

// 目录下的掩膜文件
type dirSource struct {
	dir  string
	exts []string
}

func (d dirSource) Entries() (es []Entry, err error) {
	exts := d.exts
	if len(exts) == 0 {
		exts = MaskFileExts
	}
	paths, err := utils.ListFilesByExt(d.dir, exts)
	if err != nil {
		err = fmt.Errorf("list %s: %w", d.dir, err)
		return
	}
	es = make([]Entry, 0, len(paths))
	for _, p := range paths {
		es = append(es, Entry{Name: utils.NormalizeName(filepath.Base(p)), Path: p})
	}
	sortEntries(es)
	return
}

// 内存中的栅格，测试及库调用方使用
type MemorySource struct {
	grids map[string]*Grid
	fail  map[string]error
}

func NewMemorySource() *MemorySource {
	return &MemorySource{grids: map[string]*Grid{}, fail: map[string]error{}}
}

func (s *MemorySource) Add(name string, g *Grid) *MemorySource {
	s.grids[utils.NormalizeName(name)] = g
	return s
}

// 登记一个解码必然失败的条目
func (s *MemorySource) AddBroken(name string, err error) *MemorySource {
	s.fail[utils.NormalizeName(name)] = err
	return s
}

func (s *MemorySource) Entries() ([]Entry, error) {
	es := make([]Entry, 0, len(s.grids)+len(s.fail))
	for name := range s.grids {
		es = append(es, Entry{Name: name})
	}
	for name := range s.fail {
		if _, ok := s.grids[name]; !ok {
			es = append(es, Entry{Name: name})
		}
	}
	sortEntries(es)
	return es, nil
}

func (s *MemorySource) Load(e Entry) (*Grid, error) {
	if err, ok := s.fail[e.Name]; ok {
		return nil, err
	}
	g, ok := s.grids[e.Name]
	if !ok {
		return nil, ErrUnknownEntry
	}
	return g, nil
}

type binarized struct {
	PixelSource
}

// 非零像素统一置1（彩色/多类掩膜转为二值前景）
func Binarize(src PixelSource) PixelSource {
	return binarized{src}
}

func (b binarized) Load(e Entry) (g *Grid, err error) {
	src, err := b.PixelSource.Load(e)
	if err != nil {
		return
	}
	g = &Grid{Width: src.Width, Height: src.Height, Pix: make([]uint16, len(src.Pix))}
	for i, v := range src.Pix {
		if v != 0 {
			g.Pix[i] = 1
		}
	}
	return
}

// 校验栅格尺寸与像素数一致
func (g *Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 || len(g.Pix) != g.Width*g.Height {
		return ErrWrongGridSize
	}
	return nil
}
