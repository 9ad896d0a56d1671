package maskcoco

import (
	"fmt"
	"sort"
	"sync"
)

// 全数据集出现过的像素值集合，可并发写入
type ValueSet struct {
	mu   sync.Mutex
	vals map[uint16]struct{}
}

func NewValueSet() *ValueSet {
	return &ValueSet{vals: map[uint16]struct{}{}}
}

func (s *ValueSet) Add(vs ...uint16) {
	s.mu.Lock()
	for _, v := range vs {
		s.vals[v] = struct{}{}
	}
	s.mu.Unlock()
}

func (s *ValueSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.vals)
}

// 升序返回全部值
func (s *ValueSet) Sorted() []uint16 {
	s.mu.Lock()
	ret := make([]uint16, 0, len(s.vals))
	for v := range s.vals {
		ret = append(ret, v)
	}
	s.mu.Unlock()
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

// 栅格中出现的不重复像素值（升序）
func UniqueValues(g *Grid) []uint16 {
	var seen [1 << 16]bool
	n := 0
	for _, v := range g.Pix {
		if !seen[v] {
			seen[v] = true
			n++
		}
	}
	ret := make([]uint16, 0, n)
	for v := range seen {
		if seen[v] {
			ret = append(ret, uint16(v))
		}
	}
	return ret
}

// 像素值到类别的只读映射，一次运行内不变
type CategoryMap struct {
	categories []Category
	byValue    map[uint16]int
}

func (c *CategoryMap) Categories() []Category {
	return append([]Category{}, c.categories...)
}

func (c *CategoryMap) Lookup(v uint16) (id int, ok bool) {
	id, ok = c.byValue[v]
	return
}

func (c *CategoryMap) Len() int {
	return len(c.categories)
}

// ResolveCategories derives the categories from the set of observed pixel values.
// Exactly {0, 1} gives the fixed Background/Debris pair; otherwise every value v, 0 included,
// becomes category v+1 named Class{v}. The result depends only on the value set.
func ResolveCategories(values []uint16) (cm *CategoryMap, err error) {
	uniq := make([]uint16, 0, len(values))
	seen := make(map[uint16]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			uniq = append(uniq, v)
		}
	}
	if len(uniq) == 0 {
		err = ErrNoPixelValues
		return
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })
	cm = &CategoryMap{byValue: make(map[uint16]int, len(uniq))}
	if len(uniq) == 2 && uniq[0] == 0 && uniq[1] == 1 {
		cm.categories = []Category{
			{Id: BINARY_BG_CATEGORY, Name: BINARY_BG_NAME},
			{Id: BINARY_FG_CATEGORY, Name: BINARY_FG_NAME},
		}
		cm.byValue[0] = BINARY_BG_CATEGORY
		cm.byValue[1] = BINARY_FG_CATEGORY
		return
	}
	cm.categories = make([]Category, 0, len(uniq))
	for _, v := range uniq {
		id := int(v) + 1
		cm.categories = append(cm.categories, Category{Id: id, Name: fmt.Sprintf(CLASS_NAME_TEMPLATE, v)})
		cm.byValue[v] = id
	}
	return
}
