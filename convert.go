package maskcoco

import (
	"context"
	"runtime"
	"sync"

	"github.com/wgdzlh/maskcoco/log"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 两遍式掩膜转COCO标注：第一遍收集像素值确定类别，第二遍逐图生成标注
type Converter struct {
	workers int
	info    Info
	license License
	logTag  string
}

type Option func(*Converter)

func WithWorkers(n int) Option {
	return func(c *Converter) {
		if n > 0 {
			c.workers = n
		}
	}
}

func WithInfo(info Info) Option {
	return func(c *Converter) {
		c.info = info
	}
}

func WithLicense(l License) Option {
	return func(c *Converter) {
		c.license = l
	}
}

func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		workers: runtime.NumCPU(),
		license: DefaultLicense(),
		logTag:  "Converter:",
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type scanResult struct {
	width  int
	height int
	err    error
}

type assembleResult struct {
	anns []Annotation
	err  error
}

// 并发执行fn(i)，i∈[0,n)
func (c *Converter) parallel(ctx context.Context, n int, fn func(i int)) error {
	idx := make(chan int)
	wg := sync.WaitGroup{}
	workers := c.workers
	if workers > n {
		workers = n
	}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idx {
				fn(i)
			}
		}()
	}
	var err error
feed:
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case idx <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(idx)
	wg.Wait()
	return err
}

// Convert runs both passes over src. A source with no listed or no decodable images is
// fatal; a single image failing to decode is logged and skipped.
func (c *Converter) Convert(ctx context.Context, src PixelSource) (doc *Document, stats Stats, err error) {
	logTag := c.logTag + "[" + uuid.NewString()[:8] + "]:"
	entries, err := src.Entries()
	if err != nil {
		log.Error(logTag+"list entries failed", zap.Error(err))
		return
	}
	sortEntries(entries)
	stats.Listed = len(entries)
	if len(entries) == 0 {
		err = ErrNoImages
		return
	}
	log.Info(logTag+"start convert", zap.Int("images", len(entries)), zap.Int("workers", c.workers))

	// 第一遍：收集全部像素值
	values := NewValueSet()
	scans := make([]scanResult, len(entries))
	err = c.parallel(ctx, len(entries), func(i int) {
		g, e := loadGrid(src, entries[i])
		if e != nil {
			scans[i].err = e
			return
		}
		values.Add(UniqueValues(g)...)
		scans[i] = scanResult{width: g.Width, height: g.Height}
	})
	if err != nil {
		return
	}
	images := make([]Image, 0, len(entries))
	kept := make([]Entry, 0, len(entries))
	for i, s := range scans {
		if s.err != nil {
			stats.Failed++
			log.Error(logTag+"skip undecodable image", zap.String("file", entries[i].Name), zap.Error(s.err))
			continue
		}
		images = append(images, Image{
			Id:       len(images) + 1,
			Width:    s.width,
			Height:   s.height,
			FileName: entries[i].Name,
			License:  c.license.Id,
		})
		kept = append(kept, entries[i])
	}
	stats.Decoded = len(images)
	if len(images) == 0 {
		err = ErrNoImages
		return
	}
	cats, err := ResolveCategories(values.Sorted())
	if err != nil {
		return
	}
	log.Info(logTag+"categories resolved", zap.Int("values", values.Len()), zap.Int("categories", cats.Len()))

	// 第二遍：各图独立生成标注，id先从1局部编号
	results := make([]assembleResult, len(kept))
	err = c.parallel(ctx, len(kept), func(i int) {
		g, e := loadGrid(src, kept[i])
		if e != nil {
			results[i].err = e
			return
		}
		if g.Width != images[i].Width || g.Height != images[i].Height {
			results[i].err = ErrSizeMismatch
			return
		}
		results[i].anns, _ = AssembleImage(images[i], g, cats, 1)
	})
	if err != nil {
		return
	}
	// 按影像顺序预留连续id区间
	anns := make([]Annotation, 0, len(kept))
	nextID := 1
	for i, r := range results {
		if r.err != nil {
			stats.Failed++
			log.Error(logTag+"image dropped from annotation pass", zap.String("file", kept[i].Name), zap.Error(r.err))
			continue
		}
		if len(r.anns) == 0 {
			log.Debug(logTag+"no foreground in image", zap.String("file", kept[i].Name))
			continue
		}
		for _, a := range r.anns {
			a.Id += nextID - 1
			anns = append(anns, a)
		}
		nextID += len(r.anns)
	}
	stats.Annotations = len(anns)
	doc = BuildDocument(c.info, c.license, cats, images, anns)
	log.Info(logTag+"convert done", zap.Int("images", len(images)), zap.Int("annotations", len(anns)), zap.Int("failed", stats.Failed))
	return
}

func loadGrid(src PixelSource, e Entry) (g *Grid, err error) {
	if g, err = src.Load(e); err != nil {
		return
	}
	if g == nil {
		err = ErrWrongGridSize
		return
	}
	if err = g.Validate(); err != nil {
		g = nil
	}
	return
}
