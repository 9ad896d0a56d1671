package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/wgdzlh/maskcoco"
	"github.com/wgdzlh/maskcoco/conf"
	"github.com/wgdzlh/maskcoco/log"
	"github.com/wgdzlh/maskcoco/store"

	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file")
	inputDir := flag.String("input_dir", "", "directory of class-id mask images")
	output := flag.String("output", "", "output COCO JSON path (- for stdout)")
	index := flag.String("index", "", "optional SQLite index path")
	decoder := flag.String("decoder", "", "mask decoder: gdal or image")
	workers := flag.Int("workers", 0, "parallel workers")
	binarize := flag.Bool("binarize", false, "treat every non-zero pixel as one foreground class")
	flag.Parse()

	cfg, err := conf.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input_dir":
			cfg.InputDir = *inputDir
		case "output":
			cfg.Output = *output
		case "index":
			cfg.Index = *index
		case "decoder":
			cfg.Decoder = *decoder
		case "workers":
			cfg.Workers = *workers
		case "binarize":
			cfg.Binarize = *binarize
		}
	})
	if err = conf.Validate(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	if err = log.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err = run(ctx, cfg); err != nil {
		log.Error("mask2coco failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *conf.Config) (err error) {
	if st, e := os.Stat(cfg.InputDir); e != nil || !st.IsDir() {
		return fmt.Errorf("input directory does not exist: %s", cfg.InputDir)
	}
	var src maskcoco.PixelSource
	if strings.ToLower(cfg.Decoder) == conf.DecoderImage {
		src = maskcoco.NewImageSource(cfg.InputDir)
	} else {
		src = maskcoco.NewRasterSource(cfg.InputDir)
	}
	if cfg.Binarize {
		src = maskcoco.Binarize(src)
	}
	cv := maskcoco.NewConverter(
		maskcoco.WithWorkers(cfg.Workers),
		maskcoco.WithInfo(maskcoco.Info{
			Description: cfg.Info.Description,
			Url:         cfg.Info.Url,
			Version:     cfg.Info.Version,
			Year:        cfg.Info.Year,
			Contributor: cfg.Info.Contributor,
			DateCreated: cfg.Info.DateCreated,
		}),
		maskcoco.WithLicense(maskcoco.License{
			Id:   maskcoco.DEFAULT_LICENSE_ID,
			Name: cfg.License.Name,
			Url:  cfg.License.Url,
		}),
	)
	doc, stats, err := cv.Convert(ctx, src)
	if err != nil {
		return
	}
	if cfg.Output == "-" {
		err = maskcoco.EncodeDocument(os.Stdout, doc)
	} else {
		err = maskcoco.WriteDocument(doc, cfg.Output)
	}
	if err != nil {
		return
	}
	if cfg.Index != "" {
		var idx *store.Index
		if idx, err = store.Open(cfg.Index); err != nil {
			return
		}
		defer idx.Close()
		if err = idx.Export(doc); err != nil {
			return
		}
		log.Info("index exported", zap.String("index", cfg.Index))
	}
	log.Info("annotation document created", zap.String("out", cfg.Output),
		zap.Int("listed", stats.Listed), zap.Int("decoded", stats.Decoded),
		zap.Int("failed", stats.Failed), zap.Int("annotations", stats.Annotations))
	return
}
