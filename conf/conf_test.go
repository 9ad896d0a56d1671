package conf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "maskcoco.yaml")
	yml := `
input_dir: /data/masks
output: /data/annotation.json
decoder: image
workers: 3
info:
  description: debris masks
  year: "2026"
license:
  name: internal
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MASKCOCO_WORKERS", "7")
	t.Setenv("MASKCOCO_BINARIZE", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InputDir != "/data/masks" || cfg.Decoder != DecoderImage || cfg.Info.Year != "2026" || cfg.License.Name != "internal" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Workers != 7 || !cfg.Binarize {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level lost: %q", cfg.LogLevel)
	}
	if err = Validate(cfg); err != nil {
		t.Error(err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MASKCOCO_OUTPUT=out.json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)
	t.Setenv("MASKCOCO_OUTPUT", "")
	os.Unsetenv("MASKCOCO_OUTPUT")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output != "out.json" {
		t.Errorf("Output = %q, expected out.json", cfg.Output)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestValidate(t *testing.T) {
	ok := func() *Config {
		c := Default()
		c.InputDir, c.Output = "in", "out.json"
		return c
	}
	tests := []struct {
		mutate func(*Config)
		want   error
	}{
		{func(c *Config) {}, nil},
		{func(c *Config) { c.InputDir = "" }, ErrMissingInput},
		{func(c *Config) { c.Output = "" }, ErrMissingOutput},
		{func(c *Config) { c.Decoder = "opencv" }, ErrBadDecoder},
		{func(c *Config) { c.Workers = 0 }, ErrBadWorkers},
	}
	for i, tt := range tests {
		c := ok()
		tt.mutate(c)
		if err := Validate(c); !errors.Is(err, tt.want) && !(err == nil && tt.want == nil) {
			t.Errorf("case %d: Validate = %v, expected %v", i, err, tt.want)
		}
	}
}
