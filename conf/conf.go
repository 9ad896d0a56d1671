package conf

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DecoderGdal  = "gdal"
	DecoderImage = "image"

	ENV_PREFIX = "MASKCOCO_"
)

var (
	ErrMissingInput  = errors.New("input_dir is required")
	ErrMissingOutput = errors.New("output is required")
	ErrBadDecoder    = errors.New("decoder must be gdal or image")
	ErrBadWorkers    = errors.New("workers must be positive")
)

type Config struct {
	InputDir string      `yaml:"input_dir"`
	Output   string      `yaml:"output"`
	Index    string      `yaml:"index"`   // 可选的SQLite索引路径
	Decoder  string      `yaml:"decoder"` // gdal, image
	Workers  int         `yaml:"workers"`
	Binarize bool        `yaml:"binarize"` // 非零像素全部视为同一前景类
	LogLevel string      `yaml:"log_level"`
	LogFile  string      `yaml:"log_file"`
	Info     InfoConfig  `yaml:"info"`
	License  LicenseConf `yaml:"license"`
}

type InfoConfig struct {
	Description string `yaml:"description"`
	Url         string `yaml:"url"`
	Version     string `yaml:"version"`
	Year        string `yaml:"year"`
	Contributor string `yaml:"contributor"`
	DateCreated string `yaml:"date_created"`
}

type LicenseConf struct {
	Name string `yaml:"name"`
	Url  string `yaml:"url"`
}

func Default() *Config {
	return &Config{
		Decoder:  DecoderGdal,
		Workers:  runtime.NumCPU(),
		LogLevel: "info",
	}
}

// Load builds the configuration from defaults, the optional YAML file at path, a .env
// file in the working directory (if any) and MASKCOCO_* environment variables, in that
// order of increasing precedence. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.InputDir = getEnv("INPUT_DIR", c.InputDir)
	c.Output = getEnv("OUTPUT", c.Output)
	c.Index = getEnv("INDEX", c.Index)
	c.Decoder = getEnv("DECODER", c.Decoder)
	c.Workers = getEnvAsInt("WORKERS", c.Workers)
	c.Binarize = getEnvAsBool("BINARIZE", c.Binarize)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("LOG_FILE", c.LogFile)
}

func Validate(c *Config) error {
	if c.InputDir == "" {
		return ErrMissingInput
	}
	if c.Output == "" {
		return ErrMissingOutput
	}
	switch strings.ToLower(c.Decoder) {
	case DecoderGdal, DecoderImage:
	default:
		return fmt.Errorf("%w: %q", ErrBadDecoder, c.Decoder)
	}
	if c.Workers <= 0 {
		return ErrBadWorkers
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(ENV_PREFIX + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(ENV_PREFIX + key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(ENV_PREFIX + key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
