package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/iwvelando/deposit-calculator/internal/config"
	"github.com/iwvelando/deposit-calculator/pkg/constants"
	"gopkg.in/yaml.v3"
)

// MaxBodySizeLimit caps maxBodySize. A calculator form never needs more.
const MaxBodySizeLimit int64 = 1024 * 1024

// Config is the web server configuration. Options left out of the server file
// fall back to the records section of the main configuration.
type Config struct {
	Address                string  `yaml:"address"`
	MaxBodySize            string  `yaml:"maxBodySize"`
	Version                string  `yaml:"version"`
	DefaultWithholdingRate float64 `yaml:"defaultWithholdingRate"`
}

// LoadConfig reads the server file at path and merges it with records. A
// missing file (or an empty path) yields the defaults.
func LoadConfig(path string, records config.RecordsConfig) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read server config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config %s: %w", path, err)
			}
		}
	}

	if cfg.Address == "" {
		cfg.Address = constants.DefaultServerAddress
	}
	if cfg.DefaultWithholdingRate < 0 {
		return nil, fmt.Errorf("server defaultWithholdingRate must not be negative, got %v", cfg.DefaultWithholdingRate)
	}
	if cfg.DefaultWithholdingRate == 0 {
		cfg.DefaultWithholdingRate = records.DefaultWithholdingRate
	}
	if cfg.DefaultWithholdingRate == 0 {
		cfg.DefaultWithholdingRate = constants.DefaultWithholdingRate
	}
	if _, err := ParseSize(cfg.MaxBodySize); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Settings returns the handler options. buildVersion is used unless the file
// sets a version.
func (c *Config) Settings(buildVersion string) Settings {
	size, _ := ParseSize(c.MaxBodySize)
	version := c.Version
	if version == "" {
		version = buildVersion
	}
	return Settings{
		MaxBodySize:            size,
		Version:                version,
		DefaultWithholdingRate: c.DefaultWithholdingRate,
	}
}

var sizeUnits = []struct {
	suffix string
	bytes  int64
}{
	{"KIB", 1024},
	{"MIB", 1024 * 1024},
	{"KB", 1024},
	{"MB", 1024 * 1024},
	{"K", 1024},
	{"M", 1024 * 1024},
	{"B", 1},
}

// ParseSize reads a request body limit such as "64K", "512KB" or "1MiB". Blank
// means the default. Limits must be positive and at most MaxBodySizeLimit.
func ParseSize(value string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	unit := int64(1)
	for _, u := range sizeUnits {
		if rest, ok := strings.CutSuffix(s, u.suffix); ok {
			s, unit = strings.TrimSpace(rest), u.bytes
			break
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid maxBodySize %q", value)
	}
	if n <= 0 {
		return 0, fmt.Errorf("maxBodySize must be positive, got %q", value)
	}
	if n > MaxBodySizeLimit/unit {
		return 0, fmt.Errorf("maxBodySize %q exceeds the %d byte limit", value, MaxBodySizeLimit)
	}
	return n * unit, nil
}
