// Package config defines the data structures related to configuration and
// includes functions for loading, defaulting and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iwvelando/deposit-calculator/pkg/constants"
	"github.com/iwvelando/deposit-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for deposit-calculator.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Storage StorageConfig `yaml:"storage,omitempty"`
	Records RecordsConfig `yaml:"records,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format        string `yaml:"format,omitempty"`        // pretty, csv, markdown
	MarkdownStyle string `yaml:"markdownStyle,omitempty"` // glamour style name
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend string        `yaml:"backend,omitempty"` // memory, file, sqlite, postgres
	Path    string        `yaml:"path,omitempty"`    // directory (file) or database file (sqlite)
	DSN     string        `yaml:"dsn,omitempty"`     // postgres connection string
	Timeout time.Duration `yaml:"timeout,omitempty"` // per-call timeout for postgres
}

// RecordsConfig holds options applied when records are created.
type RecordsConfig struct {
	IDStrategy             string  `yaml:"idStrategy,omitempty"` // timestamp, monotonic
	DefaultWithholdingRate float64 `yaml:"defaultWithholdingRate,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with CDT_ override file
// values (e.g. CDT_STORAGE_BACKEND).
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// Default returns the configuration used when no file is given.
func Default() *Configuration {
	conf := &Configuration{}
	conf.ApplyDefaults()
	return conf
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper knows about.
	for _, key := range []string{
		"logging.level", "logging.format", "logging.outputFile",
		"output.format", "output.markdownStyle",
		"storage.backend", "storage.path", "storage.dsn", "storage.timeout",
		"records.idStrategy", "records.defaultWithholdingRate",
	} {
		_ = v.BindEnv(key)
	}
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// ApplyDefaults fills every unset option with its default.
func (c *Configuration) ApplyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
	if c.Output.MarkdownStyle == "" {
		c.Output.MarkdownStyle = constants.DefaultMarkdownStyle
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = constants.DefaultStorageBackend
	}
	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case constants.StorageBackendFile:
			c.Storage.Path = constants.DefaultStoragePath
		case constants.StorageBackendSQLite:
			c.Storage.Path = constants.DefaultSQLitePath
		}
	}
	if c.Storage.Timeout <= 0 {
		c.Storage.Timeout = constants.DefaultStorageTimeout
	}
	if c.Records.IDStrategy == "" {
		c.Records.IDStrategy = constants.IDStrategyTimestamp
	}
	if c.Records.DefaultWithholdingRate == 0 {
		c.Records.DefaultWithholdingRate = constants.DefaultWithholdingRate
	}
}

// Validate reports the first invalid option.
func (c *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if err := validation.ValidateStorageBackend(c.Storage.Backend); err != nil {
		return err
	}
	if c.Storage.Backend == constants.StorageBackendPostgres && c.Storage.DSN == "" {
		return fmt.Errorf("storage backend %s requires a dsn", constants.StorageBackendPostgres)
	}
	if err := validation.ValidateIDStrategy(c.Records.IDStrategy); err != nil {
		return err
	}
	if c.Records.DefaultWithholdingRate < 0 {
		return fmt.Errorf("default withholding rate must not be negative, got %v", c.Records.DefaultWithholdingRate)
	}
	return nil
}
