// Package config loads the pdfpage command line configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/pdfpage/pages"
)

// Config holds the whole command line configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Document DocumentConfig `mapstructure:"document" yaml:"document"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the console color of each log level.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
}

// DocumentConfig holds the options documents are opened with.
type DocumentConfig struct {
	// Compress flate-encodes streams written by page operations.
	Compress bool `mapstructure:"compress" yaml:"compress"`
	// PageSize is the preset used for pages created without a size.
	PageSize  string `mapstructure:"page_size" yaml:"page_size"`
	Landscape bool   `mapstructure:"landscape" yaml:"landscape"`
	// MaxDepth bounds reference chains in the object store.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`
}

// OutputConfig selects how commands print their results.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"` // text, json or yaml
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "pdfpage")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	v.SetDefault("document.compress", true)
	v.SetDefault("document.page_size", "A4")
	v.SetDefault("document.landscape", false)
	v.SetDefault("document.max_depth", 100)

	v.SetDefault("output.format", "text")
}

// Load reads configuration from file (or ./pdfpage.yaml when file is
// empty) and PDFPAGE_ environment variables on top of the defaults. A
// missing default file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("pdfpage")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("PDFPAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return NewConfigFromViper(v)
}

// NewConfigFromViper unmarshals and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for unknown enumerations and
// out-of-range values.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("logger.level: %w", err)
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}
	if _, ok := pages.ParsePageSize(c.Document.PageSize); !ok {
		return fmt.Errorf("document.page_size: unknown page size %q", c.Document.PageSize)
	}
	if c.Document.MaxDepth <= 0 {
		return fmt.Errorf("document.max_depth must be positive, got %d", c.Document.MaxDepth)
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format must be text, json or yaml, got %q", c.Output.Format)
	}
	return nil
}

// PageOptions returns the page model options the configuration selects.
func (c *Config) PageOptions() []pages.Option {
	return []pages.Option{pages.WithCompression(c.Document.Compress)}
}

// DefaultPageSize returns the configured preset rectangle.
func (c *Config) DefaultPageSize() pages.Rect {
	size, _ := pages.ParsePageSize(c.Document.PageSize)
	return pages.StandardPageSize(size, c.Document.Landscape)
}
