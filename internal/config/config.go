// Package config loads gridkit CLI configuration.
//
// Precedence (highest to lowest): changed flags > GRIDKIT_ env vars >
// config file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/cell"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/export"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: GRIDKIT_PDF__COMPRESS sets pdf.compress.
const EnvPrefix = "GRIDKIT_"

// DefaultFiles are looked up in the working directory when no file is given.
var DefaultFiles = []string{"gridkit.yaml", "gridkit.yml"}

// flagKeys maps flag names that do not follow the kebab-to-snake rule.
var flagKeys = map[string]string{
	"pdf-compress":    "pdf.compress",
	"density":         "display.density",
	"browser-bin":     "browser.bin",
	"browser-timeout": "browser.timeout",
}

// PDFConfig holds PDF output settings.
type PDFConfig struct {
	Compress bool `koanf:"compress"`
}

// DisplayConfig holds the initial toolbar state.
type DisplayConfig struct {
	Density string `koanf:"density"`
}

// BrowserConfig holds the print browser settings.
type BrowserConfig struct {
	Bin     string        `koanf:"bin"`
	Timeout time.Duration `koanf:"timeout"`
}

// Config holds all CLI configuration options.
type Config struct {
	Locale    string        `koanf:"locale"`
	OutputDir string        `koanf:"output_dir"`
	ChunkSize int           `koanf:"chunk_size"`
	Workers   int           `koanf:"workers"`
	Verbose   bool          `koanf:"verbose"`
	PDF       PDFConfig     `koanf:"pdf"`
	Display   DisplayConfig `koanf:"display"`
	Browser   BrowserConfig `koanf:"browser"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"locale":          "en-US",
		"output_dir":      ".",
		"chunk_size":      export.DefaultChunkSize,
		"workers":         0,
		"verbose":         false,
		"pdf.compress":    true,
		"display.density": string(models.DensityComfortable),
		"browser.bin":     "",
		"browser.timeout": "30s",
	}
}

// findConfigFile returns the explicit path or the first default file present.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range DefaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration from defaults, the config file, the environment
// and flags. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated and numeric settings.
func (c *Config) Validate() error {
	if !models.Density(c.Display.Density).Valid() {
		return fmt.Errorf("invalid display.density %q (must be compact, comfortable or spacious)", c.Display.Density)
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("invalid chunk_size %d", c.ChunkSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers %d", c.Workers)
	}
	return nil
}

// ExportOptions converts the configuration into engine options.
func (c *Config) ExportOptions() export.Options {
	opts := export.DefaultOptions()
	opts.Locale = c.Locale
	opts.CompressPDF = c.PDF.Compress
	if c.ChunkSize > 0 {
		opts.ChunkSize = c.ChunkSize
	}
	if c.Workers > 0 {
		opts.Workers = c.Workers
	}
	return opts
}

// Normalizer returns the cell normalizer for the configured locale.
func (c *Config) Normalizer() *cell.Normalizer {
	return cell.ForLocale(c.Locale)
}
