package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/adrg/xdg"
	"github.com/davecgh/go-spew/spew"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

//go:embed exclip.yaml
var exclipConfig []byte

type Config struct {
	Output          string        `koanf:"output"`
	Pattern         string        `koanf:"pattern"`
	IgnoreCase      bool          `koanf:"ignore_case"`
	HeadingFilter   bool          `koanf:"heading_filter"`
	MinFontSize     float64       `koanf:"min_font_size"`
	HeaderThreshold float64       `koanf:"header_threshold"`
	HeaderMargin    float64       `koanf:"header_margin"`
	TrailingPadding float64       `koanf:"trailing_padding"`
	TrimTrailing    bool          `koanf:"trim_trailing"`
	MinClipHeight   float64       `koanf:"min_clip_height"`
	SpanPages       int           `koanf:"span_pages"`
	Compress        bool          `koanf:"compress"`
	Optimize        bool          `koanf:"optimize"`
	Preview         bool          `koanf:"preview"`
	Progress        bool          `koanf:"progress"`
	Cache           bool          `koanf:"cache"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`

	// command line only
	List         bool   `koanf:"-"`
	Report       string `koanf:"-"`
	Force        bool   `koanf:"-"`
	ShowSettings bool   `koanf:"-"`
}

// userConfigFile is the optional per-user override of the embedded defaults.
func userConfigFile() string {
	return filepath.Join(xdg.ConfigHome, "exclip", "config.yaml")
}

func ensureConfig() (Config, error) {
	return loadConfig(userConfigFile())
}

// loadConfig layers the file at path (if present) over the embedded defaults.
func loadConfig(path string) (Config, error) {
	var c Config

	// "." as the key path delimiter
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(exclipConfig), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("embedded config: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			logger.Println("loading user config from", path)
			if err := k.Load(rawbytes.Provider(b), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("%s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, err
		}
	}

	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, err
	}
	logger.Println("config:", spew.Sdump(c))

	return c, nil
}

// Validate reports the first setting that would make an extraction run meaningless.
func (c *Config) Validate() error {
	if _, err := c.compilePattern(); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", c.Pattern, err)
	}
	if c.HeaderMargin < 0 || c.TrailingPadding < 0 || c.MinClipHeight < 0 {
		return errors.New("margins must not be negative")
	}
	if c.HeaderThreshold < 0 || c.HeaderThreshold > 1 {
		return fmt.Errorf("header_threshold %.2f is outside [0,1]", c.HeaderThreshold)
	}
	if c.SpanPages < 1 {
		return fmt.Errorf("span_pages must be at least 1, got %d", c.SpanPages)
	}
	return nil
}

func (c *Config) compilePattern() (*regexp.Regexp, error) {
	if c.Pattern == "" {
		return nil, errors.New("empty pattern")
	}
	expr := c.Pattern
	if c.IgnoreCase {
		expr = "(?i)" + expr
	}
	return regexp.Compile(expr)
}

// detectionKey identifies every setting that changes what a scan returns.
func (c *Config) detectionKey() string {
	return fmt.Sprintf("%s|%t|%t|%g|%g", c.Pattern, c.IgnoreCase, c.HeadingFilter, c.MinFontSize, c.HeaderThreshold)
}
