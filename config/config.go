// Package config loads service and rendering settings from YAML with environment overrides.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/lessonpress/compose"
	"github.com/ByLCY/lessonpress/layout"
)

// Environment variables that override file values.
const (
	EnvMode       = "LESSONPRESS_ENV"
	EnvAddr       = "LESSONPRESS_ADDR"
	EnvGlyphTable = "LESSONPRESS_GLYPH_TABLE"
	EnvThumbWidth = "LESSONPRESS_THUMB_WIDTH"
)

//go:embed default.yaml
var defaultYAML []byte

type Config struct {
	Env    string       `yaml:"env"`
	Server ServerConfig `yaml:"server"`
	Render RenderConfig `yaml:"render"`
	Theme  ThemeConfig  `yaml:"theme"`
}

type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	MaxRequestBytes int64    `yaml:"max_request_bytes"`
	CORSOrigins     []string `yaml:"cors_origins"`
}

type RenderConfig struct {
	// GlyphTable is a dot-pattern table file; empty uses the embedded grade 1 table.
	GlyphTable string `yaml:"glyph_table"`
	ThumbWidth int    `yaml:"thumb_width"`
}

// ThemeConfig holds colours as "#RRGGBB", the body size as a length ("11pt", "4mm") and the
// line height as a factor ("1.35x") or a length.
type ThemeConfig struct {
	Ink        string `yaml:"ink"`
	Muted      string `yaml:"muted"`
	Accent     string `yaml:"accent"`
	Tint       string `yaml:"tint"`
	Rule       string `yaml:"rule"`
	SlideDark  string `yaml:"slide_dark"`
	SlideLight string `yaml:"slide_light"`
	OnDark     string `yaml:"on_dark"`
	BodySize   string `yaml:"body_size"`
	LineHeight string `yaml:"line_height"`
}

// Default returns the embedded defaults.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load reads path over the defaults (an empty path keeps them) and applies environment overrides.
func Load(path string) (Config, error) {
	var data []byte
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		data = b
	}
	return Parse(data, os.LookupEnv)
}

// Parse decodes data over the defaults and applies overrides from lookup.
func Parse(data []byte, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if lookup != nil {
		if err := cfg.applyEnv(lookup); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvMode); ok && strings.TrimSpace(v) != "" {
		c.Env = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvAddr); ok && strings.TrimSpace(v) != "" {
		c.Server.Addr = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvGlyphTable); ok {
		c.Render.GlyphTable = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvThumbWidth); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvThumbWidth, err)
		}
		c.Render.ThumbWidth = n
	}
	return nil
}

// Validate checks numeric ranges and that the theme converts.
func (c Config) Validate() error {
	if c.Server.MaxRequestBytes <= 0 {
		return fmt.Errorf("server.max_request_bytes must be positive, got %d", c.Server.MaxRequestBytes)
	}
	if c.Render.ThumbWidth <= 0 || c.Render.ThumbWidth > 4096 {
		return fmt.Errorf("render.thumb_width must be within 1-4096, got %d", c.Render.ThumbWidth)
	}
	if _, err := c.Theme.Compose(); err != nil {
		return err
	}
	return nil
}

// Production reports whether Env selects production logging.
func (c Config) Production() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

// Compose converts the theme into the layout strategies' Theme.
func (t ThemeConfig) Compose() (compose.Theme, error) {
	out := compose.DefaultTheme()
	colors := []struct {
		name string
		hex  string
		dst  *layout.Color
	}{
		{"ink", t.Ink, &out.Ink},
		{"muted", t.Muted, &out.Muted},
		{"accent", t.Accent, &out.Accent},
		{"tint", t.Tint, &out.Tint},
		{"rule", t.Rule, &out.Rule},
		{"slide_dark", t.SlideDark, &out.SlideDark},
		{"slide_light", t.SlideLight, &out.SlideLight},
		{"on_dark", t.OnDark, &out.OnDark},
	}
	for _, c := range colors {
		if strings.TrimSpace(c.hex) == "" {
			continue
		}
		col, err := ParseHex(c.hex)
		if err != nil {
			return compose.Theme{}, fmt.Errorf("theme.%s: %w", c.name, err)
		}
		*c.dst = col
	}

	size := layout.Length{Value: out.BodySize, Unit: layout.UnitPT}
	if strings.TrimSpace(t.BodySize) != "" {
		size = layout.ParseRawLengthStr(t.BodySize)
		if size.Unit == layout.UnitNone {
			size.Unit = layout.UnitPT
		}
		if size.Value <= 0 {
			return compose.Theme{}, fmt.Errorf("theme.body_size: invalid length %q", t.BodySize)
		}
		out.BodySize = size.ToPT()
	}
	if strings.TrimSpace(t.LineHeight) != "" {
		lh, ok := layout.ParseLineHeight(t.LineHeight)
		if !ok {
			return compose.Theme{}, fmt.Errorf("theme.line_height: invalid value %q", t.LineHeight)
		}
		out.LineFactor = lh.Resolve(size, layout.UnitPT) / size.ToPT()
	}
	return out, nil
}

// ParseHex parses "#RRGGBB" or "RRGGBB".
func ParseHex(s string) (layout.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return layout.Color{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return layout.Color{}, fmt.Errorf("invalid colour %q", s)
	}
	return layout.Color{R: int(v >> 16 & 0xFF), G: int(v >> 8 & 0xFF), B: int(v & 0xFF)}, nil
}
