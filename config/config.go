// Package config loads the YAML scene description.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-scene/render"
	"github.com/lixenwraith/vi-scene/terminal"
)

// Renderer types
const (
	RendererDefault      = "default"
	RendererLayer        = "layer"
	RendererLayerExclude = "layer_exclude"
	RendererScreenSpace  = "screen_space"
)

// Post processor types
const (
	PostDim       = "dim"
	PostGrayscale = "grayscale"
)

// Config is the root of a scene file
type Config struct {
	Log            LogConfig             `yaml:"log"`
	Scene          SceneConfig           `yaml:"scene"`
	Renderers      []RendererConfig      `yaml:"renderers"`
	PostProcessors []PostProcessorConfig `yaml:"post_processors"`
}

// LogConfig selects log level and destination file, empty file discards
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// SceneConfig holds the scene target and presentation settings
type SceneConfig struct {
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	Policy         string `yaml:"policy"` // none | center
	ClearColor     string `yaml:"clear_color"`
	LetterboxColor string `yaml:"letterbox_color"`
	Debug          bool   `yaml:"debug"`
	ColorMode      string `yaml:"color_mode"` // auto | 256 | truecolor
	FPS            int    `yaml:"fps"`
	Sound          bool   `yaml:"sound"`
}

// RendererConfig describes one renderer of the pipeline
type RendererConfig struct {
	Name                string          `yaml:"name"`
	Type                string          `yaml:"type"`
	Order               int             `yaml:"order"`
	Layers              []int           `yaml:"layers"`
	Material            *MaterialConfig `yaml:"material"`
	Debug               *bool           `yaml:"debug"`
	AfterPostProcessors *bool           `yaml:"after_post_processors"`
	Target              *TargetConfig   `yaml:"target"`
}

// Kind returns the renderer type, an empty type is the default renderer
func (r RendererConfig) Kind() string {
	if r.Type == "" {
		return RendererDefault
	}
	return r.Type
}

// MaterialConfig is a blend mode and opacity
type MaterialConfig struct {
	Blend string   `yaml:"blend"`
	Alpha *float64 `yaml:"alpha"` // nil is opaque
}

// TargetConfig redirects a renderer offscreen
type TargetConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Resize     string `yaml:"resize"` // none | scene | screen
	ClearColor string `yaml:"clear_color"`
}

// PostProcessorConfig describes one post processor
type PostProcessorConfig struct {
	Type    string   `yaml:"type"`
	Order   int      `yaml:"order"`
	Amount  float64  `yaml:"amount"`
	Mask    []string `yaml:"mask"`
	Enabled *bool    `yaml:"enabled"`
}

// Default returns a single default renderer at screen size
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Scene: SceneConfig{
			Policy:         "center",
			ClearColor:     "#1a1b26",
			LetterboxColor: "#000000",
			ColorMode:      "auto",
			FPS:            30,
		},
		Renderers: []RendererConfig{{Name: "world", Type: RendererDefault}},
	}
}

// Load reads and validates a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result
// Unknown keys are rejected
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	cfg.Renderers = nil

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Renderers) == 0 {
		cfg.Renderers = Default().Renderers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enum values, colors and sizes, reporting all problems at once
func (c *Config) Validate() error {
	var errs []error
	addf := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	sc := c.Scene
	if sc.Width < 0 || sc.Height < 0 {
		addf("scene: negative size %dx%d", sc.Width, sc.Height)
	}
	switch sc.Policy {
	case "", "none", "center":
	default:
		addf("scene: unknown policy %q", sc.Policy)
	}
	switch sc.ColorMode {
	case "", "auto", "256", "truecolor":
	default:
		addf("scene: unknown color mode %q", sc.ColorMode)
	}
	if sc.FPS < 0 {
		addf("scene: negative fps %d", sc.FPS)
	}
	checkColor := func(where, s string) {
		if s == "" {
			return
		}
		if _, err := terminal.ParseHex(s); err != nil {
			addf("%s: %w", where, err)
		}
	}
	checkColor("scene.clear_color", sc.ClearColor)
	checkColor("scene.letterbox_color", sc.LetterboxColor)

	names := make(map[string]struct{})
	for i, r := range c.Renderers {
		where := fmt.Sprintf("renderers[%d]", i)
		if r.Name != "" {
			if _, dup := names[r.Name]; dup {
				addf("%s: duplicate name %q", where, r.Name)
			}
			names[r.Name] = struct{}{}
		}
		switch r.Kind() {
		case RendererDefault, RendererLayerExclude:
		case RendererLayer, RendererScreenSpace:
			if len(r.Layers) == 0 {
				addf("%s: type %s needs layers", where, r.Type)
			}
		default:
			addf("%s: unknown type %q", where, r.Type)
		}
		if m := r.Material; m != nil {
			if _, ok := render.ParseBlendMode(m.Blend); m.Blend != "" && !ok {
				addf("%s.material: unknown blend %q", where, m.Blend)
			}
			if m.Alpha != nil && (*m.Alpha < 0 || *m.Alpha > 1) {
				addf("%s.material: alpha %v outside [0,1]", where, *m.Alpha)
			}
		}
		if t := r.Target; t != nil {
			switch t.Resize {
			case "", "none":
				if t.Width <= 0 || t.Height <= 0 {
					addf("%s.target: fixed size needs width and height", where)
				}
			case "scene", "screen":
			default:
				addf("%s.target: unknown resize %q", where, t.Resize)
			}
			checkColor(where+".target.clear_color", t.ClearColor)
		}
	}

	for i, p := range c.PostProcessors {
		where := fmt.Sprintf("post_processors[%d]", i)
		switch p.Type {
		case PostDim, PostGrayscale:
		default:
			addf("%s: unknown type %q", where, p.Type)
		}
		if p.Amount < 0 || p.Amount > 1 {
			addf("%s: amount %v outside [0,1]", where, p.Amount)
		}
		for _, m := range p.Mask {
			if _, ok := MaskBits[m]; !ok {
				addf("%s: unknown mask %q", where, m)
			}
		}
	}

	return errors.Join(errs...)
}
