package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"pvrgl/internal/transform"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir    string `json:"base_dir"`
	SceneDir   string `json:"scene_dir"`
	TextureDir string `json:"texture_dir"`
	OutputDir  string `json:"output_dir"`

	// Render settings
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Supersample int     `json:"supersample"`
	Workers     int     `json:"workers"`
	Origin      string  `json:"origin"` // "top-left" or "bottom-left"
	NearClip    *bool   `json:"near_clip"`
	FillRatio   float64 `json:"fill_ratio"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataDir     string
	OutputDir   string
	Width       int
	Height      int
	Supersample int
	Workers     int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.DataDir != "" {
		c.BaseDir = flags.DataDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}
	c.SceneDir = under(c.BaseDir, c.SceneDir, "scenes")
	c.TextureDir = under(c.BaseDir, c.TextureDir, "textures")
	c.OutputDir = under(c.BaseDir, c.OutputDir, "renders")

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Origin == "" {
		c.Origin = "top-left"
	}
	if c.NearClip == nil {
		on := true
		c.NearClip = &on
	}
}

// under resolves p against base, falling back to base/def when p is empty.
func under(base, p, def string) string {
	switch {
	case p == "":
		return filepath.Join(base, def)
	case filepath.IsAbs(p):
		return p
	}
	return filepath.Join(base, p)
}

// ViewportOrigin maps the origin setting to the viewport's y convention.
func (c *Config) ViewportOrigin() (transform.Origin, error) {
	switch c.Origin {
	case "", "top-left":
		return transform.OriginTopLeft, nil
	case "bottom-left":
		return transform.OriginBottomLeft, nil
	}
	return 0, fmt.Errorf("config: unknown origin %q", c.Origin)
}
