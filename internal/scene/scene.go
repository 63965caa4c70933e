// Package scene reads scene descriptions and replays them against a GL
// context. A scene file is YAML (JSON is accepted as its subset): render
// state, lights, material, textures and a list of draws whose client
// arrays are given as plain numbers and encoded to the requested element
// types on load.
package scene

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// Scene is one scene file.
type Scene struct {
	Name          string     `yaml:"name"`
	Clear         []uint8    `yaml:"clear"`
	Projection    []Op       `yaml:"projection"`
	ModelView     []Op       `yaml:"modelview"`
	Enable        []string   `yaml:"enable"`
	ShadeModel    string     `yaml:"shade_model"`
	FrontFace     string     `yaml:"front_face"`
	DepthFunc     string     `yaml:"depth_func"`
	DepthMask     *bool      `yaml:"depth_mask"`
	Blend         []string   `yaml:"blend"` // src, dst
	LightModel    LightModel `yaml:"light_model"`
	Lights        []Light    `yaml:"lights"`
	Material      *Material  `yaml:"material"`
	ColorMaterial string     `yaml:"color_material"`
	Textures      []Texture  `yaml:"textures"`
	Draws         []Draw     `yaml:"draws"`
}

// Op is one matrix operation. Exactly one field is set.
type Op struct {
	Identity    bool      `yaml:"identity"`
	Translate   []float32 `yaml:"translate"`   // x, y, z
	Rotate      []float32 `yaml:"rotate"`      // degrees, x, y, z
	Scale       []float32 `yaml:"scale"`       // x, y, z
	Ortho       []float32 `yaml:"ortho"`       // left, right, bottom, top, near, far
	Frustum     []float32 `yaml:"frustum"`     // left, right, bottom, top, near, far
	Perspective []float32 `yaml:"perspective"` // fovy degrees, aspect, near, far
	Matrix      []float32 `yaml:"matrix"`      // 16 values, column-major
}

// LightModel holds the scene-wide lighting parameters.
type LightModel struct {
	Ambient     []float32 `yaml:"ambient"`
	LocalViewer *bool     `yaml:"local_viewer"`
}

// Light sets the parameters of one light. Unset fields keep their
// defaults. Position is given in the coordinates current after the scene's
// modelview operations.
type Light struct {
	Index         int       `yaml:"index"`
	Ambient       []float32 `yaml:"ambient"`
	Diffuse       []float32 `yaml:"diffuse"`
	Specular      []float32 `yaml:"specular"`
	Position      []float32 `yaml:"position"`
	SpotDirection []float32 `yaml:"spot_direction"`
	SpotExponent  *float32  `yaml:"spot_exponent"`
	SpotCutoff    *float32  `yaml:"spot_cutoff"`
	Constant      *float32  `yaml:"constant_attenuation"`
	Linear        *float32  `yaml:"linear_attenuation"`
	Quadratic     *float32  `yaml:"quadratic_attenuation"`
}

// Material sets the front material.
type Material struct {
	Ambient   []float32 `yaml:"ambient"`
	Diffuse   []float32 `yaml:"diffuse"`
	Specular  []float32 `yaml:"specular"`
	Emission  []float32 `yaml:"emission"`
	Shininess *float32  `yaml:"shininess"`
}

// Texture names an image file for draws to bind.
type Texture struct {
	Name   string `yaml:"name"`
	File   string `yaml:"file"`
	Filter string `yaml:"filter"` // nearest or linear
	Env    string `yaml:"env"`    // modulate, decal or replace
}

// Array is a client array. Data is listed in memory order and encoded to
// Type on load.
type Array struct {
	Size int       `yaml:"size"`
	Type string    `yaml:"type"`
	BGRA bool      `yaml:"bgra"`
	Data []float64 `yaml:"data"`
}

// Draw is one draw call with the arrays it reads.
type Draw struct {
	Mode      string   `yaml:"mode"`
	Position  *Array   `yaml:"position"`
	Color     *Array   `yaml:"color"`
	Normal    *Array   `yaml:"normal"`
	TexCoord  *Array   `yaml:"texcoord"`
	TexCoord2 *Array   `yaml:"texcoord2"`
	Texture   string   `yaml:"texture"`
	Texture2  string   `yaml:"texture2"`
	Indices   []uint32 `yaml:"indices"`
	IndexType string   `yaml:"index_type"`
	First     int      `yaml:"first"`
	Count     int      `yaml:"count"`
	Transform []Op     `yaml:"transform"`
	Enable    []string `yaml:"enable"`
	Disable   []string `yaml:"disable"`
}

// Load reads a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene and checks that every name in it is known.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ClearColor returns the background color, opaque black by default.
func (s *Scene) ClearColor() color.NRGBA {
	c := color.NRGBA{A: 255}
	if len(s.Clear) >= 3 {
		c.R, c.G, c.B = s.Clear[0], s.Clear[1], s.Clear[2]
	}
	if len(s.Clear) >= 4 {
		c.A = s.Clear[3]
	}
	return c
}

func (s *Scene) validate() error {
	for _, name := range s.Enable {
		if _, ok := capabilities[name]; !ok {
			return fmt.Errorf("unknown capability %q", name)
		}
	}
	textures := make(map[string]bool, len(s.Textures))
	for _, t := range s.Textures {
		if t.Name == "" || t.File == "" {
			return fmt.Errorf("texture needs a name and a file")
		}
		textures[t.Name] = true
	}
	for i, d := range s.Draws {
		if _, ok := modes[d.Mode]; !ok {
			return fmt.Errorf("draw %d: unknown mode %q", i, d.Mode)
		}
		if d.Position == nil {
			return fmt.Errorf("draw %d: no position array", i)
		}
		for _, name := range []string{d.Texture, d.Texture2} {
			if name != "" && !textures[name] {
				return fmt.Errorf("draw %d: unknown texture %q", i, name)
			}
		}
		for _, name := range append(append([]string(nil), d.Enable...), d.Disable...) {
			if _, ok := capabilities[name]; !ok {
				return fmt.Errorf("draw %d: unknown capability %q", i, name)
			}
		}
	}
	return nil
}
