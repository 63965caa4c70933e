// Package lighting implements fixed-function per-vertex lighting: up to
// eight directional or point lights, one front material, the light model and
// color material tracking.
//
// Products of light and material colors are cached per light and refreshed
// lazily from a dirty mask before the next lighting pass.
package lighting

import (
	"fmt"

	"pvrgl/internal/glerr"
	"pvrgl/internal/pvr"
)

// MaxLights is the number of light slots.
const MaxLights = 8

// Param names a light, material or light-model parameter. Values match the
// legacy enumerants.
type Param uint32

const (
	Ambient              Param = 0x1200
	Diffuse              Param = 0x1201
	Specular             Param = 0x1202
	Position             Param = 0x1203
	SpotDirection        Param = 0x1204
	SpotExponent         Param = 0x1205
	SpotCutoff           Param = 0x1206
	ConstantAttenuation  Param = 0x1207
	LinearAttenuation    Param = 0x1208
	QuadraticAttenuation Param = 0x1209

	Emission          Param = 0x1600
	Shininess         Param = 0x1601
	AmbientAndDiffuse Param = 0x1602
	ColorIndexes      Param = 0x1603

	LightModelLocalViewer  Param = 0x0B51
	LightModelTwoSide      Param = 0x0B52
	LightModelAmbient      Param = 0x0B53
	LightModelColorControl Param = 0x81F8
)

func (p Param) String() string {
	switch p {
	case Ambient:
		return "ambient"
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	case Position:
		return "position"
	case SpotDirection:
		return "spot_direction"
	case SpotExponent:
		return "spot_exponent"
	case SpotCutoff:
		return "spot_cutoff"
	case ConstantAttenuation:
		return "constant_attenuation"
	case LinearAttenuation:
		return "linear_attenuation"
	case QuadraticAttenuation:
		return "quadratic_attenuation"
	case Emission:
		return "emission"
	case Shininess:
		return "shininess"
	case AmbientAndDiffuse:
		return "ambient_and_diffuse"
	case LightModelLocalViewer:
		return "light_model_local_viewer"
	case LightModelTwoSide:
		return "light_model_two_side"
	case LightModelAmbient:
		return "light_model_ambient"
	case LightModelColorControl:
		return "light_model_color_control"
	}
	return fmt.Sprintf("param(%#x)", uint32(p))
}

// Face selects which material a setter applies to. Only the front material
// exists; FrontAndBack is accepted as an alias for it.
type Face uint32

const (
	Front        Face = 0x0404
	Back         Face = 0x0405
	FrontAndBack Face = 0x0408
)

// Color-control values for LightModelColorControl.
const (
	SingleColor           = 0x81F9
	SeparateSpecularColor = 0x81FA
)

const (
	specularExponentLimit = 128
	attenuationThreshold  = 0.01
)

// dirty bits name the inputs of the cached products.
type dirty uint8

const (
	dirtyAmbient dirty = 1 << iota
	dirtyDiffuse
	dirtyEmission
	dirtySpecular
	dirtySceneAmbient

	dirtyAll = dirtyAmbient | dirtyDiffuse | dirtyEmission | dirtySpecular | dirtySceneAmbient
)

// Light is one light slot.
type Light struct {
	Ambient, Diffuse, Specular [4]float32
	// Position is in eye space. W == 0 marks a directional light.
	Position      [4]float32
	SpotDirection [3]float32
	SpotExponent  float32
	SpotCutoff    float32
	Constant      float32
	Linear        float32
	Quadratic     float32

	ambientMat, diffuseMat, specularMat [4]float32
}

// Directional reports whether the light is at infinity.
func (l *Light) Directional() bool { return l.Position[3] == 0 }

// Material is the front material.
type Material struct {
	Ambient, Diffuse, Specular, Emission [4]float32
	Exponent                             float32

	base pvr.Color
}

// Engine is the lighting state of one context.
type Engine struct {
	lights   [MaxLights]Light
	enabled  uint8
	material Material

	sceneAmbient [4]float32
	localViewer  bool
	colorControl int32

	colorMaterial     bool
	colorMaterialMode Param
	colorMaterialMask dirty

	dirty   dirty
	normals [][3]float32
}

// New returns an engine holding the context-start defaults.
func New() *Engine {
	e := &Engine{}
	e.Reset()
	return e
}

// Reset restores every light, the material and the light model to their
// defaults. Only light 0 starts with white diffuse and specular.
func (e *Engine) Reset() {
	one := [4]float32{1, 1, 1, 1}
	zero := [4]float32{0, 0, 0, 1}

	e.material = Material{
		Ambient:  [4]float32{0.2, 0.2, 0.2, 1},
		Diffuse:  [4]float32{0.8, 0.8, 0.8, 1},
		Specular: zero,
		Emission: zero,
	}
	for i := range e.lights {
		l := Light{
			Ambient:       zero,
			Diffuse:       zero,
			Specular:      zero,
			Position:      [4]float32{0, 0, 1, 0},
			SpotDirection: [3]float32{0, 0, -1},
			SpotCutoff:    180,
			Constant:      1,
		}
		if i == 0 {
			l.Diffuse, l.Specular = one, one
		}
		e.lights[i] = l
	}
	e.enabled = 0
	e.sceneAmbient = [4]float32{0.2, 0.2, 0.2, 1}
	e.localViewer = true
	e.colorControl = SingleColor
	e.colorMaterial = false
	e.colorMaterialMode = AmbientAndDiffuse
	e.colorMaterialMask = dirtyAmbient | dirtyDiffuse
	e.dirty = dirtyAll
}

func (e *Engine) light(i int, op string) (*Light, error) {
	if i < 0 || i >= MaxLights {
		return nil, glerr.New(glerr.InvalidEnum, fmt.Sprintf("%s: light %d", op, i))
	}
	return &e.lights[i], nil
}

// Light returns a copy of light slot i.
func (e *Engine) Light(i int) Light { return e.lights[i] }

// Material returns a copy of the material.
func (e *Engine) Material() Material { return e.material }

// EnableLight switches light i on or off.
func (e *Engine) EnableLight(i int, on bool) error {
	if _, err := e.light(i, "EnableLight"); err != nil {
		return err
	}
	if on {
		e.enabled |= 1 << uint(i)
	} else {
		e.enabled &^= 1 << uint(i)
	}
	return nil
}

// LightEnabled reports whether light i is on.
func (e *Engine) LightEnabled(i int) bool {
	return i >= 0 && i < MaxLights && e.enabled&(1<<uint(i)) != 0
}

func need(v []float32, n int, op string) error {
	if len(v) < n {
		return glerr.New(glerr.InvalidValue, fmt.Sprintf("%s: %d values, need %d", op, len(v), n))
	}
	return nil
}

// SetLightfv sets a vector or scalar parameter of light i. Position must
// already be in eye space.
func (e *Engine) SetLightfv(i int, p Param, v []float32) error {
	const op = "Lightfv"
	l, err := e.light(i, op)
	if err != nil {
		return err
	}
	switch p {
	case Ambient, Diffuse, Specular, Position:
		if err := need(v, 4, op); err != nil {
			return err
		}
	case SpotDirection:
		if err := need(v, 3, op); err != nil {
			return err
		}
		copy(l.SpotDirection[:], v)
		return nil
	case SpotExponent, SpotCutoff, ConstantAttenuation, LinearAttenuation, QuadraticAttenuation:
		if err := need(v, 1, op); err != nil {
			return err
		}
		return e.SetLightf(i, p, v[0])
	default:
		return glerr.New(glerr.InvalidEnum, op+" "+p.String())
	}

	switch p {
	case Ambient:
		copy(l.Ambient[:], v)
		e.dirty |= dirtyAmbient
	case Diffuse:
		copy(l.Diffuse[:], v)
		e.dirty |= dirtyDiffuse
	case Specular:
		copy(l.Specular[:], v)
		e.dirty |= dirtySpecular
	case Position:
		copy(l.Position[:], v)
	}
	return nil
}

// SetLightf sets a scalar parameter of light i.
func (e *Engine) SetLightf(i int, p Param, v float32) error {
	const op = "Lightf"
	l, err := e.light(i, op)
	if err != nil {
		return err
	}
	switch p {
	case ConstantAttenuation:
		l.Constant = v
	case LinearAttenuation:
		l.Linear = v
	case QuadraticAttenuation:
		l.Quadratic = v
	case SpotExponent:
		l.SpotExponent = v
	case SpotCutoff:
		l.SpotCutoff = v
	default:
		return glerr.New(glerr.InvalidEnum, op+" "+p.String())
	}
	return nil
}

// SetMaterialf sets the shininess, clamped to [0, 128].
func (e *Engine) SetMaterialf(face Face, p Param, v float32) error {
	const op = "Materialf"
	if face == Back || p != Shininess {
		return glerr.New(glerr.InvalidEnum, op+" "+p.String())
	}
	e.material.Exponent = min(max(v, 0), specularExponentLimit)
	return nil
}

// SetMaterialfv sets a material color, or the shininess from v[0].
func (e *Engine) SetMaterialfv(face Face, p Param, v []float32) error {
	const op = "Materialfv"
	if face == Back {
		return glerr.New(glerr.InvalidEnum, op+": back material")
	}
	if p == Shininess {
		if err := need(v, 1, op); err != nil {
			return err
		}
		return e.SetMaterialf(face, p, v[0])
	}

	m := &e.material
	var target []*[4]float32
	var mask dirty
	switch p {
	case Ambient:
		target, mask = []*[4]float32{&m.Ambient}, dirtyAmbient
	case Diffuse:
		target, mask = []*[4]float32{&m.Diffuse}, dirtyDiffuse
	case Specular:
		target, mask = []*[4]float32{&m.Specular}, dirtySpecular
	case Emission:
		target, mask = []*[4]float32{&m.Emission}, dirtyEmission
	case AmbientAndDiffuse:
		target, mask = []*[4]float32{&m.Ambient, &m.Diffuse}, dirtyAmbient|dirtyDiffuse
	default:
		return glerr.New(glerr.InvalidEnum, op+" "+p.String())
	}
	if err := need(v, 4, op); err != nil {
		return err
	}
	for _, dst := range target {
		copy(dst[:], v)
	}
	e.dirty |= mask
	return nil
}

// SetLightModelfv sets the scene ambient or the local-viewer flag. Two-sided
// lighting is not supported.
func (e *Engine) SetLightModelfv(p Param, v []float32) error {
	const op = "LightModelfv"
	switch p {
	case LightModelAmbient:
		if err := need(v, 4, op); err != nil {
			return err
		}
		copy(e.sceneAmbient[:], v)
		e.dirty |= dirtySceneAmbient
	case LightModelLocalViewer:
		if err := need(v, 1, op); err != nil {
			return err
		}
		e.localViewer = v[0] != 0
	default:
		return glerr.New(glerr.InvalidEnum, op+" "+p.String())
	}
	return nil
}

// SetLightModeli sets the color control or the local-viewer flag.
func (e *Engine) SetLightModeli(p Param, v int32) error {
	const op = "LightModeli"
	switch p {
	case LightModelColorControl:
		if v != SingleColor && v != SeparateSpecularColor {
			return glerr.New(glerr.InvalidEnum, op+": color control")
		}
		e.colorControl = v
	case LightModelLocalViewer:
		e.localViewer = v != 0
	default:
		return glerr.New(glerr.InvalidEnum, op+" "+p.String())
	}
	return nil
}

// LocalViewer reports the local-viewer flag.
func (e *Engine) LocalViewer() bool { return e.localViewer }

// ColorControl reports the color-control mode.
func (e *Engine) ColorControl() int32 { return e.colorControl }

// SceneAmbient returns the light-model ambient color.
func (e *Engine) SceneAmbient() [4]float32 { return e.sceneAmbient }

// SetColorMaterial selects which material colors track the vertex color.
func (e *Engine) SetColorMaterial(face Face, mode Param) error {
	const op = "ColorMaterial"
	if face != FrontAndBack {
		return glerr.New(glerr.InvalidEnum, op+": face")
	}
	var mask dirty
	switch mode {
	case Ambient:
		mask = dirtyAmbient
	case Diffuse:
		mask = dirtyDiffuse
	case AmbientAndDiffuse:
		mask = dirtyAmbient | dirtyDiffuse
	case Emission:
		mask = dirtyEmission
	case Specular:
		mask = dirtySpecular
	default:
		return glerr.New(glerr.InvalidEnum, op+" "+mode.String())
	}
	e.colorMaterialMode = mode
	e.colorMaterialMask = mask
	return nil
}

// EnableColorMaterial turns color tracking on or off.
func (e *Engine) EnableColorMaterial(on bool) { e.colorMaterial = on }

// ColorMaterialEnabled reports whether color tracking is on.
func (e *Engine) ColorMaterialEnabled() bool { return e.colorMaterial }

// precalc refreshes the cached products named by mask.
func (e *Engine) precalc(mask dirty) {
	m := &e.material
	for i := range e.lights {
		l := &e.lights[i]
		for j := 0; j < 4; j++ {
			if mask&dirtyAmbient != 0 {
				l.ambientMat[j] = l.Ambient[j] * m.Ambient[j]
			}
			if mask&dirtyDiffuse != 0 {
				l.diffuseMat[j] = l.Diffuse[j] * m.Diffuse[j]
			}
			if mask&dirtySpecular != 0 {
				l.specularMat[j] = l.Specular[j] * m.Specular[j]
			}
		}
	}
	if mask&(dirtyAmbient|dirtyEmission|dirtySceneAmbient) != 0 {
		sa := &e.sceneAmbient
		m.base[pvr.R] = pvr.FloatToByte(sa[0]*m.Ambient[0] + m.Emission[0])
		m.base[pvr.G] = pvr.FloatToByte(sa[1]*m.Ambient[1] + m.Emission[1])
		m.base[pvr.B] = pvr.FloatToByte(sa[2]*m.Ambient[2] + m.Emission[2])
		m.base[pvr.A] = pvr.FloatToByte(sa[3]*m.Ambient[3] + m.Emission[3])
	}
}

// BaseColor returns the material's precomputed base color, refreshing it
// first if its inputs changed.
func (e *Engine) BaseColor() pvr.Color {
	e.flush()
	return e.material.base
}

func (e *Engine) flush() {
	if e.dirty != 0 {
		e.precalc(e.dirty)
		e.dirty = 0
	}
}
