package gl

import (
	"pvrgl/internal/attrib"
	"pvrgl/internal/lighting"
	"pvrgl/internal/matrix"
	"pvrgl/internal/primitive"
)

// Enum is a legacy API enumerant.
type Enum uint32

// Re-exported enumerants owned by the pipeline packages.
type (
	Mode  = primitive.Mode
	Type  = attrib.Type
	Param = lighting.Param
	Face  = lighting.Face
)

const (
	Points        = primitive.Points
	Lines         = primitive.Lines
	LineLoop      = primitive.LineLoop
	LineStrip     = primitive.LineStrip
	Triangles     = primitive.Triangles
	TriangleStrip = primitive.TriangleStrip
	TriangleFan   = primitive.TriangleFan
	Quads         = primitive.Quads
	QuadStrip     = primitive.QuadStrip
	Polygon       = primitive.Polygon

	Byte                  = attrib.Byte
	UnsignedByte          = attrib.UnsignedByte
	Short                 = attrib.Short
	UnsignedShort         = attrib.UnsignedShort
	Int                   = attrib.Int
	UnsignedInt           = attrib.UnsignedInt
	Float                 = attrib.Float
	Double                = attrib.Double
	UnsignedInt2101010Rev = attrib.UnsignedInt2101010Rev
	BGRA                  = attrib.SizeBGRA

	Ambient              = lighting.Ambient
	Diffuse              = lighting.Diffuse
	Specular             = lighting.Specular
	Position             = lighting.Position
	SpotDirection        = lighting.SpotDirection
	SpotExponent         = lighting.SpotExponent
	SpotCutoff           = lighting.SpotCutoff
	ConstantAttenuation  = lighting.ConstantAttenuation
	LinearAttenuation    = lighting.LinearAttenuation
	QuadraticAttenuation = lighting.QuadraticAttenuation
	Emission             = lighting.Emission
	Shininess            = lighting.Shininess
	AmbientAndDiffuse    = lighting.AmbientAndDiffuse

	LightModelAmbient      = lighting.LightModelAmbient
	LightModelLocalViewer  = lighting.LightModelLocalViewer
	LightModelTwoSide      = lighting.LightModelTwoSide
	LightModelColorControl = lighting.LightModelColorControl

	Front        = lighting.Front
	Back         = lighting.Back
	FrontAndBack = lighting.FrontAndBack

	ModelView  = matrix.ModelView
	Projection = matrix.Projection
	Texture    = matrix.Texture
)

// Capabilities for Enable and Disable.
const (
	CullFace      Enum = 0x0B44
	Lighting      Enum = 0x0B50
	ColorMaterial Enum = 0x0B57
	DepthTest     Enum = 0x0B71
	Normalize     Enum = 0x0BA1
	AlphaTest     Enum = 0x0BC0
	Blend         Enum = 0x0BE2
	Texture2D     Enum = 0x0DE1
	Light0        Enum = 0x4000
	Light7        Enum = 0x4007
	// NearZClipping culls geometry behind the near plane before the divide.
	NearZClipping Enum = 0xEEFA
)

// Client array names.
const (
	VertexArray       Enum = 0x8074
	NormalArray       Enum = 0x8075
	ColorArray        Enum = 0x8076
	TextureCoordArray Enum = 0x8078
)

// Texture units.
const (
	Texture0 Enum = 0x84C0
	Texture1 Enum = 0x84C1
)

// Shade models.
const (
	Flat   Enum = 0x1D00
	Smooth Enum = 0x1D01
)

// Blend factors.
const (
	Zero             Enum = 0
	One              Enum = 1
	SrcColor         Enum = 0x0300
	OneMinusSrcColor Enum = 0x0301
	SrcAlpha         Enum = 0x0302
	OneMinusSrcAlpha Enum = 0x0303
	DstAlpha         Enum = 0x0304
	OneMinusDstAlpha Enum = 0x0305
	DstColor         Enum = 0x0306
	OneMinusDstColor Enum = 0x0307
)

// Depth functions.
const (
	Never    Enum = 0x0200
	Less     Enum = 0x0201
	Equal    Enum = 0x0202
	LEqual   Enum = 0x0203
	Greater  Enum = 0x0204
	NotEqual Enum = 0x0205
	GEqual   Enum = 0x0206
	Always   Enum = 0x0207
)

// Winding.
const (
	CW  Enum = 0x0900
	CCW Enum = 0x0901
)

// Texture filters and environments.
const (
	Nearest  Enum = 0x2600
	Linear   Enum = 0x2601
	Modulate Enum = 0x2100
	Decal    Enum = 0x2101
	Replace  Enum = 0x1E01
)

// Texture parameter names.
const (
	TextureEnvMode   Enum = 0x2200
	TextureMagFilter Enum = 0x2800
	TextureMinFilter Enum = 0x2801
)
