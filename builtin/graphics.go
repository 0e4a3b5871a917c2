package builtin

import (
	"fmt"

	"github.com/relicdump/xnb/typereader"
	"github.com/relicdump/xnb/xnberr"
)

var surfaceFormatNames = []string{
	"Color", "Bgr565", "Bgra5551", "Bgra4444", "Dxt1", "Dxt3", "Dxt5",
	"NormalizedByte2", "NormalizedByte4", "Rgba1010102", "Rg32", "Rgba64",
	"Alpha8", "Single", "Vector2", "Vector4", "HalfSingle", "HalfVector2",
	"HalfVector4", "HdrBlendable",
}

var vertexElementFormatNames = []string{
	"Single", "Vector2", "Vector3", "Vector4", "Color", "Byte4", "Short2",
	"Short4", "NormalizedShort2", "NormalizedShort4", "HalfVector2", "HalfVector4",
}

var vertexElementUsageNames = []string{
	"Position", "Color", "TextureCoordinate", "Normal", "Binormal", "Tangent",
	"BlendIndices", "BlendWeight", "Depth", "Fog", "PointSize", "Sample",
	"TessellateFactor",
}

var compareFunctionNames = []string{
	"Always", "Never", "Less", "LessEqual", "Equal", "GreaterEqual", "Greater", "NotEqual",
}

// enumName looks up value in names, rendering the bare integer if it
// falls outside the known table - an unrecognized enum value is a
// warning-worthy oddity, not a parse failure.
func enumName(names []string, value int32) string {
	if value >= 0 && int(value) < len(names) {
		return names[value]
	}
	return fmt.Sprintf("%d", value)
}

// TextureMipLevel is one mip level's raw, format-encoded pixel data.
type TextureMipLevel struct {
	Data []byte
}

type Texture2D struct {
	Format int32
	Width, Height uint32
	Mips   []TextureMipLevel
}

type Texture3D struct {
	Format              int32
	Width, Height, Depth uint32
	Mips                []TextureMipLevel
}

type TextureCube struct {
	Format   int32
	Size     uint32
	MipCount uint32
	// Faces is face-major: Faces[face][mip].
	Faces [6][]TextureMipLevel
}

func readMips(eng typereader.Engine, count uint32) ([]TextureMipLevel, error) {
	mips := make([]TextureMipLevel, count)
	for i := range mips {
		size, err := eng.Stream().ReadU32()
		if err != nil {
			return nil, err
		}
		data, err := eng.Stream().ReadBytes(int(size))
		if err != nil {
			return nil, err
		}
		eng.Sink().Bytes(fmt.Sprintf("Mip[%d]", i), data)
		mips[i] = TextureMipLevel{Data: data}
	}
	return mips, nil
}

type textureReader struct{}

func (textureReader) TargetType() string                    { return xnaNamespace + "Graphics.Texture" }
func (textureReader) ReaderName() string                    { return namespace + "TextureReader" }
func (textureReader) IsValueType() bool                     { return false }
func (textureReader) Initialize(*typereader.Registry) error { return nil }
func (textureReader) Read(typereader.Engine) (any, error) {
	return nil, xnberr.NewError(xnberr.ErrUnknownTargetType, "TextureReader is abstract and should never be invoked directly", "builtin.textureReader.Read")
}

type texture2DReader struct{}

func (texture2DReader) TargetType() string                    { return xnaNamespace + "Graphics.Texture2D" }
func (texture2DReader) ReaderName() string                    { return namespace + "Texture2DReader" }
func (texture2DReader) IsValueType() bool                     { return false }
func (texture2DReader) Initialize(*typereader.Registry) error { return nil }
func (texture2DReader) Read(eng typereader.Engine) (any, error) {
	format, err := eng.Stream().ReadI32()
	if err != nil {
		return nil, err
	}
	width, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	height, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	mipCount, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	eng.Sink().Field("Format", enumName(surfaceFormatNames, format))
	eng.Sink().Field("Width", width)
	eng.Sink().Field("Height", height)
	mips, err := readMips(eng, mipCount)
	if err != nil {
		return nil, err
	}
	return Texture2D{Format: format, Width: width, Height: height, Mips: mips}, nil
}

type texture3DReader struct{}

func (texture3DReader) TargetType() string                    { return xnaNamespace + "Graphics.Texture3D" }
func (texture3DReader) ReaderName() string                    { return namespace + "Texture3DReader" }
func (texture3DReader) IsValueType() bool                     { return false }
func (texture3DReader) Initialize(*typereader.Registry) error { return nil }
func (texture3DReader) Read(eng typereader.Engine) (any, error) {
	format, err := eng.Stream().ReadI32()
	if err != nil {
		return nil, err
	}
	width, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	height, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	depth, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	mipCount, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	eng.Sink().Field("Format", enumName(surfaceFormatNames, format))
	eng.Sink().Field("Width", width)
	eng.Sink().Field("Height", height)
	eng.Sink().Field("Depth", depth)
	mips, err := readMips(eng, mipCount)
	if err != nil {
		return nil, err
	}
	return Texture3D{Format: format, Width: width, Height: height, Depth: depth, Mips: mips}, nil
}

type textureCubeReader struct{}

func (textureCubeReader) TargetType() string                    { return xnaNamespace + "Graphics.TextureCube" }
func (textureCubeReader) ReaderName() string                    { return namespace + "TextureCubeReader" }
func (textureCubeReader) IsValueType() bool                     { return false }
func (textureCubeReader) Initialize(*typereader.Registry) error { return nil }
func (textureCubeReader) Read(eng typereader.Engine) (any, error) {
	format, err := eng.Stream().ReadI32()
	if err != nil {
		return nil, err
	}
	size, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	mipCount, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}

	eng.Sink().Field("Format", enumName(surfaceFormatNames, format))
	eng.Sink().Field("Size", size)
	eng.Sink().Field("MipCount", mipCount)

	cube := TextureCube{Format: format, Size: size, MipCount: mipCount}
	for face := 0; face < 6; face++ {
		done := eng.Sink().Section(fmt.Sprintf("Face[%d]", face))
		mips, err := readMips(eng, mipCount)
		if err != nil {
			return nil, err
		}
		done()
		cube.Faces[face] = mips
	}
	return cube, nil
}

type IndexBuffer struct {
	Is16Bit bool
	Data    []byte
}

type indexBufferReader struct{}

func (indexBufferReader) TargetType() string                    { return xnaNamespace + "Graphics.IndexBuffer" }
func (indexBufferReader) ReaderName() string                    { return namespace + "IndexBufferReader" }
func (indexBufferReader) IsValueType() bool                     { return false }
func (indexBufferReader) Initialize(*typereader.Registry) error { return nil }
func (indexBufferReader) Read(eng typereader.Engine) (any, error) {
	is16Bit, err := eng.Stream().ReadBool()
	if err != nil {
		return nil, err
	}
	size, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	data, err := eng.Stream().ReadBytes(int(size))
	if err != nil {
		return nil, err
	}
	eng.Sink().Field("Is16Bit", is16Bit)
	eng.Sink().Bytes("Data", data)
	return IndexBuffer{Is16Bit: is16Bit, Data: data}, nil
}

type VertexElement struct {
	Offset     uint32
	Format     int32
	Usage      int32
	UsageIndex uint32
}

type VertexDeclaration struct {
	Stride   uint32
	Elements []VertexElement
}

func readVertexDeclaration(eng typereader.Engine) (VertexDeclaration, error) {
	stride, err := eng.Stream().ReadU32()
	if err != nil {
		return VertexDeclaration{}, err
	}
	eng.Sink().Field("Stride", stride)
	count, err := eng.Stream().ReadU32()
	if err != nil {
		return VertexDeclaration{}, err
	}

	elements := make([]VertexElement, count)
	for i := range elements {
		done := eng.Sink().Section(fmt.Sprintf("Element[%d]", i))
		offset, err := eng.Stream().ReadU32()
		if err != nil {
			return VertexDeclaration{}, err
		}
		format, err := eng.Stream().ReadI32()
		if err != nil {
			return VertexDeclaration{}, err
		}
		usage, err := eng.Stream().ReadI32()
		if err != nil {
			return VertexDeclaration{}, err
		}
		usageIndex, err := eng.Stream().ReadU32()
		if err != nil {
			return VertexDeclaration{}, err
		}
		eng.Sink().Field("Offset", offset)
		eng.Sink().Field("Format", enumName(vertexElementFormatNames, format))
		eng.Sink().Field("Usage", enumName(vertexElementUsageNames, usage))
		eng.Sink().Field("UsageIndex", usageIndex)
		done()
		elements[i] = VertexElement{Offset: offset, Format: format, Usage: usage, UsageIndex: usageIndex}
	}

	return VertexDeclaration{Stride: stride, Elements: elements}, nil
}

type VertexBuffer struct {
	Declaration VertexDeclaration
	VertexCount uint32
	Data        []byte
}

type vertexBufferReader struct{}

func (vertexBufferReader) TargetType() string                    { return xnaNamespace + "Graphics.VertexBuffer" }
func (vertexBufferReader) ReaderName() string                    { return namespace + "VertexBufferReader" }
func (vertexBufferReader) IsValueType() bool                     { return false }
func (vertexBufferReader) Initialize(*typereader.Registry) error { return nil }
func (vertexBufferReader) Read(eng typereader.Engine) (any, error) {
	decl, err := readVertexDeclaration(eng)
	if err != nil {
		return nil, err
	}
	count, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	data, err := eng.Stream().ReadBytes(int(count) * int(decl.Stride))
	if err != nil {
		return nil, err
	}
	eng.Sink().Field("VertexCount", count)
	eng.Sink().Bytes("Data", data)
	return VertexBuffer{Declaration: decl, VertexCount: count, Data: data}, nil
}

type vertexDeclarationReader struct{}

func (vertexDeclarationReader) TargetType() string {
	return xnaNamespace + "Graphics.VertexDeclaration"
}
func (vertexDeclarationReader) ReaderName() string                    { return namespace + "VertexDeclarationReader" }
func (vertexDeclarationReader) IsValueType() bool                     { return false }
func (vertexDeclarationReader) Initialize(*typereader.Registry) error { return nil }
func (vertexDeclarationReader) Read(eng typereader.Engine) (any, error) {
	return readVertexDeclaration(eng)
}

type Effect struct{ Bytecode []byte }

type effectReader struct{}

func (effectReader) TargetType() string                    { return xnaNamespace + "Graphics.Effect" }
func (effectReader) ReaderName() string                    { return namespace + "EffectReader" }
func (effectReader) IsValueType() bool                     { return false }
func (effectReader) Initialize(*typereader.Registry) error { return nil }
func (effectReader) Read(eng typereader.Engine) (any, error) {
	size, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	data, err := eng.Stream().ReadBytes(int(size))
	if err != nil {
		return nil, err
	}
	eng.Sink().Bytes("Bytecode", data)
	return Effect{Bytecode: data}, nil
}

type EffectMaterial struct {
	EffectReference string
	Parameters      any
}

type effectMaterialReader struct{}

func (effectMaterialReader) TargetType() string                    { return xnaNamespace + "Graphics.EffectMaterial" }
func (effectMaterialReader) ReaderName() string                    { return namespace + "EffectMaterialReader" }
func (effectMaterialReader) IsValueType() bool                     { return false }
func (effectMaterialReader) Initialize(*typereader.Registry) error { return nil }
func (effectMaterialReader) Read(eng typereader.Engine) (any, error) {
	name, err := eng.Stream().ReadString()
	if err != nil {
		return nil, err
	}
	eng.Sink().Field("EffectReference", name)
	params, err := eng.ReadObject()
	if err != nil {
		return nil, err
	}
	if params == nil {
		eng.Sink().Null("Parameters")
	}
	return EffectMaterial{EffectReference: name, Parameters: params}, nil
}

type BasicEffect struct {
	TextureReference                       string
	Diffuse, Emissive, Specular            Vector3
	SpecularPower, Alpha                   float32
	VertexColorEnabled                     bool
}

type basicEffectReader struct{}

func (basicEffectReader) TargetType() string                    { return xnaNamespace + "Graphics.BasicEffect" }
func (basicEffectReader) ReaderName() string                    { return namespace + "BasicEffectReader" }
func (basicEffectReader) IsValueType() bool                     { return false }
func (basicEffectReader) Initialize(*typereader.Registry) error { return nil }
func (basicEffectReader) Read(eng typereader.Engine) (any, error) {
	texture, err := eng.Stream().ReadString()
	if err != nil {
		return nil, err
	}
	diffuse, err := readVector3(eng)
	if err != nil {
		return nil, err
	}
	emissive, err := readVector3(eng)
	if err != nil {
		return nil, err
	}
	specular, err := readVector3(eng)
	if err != nil {
		return nil, err
	}
	specularPower, err := eng.Stream().ReadF32()
	if err != nil {
		return nil, err
	}
	alpha, err := eng.Stream().ReadF32()
	if err != nil {
		return nil, err
	}
	vertexColor, err := eng.Stream().ReadBool()
	if err != nil {
		return nil, err
	}
	eng.Sink().Field("TextureReference", texture)
	eng.Sink().Field("Diffuse", diffuse)
	eng.Sink().Field("Emissive", emissive)
	eng.Sink().Field("Specular", specular)
	eng.Sink().Field("SpecularPower", specularPower)
	eng.Sink().Field("Alpha", alpha)
	eng.Sink().Field("VertexColorEnabled", vertexColor)
	return BasicEffect{
		TextureReference:   texture,
		Diffuse:            diffuse,
		Emissive:           emissive,
		Specular:           specular,
		SpecularPower:      specularPower,
		Alpha:              alpha,
		VertexColorEnabled: vertexColor,
	}, nil
}

type AlphaTestEffect struct {
	TextureReference   string
	CompareFunction    int32
	ReferenceAlpha     uint32
	Diffuse            Vector3
	Alpha              float32
	VertexColorEnabled bool
}

type alphaTestEffectReader struct{}

func (alphaTestEffectReader) TargetType() string {
	return xnaNamespace + "Graphics.AlphaTestEffect"
}
func (alphaTestEffectReader) ReaderName() string                    { return namespace + "AlphaTestEffectReader" }
func (alphaTestEffectReader) IsValueType() bool                     { return false }
func (alphaTestEffectReader) Initialize(*typereader.Registry) error { return nil }
func (alphaTestEffectReader) Read(eng typereader.Engine) (any, error) {
	texture, err := eng.Stream().ReadString()
	if err != nil {
		return nil, err
	}
	compare, err := eng.Stream().ReadI32()
	if err != nil {
		return nil, err
	}
	refAlpha, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	diffuse, err := readVector3(eng)
	if err != nil {
		return nil, err
	}
	alpha, err := eng.Stream().ReadF32()
	if err != nil {
		return nil, err
	}
	vertexColor, err := eng.Stream().ReadBool()
	if err != nil {
		return nil, err
	}
	eng.Sink().Field("TextureReference", texture)
	eng.Sink().Field("CompareFunction", enumName(compareFunctionNames, compare))
	eng.Sink().Field("ReferenceAlpha", refAlpha)
	eng.Sink().Field("Diffuse", diffuse)
	eng.Sink().Field("Alpha", alpha)
	eng.Sink().Field("VertexColorEnabled", vertexColor)
	return AlphaTestEffect{
		TextureReference:   texture,
		CompareFunction:    compare,
		ReferenceAlpha:     refAlpha,
		Diffuse:            diffuse,
		Alpha:              alpha,
		VertexColorEnabled: vertexColor,
	}, nil
}

type DualTextureEffect struct {
	Texture1Reference, Texture2Reference string
	Diffuse                              Vector3
	Alpha                                float32
	VertexColorEnabled                   bool
}

type dualTextureEffectReader struct{}

func (dualTextureEffectReader) TargetType() string {
	return xnaNamespace + "Graphics.DualTextureEffect"
}
func (dualTextureEffectReader) ReaderName() string { return namespace + "DualTextureEffectReader" }
func (dualTextureEffectReader) IsValueType() bool  { return false }
func (dualTextureEffectReader) Initialize(*typereader.Registry) error { return nil }
func (dualTextureEffectReader) Read(eng typereader.Engine) (any, error) {
	tex1, err := eng.Stream().ReadString()
	if err != nil {
		return nil, err
	}
	tex2, err := eng.Stream().ReadString()
	if err != nil {
		return nil, err
	}
	diffuse, err := readVector3(eng)
	if err != nil {
		return nil, err
	}
	alpha, err := eng.Stream().ReadF32()
	if err != nil {
		return nil, err
	}
	vertexColor, err := eng.Stream().ReadBool()
	if err != nil {
		return nil, err
	}
	eng.Sink().Field("Texture1Reference", tex1)
	eng.Sink().Field("Texture2Reference", tex2)
	eng.Sink().Field("Diffuse", diffuse)
	eng.Sink().Field("Alpha", alpha)
	eng.Sink().Field("VertexColorEnabled", vertexColor)
	return DualTextureEffect{
		Texture1Reference:  tex1,
		Texture2Reference:  tex2,
		Diffuse:            diffuse,
		Alpha:              alpha,
		VertexColorEnabled: vertexColor,
	}, nil
}

type EnvironmentMapEffect struct {
	TextureReference, EnvironmentMapReference string
	EnvironmentMapAmount                      float32
	EnvironmentMapSpecular                    Vector3
	FresnelFactor                             float32
	Diffuse, Emissive                         Vector3
	Alpha                                     float32
}

type environmentMapEffectReader struct{}

func (environmentMapEffectReader) TargetType() string {
	return xnaNamespace + "Graphics.EnvironmentMapEffect"
}
func (environmentMapEffectReader) ReaderName() string {
	return namespace + "EnvironmentMapEffectReader"
}
func (environmentMapEffectReader) IsValueType() bool                     { return false }
func (environmentMapEffectReader) Initialize(*typereader.Registry) error { return nil }
func (environmentMapEffectReader) Read(eng typereader.Engine) (any, error) {
	texture, err := eng.Stream().ReadString()
	if err != nil {
		return nil, err
	}
	envMap, err := eng.Stream().ReadString()
	if err != nil {
		return nil, err
	}
	envMapAmount, err := eng.Stream().ReadF32()
	if err != nil {
		return nil, err
	}
	envMapSpecular, err := readVector3(eng)
	if err != nil {
		return nil, err
	}
	fresnel, err := eng.Stream().ReadF32()
	if err != nil {
		return nil, err
	}
	diffuse, err := readVector3(eng)
	if err != nil {
		return nil, err
	}
	emissive, err := readVector3(eng)
	if err != nil {
		return nil, err
	}
	alpha, err := eng.Stream().ReadF32()
	if err != nil {
		return nil, err
	}
	eng.Sink().Field("TextureReference", texture)
	eng.Sink().Field("EnvironmentMapReference", envMap)
	eng.Sink().Field("EnvironmentMapAmount", envMapAmount)
	eng.Sink().Field("EnvironmentMapSpecular", envMapSpecular)
	eng.Sink().Field("FresnelFactor", fresnel)
	eng.Sink().Field("Diffuse", diffuse)
	eng.Sink().Field("Emissive", emissive)
	eng.Sink().Field("Alpha", alpha)
	return EnvironmentMapEffect{
		TextureReference:        texture,
		EnvironmentMapReference: envMap,
		EnvironmentMapAmount:    envMapAmount,
		EnvironmentMapSpecular:  envMapSpecular,
		FresnelFactor:           fresnel,
		Diffuse:                 diffuse,
		Emissive:                emissive,
		Alpha:                   alpha,
	}, nil
}

type SkinnedEffect struct {
	TextureReference             string
	WeightsPerVertex             uint32
	Diffuse, Emissive, Specular  Vector3
	SpecularPower, Alpha         float32
}

type skinnedEffectReader struct{}

func (skinnedEffectReader) TargetType() string                    { return xnaNamespace + "Graphics.SkinnedEffect" }
func (skinnedEffectReader) ReaderName() string                    { return namespace + "SkinnedEffectReader" }
func (skinnedEffectReader) IsValueType() bool                     { return false }
func (skinnedEffectReader) Initialize(*typereader.Registry) error { return nil }
func (skinnedEffectReader) Read(eng typereader.Engine) (any, error) {
	texture, err := eng.Stream().ReadString()
	if err != nil {
		return nil, err
	}
	weights, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	diffuse, err := readVector3(eng)
	if err != nil {
		return nil, err
	}
	emissive, err := readVector3(eng)
	if err != nil {
		return nil, err
	}
	specular, err := readVector3(eng)
	if err != nil {
		return nil, err
	}
	specularPower, err := eng.Stream().ReadF32()
	if err != nil {
		return nil, err
	}
	alpha, err := eng.Stream().ReadF32()
	if err != nil {
		return nil, err
	}
	eng.Sink().Field("TextureReference", texture)
	eng.Sink().Field("WeightsPerVertex", weights)
	eng.Sink().Field("Diffuse", diffuse)
	eng.Sink().Field("Emissive", emissive)
	eng.Sink().Field("Specular", specular)
	eng.Sink().Field("SpecularPower", specularPower)
	eng.Sink().Field("Alpha", alpha)
	return SkinnedEffect{
		TextureReference: texture,
		WeightsPerVertex: weights,
		Diffuse:          diffuse,
		Emissive:         emissive,
		Specular:         specular,
		SpecularPower:    specularPower,
		Alpha:            alpha,
	}, nil
}

type SpriteFont struct {
	Texture             any
	Glyphs              any
	Cropping            any
	CharacterMap        any
	VerticalLineSpacing int32
	HorizontalSpacing   float32
	Kerning             any
	DefaultCharacter    *rune
}

type spriteFontReader struct{}

func (spriteFontReader) TargetType() string                    { return xnaNamespace + "Graphics.SpriteFont" }
func (spriteFontReader) ReaderName() string                    { return namespace + "SpriteFontReader" }
func (spriteFontReader) IsValueType() bool                     { return false }
func (spriteFontReader) Initialize(*typereader.Registry) error { return nil }
func (spriteFontReader) Read(eng typereader.Engine) (any, error) {
	texture, err := eng.ReadObject()
	if err != nil {
		return nil, err
	}
	if texture == nil {
		eng.Sink().Null("Texture")
	}
	glyphs, err := eng.ReadObject()
	if err != nil {
		return nil, err
	}
	if glyphs == nil {
		eng.Sink().Null("Glyphs")
	}
	cropping, err := eng.ReadObject()
	if err != nil {
		return nil, err
	}
	if cropping == nil {
		eng.Sink().Null("Cropping")
	}
	charMap, err := eng.ReadObject()
	if err != nil {
		return nil, err
	}
	if charMap == nil {
		eng.Sink().Null("CharacterMap")
	}
	vSpacing, err := eng.Stream().ReadI32()
	if err != nil {
		return nil, err
	}
	hSpacing, err := eng.Stream().ReadF32()
	if err != nil {
		return nil, err
	}
	eng.Sink().Field("VerticalLineSpacing", vSpacing)
	eng.Sink().Field("HorizontalSpacing", hSpacing)
	kerning, err := eng.ReadObject()
	if err != nil {
		return nil, err
	}
	if kerning == nil {
		eng.Sink().Null("Kerning")
	}

	hasDefault, err := eng.Stream().ReadBool()
	if err != nil {
		return nil, err
	}
	var defaultChar *rune
	if hasDefault {
		c, err := eng.Stream().ReadChar()
		if err != nil {
			return nil, err
		}
		defaultChar = &c
		eng.Sink().Field("DefaultCharacter", c)
	} else {
		eng.Sink().Null("DefaultCharacter")
	}

	return SpriteFont{
		Texture:             texture,
		Glyphs:              glyphs,
		Cropping:            cropping,
		CharacterMap:        charMap,
		VerticalLineSpacing: vSpacing,
		HorizontalSpacing:   hSpacing,
		Kerning:             kerning,
		DefaultCharacter:    defaultChar,
	}, nil
}

// readBoneReference reads a bone index encoded as one byte when the
// model has fewer than 255 bones, else as a 32-bit value. A zero value
// means "no reference"; any other value is the 1-based bone index, so
// the returned pointer (when non-nil) holds the 0-based index.
func readBoneReference(eng typereader.Engine, boneCount uint32) (*int, error) {
	var id uint32
	if boneCount < 255 {
		b, err := eng.Stream().ReadU8()
		if err != nil {
			return nil, err
		}
		id = uint32(b)
	} else {
		v, err := eng.Stream().ReadU32()
		if err != nil {
			return nil, err
		}
		id = v
	}

	if id == 0 {
		return nil, nil
	}
	v := int(id) - 1
	return &v, nil
}

type Bone struct {
	Name      any
	Transform Matrix
}

type BoneHierarchy struct {
	Parent   *int
	Children []int
}

type MeshPart struct {
	VertexOffset, NumVertices, StartIndex, PrimitiveCount int32
	Tag                                                    any
	VertexBufferRef, IndexBufferRef, EffectRef             int
}

type Mesh struct {
	Name    any
	Parent  *int
	Bounds  BoundingSphere
	Tag     any
	Parts   []MeshPart
}

type Model struct {
	Bones      []Bone
	Hierarchy  []BoneHierarchy
	Meshes     []Mesh
	RootBone   *int
	Tag        any
}

type modelReader struct{}

func (modelReader) TargetType() string                    { return xnaNamespace + "Graphics.Model" }
func (modelReader) ReaderName() string                    { return namespace + "ModelReader" }
func (modelReader) IsValueType() bool                     { return false }
func (modelReader) Initialize(*typereader.Registry) error { return nil }
func (modelReader) Read(eng typereader.Engine) (any, error) {
	boneCount, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}

	bones := make([]Bone, boneCount)
	for i := range bones {
		done := eng.Sink().Section(fmt.Sprintf("Bone[%d]", i))
		name, err := eng.ReadObject()
		if err != nil {
			return nil, err
		}
		if name == nil {
			eng.Sink().Null("Name")
		}
		transform, err := readMatrix(eng)
		if err != nil {
			return nil, err
		}
		eng.Sink().Field("Transform", transform)
		done()
		bones[i] = Bone{Name: name, Transform: transform}
	}

	hierarchy := make([]BoneHierarchy, boneCount)
	for i := range hierarchy {
		done := eng.Sink().Section(fmt.Sprintf("Bone[%d].Hierarchy", i))
		parent, err := readBoneReference(eng, boneCount)
		if err != nil {
			return nil, err
		}
		if parent != nil {
			eng.Sink().Field("Parent", *parent)
		} else {
			eng.Sink().Null("Parent")
		}

		childCount, err := eng.Stream().ReadU32()
		if err != nil {
			return nil, err
		}
		children := make([]int, 0, childCount)
		for j := uint32(0); j < childCount; j++ {
			child, err := readBoneReference(eng, boneCount)
			if err != nil {
				return nil, err
			}
			if child != nil {
				children = append(children, *child)
			}
		}
		eng.Sink().Field("Children", children)
		done()

		hierarchy[i] = BoneHierarchy{Parent: parent, Children: children}
	}

	meshCount, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}

	meshes := make([]Mesh, meshCount)
	for i := range meshes {
		meshDone := eng.Sink().Section(fmt.Sprintf("Mesh[%d]", i))
		name, err := eng.ReadObject()
		if err != nil {
			return nil, err
		}
		if name == nil {
			eng.Sink().Null("Name")
		}
		parent, err := readBoneReference(eng, boneCount)
		if err != nil {
			return nil, err
		}
		if parent != nil {
			eng.Sink().Field("Parent", *parent)
		} else {
			eng.Sink().Null("Parent")
		}

		x, err := eng.Stream().ReadF32()
		if err != nil {
			return nil, err
		}
		y, err := eng.Stream().ReadF32()
		if err != nil {
			return nil, err
		}
		z, err := eng.Stream().ReadF32()
		if err != nil {
			return nil, err
		}
		radius, err := eng.Stream().ReadF32()
		if err != nil {
			return nil, err
		}
		bounds := BoundingSphere{Center: Vector3{X: x, Y: y, Z: z}, Radius: radius}
		eng.Sink().Field("Bounds", bounds)

		tag, err := eng.ReadObject()
		if err != nil {
			return nil, err
		}
		if tag == nil {
			eng.Sink().Null("Tag")
		}

		partCount, err := eng.Stream().ReadU32()
		if err != nil {
			return nil, err
		}
		parts := make([]MeshPart, partCount)
		for j := range parts {
			partDone := eng.Sink().Section(fmt.Sprintf("Part[%d]", j))
			vertexOffset, err := eng.Stream().ReadI32()
			if err != nil {
				return nil, err
			}
			numVertices, err := eng.Stream().ReadI32()
			if err != nil {
				return nil, err
			}
			startIndex, err := eng.Stream().ReadI32()
			if err != nil {
				return nil, err
			}
			primitiveCount, err := eng.Stream().ReadI32()
			if err != nil {
				return nil, err
			}
			partTag, err := eng.ReadObject()
			if err != nil {
				return nil, err
			}
			if partTag == nil {
				eng.Sink().Null("Tag")
			}
			vbRef, err := eng.ReadSharedResource()
			if err != nil {
				return nil, err
			}
			ibRef, err := eng.ReadSharedResource()
			if err != nil {
				return nil, err
			}
			effectRef, err := eng.ReadSharedResource()
			if err != nil {
				return nil, err
			}
			eng.Sink().Field("VertexOffset", vertexOffset)
			eng.Sink().Field("NumVertices", numVertices)
			eng.Sink().Field("StartIndex", startIndex)
			eng.Sink().Field("PrimitiveCount", primitiveCount)
			eng.Sink().Field("VertexBufferRef", vbRef)
			eng.Sink().Field("IndexBufferRef", ibRef)
			eng.Sink().Field("EffectRef", effectRef)
			partDone()
			parts[j] = MeshPart{
				VertexOffset:    vertexOffset,
				NumVertices:     numVertices,
				StartIndex:      startIndex,
				PrimitiveCount:  primitiveCount,
				Tag:             partTag,
				VertexBufferRef: vbRef,
				IndexBufferRef:  ibRef,
				EffectRef:       effectRef,
			}
		}
		meshDone()

		meshes[i] = Mesh{Name: name, Parent: parent, Bounds: bounds, Tag: tag, Parts: parts}
	}

	root, err := readBoneReference(eng, boneCount)
	if err != nil {
		return nil, err
	}
	if root != nil {
		eng.Sink().Field("RootBone", *root)
	} else {
		eng.Sink().Null("RootBone")
	}
	tag, err := eng.ReadObject()
	if err != nil {
		return nil, err
	}
	if tag == nil {
		eng.Sink().Null("Tag")
	}

	return Model{Bones: bones, Hierarchy: hierarchy, Meshes: meshes, RootBone: root, Tag: tag}, nil
}

func registerGraphics(reg *typereader.Registry) {
	reg.RegisterConcrete(textureReader{})
	reg.RegisterConcrete(texture2DReader{})
	reg.RegisterConcrete(texture3DReader{})
	reg.RegisterConcrete(textureCubeReader{})
	reg.RegisterConcrete(indexBufferReader{})
	reg.RegisterConcrete(vertexBufferReader{})
	reg.RegisterConcrete(vertexDeclarationReader{})
	reg.RegisterConcrete(effectReader{})
	reg.RegisterConcrete(effectMaterialReader{})
	reg.RegisterConcrete(basicEffectReader{})
	reg.RegisterConcrete(alphaTestEffectReader{})
	reg.RegisterConcrete(dualTextureEffectReader{})
	reg.RegisterConcrete(environmentMapEffectReader{})
	reg.RegisterConcrete(skinnedEffectReader{})
	reg.RegisterConcrete(spriteFontReader{})
	reg.RegisterConcrete(modelReader{})
}
