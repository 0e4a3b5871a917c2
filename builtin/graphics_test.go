package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTexture2DReaderMipLevels(t *testing.T) {
	r := texture2DReader{}
	var data []byte
	data = append(data, intBytes(0)...)  // format
	data = append(data, intBytes(4)...)  // width
	data = append(data, intBytes(4)...)  // height
	data = append(data, intBytes(1)...)  // mip count
	data = append(data, intBytes(2)...)  // mip 0 size
	data = append(data, 0xAA, 0xBB)

	v, err := r.Read(newFakeEngine(data))
	require.NoError(t, err)
	tex := v.(Texture2D)
	assert.Equal(t, uint32(4), tex.Width)
	require.Len(t, tex.Mips, 1)
	assert.Equal(t, []byte{0xAA, 0xBB}, tex.Mips[0].Data)
}

func TestTextureCubeReaderFaceMajorOrder(t *testing.T) {
	r := textureCubeReader{}
	var data []byte
	data = append(data, intBytes(0)...) // format
	data = append(data, intBytes(2)...) // size
	data = append(data, intBytes(1)...) // mip count
	for face := 0; face < 6; face++ {
		data = append(data, intBytes(1)...)
		data = append(data, byte(face))
	}

	v, err := r.Read(newFakeEngine(data))
	require.NoError(t, err)
	cube := v.(TextureCube)
	for face := 0; face < 6; face++ {
		require.Len(t, cube.Faces[face], 1)
		assert.Equal(t, []byte{byte(face)}, cube.Faces[face][0].Data)
	}
}

func TestIndexBufferReader(t *testing.T) {
	r := indexBufferReader{}
	data := append([]byte{1}, append(intBytes(2), 0x01, 0x02)...)
	v, err := r.Read(newFakeEngine(data))
	require.NoError(t, err)
	ib := v.(IndexBuffer)
	assert.True(t, ib.Is16Bit)
	assert.Equal(t, []byte{0x01, 0x02}, ib.Data)
}

func TestVertexBufferReaderUsesDeclarationStride(t *testing.T) {
	r := vertexBufferReader{}
	var data []byte
	data = append(data, intBytes(8)...) // stride
	data = append(data, intBytes(1)...) // element count
	data = append(data, intBytes(0)...) // offset
	data = append(data, intBytes(1)...) // format
	data = append(data, intBytes(0)...) // usage
	data = append(data, intBytes(0)...) // usage index
	data = append(data, intBytes(2)...) // vertex count
	data = append(data, make([]byte, 16)...)

	v, err := r.Read(newFakeEngine(data))
	require.NoError(t, err)
	vb := v.(VertexBuffer)
	assert.Equal(t, uint32(8), vb.Declaration.Stride)
	assert.Equal(t, uint32(2), vb.VertexCount)
	assert.Len(t, vb.Data, 16)
}

func TestBasicEffectReaderTextureIsPlainString(t *testing.T) {
	r := basicEffectReader{}
	var data []byte
	data = append(data, 4, 't', 'e', 'x', '1') // texture reference string
	for i := 0; i < 9; i++ { // diffuse+emissive+specular vector3
		data = append(data, floatBytes(1)...)
	}
	data = append(data, floatBytes(16)...) // specular power
	data = append(data, floatBytes(1)...)  // alpha
	data = append(data, 1)                 // vertex color enabled

	v, err := r.Read(newFakeEngine(data))
	require.NoError(t, err)
	be := v.(BasicEffect)
	assert.Equal(t, "tex1", be.TextureReference)
	assert.True(t, be.VertexColorEnabled)
}

func TestReadBoneReferenceNullAndIndex(t *testing.T) {
	eng := newFakeEngine([]byte{0, 3})
	ref, err := readBoneReference(eng, 10)
	require.NoError(t, err)
	assert.Nil(t, ref)

	ref, err = readBoneReference(eng, 10)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, 2, *ref)
}

func TestReadBoneReferenceWidensPast255Bones(t *testing.T) {
	eng := newFakeEngine(intBytes(300))
	ref, err := readBoneReference(eng, 300)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, 299, *ref)
}
