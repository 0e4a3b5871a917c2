package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoundEffectReaderFieldOrder(t *testing.T) {
	r := soundEffectReader{}
	var data []byte
	data = append(data, intBytes(2)...)
	data = append(data, 0x01, 0x02)
	data = append(data, intBytes(3)...)
	data = append(data, 0x0A, 0x0B, 0x0C)
	data = append(data, intBytes(0)...)
	data = append(data, intBytes(100)...)
	data = append(data, intBytes(500)...)

	v, err := r.Read(newFakeEngine(data))
	require.NoError(t, err)
	se := v.(SoundEffect)
	assert.Equal(t, []byte{0x01, 0x02}, se.Format)
	assert.Equal(t, []byte{0x0A, 0x0B, 0x0C}, se.Data)
	assert.Equal(t, int32(100), se.LoopLength)
	assert.Equal(t, int32(500), se.Duration)
}

func TestSongReaderValidatesDurationTag(t *testing.T) {
	r := songReader{}
	data := append([]byte{4, 's', 'o', 'n', 'g'})
	eng := newFakeEngine(data, int32(12345))
	v, err := r.Read(eng)
	require.NoError(t, err)
	song := v.(Song)
	assert.Equal(t, "song", song.FileName)
	assert.Equal(t, int32(12345), song.Duration)
}

func TestVideoReaderReadsAllTaggedFields(t *testing.T) {
	r := videoReader{}
	eng := newFakeEngine(nil, "clip.wmv", int32(10), int32(1920), int32(1080), float32(29.97), int32(1))
	v, err := r.Read(eng)
	require.NoError(t, err)
	video := v.(Video)
	assert.Equal(t, "clip.wmv", video.FileName)
	assert.Equal(t, int32(1920), video.Width)
	assert.Equal(t, float32(29.97), video.FramesPerSecond)
	assert.Equal(t, int32(1), video.SoundTrackType)
}
