package builtin

import "github.com/relicdump/xnb/typereader"

// SoundEffect holds a raw wave-format header and the PCM payload it
// describes, plus the loop region and playback duration XNA attaches to
// every sound asset.
type SoundEffect struct {
	Format               []byte
	Data                 []byte
	LoopStart, LoopLength int32
	Duration             int32
}

type soundEffectReader struct{}

func (soundEffectReader) TargetType() string { return xnaNamespace + "Audio.SoundEffect" }
func (soundEffectReader) ReaderName() string { return namespace + "SoundEffectReader" }
func (soundEffectReader) IsValueType() bool  { return false }
func (soundEffectReader) Initialize(*typereader.Registry) error { return nil }
func (soundEffectReader) Read(eng typereader.Engine) (any, error) {
	formatSize, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	format, err := eng.Stream().ReadBytes(int(formatSize))
	if err != nil {
		return nil, err
	}
	dataSize, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	data, err := eng.Stream().ReadBytes(int(dataSize))
	if err != nil {
		return nil, err
	}
	loopStart, err := eng.Stream().ReadI32()
	if err != nil {
		return nil, err
	}
	loopLength, err := eng.Stream().ReadI32()
	if err != nil {
		return nil, err
	}
	duration, err := eng.Stream().ReadI32()
	if err != nil {
		return nil, err
	}
	eng.Sink().Bytes("Format", format)
	eng.Sink().Bytes("Data", data)
	eng.Sink().Field("LoopStart", loopStart)
	eng.Sink().Field("LoopLength", loopLength)
	eng.Sink().Field("Duration", duration)
	return SoundEffect{
		Format:     format,
		Data:       data,
		LoopStart:  loopStart,
		LoopLength: loopLength,
		Duration:   duration,
	}, nil
}

// Song names a streaming audio file alongside its duration. The
// duration arrives pre-tagged: ValidateTypeID requires its type id to
// select the System.Int32 reader instead of accepting any object.
type Song struct {
	FileName string
	Duration int32
}

type songReader struct{}

func (songReader) TargetType() string                    { return xnaNamespace + "Media.Song" }
func (songReader) ReaderName() string                    { return namespace + "SongReader" }
func (songReader) IsValueType() bool                     { return false }
func (songReader) Initialize(*typereader.Registry) error { return nil }
func (songReader) Read(eng typereader.Engine) (any, error) {
	fileName, err := eng.Stream().ReadString()
	if err != nil {
		return nil, err
	}
	eng.Sink().Field("FileName", fileName)
	duration, err := eng.ValidateTypeID("System.Int32")
	if err != nil {
		return nil, err
	}
	d, _ := duration.(int32)
	return Song{FileName: fileName, Duration: d}, nil
}

// Video carries six pre-tagged fields, each read through ValidateTypeID
// in this order: a streaming filename, duration, frame width and
// height, frame rate and a sound track type.
type Video struct {
	FileName             string
	Duration             int32
	Width, Height        int32
	FramesPerSecond      float32
	SoundTrackType       int32
}

type videoReader struct{}

func (videoReader) TargetType() string                    { return xnaNamespace + "Media.Video" }
func (videoReader) ReaderName() string                    { return namespace + "VideoReader" }
func (videoReader) IsValueType() bool                     { return false }
func (videoReader) Initialize(*typereader.Registry) error { return nil }
func (videoReader) Read(eng typereader.Engine) (any, error) {
	fileNameAny, err := eng.ValidateTypeID("System.String")
	if err != nil {
		return nil, err
	}
	fileName, _ := fileNameAny.(string)

	durationAny, err := eng.ValidateTypeID("System.Int32")
	if err != nil {
		return nil, err
	}
	duration, _ := durationAny.(int32)

	widthAny, err := eng.ValidateTypeID("System.Int32")
	if err != nil {
		return nil, err
	}
	width, _ := widthAny.(int32)

	heightAny, err := eng.ValidateTypeID("System.Int32")
	if err != nil {
		return nil, err
	}
	height, _ := heightAny.(int32)

	fpsAny, err := eng.ValidateTypeID("System.Single")
	if err != nil {
		return nil, err
	}
	fps, _ := fpsAny.(float32)

	soundTrackAny, err := eng.ValidateTypeID("System.Int32")
	if err != nil {
		return nil, err
	}
	soundTrack, _ := soundTrackAny.(int32)

	return Video{
		FileName:        fileName,
		Duration:        duration,
		Width:           width,
		Height:          height,
		FramesPerSecond: fps,
		SoundTrackType:  soundTrack,
	}, nil
}

func registerMedia(reg *typereader.Registry) {
	reg.RegisterConcrete(soundEffectReader{})
	reg.RegisterConcrete(songReader{})
	reg.RegisterConcrete(videoReader{})
}
