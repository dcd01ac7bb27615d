// Package audio loads an arbitrary audio file into the mono 16 kHz
// float buffer the inference engine consumes. WAV input is decoded
// natively; any other container is demuxed through ffmpeg first.
package audio

import (
	"os"
	"path/filepath"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/rs/zerolog/log"

	"github.com/mudler/dikte/pkg/sound"
)

const (
	// SampleRate is the fixed target rate expected by the engine.
	SampleRate = 16000

	MinAudioSeconds = 0.5
	MaxAudioHours   = 4.0
)

// Buffer is a mono float32 sample sequence at SampleRate.
type Buffer struct {
	Samples []float32
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	return float64(len(b.Samples)) / float64(SampleRate)
}

// Load opens, decodes, downmixes, resamples and validates the audio file
// at path.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: ErrFileOpen, Path: path, Err: err}
	}

	if meta, err := f.Stat(); err == nil {
		log.Debug().Int64("size_bytes", meta.Size()).Str("path", path).Msg("Audio file metadata")
	}

	containerExt := Identify(f)
	f.Close()

	samples, rate, channels, err := decodeFile(path, containerExt)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("sample_rate", rate).Int("channels", channels).Str("container", containerExt).Msg("Detected audio format")

	mono := sound.DownmixMean(samples, channels)
	if rate != SampleRate {
		log.Debug().Int("from", rate).Int("to", SampleRate).Msg("Resampling")
		mono = sound.Resample(mono, rate, SampleRate)
	}

	if err := Validate(len(mono)); err != nil {
		return nil, err
	}

	seconds := float64(len(mono)) / float64(SampleRate)
	if seconds < 1.0 {
		log.Warn().Float64("duration_secs", seconds).Msg("Audio is very short - results may be poor")
	}

	log.Debug().Float64("duration_secs", seconds).Int("samples", len(mono)).Msg("Audio loaded")

	return &Buffer{Samples: mono}, nil
}

// Validate checks the duration bounds of a mono buffer of sampleCount
// samples at SampleRate. Boundaries are inclusive.
func Validate(sampleCount int) error {
	if sampleCount == 0 {
		return &Error{Kind: ErrEmptyAudio}
	}

	seconds := float64(sampleCount) / float64(SampleRate)
	if seconds < MinAudioSeconds {
		return &Error{Kind: ErrTooShort, Seconds: seconds}
	}

	hours := seconds / 3600.0
	if hours > MaxAudioHours {
		return &Error{Kind: ErrTooLong, Hours: hours}
	}

	return nil
}

// decodeFile returns interleaved samples, the source sample rate and the
// channel count. Non-WAV containers go through ffmpeg into a temporary
// WAV first.
func decodeFile(path, containerExt string) ([]float32, int, int, error) {
	if isWavFile(path) {
		return decodeWav(path)
	}

	dir, err := os.MkdirTemp("", "dikte")
	if err != nil {
		return nil, 0, 0, &Error{Kind: ErrDecode, Detail: err.Error(), Err: err}
	}
	defer os.RemoveAll(dir)

	converted := filepath.Join(dir, "converted.wav")
	if err := convertToWav(path, converted); err != nil {
		if containerExt == "" {
			// Neither the probe nor ffmpeg recognized the input.
			return nil, 0, 0, &Error{Kind: ErrUnsupportedFormat, Path: path, Err: err}
		}
		return nil, 0, 0, &Error{Kind: ErrDecode, Detail: err.Error(), Err: err}
	}

	return decodeWav(converted)
}

func isWavFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	return wav.NewDecoder(f).IsValidFile()
}

func decodeWav(path string) ([]float32, int, int, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, &Error{Kind: ErrFileOpen, Path: path, Err: err}
	}
	defer fh.Close()

	d := wav.NewDecoder(fh)
	if !d.IsValidFile() {
		return nil, 0, 0, &Error{Kind: ErrUnsupportedFormat, Path: path}
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, &Error{Kind: ErrDecode, Detail: err.Error(), Err: err}
	}

	format := buf.Format
	if format == nil {
		format = &gaudio.Format{NumChannels: int(d.NumChans), SampleRate: int(d.SampleRate)}
	}

	channels := format.NumChannels
	if channels == 0 {
		return nil, 0, 0, &Error{Kind: ErrNoTrack, Path: path}
	}

	rate := format.SampleRate
	if rate == 0 {
		rate = 44100
	}

	samples := sound.IntToFloat32(buf.Data, int(d.BitDepth))
	return samples, rate, channels, nil
}
