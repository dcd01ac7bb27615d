// Package exitcode maps the per-stage failure taxonomy to the stable
// numeric outcome codes of the process.
package exitcode

import (
	"errors"

	"github.com/mudler/dikte/pkg/audio"
	"github.com/mudler/dikte/pkg/model"
	"github.com/mudler/dikte/pkg/output"
	"github.com/mudler/dikte/pkg/transcribe"
)

const (
	Success = 0

	// Audio errors (10-12)
	AudioInput      = 10
	AudioDecode     = 11
	AudioValidation = 12

	// Model errors (20-23)
	ModelNotFound  = 20
	ModelDownload  = 21
	ModelIntegrity = 22
	ModelLoad      = 23

	// Transcription errors (30)
	Transcription = 30

	// Output errors (40)
	OutputWrite = 40

	// Unknown (99)
	Unknown = 99
)

// FromError walks the error chain and returns the outcome code of the
// first recognized stage failure, Unknown when none is found.
func FromError(err error) int {
	if err == nil {
		return Success
	}

	var audioErr *audio.Error
	if errors.As(err, &audioErr) {
		switch audioErr.Kind {
		case audio.ErrFileOpen, audio.ErrUnsupportedFormat:
			return AudioInput
		case audio.ErrNoTrack, audio.ErrDecode:
			return AudioDecode
		case audio.ErrEmptyAudio, audio.ErrTooShort, audio.ErrTooLong:
			return AudioValidation
		}
	}

	var modelErr *model.Error
	if errors.As(err, &modelErr) {
		switch modelErr.Kind {
		case model.ErrNoCacheDir, model.ErrCacheDirCreation:
			return ModelNotFound
		case model.ErrDownloadFailed, model.ErrHTTP, model.ErrTimeout:
			return ModelDownload
		case model.ErrFileTooSmall:
			return ModelIntegrity
		case model.ErrLoadFailed, model.ErrRenameFailed:
			return ModelLoad
		}
	}

	var transcribeErr *transcribe.Error
	if errors.As(err, &transcribeErr) {
		return Transcription
	}

	var outputErr *output.Error
	if errors.As(err, &outputErr) {
		return OutputWrite
	}

	return Unknown
}
