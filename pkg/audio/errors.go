package audio

import "fmt"

type ErrorKind int

const (
	// ErrFileOpen means the input file could not be opened.
	ErrFileOpen ErrorKind = iota
	// ErrUnsupportedFormat means the container could not be probed.
	ErrUnsupportedFormat
	// ErrNoTrack means no usable audio stream was found.
	ErrNoTrack
	// ErrDecode means the decoder failed on an identified stream.
	ErrDecode
	// ErrEmptyAudio means the decoded buffer contains no samples.
	ErrEmptyAudio
	// ErrTooShort means the audio is below the minimum duration.
	ErrTooShort
	// ErrTooLong means the audio exceeds the maximum duration.
	ErrTooLong
)

// Error is the audio-stage failure, tagged with a kind and carrying
// enough context to diagnose without re-running.
type Error struct {
	Kind    ErrorKind
	Path    string
	Detail  string
	Seconds float64
	Hours   float64
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrFileOpen:
		return fmt.Sprintf("cannot open audio file: %s", e.Path)
	case ErrUnsupportedFormat:
		return "unsupported audio format"
	case ErrNoTrack:
		return "no audio track found in file"
	case ErrDecode:
		return fmt.Sprintf("audio decode error: %s", e.Detail)
	case ErrEmptyAudio:
		return "audio file contains no samples"
	case ErrTooShort:
		return fmt.Sprintf("audio too short (%.1fs) - minimum is %.1fs", e.Seconds, MinAudioSeconds)
	case ErrTooLong:
		return fmt.Sprintf("audio too long (%.1fh) - maximum is %.0f hours", e.Hours, MaxAudioHours)
	}
	return "audio error"
}

func (e *Error) Unwrap() error {
	return e.Err
}
