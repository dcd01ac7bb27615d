package transcribe

import "fmt"

type ErrorKind int

const (
	// ErrStateCreation means the inference session could not be created.
	ErrStateCreation ErrorKind = iota
	// ErrInferenceFailed means the engine failed over the buffer.
	ErrInferenceFailed
	// ErrSegmentRead means a segment could not be read back.
	ErrSegmentRead
)

// Error is the transcription-stage failure.
type Error struct {
	Kind  ErrorKind
	Index int
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrStateCreation:
		return "failed to create Whisper state"
	case ErrInferenceFailed:
		return "inference failed during transcription"
	case ErrSegmentRead:
		return fmt.Sprintf("failed to read transcription segment %d", e.Index)
	}
	return "transcription error"
}

func (e *Error) Unwrap() error {
	return e.Err
}
