package model

import "fmt"

type ErrorKind int

const (
	// ErrNoCacheDir means the per-user cache directory could not be
	// determined.
	ErrNoCacheDir ErrorKind = iota
	// ErrCacheDirCreation means the cache directory could not be
	// created. Never retried.
	ErrCacheDirCreation
	// ErrDownloadFailed means all download attempts were exhausted.
	ErrDownloadFailed
	// ErrHTTP is a non-2xx response from the model source.
	ErrHTTP
	// ErrTimeout means the transfer exceeded its deadline.
	ErrTimeout
	// ErrFileTooSmall means an artifact failed the size integrity check.
	ErrFileTooSmall
	// ErrLoadFailed means the inference engine rejected the artifact.
	ErrLoadFailed
	// ErrRenameFailed means the completed download could not be moved
	// into the cache.
	ErrRenameFailed
)

// Error is the model-stage failure, tagged with a kind and carrying the
// context needed to diagnose without re-running.
type Error struct {
	Kind     ErrorKind
	Variant  Variant
	Path     string
	URL      string
	Status   int
	Attempts int
	Reason   string
	Size     int64
	Expected int64
	Seconds  int
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrNoCacheDir:
		return "cannot determine home/cache directory"
	case ErrCacheDirCreation:
		return fmt.Sprintf("cannot create cache directory: %s", e.Path)
	case ErrDownloadFailed:
		return fmt.Sprintf("failed to download model after %d attempts: %s", e.Attempts, e.Reason)
	case ErrHTTP:
		return fmt.Sprintf("HTTP error %d downloading model from %s", e.Status, e.URL)
	case ErrTimeout:
		return fmt.Sprintf("download timed out after %ds", e.Seconds)
	case ErrFileTooSmall:
		return fmt.Sprintf("model file too small (%d bytes) - expected at least %d bytes for %s model", e.Size, e.Expected, e.Variant)
	case ErrLoadFailed:
		return fmt.Sprintf("failed to load Whisper model: %s", e.Reason)
	case ErrRenameFailed:
		return fmt.Sprintf("cannot rename temp file to final path: %s", e.Reason)
	}
	return "model error"
}

func (e *Error) Unwrap() error {
	return e.Err
}
