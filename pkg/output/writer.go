// Package output serializes a transcription result into the
// human-readable transcript report.
package output

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mudler/dikte/core/schema"
)

// NoSpeechSentinel is the single line written when no segments survived.
const NoSpeechSentinel = "No speech detected in the audio."

type ErrorKind int

const (
	// ErrFileCreate means the output file could not be created.
	ErrFileCreate ErrorKind = iota
	// ErrWriteFailed means writing the report failed midway.
	ErrWriteFailed
)

// Error is the output-stage failure.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrFileCreate:
		return fmt.Sprintf("cannot create output file: %s", e.Path)
	case ErrWriteFailed:
		return fmt.Sprintf("failed to write output: %v", e.Err)
	}
	return "output error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Write renders the transcript report to path. Either the complete
// report is written or an error is returned.
func Write(path string, result *schema.TranscriptionResult) error {
	f, err := os.Create(path)
	if err != nil {
		return &Error{Kind: ErrFileCreate, Path: path, Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := render(w, result); err != nil {
		return &Error{Kind: ErrWriteFailed, Path: path, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &Error{Kind: ErrWriteFailed, Path: path, Err: err}
	}

	return nil
}

func render(w *bufio.Writer, result *schema.TranscriptionResult) error {
	if len(result.Segments) == 0 {
		_, err := fmt.Fprintf(w, "%s\n", NoSpeechSentinel)
		return err
	}

	// Header
	if _, err := fmt.Fprintf(w, "=== TRANSCRIPT (Turkish) ===\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Source: %s\n", result.Source); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Model: whisper-%s\n", result.Model); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Duration: %.1fs\n", result.DurationSecs); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", 40)); err != nil {
		return err
	}

	// Full text
	if _, err := fmt.Fprintf(w, "%s\n\n", result.FullText()); err != nil {
		return err
	}

	// Timestamped segments
	if _, err := fmt.Fprintf(w, "=== TIMESTAMPED ===\n\n"); err != nil {
		return err
	}
	for _, seg := range result.Segments {
		if _, err := fmt.Fprintf(w, "[%s -> %s]  %s\n", clock(seg.Start), clock(seg.End), seg.Text); err != nil {
			return err
		}
	}

	return nil
}

// clock renders whole seconds as zero-padded MM:SS.
func clock(seconds float64) string {
	s := uint64(seconds)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
