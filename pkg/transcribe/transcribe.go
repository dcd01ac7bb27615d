// Package transcribe drives the inference engine over a loaded audio
// buffer and validates the segments it reports.
package transcribe

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mudler/dikte/core/schema"
	"github.com/mudler/dikte/pkg/audio"
	"github.com/mudler/dikte/pkg/model"
	"github.com/mudler/dikte/pkg/xsysinfo"
)

const (
	// Language is the fixed target language for this pipeline.
	Language = "tr"

	// BeamSize is the beam-search width.
	BeamSize = 5

	// NoSpeechThreshold suppresses hallucinated segments on silence.
	NoSpeechThreshold = 0.6
)

// Result carries the validated segments of one inference run plus its
// performance metrics.
type Result struct {
	Segments []schema.TranscriptionSegment
	Skipped  int

	InferenceSecs  float64
	RealtimeFactor float64
}

// Transcribe loads the model into the engine, runs a single inference
// pass over the whole buffer and reads back the validated segments in
// engine order. threads <= 0 selects the available hardware parallelism.
func Transcribe(engine Engine, buffer *audio.Buffer, artifact *model.Artifact, threads int) (*Result, error) {
	loadStart := time.Now()
	if err := engine.Load(artifact.Path); err != nil {
		return nil, &model.Error{Kind: model.ErrLoadFailed, Variant: artifact.Variant, Path: artifact.Path, Reason: err.Error(), Err: err}
	}
	log.Info().Float64("elapsed_secs", time.Since(loadStart).Seconds()).Msg("Whisper model loaded")

	state, err := engine.NewState()
	if err != nil {
		return nil, &Error{Kind: ErrStateCreation, Err: err}
	}

	if threads <= 0 {
		threads = xsysinfo.CPUPhysicalCores()
	}
	log.Debug().Int("threads", threads).Msg("Inference threads")

	params := Params{
		Language:          Language,
		Translate:         false,
		BeamSize:          BeamSize,
		Patience:          -1.0,
		NoSpeechThreshold: NoSpeechThreshold,
		Threads:           uint32(threads),
	}

	log.Info().Msg("Transcribing...")
	inferStart := time.Now()
	n, err := state.Full(params, buffer.Samples)
	if err != nil {
		return nil, &Error{Kind: ErrInferenceFailed, Err: err}
	}
	elapsed := time.Since(inferStart).Seconds()

	segments := make([]schema.TranscriptionSegment, 0, n)
	skipped := 0
	totalChars := 0

	for i := 0; i < n; i++ {
		raw, err := state.Segment(i)
		if err != nil {
			return nil, &Error{Kind: ErrSegmentRead, Index: i, Err: err}
		}

		if raw.Start < 0 || raw.End < 0 {
			log.Warn().Int("segment", i).Int64("start", raw.Start).Int64("end", raw.End).Msg("Negative timestamp - skipping segment")
			skipped++
			continue
		}
		if raw.End < raw.Start {
			log.Warn().Int("segment", i).Int64("start", raw.Start).Int64("end", raw.End).Msg("Inverted timestamps - skipping segment")
			skipped++
			continue
		}

		trimmed := strings.TrimSpace(raw.Text)
		if trimmed == "" {
			log.Debug().Int("segment", i).Msg("Empty text - skipping segment")
			skipped++
			continue
		}

		totalChars += len(trimmed)
		segments = append(segments, schema.TranscriptionSegment{
			Id:    i,
			Start: float64(raw.Start) / 100.0, // centiseconds to seconds
			End:   float64(raw.End) / 100.0,
			Text:  trimmed,
		})
	}

	audioSecs := buffer.Duration()
	rtf := 0.0
	if audioSecs > 0 {
		rtf = elapsed / audioSecs
	}

	log.Info().
		Float64("elapsed_secs", elapsed).
		Float64("audio_duration_secs", audioSecs).
		Float64("realtime_factor", rtf).
		Int("segments", len(segments)).
		Int("skipped", skipped).
		Int("total_chars", totalChars).
		Msg("Transcription complete")

	return &Result{
		Segments:       segments,
		Skipped:        skipped,
		InferenceSecs:  elapsed,
		RealtimeFactor: rtf,
	}, nil
}
