package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	cliContext "github.com/mudler/dikte/core/cli/context"
	"github.com/mudler/dikte/core/schema"
	"github.com/mudler/dikte/pkg/audio"
	"github.com/mudler/dikte/pkg/model"
	"github.com/mudler/dikte/pkg/output"
	"github.com/mudler/dikte/pkg/postprocess"
	"github.com/mudler/dikte/pkg/transcribe"
)

type TranscribeCMD struct {
	Filename string `arg:"" type:"path" help:"Audio file to transcribe"`

	Model     string `short:"m" default:"medium" enum:"tiny,base,small,medium,large-v3" help:"Whisper model variant"`
	Output    string `short:"o" type:"path" optional:"" help:"Output transcript path (default: <input>_transcript.txt next to the input)"`
	Threads   int    `short:"t" env:"DIKTE_THREADS" default:"0" help:"Number of inference threads, 0 uses all physical cores"`
	EngineLib string `env:"DIKTE_ENGINE_LIB" default:"libgowhisper.so" help:"Path to the whisper.cpp shim library"`
}

func (t *TranscribeCMD) Run(ctx *cliContext.Context) error {
	pipelineStart := time.Now()
	variant := model.Variant(t.Model)

	artifact, err := model.NewProvisioner().Resolve(variant)
	if err != nil {
		return err
	}
	log.Info().Str("input", filepath.Base(t.Filename)).Msg("Input file")

	loadStart := time.Now()
	buffer, err := audio.Load(t.Filename)
	if err != nil {
		return err
	}
	log.Info().Float64("elapsed_secs", time.Since(loadStart).Seconds()).Msg("Audio loaded")

	engine, err := transcribe.NewGoWhisper(t.EngineLib)
	if err != nil {
		return &model.Error{Kind: model.ErrLoadFailed, Variant: variant, Path: t.EngineLib, Reason: err.Error(), Err: err}
	}
	defer engine.Close()

	res, err := transcribe.Transcribe(engine, buffer, artifact, t.Threads)
	if err != nil {
		return err
	}

	for i := range res.Segments {
		res.Segments[i].Text = postprocess.Process(res.Segments[i].Text)
	}

	result := &schema.TranscriptionResult{
		Segments:     res.Segments,
		Source:       filepath.Base(t.Filename),
		Model:        t.Model,
		DurationSecs: res.InferenceSecs,
	}

	outPath := t.Output
	if outPath == "" {
		outPath = defaultOutputPath(t.Filename)
	}
	if err := output.Write(outPath, result); err != nil {
		return err
	}
	log.Info().Str("path", outPath).Msg("Output written")

	fmt.Printf("Transcript written to %s\n", outPath)
	log.Info().Float64("total_secs", time.Since(pipelineStart).Seconds()).Msg("Pipeline complete")
	return nil
}

// defaultOutputPath puts <stem>_transcript.txt next to the input file.
func defaultOutputPath(input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return filepath.Join(filepath.Dir(input), stem+"_transcript.txt")
}
