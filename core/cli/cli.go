package cli

import (
	cliContext "github.com/mudler/dikte/core/cli/context"
)

var CLI struct {
	cliContext.Context `embed:""`

	Transcribe TranscribeCMD `cmd:"" help:"Transcribe an audio file to corrected Turkish text, this is the default command if no other command is specified" default:"withargs"`
	Models     ModelsCMD     `cmd:"" help:"Manage Whisper model artifacts"`
}
