package main

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/klauspost/cpuid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mudler/dikte/core/cli"
	"github.com/mudler/dikte/core/exitcode"
	"github.com/mudler/dikte/pkg/xsysinfo"
)

func main() {
	// handle loading environment variables from .env files
	envFiles := []string{".env", "dikte.env"}
	homeDir, err := os.UserHomeDir()
	if err == nil {
		envFiles = append(envFiles, filepath.Join(homeDir, ".config/dikte.env"))
	}
	envFiles = append(envFiles, "/etc/dikte.env")

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				log.Error().Err(err).Str("envFile", envFile).Msg("failed to load environment variables from file")
				continue
			}
		}
	}

	// Actually parse the CLI options
	ctx := kong.Parse(&cli.CLI,
		kong.Description(
			`  dikte turns an audio file into a corrected Turkish transcript.

It resolves a Whisper model (bundled, cached or downloaded), decodes and
normalizes the audio, runs the inference engine and repairs systematic
Turkish recognition errors before writing the transcript file.
`,
		),
		kong.UsageOnError(),
	)

	// Configure the logging level before we run the application
	// This is here to preserve the existing --debug flag functionality
	logLevel := "info"
	if cli.CLI.Debug && cli.CLI.LogLevel == nil {
		logLevel = "debug"
		cli.CLI.LogLevel = &logLevel
	}
	if cli.CLI.LogLevel == nil {
		cli.CLI.LogLevel = &logLevel
	}

	setupLogger(*cli.CLI.LogLevel, cli.CLI.LogFormat)

	logSystemInfo()

	// Run the thing!
	if err := ctx.Run(&cli.CLI.Context); err != nil {
		code := exitcode.FromError(err)
		log.Error().Err(err).Int("exit_code", code).Msg("Fatal error")
		os.Exit(code)
	}
}

func setupLogger(level string, format *string) {
	if format == nil || *format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	switch level {
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// logSystemInfo records host diagnostics at startup.
func logSystemInfo() {
	log.Debug().
		Str("os", runtime.GOOS).
		Str("arch", runtime.GOARCH).
		Int("physical_cores", xsysinfo.CPUPhysicalCores()).
		Msg("System info")

	// inference speed depends heavily on SIMD support
	log.Debug().
		Bool("avx", xsysinfo.HasCPUCaps(cpuid.AVX)).
		Bool("avx2", xsysinfo.HasCPUCaps(cpuid.AVX2)).
		Bool("avx512", xsysinfo.HasCPUCaps(cpuid.AVX512F)).
		Msg("CPU SIMD support")

	if caps, err := xsysinfo.CPUCapabilities(); err == nil {
		log.Trace().Strs("cpu_capabilities", caps).Msg("CPU capabilities")
	}
}
