package audio

import (
	"fmt"
	"os/exec"
)

func ffmpegCommand(args []string) (string, error) {
	cmd := exec.Command("ffmpeg", args...) // Constrain this to ffmpeg to permit security scanner to see that the command is safe.
	cmd.Env = []string{}
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// convertToWav demuxes and decodes src into a PCM WAV at dst via ffmpeg.
// The source sample rate and channel layout are preserved; downmix and
// resampling happen on the decoded buffer, not inside ffmpeg.
func convertToWav(src, dst string) error {
	commandArgs := []string{"-i", src, "-vn", "-acodec", "pcm_s16le", dst}
	out, err := ffmpegCommand(commandArgs)
	if err != nil {
		return fmt.Errorf("ffmpeg: %w out: %s", err, out)
	}
	return nil
}
