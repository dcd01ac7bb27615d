package sound

import "math"

// DownmixMean reduces interleaved multi-channel samples to mono by taking
// the arithmetic mean of the channel values of each frame. Trailing
// samples that do not form a complete frame are dropped. channels <= 1
// returns the input unchanged.
func DownmixMean(interleaved []float32, channels int) []float32 {
	if channels <= 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	mono := make([]float32, 0, frames)
	for f := 0; f < frames; f++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += interleaved[f*channels+c]
		}
		mono = append(mono, sum/float32(channels))
	}
	return mono
}

// Resample converts samples from fromRate to toRate by linear
// interpolation. The output length is ceil(len(input) * toRate / fromRate);
// equal rates (or an empty input) return the input unchanged.
func Resample(input []float32, fromRate, toRate int) []float32 {
	if len(input) == 0 || fromRate == toRate {
		return input
	}

	ratio := float64(fromRate) / float64(toRate)
	outLen := int(math.Ceil(float64(len(input)) / ratio))
	output := make([]float32, 0, outLen)

	for i := 0; i < outLen; i++ {
		src := float64(i) * ratio
		idx := int(src)
		frac := float32(src - float64(idx))

		var sample float32
		if idx+1 < len(input) {
			sample = input[idx]*(1-frac) + input[idx+1]*frac
		} else {
			if idx > len(input)-1 {
				idx = len(input) - 1
			}
			sample = input[idx]
		}
		output = append(output, sample)
	}

	return output
}

// IntToFloat32 normalizes integer PCM of the given bit depth to [-1, 1).
// Used for PCM buffers decoded from WAV, where the decoder reports samples
// as ints at the container's bit depth.
func IntToFloat32(input []int, bitDepth int) []float32 {
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float32(int64(1) << (bitDepth - 1))
	output := make([]float32, len(input))
	for i, v := range input {
		output[i] = float32(v) / scale
	}
	return output
}
