package sound_test

import (
	"math"

	. "github.com/mudler/dikte/pkg/sound"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DownmixMean", func() {
	It("averages the channels of a stereo frame", func() {
		mono := DownmixMean([]float32{1.0, 3.0}, 2)
		Expect(mono).To(Equal([]float32{2.0}))
	})

	It("averages each frame independently", func() {
		mono := DownmixMean([]float32{1, 3, -1, 1, 0, 0}, 2)
		Expect(mono).To(Equal([]float32{2, 0, 0}))
	})

	It("averages more than two channels", func() {
		mono := DownmixMean([]float32{1, 2, 3, 4, 5, 6}, 3)
		Expect(mono).To(Equal([]float32{2, 5}))
	})

	It("passes mono through unchanged", func() {
		in := []float32{0.5, -0.5}
		Expect(DownmixMean(in, 1)).To(Equal(in))
	})
})

var _ = Describe("Resample", func() {
	It("is the identity for equal rates", func() {
		in := []float32{0.1, 0.2, 0.3}
		Expect(Resample(in, 16000, 16000)).To(Equal(in))
	})

	It("produces ceil(len * to / from) output samples", func() {
		for _, tc := range []struct {
			inLen, from, to int
		}{
			{44100, 44100, 16000},
			{48000, 48000, 16000},
			{1000, 22050, 16000},
			{3, 44100, 16000},
			{16000, 8000, 16000},
		} {
			in := make([]float32, tc.inLen)
			out := Resample(in, tc.from, tc.to)
			want := int(math.Ceil(float64(tc.inLen) * float64(tc.to) / float64(tc.from)))
			Expect(out).To(HaveLen(want))
		}
	})

	It("interpolates linearly between neighboring samples", func() {
		// Doubling the rate puts every odd output sample halfway
		// between its input neighbors.
		out := Resample([]float32{0, 1, 2, 3}, 8000, 16000)
		Expect(out).To(HaveLen(8))
		Expect(out[0]).To(BeNumerically("~", 0.0, 1e-6))
		Expect(out[1]).To(BeNumerically("~", 0.5, 1e-6))
		Expect(out[2]).To(BeNumerically("~", 1.0, 1e-6))
		Expect(out[3]).To(BeNumerically("~", 1.5, 1e-6))
	})

	It("clamps at the end of the buffer", func() {
		out := Resample([]float32{0, 1}, 8000, 16000)
		Expect(out).To(HaveLen(4))
		Expect(out[3]).To(BeNumerically("~", 1.0, 1e-6))
	})

	It("returns an empty slice for empty input", func() {
		Expect(Resample(nil, 44100, 16000)).To(BeEmpty())
	})
})

var _ = Describe("Sample conversion", func() {
	It("normalizes 16-bit PCM by 32768", func() {
		out := IntToFloat32([]int{-32768, 0, 16384}, 16)
		Expect(out[0]).To(BeNumerically("~", -1.0, 1e-6))
		Expect(out[1]).To(BeNumerically("~", 0.0, 1e-6))
		Expect(out[2]).To(BeNumerically("~", 0.5, 1e-6))
	})

	It("normalizes int PCM by the bit depth", func() {
		out := IntToFloat32([]int{-128, 64}, 8)
		Expect(out[0]).To(BeNumerically("~", -1.0, 1e-6))
		Expect(out[1]).To(BeNumerically("~", 0.5, 1e-6))
	})
})
