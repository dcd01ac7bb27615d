package transcribe_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mudler/dikte/pkg/audio"
	"github.com/mudler/dikte/pkg/model"
	"github.com/mudler/dikte/pkg/transcribe"
)

type fakeEngine struct {
	loadErr     error
	stateErr    error
	fullErr     error
	segments    []transcribe.RawSegment
	segmentErrs map[int]error

	loadedPath string
	gotParams  transcribe.Params
}

func (f *fakeEngine) Load(modelPath string) error {
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loadedPath = modelPath
	return nil
}

func (f *fakeEngine) NewState() (transcribe.State, error) {
	if f.stateErr != nil {
		return nil, f.stateErr
	}
	return &fakeState{engine: f}, nil
}

func (f *fakeEngine) Close() error { return nil }

type fakeState struct {
	engine *fakeEngine
}

func (s *fakeState) Full(params transcribe.Params, samples []float32) (int, error) {
	s.engine.gotParams = params
	if s.engine.fullErr != nil {
		return 0, s.engine.fullErr
	}
	return len(s.engine.segments), nil
}

func (s *fakeState) Segment(i int) (transcribe.RawSegment, error) {
	if err, ok := s.engine.segmentErrs[i]; ok {
		return transcribe.RawSegment{}, err
	}
	return s.engine.segments[i], nil
}

func artifact() *model.Artifact {
	return &model.Artifact{Path: "/models/ggml-tiny.bin", Variant: model.Tiny, Provenance: model.ProvenanceCached}
}

func oneSecondBuffer() *audio.Buffer {
	return &audio.Buffer{Samples: make([]float32, audio.SampleRate)}
}

var _ = Describe("Transcribe", func() {
	It("passes the fixed decoding parameters to the engine", func() {
		engine := &fakeEngine{segments: []transcribe.RawSegment{{Start: 0, End: 100, Text: "merhaba"}}}

		_, err := transcribe.Transcribe(engine, oneSecondBuffer(), artifact(), 4)
		Expect(err).ToNot(HaveOccurred())

		Expect(engine.loadedPath).To(Equal("/models/ggml-tiny.bin"))
		Expect(engine.gotParams.Language).To(Equal("tr"))
		Expect(engine.gotParams.Translate).To(BeFalse())
		Expect(engine.gotParams.BeamSize).To(Equal(5))
		Expect(engine.gotParams.Patience).To(BeNumerically("<", 0))
		Expect(engine.gotParams.NoSpeechThreshold).To(BeNumerically("~", 0.6, 1e-6))
		Expect(engine.gotParams.Threads).To(Equal(uint32(4)))
	})

	It("defaults the thread count to the hardware parallelism", func() {
		engine := &fakeEngine{}
		_, err := transcribe.Transcribe(engine, oneSecondBuffer(), artifact(), 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(engine.gotParams.Threads).To(BeNumerically(">=", 1))
	})

	It("converts centiseconds to seconds", func() {
		engine := &fakeEngine{segments: []transcribe.RawSegment{
			{Start: 0, End: 230, Text: "merhaba dünya"},
			{Start: 230, End: 12500, Text: "nasılsınız"},
		}}

		res, err := transcribe.Transcribe(engine, oneSecondBuffer(), artifact(), 1)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Segments).To(HaveLen(2))
		Expect(res.Segments[0].End).To(BeNumerically("~", 2.3, 1e-9))
		Expect(res.Segments[1].Start).To(BeNumerically("~", 2.3, 1e-9))
		Expect(res.Segments[1].End).To(BeNumerically("~", 125.0, 1e-9))
	})

	It("drops invalid segments, counts them and keeps input order", func() {
		engine := &fakeEngine{segments: []transcribe.RawSegment{
			{Start: 0, End: 100, Text: "bir"},
			{Start: -5, End: 100, Text: "negative start"},
			{Start: 100, End: -1, Text: "negative end"},
			{Start: 300, End: 200, Text: "inverted"},
			{Start: 200, End: 300, Text: "   "},
			{Start: 300, End: 400, Text: "  iki  "},
		}}

		res, err := transcribe.Transcribe(engine, oneSecondBuffer(), artifact(), 1)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Skipped).To(Equal(4))
		Expect(res.Segments).To(HaveLen(2))
		Expect(res.Segments[0].Text).To(Equal("bir"))
		Expect(res.Segments[1].Text).To(Equal("iki"))
	})

	It("computes a real-time factor from the audio duration", func() {
		engine := &fakeEngine{segments: []transcribe.RawSegment{{Start: 0, End: 100, Text: "a"}}}
		res, err := transcribe.Transcribe(engine, oneSecondBuffer(), artifact(), 1)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.RealtimeFactor).To(BeNumerically(">=", 0))
	})

	It("reports a model-load failure as a model error", func() {
		engine := &fakeEngine{loadErr: fmt.Errorf("bad magic")}
		_, err := transcribe.Transcribe(engine, oneSecondBuffer(), artifact(), 1)

		var merr *model.Error
		Expect(errors.As(err, &merr)).To(BeTrue())
		Expect(merr.Kind).To(Equal(model.ErrLoadFailed))
	})

	It("reports a session failure as state creation", func() {
		engine := &fakeEngine{stateErr: fmt.Errorf("oom")}
		_, err := transcribe.Transcribe(engine, oneSecondBuffer(), artifact(), 1)

		var terr *transcribe.Error
		Expect(errors.As(err, &terr)).To(BeTrue())
		Expect(terr.Kind).To(Equal(transcribe.ErrStateCreation))
	})

	It("reports an inference failure", func() {
		engine := &fakeEngine{fullErr: fmt.Errorf("ggml assert")}
		_, err := transcribe.Transcribe(engine, oneSecondBuffer(), artifact(), 1)

		var terr *transcribe.Error
		Expect(errors.As(err, &terr)).To(BeTrue())
		Expect(terr.Kind).To(Equal(transcribe.ErrInferenceFailed))
	})

	It("reports a segment read failure with its index", func() {
		engine := &fakeEngine{
			segments:    []transcribe.RawSegment{{Start: 0, End: 100, Text: "a"}, {}},
			segmentErrs: map[int]error{1: fmt.Errorf("read")},
		}
		_, err := transcribe.Transcribe(engine, oneSecondBuffer(), artifact(), 1)

		var terr *transcribe.Error
		Expect(errors.As(err, &terr)).To(BeTrue())
		Expect(terr.Kind).To(Equal(transcribe.ErrSegmentRead))
		Expect(terr.Index).To(Equal(1))
	})
})
