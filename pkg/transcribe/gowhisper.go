package transcribe

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

var (
	cppLoadModel       func(modelPath string) int
	cppTranscribe      func(threads uint32, lang string, translate bool, beamSize int32, patience float32, noSpeechThold float32, pcmf32 []float32, pcmf32Len uintptr, segsOutLen unsafe.Pointer) int
	cppGetSegmentText  func(i int) string
	cppGetSegmentStart func(i int) int64
	cppGetSegmentEnd   func(i int) int64
)

type libFunc struct {
	FuncPtr any
	Name    string
}

// GoWhisper drives whisper.cpp through the libgowhisper shim, bound at
// runtime with purego.
type GoWhisper struct {
	loaded bool
}

// NewGoWhisper opens the shim library and registers its symbols.
func NewGoWhisper(libPath string) (*GoWhisper, error) {
	lib, err := purego.Dlopen(libPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("cannot open whisper shim %q: %w", libPath, err)
	}

	libFuncs := []libFunc{
		{&cppLoadModel, "load_model"},
		{&cppTranscribe, "transcribe_full"},
		{&cppGetSegmentText, "get_segment_text"},
		{&cppGetSegmentStart, "get_segment_t0"},
		{&cppGetSegmentEnd, "get_segment_t1"},
	}

	for _, lf := range libFuncs {
		purego.RegisterLibFunc(lf.FuncPtr, lib, lf.Name)
	}

	return &GoWhisper{}, nil
}

func (g *GoWhisper) Load(modelPath string) error {
	if ret := cppLoadModel(modelPath); ret != 0 {
		return fmt.Errorf("load_model returned %d for %q", ret, modelPath)
	}
	g.loaded = true
	return nil
}

func (g *GoWhisper) NewState() (State, error) {
	if !g.loaded {
		return nil, fmt.Errorf("no model loaded")
	}
	return &goWhisperState{}, nil
}

func (g *GoWhisper) Close() error {
	g.loaded = false
	return nil
}

type goWhisperState struct{}

func (s *goWhisperState) Full(params Params, samples []float32) (int, error) {
	// We expect 0xdeadbeef to be overwritten and if we see it in a stack trace we know it wasn't
	segsLen := uintptr(0xdeadbeef)

	ret := cppTranscribe(
		params.Threads,
		params.Language,
		params.Translate,
		int32(params.BeamSize),
		params.Patience,
		params.NoSpeechThreshold,
		samples,
		uintptr(len(samples)),
		unsafe.Pointer(&segsLen),
	)
	if ret != 0 {
		return 0, fmt.Errorf("transcribe_full returned %d", ret)
	}

	return int(segsLen), nil
}

func (s *goWhisperState) Segment(i int) (RawSegment, error) {
	return RawSegment{
		Start: cppGetSegmentStart(i),
		End:   cppGetSegmentEnd(i),
		Text:  cppGetSegmentText(i),
	}, nil
}
