package transcribe

// Params are the deterministic decoding parameters handed to the engine.
type Params struct {
	// Language is the target language hint, e.g. "tr".
	Language string
	// Translate enables translation to English. Always off here.
	Translate bool
	// BeamSize is the beam-search width.
	BeamSize int
	// Patience is the beam-search early-stopping patience; negative
	// disables it.
	Patience float32
	// NoSpeechThreshold suppresses hallucinated segments on silence.
	NoSpeechThreshold float32
	// Threads is the engine-internal parallelism.
	Threads uint32
}

// RawSegment is an engine-reported segment. Start and End are in
// centiseconds, as whisper.cpp reports them.
type RawSegment struct {
	Start int64
	End   int64
	Text  string
}

// Engine abstracts the speech-to-text engine: given mono float PCM at
// 16 kHz and decoding parameters, produce an ordered list of timed
// segments. Implementations report no partial results on failure.
type Engine interface {
	// Load instantiates the engine against a model artifact path.
	Load(modelPath string) error
	// NewState creates a single inference session.
	NewState() (State, error)
	Close() error
}

// State is one inference session.
type State interface {
	// Full runs inference once over the entire buffer and returns the
	// number of segments produced.
	Full(params Params, samples []float32) (int, error)
	// Segment reads back the i-th segment in engine-reported order.
	Segment(i int) (RawSegment, error)
}
