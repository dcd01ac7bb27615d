package schema

import "strings"

// TranscriptionSegment is one timed span of recognized speech.
// Start and End are in seconds from the beginning of the audio.
type TranscriptionSegment struct {
	Id    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptionResult is the ordered segment list of one run plus the
// metadata the transcript report carries.
type TranscriptionResult struct {
	Segments []TranscriptionSegment `json:"segments"`

	Source       string  `json:"source"`        // input file name
	Model        string  `json:"model"`         // model variant label
	DurationSecs float64 `json:"duration_secs"` // wall-clock inference time
}

// FullText returns all segment texts space-joined.
func (r *TranscriptionResult) FullText() string {
	texts := make([]string, 0, len(r.Segments))
	for _, s := range r.Segments {
		texts = append(texts, s.Text)
	}
	return strings.Join(texts, " ")
}
