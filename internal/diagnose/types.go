package diagnose

// Input is the canonical form of one diagnosis request, whatever shape it
// arrived in. It lives for exactly one request.
type Input struct {
	// Description and voice transcript, trimmed and joined with a blank line,
	// description first. May be empty.
	Text string

	// At most one of ImageURL / ImageB64 is set after normalization; an
	// inline image wins over a URL supplied in the same request.
	ImageURL  string
	ImageB64  string
	ImageMIME string

	VideoURL string

	// Optional engine selector from the request ("gpt", "gemini"); empty
	// means the configured default.
	LLMName string
}

func (in Input) HasImage() bool { return in.ImageB64 != "" || in.ImageURL != "" }

func (in Input) Empty() bool {
	return in.Text == "" && !in.HasImage() && in.VideoURL == ""
}

// Diagnosis is the structured result handed back to the caller. RawText is
// set only when the model reply could not be parsed; the remaining fields are
// then at their zero values.
type Diagnosis struct {
	ProblemName      string   `json:"problem_name"`
	LikelyCauses     []string `json:"likely_causes"`
	DIYSteps         []string `json:"diy_steps"`
	CautionNotes     []string `json:"caution_notes"`
	NeedProfessional bool     `json:"need_professional"`
	Confidence       float64  `json:"confidence"`
	RawText          string   `json:"raw_text,omitempty"`
}
