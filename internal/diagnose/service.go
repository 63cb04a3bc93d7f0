package diagnose

import (
	"context"

	"repair-assistant/internal/llm"
	"repair-assistant/internal/media"
)

// FrameSampler is the video leg of the pipeline. Implementations must not
// fail the request; an unusable video yields an empty set.
type FrameSampler interface {
	Sample(ctx context.Context, videoURL string) []media.Frame
}

// Service runs one request through the pipeline:
// validate -> sample -> assemble -> complete -> parse.
type Service struct {
	engines *llm.Engines
	sampler FrameSampler
}

func NewService(engines *llm.Engines, sampler FrameSampler) *Service {
	return &Service{engines: engines, sampler: sampler}
}

func (s *Service) Diagnose(ctx context.Context, in Input) (Diagnosis, error) {
	if err := Validate(in); err != nil {
		return Diagnosis{}, err
	}

	engine, err := s.engines.GetEngine(in.LLMName)
	if err != nil {
		return Diagnosis{}, newError(CodeValidation, Fatal, err)
	}

	var frames []media.Frame
	if in.VideoURL != "" && s.sampler != nil {
		frames = s.sampler.Sample(ctx, in.VideoURL)
	}

	raw, err := engine.Complete(ctx, Assemble(in, frames))
	if err != nil {
		// No degradation here: a diagnosis without an inference result is
		// not useful output.
		return Diagnosis{}, newError(CodeInference, Fatal, err)
	}

	return ParseDiagnosis(raw), nil
}
