package diagnose

import (
	"context"
	"errors"
	"testing"

	"repair-assistant/internal/llm"
	"repair-assistant/internal/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	reply string
	err   error
	got   llm.ChatRequest
	calls int
}

func (f *fakeEngine) Name() string     { return "fake" }
func (f *fakeEngine) GetModel() string { return "fake-model" }

func (f *fakeEngine) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	f.calls++
	f.got = req
	return f.reply, f.err
}

type fakeSampler struct {
	frames []media.Frame
	gotURL string
}

func (f *fakeSampler) Sample(ctx context.Context, videoURL string) []media.Frame {
	f.gotURL = videoURL
	return f.frames
}

func newTestService(eng *fakeEngine, sampler FrameSampler) *Service {
	return NewService(&llm.Engines{OpenAI: eng, Default: "gpt"}, sampler)
}

func TestServiceDiagnoseHappyPath(t *testing.T) {
	eng := &fakeEngine{reply: `{"problem_name":"Dripping faucet","confidence":0.9}`}
	svc := newTestService(eng, &fakeSampler{})

	d, err := svc.Diagnose(context.Background(), Input{Text: "drip drip"})
	require.NoError(t, err)
	assert.Equal(t, "Dripping faucet", d.ProblemName)
	assert.Equal(t, 0.9, d.Confidence)
	assert.Equal(t, 1, eng.calls, "inference is dispatched exactly once")
}

func TestServiceDiagnoseSamplesVideo(t *testing.T) {
	eng := &fakeEngine{reply: `{"problem_name":"x"}`}
	sampler := &fakeSampler{frames: []media.Frame{{B64: "Zg==", MIME: "image/jpeg"}}}
	svc := newTestService(eng, sampler)

	_, err := svc.Diagnose(context.Background(), Input{
		Text:     "washer shakes",
		VideoURL: "https://cdn.example.com/x.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/x.mp4", sampler.gotURL)
	assert.Equal(t, "Zg==", eng.got.Blocks[len(eng.got.Blocks)-1].ImageB64)
}

func TestServiceDiagnoseValidationShortCircuits(t *testing.T) {
	eng := &fakeEngine{reply: `{}`}
	svc := newTestService(eng, &fakeSampler{})

	_, err := svc.Diagnose(context.Background(), Input{VideoURL: "blob:https://example/1"})
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, CodeValidation, perr.Code)
	assert.Zero(t, eng.calls, "no inference on invalid input")
}

func TestServiceDiagnoseInferenceErrorIsFatal(t *testing.T) {
	eng := &fakeEngine{err: errors.New("connection refused")}
	svc := newTestService(eng, &fakeSampler{})

	_, err := svc.Diagnose(context.Background(), Input{Text: "x"})
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, CodeInference, perr.Code)
	assert.Equal(t, Fatal, perr.Severity)
}

func TestServiceDiagnoseMalformedReplyIsNotAnError(t *testing.T) {
	eng := &fakeEngine{reply: "not json"}
	svc := newTestService(eng, &fakeSampler{})

	d, err := svc.Diagnose(context.Background(), Input{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, "not json", d.RawText)
	assert.Empty(t, d.ProblemName)
}

func TestServiceDiagnoseUnknownEngine(t *testing.T) {
	svc := newTestService(&fakeEngine{reply: `{}`}, &fakeSampler{})

	_, err := svc.Diagnose(context.Background(), Input{Text: "x", LLMName: "mystery"})
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, CodeValidation, perr.Code)
}
