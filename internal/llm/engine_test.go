package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct{ name string }

func (s *stubEngine) Name() string     { return s.name }
func (s *stubEngine) GetModel() string { return "m" }
func (s *stubEngine) Complete(ctx context.Context, req ChatRequest) (string, error) {
	return "{}", nil
}

func TestGetEngine(t *testing.T) {
	engs := &Engines{
		OpenAI:  &stubEngine{name: "gpt"},
		Gemini:  &stubEngine{name: "gemini"},
		Default: "gpt",
	}

	for _, name := range []string{"gpt", "openai", ""} {
		e, err := engs.GetEngine(name)
		require.NoError(t, err, "name=%q", name)
		assert.Equal(t, "gpt", e.Name())
	}

	e, err := engs.GetEngine("gemini")
	require.NoError(t, err)
	assert.Equal(t, "gemini", e.Name())

	_, err = engs.GetEngine("mystery")
	assert.Error(t, err)
}

func TestGetEngineUnconfigured(t *testing.T) {
	engs := &Engines{OpenAI: &stubEngine{name: "gpt"}, Default: "gpt"}
	_, err := engs.GetEngine("gemini")
	assert.Error(t, err)
}
