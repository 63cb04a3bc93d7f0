package diagnose

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDiagnosisRoundTrip(t *testing.T) {
	reply := `{
		"problem_name": "Worn faucet washer",
		"likely_causes": ["degraded washer", "loose valve seat"],
		"diy_steps": ["shut off water", "replace the washer"],
		"caution_notes": ["do not overtighten"],
		"need_professional": false,
		"confidence": 0.85
	}`

	d := ParseDiagnosis(reply)
	assert.Equal(t, "Worn faucet washer", d.ProblemName)
	assert.Equal(t, []string{"degraded washer", "loose valve seat"}, d.LikelyCauses)
	assert.Equal(t, []string{"shut off water", "replace the washer"}, d.DIYSteps)
	assert.Equal(t, []string{"do not overtighten"}, d.CautionNotes)
	assert.False(t, d.NeedProfessional)
	assert.Equal(t, 0.85, d.Confidence)
	assert.Empty(t, d.RawText)

	// Re-emitting yields the same six keys with the same values.
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, reply, string(out))
}

func TestParseDiagnosisMalformedReply(t *testing.T) {
	d := ParseDiagnosis("not json")

	assert.Equal(t, "not json", d.RawText)
	assert.Empty(t, d.ProblemName)
	assert.Equal(t, []string{}, d.LikelyCauses)
	assert.Equal(t, []string{}, d.DIYSteps)
	assert.Equal(t, []string{}, d.CautionNotes)
	assert.False(t, d.NeedProfessional)
	assert.Zero(t, d.Confidence)
}

func TestParseDiagnosisFencedReply(t *testing.T) {
	d := ParseDiagnosis("```json\n{\"problem_name\":\"Clogged drain\",\"confidence\":0.6}\n```")
	assert.Equal(t, "Clogged drain", d.ProblemName)
	assert.Equal(t, 0.6, d.Confidence)
	assert.Empty(t, d.RawText)
}

func TestParseDiagnosisNonObjectJSON(t *testing.T) {
	for _, raw := range []string{"null", `"quoted"`, "[1,2,3]", "42", ""} {
		d := ParseDiagnosis(raw)
		assert.Equal(t, raw, d.RawText, "raw=%q", raw)
		assert.Empty(t, d.ProblemName)
	}
}

func TestParseDiagnosisMissingKeysStayAtZero(t *testing.T) {
	d := ParseDiagnosis(`{"problem_name":"Loose hinge"}`)
	assert.Equal(t, "Loose hinge", d.ProblemName)
	assert.Equal(t, []string{}, d.LikelyCauses)
	assert.Equal(t, []string{}, d.DIYSteps)
	assert.Equal(t, []string{}, d.CautionNotes)
	assert.Empty(t, d.RawText)
}
