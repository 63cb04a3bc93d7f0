package diagnose

import (
	"encoding/json"
	"strings"

	"repair-assistant/internal/util"
)

// ParseDiagnosis turns the raw model reply into a Diagnosis. The model is
// trusted to follow the requested schema approximately; anything that is not
// a JSON object becomes the deterministic fallback with the reply preserved
// in raw_text. This function never fails.
func ParseDiagnosis(raw string) Diagnosis {
	txt := util.StripCodeFences(strings.TrimSpace(raw))

	var d Diagnosis
	if !strings.HasPrefix(txt, "{") || json.Unmarshal([]byte(txt), &d) != nil {
		return fallbackDiagnosis(raw)
	}

	if d.LikelyCauses == nil {
		d.LikelyCauses = []string{}
	}
	if d.DIYSteps == nil {
		d.DIYSteps = []string{}
	}
	if d.CautionNotes == nil {
		d.CautionNotes = []string{}
	}
	return d
}

func fallbackDiagnosis(raw string) Diagnosis {
	return Diagnosis{
		LikelyCauses: []string{},
		DIYSteps:     []string{},
		CautionNotes: []string{},
		RawText:      raw,
	}
}
