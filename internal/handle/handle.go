package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"repair-assistant/internal/diagnose"
)

type Handle struct {
	svc *diagnose.Service
}

func New(svc *diagnose.Service) *Handle {
	return &Handle{svc: svc}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps pipeline errors onto HTTP statuses: bad input and rejected
// references are the caller's fault, everything else is ours.
func statusFor(err error) int {
	var perr *diagnose.Error
	if errors.As(err, &perr) {
		switch perr.Code {
		case diagnose.CodeInput, diagnose.CodeValidation:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
