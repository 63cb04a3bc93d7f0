package diagnose

// Severity splits pipeline failures into the two propagation classes: a
// Recoverable error is consumed where it happens (logged, result degraded),
// a Fatal one surfaces to the caller of the request.
type Severity int

const (
	Recoverable Severity = iota
	Fatal
)

const (
	CodeInput      = "input"
	CodeValidation = "validation"
	CodeMediaFetch = "media_fetch"
	CodeTranscode  = "transcode"
	CodeInference  = "inference"
	CodeParse      = "parse"
)

type Error struct {
	Code     string
	Severity Severity
	Err      error
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func newError(code string, sev Severity, err error) *Error {
	return &Error{Code: code, Severity: sev, Err: err}
}
