package diagnose

import (
	"errors"
	"fmt"
	"strings"
)

// Validate rejects inputs with nothing usable and media references a
// server-side fetch could never reach. It is purely syntactic: no DNS, no
// network. Reachability is left to the fetch itself.
func Validate(in Input) error {
	if in.Empty() {
		return newError(CodeInput, Fatal, errors.New("no usable input"))
	}
	if in.ImageURL != "" && !publicRef(in.ImageURL, true) {
		return newError(CodeValidation, Fatal, fmt.Errorf("image url is not publicly fetchable: %s", in.ImageURL))
	}
	if in.VideoURL != "" && !publicRef(in.VideoURL, false) {
		return newError(CodeValidation, Fatal, fmt.Errorf("video url is not publicly fetchable: %s", in.VideoURL))
	}
	return nil
}

// publicRef accepts http(s) URLs pointing at a non-loopback host, plus
// data:URIs when allowData is set. blob: references are client-local and
// always rejected. Matching is case-insensitive.
func publicRef(ref string, allowData bool) bool {
	s := strings.ToLower(strings.TrimSpace(ref))
	if allowData && strings.HasPrefix(s, "data:") {
		return true
	}

	var rest string
	switch {
	case strings.HasPrefix(s, "https://"):
		rest = s[len("https://"):]
	case strings.HasPrefix(s, "http://"):
		rest = s[len("http://"):]
	default:
		return false
	}

	// The authority ends at the first of /?#; anything before a trailing @
	// is userinfo, anything after : is a port.
	host := rest
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if i := strings.LastIndexByte(host, '@'); i >= 0 {
		host = host[i+1:]
	}
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	if host == "" || host == "localhost" || host == "127.0.0.1" {
		return false
	}
	return true
}
