package diagnose

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"repair-assistant/internal/util"
)

const maxBodyBytes = 64 << 20 // multipart bodies carry raw media

// Historical clients used different key names for the same concept. Each
// canonical field has an ordered alias list; when more than one alias is
// present the last one in the list wins. Collisions are resolved, not merged.
var (
	textAliases       = []string{"description", "text"}
	transcriptAliases = []string{"transcript", "voice_transcript"}
	imageURLAliases   = []string{"imageUrl", "image_url"}
	videoURLAliases   = []string{"videoUrl", "video_url"}
)

// FromRequest extracts an Input from a request of unknown shape. JSON bodies
// are tried first, multipart second; a body that decodes as neither yields an
// all-empty Input. Emptiness is a Validate concern, not an error here.
func FromRequest(r *http.Request) (Input, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		return fromMultipart(r)
	}
	return fromJSON(r)
}

func fromJSON(r *http.Request) (Input, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return Input{}, newError(CodeInput, Fatal, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return Input{}, nil
	}

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			fields[k] = s
		}
	}

	in := fromFields(fields)
	if b64 := strings.TrimSpace(fields["imageBase64"]); b64 != "" {
		setInlineImage(&in, b64)
	}
	return in, nil
}

func fromMultipart(r *http.Request) (Input, error) {
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
		return Input{}, nil
	}

	fields := make(map[string]string)
	if r.MultipartForm != nil {
		for k, vs := range r.MultipartForm.Value {
			if len(vs) > 0 {
				fields[k] = vs[0]
			}
		}
	}
	in := fromFields(fields)

	// An uploaded image file takes precedence over any image URL in the same
	// request; the URL is ignored, not merged.
	if f, _, err := r.FormFile("image"); err == nil {
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return Input{}, newError(CodeInput, Fatal, err)
		}
		if len(data) > 0 {
			in.ImageB64 = base64.StdEncoding.EncodeToString(data)
			in.ImageMIME = util.SniffMimeHTTP(data)
			in.ImageURL = ""
		}
	}
	return in, nil
}

func fromFields(fields map[string]string) Input {
	description := lastPresent(fields, textAliases)
	transcript := lastPresent(fields, transcriptAliases)

	parts := make([]string, 0, 2)
	for _, s := range []string{description, transcript} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}

	return Input{
		Text:     strings.Join(parts, "\n\n"),
		ImageURL: lastPresent(fields, imageURLAliases),
		VideoURL: lastPresent(fields, videoURLAliases),
		LLMName:  strings.TrimSpace(fields["llm_name"]),
	}
}

// lastPresent walks the alias list in order and keeps the value of the last
// alias carrying a non-blank value.
func lastPresent(fields map[string]string, aliases []string) string {
	var out string
	for _, k := range aliases {
		if v := strings.TrimSpace(fields[k]); v != "" {
			out = v
		}
	}
	return out
}

// setInlineImage stores an inline base64 payload (bare or data:URI) on the
// input. Inline content wins over an image URL from the same request.
func setInlineImage(in *Input, b64 string) {
	data, hint, err := util.DecodeBase64MaybeDataURL(b64)
	if err != nil || len(data) == 0 {
		log.Printf("normalize: bad inline image base64, field ignored: %v", err)
		return
	}
	in.ImageB64 = base64.StdEncoding.EncodeToString(data)
	in.ImageMIME = util.PickMIME("", hint, data)
	in.ImageURL = ""
}
