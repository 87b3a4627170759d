package router

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/shandysiswandi/talentflow/internal/pkg/config"
)

const (
	maxLoggedBodyBytes = 32 * 1024

	masked        = "***"
	omittedBinary = "<binary body omitted>"
	omittedUpload = "<multipart body omitted>"
)

// alwaysMasked are never logged whatever instrument.log_mask_fields says.
var alwaysMasked = []string{"authorization", "password", "confirm_password", "code", "token", "access_token"}

// secretRoutes carry verification code fragments in free-form fields.
var secretRoutes = []string{"/otp/digits", "/otp/paste"}

// logMasker hides sensitive values in logged headers and bodies.
type logMasker struct {
	keys map[string]struct{}
}

func newLogMasker(cfg config.Config) logMasker {
	m := logMasker{keys: make(map[string]struct{}, len(alwaysMasked))}
	for _, k := range alwaysMasked {
		m.keys[k] = struct{}{}
	}

	if cfg == nil {
		return m
	}

	for _, field := range cfg.GetArray("instrument.log_mask_fields") {
		if field = strings.TrimSpace(strings.ToLower(field)); field != "" {
			m.keys[field] = struct{}{}
		}
	}

	return m
}

func (m logMasker) hides(key string) bool {
	_, ok := m.keys[strings.ToLower(key)]
	return ok
}

func (m logMasker) headers(h http.Header) http.Header {
	out := h.Clone()
	for k := range out {
		if m.hides(k) {
			out.Set(k, masked)
		}
	}
	return out
}

func (m logMasker) value(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if m.hides(k) {
				out[k] = masked
				continue
			}
			out[k] = m.value(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = m.value(inner)
		}
		return out
	default:
		return v
	}
}

// requestBody renders a captured request body for the log line.
func (m logMasker) requestBody(route, contentType string, body []byte) any {
	if len(body) == 0 {
		return nil
	}

	for _, suffix := range secretRoutes {
		if strings.HasSuffix(route, suffix) {
			return masked
		}
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err == nil {
		return m.value(decoded)
	}

	if strings.HasPrefix(strings.ToLower(contentType), "application/x-www-form-urlencoded") {
		if values, err := url.ParseQuery(string(body)); err == nil {
			out := make(map[string]any, len(values))
			for k, v := range values {
				switch {
				case m.hides(k):
					out[k] = masked
				case len(v) == 1:
					out[k] = v[0]
				default:
					out[k] = v
				}
			}
			return out
		}
	}

	return plainBody(body)
}

// responseBody renders a captured response body for the log line.
func (m logMasker) responseBody(body []byte, truncated bool) any {
	var out any

	var decoded any
	switch {
	case len(body) == 0:
	case json.Unmarshal(body, &decoded) == nil:
		out = m.value(decoded)
	default:
		out = plainBody(body)
	}

	if truncated {
		return map[string]any{"body": out, "truncated": true}
	}

	return out
}

func plainBody(body []byte) any {
	if !utf8.Valid(body) {
		return omittedBinary
	}
	if len(body) > maxLoggedBodyBytes {
		return string(body[:maxLoggedBodyBytes]) + "...(truncated)"
	}
	return string(body)
}

func isMultipart(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "multipart/")
}
