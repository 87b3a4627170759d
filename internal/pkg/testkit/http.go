package testkit

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/talentflow/internal/pkg/config"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/jwt"
	"github.com/shandysiswandi/talentflow/internal/pkg/router"
)

type staticID string

func (s staticID) Generate() string { return string(s) }

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// HTTP drives handlers through the production router and middleware chain.
type HTTP struct {
	Router *router.Router
	JWT    *jwt.Symmetric
}

// NewHTTP builds a router with a throwaway signing key.
func NewHTTP(t *testing.T) *HTTP {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: talentflow\n"))
	require.NoError(t, err)

	signer, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte(strings.Repeat("t", 64)),
		Issuer:    "talentflow",
		Audiences: []string{"talentflow-web"},
		TTL:       time.Hour,
		Clock:     wallClock{},
		UUID:      staticID("test-token"),
	})
	require.NoError(t, err)

	return &HTTP{
		Router: router.NewRouter(router.Config{
			Config:     cfg,
			UUID:       staticID("test-cid"),
			JWT:        signer,
			Instrument: instrument.NewNoop(),
		}),
		JWT: signer,
	}
}

// Do sends a JSON request. A non-nil sub signs the request as that account.
func (h *HTTP) Do(t *testing.T, method, path, body string, sub *jwt.Subject) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if sub != nil {
		token, err := h.JWT.Generate(*sub)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return h.Send(req)
}

// Send serves req as is.
func (h *HTTP) Send(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Router.ServeHTTP(rec, req)
	return rec
}

// Decode unmarshals a JSON response body.
func Decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}
