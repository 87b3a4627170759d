package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type errorEnvelope struct {
	Message string            `json:"message"`
	Error   map[string]string `json:"error"`
}

// registrationClient calls the stateless verify and resend endpoints.
type registrationClient struct {
	baseURL string
	http    *http.Client
}

func newRegistrationClient(baseURL string, timeout time.Duration) *registrationClient {
	return &registrationClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *registrationClient) Verify(ctx context.Context, email, code string) error {
	return c.post(ctx, "/api/v1/registration/verify", map[string]string{"email": email, "code": code})
}

func (c *registrationClient) Resend(ctx context.Context, email string) error {
	return c.post(ctx, "/api/v1/registration/resend", map[string]string{"email": email})
}

func (c *registrationClient) post(ctx context.Context, path string, payload any) error {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusBadRequest {
		//nolint:errcheck // drain for connection reuse
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	var env errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || env.Message == "" {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if msg := env.Error["code"]; msg != "" {
		return errors.New(msg)
	}

	return errors.New(env.Message)
}
