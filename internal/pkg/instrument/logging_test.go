package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	base := slog.NewJSONHandler(buf, &slog.HandlerOptions{ReplaceAttr: replaceAttr})
	return slog.New(&contextHandler{
		Handler:     &maskHandler{handler: base, maskKeys: buildMaskKeys(append(defaultMaskFields, "phone"))},
		serviceName: "talentflow",
	})
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestLogging_MasksSensitiveFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newTestLogger(&buf)

	log.Info("request received",
		"email", "ana@example.com",
		"password", "Secret123!",
		"body", `{"code":"123456","phone":"+351900000000","nested":{"token":"abc"}}`,
		slog.Group("otp", slog.String("code", "654321")),
	)

	m := decodeLine(t, &buf)
	assert.Equal(t, "ana@example.com", m["email"])
	assert.Equal(t, "***", m["password"])
	assert.JSONEq(t, `{"code":"***","phone":"***","nested":{"token":"***"}}`, m["body"].(string))
	assert.Equal(t, map[string]any{"code": "***"}, m["otp"])
	assert.Equal(t, "INFO", m["severity"])
	assert.Contains(t, m, "ts")
}

func TestLogging_CorrelationIDAndService(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newTestLogger(&buf)

	ctx := SetCorrelationID(context.Background(), "cid-1")
	log.InfoContext(ctx, "hello")

	m := decodeLine(t, &buf)
	assert.Equal(t, "cid-1", m["_cID"])
	assert.Equal(t, "talentflow", m["service"])
	assert.Equal(t, "cid-1", GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel(" WARN "))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
}

func TestNew_DisabledIsNoop(t *testing.T) {
	ins, err := New(context.Background(), &Config{ServiceName: "talentflow"})
	require.NoError(t, err)

	_, span := ins.Tracer("test").Start(context.Background(), "op")
	span.End()
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, ins.Shutdown(context.Background()))
}
