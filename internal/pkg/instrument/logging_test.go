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

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestNewLogger_Masking(t *testing.T) {
	tests := []struct {
		name  string
		attrs []any
		check func(t *testing.T, line map[string]any)
	}{
		{
			name:  "default keys",
			attrs: []any{"senha", "segredo123", "cpf", "31286578078", "nome", "Ana"},
			check: func(t *testing.T, line map[string]any) {
				assert.Equal(t, "***", line["senha"])
				assert.Equal(t, "***", line["cpf"])
				assert.Equal(t, "Ana", line["nome"])
			},
		},
		{
			name:  "configured key case insensitive",
			attrs: []any{"Token", "abc"},
			check: func(t *testing.T, line map[string]any) {
				assert.Equal(t, "***", line["Token"])
			},
		},
		{
			name:  "json string body",
			attrs: []any{"body", `{"email":"a@b.com","senha":"x"}`},
			check: func(t *testing.T, line map[string]any) {
				assert.JSONEq(t, `{"email":"a@b.com","senha":"***"}`, line["body"].(string))
			},
		},
		{
			name:  "nested map",
			attrs: []any{"payload", map[string]any{"user": map[string]any{"cpf": "1"}}},
			check: func(t *testing.T, line map[string]any) {
				payload := line["payload"].(map[string]any)
				assert.Equal(t, "***", payload["user"].(map[string]any)["cpf"])
			},
		},
		{
			name:  "group",
			attrs: []any{slog.Group("req", slog.String("password", "p"), slog.String("path", "/"))},
			check: func(t *testing.T, line map[string]any) {
				req := line["req"].(map[string]any)
				assert.Equal(t, "***", req["password"])
				assert.Equal(t, "/", req["path"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "svc", "info", nil, []string{"token"})
			logger.Info("msg", tt.attrs...)

			line := decodeLine(t, &buf)
			assert.Equal(t, "svc", line["service"])
			tt.check(t, line)
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "", "warn", nil, nil)

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	line := decodeLine(t, &buf)
	assert.Equal(t, "WARN", line["severity"])
	assert.NotContains(t, line, "service")
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))

	ctx := SetCorrelationID(context.Background(), "cid-1")
	assert.Equal(t, "cid-1", GetCorrelationID(ctx))

	var buf bytes.Buffer
	NewLogger(&buf, "svc", "", nil, nil).InfoContext(ctx, "hello")
	assert.Equal(t, "cid-1", decodeLine(t, &buf)["_cID"])
}

func TestNew_DisabledNilConfig(t *testing.T) {
	inst, err := New(context.Background(), nil)
	require.NoError(t, err)

	assert.NotNil(t, inst.Tracer("x"))
	assert.NotNil(t, inst.Meter("x"))
	assert.NoError(t, inst.Shutdown(context.Background()))
}
