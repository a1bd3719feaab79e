package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/buildviz/internal/adapters/logger"
)

func newTestHandler(t *testing.T) (*logger.PrettyHandler, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}), buf
}

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		want  string
	}{
		{name: "info", level: slog.LevelInfo, want: "message\n"},
		{name: "warn", level: slog.LevelWarn, want: "! message\n"},
		{name: "error", level: slog.LevelError, want: "✗ message\n"},
		{name: "debug filtered", level: slog.LevelDebug, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, buf := newTestHandler(t)
			slog.New(h).Log(t.Context(), tt.level, "message")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name  string
		build func(h slog.Handler) slog.Handler
		args  []any
		want  string
	}{
		{
			name:  "record attrs",
			build: func(h slog.Handler) slog.Handler { return h },
			args:  []any{"path", "trace.json", "count", 2},
			want:  "msg path=trace.json count=2\n",
		},
		{
			name: "handler attrs come first",
			build: func(h slog.Handler) slog.Handler {
				return h.WithAttrs([]slog.Attr{slog.String("cmd", "render")})
			},
			args: []any{"path", "a"},
			want: "msg cmd=render path=a\n",
		},
		{
			name:  "groups flatten to dotted keys",
			build: func(h slog.Handler) slog.Handler { return h.WithGroup("a").WithGroup("b") },
			args:  []any{slog.Group("c", slog.String("k", "v"))},
			want:  "msg a.b.c.k=v\n",
		},
		{
			name:  "empty group name is ignored",
			build: func(h slog.Handler) slog.Handler { return h.WithGroup("") },
			args:  []any{"key", "val"},
			want:  "msg key=val\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, buf := newTestHandler(t)
			slog.New(tt.build(h)).Info("msg", tt.args...)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_NilWriter(t *testing.T) {
	assert.NotNil(t, logger.NewPrettyHandler(nil, nil))
}
