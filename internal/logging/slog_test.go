package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, nil)
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Info(ctx, "inf", "a", 1)
	log.Warn(ctx, "wrn", "b", 2)
	log.Error(ctx, "err", "c", 3)

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		kv    string
	}{
		{"INFO", "inf", "a=1"},
		{"WARN", "wrn", "b=2"},
		{"ERROR", "err", "c=3"},
	}

	for _, tc := range tests {
		if !strings.Contains(out, "level="+tc.level) {
			t.Fatalf("expected line with level=%s in output:\n%s", tc.level, out)
		}
		if !strings.Contains(out, "msg="+tc.msg) {
			t.Fatalf("expected line with msg=%s in output:\n%s", tc.msg, out)
		}
		if !strings.Contains(out, tc.kv) {
			t.Fatalf("expected attribute %s in output:\n%s", tc.kv, out)
		}
	}
}

func TestSlogLogger_WithAddsAttrs(t *testing.T) {
	log, buf := newTestLogger(t)

	child := log.With("module", "graphql")
	child.Info(context.Background(), "hello")

	if !strings.Contains(buf.String(), "module=graphql") {
		t.Fatalf("expected module attribute in output:\n%s", buf.String())
	}
}
