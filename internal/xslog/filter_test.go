package xslog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestFilterHandler(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, nil)
	logger := slog.New(NewFilterHandler(inner, func(_ context.Context, record slog.Record) bool {
		return record.Message != "noise"
	}))

	logger.Info("noise")
	logger.Info("signal")

	out := buf.String()
	if strings.Contains(out, "noise") {
		t.Errorf("filtered record was emitted: %q", out)
	}
	if !strings.Contains(out, "signal") {
		t.Errorf("unfiltered record was dropped: %q", out)
	}
}

func TestFilterHandlerNilFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewFilterHandler(slog.NewTextHandler(&buf, nil), nil))

	logger.Info("anything")

	if !strings.Contains(buf.String(), "anything") {
		t.Errorf("nil filter dropped a record: %q", buf.String())
	}
}

func TestFilterHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, nil)
	logger := slog.New(NewFilterHandler(inner, func(_ context.Context, record slog.Record) bool {
		return record.Message != "noise"
	}))

	// The filter survives With.
	logger.With(slog.String("component", "watch")).Info("noise")

	if strings.Contains(buf.String(), "noise") {
		t.Errorf("filter lost through WithAttrs: %q", buf.String())
	}
}
