package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestWithComponentTagsEvents(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger
	Logger = zerolog.New(&buf)
	defer func() { Logger = prev }()

	WithComponent("projector").Error().Uint("product_id", 3).Msg("replay went negative")

	line := buf.String()
	if !strings.Contains(line, `"component":"projector"`) {
		t.Fatalf("missing component field: %s", line)
	}
	if !strings.Contains(line, `"level":"error"`) {
		t.Fatalf("missing level field: %s", line)
	}
	if !strings.Contains(line, "replay went negative") {
		t.Fatalf("missing message: %s", line)
	}
}

func TestWithContextWithoutSpanOmitsTraceFields(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger
	Logger = zerolog.New(&buf)
	defer func() { Logger = prev }()

	Info(context.Background()).Msg("plain")

	line := buf.String()
	if strings.Contains(line, "trace_id") {
		t.Fatalf("unexpected trace_id without an active span: %s", line)
	}
}
