package logger_i

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/akolanti/ClaimAPI/internal/config"
)

func TestLogger_SourceIsCaller(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, false)
	defer Init(false)

	logger := NewLogger("test")
	logger.Error("boom", "claimId", "c-1")
	logger.Info("fine")

	out := buf.String()
	if strings.Count(out, "logger_test.go") != 2 {
		t.Errorf("expected both lines to point at the caller, got:\n%s", out)
	}
	if strings.Contains(out, "logger.go:") {
		t.Errorf("source should not be the logger itself:\n%s", out)
	}
	if !strings.Contains(out, "component=test") || !strings.Contains(out, "claimId=c-1") {
		t.Errorf("missing attributes:\n%s", out)
	}
}

func TestLogger_FromContext(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, true)
	defer Init(false)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "trace-9")
	NewLogger("test").FromContext(ctx).Warn("slow")
	NewLogger("test").Debug("hidden in prod")

	out := buf.String()
	if !strings.Contains(out, `"traceId":"trace-9"`) {
		t.Errorf("trace id missing:\n%s", out)
	}
	if strings.Contains(out, "hidden in prod") {
		t.Errorf("debug should be filtered at the prod level:\n%s", out)
	}
}
