package logging

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func withBuffer(t *testing.T, v Verbosity) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Level()
	SetOutput(&buf)
	Init(v)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		Init(prev)
	})
	return &buf
}

func TestVerbosityFilters(t *testing.T) {
	buf := withBuffer(t, MediumVerbosity)

	Debugf("hidden %d", 1)
	Infof("hidden %d", 2)
	Warnf("shown %d", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info written at medium verbosity: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "shown 3") {
		t.Errorf("warning missing: %q", out)
	}
}

func TestCallerName(t *testing.T) {
	buf := withBuffer(t, HighVerbosity)
	Debugf("x")
	if !strings.Contains(buf.String(), "logging.TestCallerName") {
		t.Errorf("caller not recorded: %q", buf.String())
	}
}

func TestReturnErrorfWraps(t *testing.T) {
	buf := withBuffer(t, LowVerbosity)
	base := errors.New("boom")
	err := ReturnErrorf("loading: %w", base)
	if !errors.Is(err, base) {
		t.Errorf("ReturnErrorf lost the wrapped error: %v", err)
	}
	if !strings.Contains(buf.String(), "loading: boom") {
		t.Errorf("error not logged: %q", buf.String())
	}
}

func TestParseVerbosity(t *testing.T) {
	if ParseVerbosity(true, true) != LowVerbosity {
		t.Error("quiet wins over verbose")
	}
	if ParseVerbosity(false, true) != HighVerbosity {
		t.Error("verbose")
	}
	if ParseVerbosity(false, false) != MediumVerbosity {
		t.Error("default")
	}
}
