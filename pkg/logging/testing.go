package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger records JSON log lines so tests can assert on them.
type TestLogger struct {
	*zerolog.Logger
	buf *bytes.Buffer
}

// NewTestLogger returns a trace-level recording logger. The global level is
// lowered for the duration of the test.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	buf := &bytes.Buffer{}
	l := zerolog.New(buf).Level(zerolog.TraceLevel)
	return &TestLogger{Logger: &l, buf: buf}
}

// CaptureLoggingForTest installs a recording logger as the default until
// the test ends.
func CaptureLoggingForTest(t testing.TB) *TestLogger {
	t.Helper()
	prev := defaultLogger
	tl := NewTestLogger(t)
	SetDefault(*tl.Logger)
	t.Cleanup(func() { SetDefault(prev) })
	return tl
}

// Lines returns one entry per recorded event.
func (tl *TestLogger) Lines() []string {
	s := strings.TrimSpace(tl.buf.String())
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// AssertContains fails the test unless some event contains substr.
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !strings.Contains(tl.buf.String(), substr) {
		t.Errorf("log does not contain %q:\n%s", substr, tl.buf.String())
	}
}

// AssertNotContains fails the test if any event contains substr.
func (tl *TestLogger) AssertNotContains(t testing.TB, substr string) {
	t.Helper()
	if strings.Contains(tl.buf.String(), substr) {
		t.Errorf("log unexpectedly contains %q:\n%s", substr, tl.buf.String())
	}
}
