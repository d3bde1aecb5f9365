package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsketch/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("wrote 2 artifacts")

	if !strings.Contains(buf.String(), "wrote 2 artifacts") {
		t.Errorf("progress.done() output = %q, want it to contain the message", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got == nil {
		t.Error("loggerFromContext should fall back to the default logger")
	}
}

func TestSetLogLevelRegistersHooks(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	if _, ok := observability.Surface().(observability.NoopSurfaceHooks); !ok {
		t.Error("info level should keep the no-op hooks")
	}

	c.SetLogLevel(LogDebug)
	if _, ok := observability.Surface().(*logHooks); !ok {
		t.Fatalf("debug level hooks = %T, want *logHooks", observability.Surface())
	}

	c.SetLogLevel(LogInfo)
	if _, ok := observability.Surface().(observability.NoopSurfaceHooks); !ok {
		t.Error("returning to info level should restore the no-op hooks")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := newLogHooks(newLogger(&buf, log.DebugLevel))

	h.OnStrokeCommitted("pointer", "abc", 4)
	h.OnClear(2, 9, true)
	h.OnIntroComplete("burst", 12, 5*time.Second)
	h.OnFault("anim.Tick", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"stroke committed", "cleared", "intro complete", "recovered fault", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("hook output missing %q:\n%s", want, out)
		}
	}
}
