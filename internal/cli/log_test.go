package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("tally") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("attempt") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("attempt") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("budget") }, true},
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

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))

	prog.done("Loaded %d ballots from %s", 1000, "votes.toi")

	out := buf.String()
	if !strings.Contains(out, "Loaded 1000 ballots from votes.toi") {
		t.Errorf("output %q lacks the message", out)
	}
	if !strings.Contains(out, "elapsed=") {
		t.Errorf("output %q lacks the elapsed field", out)
	}
}

func TestProgressSilentAboveInfo(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.WarnLevel))
	prog.done("Generated %d orders", 24)
	if buf.Len() != 0 {
		t.Errorf("progress logged %q at warn level", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), custom)
	if got := loggerFromContext(ctx); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}
}
