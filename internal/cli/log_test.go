package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gduarte0/program2mass/pkg/observability"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	// Test that it can log
	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	if prog == nil {
		t.Fatal("newProgress() returned nil")
	}

	// Small delay to ensure measurable duration
	time.Sleep(10 * time.Millisecond)

	prog.done("test completed")

	output := buf.String()
	if output == "" {
		t.Error("progress.done() should produce output")
	}

	// Should contain the message
	if !bytes.Contains(buf.Bytes(), []byte("test completed")) {
		t.Error("progress.done() output should contain message")
	}
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	logger := log.Default()

	ctxWithLogger := withLogger(ctx, logger)

	// Should be able to retrieve the logger
	retrieved := loggerFromContext(ctxWithLogger)
	if retrieved != logger {
		t.Error("loggerFromContext should return the same logger")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	ctx := context.Background()

	// Without logger in context, should return default
	logger := loggerFromContext(ctx)
	if logger == nil {
		t.Error("loggerFromContext should return default logger when none set")
	}
}

func TestLoggerFromContextWithValue(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	customLogger := newLogger(&buf, log.InfoLevel)

	ctx = withLogger(ctx, customLogger)
	retrieved := loggerFromContext(ctx)

	if retrieved != customLogger {
		t.Error("loggerFromContext should return the custom logger")
	}

	// Verify it works by logging
	retrieved.Info("test")
	if buf.Len() == 0 {
		t.Error("custom logger should write to buffer")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHooks{Logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnSolveStart(ctx, "multipass", 3)
	h.OnPass(ctx, "multipass", 1, 2)
	h.OnSolveComplete(ctx, "multipass", 3, time.Millisecond, nil)
	h.OnSolveComplete(ctx, "module", 3, time.Millisecond, errors.New("boom"))
	h.OnCacheHit(ctx, "result")
	h.OnCacheMiss(ctx, "module")
	h.OnCacheSet(ctx, "result", 512)
	h.OnSave(ctx, "sqlite", "run-1", time.Millisecond, nil)
	h.OnLoad(ctx, "sqlite", "run-1", time.Millisecond, nil)

	out := buf.String()
	for _, want := range []string{"solve started", "solve complete", "solve failed", "cache hit", "cache miss", "cache set", "run saved", "run loaded"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q", want)
		}
	}
}

func TestRegisterLogHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	RegisterLogHooks(newLogger(&bytes.Buffer{}, log.DebugLevel))

	if _, ok := observability.Pipeline().(*LogHooks); !ok {
		t.Error("pipeline hooks not registered")
	}
	if _, ok := observability.Cache().(*LogHooks); !ok {
		t.Error("cache hooks not registered")
	}
	if _, ok := observability.Store().(*LogHooks); !ok {
		t.Error("store hooks not registered")
	}
	if _, ok := observability.HTTP().(observability.NoopHTTPHooks); !ok {
		t.Error("HTTP hooks should stay untouched")
	}
}
