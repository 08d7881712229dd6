package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gduarte0/program2mass/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Optimized in 3 passes (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// LogHooks reports pipeline, cache and store events as debug log lines.
type LogHooks struct {
	Logger *log.Logger
}

// RegisterLogHooks installs LogHooks for every hook category except HTTP,
// which the server logs itself.
func RegisterLogHooks(l *log.Logger) {
	h := &LogHooks{Logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetStoreHooks(h)
}

func (h *LogHooks) OnSolveStart(_ context.Context, strategy string, rooms int) {
	h.Logger.Debug("solve started", "strategy", strategy, "rooms", rooms)
}

func (h *LogHooks) OnSolveComplete(_ context.Context, strategy string, rooms int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("solve failed", "strategy", strategy, "err", err, "duration", d)
		return
	}
	h.Logger.Debug("solve complete", "strategy", strategy, "rooms", rooms, "duration", d)
}

func (h *LogHooks) OnPass(_ context.Context, strategy string, pass, changed int) {
	h.Logger.Debug("pass", "strategy", strategy, "pass", pass, "changed", changed)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "key", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "key", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "key", keyType, "bytes", size)
}

func (h *LogHooks) OnSave(_ context.Context, backend, id string, d time.Duration, err error) {
	h.Logger.Debug("run saved", "backend", backend, "id", id, "duration", d, "err", err)
}

func (h *LogHooks) OnLoad(_ context.Context, backend, id string, d time.Duration, err error) {
	h.Logger.Debug("run loaded", "backend", backend, "id", id, "duration", d, "err", err)
}
