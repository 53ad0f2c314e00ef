package testutil

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
)

// Record is one captured log call with its attributes flattened,
// including those added through Logger.With.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]string
}

// Decision is a "write decision" record reduced to what the installer
// decided for one target path.
type Decision struct {
	Target string
	Path   string
	Action string
}

// InstallLog captures installer logs so tests can check per-target decisions.
type InstallLog struct {
	Logger *slog.Logger

	mu      sync.Mutex
	records []Record
}

// NewInstallLog returns a debug-level capturing logger.
func NewInstallLog(t *testing.T) *InstallLog {
	t.Helper()
	l := &InstallLog{}
	l.Logger = slog.New(&recordHandler{log: l})
	return l
}

// Records returns a copy of everything logged so far.
func (l *InstallLog) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Record(nil), l.records...)
}

// Decisions returns the write decisions in the order they were made.
func (l *InstallLog) Decisions() []Decision {
	var out []Decision
	for _, r := range l.Records() {
		if r.Message != "write decision" {
			continue
		}
		out = append(out, Decision{Target: r.Attrs["target"], Path: r.Attrs["path"], Action: r.Attrs["action"]})
	}
	return out
}

// AssertLogged fails unless a record with msg was logged for target.
// An empty target matches any record.
func (l *InstallLog) AssertLogged(t *testing.T, msg, target string) {
	t.Helper()
	for _, r := range l.Records() {
		if r.Message == msg && (target == "" || r.Attrs["target"] == target) {
			return
		}
	}
	t.Errorf("no %q record for target %q; got %+v", msg, target, l.Records())
}

type recordHandler struct {
	log   *InstallLog
	attrs []slog.Attr
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	rec := Record{Level: r.Level, Message: r.Message, Attrs: make(map[string]string)}
	for _, a := range h.attrs {
		rec.Attrs[a.Key] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		rec.Attrs[a.Key] = a.Value.String()
		return true
	})

	h.log.mu.Lock()
	h.log.records = append(h.log.records, rec)
	h.log.mu.Unlock()
	return nil
}

func (h *recordHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recordHandler{log: h.log, attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...)}
}

// The installer does not log groups.
func (h *recordHandler) WithGroup(string) slog.Handler { return h }

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 100}))
}
