// Package testenv holds helpers shared by the tests of this module.
package testenv

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// LogHandler is a slog.Handler that writes one line per record: a running
// index, the level, the message and the attributes. Timestamps are left out
// so that the output can be compared verbatim.
type LogHandler struct {
	out         *logOutput
	attrs       []slog.Attr
	prefix      string
	minLevel    slog.Level
	ignoreDebug bool
}

type logOutput struct {
	mu    sync.Mutex
	w     io.Writer
	index int
}

// LogHandlerOption configures a LogHandler.
type LogHandlerOption func(*LogHandler)

// WithIgnoreDebug drops DEBUG records.
func WithIgnoreDebug() LogHandlerOption {
	return func(h *LogHandler) {
		h.ignoreDebug = true
	}
}

// NewLogHandler returns a LogHandler writing to w.
func NewLogHandler(w io.Writer, opts ...LogHandlerOption) *LogHandler {
	h := &LogHandler{out: &logOutput{w: w}, minLevel: slog.LevelDebug}
	for _, opt := range opts {
		opt(h)
	}
	if h.ignoreDebug {
		h.minLevel = slog.LevelInfo
	}
	return h
}

func (h *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.minLevel
}

//nolint:gocritic
func (h *LogHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	for _, a := range h.attrs {
		writeAttr(&sb, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.prefix, a)
		return true
	})

	h.out.mu.Lock()
	defer h.out.mu.Unlock()
	line := fmt.Sprintf("[%d] %s: %s", h.out.index, r.Level, r.Message)
	if sb.Len() > 0 {
		line += " " + sb.String()
	}
	h.out.index++
	_, err := fmt.Fprintln(h.out.w, line)
	return err
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(sb, prefix+a.Key+".", ga)
		}
		return
	}
	if sb.Len() > 0 {
		sb.WriteString(", ")
	}
	fmt.Fprintf(sb, "%s%s=%v", prefix, a.Key, a.Value)
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	out.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	out.attrs = append(out.attrs, h.attrs...)
	for _, a := range attrs {
		out.attrs = append(out.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &out
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	out := *h
	out.prefix = h.prefix + name + "."
	return &out
}
