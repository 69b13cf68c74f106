package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// DefaultMaxValueLen is the attribute value cap applied by NewLogger.
// Long enough for any URL, short enough that a pathological page body
// cannot flood the log.
const DefaultMaxValueLen = 512

// TruncateHandler wraps an slog.Handler and caps the rendered length of
// every attribute value. Oversized values are cut and suffixed with a
// marker noting how many bytes were dropped.
//
// Design decision: We use a handler wrapper rather than trimming at
// every call site because:
//  1. It integrates with standard slog APIs
//  2. It works with any underlying handler (text, JSON)
//  3. Call sites stay readable; the policy lives in one place
type TruncateHandler struct {
	// handler is the underlying slog handler receiving trimmed records.
	handler slog.Handler

	// maxValueLen is the longest attribute value passed through untouched.
	maxValueLen int
}

// NewTruncateHandler creates a TruncateHandler wrapping the given
// handler. A non-positive maxValueLen falls back to DefaultMaxValueLen;
// a nil handler falls back to slog.Default().Handler().
func NewTruncateHandler(handler slog.Handler, maxValueLen int) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxValueLen <= 0 {
		maxValueLen = DefaultMaxValueLen
	}
	return &TruncateHandler{handler: handler, maxValueLen: maxValueLen}
}

// Enabled reports whether the handler handles records at the given
// level. It delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle trims the record's attributes and passes it on.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	trimmed := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		trimmed.AddAttrs(h.trimAttr(a))
		return true
	})
	return h.handler.Handle(ctx, trimmed)
}

// WithAttrs returns a new handler with the given attributes added,
// trimmed first.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	trimmed := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		trimmed[i] = h.trimAttr(a)
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(trimmed), maxValueLen: h.maxValueLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name), maxValueLen: h.maxValueLen}
}

// trimAttr caps a single attribute, recursing into groups.
func (h *TruncateHandler) trimAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		trimmed := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			trimmed[i] = h.trimAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(trimmed...)}
	}

	if a.Value.Kind() == slog.KindString {
		s := a.Value.String()
		if len(s) > h.maxValueLen {
			return slog.String(a.Key, truncate(s, h.maxValueLen))
		}
	}
	return a
}

// truncate cuts s at the byte limit and appends a dropped-bytes marker.
func truncate(s string, limit int) string {
	return fmt.Sprintf("%s...(%d bytes trimmed)", s[:limit], len(s)-limit)
}

// NewLogger creates a structured logger writing text records to w.
// Verbose selects debug level; otherwise only warnings and errors pass.
// All attribute values are capped at DefaultMaxValueLen.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewTruncateHandler(textHandler, DefaultMaxValueLen))
}
