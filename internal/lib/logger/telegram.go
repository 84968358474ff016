package logger

import (
	"context"
	"fmt"
	"log/slog"
)

// LogSink receives formatted log lines, e.g. a Telegram admin chat.
type LogSink interface {
	SendLog(text string) error
}

// SetupTelegramHandler wraps the logger so records at or above level are
// also forwarded to the sink. Sink failures are ignored; logging must
// never fail the caller.
func SetupTelegramHandler(log *slog.Logger, sink LogSink, level slog.Level) *slog.Logger {
	return slog.New(&telegramHandler{
		next:  log.Handler(),
		sink:  sink,
		level: level,
	})
}

type telegramHandler struct {
	next  slog.Handler
	sink  LogSink
	level slog.Level
	attrs []slog.Attr
}

func (h *telegramHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *telegramHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= h.level && h.sink != nil {
		text := fmt.Sprintf("[%s] %s", record.Level, record.Message)
		for _, attr := range h.attrs {
			text += fmt.Sprintf("\n%s: %v", attr.Key, attr.Value)
		}
		record.Attrs(func(attr slog.Attr) bool {
			text += fmt.Sprintf("\n%s: %v", attr.Key, attr.Value)
			return true
		})
		go func() { _ = h.sink.SendLog(text) }()
	}
	return h.next.Handle(ctx, record)
}

func (h *telegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &telegramHandler{
		next:  h.next.WithAttrs(attrs),
		sink:  h.sink,
		level: h.level,
		attrs: merged,
	}
}

func (h *telegramHandler) WithGroup(name string) slog.Handler {
	return &telegramHandler{
		next:  h.next.WithGroup(name),
		sink:  h.sink,
		level: h.level,
		attrs: h.attrs,
	}
}
