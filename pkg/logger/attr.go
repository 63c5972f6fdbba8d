package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil error yields an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Template describes a template source by name and size in bytes.
func Template(name string, size int) slog.Attr {
	return slog.Group("template", slog.String("name", name), slog.Int("size", size))
}

// Output records whether a render produced html or text.
func Output(plainText bool) slog.Attr {
	if plainText {
		return slog.String("output", "text")
	}
	return slog.String("output", "html")
}
