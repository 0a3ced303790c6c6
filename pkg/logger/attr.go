package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil error yields an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors", keyed by position.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// RunID records the identifier of one CLI invocation under "run_id".
func RunID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("run_id", id)
}

func Schema(name string) slog.Attr {
	return slog.String("schema", name)
}

// Field records a field path under "field".
func Field(path string) slog.Attr {
	return slog.String("field", path)
}

// Issues records the number of validation issues under "issues".
func Issues(n int) slog.Attr {
	return slog.Int("issues", n)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
