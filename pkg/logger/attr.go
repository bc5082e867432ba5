package logger

import (
	"log/slog"
	"strconv"
)

// Errors groups the non-nil errors under "errors". All nil gives an empty Attr.
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

// Error logs err under "error". Nil gives an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Component(name string) slog.Attr { return slog.String("component", name) }

// Field is the column field name.
func Field(name string) slog.Attr { return slog.String("field", name) }

// Row is the 1-based record number.
func Row(n int) slog.Attr { return slog.Int("row", n) }

// Column is the 1-based column number.
func Column(n int) slog.Attr { return slog.Int("column", n) }

// Session is the processing session id.
func Session(id string) slog.Attr { return slog.String("session", id) }

// File is the path of the input being processed.
func File(path string) slog.Attr { return slog.String("file", path) }
