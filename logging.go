package orrery

import (
	"io"

	kitlog "github.com/go-kit/log"
)

// NewLogger returns a logfmt logger safe for use by several writers, with a
// UTC timestamp on every line.
func NewLogger(w io.Writer) kitlog.Logger {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	return kitlog.With(klog, "ts", kitlog.DefaultTimestampUTC)
}

func nopIfNil(l kitlog.Logger) kitlog.Logger {
	if l == nil {
		return kitlog.NewNopLogger()
	}
	return l
}

// WithoutDebug drops the records logged with level=debug.
func WithoutDebug(next kitlog.Logger) kitlog.Logger {
	return kitlog.LoggerFunc(func(keyvals ...interface{}) error {
		for i := 0; i+1 < len(keyvals); i += 2 {
			if keyvals[i] == "level" && keyvals[i+1] == "debug" {
				return nil
			}
		}
		return next.Log(keyvals...)
	})
}
