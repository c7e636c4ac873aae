package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// New builds the process logger. format "json" writes one JSON object per
// line, anything else uses the human readable console writer.
func New(level, format string, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Caller().Logger()
}

// Gorm routes gorm's query logging through l. Slow queries and errors are
// reported, missing records are not.
func Gorm(l zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(gormWriter{l: l}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type gormWriter struct{ l zerolog.Logger }

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.l.Warn().Str("component", "gorm").Msgf(format, args...)
}
