// Package logging wires structured, leveled logging for pgnforge on top of
// zerolog. The processing pipeline is single-threaded, so the logger carries
// no synchronization of its own beyond whatever its writer needs.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger configured for pgnforge's diagnostic output:
// per-game warnings (bad escapes, recovered parse errors, consistency fixups)
// and per-run informational counters.
type Logger struct {
	zl zerolog.Logger
}

// New builds a Logger writing to w. When pretty is true, records are rendered
// through zerolog's console writer (human-friendly, used for an interactive
// terminal); otherwise records are newline-delimited JSON, suited to log
// files and the `-l`/`-L` CLI switches.
func New(w io.Writer, pretty bool) *Logger {
	if w == nil {
		w = os.Stderr
	}
	out := w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	}
	zl := zerolog.New(out).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// Quiet returns a Logger that discards everything.
func Quiet() *Logger {
	return &Logger{zl: zerolog.New(io.Discard)}
}

// Warnf records a per-game recoverable condition: a lexical escape, a
// recovered parse error, a consistency fixup. Matches the severity the
// source tool reports via its log file.
func (l *Logger) Warnf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.zl.Warn().Msgf(format, args...)
}

// Infof records run-level progress: files loaded, entries indexed, counts.
func (l *Logger) Infof(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.zl.Info().Msgf(format, args...)
}

// Errorf records a non-fatal error tied to no specific game.
func (l *Logger) Errorf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.zl.Error().Msgf(format, args...)
}

// WithGame returns a derived Logger tagging every subsequent record with the
// game number and source file, so a grep over a JSON log file can isolate
// one game's diagnostics.
func (l *Logger) WithGame(file string, gameNum int) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{zl: l.zl.With().Str("file", file).Int("game", gameNum).Logger()}
}
