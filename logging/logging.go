// Package logging constructs the zerolog.Logger threaded through the
// solver packages (backtrack.Solver, proba.Solver, astar.Run), giving the
// router one consistent, structured non-fatal diagnostic sink instead of
// stdout prints (spec.md §7's "A* failed, popping node" and friends).
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Level mirrors zerolog's level names so callers configuring a router
// don't need to import zerolog directly just to pick a verbosity.
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	Disabled   = zerolog.Disabled
)

// New builds a zerolog.Logger writing to w at the given level, with a
// console writer when w is a terminal-like destination (os.Stdout/Stderr)
// and plain JSON otherwise, matching zerolog's own recommended split
// between human-facing and machine-facing output.
func New(w io.Writer, level Level) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	output := w
	if w == os.Stdout || w == os.Stderr {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything, the default used by any
// package whose Config doesn't set a Logger field explicitly.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
