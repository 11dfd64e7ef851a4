package command

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// RunStdinLoop reads newline-delimited tokens from r until EOF or ctx-like
// cancellation isn't available (the original command thread never exits
// except at process shutdown, read_line blocking forever): an empty line
// notifies every phase ("proceed all"), "i"/"o" decrease/increase the
// command level, and anything else is logged as unrecognized. Intended to
// run in its own goroutine for the lifetime of the process.
func RunStdinLoop(r io.Reader, gate *Gate, logger zerolog.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		switch token := strings.TrimSpace(scanner.Text()); token {
		case "":
			gate.NotifyAll()
		case "i":
			level := gate.Decrease()
			logger.Debug().Int("level", level).Msg("command: level decreased")
		case "o":
			level := gate.Increase()
			logger.Debug().Int("level", level).Msg("command: level increased")
		default:
			logger.Warn().Str("token", token).Msg("command: unknown command")
		}
	}
}
