// Package log configures the process logger and names structured attribute keys.
package log

import (
	"io"
	"log/slog"

	cblog "github.com/charmbracelet/log"
)

// Prefix is printed in front of every log line.
const Prefix = "prepush"

// Options selects how chatty the logger is.
type Options struct {
	// Debug enables debug records.
	Debug bool

	// Verbose adds timestamps and caller locations to every record.
	Verbose bool
}

// Level returns the minimum level implied by opts.
func (o Options) Level() cblog.Level {
	if o.Debug {
		return cblog.DebugLevel
	}
	return cblog.InfoLevel
}

// SetupPrettyLogger creates a charmbracelet logger writing to w, installs it
// as the slog default and returns it. The returned logger also satisfies the
// hook installer's Logger interface.
func SetupPrettyLogger(w io.Writer, opts Options) *cblog.Logger {
	logHandler := cblog.NewWithOptions(
		w,
		cblog.Options{
			Level:           opts.Level(),
			Prefix:          Prefix,
			ReportTimestamp: opts.Verbose,
			ReportCaller:    opts.Verbose,
		},
	)
	slog.SetDefault(slog.New(logHandler))

	return logHandler
}
