// Package logctx provides the single structured logger shared by the
// scheduler and every receive-chain block, following the teacher's
// own choice of github.com/charmbracelet/log for this domain.
package logctx

import (
	"os"

	"github.com/charmbracelet/log"
)

var base = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "ofdmphy",
	ReportTimestamp: true,
})

// Stage returns a logger scoped to one pipeline stage name.
func Stage(name string) *log.Logger {
	return base.With("stage", name)
}

// Scheduler returns the logger used by the pipeline scheduler.
func Scheduler() *log.Logger {
	return base.With("component", "scheduler")
}

// Session returns the logger used by Transmitter/Receiver session code.
func Session() *log.Logger {
	return base.With("component", "session")
}

// SetLevel adjusts the shared logger's minimum level.
func SetLevel(level log.Level) {
	base.SetLevel(level)
}
