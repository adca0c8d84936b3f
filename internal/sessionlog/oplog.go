package sessionlog

import (
	"os"

	"github.com/charmbracelet/log"
)

// NewOperationalLogger builds the structured logger cmd/adapterprobe-engine
// uses for startup failures, engine start/stop, and command-dispatch
// errors. The engine and dispatcher packages never log themselves, so
// nothing is logged from inside Engine.Tick — the hot path stays free
// of anything that could allocate or block.
func NewOperationalLogger(name string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		ReportCaller:    false,
		Prefix:          name,
	})
	l.SetLevel(log.InfoLevel)
	return l
}
