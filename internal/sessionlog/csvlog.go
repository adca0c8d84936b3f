// Package sessionlog records per-trial stimulus events to a
// daily-rotated CSV file and wires up the operational logger used for
// everything else. Grounded on the teacher's log.go: the same
// daily-filename rotation (close and reopen when the computed name
// changes) and the decision to keep the file open across writes
// rather than open/close per record, generalized from log.go's
// hand-built "2006-01-02.log" time.Format string to a
// lestrrat-go/strftime pattern so the filename format is data, not
// code.
package sessionlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lestrrat-go/strftime"
)

// TrialEvent is one row of the session log: the original's own
// comment that jitter draws are logged "for plotting histograms of
// random ISI values" is why AdapterJitter is its own column rather
// than folded into a generic payload.
type TrialEvent struct {
	Time          time.Time
	PatternOffset int
	TrialCount    int
	PatternByte   byte
	AdapterJitter int
}

var csvHeader = []string{"time_utc", "pattern_offset", "trial_count", "pattern_byte", "adapter_jitter"}

// CSVLogger writes TrialEvents to a daily-rotated CSV file under dir.
// The zero value is not usable; construct with NewCSVLogger.
type CSVLogger struct {
	dir      string
	pattern  *strftime.Strftime
	fp       *os.File
	w        *csv.Writer
	openName string
}

// NewCSVLogger prepares a logger that rotates files under dir at UTC
// midnight, named by nameLayout (a strftime pattern, e.g.
// "adapterprobe-%Y-%m-%d.csv").
func NewCSVLogger(dir, nameLayout string) (*CSVLogger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("sessionlog: create log dir %s: %w", dir, err)
	}

	pattern, err := strftime.New(nameLayout)
	if err != nil {
		return nil, fmt.Errorf("sessionlog: parse name layout %q: %w", nameLayout, err)
	}

	return &CSVLogger{dir: dir, pattern: pattern}, nil
}

// Write appends one trial event, rotating to a new day's file first if
// the computed name has changed since the last write.
func (l *CSVLogger) Write(ev TrialEvent) error {
	name := l.pattern.FormatString(ev.Time.UTC())

	if l.fp != nil && name != l.openName {
		if err := l.rotate(); err != nil {
			return err
		}
	}

	if l.fp == nil {
		if err := l.open(name); err != nil {
			return err
		}
	}

	row := []string{
		ev.Time.UTC().Format(time.RFC3339Nano),
		strconv.Itoa(ev.PatternOffset),
		strconv.Itoa(ev.TrialCount),
		string(ev.PatternByte),
		strconv.Itoa(ev.AdapterJitter),
	}
	if err := l.w.Write(row); err != nil {
		return fmt.Errorf("sessionlog: write row: %w", err)
	}
	l.w.Flush()
	return l.w.Error()
}

func (l *CSVLogger) open(name string) error {
	path := filepath.Join(l.dir, name)
	exists := false
	if _, err := os.Stat(path); err == nil {
		exists = true
	}

	fp, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("sessionlog: open %s: %w", path, err)
	}

	l.fp = fp
	l.openName = name
	l.w = csv.NewWriter(fp)

	if !exists {
		if err := l.w.Write(csvHeader); err != nil {
			return fmt.Errorf("sessionlog: write header: %w", err)
		}
		l.w.Flush()
	}
	return nil
}

func (l *CSVLogger) rotate() error {
	if err := l.Close(); err != nil {
		return err
	}
	return nil
}

// Close flushes and releases the current file, if any.
func (l *CSVLogger) Close() error {
	if l.fp == nil {
		return nil
	}
	l.w.Flush()
	err := l.w.Error()
	closeErr := l.fp.Close()
	l.fp = nil
	l.w = nil
	l.openName = ""
	if err != nil {
		return fmt.Errorf("sessionlog: flush: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("sessionlog: close: %w", closeErr)
	}
	return nil
}
