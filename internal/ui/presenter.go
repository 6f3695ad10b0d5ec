package ui

import (
	"io"
	"os"

	"mircp/internal/stats"
)

// Presenter consumes engine events and displays progress. It is the
// single consumer of the event channel: it owns the received count and
// is the only task that touches the display, so no synchronization is
// needed around either.
type Presenter interface {
	// Run consumes events until every planned file has reached a
	// terminal outcome or the channel closes, whichever comes first.
	// Blocks until done.
	Run(events <-chan Event) error
	// Summary returns the final summary line.
	Summary() string
}

// Config configures a Presenter.
type Config struct {
	Writer     io.Writer
	ErrWriter  io.Writer
	Stats      *stats.Collector
	DstRoot    string
	Workers    int
	IsTTY      bool
	Quiet      bool
	Verbose    bool
	NoProgress bool
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // factory function returns interface by design
func NewPresenter(cfg Config) Presenter {
	if cfg.Quiet {
		return &quietPresenter{stats: cfg.Stats}
	}
	if !cfg.IsTTY || cfg.NoProgress {
		return &plainPresenter{
			w:       cfg.Writer,
			errW:    cfg.ErrWriter,
			stats:   cfg.Stats,
			verbose: cfg.Verbose,
		}
	}
	barWidth := progressBarWidth
	if TermWidth(os.Stderr.Fd()) < 100 {
		barWidth = progressBarWidth / 2
	}
	return &hudPresenter{
		w:        cfg.ErrWriter, // HUD renders to stderr (the TTY)
		stats:    cfg.Stats,
		workers:  cfg.Workers,
		barWidth: barWidth,
	}
}

// tally tracks the aggregator's progress toward the scan total. Every
// terminal event advances received by one, whether the file was copied,
// skipped, or failed, so the total is always reachable.
type tally struct {
	planned  int64
	received int64
}

// observe folds one event into the tally and reports whether it was a
// terminal per-file outcome.
func (t *tally) observe(ev Event) bool {
	if ev.Type == ScanComplete {
		t.planned = ev.Total
	}
	if ev.Type.Terminal() {
		t.received++
		return true
	}
	return false
}

// complete reports whether every planned file has been accounted for.
// With zero planned files the channel close is the completion signal
// instead; directory events may still be in flight at ScanComplete.
func (t *tally) complete() bool {
	return t.planned > 0 && t.received >= t.planned
}
