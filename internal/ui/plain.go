package ui

import (
	"fmt"
	"io"
	"time"

	"mircp/internal/stats"
)

// plainPresenter outputs one line per completed file to stdout,
// and periodic progress to stderr when not a TTY.
type plainPresenter struct {
	w       io.Writer
	errW    io.Writer
	stats   *stats.Collector
	verbose bool
	tally   tally
}

func (p *plainPresenter) Run(events <-chan Event) error {
	// The ring buffer expects one sample per second; progress lines go
	// out every fifth tick.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	ticks := 0

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
			if p.tally.complete() {
				return nil
			}
		case <-ticker.C:
			p.stats.Tick()
			ticks++
			if ticks%5 == 0 {
				p.printProgress()
			}
		}
	}
}

func (p *plainPresenter) handleEvent(ev Event) {
	p.tally.observe(ev)

	switch ev.Type {
	case ScanStarted:
		fmt.Fprintln(p.errW, "gathering folder structure...")
	case ScanComplete:
		fmt.Fprintf(p.errW, "total files: %s (%s)\n",
			FormatCount(ev.Total), FormatBytes(ev.TotalSize))
	case FileCopied:
		fmt.Fprintf(p.w, "%s  %s\n", ev.Path, FormatBytes(ev.Size))
	case FileSkipped:
		if p.verbose {
			fmt.Fprintf(p.w, "%s  skipped\n", ev.Path)
		}
	case FileFailed:
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.w, "%s  FAILED: %s\n", ev.Path, errMsg)
	}
}

func (p *plainPresenter) printProgress() {
	snap := p.stats.Snapshot()
	if snap.FilesTotal == 0 {
		return
	}
	pct := float64(snap.Done()) / float64(snap.FilesTotal) * 100
	fmt.Fprintf(p.errW, "progress: %.0f%% %s/%s files %s/%s %s eta %s\n",
		pct,
		FormatCount(snap.Done()), FormatCount(snap.FilesTotal),
		FormatBytes(snap.BytesCopied), FormatBytes(snap.BytesTotal),
		FormatRate(p.stats.RollingSpeed(10)),
		FormatETA(p.stats.ETA()),
	)
}

func (p *plainPresenter) Summary() string {
	return completionSummary(p.stats.Snapshot(), p.tally.received)
}
