package ui

import (
	"fmt"
	"io"
	"time"

	"mircp/internal/stats"
)

// ANSI escape sequences.
const (
	ansiClearLine = "\r\033[K"
	ansiDim       = "\033[2m"
	ansiReset     = "\033[0m"
)

const (
	progressBarWidth = 30
	hudMinInterval   = 50 * time.Millisecond // don't redraw faster than this
)

// hudPresenter renders a single progress line that redraws in place,
// with failures printed above it.
type hudPresenter struct {
	w        io.Writer
	stats    *stats.Collector
	workers  int
	barWidth int
	tally    tally

	hudDrawn    bool
	lastHUDDraw time.Time
}

func (p *hudPresenter) Run(events <-chan Event) error {
	// Fire the first tick quickly to seed the ring buffer with initial
	// speed data, then switch to 1s interval.
	secTicker := time.NewTicker(250 * time.Millisecond)
	defer secTicker.Stop()
	firstTickDone := false

	// Redraw ticker for when no events are flowing (e.g., large file copy).
	redrawTicker := time.NewTicker(100 * time.Millisecond)
	defer redrawTicker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				p.clearHUD()
				return nil
			}
			p.handleEvent(ev)
			if p.tally.complete() {
				p.clearHUD()
				return nil
			}
			p.maybeDrawHUD()

		case <-redrawTicker.C:
			p.drawHUD()

		case <-secTicker.C:
			p.stats.Tick()
			if !firstTickDone {
				firstTickDone = true
				secTicker.Reset(1 * time.Second)
			}
		}
	}
}

func (p *hudPresenter) handleEvent(ev Event) {
	p.tally.observe(ev)

	switch ev.Type {
	case ScanStarted:
		fmt.Fprintln(p.w, "gathering folder structure...")
	case ScanComplete:
		fmt.Fprintf(p.w, "total files: %s (%s), %d workers\n",
			FormatCount(ev.Total), FormatBytes(ev.TotalSize), p.workers)
	case FileFailed:
		p.clearHUD()
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.w, "%s  FAILED: %s\n", ev.Path, errMsg)
		p.drawHUD()
	}
}

func (p *hudPresenter) maybeDrawHUD() {
	if time.Since(p.lastHUDDraw) < hudMinInterval {
		return
	}
	p.drawHUD()
}

func (p *hudPresenter) drawHUD() {
	snap := p.stats.Snapshot()
	if snap.FilesTotal == 0 {
		return
	}

	width := p.barWidth
	if width <= 0 {
		width = progressBarWidth
	}

	pct := float64(snap.Done()) / float64(snap.FilesTotal)
	line := fmt.Sprintf("%s %3.0f%%  %s/%s files  %s  %seta %s%s",
		ProgressBar(pct, width),
		pct*100,
		FormatCount(snap.Done()), FormatCount(snap.FilesTotal),
		FormatRate(p.stats.RollingSpeed(10)),
		ansiDim, FormatETA(p.stats.ETA()), ansiReset,
	)

	fmt.Fprint(p.w, ansiClearLine+line)
	p.hudDrawn = true
	p.lastHUDDraw = time.Now()
}

func (p *hudPresenter) clearHUD() {
	if !p.hudDrawn {
		return
	}
	fmt.Fprint(p.w, ansiClearLine)
	p.hudDrawn = false
}

func (p *hudPresenter) Summary() string {
	return completionSummary(p.stats.Snapshot(), p.tally.received)
}
