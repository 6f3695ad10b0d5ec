package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"mircp/internal/event"
	"mircp/internal/stats"
)

// Config describes a mirror operation. Stats must be non-nil; Events
// is optional (nil disables progress reporting).
type Config struct {
	Src     string
	Dst     string
	Workers int
	DryRun  bool
	Events  chan<- event.Event
	Stats   *stats.Collector
}

// Result is the outcome of a mirror operation.
type Result struct {
	Stats stats.Snapshot
	Err   error
}

// Run executes a mirror operation, blocking until complete. The
// sequence is strict: validate, scan, replicate directories, partition,
// then run the worker pool. Directory replication finishes before any
// worker starts, so workers never synchronize on directory creation.
//
// Run does not close cfg.Events; the caller closes it after Run returns
// so the event consumer always terminates, even when failed copies keep
// the terminal-event count short of the scan total.
func Run(ctx context.Context, cfg Config) Result {
	// Configuration errors abort before any work, scanning included.
	if cfg.Workers < 1 {
		return Result{Err: fmt.Errorf("worker count must be at least 1 (got %d)", cfg.Workers)}
	}

	srcInfo, err := os.Stat(cfg.Src)
	if err != nil {
		return Result{Err: fmt.Errorf("source: %w", err)}
	}
	if !srcInfo.IsDir() {
		return Result{Err: fmt.Errorf("source %s is not a directory", cfg.Src)}
	}

	if err := os.MkdirAll(cfg.Dst, 0o755); err != nil {
		return Result{Err: fmt.Errorf("create target: %w", err)}
	}

	emit(cfg.Events, event.Event{Type: event.ScanStarted})

	tree, err := ScanTree(ctx, cfg.Src)
	if err != nil {
		return Result{Stats: cfg.Stats.Snapshot(), Err: fmt.Errorf("scan: %w", err)}
	}

	cfg.Stats.SetTotals(int64(len(tree.Files)), tree.TotalBytes)
	emit(cfg.Events, event.Event{
		Type:      event.ScanComplete,
		Total:     int64(len(tree.Files)),
		TotalSize: tree.TotalBytes,
	})

	slog.Debug("scan complete",
		"files", len(tree.Files),
		"dirs", len(tree.Dirs),
		"bytes", tree.TotalBytes,
	)

	if err := ReplicateDirs(tree, cfg.Src, cfg.Dst, cfg.Stats, func(ev event.Event) {
		emit(cfg.Events, ev)
	}); err != nil {
		return Result{Stats: cfg.Stats.Snapshot(), Err: fmt.Errorf("replicate directories: %w", err)}
	}

	chunks := Partition(tree.Files, cfg.Workers)

	wp := NewWorkerPool(WorkerConfig{
		SrcRoot: cfg.Src,
		DstRoot: cfg.Dst,
		DryRun:  cfg.DryRun,
		Stats:   cfg.Stats,
		Events:  cfg.Events,
	})
	runErr := wp.Run(ctx, chunks)

	snap := cfg.Stats.Snapshot()
	if runErr == nil && snap.FilesFailed > 0 {
		runErr = fmt.Errorf("%d of %d files failed", snap.FilesFailed, snap.FilesTotal)
	}

	return Result{Stats: snap, Err: runErr}
}

func emit(events chan<- event.Event, ev event.Event) {
	if events == nil {
		return
	}
	ev.Timestamp = time.Now()
	events <- ev
}
