package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"mircp/internal/event"
	"mircp/internal/platform"
	"mircp/internal/stats"
)

// tmpSuffix marks in-flight destination files. Copies land in a
// temporary file and are renamed into place, so an interrupted run never
// leaves a partial file that a later run would skip over.
const tmpSuffix = ".mircp-tmp"

var errOutsideRoot = errors.New("entry path is outside the source root")

// WorkerConfig controls worker behavior.
type WorkerConfig struct {
	SrcRoot string
	DstRoot string
	DryRun  bool
	Stats   *stats.Collector
	Events  chan<- event.Event
}

// WorkerPool copies pre-partitioned chunks of the file list, one worker
// per chunk. Workers share nothing but the event channel and the atomic
// stats collector; no locking is needed among them.
type WorkerPool struct {
	cfg WorkerConfig
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(cfg WorkerConfig) *WorkerPool {
	return &WorkerPool{cfg: cfg}
}

// Run processes every chunk concurrently and blocks until all workers
// finish. Per-file errors are recovered locally (logged, FileFailed
// event); only cancellation makes Run return an error.
func (wp *WorkerPool) Run(ctx context.Context, chunks [][]FileEntry) error {
	g, ctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			return wp.runWorker(ctx, i, chunk)
		})
	}
	return g.Wait()
}

func (wp *WorkerPool) runWorker(ctx context.Context, id int, chunk []FileEntry) error {
	for _, entry := range chunk {
		// Cooperative cancellation, checked between files.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		wp.processFile(id, entry)
	}
	return nil
}

// processFile resolves one file to exactly one terminal outcome:
// copied, skipped, or failed.
func (wp *WorkerPool) processFile(id int, entry FileEntry) {
	rel, err := filepath.Rel(wp.cfg.SrcRoot, entry.Path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		slog.Warn("skipping entry outside source root", "path", entry.Path)
		wp.fail(id, entry.Path, entry.Size, errOutsideRoot)
		return
	}

	dst := filepath.Join(wp.cfg.DstRoot, rel)

	// Anything already at the destination counts as transferred.
	if _, err := os.Lstat(dst); err == nil {
		wp.cfg.Stats.AddFilesSkipped(1)
		wp.emit(event.Event{Type: event.FileSkipped, Path: rel, Size: entry.Size, WorkerID: id})
		return
	}

	if wp.cfg.DryRun {
		wp.cfg.Stats.AddFilesCopied(1)
		wp.emit(event.Event{Type: event.FileCopied, Path: rel, Size: entry.Size, WorkerID: id})
		return
	}

	wp.emit(event.Event{Type: event.FileStarted, Path: rel, Size: entry.Size, WorkerID: id})

	written, err := wp.copyFile(entry, dst)
	if err != nil {
		slog.Error("copy failed", "src", entry.Path, "dst", dst, "error", err)
		wp.fail(id, rel, entry.Size, err)
		return
	}

	wp.cfg.Stats.AddFilesCopied(1)
	wp.cfg.Stats.AddBytesCopied(written)
	wp.emit(event.Event{Type: event.FileCopied, Path: rel, Size: written, WorkerID: id})
}

func (wp *WorkerPool) copyFile(entry FileEntry, dst string) (int64, error) {
	srcInfo, err := os.Stat(entry.Path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", entry.Path, err)
	}

	tmp := dst + tmpSuffix
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", tmp, err)
	}

	result, err := platform.CopyFile(platform.CopyFileParams{
		DstFd:   out,
		SrcPath: entry.Path,
		SrcSize: srcInfo.Size(),
	})
	if err != nil {
		out.Close()
		os.Remove(tmp)
		return 0, fmt.Errorf("copy %s: %w", entry.Path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("rename %s: %w", tmp, err)
	}

	return result.BytesWritten, nil
}

func (wp *WorkerPool) fail(id int, path string, size int64, err error) {
	wp.cfg.Stats.AddFilesFailed(1)
	wp.emit(event.Event{Type: event.FileFailed, Path: path, Size: size, Error: err, WorkerID: id})
}

func (wp *WorkerPool) emit(ev event.Event) {
	if wp.cfg.Events == nil {
		return
	}
	ev.Timestamp = time.Now()
	wp.cfg.Events <- ev
}
