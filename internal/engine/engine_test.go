package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mircp/internal/event"
	"mircp/internal/stats"
)

func runMirror(t *testing.T, cfg Config) (Result, []event.Event) {
	t.Helper()

	events := make(chan event.Event, 1024)
	cfg.Events = events
	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}

	result := Run(context.Background(), cfg)
	close(events)

	var collected []event.Event
	for ev := range events {
		collected = append(collected, ev)
	}
	return result, collected
}

func TestRun_MirrorsTree(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "dst")
	createTestTree(t, src)

	result, events := runMirror(t, Config{Src: src, Dst: dst, Workers: 2})
	require.NoError(t, result.Err)

	// Directory hierarchy mirrored.
	for _, rel := range []string{"sub", filepath.Join("sub", "deep")} {
		info, err := os.Stat(filepath.Join(dst, rel))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// All files byte-identical.
	for _, rel := range []string{"a.txt", filepath.Join("sub", "b.txt"), filepath.Join("sub", "deep", "c.txt")} {
		want, err := os.ReadFile(filepath.Join(src, rel))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(dst, rel))
		require.NoError(t, err)
		assert.Equal(t, want, got, "content mismatch for %s", rel)
	}

	assert.Equal(t, int64(3), result.Stats.FilesTotal)
	assert.Equal(t, int64(3), result.Stats.FilesCopied)
	assert.Equal(t, result.Stats.FilesTotal, result.Stats.Done(),
		"received count reaches the scan total")
	assert.Len(t, terminalEvents(events), 3)
}

func TestRun_RerunSkipsEverything(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "dst")
	createTestTree(t, src)

	first, _ := runMirror(t, Config{Src: src, Dst: dst, Workers: 2})
	require.NoError(t, first.Err)

	second, events := runMirror(t, Config{Src: src, Dst: dst, Workers: 2})
	require.NoError(t, second.Err)

	assert.Equal(t, int64(3), second.Stats.FilesSkipped)
	assert.Zero(t, second.Stats.FilesCopied)
	assert.Zero(t, second.Stats.BytesCopied, "re-run copies zero new bytes")
	assert.Len(t, terminalEvents(events), 3, "skips still count as progress")
}

func TestRun_SkipPrecedesOverwrite(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "dst")
	createTestTree(t, src)

	// Pre-seed the destination with different content for a.txt.
	require.NoError(t, os.MkdirAll(dst, 0o755))
	pre := []byte("pre-existing, different content")
	require.NoError(t, os.WriteFile(filepath.Join(dst, "a.txt"), pre, 0o644))

	result, events := runMirror(t, Config{Src: src, Dst: dst, Workers: 2})
	require.NoError(t, result.Err)

	got, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, pre, got, "existing destination content must be left untouched")

	assert.Equal(t, int64(2), result.Stats.FilesCopied)
	assert.Equal(t, int64(1), result.Stats.FilesSkipped)
	assert.Len(t, terminalEvents(events), 3, "the skip still counts toward the total")
}

func TestRun_ZeroWorkersIsFatal(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "dst")
	createTestTree(t, src)

	result, events := runMirror(t, Config{Src: src, Dst: dst, Workers: 0})
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "worker count")

	_, err := os.Stat(dst)
	assert.True(t, os.IsNotExist(err), "aborts before creating any directories")
	assert.Empty(t, events, "aborts before scanning")
}

func TestRun_SourceMustBeDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	result, _ := runMirror(t, Config{Src: file, Dst: filepath.Join(dir, "dst"), Workers: 1})
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "not a directory")

	result, _ = runMirror(t, Config{Src: filepath.Join(dir, "missing"), Dst: filepath.Join(dir, "dst"), Workers: 1})
	require.Error(t, result.Err)
}

func TestRun_CreatesTargetWithAncestors(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	createTestTree(t, src)
	dst := filepath.Join(t.TempDir(), "deeply", "nested", "dst")

	result, _ := runMirror(t, Config{Src: src, Dst: dst, Workers: 1})
	require.NoError(t, result.Err)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRun_EmptySource(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "dst")

	result, events := runMirror(t, Config{Src: src, Dst: dst, Workers: 4})
	require.NoError(t, result.Err)

	assert.Zero(t, result.Stats.FilesTotal)
	assert.Empty(t, terminalEvents(events), "zero files means zero workers spawned")

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRun_FailuresSurfaceInResult(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "dst")
	require.NoError(t, os.WriteFile(filepath.Join(src, "keep.txt"), []byte("fine"), 0o644))

	gone := filepath.Join(src, "gone.txt")
	require.NoError(t, os.WriteFile(gone, []byte("doomed"), 0o644))

	// Remove a scanned file mid-run by making it vanish before the
	// workers reach it: scan manually, then delete.
	events := make(chan event.Event, 1024)
	collector := stats.NewCollector()

	tree, err := ScanTree(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, tree.Files, 2)
	require.NoError(t, os.Remove(gone))

	require.NoError(t, os.MkdirAll(dst, 0o755))
	wp := NewWorkerPool(WorkerConfig{SrcRoot: src, DstRoot: dst, Stats: collector, Events: events})
	require.NoError(t, wp.Run(context.Background(), Partition(tree.Files, 2)))
	close(events)

	snap := collector.Snapshot()
	assert.Equal(t, int64(1), snap.FilesFailed)
	assert.Equal(t, int64(1), snap.FilesCopied)
}
