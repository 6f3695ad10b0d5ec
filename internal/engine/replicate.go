package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"mircp/internal/event"
	"mircp/internal/stats"
)

// ReplicateDirs mirrors every scanned directory under dstRoot before any
// file copy begins, so workers never create parent directories. It is
// idempotent: re-running on an already-replicated tree succeeds.
func ReplicateDirs(tree *Tree, srcRoot, dstRoot string, collector *stats.Collector, emit func(event.Event)) error {
	for _, dir := range tree.Dirs {
		rel, err := filepath.Rel(srcRoot, dir)
		if err != nil {
			return fmt.Errorf("rel path for %s: %w", dir, err)
		}
		dst := filepath.Join(dstRoot, rel)
		if err := os.MkdirAll(dst, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dst, err)
		}
		collector.AddDirsCreated(1)
		emit(event.Event{Type: event.DirCreated, Path: rel})
	}
	return nil
}
