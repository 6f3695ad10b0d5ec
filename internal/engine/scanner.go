package engine

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
)

// FileEntry is a regular file discovered under the source root.
type FileEntry struct {
	Path string // absolute path under the source root
	Size int64
}

// Tree is the result of scanning a source root: every reachable
// directory (source root first) and every regular file, in lexical
// traversal order. The order is deterministic within a run, which keeps
// partitioning reproducible.
type Tree struct {
	Dirs       []string
	Files      []FileEntry
	TotalBytes int64
}

// ScanTree walks root once and returns the full tree. Entries that
// cannot be read are logged at debug level and excluded; scanning only
// fails outright when the context is cancelled. Symlinks are not
// followed.
func ScanTree(ctx context.Context, root string) (*Tree, error) {
	tree := &Tree{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			slog.Debug("skipping unreadable entry", "path", path, "error", err)
			return nil
		}

		switch {
		case d.IsDir():
			tree.Dirs = append(tree.Dirs, path)
		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				slog.Debug("skipping unstatable file", "path", path, "error", err)
				return nil
			}
			tree.Files = append(tree.Files, FileEntry{Path: path, Size: info.Size()})
			tree.TotalBytes += info.Size()
		default:
			// Symlinks, devices, sockets: not mirrored.
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tree, nil
}
