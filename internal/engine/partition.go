package engine

// Partition splits files into at most n contiguous chunks, one per
// worker. Chunk size is ceil(len/n), so every file lands in exactly one
// chunk and only the final chunk may be short. Boundaries depend purely
// on position, never on file size.
//
// Callers must validate n >= 1; a zero worker count is a configuration
// error rejected before partitioning.
func Partition(files []FileEntry, n int) [][]FileEntry {
	if len(files) == 0 {
		return nil
	}

	chunkSize := (len(files) + n - 1) / n

	chunks := make([][]FileEntry, 0, n)
	for start := 0; start < len(files); start += chunkSize {
		end := start + chunkSize
		if end > len(files) {
			end = len(files)
		}
		chunks = append(chunks, files[start:end])
	}
	return chunks
}
