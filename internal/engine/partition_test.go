package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFiles(n int) []FileEntry {
	files := make([]FileEntry, n)
	for i := range files {
		files[i] = FileEntry{Path: fmt.Sprintf("/src/file%04d", i), Size: int64(i)}
	}
	return files
}

func TestPartition_Cover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		files   int
		workers int
	}{
		{0, 1},
		{1, 1},
		{1, 4},
		{3, 2},
		{10, 3},
		{10, 10},
		{10, 16},
		{100, 7},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%df_%dw", tt.files, tt.workers), func(t *testing.T) {
			t.Parallel()

			files := makeFiles(tt.files)
			chunks := Partition(files, tt.workers)

			assert.LessOrEqual(t, len(chunks), tt.workers, "chunk count exceeds worker count")

			// Union of all chunks equals the file list, in order, with
			// no duplication and no omission.
			var flat []FileEntry
			for _, c := range chunks {
				require.NotEmpty(t, c)
				flat = append(flat, c...)
			}
			assert.Equal(t, files, flat)
		})
	}
}

func TestPartition_Empty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Partition(nil, 4))
	assert.Nil(t, Partition([]FileEntry{}, 1))
}

func TestPartition_Contiguous(t *testing.T) {
	t.Parallel()

	files := makeFiles(10)
	chunks := Partition(files, 3)

	// ceil(10/3) = 4: chunks of 4, 4, 2.
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 4)
	assert.Len(t, chunks[1], 4)
	assert.Len(t, chunks[2], 2)
	assert.Equal(t, files[0], chunks[0][0])
	assert.Equal(t, files[4], chunks[1][0])
	assert.Equal(t, files[8], chunks[2][0])
}
