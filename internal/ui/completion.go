package ui

import (
	"fmt"

	"mircp/internal/stats"
)

// completionSummary builds the final summary line from a snapshot and
// the aggregator's received count. Skips count as progress, so received
// covers copied and skipped files alike; failures are called out
// separately.
func completionSummary(snap stats.Snapshot, received int64) string {
	base := fmt.Sprintf("%s/%s files copied",
		FormatCount(received),
		FormatCount(snap.FilesTotal),
	)

	if snap.FilesSkipped > 0 {
		base += fmt.Sprintf(" (%s already present)", FormatCount(snap.FilesSkipped))
	}
	if snap.FilesFailed > 0 {
		base += fmt.Sprintf(", %s failed", FormatCount(snap.FilesFailed))
	}
	if snap.BytesCopied > 0 {
		avgSpeed := 0.0
		if snap.Elapsed.Seconds() > 0 {
			avgSpeed = float64(snap.BytesCopied) / snap.Elapsed.Seconds()
		}
		base += fmt.Sprintf("  %s  avg %s", FormatBytes(snap.BytesCopied), FormatRate(avgSpeed))
	}

	return base
}
