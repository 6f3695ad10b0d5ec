package ui

import "mircp/internal/event"

// Event is re-exported so presenter signatures stay short.
type Event = event.Event

// Re-export event types for convenience.
const (
	ScanStarted  = event.ScanStarted
	ScanComplete = event.ScanComplete
	DirCreated   = event.DirCreated
	FileStarted  = event.FileStarted
	FileCopied   = event.FileCopied
	FileSkipped  = event.FileSkipped
	FileFailed   = event.FileFailed
)
