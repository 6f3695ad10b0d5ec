package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	ScanStarted Type = iota + 1
	ScanComplete
	DirCreated
	FileStarted
	FileCopied
	FileSkipped
	FileFailed
)

var typeNames = [...]string{
	ScanStarted:  "ScanStarted",
	ScanComplete: "ScanComplete",
	DirCreated:   "DirCreated",
	FileStarted:  "FileStarted",
	FileCopied:   "FileCopied",
	FileSkipped:  "FileSkipped",
	FileFailed:   "FileFailed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Terminal reports whether t is a per-file terminal outcome. Every
// scanned file produces exactly one terminal event, so counting them
// against the scan total is well-defined even when copies fail.
func (t Type) Terminal() bool {
	return t == FileCopied || t == FileSkipped || t == FileFailed
}

// Event represents a single progress event from the engine.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string // relative to the source root
	Size      int64  // file size in bytes
	Total     int64  // total files (ScanComplete)
	TotalSize int64  // total bytes (ScanComplete)
	Error     error
	WorkerID  int
}
