package logger

import (
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// Entry is a single log entry kept for the TUI logs screen.
type Entry struct {
	Timestamp time.Time
	Level     zapcore.Level
	Message   string
}

// Buffer is a thread-safe ring buffer of recent log entries. Old
// entries are overwritten once the buffer is full; the rotated log file
// keeps the full history.
type Buffer struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	wrapped bool
	total   uint64
}

// NewBuffer creates a buffer holding up to size entries.
func NewBuffer(size int) *Buffer {
	return &Buffer{
		entries: make([]Entry, size),
	}
}

// Add appends an entry, overwriting the oldest one when full.
func (b *Buffer) Add(entry Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.next] = entry
	b.next = (b.next + 1) % len(b.entries)
	if b.next == 0 {
		b.wrapped = true
	}
	b.total++
}

// Recent returns up to limit entries, oldest first.
func (b *Buffer) Recent(limit int) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	var ordered []Entry
	if b.wrapped {
		ordered = append(ordered, b.entries[b.next:]...)
		ordered = append(ordered, b.entries[:b.next]...)
	} else {
		ordered = append(ordered, b.entries[:b.next]...)
	}

	if limit > 0 && len(ordered) > limit {
		ordered = ordered[len(ordered)-limit:]
	}
	return ordered
}

// Len returns the number of entries currently held.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.wrapped {
		return len(b.entries)
	}
	return b.next
}

// Total returns the number of entries ever added.
func (b *Buffer) Total() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}
