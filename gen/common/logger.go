package common

import (
	"fmt"
	"log"
	"sync"
)

// Logger is a log utility that also keeps the messages for display
type Logger struct {
	mu      sync.Mutex
	entries []*LogEntry
}

// Dbg prints an informational message
func (l *Logger) Dbg(format string, v ...interface{}) {
	log.Printf("%s\n", fmt.Sprintf(format, v...))
}

// Msg logs an informational message
func (l *Logger) Msg(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	log.Println(msg)
	l.append(&LogEntry{false, msg})
}

// Err logs an error message
func (l *Logger) Err(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	log.Printf("%s\n", fmt.Sprintf("Error: %s", msg))
	l.append(&LogEntry{true, msg})
}

// Fatal calls log.Fatalf
func (l *Logger) Fatal(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}

// HasErrors reports whether any error was logged
func (l *Logger) HasErrors() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.IsError {
			return true
		}
	}
	return false
}

// Entries returns a copy of the kept messages
func (l *Logger) Entries() []*LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*LogEntry(nil), l.entries...)
}

func (l *Logger) append(e *LogEntry) {
	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()
}

// NewLog creates a new logger
func NewLog() *Logger {
	return new(Logger)
}

// LogEntry contains the message and metadata
type LogEntry struct {
	IsError bool
	Msg     string
}
