package event

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

// DeadLetterEntry is one line of the dead-letter log
type DeadLetterEntry struct {
	Version   string    `json:"version"`
	FailedAt  time.Time `json:"failed_at"`
	EventType Type      `json:"event_type"`
	Event     Event     `json:"event"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends events that exhausted their retries to a JSON-lines file
type DeadLetterWriter struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
	now  func() time.Time
}

// NewDeadLetterWriter opens path for appending, creating it if needed
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("open dead-letter file %s: %w", path, err)
	}
	return &DeadLetterWriter{file: f, enc: json.NewEncoder(f), now: time.Now}, nil
}

// Write appends evt with its attempt count and last error
func (w *DeadLetterWriter) Write(evt Event, attempts int, lastErr error) error {
	entry := DeadLetterEntry{
		Version:   EventSchemaVersion,
		EventType: evt.Type,
		Event:     evt,
		Attempts:  attempts,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	entry.FailedAt = w.now().UTC()

	slog.Warn(LogMsgEventDeadLettered, "event_type", evt.Type, "attempts", attempts, "error", lastErr)
	if err := w.enc.Encode(entry); err != nil {
		return fmt.Errorf("write dead-letter entry: %w", err)
	}
	return nil
}

// Close closes the underlying file
func (w *DeadLetterWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// ReadDeadLetters loads every entry of a dead-letter file, for replay or inspection
func ReadDeadLetters(path string) ([]DeadLetterEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e DeadLetterEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return entries, fmt.Errorf("parse dead-letter line %d: %w", len(entries)+1, err)
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}
