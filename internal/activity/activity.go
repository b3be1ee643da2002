// Package activity keeps the append-only log of changes made to a book.
package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Entry is one row in the activity log.
type Entry struct {
	Timestamp  time.Time
	Command    string // CLI command that made the change, e.g. "tx add"
	Action     string
	Subject    string // ID of the transaction, account, party or asset touched
	Details    string
	CommitHash string
}

// Header is the CSV header for activity.csv.
var Header = []string{"timestamp", "command", "action", "subject", "details", "commit_hash"}

const (
	numFields     = 6
	colTimestamp  = 0
	colCommand    = 1
	colAction     = 2
	colSubject    = 3
	colDetails    = 4
	colCommitHash = 5
)

// logPath is the log location relative to a book's root directory.
var logPath = filepath.Join("logs", "activity.csv")

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colCommand] = e.Command
	row[colAction] = e.Action
	row[colSubject] = e.Subject
	row[colDetails] = e.Details
	row[colCommitHash] = e.CommitHash
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	return Entry{
		Timestamp:  ts,
		Command:    record[colCommand],
		Action:     record[colAction],
		Subject:    record[colSubject],
		Details:    record[colDetails],
		CommitHash: record[colCommitHash],
	}, nil
}

// Append writes entries to <root>/logs/activity.csv, creating the file and
// header if needed.
func Append(root string, entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}
	path := filepath.Join(root, logPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	_, err := os.Stat(path)
	needsHeader := errors.Is(err, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/activity.csv, oldest first.
// A book without a log returns no entries.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, logPath))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// Tail returns the last n entries, newest first.
func Tail(entries []Entry, n int) []Entry {
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}
	out := make([]Entry, 0, n)
	for i := len(entries) - 1; i >= len(entries)-n; i-- {
		out = append(out, entries[i])
	}
	return out
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
