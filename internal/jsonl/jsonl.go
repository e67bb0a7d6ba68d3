// Package jsonl implements the append-only JSON Lines files behind the audit
// and decision logs. Writers take an advisory file lock around every record
// so separate processes never interleave partial lines.
package jsonl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// ErrClosed is returned by Append after Close.
var ErrClosed = errors.New("jsonl: appender closed")

// Appender writes one JSON document per line to a file opened for append.
type Appender struct {
	mu   sync.Mutex
	path string
	f    *os.File
	lock *flock.Flock
}

// Open creates parent directories and opens path for appending. Files are
// created owner-only since records may describe sensitive findings.
func Open(path string) (*Appender, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return &Appender{path: path, f: f, lock: flock.New(path + ".lock")}, nil
}

// Path returns the file being appended to.
func (a *Appender) Path() string { return a.path }

// Append encodes v as a single line.
func (a *Appender) Append(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	b = append(b, '\n')

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.f == nil {
		return ErrClosed
	}
	if err := a.lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", a.path, err)
	}
	defer func() { _ = a.lock.Unlock() }()
	if _, err := a.f.Write(b); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// Close flushes and releases the file. It is safe to call more than once.
func (a *Appender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.f == nil {
		return nil
	}
	err := a.f.Sync()
	if cerr := a.f.Close(); err == nil {
		err = cerr
	}
	a.f = nil
	return err
}

// Read calls fn with every non-empty line of path in file order. Lines that
// fail to decode as JSON are skipped.
func Read(path string, fn func(json.RawMessage) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		raw := make(json.RawMessage, len(line))
		copy(raw, line)
		if err := fn(raw); err != nil {
			return err
		}
	}
	return sc.Err()
}
