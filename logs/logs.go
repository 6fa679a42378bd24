// Package logs manages append-only log files and their rotation into
// gzip-compressed archives.
package logs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Logs struct {
	baseDir string
}

// New creates a log manager rooted at baseDir, creating the directory as
// needed.
func New(baseDir string) (*Logs, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("logs: create base dir: %w", err)
	}
	return &Logs{baseDir: baseDir}, nil
}

// Append writes one line to the named log file, creating it as needed.
func (l *Logs) Append(name, line string) error {
	path := filepath.Join(l.baseDir, name+".log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("logs: open %q: %w", name, err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("logs: append %q: %w", name, err)
	}
	return nil
}

// List returns the names of the uncompressed log files, plus the archived
// ones when includeArchived is set.
func (l *Logs) List(includeArchived bool) ([]string, error) {
	entries, err := os.ReadDir(l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("logs: list: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".log"):
			names = append(names, strings.TrimSuffix(name, ".log"))
		case includeArchived && strings.HasSuffix(name, ".gz"):
			names = append(names, strings.TrimSuffix(name, ".gz"))
		}
	}
	return names, nil
}

// Rotate compresses every log file into a timestamped .gz archive and
// truncates the source.
func (l *Logs) Rotate() error {
	names, err := l.List(false)
	if err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	for _, name := range names {
		archive := fmt.Sprintf("%s-%d", name, now)
		if err := l.compress(name, archive); err != nil {
			return err
		}
		if err := os.Truncate(filepath.Join(l.baseDir, name+".log"), 0); err != nil {
			return fmt.Errorf("logs: truncate %q: %w", name, err)
		}
	}
	return nil
}

func (l *Logs) compress(name, archive string) error {
	src, err := os.Open(filepath.Join(l.baseDir, name+".log"))
	if err != nil {
		return fmt.Errorf("logs: open %q: %w", name, err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(l.baseDir, archive+".gz"))
	if err != nil {
		return fmt.Errorf("logs: create archive %q: %w", archive, err)
	}
	defer dst.Close()

	zw := gzip.NewWriter(dst)
	if _, err := io.Copy(zw, src); err != nil {
		zw.Close()
		return fmt.Errorf("logs: compress %q: %w", name, err)
	}
	return zw.Close()
}
