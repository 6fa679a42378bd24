// Package storage is a flat-file key-value store. Each record is a single
// JSON document at <baseDir>/<collection>/<key>.json.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrExists is returned by Create when a record already exists.
	ErrExists = errors.New("record already exists")
)

type Store struct {
	baseDir string
}

// New creates a store rooted at baseDir, creating the directory as needed.
func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create base dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Create writes a new record. It fails with ErrExists if the key is taken.
func (s *Store) Create(collection, key string, data any) error {
	if err := os.MkdirAll(filepath.Join(s.baseDir, collection), 0o755); err != nil {
		return fmt.Errorf("storage: create collection %q: %w", collection, err)
	}

	buf, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("storage: marshal %s/%s: %w", collection, key, err)
	}

	f, err := os.OpenFile(s.path(collection, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s/%s", ErrExists, collection, key)
		}
		return fmt.Errorf("storage: create %s/%s: %w", collection, key, err)
	}
	defer f.Close()

	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("storage: write %s/%s: %w", collection, key, err)
	}
	return nil
}

// Read unmarshals a record into out. Missing records yield ErrNotFound.
func (s *Store) Read(collection, key string, out any) error {
	buf, err := os.ReadFile(s.path(collection, key))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, key)
		}
		return fmt.Errorf("storage: read %s/%s: %w", collection, key, err)
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return fmt.Errorf("storage: unmarshal %s/%s: %w", collection, key, err)
	}
	return nil
}

// Update overwrites an existing record. It fails with ErrNotFound if the
// record is absent.
func (s *Store) Update(collection, key string, data any) error {
	if _, err := os.Stat(s.path(collection, key)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, key)
		}
		return fmt.Errorf("storage: stat %s/%s: %w", collection, key, err)
	}

	buf, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("storage: marshal %s/%s: %w", collection, key, err)
	}
	if err := os.WriteFile(s.path(collection, key), buf, 0o644); err != nil {
		return fmt.Errorf("storage: write %s/%s: %w", collection, key, err)
	}
	return nil
}

// Upsert merges data's fields over any existing record fields and writes the
// result, creating the record if it does not exist.
func (s *Store) Upsert(collection, key string, data any) error {
	buf, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("storage: marshal %s/%s: %w", collection, key, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(buf, &fields); err != nil {
		return fmt.Errorf("storage: upsert %s/%s: not an object: %w", collection, key, err)
	}

	merged := map[string]json.RawMessage{}
	err = s.Read(collection, key, &merged)
	switch {
	case errors.Is(err, ErrNotFound):
		for k, v := range fields {
			merged[k] = v
		}
		return s.Create(collection, key, merged)
	case err != nil:
		return err
	default:
		for k, v := range fields {
			merged[k] = v
		}
		return s.Update(collection, key, merged)
	}
}

// Delete removes a record. Missing records yield ErrNotFound.
func (s *Store) Delete(collection, key string) error {
	if err := os.Remove(s.path(collection, key)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, key)
		}
		return fmt.Errorf("storage: delete %s/%s: %w", collection, key, err)
	}
	return nil
}

// List returns the keys of every record in a collection. A collection that
// was never written to is treated as empty.
func (s *Store) List(collection string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.baseDir, collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: list %q: %w", collection, err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	return keys, nil
}

func (s *Store) path(collection, key string) string {
	return filepath.Join(s.baseDir, collection, key+".json")
}
