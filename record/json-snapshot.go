package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var _ Snapshot = (*JSONSnapshot)(nil)

// JSONSnapshot is a naive implementation of a Snapshot.
// It persists the collection as a human-readable JSON file on disc.
// JSONSnapshot is not schema aware; if the shape of your records changes,
// this can lead to data loss!
// CAUTION: This is only intended for local development and prototyping.
type JSONSnapshot struct {
	dir string

	mu sync.Mutex
}

func NewJSONSnapshot(path string) *JSONSnapshot {
	err := os.MkdirAll(path, os.ModePerm)
	if err != nil {
		panic("could not create path: " + path + ": " + err.Error())
	}

	return &JSONSnapshot{dir: path, mu: sync.Mutex{}}
}

func (s *JSONSnapshot) Store(fileName string, data any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	buf, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	err = os.WriteFile(filepath.Join(s.dir, fileName), buf, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	return nil
}

func (s *JSONSnapshot) Load(fileName string, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, err := os.ReadFile(filepath.Join(s.dir, fileName))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	err = json.Unmarshal(buf, data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}

	return nil
}
