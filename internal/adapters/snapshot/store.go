// Package snapshot persists recorded builds as JSON documents.
package snapshot

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.SnapshotStore using one JSON file per build.
type Store struct {
	mu      sync.Mutex
	written map[string]uint64
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{written: make(map[string]uint64)}
}

// Save replaces the snapshot at path with build.
// The file is written to a sibling temp file and renamed into place, so readers
// never observe a partial document. A document identical to the last one
// written to path is not rewritten.
func (s *Store) Save(path string, build *domain.Build) error {
	doc, err := encode(build)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrSnapshotMarshalFailed.Error())
	}
	data = append(data, '\n')

	digest := xxhash.Sum64(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.written[path]; ok && last == digest {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil
		}
	}

	if err := writeAtomic(path, data); err != nil {
		return zerr.With(err, "path", path)
	}
	s.written[path] = digest

	return nil
}

// Load reads the snapshot at path.
func (s *Store) Load(path string) (*domain.Build, error) {
	//nolint:gosec // Path is supplied by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, invalid(zerr.Wrap(err, domain.ErrSnapshotReadFailed.Error()), path)
	}

	return Decode(data, path)
}

// Decode parses a snapshot document. path is used for error context only.
func Decode(data []byte, path string) (*domain.Build, error) {
	var doc *document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, invalid(zerr.Wrap(err, domain.ErrSnapshotUnmarshalFailed.Error()), path)
	}

	build, err := decode(doc)
	if err != nil {
		return nil, invalid(err, path)
	}

	return build, nil
}

func invalid(err error, path string) error {
	return errors.Join(domain.ErrInvalidSnapshot, zerr.With(err, "path", path))
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error())
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error())
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error())
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error())
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error())
	}

	return nil
}
