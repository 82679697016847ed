package ascent

import (
	"encoding/json"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Persister is the durable byte store behind the profile. It is an
// injectable port so tests can substitute an in-memory implementation.
type Persister interface {
	// Load returns the last saved bytes, or fs.ErrNotExist when nothing
	// was ever saved.
	Load() ([]byte, error)
	// Save overwrites the stored bytes wholesale.
	Save(data []byte) error
	// Reset clears the stored bytes.
	Reset() error
}

// FileStore persists to a single file on disk.
type FileStore struct {
	Path string
}

func (s *FileStore) Load() ([]byte, error) { return os.ReadFile(s.Path) }

func (s *FileStore) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o644)
}

func (s *FileStore) Reset() error {
	err := os.Remove(s.Path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemStore is an in-memory Persister for tests.
type MemStore struct {
	data []byte
}

func (s *MemStore) Load() ([]byte, error) {
	if s.data == nil {
		return nil, fs.ErrNotExist
	}
	return s.data, nil
}

func (s *MemStore) Save(data []byte) error {
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *MemStore) Reset() error {
	s.data = nil
	return nil
}

// ProfileStore loads and saves the profile through a Persister. There is a
// single writer; writes are last-write-wins.
type ProfileStore struct {
	p Persister
}

// NewProfileStore returns a store backed by the given persister.
func NewProfileStore(p Persister) *ProfileStore {
	return &ProfileStore{p: p}
}

// Load returns the last persisted profile. A missing or malformed stored
// profile is recovered by falling back to the default: persistence failures
// are never fatal.
func (s *ProfileStore) Load() *Profile {
	data, err := s.p.Load()
	if err != nil {
		return DefaultProfile()
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("warning: stored profile is malformed, starting fresh: %v", err)
		return DefaultProfile()
	}
	return &p
}

// Save persists the profile wholesale.
func (s *ProfileStore) Save(p *Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return s.p.Save(data)
}

// Reset clears the persisted profile; the next Load starts from defaults.
func (s *ProfileStore) Reset() error { return s.p.Reset() }
