package recordstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/renameio/v2"
)

// Record is one entry of a collection: field name to submitted value.
type Record map[string]any

// Config locates a collection on disk.
type Config struct {
	Dir  string
	File string
}

// Store is a file-backed ordered list of records. Every mutation reads the
// whole file and atomically replaces it; the mutex spans the full cycle.
type Store struct {
	cfg  Config
	path string
	mu   sync.Mutex
}

// New creates a store for the given collection file. Nothing touches disk
// until the first operation.
func New(cfg Config) *Store {
	return &Store{cfg: cfg, path: filepath.Join(cfg.Dir, cfg.File)}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Name returns the collection name, i.e. the file name without extension.
func (s *Store) Name() string {
	return strings.TrimSuffix(s.cfg.File, filepath.Ext(s.cfg.File))
}

// EnsureExists creates the directory and an empty array file if either is
// missing. Existing files are left untouched.
func (s *Store) EnsureExists() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensure()
}

// ListAll returns every record in file order.
func (s *Store) ListAll() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(); err != nil {
		return nil, err
	}
	return s.read()
}

// Append adds rec to the end of the collection and returns it.
func (s *Store) Append(rec Record) (Record, error) {
	rec, _, err := s.AppendAt(rec)
	return rec, err
}

// AppendAt is Append that also reports the position rec landed at.
func (s *Store) AppendAt(rec Record) (Record, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(); err != nil {
		return nil, 0, err
	}
	recs, err := s.read()
	if err != nil {
		return nil, 0, err
	}
	recs = append(recs, rec)
	if err := s.write(recs); err != nil {
		return nil, 0, err
	}
	return rec, len(recs) - 1, nil
}

// DeleteAt removes the record at position index. Later records shift down
// by one. Out of range positions leave the file untouched.
func (s *Store) DeleteAt(index int) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(); err != nil {
		return nil, err
	}
	recs, err := s.read()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(recs) {
		return nil, &InvalidIndexError{Index: index, Len: len(recs)}
	}
	removed := recs[index]
	recs = append(recs[:index], recs[index+1:]...)
	if err := s.write(recs); err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *Store) ensure() error {
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
	if err := renameio.WriteFile(s.path, []byte("[]"), 0o644); err != nil {
		return fmt.Errorf("init %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) read() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &CorruptStoreError{Path: s.path, Err: errors.New("top-level value is not an array")}
	}
	var recs []Record
	if err := json.Unmarshal(trimmed, &recs); err != nil {
		return nil, &CorruptStoreError{Path: s.path, Err: err}
	}
	return recs, nil
}

func (s *Store) write(recs []Record) error {
	if recs == nil {
		recs = []Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	if err := renameio.WriteFile(s.path, bytes.TrimRight(buf.Bytes(), "\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
