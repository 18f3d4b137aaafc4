package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// FileStore keeps the catalog as a JSON array in a single file.
// Add is a full read-modify-write that truncates the file, so readers share
// mu with it. mu only covers one process.
type FileStore struct {
	fs   afero.Fs
	path string
	mu   sync.RWMutex
}

func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) List(ctx context.Context) ([]Product, error) {
	return s.read()
}

func (s *FileStore) Get(ctx context.Context, id int) (Product, error) {
	products, err := s.read()
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, notFound(id)
}

func (s *FileStore) Add(ctx context.Context, in NewProduct) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load()
	if err != nil {
		return Product{}, err
	}

	created := Product{
		ID:       NextID(products),
		Name:     in.Name,
		Price:    in.Price,
		Category: in.Category,
		InStock:  in.InStock,
	}
	products = append(products, created)
	if err := s.save(products); err != nil {
		return Product{}, err
	}
	return created, nil
}

func (s *FileStore) Stats(ctx context.Context) (Stats, error) {
	products, err := s.read()
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(products), nil
}

// read loads under the read lock. The first read may create the file, which
// is harmless since ensure never overwrites an existing one.
func (s *FileStore) read() ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

func (s *FileStore) ensure() error {
	if _, err := s.fs.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat catalog file: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog dir: %w", err)
		}
	}
	if err := afero.WriteFile(s.fs, s.path, []byte("[]"), 0o644); err != nil {
		return fmt.Errorf("create catalog file: %w", err)
	}
	return nil
}

func (s *FileStore) load() ([]Product, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	raw, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []Product{}, nil
	}

	products := []Product{}
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", s.path, err)
	}
	return products, nil
}

func (s *FileStore) save(products []Product) error {
	if err := s.ensure(); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if err := afero.WriteFile(s.fs, s.path, bytes.TrimRight(buf.Bytes(), "\n"), 0o644); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}
	return nil
}
