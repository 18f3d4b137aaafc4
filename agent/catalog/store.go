package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnknownBackend  = errors.New("unknown catalog backend")
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"

	defaultPath = "data/products.json"
)

// Store is the persistence contract used by the tool layer.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (Product, error)
	Add(ctx context.Context, in NewProduct) (Product, error)
	Stats(ctx context.Context) (Stats, error)
}

type Config struct {
	Backend string `split_words:"true" default:"file"`
	Path    string `split_words:"true" default:"data/products.json"`
	DSN     string `envconfig:"DSN"`
}

// Open builds the store selected by cfg.Backend. fs is only used by the file backend.
func Open(ctx context.Context, cfg Config, fs afero.Fs) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendFile:
		path := strings.TrimSpace(cfg.Path)
		if path == "" {
			path = defaultPath
		}
		if fs == nil {
			fs = afero.NewOsFs()
		}
		return NewFileStore(fs, path), nil
	case BackendPostgres:
		store, err := OpenPostgresStore(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

func notFound(id int) error {
	return fmt.Errorf("%w: id=%d", ErrProductNotFound, id)
}
