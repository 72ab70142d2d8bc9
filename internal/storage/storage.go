package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/fourohfour/recipeshare/internal/config"
)

// Well-known keys. The layout is a flat string-to-JSON map, mirroring what
// the stores keep in memory; absence of a key means "no state yet".
const (
	KeyUser            = "user"
	KeyRegisteredUsers = "registeredUsers"
	KeyRecipes         = "recipes"
	KeySystemLogs      = "systemLogs"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Store is a string-keyed JSON blob store. Values are opaque JSON documents;
// callers own encoding and decoding.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open selects a backend from config: "file" (default), "postgres" for the
// GORM-backed table, or "memory" for throwaway state.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case "", "file":
		return OpenFile(cfg.StorageFile)
	case "postgres":
		return OpenPostgres(cfg)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
