// Package store keeps saved world files under names ("slots").
package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/voxelsplace/voxland/voxel"
)

// Store holds named byte blobs. Get and Delete of a missing name return an
// error wrapping voxel.ErrNotFound.
type Store interface {
	Put(name string, data []byte) error
	Get(name string) ([]byte, error)
	Delete(name string) error
	// List returns all names in lexical order.
	List() ([]string, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendDir    = "dir"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// Open opens a store of the given backend at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendDir, "":
		return OpenDir(path)
	case BackendBadger:
		return OpenBadger(path)
	case BackendSQLite:
		return OpenSQLite(path)
	}
	return nil, fmt.Errorf("unknown store backend %q", backend)
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("invalid slot name %q", name)
	}
	return nil
}

func notFound(name string) error {
	return fmt.Errorf("slot %q: %w", name, voxel.ErrNotFound)
}
