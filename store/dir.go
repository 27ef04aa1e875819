package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/voxelsplace/voxland/voxel"
)

// DirStore keeps each slot as a file in one directory.
type DirStore struct {
	dir string
}

func OpenDir(dir string) (*DirStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", voxel.ErrIO, err)
	}
	return &DirStore{dir: dir}, nil
}

func (s *DirStore) Path(name string) string { return filepath.Join(s.dir, name) }

// Put writes through a temporary file so a failed write never truncates an
// existing slot.
func (s *DirStore) Put(name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+name+".tmp*")
	if err != nil {
		return fmt.Errorf("save %s: %w: %v", name, voxel.ErrIO, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w: %v", name, voxel.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w: %v", name, voxel.ErrIO, err)
	}
	if err := os.Rename(tmp.Name(), s.Path(name)); err != nil {
		return fmt.Errorf("save %s: %w: %v", name, voxel.ErrIO, err)
	}
	return nil
}

func (s *DirStore) Get(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w: %v", name, voxel.ErrIO, err)
	}
	return b, nil
}

func (s *DirStore) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	err := os.Remove(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return notFound(name)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w: %v", name, voxel.ErrIO, err)
	}
	return nil
}

func (s *DirStore) List() ([]string, error) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", voxel.ErrIO, err)
	}
	var names []string
	for _, e := range ents {
		if e.Type().IsRegular() && e.Name()[0] != '.' {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *DirStore) Close() error { return nil }
