package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/voxelsplace/voxland/store"
	"github.com/voxelsplace/voxland/voxel"
)

// SaveBinary writes every block of w.
func SaveBinary(dst io.Writer, w *voxel.World, comp Compression) error {
	return Encode(dst, w.Blocks(), comp)
}

// LoadBinary replaces the contents of w with the world read from src. The
// stream is decoded completely before w is touched and the swap is atomic
// with respect to other World calls; on any failure w is left empty.
func LoadBinary(src io.Reader, w *voxel.World) error {
	blocks, err := Decode(src)
	if err != nil {
		return clearOnError(w, err)
	}
	return w.Replace(blocks)
}

func loadBytes(data []byte, w *voxel.World) error {
	_, blocks, err := DecodeBytes(data)
	if err != nil {
		return clearOnError(w, err)
	}
	return w.Replace(blocks)
}

func clearOnError(w *voxel.World, err error) error {
	if cerr := w.Clear(); cerr != nil {
		return errors.Join(err, cerr)
	}
	return err
}

// SaveFile writes w to path, replacing the file.
func SaveFile(path string, w *voxel.World, comp Compression) error {
	data, err := EncodeBytes(w.Blocks(), comp)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w: %v", path, voxel.ErrIO, err)
	}
	return nil
}

// LoadFile loads path into w. A missing file leaves w empty and returns
// voxel.ErrNotFound.
func LoadFile(path string, w *voxel.World) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return clearOnError(w, fmt.Errorf("load %s: %w", path, voxel.ErrNotFound))
	}
	if err != nil {
		return clearOnError(w, fmt.Errorf("load %s: %w: %v", path, voxel.ErrIO, err))
	}
	return loadBytes(data, w)
}

// Save writes w into slot name of st.
func Save(st store.Store, name string, w *voxel.World, comp Compression) error {
	var buf bytes.Buffer
	if err := SaveBinary(&buf, w, comp); err != nil {
		return err
	}
	return st.Put(name, buf.Bytes())
}

// Load reads slot name of st into w, with LoadFile's failure policy.
func Load(st store.Store, name string, w *voxel.World) error {
	data, err := st.Get(name)
	if err != nil {
		return clearOnError(w, err)
	}
	return loadBytes(data, w)
}
