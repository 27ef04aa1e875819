package codec

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/voxelsplace/voxland/voxel"
)

// World file layout, little-endian:
//
//	"VXLW" | ver u8 | comp u8 | xxhash64(body) u64 | body (compressed per comp)
//	body = count uvarint | count * (x,y,z int32 | r,g,b,a float32)

const (
	magic      = "VXLW"
	Version    = 1
	headerSize = 4 + 1 + 1 + 8
	recordSize = 3*4 + 4*4
)

// Compression selects how the body is stored.
type Compression uint8

const (
	CompNone Compression = 0
	CompZlib Compression = 1
	CompZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZlib:
		return "zlib"
	case CompZstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression accepts "none", "zlib" or "zstd".
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none", "":
		return CompNone, nil
	case "zlib":
		return CompZlib, nil
	case "zstd":
		return CompZstd, nil
	}
	return 0, fmt.Errorf("unknown compression %q", s)
}

// Header is the fixed part of a world file plus the decoded block count.
type Header struct {
	Version     uint8
	Compression Compression
	Checksum    uint64
	Blocks      int
}

// Encode writes blocks in Z-order. The input slice is not modified.
func Encode(w io.Writer, blocks []voxel.Block, comp Compression) error {
	sorted := append([]voxel.Block(nil), blocks...)
	sortZOrder(sorted)

	body := make([]byte, 0, binary.MaxVarintLen64+len(sorted)*recordSize)
	body = binary.AppendUvarint(body, uint64(len(sorted)))
	for _, b := range sorted {
		for _, v := range [3]int{b.Pos.X, b.Pos.Y, b.Pos.Z} {
			if v < math.MinInt32 || v > math.MaxInt32 {
				return fmt.Errorf("coordinate %v out of range", b.Pos)
			}
			body = binary.LittleEndian.AppendUint32(body, uint32(int32(v)))
		}
		for _, v := range b.Color.RGBA() {
			body = binary.LittleEndian.AppendUint32(body, math.Float32bits(v))
		}
	}

	payload, err := compress(body, comp)
	if err != nil {
		return err
	}
	var hdr [headerSize]byte
	copy(hdr[:4], magic)
	hdr[4] = Version
	hdr[5] = uint8(comp)
	binary.LittleEndian.PutUint64(hdr[6:], xxhash.Sum64(body))
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("write header: %w: %v", voxel.ErrIO, err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write body: %w: %v", voxel.ErrIO, err)
	}
	return nil
}

// EncodeBytes is Encode into memory.
func EncodeBytes(blocks []voxel.Block, comp Compression) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, blocks, comp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a world file. Returned blocks carry no handle.
func Decode(r io.Reader) ([]voxel.Block, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read world: %w: %v", voxel.ErrIO, err)
	}
	_, blocks, err := DecodeBytes(data)
	return blocks, err
}

// DecodeBytes parses a world file held in memory.
func DecodeBytes(data []byte) (Header, []voxel.Block, error) {
	hdr, body, err := parseHeader(data)
	if err != nil {
		return hdr, nil, err
	}
	n, pos := binary.Uvarint(body)
	if pos <= 0 {
		return hdr, nil, corrupt("bad block count")
	}
	if rest := uint64(len(body) - pos); n > rest/recordSize || rest != n*recordSize {
		return hdr, nil, corrupt("%d blocks do not fit %d bytes", n, rest)
	}
	blocks := make([]voxel.Block, n)
	for i := range blocks {
		rec := body[pos : pos+recordSize]
		pos += recordSize
		blocks[i].Pos = voxel.Coord{
			X: int(int32(binary.LittleEndian.Uint32(rec[0:]))),
			Y: int(int32(binary.LittleEndian.Uint32(rec[4:]))),
			Z: int(int32(binary.LittleEndian.Uint32(rec[8:]))),
		}
		blocks[i].Color = voxel.Color{
			R: math.Float32frombits(binary.LittleEndian.Uint32(rec[12:])),
			G: math.Float32frombits(binary.LittleEndian.Uint32(rec[16:])),
			B: math.Float32frombits(binary.LittleEndian.Uint32(rec[20:])),
			A: math.Float32frombits(binary.LittleEndian.Uint32(rec[24:])),
		}
	}
	hdr.Blocks = int(n)
	return hdr, blocks, nil
}

// Info reads and validates a world file, returning its header.
func Info(r io.Reader) (Header, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Header{}, fmt.Errorf("read world: %w: %v", voxel.ErrIO, err)
	}
	hdr, _, err := DecodeBytes(data)
	return hdr, err
}

func parseHeader(data []byte) (Header, []byte, error) {
	var hdr Header
	if len(data) < headerSize || string(data[:4]) != magic {
		return hdr, nil, corrupt("not a world file")
	}
	hdr.Version = data[4]
	if hdr.Version != Version {
		return hdr, nil, corrupt("unsupported version %d", hdr.Version)
	}
	hdr.Compression = Compression(data[5])
	hdr.Checksum = binary.LittleEndian.Uint64(data[6:])
	body, err := decompress(data[headerSize:], hdr.Compression)
	if err != nil {
		return hdr, nil, err
	}
	if sum := xxhash.Sum64(body); sum != hdr.Checksum {
		return hdr, nil, corrupt("checksum mismatch (want %016x, got %016x)", hdr.Checksum, sum)
	}
	return hdr, body, nil
}

func compress(b []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompNone:
		return b, nil
	case CompZlib:
		var buf bytes.Buffer
		zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if _, err := zw.Write(b); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(b, nil), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %d", comp)
	}
}

func decompress(b []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompNone:
		return b, nil
	case CompZlib:
		zr, err := zlib.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, corrupt("zlib: %v", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, corrupt("zlib: %v", err)
		}
		return out, nil
	case CompZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(b, nil)
		if err != nil {
			return nil, corrupt("zstd: %v", err)
		}
		return out, nil
	default:
		return nil, corrupt("unknown compression %d", comp)
	}
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", voxel.ErrCorruptData, fmt.Sprintf(format, args...))
}
