package png

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/sys/unix"
)

// Open reads and parses the PNG at path with DefaultCodec.
func Open(path string) (*File, error) {
	return DefaultCodec.Open(path)
}

// Open maps the file at path read-only and parses it. Chunk payloads are
// copied out, so the mapping is released before Open returns. If mmap is
// unavailable it falls back to ReadAt-based loading.
func (c Codec) Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 < int64(len(Signature)) {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidSignature)
	}
	if size64 > math.MaxInt {
		return nil, fmt.Errorf("%s: file too large", path)
	}
	size := int(size64)

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		pf, parseErr := c.ParseFile(data)
		if unmapErr := unix.Munmap(data); unmapErr != nil && parseErr == nil {
			return nil, unmapErr
		}
		return pf, parseErr
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return c.ParseFile(data)
}

// OpenReaderAt loads and parses a PNG from a random-access reader.
func (c Codec) OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	if size < 0 || size > math.MaxInt {
		return nil, fmt.Errorf("png: invalid size %d", size)
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return c.ParseFile(data)
}

// ReadFrom reads r to EOF and parses the result, reading at most limit
// bytes when limit > 0.
func (c Codec) ReadFrom(r io.Reader, limit int64) (*File, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("png: input exceeds %d bytes", limit)
	}
	return c.ParseFile(data)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}
