// Package png implements the PNG chunk codec and a buffer-level PNG
// container.
//
// A chunk is framed as length, type code, data and a CRC-32 over the type
// code and data. Parsing verifies the CRC and never returns a chunk whose
// declared checksum does not match. The container only frames chunks: it
// does not decode pixels, inflate data or enforce chunk ordering.
package png

import (
	"bytes"
	"fmt"
	"io"
	"slices"
)

// Signature is the 8-byte header of every PNG file.
var Signature = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

// File is a PNG signature followed by a list of chunks.
type File struct {
	chunks []*Chunk
}

func NewFile(chunks ...*Chunk) *File {
	return &File{chunks: slices.Clone(chunks)}
}

// ParseFile parses a whole PNG buffer with c. Every chunk must verify.
func (c Codec) ParseFile(b []byte) (*File, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		return nil, ErrInvalidSignature
	}

	f := &File{}
	off := len(Signature)
	for off < len(b) {
		ch, n, err := c.ReadChunk(b[off:])
		if err != nil {
			return nil, fmt.Errorf("chunk %d at offset %d: %w", len(f.chunks), off, err)
		}
		f.chunks = append(f.chunks, ch)
		off += n
	}
	return f, nil
}

// ParseFile parses a PNG buffer with DefaultCodec.
func ParseFile(b []byte) (*File, error) {
	return DefaultCodec.ParseFile(b)
}

// Chunks returns the chunks in file order.
func (f *File) Chunks() []*Chunk {
	return f.chunks
}

func (f *File) Append(c *Chunk) {
	f.chunks = append(f.chunks, c)
}

// AppendBeforeEnd inserts c before a trailing IEND chunk, or appends it
// when the file does not end with IEND.
func (f *File) AppendBeforeEnd(c *Chunk) {
	n := len(f.chunks)
	if n > 0 && f.chunks[n-1].Type() == TypeIEND {
		f.chunks = slices.Insert(f.chunks, n-1, c)
		return
	}
	f.Append(c)
}

// ChunkByType returns the first chunk of type t, or nil.
func (f *File) ChunkByType(t ChunkType) *Chunk {
	i := f.index(t)
	if i < 0 {
		return nil
	}
	return f.chunks[i]
}

func (f *File) ChunksByType(t ChunkType) []*Chunk {
	var out []*Chunk
	for _, c := range f.chunks {
		if c.Type() == t {
			out = append(out, c)
		}
	}
	return out
}

// Remove deletes and returns the first chunk of type t.
func (f *File) Remove(t ChunkType) (*Chunk, error) {
	i := f.index(t)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrChunkNotFound, t)
	}
	c := f.chunks[i]
	f.chunks = slices.Delete(f.chunks, i, i+1)
	return c, nil
}

func (f *File) index(t ChunkType) int {
	return slices.IndexFunc(f.chunks, func(c *Chunk) bool { return c.Type() == t })
}

// Size is the serialized size of the file.
func (f *File) Size() int {
	n := len(Signature)
	for _, c := range f.chunks {
		n += c.Size()
	}
	return n
}

// Bytes serializes the signature and every chunk.
func (f *File) Bytes() []byte {
	out := make([]byte, 0, f.Size())
	out = append(out, Signature[:]...)
	for _, c := range f.chunks {
		out = c.AppendBytes(out)
	}
	return out
}

func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Bytes())
	return int64(n), err
}
