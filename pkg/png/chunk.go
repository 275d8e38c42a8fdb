package png

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Chunk is one length/type/data/crc record. A Chunk owns its payload and
// is immutable after construction.
//
// Wire layout, all integers big-endian:
//
//	length (4) | type (4) | data (length) | crc (4)
type Chunk struct {
	chunkType ChunkType
	data      []byte
	length    uint32
	crc       uint32
}

func (c *Chunk) Length() uint32 { return c.length }

func (c *Chunk) Type() ChunkType { return c.chunkType }

// Data returns the payload. The slice is owned by the chunk and must not
// be modified.
func (c *Chunk) Data() []byte { return c.data }

func (c *Chunk) CRC() uint32 { return c.crc }

// DataString returns the payload as text. It fails with KindDecode if the
// payload is not valid UTF-8.
func (c *Chunk) DataString() (string, error) {
	return decodeText(c.data)
}

// Size is the serialized size of the chunk.
func (c *Chunk) Size() int {
	return chunkOverhead + len(c.data)
}

// Bytes serializes the chunk.
func (c *Chunk) Bytes() []byte {
	return c.AppendBytes(make([]byte, 0, c.Size()))
}

// AppendBytes appends the serialized chunk to dst.
func (c *Chunk) AppendBytes(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, c.length)
	dst = append(dst, c.chunkType.code[:]...)
	dst = append(dst, c.data...)
	return binary.BigEndian.AppendUint32(dst, c.crc)
}

// WriteTo writes the serialized chunk to w.
func (c *Chunk) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.Bytes())
	return int64(n), err
}

func (c *Chunk) String() string {
	return fmt.Sprintf("%s len=%d crc=0x%08x", c.chunkType, c.length, c.crc)
}
