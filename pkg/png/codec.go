package png

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
	"unicode/utf8"
)

// Chunk framing sizes. These must never change.
const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// chunkOverhead is the size of a chunk with an empty payload.
	chunkOverhead = lengthSize + typeSize + crcSize
)

// ChecksumOrder selects which bytes are fed to CRC-32, and in what order.
type ChecksumOrder uint8

const (
	// OrderTypeData checksums the type code followed by the payload.
	// This is the PNG order.
	OrderTypeData ChecksumOrder = iota

	// OrderDataType checksums the payload followed by the type code.
	// Buffers written in this order do not validate as PNG.
	OrderDataType
)

func (o ChecksumOrder) String() string {
	switch o {
	case OrderTypeData:
		return "type-data"
	case OrderDataType:
		return "data-type"
	default:
		return "unknown"
	}
}

func (o ChecksumOrder) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *ChecksumOrder) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "type-data", "png":
		*o = OrderTypeData
	case "data-type", "legacy":
		*o = OrderDataType
	default:
		return fmt.Errorf("png: unknown checksum order %q (want type-data or data-type)", text)
	}
	return nil
}

// Codec builds and parses chunks with a fixed checksum order.
// The zero value uses OrderTypeData.
type Codec struct {
	Order ChecksumOrder
}

// DefaultCodec backs the package-level functions.
var DefaultCodec = Codec{Order: OrderTypeData}

// Checksum returns the CRC-32 (ISO-HDLC) of t and data in the codec's order.
func (c Codec) Checksum(t ChunkType, data []byte) uint32 {
	code := t.code
	if c.Order == OrderDataType {
		crc := crc32.Update(0, crc32.IEEETable, data)
		return crc32.Update(crc, crc32.IEEETable, code[:])
	}
	crc := crc32.Update(0, crc32.IEEETable, code[:])
	return crc32.Update(crc, crc32.IEEETable, data)
}

// NewChunk copies data into a new chunk and computes its crc.
// It panics if data does not fit a 32-bit length.
func (c Codec) NewChunk(t ChunkType, data []byte) *Chunk {
	if uint64(len(data)) > math.MaxUint32 {
		panic("png: chunk data exceeds 32-bit length")
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Chunk{
		chunkType: t,
		data:      owned,
		length:    uint32(len(owned)),
		crc:       c.Checksum(t, owned),
	}
}

// ParseChunk parses a single serialized chunk from the start of b.
// Bytes after the chunk's crc are ignored.
func (c Codec) ParseChunk(b []byte) (*Chunk, error) {
	ch, _, err := c.ReadChunk(b)
	return ch, err
}

// ReadChunk parses the chunk at the start of b and reports how many
// bytes it occupied. No chunk is returned unless its crc verifies.
func (c Codec) ReadChunk(b []byte) (*Chunk, int, error) {
	if len(b) < chunkOverhead {
		return nil, 0, &Error{Kind: KindTooShort, Op: "parse", Need: chunkOverhead, Have: len(b)}
	}

	length := binary.BigEndian.Uint32(b[0:lengthSize])

	var code [4]byte
	copy(code[:], b[lengthSize:lengthSize+typeSize])
	t, err := ChunkTypeFromBytes(code)
	if err != nil {
		if pe, ok := err.(*Error); ok {
			pe.Op = "parse"
		}
		return nil, 0, err
	}

	// uint64 keeps the bound check from overflowing on 32-bit platforms.
	const prefix = lengthSize + typeSize
	need := uint64(prefix) + uint64(length) + crcSize
	if need > uint64(len(b)) {
		return nil, 0, &Error{Kind: KindTruncated, Op: "parse", Need: clampInt(need), Have: len(b)}
	}
	end := prefix + int(length)
	payload := b[prefix:end]
	declared := binary.BigEndian.Uint32(b[end : end+crcSize])

	if computed := c.Checksum(t, payload); computed != declared {
		return nil, 0, &Error{Kind: KindChecksumMismatch, Op: "parse", Type: t, Want: declared, Got: computed}
	}

	owned := make([]byte, len(payload))
	copy(owned, payload)
	return &Chunk{
		chunkType: t,
		data:      owned,
		length:    length,
		crc:       declared,
	}, end + crcSize, nil
}

// NewChunk creates a chunk with DefaultCodec.
func NewChunk(t ChunkType, data []byte) *Chunk {
	return DefaultCodec.NewChunk(t, data)
}

// ParseChunk parses a chunk with DefaultCodec.
func ParseChunk(b []byte) (*Chunk, error) {
	return DefaultCodec.ParseChunk(b)
}

// ReadChunk reads a chunk with DefaultCodec.
func ReadChunk(b []byte) (*Chunk, int, error) {
	return DefaultCodec.ReadChunk(b)
}

func clampInt(n uint64) int {
	if n > uint64(math.MaxInt) {
		return math.MaxInt
	}
	return int(n)
}

func decodeText(data []byte) (string, error) {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return "", &Error{Kind: KindDecode, Op: "data as text", Offset: i}
		}
		i += size
	}
	return string(data), nil
}
