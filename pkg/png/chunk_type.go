package png

import (
	"bytes"
	"fmt"
)

// propertyBit is bit 5 of a type code byte: the ASCII case bit.
const propertyBit = 1 << 5

// Well-known chunk types.
var (
	TypeIHDR = MustChunkType("IHDR")
	TypeIEND = MustChunkType("IEND")
	TypeTEXt = MustChunkType("tEXt")
)

// ChunkType is a 4-byte ASCII chunk type code. The case of each letter
// carries one property bit. The zero value is not a valid type.
type ChunkType struct {
	code [4]byte
}

// ChunkTypeFromBytes validates b and returns it as a ChunkType.
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	for i, c := range b {
		if !isAlpha(c) {
			return ChunkType{}, &Error{Kind: KindNotAlphabetic, Op: "chunk type", Byte: c, Index: i}
		}
	}
	return ChunkType{code: b}, nil
}

// ParseChunkType builds a ChunkType from the first 4 bytes of s.
// Bytes past the fourth are ignored.
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) < 4 {
		return ChunkType{}, &Error{Kind: KindTooShort, Op: "chunk type", Need: 4, Have: len(s)}
	}
	var b [4]byte
	copy(b[:], s)
	return ChunkTypeFromBytes(b)
}

// MustChunkType is like ParseChunkType but panics on error.
func MustChunkType(s string) ChunkType {
	t, err := ParseChunkType(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t ChunkType) Bytes() [4]byte { return t.code }

// IsCritical reports whether the ancillary bit (byte 0) is clear.
func (t ChunkType) IsCritical() bool { return t.code[0]&propertyBit == 0 }

// IsPublic reports whether the private bit (byte 1) is clear.
func (t ChunkType) IsPublic() bool { return t.code[1]&propertyBit == 0 }

func (t ChunkType) IsReservedBitValid() bool { return t.code[2]&propertyBit == 0 }

// IsSafeToCopy reports whether the safe-to-copy bit (byte 3) is set.
func (t ChunkType) IsSafeToCopy() bool { return t.code[3]&propertyBit != 0 }

// IsValid only checks the reserved bit. The other three bits describe
// properties, not validity.
func (t ChunkType) IsValid() bool { return t.IsReservedBitValid() }

// Compare orders chunk types by their code bytes.
func (t ChunkType) Compare(other ChunkType) int {
	return bytes.Compare(t.code[:], other.code[:])
}

func (t ChunkType) String() string { return string(t.code[:]) }

func (t ChunkType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText requires exactly four alphabetic bytes.
func (t *ChunkType) UnmarshalText(text []byte) error {
	if len(text) > 4 {
		return fmt.Errorf("png: chunk type %q is longer than 4 bytes", text)
	}
	parsed, err := ParseChunkType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func isAlpha(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}
