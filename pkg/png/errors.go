package png

import (
	"errors"
	"fmt"
)

var (
	ErrNotAlphabetic    = errors.New("png: chunk type byte is not ASCII alphabetic")
	ErrTooShort         = errors.New("png: input too short")
	ErrTruncated        = errors.New("png: chunk truncated")
	ErrChecksumMismatch = errors.New("png: chunk checksum mismatch")
	ErrDecode           = errors.New("png: chunk data is not valid text")

	ErrInvalidSignature = errors.New("png: invalid file signature")
	ErrChunkNotFound    = errors.New("png: chunk not found")
)

// ErrorKind tags the failure carried by an *Error.
type ErrorKind uint8

const (
	KindNotAlphabetic ErrorKind = iota + 1
	KindTooShort
	KindTruncated
	KindChecksumMismatch
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotAlphabetic:
		return "not_alphabetic"
	case KindTooShort:
		return "too_short"
	case KindTruncated:
		return "truncated"
	case KindChecksumMismatch:
		return "checksum_mismatch"
	case KindDecode:
		return "decode_error"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotAlphabetic:
		return ErrNotAlphabetic
	case KindTooShort:
		return ErrTooShort
	case KindTruncated:
		return ErrTruncated
	case KindChecksumMismatch:
		return ErrChecksumMismatch
	case KindDecode:
		return ErrDecode
	default:
		return nil
	}
}

// Error is the single error type returned by the chunk codec.
// Only the fields relevant to Kind are populated.
type Error struct {
	Kind ErrorKind
	Op   string

	// NotAlphabetic: offending byte and its index in the type code.
	Byte  byte
	Index int

	// TooShort, Truncated: bytes required and bytes available.
	Need int
	Have int

	// ChecksumMismatch: declared and recomputed crc.
	Type ChunkType
	Want uint32
	Got  uint32

	// Decode: offset of the first invalid byte in the payload.
	Offset int
}

func (e *Error) Error() string {
	var detail string
	switch e.Kind {
	case KindNotAlphabetic:
		detail = fmt.Sprintf("byte %d (0x%02x) at index %d is outside A-Z and a-z", e.Byte, e.Byte, e.Index)
	case KindTooShort, KindTruncated:
		detail = fmt.Sprintf("need %d bytes, have %d", e.Need, e.Have)
	case KindChecksumMismatch:
		detail = fmt.Sprintf("chunk %s declares crc 0x%08x, computed 0x%08x", e.Type, e.Want, e.Got)
	case KindDecode:
		detail = fmt.Sprintf("invalid utf-8 at offset %d", e.Offset)
	}
	msg := "png"
	if e.Op != "" {
		msg += " " + e.Op
	}
	msg += ": " + e.Kind.String()
	if detail != "" {
		msg += ": " + detail
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// KindOf reports the ErrorKind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
