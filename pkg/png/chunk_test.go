package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

const (
	testMessage = "This is where your secret message will be!"
	testCRC     = uint32(2882656334)
)

func testChunkBytes(crc uint32) []byte {
	b := binary.BigEndian.AppendUint32(nil, uint32(len(testMessage)))
	b = append(b, "RuSt"...)
	b = append(b, testMessage...)
	return binary.BigEndian.AppendUint32(b, crc)
}

func testChunk(t *testing.T) *Chunk {
	t.Helper()
	c, err := ParseChunk(testChunkBytes(testCRC))
	if err != nil {
		t.Fatalf("parse chunk: %v", err)
	}
	return c
}

func TestNewChunk(t *testing.T) {
	t.Parallel()

	c := NewChunk(MustChunkType("RuSt"), []byte(testMessage))
	if c.Length() != 42 {
		t.Fatalf("length: got %d want 42", c.Length())
	}
	if c.CRC() != testCRC {
		t.Fatalf("crc: got %d want %d", c.CRC(), testCRC)
	}
	if c.Type().String() != "RuSt" {
		t.Fatalf("type: got %q", c.Type())
	}
}

func TestNewChunkOwnsData(t *testing.T) {
	t.Parallel()

	payload := []byte("mutable")
	c := NewChunk(MustChunkType("RuSt"), payload)
	payload[0] = 'M'
	if string(c.Data()) != "mutable" {
		t.Fatalf("chunk shares caller buffer: %q", c.Data())
	}
}

func TestParseChunkValid(t *testing.T) {
	t.Parallel()

	c := testChunk(t)
	if c.Length() != 42 {
		t.Fatalf("length: got %d want 42", c.Length())
	}
	if c.Type().String() != "RuSt" {
		t.Fatalf("type: got %q want RuSt", c.Type())
	}
	s, err := c.DataString()
	if err != nil {
		t.Fatalf("data string: %v", err)
	}
	if s != testMessage {
		t.Fatalf("data string: got %q", s)
	}
	if c.CRC() != testCRC {
		t.Fatalf("crc: got %d want %d", c.CRC(), testCRC)
	}
}

func TestSerializeLayout(t *testing.T) {
	t.Parallel()

	c := NewChunk(MustChunkType("RuSt"), []byte(testMessage))
	got := c.Bytes()
	want := testChunkBytes(testCRC)
	if !bytes.Equal(got, want) {
		t.Fatalf("serialized bytes mismatch:\n got %x\nwant %x", got, want)
	}
	if len(got) != 12+42 {
		t.Fatalf("size: got %d want %d", len(got), 12+42)
	}
	if c.Size() != len(got) {
		t.Fatalf("Size() = %d, len(Bytes()) = %d", c.Size(), len(got))
	}

	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	if err != nil {
		t.Fatalf("write to: %v", err)
	}
	if n != int64(len(want)) || !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("write to: wrote %d bytes %x", n, buf.Bytes())
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	payloads := [][]byte{
		nil,
		{},
		{0},
		[]byte(testMessage),
		bytes.Repeat([]byte{0xff, 0x00, 0x7f}, 1000),
	}
	for _, codec := range []Codec{{Order: OrderTypeData}, {Order: OrderDataType}} {
		for _, code := range []string{"RuSt", "IHDR", "tEXt", "zzzz"} {
			for _, p := range payloads {
				orig := codec.NewChunk(MustChunkType(code), p)
				parsed, err := codec.ParseChunk(orig.Bytes())
				if err != nil {
					t.Fatalf("%s/%s len %d: parse: %v", codec.Order, code, len(p), err)
				}
				if parsed.Type() != orig.Type() {
					t.Fatalf("type: got %s want %s", parsed.Type(), orig.Type())
				}
				if parsed.Length() != orig.Length() || parsed.CRC() != orig.CRC() {
					t.Fatalf("got len=%d crc=%d want len=%d crc=%d",
						parsed.Length(), parsed.CRC(), orig.Length(), orig.CRC())
				}
				if !bytes.Equal(parsed.Data(), orig.Data()) {
					t.Fatalf("data mismatch for %s len %d", code, len(p))
				}
			}
		}
	}
}

func TestChecksumOrder(t *testing.T) {
	t.Parallel()

	ct := MustChunkType("RuSt")
	if got := (Codec{Order: OrderTypeData}).Checksum(ct, []byte(testMessage)); got != 2882656334 {
		t.Fatalf("type-data crc: got %d", got)
	}
	if got := (Codec{Order: OrderDataType}).Checksum(ct, []byte(testMessage)); got != 3492869447 {
		t.Fatalf("data-type crc: got %d", got)
	}
	if got := DefaultCodec.Checksum(TypeIEND, nil); got != 2923585666 {
		t.Fatalf("IEND crc: got %d want 2923585666", got)
	}

	// A buffer written in one order must not verify in the other.
	legacy := Codec{Order: OrderDataType}.NewChunk(ct, []byte(testMessage)).Bytes()
	if _, err := ParseChunk(legacy); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected checksum mismatch across orders, got %v", err)
	}
}

func TestChecksumOrderText(t *testing.T) {
	t.Parallel()

	var o ChecksumOrder
	if err := o.UnmarshalText([]byte("data-type")); err != nil || o != OrderDataType {
		t.Fatalf("data-type: got %v err=%v", o, err)
	}
	if err := o.UnmarshalText([]byte("png")); err != nil || o != OrderTypeData {
		t.Fatalf("png: got %v err=%v", o, err)
	}
	if err := o.UnmarshalText([]byte("sideways")); err == nil {
		t.Fatalf("expected error for unknown order")
	}
}

func TestChecksumSensitivity(t *testing.T) {
	t.Parallel()

	ct := MustChunkType("RuSt")
	base := NewChunk(ct, []byte(testMessage)).CRC()
	if again := NewChunk(ct, []byte(testMessage)).CRC(); again != base {
		t.Fatalf("crc not deterministic: %d vs %d", base, again)
	}

	for i := range len(testMessage) {
		for bit := range 8 {
			p := []byte(testMessage)
			p[i] ^= 1 << bit
			if NewChunk(ct, p).CRC() == base {
				t.Fatalf("flipping bit %d of byte %d did not change crc", bit, i)
			}
		}
	}
	if NewChunk(MustChunkType("RuSs"), []byte(testMessage)).CRC() == base {
		t.Fatalf("changing type did not change crc")
	}
}

func TestParseChunkChecksumMismatch(t *testing.T) {
	t.Parallel()

	_, err := ParseChunk(testChunkBytes(2882656333))
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if pe.Want != 2882656333 || pe.Got != testCRC {
		t.Fatalf("got want=%d got=%d", pe.Want, pe.Got)
	}
	if !strings.Contains(err.Error(), "checksum_mismatch") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestParseChunkTamperedCRCBytes(t *testing.T) {
	t.Parallel()

	good := testChunkBytes(testCRC)
	for i := len(good) - crcSize; i < len(good); i++ {
		b := bytes.Clone(good)
		b[i]--
		c, err := ParseChunk(b)
		if KindOf(err) != KindChecksumMismatch {
			t.Fatalf("byte %d: expected checksum mismatch, got %v", i, err)
		}
		if c != nil {
			t.Fatalf("byte %d: chunk returned on mismatch", i)
		}
	}
}

func TestParseChunkTamperedPayload(t *testing.T) {
	t.Parallel()

	b := testChunkBytes(testCRC)
	b[10] ^= 0x01
	if _, err := ParseChunk(b); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestParseChunkTooShort(t *testing.T) {
	t.Parallel()

	good := testChunkBytes(testCRC)
	for n := range 12 {
		c, err := ParseChunk(good[:n])
		if !errors.Is(err, ErrTooShort) {
			t.Fatalf("len %d: expected ErrTooShort, got %v", n, err)
		}
		if c != nil {
			t.Fatalf("len %d: chunk returned on error", n)
		}
	}
	// Content does not matter below the minimum size.
	if _, err := ParseChunk([]byte("RuStRuStRuS")); !errors.Is(err, ErrTooShort) {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
}

func TestParseChunkTruncated(t *testing.T) {
	t.Parallel()

	good := testChunkBytes(testCRC)
	for _, n := range []int{12, 20, len(good) - 1} {
		_, err := ParseChunk(good[:n])
		if !errors.Is(err, ErrTruncated) {
			t.Fatalf("len %d: expected ErrTruncated, got %v", n, err)
		}
	}

	huge := []byte{0xff, 0xff, 0xff, 0xff, 'R', 'u', 'S', 't', 0, 0, 0, 0}
	_, err := ParseChunk(huge)
	var pe *Error
	if !errors.As(err, &pe) || pe.Kind != KindTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}
	if pe.Need <= pe.Have {
		t.Fatalf("need=%d have=%d", pe.Need, pe.Have)
	}
}

func TestParseChunkBadType(t *testing.T) {
	t.Parallel()

	b := testChunkBytes(testCRC)
	b[6] = '1'
	_, err := ParseChunk(b)
	if !errors.Is(err, ErrNotAlphabetic) {
		t.Fatalf("expected ErrNotAlphabetic, got %v", err)
	}
}

func TestReadChunkConsumed(t *testing.T) {
	t.Parallel()

	first := NewChunk(MustChunkType("RuSt"), []byte("one"))
	second := NewChunk(MustChunkType("ruSt"), []byte("two!"))
	buf := second.AppendBytes(first.Bytes())

	c, n, err := ReadChunk(buf)
	if err != nil {
		t.Fatalf("read first: %v", err)
	}
	if n != first.Size() || string(c.Data()) != "one" {
		t.Fatalf("first: consumed %d data %q", n, c.Data())
	}
	c, m, err := ReadChunk(buf[n:])
	if err != nil {
		t.Fatalf("read second: %v", err)
	}
	if m != second.Size() || c.Type().String() != "ruSt" {
		t.Fatalf("second: consumed %d type %s", m, c.Type())
	}
}

func TestDataStringInvalidUTF8(t *testing.T) {
	t.Parallel()

	c := NewChunk(MustChunkType("RuSt"), []byte{'o', 'k', 0xff, 0xfe})
	_, err := c.DataString()
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	var pe *Error
	if !errors.As(err, &pe) || pe.Offset != 2 {
		t.Fatalf("expected offset 2, got %+v", pe)
	}

	// Decoding failure is independent of parsing.
	if _, err := ParseChunk(c.Bytes()); err != nil {
		t.Fatalf("parse: %v", err)
	}

	ok := NewChunk(MustChunkType("RuSt"), []byte("héllo �"))
	if s, err := ok.DataString(); err != nil || s != "héllo �" {
		t.Fatalf("got %q err=%v", s, err)
	}
}

func TestAccessorsIdempotent(t *testing.T) {
	t.Parallel()

	c := testChunk(t)
	for range 3 {
		if c.Length() != 42 || c.CRC() != testCRC || c.Type().String() != "RuSt" {
			t.Fatalf("accessor changed: len=%d crc=%d type=%s", c.Length(), c.CRC(), c.Type())
		}
		if string(c.Data()) != testMessage {
			t.Fatalf("data changed: %q", c.Data())
		}
	}
}

func TestChunkString(t *testing.T) {
	t.Parallel()

	got := testChunk(t).String()
	if got != "RuSt len=42 crc=0xabd1d84e" {
		t.Fatalf("string: got %q", got)
	}
}
