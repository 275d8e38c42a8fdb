package message

import (
	"strings"
	"unicode"

	"github.com/samcharles93/pngme/pkg/png"
)

// Summary describes one chunk for listings.
type Summary struct {
	Index            int           `json:"index"`
	Type             png.ChunkType `json:"type"`
	Length           uint32        `json:"length"`
	CRC              uint32        `json:"crc"`
	Critical         bool          `json:"critical"`
	Public           bool          `json:"public"`
	ReservedBitValid bool          `json:"reserved_bit_valid"`
	SafeToCopy       bool          `json:"safe_to_copy"`
	Text             string        `json:"text,omitempty"`
}

// Summarize describes c. Text is filled only for short payloads that are
// printable UTF-8.
func Summarize(i int, c *png.Chunk) Summary {
	t := c.Type()
	s := Summary{
		Index:            i,
		Type:             t,
		Length:           c.Length(),
		CRC:              c.CRC(),
		Critical:         t.IsCritical(),
		Public:           t.IsPublic(),
		ReservedBitValid: t.IsReservedBitValid(),
		SafeToCopy:       t.IsSafeToCopy(),
	}
	if c.Length() > 0 && c.Length() <= previewLimit {
		if text, err := c.DataString(); err == nil && printable(text) {
			s.Text = text
		}
	}
	return s
}

const previewLimit = 256

func Summaries(f *png.File) []Summary {
	chunks := f.Chunks()
	out := make([]Summary, len(chunks))
	for i, c := range chunks {
		out[i] = Summarize(i, c)
	}
	return out
}

func printable(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsPrint(r) && !unicode.IsSpace(r)
	}) < 0
}
