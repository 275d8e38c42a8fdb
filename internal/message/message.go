// Package message hides, reveals and strips text messages carried in PNG
// chunks.
package message

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/samcharles93/pngme/pkg/png"
)

var (
	ErrNoMessage       = errors.New("no message of that chunk type")
	ErrMessageTooLarge = errors.New("message too large")
	ErrInvalidText     = errors.New("message is not valid UTF-8")
)

type Options struct {
	Codec png.Codec

	// MaxMessageBytes limits Encode. Zero means no limit beyond the 32-bit
	// chunk length.
	MaxMessageBytes int
}

type Service struct {
	opts Options
}

func NewService(opts Options) *Service {
	return &Service{opts: opts}
}

func (s *Service) Codec() png.Codec { return s.opts.Codec }

// Encode stores text in a new chunk of type t, placed before IEND.
func (s *Service) Encode(f *png.File, t png.ChunkType, text string) (*png.Chunk, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidText
	}
	if s.opts.MaxMessageBytes > 0 && len(text) > s.opts.MaxMessageBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrMessageTooLarge, len(text), s.opts.MaxMessageBytes)
	}
	c := s.opts.Codec.NewChunk(t, []byte(text))
	f.AppendBeforeEnd(c)
	return c, nil
}

// Decode returns the text of the first chunk of type t.
func (s *Service) Decode(f *png.File, t png.ChunkType) (string, error) {
	c := f.ChunkByType(t)
	if c == nil {
		return "", fmt.Errorf("%w: %s", ErrNoMessage, t)
	}
	return c.DataString()
}

// Remove strips the first chunk of type t and returns its text. The chunk
// is removed even if its payload is not valid text.
func (s *Service) Remove(f *png.File, t png.ChunkType) (string, error) {
	c, err := f.Remove(t)
	if err != nil {
		if errors.Is(err, png.ErrChunkNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNoMessage, t)
		}
		return "", err
	}
	return c.DataString()
}
