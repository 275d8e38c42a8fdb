package api

import (
	"github.com/samcharles93/pngme/internal/message"
	"github.com/samcharles93/pngme/pkg/png"
)

type ChunkRequest struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Data    []byte `json:"data,omitempty"`
}

type ChunkResponse struct {
	Type             string `json:"type"`
	Length           uint32 `json:"length"`
	CRC              uint32 `json:"crc"`
	Bytes            []byte `json:"bytes"`
	Critical         bool   `json:"critical"`
	Public           bool   `json:"public"`
	ReservedBitValid bool   `json:"reserved_bit_valid"`
	SafeToCopy       bool   `json:"safe_to_copy"`
	Valid            bool   `json:"valid"`
	Text             string `json:"text,omitempty"`
}

type MessageResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type ChunkListResponse struct {
	Object string            `json:"object"`
	Chunks []message.Summary `json:"chunks"`
}

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error ResponseError `json:"error"`
}

func chunkResponse(c *png.Chunk) ChunkResponse {
	t := c.Type()
	resp := ChunkResponse{
		Type:             t.String(),
		Length:           c.Length(),
		CRC:              c.CRC(),
		Bytes:            c.Bytes(),
		Critical:         t.IsCritical(),
		Public:           t.IsPublic(),
		ReservedBitValid: t.IsReservedBitValid(),
		SafeToCopy:       t.IsSafeToCopy(),
		Valid:            t.IsValid(),
	}
	if text, err := c.DataString(); err == nil {
		resp.Text = text
	}
	return resp
}
