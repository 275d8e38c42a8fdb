package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/pngme/pkg/png"
)

func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return writeBlob(c, status, echo.MIMEApplicationJSON, b)
}

func writeBlob(c *echo.Context, status int, contentType string, b []byte) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, contentType)
	res.Header().Set(echo.HeaderContentLength, strconv.Itoa(len(b)))
	res.WriteHeader(status)
	_, err := res.Write(b)
	return err
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return out, err
		}
		return out, newInvalidRequest("invalid JSON body: " + err.Error())
	}
	return out, nil
}

// readBody reads the request body up to limit bytes.
func readBody(c *echo.Context, limit int64) ([]byte, error) {
	req := c.Request()
	body := http.MaxBytesReader(c.Response(), req.Body, limit)
	return io.ReadAll(body)
}

func chunkTypeParam(c *echo.Context, fallback *png.ChunkType) (png.ChunkType, error) {
	raw := c.QueryParam("type")
	if raw == "" {
		if fallback != nil {
			return *fallback, nil
		}
		return png.ChunkType{}, newInvalidRequest("missing chunk type")
	}
	return parseChunkType(raw)
}

func parseChunkType(raw string) (png.ChunkType, error) {
	if len(raw) != 4 {
		return png.ChunkType{}, newInvalidRequest("chunk type must be exactly 4 characters")
	}
	return png.ParseChunkType(raw)
}

func requestID(c *echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// withRequestID keeps a client supplied X-Request-ID or assigns a new one.
func withRequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		id := c.Request().Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Response().Header().Set(echo.HeaderXRequestID, id)
		return next(c)
	}
}
