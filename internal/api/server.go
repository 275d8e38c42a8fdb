package api

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/internal/message"
	"github.com/samcharles93/pngme/pkg/png"
)

const (
	DefaultMaxBodyBytes = 8 << 20

	mimePNG = "image/png"
)

type Config struct {
	Service *message.Service
	Logger  logger.Logger

	// DefaultType is used when a PNG request omits ?type=.
	DefaultType *png.ChunkType

	// MaxBodyBytes limits request bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

type Server struct {
	svc         *message.Service
	log         logger.Logger
	defaultType *png.ChunkType
	maxBody     int64
}

func NewServer(cfg Config) *Server {
	svc := cfg.Service
	if svc == nil {
		svc = message.NewService(message.Options{})
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return &Server{
		svc:         svc,
		log:         log.With("component", "api"),
		defaultType: cfg.DefaultType,
		maxBody:     maxBody,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.Use(withRequestID)

	// Single chunks
	e.POST("/v1/chunks", s.handleCreateChunk)
	e.POST("/v1/chunks/parse", s.handleParseChunk)

	// Whole files
	e.POST("/v1/png/encode", s.handleEncode)
	e.POST("/v1/png/decode", s.handleDecode)
	e.POST("/v1/png/remove", s.handleRemove)
	e.POST("/v1/png/chunks", s.handleListChunks)
}

func (s *Server) handleCreateChunk(c *echo.Context) error {
	body := http.MaxBytesReader(c.Response(), c.Request().Body, s.maxBody)
	req, err := decodeJSON[ChunkRequest](body)
	if err != nil {
		return writeFailure(c, err)
	}
	t, err := parseChunkType(req.Type)
	if err != nil {
		return writeFailure(c, err)
	}
	if req.Message != "" && len(req.Data) > 0 {
		return writeFailure(c, newInvalidRequest("message and data are mutually exclusive"))
	}
	payload := req.Data
	if req.Message != "" {
		payload = []byte(req.Message)
	}
	chunk := s.svc.Codec().NewChunk(t, payload)
	s.log.Debug("chunk created", "request_id", requestID(c), "type", t, "length", chunk.Length())
	return writeJSON(c, http.StatusOK, chunkResponse(chunk))
}

func (s *Server) handleParseChunk(c *echo.Context) error {
	raw, err := readBody(c, s.maxBody)
	if err != nil {
		return writeFailure(c, err)
	}
	chunk, err := s.svc.Codec().ParseChunk(raw)
	if err != nil {
		s.log.Info("chunk rejected", "request_id", requestID(c), "kind", png.KindOf(err).String())
		return writeFailure(c, err)
	}
	return writeJSON(c, http.StatusOK, chunkResponse(chunk))
}

func (s *Server) handleEncode(c *echo.Context) error {
	t, err := chunkTypeParam(c, s.defaultType)
	if err != nil {
		return writeFailure(c, err)
	}
	msg := c.QueryParam("message")
	if msg == "" {
		return writeFailure(c, newInvalidRequest("missing message"))
	}
	f, err := s.readFile(c)
	if err != nil {
		return writeFailure(c, err)
	}
	chunk, err := s.svc.Encode(f, t, msg)
	if err != nil {
		return writeFailure(c, err)
	}
	s.log.Info("message encoded", "request_id", requestID(c), "type", t, "crc", chunk.CRC())
	return writeBlob(c, http.StatusOK, mimePNG, f.Bytes())
}

func (s *Server) handleDecode(c *echo.Context) error {
	t, err := chunkTypeParam(c, s.defaultType)
	if err != nil {
		return writeFailure(c, err)
	}
	f, err := s.readFile(c)
	if err != nil {
		return writeFailure(c, err)
	}
	msg, err := s.svc.Decode(f, t)
	if err != nil {
		return writeFailure(c, err)
	}
	return writeJSON(c, http.StatusOK, MessageResponse{Type: t.String(), Message: msg})
}

func (s *Server) handleRemove(c *echo.Context) error {
	t, err := chunkTypeParam(c, s.defaultType)
	if err != nil {
		return writeFailure(c, err)
	}
	f, err := s.readFile(c)
	if err != nil {
		return writeFailure(c, err)
	}
	if _, err := s.svc.Remove(f, t); err != nil {
		// The chunk is gone even when its payload is not text.
		if png.KindOf(err) != png.KindDecode {
			return writeFailure(c, err)
		}
	}
	s.log.Info("message removed", "request_id", requestID(c), "type", t)
	return writeBlob(c, http.StatusOK, mimePNG, f.Bytes())
}

func (s *Server) handleListChunks(c *echo.Context) error {
	f, err := s.readFile(c)
	if err != nil {
		return writeFailure(c, err)
	}
	return writeJSON(c, http.StatusOK, ChunkListResponse{
		Object: "list",
		Chunks: message.Summaries(f),
	})
}

func (s *Server) readFile(c *echo.Context) (*png.File, error) {
	raw, err := readBody(c, s.maxBody)
	if err != nil {
		return nil, err
	}
	return s.svc.Codec().ParseFile(raw)
}
