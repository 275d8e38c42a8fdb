package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/pngme/internal/message"
	"github.com/samcharles93/pngme/pkg/png"
)

var ErrInvalidRequest = errors.New("invalid_request")

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}

// writeFailure maps err onto a status code and error envelope.
func writeFailure(c *echo.Context, err error) error {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error", err.Error(), "body_too_large")
	case errors.Is(err, ErrInvalidRequest):
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "")
	case errors.Is(err, message.ErrNoMessage):
		return writeError(c, http.StatusNotFound, "not_found_error", err.Error(), "no_message")
	case errors.Is(err, message.ErrMessageTooLarge):
		return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error", err.Error(), "message_too_large")
	case errors.Is(err, message.ErrInvalidText):
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "invalid_text")
	case errors.Is(err, png.ErrInvalidSignature):
		return writeError(c, http.StatusBadRequest, "format_error", err.Error(), "invalid_signature")
	}
	if kind := png.KindOf(err); kind != 0 {
		return writeError(c, http.StatusBadRequest, "format_error", err.Error(), kind.String())
	}
	return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "")
}

func writeError(c *echo.Context, status int, errType, msg, code string) error {
	return writeJSON(c, status, errorEnvelope{Error: ResponseError{
		Message: msg,
		Type:    errType,
		Code:    code,
	}})
}
