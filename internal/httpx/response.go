// Package httpx – response helpers.
//
// This file defines the standard response envelope used across all
// endpoints of the embedding services. All error responses carry the
// numeric error code and a whitelisted message; success responses are
// plain JSON bodies. Server-side failures are logged with the original
// error before the sanitized envelope is written.
package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorBody is the standard error envelope returned by all endpoints.
//
// Fields:
//   - ErrorCode: stable numeric code from the taxonomy in errors.go.
//   - Message: human-readable description, safe for display to users.
type ErrorBody struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
}

// JSON writes a success JSON response with the given status code. A nil
// body yields an empty response rather than the JSON literal "null".
func JSON(c *gin.Context, status int, body any) {
	if body == nil {
		c.Status(status)
		return
	}
	c.JSON(status, body)
}

// Error resolves err through FromError and aborts the request with the
// matching envelope. Unexpected (5xx) failures are logged with the
// original error; the client only ever sees the sanitized message.
func Error(c *gin.Context, err error) {
	api := FromError(err)
	if api.Status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Int("status", api.Status).
			Int("error_code", api.Code).
			Str("path", c.Request.URL.Path).
			Msg("api error")
	}
	c.AbortWithStatusJSON(api.Status, ErrorBody{ErrorCode: api.Code, Message: api.Message})
}
