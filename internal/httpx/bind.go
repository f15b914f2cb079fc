// Package httpx – request binding.
//
// This file enforces the request-body contract during deserialization:
// POST bodies must declare an application/json content type, and malformed
// JSON is reported as a schema validation failure, never as an internal
// error.
package httpx

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// allowedJSONContentTypes are the content types accepted for JSON bodies.
var allowedJSONContentTypes = map[string]struct{}{
	"application/json":                {},
	"application/json; charset=utf-8": {},
}

// BindJSON deserializes the request body into dst.
//
// POST requests must carry an allowed JSON content type (matched
// case-insensitively); anything else fails with ErrSchemaValidation before
// the body is read. Decoding failures also map to ErrSchemaValidation.
// Pass the returned error to Error to produce the client envelope.
func BindJSON(c *gin.Context, dst any) error {
	if c.Request.Method == http.MethodPost {
		ct := strings.ToLower(c.ContentType())
		if ct != "" {
			// ContentType() strips parameters; re-check the raw header
			// so "application/json; charset=utf-8" stays allowed and
			// anything else is refused.
			ct = strings.ToLower(strings.TrimSpace(c.GetHeader("Content-Type")))
		}
		if _, ok := allowedJSONContentTypes[ct]; !ok {
			return ErrSchemaValidation
		}
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		return ErrSchemaValidation
	}
	return nil
}
