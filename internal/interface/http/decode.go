package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/karanshah229/taskapp/internal/application"
	"github.com/karanshah229/taskapp/pkg/validation"
)

// decodeStrict decodes the JSON body into dst and rejects keys dst does not declare.
func decodeStrict(c *gin.Context, dst any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	return nil
}

// decodeLenient decodes the JSON body and ignores unknown keys.
func decodeLenient(c *gin.Context, dst any) error {
	if err := json.NewDecoder(c.Request.Body).Decode(dst); err != nil {
		return decodeError(err)
	}
	return nil
}

func decodeError(err error) error {
	if errors.Is(err, io.EOF) {
		return &application.ValidationError{Field: "payload", Reason: "is required"}
	}
	// encoding/json reports unknown keys only through the message text.
	if key, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return application.InvalidUpdate(strings.Trim(key, `"`))
	}
	for field, reason := range validation.ToDetails(err) {
		return &application.ValidationError{Field: field, Reason: reason}
	}
	return &application.ValidationError{Field: "payload", Reason: "invalid payload"}
}
