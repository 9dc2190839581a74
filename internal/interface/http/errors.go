package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/karanshah229/taskapp/internal/application"
	"github.com/karanshah229/taskapp/pkg/helpers"
	"github.com/karanshah229/taskapp/pkg/response"
)

const msgInternal = "Something went wrong, please try again later."

// writeError maps application errors onto HTTP statuses. Unknown errors are
// logged and answered with a static 500 so driver details never leak.
func writeError(c *gin.Context, logger logrus.FieldLogger, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusBadRequest, verr.Error(), map[string]string{verr.Field: verr.Reason})
	case errors.Is(err, application.ErrConflict):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrUnableToLogin):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrAuth):
		response.Error[any](c, http.StatusUnauthorized, "Please authenticate.", nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	default:
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"user_id":    c.GetString("userID"),
			"path":       c.FullPath(),
		})
		response.Error[any](c, http.StatusInternalServerError, msgInternal, nil)
	}
}
