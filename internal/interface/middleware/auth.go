package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/karanshah229/taskapp/internal/application"
	"github.com/karanshah229/taskapp/internal/domain/entity"
	"github.com/karanshah229/taskapp/pkg/helpers"
	"github.com/karanshah229/taskapp/pkg/response"
)

const (
	CtxUserKey   = "user"
	CtxTokenKey  = "token"
	CtxUserIDKey = "userID"
)

// TokenResolver is implemented by application.TokenService.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*entity.User, error)
}

// Auth requires "Authorization: Bearer <token>" naming an active session.
// On success the user, the raw token and the user id are stored in the context.
func Auth(tokens TokenResolver, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error[any](c, http.StatusUnauthorized, "Please authenticate.", nil)
			return
		}
		u, err := tokens.Resolve(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, application.ErrAuth) {
				helpers.LogError(logger, "resolve token failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
			}
			response.Error[any](c, http.StatusUnauthorized, "Please authenticate.", nil)
			return
		}

		c.Set(CtxUserKey, u)
		c.Set(CtxTokenKey, token)
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentUser returns the user stored by Auth, or nil outside authenticated routes.
func CurrentUser(c *gin.Context) *entity.User {
	u, _ := c.Get(CtxUserKey)
	user, _ := u.(*entity.User)
	return user
}

func CurrentToken(c *gin.Context) string {
	return c.GetString(CtxTokenKey)
}
