package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/karanshah229/taskapp/internal/container"
	handlers "github.com/karanshah229/taskapp/internal/interface/http"
	"github.com/karanshah229/taskapp/internal/interface/middleware"
)

// UserModule serves accounts, sessions and avatars.
// Public: POST /users, POST /users/login, GET /users/:id, GET /users/:id/avatar
// Protected: /profile and /users/profile*, /users/logout, /users/logoutAll
type UserModule struct {
	Handler *handlers.UserHandler
	Tokens  middleware.TokenResolver
}

func NewUserModule(h *handlers.UserHandler, tokens middleware.TokenResolver) *UserModule {
	return &UserModule{Handler: h, Tokens: tokens}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	registerLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.POST("/users/login", loginLimiter, m.Handler.Login)
	rg.GET("/users/:id", m.Handler.GetByID)
	rg.GET("/users/:id/avatar", m.Handler.GetAvatarByID)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Tokens, container.GetLogger()))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PATCH("/users/profile", m.Handler.UpdateProfile)
		auth.DELETE("/users/profile", m.Handler.DeleteProfile)
		auth.POST("/users/logout", m.Handler.Logout)
		auth.POST("/users/logoutAll", m.Handler.LogoutAll)

		auth.POST("/users/profile/avatar", m.Handler.UploadAvatar)
		auth.DELETE("/users/profile/avatar", m.Handler.DeleteAvatar)
		auth.GET("/users/profile/avatar", m.Handler.GetAvatar)
	}
}
