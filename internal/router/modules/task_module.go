package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/karanshah229/taskapp/internal/container"
	handlers "github.com/karanshah229/taskapp/internal/interface/http"
	"github.com/karanshah229/taskapp/internal/interface/middleware"
)

// TaskModule serves the caller's tasks. Every route requires a bearer token.
type TaskModule struct {
	Handler *handlers.TaskHandler
	Tokens  middleware.TokenResolver
}

func NewTaskModule(h *handlers.TaskHandler, tokens middleware.TokenResolver) *TaskModule {
	return &TaskModule{Handler: h, Tokens: tokens}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	tasks.Use(middleware.Auth(m.Tokens, container.GetLogger()))
	tasks.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		tasks.POST("", m.Handler.Create)
		tasks.GET("", m.Handler.List)
		tasks.GET("/search", m.Handler.Search)
		tasks.GET("/:id", m.Handler.Get)
		tasks.PATCH("/:id", m.Handler.Update)
		tasks.DELETE("/:id", m.Handler.Delete)
	}
}
