package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/karanshah229/taskapp/internal/application"
	"github.com/karanshah229/taskapp/internal/domain/entity"
	"github.com/karanshah229/taskapp/internal/interface/middleware"
	"github.com/karanshah229/taskapp/pkg/response"
)

type UserHandler struct {
	Users  *application.UserService
	Tokens *application.TokenService
	Logger logrus.FieldLogger
}

func NewUserHandler(users *application.UserService, tokens *application.TokenService, logger logrus.FieldLogger) *UserHandler {
	return &UserHandler{Users: users, Tokens: tokens, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Age      *int    `json:"age"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type sessionResponse struct {
	User  entity.PublicUser `json:"user"`
	Token string            `json:"token"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := decodeLenient(c, &req); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	ctx := c.Request.Context()
	u, err := h.Users.Register(ctx, application.RegisterInput{Name: req.Name, Age: req.Age, Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	token, err := h.Tokens.Issue(ctx, u)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, sessionResponse{User: u.Public(), Token: token}, "user created", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := decodeLenient(c, &req); err != nil {
		writeError(c, h.Logger, application.ErrUnableToLogin)
		return
	}
	ctx := c.Request.Context()
	u, err := h.Users.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	token, err := h.Tokens.Issue(ctx, u)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, sessionResponse{User: u.Public(), Token: token}, "login successful", nil)
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.Tokens.Revoke(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentToken(c)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "logged out", nil)
}

func (h *UserHandler) LogoutAll(c *gin.Context) {
	if err := h.Tokens.RevokeAll(c.Request.Context(), middleware.CurrentUser(c)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "logged out of all sessions", nil)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	response.Success(c, http.StatusOK, middleware.CurrentUser(c).Public(), "profile", nil)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	u, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "user", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := decodeStrict(c, &req); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	u, err := h.Users.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), application.UserPatch{
		Name:     req.Name,
		Age:      req.Age,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "profile updated", nil)
}

func (h *UserHandler) DeleteProfile(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if err := h.Users.DeleteUser(c.Request.Context(), u); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "user deleted", nil)
}
