package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/karanshah229/taskapp/internal/application"
	"github.com/karanshah229/taskapp/internal/domain/entity"
	"github.com/karanshah229/taskapp/internal/interface/middleware"
	"github.com/karanshah229/taskapp/pkg/response"
)

const avatarField = "avatar"

// multipartOverhead leaves room for boundaries and headers around the file part.
const multipartOverhead = 64 << 10

var avatarExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

var errAvatarTooLarge = &application.ValidationError{
	Field:  avatarField,
	Reason: "must be at most " + strconv.Itoa(application.MaxAvatarBytes) + " bytes",
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, application.MaxAvatarBytes+multipartOverhead)

	fh, err := c.FormFile(avatarField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(c, h.Logger, errAvatarTooLarge)
			return
		}
		writeError(c, h.Logger, &application.ValidationError{Field: avatarField, Reason: "is required"})
		return
	}
	if !avatarExts[strings.ToLower(filepath.Ext(fh.Filename))] {
		writeError(c, h.Logger, &application.ValidationError{Field: avatarField, Reason: "must be a jpg, jpeg or png file"})
		return
	}
	if fh.Size > application.MaxAvatarBytes {
		writeError(c, h.Logger, errAvatarTooLarge)
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(io.LimitReader(f, application.MaxAvatarBytes+1))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	if err := h.Users.SetAvatar(c.Request.Context(), middleware.CurrentUser(c), data); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "avatar uploaded", nil)
}

func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	if err := h.Users.ClearAvatar(c.Request.Context(), middleware.CurrentUser(c)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "avatar deleted", nil)
}

func (h *UserHandler) GetAvatar(c *gin.Context) {
	h.serveAvatar(c, middleware.CurrentUser(c))
}

// GetAvatarByID serves any user's avatar without authentication.
func (h *UserHandler) GetAvatarByID(c *gin.Context) {
	u, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.serveAvatar(c, u)
}

func (h *UserHandler) serveAvatar(c *gin.Context, u *entity.User) {
	png, err := h.Users.GetAvatar(c.Request.Context(), u)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
