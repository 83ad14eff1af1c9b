package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/auth"
	"github.com/Spok95/educenter-api/internal/ctxutil"
	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/models"
)

type loginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Message  string      `json:"message"`
	Redirect string      `json:"redirect"`
	UserID   int64       `json:"user_id"`
	Role     models.Role `json:"role"`
	Token    string      `json:"token"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("phone and password are required"))
		return
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	u, err := db.GetUserByPhone(ctx, h.DB, req.Phone)
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		// не раскрываем, телефон не найден или пароль неверен
		h.fail(c, apperr.Unauthorized("invalid phone number or password"))
		return
	}
	if !u.IsActive {
		h.fail(c, apperr.Unauthorized("account is deactivated"))
		return
	}

	token, err := h.Tokens.Sign(u.ID, u.Role)
	if err != nil {
		h.fail(c, err)
		return
	}

	redirect := "/student/dashboard"
	switch u.Role {
	case models.Director:
		redirect = "/director/dashboard"
	case models.Teacher:
		redirect = "/teacher/dashboard"
	}

	c.JSON(http.StatusOK, loginResponse{
		Message:  "Login successful",
		Redirect: redirect,
		UserID:   u.ID,
		Role:     u.Role,
		Token:    token,
	})
}
