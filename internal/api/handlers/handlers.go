// Package handlers — обработчики API. Каждая операция принимает явный
// типизированный запрос и работает от имени пользователя из контекста.
package handlers

import (
	"database/sql"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/auth"
	"github.com/Spok95/educenter-api/internal/cache"
	"github.com/Spok95/educenter-api/internal/ctxutil"
	"github.com/Spok95/educenter-api/internal/metrics"
	"github.com/Spok95/educenter-api/internal/models"
	"github.com/Spok95/educenter-api/internal/observability"
)

type Handler struct {
	DB     *sql.DB
	Log    *zap.Logger
	Tokens *auth.TokenManager
	Users  *cache.Users
}

func New(database *sql.DB, log *zap.Logger, tokens *auth.TokenManager, users *cache.Users) *Handler {
	return &Handler{DB: database, Log: log, Tokens: tokens, Users: users}
}

// fail переводит ошибку в HTTP-ответ {"error": msg}. Неожиданные ошибки
// не показываем клиенту: лог + Sentry, наружу общий текст.
func (h *Handler) fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if _, ok := apperr.KindOf(err); !ok {
		metrics.HandlerErrors.Inc()
		observability.CaptureErr(err)
		h.Log.Error("handler error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return id, nil
}

// currentUser достаёт аутентифицированного пользователя; отсутствие —
// ошибка сборки маршрутов (хендлер вне RequireAuth).
func currentUser(c *gin.Context) (*models.User, error) {
	u, ok := ctxutil.User(c.Request.Context())
	if !ok {
		return nil, apperr.Unauthorized("authorization required")
	}
	return u, nil
}
