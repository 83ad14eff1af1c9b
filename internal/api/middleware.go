package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Spok95/educenter-api/internal/auth"
	"github.com/Spok95/educenter-api/internal/cache"
	"github.com/Spok95/educenter-api/internal/ctxutil"
	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/metrics"
	"github.com/Spok95/educenter-api/internal/models"
	"github.com/Spok95/educenter-api/internal/observability"
)

// RequireAuth: bearer-токен → пользователь (кэш, затем БД) → явный
// контекст запроса. Деактивированный пользователь отсекается здесь же.
func RequireAuth(tokens *auth.TokenManager, database *sql.DB, users *cache.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "authorization token not provided")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		ctx := c.Request.Context()
		u, ok := users.Get(ctx, claims.UserID)
		if !ok {
			dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
			u, err = db.GetUserByID(dbCtx, database, claims.UserID)
			cancel()
			if err != nil {
				abortUnauthorized(c, "invalid or expired token")
				return
			}
			users.Set(ctx, u)
		}
		if !u.IsActive {
			abortUnauthorized(c, "account is deactivated")
			return
		}

		c.Request = c.Request.WithContext(ctxutil.WithUser(ctx, u))
		c.Next()
	}
}

// RequireRoles — единый ролевой гейт перед хендлерами вместо
// разрозненных проверок внутри каждого.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := ctxutil.User(c.Request.Context())
		if !ok {
			abortUnauthorized(c, "authorization required")
			return
		}
		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden for role " + string(u.Role)})
	}
}

func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func RequestLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

// Recovery — паника уходит в Sentry и лог, клиенту 500 без деталей.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				observability.CapturePanic(r)
				metrics.HandlerErrors.Inc()
				log.Error("panic in handler", zap.Any("panic", r), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
