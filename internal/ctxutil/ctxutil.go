package ctxutil

import (
	"context"
	"time"

	"github.com/Spok95/educenter-api/internal/models"
)

// приватные ключи, чтобы исключить коллизии
type key int

const keyUser key = iota

// WithUser /User — аутентифицированный пользователь запроса.
// Явный контекст вместо глобального request-state.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, keyUser, u)
}

func User(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(keyUser).(*models.User)
	return u, ok && u != nil
}

// Таймауты: общий и для БД.
var (
	DefaultDBTimeout = 5 * time.Second
)

// WithDBTimeout — стандартный таймаут для БД.
func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		// если у родителя осталось меньше DefaultDBTimeout — берём остаток
		remain := time.Until(dl)
		if remain < DefaultDBTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultDBTimeout)
}
