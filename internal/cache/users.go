// Package cache — кэш данных аутентифицированного пользователя,
// чтобы не ходить в БД на каждый запрос с токеном. Основное хранилище —
// Redis; без REDIS_ADDR остаётся только короткий кэш в памяти процесса.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Spok95/educenter-api/internal/models"
)

const userTTL = 30 * time.Second

type entry struct {
	user    models.User
	expires time.Time
}

type Users struct {
	rdb *redis.Client // nil — Redis не настроен

	mu  sync.Mutex
	mem map[int64]entry
}

func NewUsers(redisAddr string) *Users {
	c := &Users{mem: make(map[int64]entry)}
	if redisAddr != "" {
		c.rdb = redis.NewClient(&redis.Options{Addr: redisAddr})
	}
	return c
}

func (c *Users) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

func key(id int64) string { return fmt.Sprintf("user:%d", id) }

func (c *Users) Get(ctx context.Context, id int64) (*models.User, bool) {
	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, key(id)).Bytes()
		if err == nil {
			var u models.User
			if json.Unmarshal(raw, &u) == nil {
				return &u, true
			}
		}
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.mem[id]
	if !ok || time.Now().After(e.expires) {
		delete(c.mem, id)
		return nil, false
	}
	u := e.user
	return &u, true
}

func (c *Users) Set(ctx context.Context, u *models.User) {
	if c.rdb != nil {
		if raw, err := json.Marshal(u); err == nil {
			_ = c.rdb.Set(ctx, key(u.ID), raw, userTTL).Err()
		}
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.mem[u.ID] = entry{user: *u, expires: time.Now().Add(userTTL)}
}

// Invalidate сбрасывает запись после мутаций пользователя (баланс, профиль):
// следующий запрос перечитает состояние из БД.
func (c *Users) Invalidate(ctx context.Context, id int64) {
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, key(id)).Err()
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.mem, id)
}
