package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Spok95/educenter-api/internal/api"
	"github.com/Spok95/educenter-api/internal/auth"
	"github.com/Spok95/educenter-api/internal/cache"
	"github.com/Spok95/educenter-api/internal/config"
	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/jobs"
	"github.com/Spok95/educenter-api/internal/logging"
	"github.com/Spok95/educenter-api/internal/observability"
)

var release = "dev" // подставляется при сборке через -ldflags

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer lg.Closer()

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		lg.Sugar.Warnw("sentry init failed", "err", err)
	}
	defer flushSentry()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		lg.Sugar.Fatalw("Ошибка подключения к БД", "err", err)
	}
	defer func() { _ = database.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(ctx, database); err != nil {
		lg.Sugar.Fatalw("Миграция не удалась", "err", err)
	}
	lg.Base.Info("миграции применены")

	if cfg.AdminPhone != "" && cfg.AdminPassword != "" {
		hash, err := auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			lg.Sugar.Fatalw("admin seed", "err", err)
		}
		created, err := db.SeedDirector(ctx, database, cfg.AdminPhone, "Директор", hash)
		if err != nil {
			lg.Sugar.Fatalw("admin seed", "err", err)
		}
		if created {
			lg.Base.Info("создан первичный директор", zap.String("phone", cfg.AdminPhone))
		}
	}

	users := cache.NewUsers(cfg.RedisAddr)
	if err := users.Ping(ctx); err != nil {
		// без Redis живём на in-memory кэше
		lg.Sugar.Warnw("redis недоступен", "err", err)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	runner := jobs.New(ctx, lg.Base)
	runner.Every(time.Minute, "entity_stats", jobs.EntityStats(database))

	router := api.NewRouter(cfg, database, lg.Base, tokens, users)
	api.StartHTTP(ctx, cfg.HTTPAddr, router, lg.Base)
	lg.Base.Info("сервер запущен", zap.String("addr", cfg.HTTPAddr))

	<-ctx.Done()
	lg.Base.Info("остановка по сигналу")
	// даём серверу время закрыть соединения (Shutdown внутри StartHTTP)
	time.Sleep(100 * time.Millisecond)
}
