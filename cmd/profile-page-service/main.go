// Package main запускает HTTP-сервис страниц профилей пользователей.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"profile-page-service/internal/api"
	"profile-page-service/internal/config"
	httpapi "profile-page-service/internal/http"
	"profile-page-service/internal/isr"
	"profile-page-service/internal/page"
	"profile-page-service/internal/repository"
	"profile-page-service/internal/service"
)

func main() {
	// Контекст для корректного завершения
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Чтение конфигурации из ENV
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Инициализация логгера (JSON)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	logger = logger.With(slog.String("service", cfg.ServiceName))

	// Подключение к БД
	db, err := repository.NewPostgres(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to init postgres: %v", err)
	}
	defer db.Pool.Close()

	// 1. Репозитории и сервисы
	profileService := service.NewProfileService(repository.NewUserRepo(db))
	postService := service.NewPostService(repository.NewPostRepo(db), cfg.CarouselLimit)

	// 2. Роутер процедур и страница профиля
	router := api.NewAppRouter(profileService, postService)
	profilePage := page.NewProfilePage(router, page.NewView(router, logger))

	// 3. Хранилище сгенерированных страниц
	var store isr.Store = isr.NewMemoryStore(cfg.PageCacheSize, cfg.PageCacheTTL)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		store = isr.NewRedisStore(rdb, cfg.PageCacheTTL)
		logger.Info("using redis page store", slog.String("addr", cfg.RedisAddr))
	}

	// 4. Рантайм генерации страниц
	generator := isr.NewGenerator(profilePage, store, logger)
	if err := generator.Prerender(ctx); err != nil {
		log.Fatalf("failed to prerender pages: %v", err)
	}

	// 5. HTTP
	handler := httpapi.NewHandler(generator, router, db, logger, httpapi.Options{
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Router(),
	}

	// Запуск сервера в горутине
	go func() {
		logger.Info("starting http server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("err", err))
			cancel()
		}
	}()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server shutdown error", slog.Any("err", err))
	}

	logger.Info("server stopped")
}
