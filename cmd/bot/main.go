package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/common/config"
	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/common/logger"
	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/features/bot"
	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/features/chatconfig"
	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/features/rewards"
	httpapi "github.com/Alpha4-Labs/telegram-loyalty-bot/internal/http"
	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/platform/redis"
	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/platform/telegram"
)

// @title           Telegram Loyalty Bot API
// @version         1.0
// @description     Webhook relay between Telegram chats and the Loyalteez rewards API.

// @host      localhost:8080
// @BasePath  /
func main() {
	cfg := config.Load()
	logger.Init("telegram-loyalty-bot", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redis.Open(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	logger.Info().Str("host", cfg.Redis.Host).Msg("Redis connection established")

	store := chatconfig.NewRedisStore(rdb)
	tg := telegram.NewClient(cfg.Telegram.BotToken)
	loyalty := rewards.NewClient(cfg.Loyalty.BrandID, cfg.Loyalty.APIURL, cfg.Loyalty.InternalURL, tg)
	handler := bot.NewHandler(store, loyalty, tg, tg, cfg.Loyalty.JoinFallbackEventID)

	router := httpapi.NewRouter(cfg, store, handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Listening for webhook deliveries")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
