// Package httpapi wires the HTTP transport (Gin) to the bot: the webhook
// dispatcher, the health probe, Prometheus metrics, swagger docs and the
// mini-app config endpoint.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Alpha4-Labs/telegram-loyalty-bot/docs"
	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/common/config"
	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/common/middleware"
	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/features/bot"
	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/features/chatconfig"
)

type Server struct {
	cfg   *config.Config
	store chatconfig.Store
	bot   *bot.Handler
}

// NewRouter builds the gin engine. Routing contract: GET /health, /metrics
// and /swagger are open; POST on any path is the webhook; OPTIONS anywhere
// answers empty success for preflight; every other method is 405.
func NewRouter(cfg *config.Config, store chatconfig.Store, h *bot.Handler) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{cfg: cfg, store: store, bot: h}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics())
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "init_data"},
	}
	if cfg.Server.Origin == "" || cfg.Server.Origin == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.Server.Origin}
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	api := r.Group("/api/v1")
	ttl := time.Duration(cfg.Telegram.InitDataTTL) * time.Second
	api.GET("/chats/:chat_id/config", middleware.InitData(cfg.Telegram.BotToken, ttl), s.chatConfig)

	// Telegram deliveries arrive on whatever path the webhook was registered
	// with; only method and secret are checked.
	r.POST("/*path", s.webhook)

	return r
}
