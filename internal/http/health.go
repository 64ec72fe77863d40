package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/features/chatconfig"
)

const serviceName = "telegram-loyalty-bot"

// health reports liveness plus a redacted view of the deploy configuration.
//
// @Summary      Health check
// @Tags         ops
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (s *Server) health(c *gin.Context) {
	brand := "missing"
	if s.cfg.Loyalty.BrandID != "" {
		brand = "configured"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"config": gin.H{
			"brandId":         brand,
			"apiUrl":          s.cfg.Loyalty.APIURL,
			"kvConfigured":    s.store != nil,
			"tokenConfigured": s.cfg.Telegram.BotToken != "",
		},
	})
}

// chatConfig exposes the stored event ids for one chat to the perks
// dashboard. Read-only; configuration writes stay chat-command-only.
//
// @Summary      Chat reward configuration
// @Tags         config
// @Produce      json
// @Param        chat_id    path    int     true  "Chat identifier"
// @Param        init_data  header  string  true  "Telegram Mini App init data"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/chats/{chat_id}/config [get]
func (s *Server) chatConfig(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	ctx := c.Request.Context()
	join, err := s.store.Get(ctx, chatconfig.KindJoin, chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	checkin, err := s.store.Get(ctx, chatconfig.KindCheckin, chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chat_id":          chatID,
		"join_event_id":    join,
		"checkin_event_id": checkin,
	})
}
