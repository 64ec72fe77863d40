package httpapi

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/platform/telegram"
)

// webhook handles one Telegram update delivery.
//
// The shared secret, when configured, is compared in constant time against
// the ?secret= query parameter before anything else runs. A body that fails
// to parse is a 500 carrying the parse error. Everything downstream of a
// successful parse answers 200 "OK" unconditionally — handler errors become
// chat messages, never failed acknowledgments, so Telegram never redelivers.
//
// @Summary      Telegram webhook
// @Description  Receives Telegram Bot API updates. Authenticated by the shared webhook secret.
// @Tags         webhook
// @Accept       json
// @Produce      plain
// @Param        secret  query  string  false  "Webhook shared secret"
// @Success      200  {string}  string  "OK"
// @Failure      401  {string}  string  "Unauthorized"
// @Failure      500  {string}  string  "Parse error"
// @Router       / [post]
func (s *Server) webhook(c *gin.Context) {
	if secret := s.cfg.Telegram.WebhookSecret; secret != "" {
		supplied := c.Query("secret")
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) != 1 {
			c.String(http.StatusUnauthorized, "Unauthorized")
			return
		}
	}

	var update telegram.Update
	if err := json.NewDecoder(c.Request.Body).Decode(&update); err != nil {
		c.String(http.StatusInternalServerError, "Failed to parse update: %s", err.Error())
		return
	}

	if update.Message != nil {
		s.bot.HandleMessage(c.Request.Context(), update.Message)
	}

	c.String(http.StatusOK, "OK")
}
