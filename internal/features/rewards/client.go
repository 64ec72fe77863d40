// Package rewards talks to the Loyalteez rewards API: manual event triggering,
// best-effort wallet pregeneration and event catalog lookups. Calls prefer the
// low-latency internal channel when one is configured and fall back to the
// public HTTP endpoint on any failure; the first attempt's result is discarded
// entirely, the second is authoritative.
package rewards

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/common/logger"
)

const (
	manualEventPath  = "/api/v1/events/manual"
	pregenWalletPath = "/api/v1/wallets/pregenerate"
	eventConfigsPath = "/api/v1/brands/%s/events"

	// emailDomain is the fixed domain for synthesized reward identities.
	emailDomain = "loyalteez.app"
	platformTag = "telegram"
)

// BotIdentity supplies the bot's own handle for downstream authentication by
// the rewards API. The handle is optional; "" is an acceptable answer.
type BotIdentity interface {
	BotUsername(ctx context.Context) string
}

type Client struct {
	httpClient  *http.Client
	brandID     string
	baseURL     string
	internalURL string
	bot         BotIdentity
}

// NewClient builds a rewards client. internalURL may be empty, in which case
// every call goes straight to the public API. bot may be nil.
func NewClient(brandID, apiURL, internalURL string, bot BotIdentity) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		brandID:     brandID,
		baseURL:     apiURL,
		internalURL: internalURL,
		bot:         bot,
	}
}

// TriggerUser identifies the chat member a reward is triggered for.
type TriggerUser struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// Result is the outcome of a reward trigger. Code carries the structured
// error kind when the API supplies one; Error is the human-readable text.
type Result struct {
	Success           bool     `json:"success"`
	DistributedAmount *float64 `json:"distributedAmount,omitempty"`
	Error             string   `json:"error,omitempty"`
	Code              string   `json:"code,omitempty"`
}

// SynthesizeEmail derives the deterministic pseudo-email the rewards platform
// keys wallets on.
func SynthesizeEmail(userID int64) string {
	return fmt.Sprintf("telegram_%d@%s", userID, emailDomain)
}

// Trigger fires eventType for the given user. A missing brand id is reported
// as a configuration-error result, never a panic or a Go error. Transport and
// upstream failures come back as a failed Result with the error text.
func (c *Client) Trigger(ctx context.Context, eventType string, user TriggerUser, chatID int64) Result {
	if c.brandID == "" {
		logger.Error().Msg("BRAND_ID is not configured, cannot trigger rewards")
		return Result{Success: false, Error: "configuration error"}
	}

	email := SynthesizeEmail(user.ID)

	var botHandle string
	if c.bot != nil {
		botHandle = c.bot.BotUsername(ctx)
	}

	// Wallet creation also happens as a side effect of the event call, so a
	// failed pregeneration is not a reason to stop.
	c.pregenerateWallet(ctx, email)

	metadata := map[string]interface{}{
		"platform":  platformTag,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"chatId":    chatID,
	}
	if user.Username != "" {
		metadata["username"] = user.Username
	}
	if user.FirstName != "" {
		metadata["firstName"] = user.FirstName
	}
	if user.LastName != "" {
		metadata["lastName"] = user.LastName
	}
	if botHandle != "" {
		metadata["botUsername"] = botHandle
	}

	payload := map[string]interface{}{
		"brandId":   c.brandID,
		"eventType": eventType,
		"userEmail": email,
		"domain":    emailDomain,
		"metadata":  metadata,
	}

	var resp Result
	if err := c.postWithFallback(ctx, manualEventPath, payload, &resp); err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Int64("chat_id", chatID).Msg("Reward trigger failed")
		return Result{Success: false, Error: err.Error()}
	}
	return resp
}

// pregenerateWallet asks the rewards API to ensure a wallet exists for the
// synthesized email before the event lands. Best-effort: every failure is
// logged and swallowed.
func (c *Client) pregenerateWallet(ctx context.Context, email string) {
	payload := map[string]interface{}{
		"brandId":   c.brandID,
		"userEmail": email,
	}

	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.postWithFallback(ctx, pregenWalletPath, payload, &resp); err != nil {
		logger.Debug().Err(err).Str("email", email).Msg("Wallet pregeneration failed, continuing")
	}
}

// postWithFallback tries the internal channel first when configured. A bad
// status, unparsable body or transport error on the internal path triggers a
// silent retry against the public endpoint; only the public path's failure
// propagates.
func (c *Client) postWithFallback(ctx context.Context, path string, payload, out interface{}) error {
	if c.internalURL != "" {
		err := c.post(ctx, c.internalURL+path, payload, out)
		if err == nil {
			return nil
		}
		logger.Debug().Err(err).Str("path", path).Msg("Internal channel failed, falling back to public API")
	}
	return c.post(ctx, c.baseURL+path, payload, out)
}

func (c *Client) getWithFallback(ctx context.Context, path string, out interface{}) error {
	if c.internalURL != "" {
		err := c.get(ctx, c.internalURL+path, out)
		if err == nil {
			return nil
		}
		logger.Debug().Err(err).Str("path", path).Msg("Internal channel failed, falling back to public API")
	}
	return c.get(ctx, c.baseURL+path, out)
}

func (c *Client) post(ctx context.Context, url string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("rewards API returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}
