package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/common/logger"
)

const defaultAPIURL = "https://api.telegram.org"

// Client is a thin Telegram Bot API client covering the three calls this
// service needs: sendMessage, getChatMember and getMe.
type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string

	mu          sync.Mutex
	botUsername string
}

func NewClient(token string) *Client {
	return NewClientWithBaseURL(token, defaultAPIURL)
}

// NewClientWithBaseURL is used by tests to point the client at a fake Bot API.
func NewClientWithBaseURL(token, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		token:      token,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// SendMessage delivers text to a chat, best-effort. HTML rendering is enabled
// and link previews suppressed. A missing bot token is a silent no-op; any
// other failure is logged and swallowed so a broken send never fails the
// inbound webhook.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) {
	if c.token == "" {
		return
	}

	params := url.Values{
		"chat_id":                  {fmt.Sprintf("%d", chatID)},
		"text":                     {text},
		"parse_mode":               {"HTML"},
		"disable_web_page_preview": {"true"},
	}

	var resp struct {
		Ok          bool   `json:"ok"`
		Description string `json:"description,omitempty"`
	}
	if err := c.call(ctx, http.MethodPost, "sendMessage", params, &resp); err != nil {
		logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
		return
	}
	if !resp.Ok {
		logger.Error().Str("description", resp.Description).Int64("chat_id", chatID).Msg("Telegram rejected message")
	}
}

// IsAdmin reports whether the user may run admin-only commands in the chat.
// Positive chat IDs are private chats where the counterparty is implicitly
// the bot owner, so the check passes without a network call. Group membership
// is queried via getChatMember; any failure is treated as not-admin.
func (c *Client) IsAdmin(ctx context.Context, chatID, userID int64) bool {
	if chatID > 0 {
		return true
	}

	params := url.Values{
		"chat_id": {fmt.Sprintf("%d", chatID)},
		"user_id": {fmt.Sprintf("%d", userID)},
	}

	var resp struct {
		Ok          bool       `json:"ok"`
		Description string     `json:"description,omitempty"`
		Result      ChatMember `json:"result"`
	}
	if err := c.call(ctx, http.MethodGet, "getChatMember", params, &resp); err != nil {
		logger.Warn().Err(err).Int64("chat_id", chatID).Int64("user_id", userID).Msg("Admin check failed, denying")
		return false
	}
	if !resp.Ok {
		logger.Warn().Str("description", resp.Description).Int64("chat_id", chatID).Msg("Admin check rejected, denying")
		return false
	}

	return resp.Result.Status == "creator" || resp.Result.Status == "administrator"
}

// BotUsername returns the bot's own handle from getMe, memoized for the life
// of the process. Returns "" when the lookup fails; callers treat the handle
// as optional.
func (c *Client) BotUsername(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.botUsername != "" {
		return c.botUsername
	}
	if c.token == "" {
		return ""
	}

	var resp struct {
		Ok     bool `json:"ok"`
		Result struct {
			Username string `json:"username"`
		} `json:"result"`
	}
	if err := c.call(ctx, http.MethodGet, "getMe", nil, &resp); err != nil {
		logger.Warn().Err(err).Msg("Failed to resolve bot identity")
		return ""
	}
	if !resp.Ok {
		return ""
	}

	c.botUsername = resp.Result.Username
	return c.botUsername
}

func (c *Client) call(ctx context.Context, method, apiMethod string, params url.Values, result interface{}) error {
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, apiMethod)

	var req *http.Request
	var err error
	if method == http.MethodPost {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(params.Encode()))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		if len(params) > 0 {
			endpoint = fmt.Sprintf("%s?%s", endpoint, params.Encode())
		}
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
