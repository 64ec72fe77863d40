package rewards

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/common/logger"
)

// CustomEventPrefix marks system-generated event identifiers. Inputs already
// carrying it pass through Resolve untouched.
const CustomEventPrefix = "custom_"

type eventConfig struct {
	EventID      string `json:"eventId"`
	EventType    string `json:"eventType"`
	FriendlyName string `json:"friendlyName,omitempty"`
}

// Resolve maps a human-friendly event name to its platform event identifier
// by querying the brand's event catalog. Resolution is best-effort and never
// fails: on any lookup error or when nothing matches, the input comes back
// unchanged and the eventual trigger call surfaces a clearer error if the
// identifier is genuinely invalid.
func (c *Client) Resolve(ctx context.Context, name string) string {
	if name == "" || strings.HasPrefix(name, CustomEventPrefix) {
		return name
	}
	if c.brandID == "" {
		return name
	}

	var listing struct {
		Events []eventConfig `json:"events"`
	}
	path := fmt.Sprintf(eventConfigsPath, url.PathEscape(c.brandID))
	if err := c.getWithFallback(ctx, path, &listing); err != nil {
		logger.Warn().Err(err).Str("name", name).Msg("Event catalog lookup failed, using name as-is")
		return name
	}

	for _, e := range listing.Events {
		if e.FriendlyName == name {
			return e.EventID
		}
	}
	// Older catalogs had no friendly names; match the raw event type.
	for _, e := range listing.Events {
		if e.EventType == name {
			return e.EventID
		}
	}

	return name
}
