// Package bot routes inbound chat messages to the loyalty actions: join
// rewards for new members, the /checkin command, balance links and the
// admin-only /config_* commands. Exactly one branch runs per message; errors
// from collaborators become chat messages, never propagate upward.
package bot

import (
	"context"
	"strings"

	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/common/logger"
	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/features/chatconfig"
	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/features/rewards"
	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/platform/telegram"
)

// RewardsAPI is the slice of the rewards client the handler depends on.
type RewardsAPI interface {
	Trigger(ctx context.Context, eventType string, user rewards.TriggerUser, chatID int64) rewards.Result
	Resolve(ctx context.Context, name string) string
}

// Messenger sends chat replies, best-effort.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string)
}

// Authorizer gates the admin-only commands.
type Authorizer interface {
	IsAdmin(ctx context.Context, chatID, userID int64) bool
}

type Handler struct {
	store   chatconfig.Store
	rewards RewardsAPI
	msg     Messenger
	auth    Authorizer

	// joinFallbackEventID selects the unconfigured-join policy: "" refuses
	// and prompts admin setup, non-empty is used as the default identifier.
	joinFallbackEventID string
}

func NewHandler(store chatconfig.Store, api RewardsAPI, msg Messenger, auth Authorizer, joinFallbackEventID string) *Handler {
	return &Handler{
		store:               store,
		rewards:             api,
		msg:                 msg,
		auth:                auth,
		joinFallbackEventID: joinFallbackEventID,
	}
}

// HandleMessage dispatches one inbound message. Messages authored by bots are
// dropped to prevent bot-to-bot loops.
func (h *Handler) HandleMessage(ctx context.Context, m *telegram.Message) {
	if m == nil {
		return
	}
	if m.From != nil && m.From.IsBot {
		return
	}

	text := m.Text

	switch {
	case len(m.NewChatMembers) > 0:
		h.handleJoin(ctx, m.Chat.ID, m.NewChatMembers)
	case strings.HasPrefix(text, "/checkin"):
		h.handleCheckin(ctx, m)
	case strings.HasPrefix(text, "/balance"), strings.HasPrefix(text, "/ltz"):
		h.msg.SendMessage(ctx, m.Chat.ID, msgBalance)
	case strings.HasPrefix(text, "/config_checkin"):
		h.handleConfig(ctx, m, chatconfig.KindCheckin)
	case strings.HasPrefix(text, "/config_join"):
		h.handleConfig(ctx, m, chatconfig.KindJoin)
	case strings.HasPrefix(text, "/start"):
		h.msg.SendMessage(ctx, m.Chat.ID, msgStart)
	}
}

func (h *Handler) handleJoin(ctx context.Context, chatID int64, members []telegram.User) {
	for _, member := range members {
		if member.IsBot {
			continue
		}

		eventID, err := h.store.Get(ctx, chatconfig.KindJoin, chatID)
		if err != nil {
			logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to read join event config")
			eventID = ""
		}
		if eventID == "" {
			if h.joinFallbackEventID == "" {
				h.msg.SendMessage(ctx, chatID, msgJoinNotConfigured)
				continue
			}
			eventID = h.joinFallbackEventID
		}

		res := h.rewards.Trigger(ctx, eventID, triggerUser(member), chatID)
		name := member.DisplayName()
		if res.Success && res.DistributedAmount != nil {
			h.msg.SendMessage(ctx, chatID, welcomeMessage(name, res.DistributedAmount))
		} else {
			h.msg.SendMessage(ctx, chatID, welcomeMessage(name, nil))
		}
	}
}

func (h *Handler) handleCheckin(ctx context.Context, m *telegram.Message) {
	if m.From == nil {
		return
	}
	chatID := m.Chat.ID

	eventID, err := h.store.Get(ctx, chatconfig.KindCheckin, chatID)
	if err != nil {
		logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to read check-in event config")
		eventID = ""
	}
	if eventID == "" {
		h.msg.SendMessage(ctx, chatID, msgCheckinNotConfigured)
		return
	}

	res := h.rewards.Trigger(ctx, eventID, triggerUser(*m.From), chatID)
	if res.Success {
		h.msg.SendMessage(ctx, chatID, checkinSuccessMessage(res.DistributedAmount))
		return
	}

	switch rewards.Classify(res) {
	case rewards.FailureCooldown:
		h.msg.SendMessage(ctx, chatID, msgCheckinCooldown)
	case rewards.FailureEventNotFound:
		h.msg.SendMessage(ctx, chatID, msgCheckinMisconfigured)
	default:
		h.msg.SendMessage(ctx, chatID, checkinFailedMessage(res.Error))
	}
}

func (h *Handler) handleConfig(ctx context.Context, m *telegram.Message, kind chatconfig.Kind) {
	if m.From == nil {
		return
	}
	chatID := m.Chat.ID

	if !h.auth.IsAdmin(ctx, chatID, m.From.ID) {
		h.msg.SendMessage(ctx, chatID, msgPermissionDenied)
		return
	}

	fields := strings.Fields(m.Text)
	if len(fields) < 2 {
		h.msg.SendMessage(ctx, chatID, configUsageMessage(kind))
		return
	}
	input := fields[1]

	// Resolution happens once, at configuration time; triggers later use the
	// stored identifier verbatim.
	resolved := h.rewards.Resolve(ctx, input)

	if err := h.store.Set(ctx, kind, chatID, resolved); err != nil {
		logger.Error().Err(err).Int64("chat_id", chatID).Str("kind", string(kind)).Msg("Failed to store event config")
		h.msg.SendMessage(ctx, chatID, msgConfigSaveFailed)
		return
	}

	h.msg.SendMessage(ctx, chatID, configConfirmMessage(kind, input, resolved))
}

func triggerUser(u telegram.User) rewards.TriggerUser {
	return rewards.TriggerUser{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
