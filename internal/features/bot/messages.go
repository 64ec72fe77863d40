package bot

import (
	"fmt"
	"html"

	"github.com/Alpha4-Labs/telegram-loyalty-bot/internal/features/chatconfig"
)

// Chat-facing copy. Everything is sent with HTML parse mode, so user-supplied
// fragments must pass through html.EscapeString before interpolation.
const (
	msgJoinNotConfigured = "👋 Welcome! Join rewards are not set up for this chat yet. An admin can run /config_join to enable them."

	msgBalance = "💰 Check your LTZ balance and perks at https://perks.loyalteez.app"

	msgCheckinNotConfigured = "Check-in rewards are not configured for this chat. An admin can run /config_checkin to set them up."
	msgCheckinCooldown      = "⏳ You already checked in recently. Come back after the cooldown."
	msgCheckinMisconfigured = "⚠️ The check-in event for this chat looks misconfigured. An admin should run /config_checkin again."
	msgPermissionDenied     = "Only chat admins can change reward settings."
	msgConfigSaveFailed     = "❌ Could not save the configuration, please try again."

	msgStart = "Hi! I hand out Loyalteez rewards in this chat.\n\n" +
		"/checkin — claim your daily check-in reward\n" +
		"/balance — view your LTZ balance\n\n" +
		"Admins:\n" +
		"/config_checkin &lt;event&gt; — set the check-in reward event\n" +
		"/config_join &lt;event&gt; — set the new-member reward event"
)

func welcomeMessage(name string, amount *float64) string {
	if amount != nil {
		return fmt.Sprintf("🎉 Welcome, %s! You just earned %.2f LTZ.", html.EscapeString(name), *amount)
	}
	return fmt.Sprintf("🎉 Welcome, %s! Your join reward is being processed.", html.EscapeString(name))
}

func checkinSuccessMessage(amount *float64) string {
	if amount != nil {
		return fmt.Sprintf("✅ Checked in! You earned %.2f LTZ.", *amount)
	}
	return "✅ Checked in! Your reward is on its way."
}

func checkinFailedMessage(errText string) string {
	return fmt.Sprintf("❌ Check-in failed: %s", html.EscapeString(errText))
}

func configUsageMessage(kind chatconfig.Kind) string {
	return fmt.Sprintf("Usage: /config_%s &lt;event id or friendly name&gt;", kind)
}

func configConfirmMessage(kind chatconfig.Kind, input, resolved string) string {
	if input != resolved {
		return fmt.Sprintf("✅ %s event <code>%s</code> resolved to <code>%s</code>.",
			kindLabel(kind), html.EscapeString(input), html.EscapeString(resolved))
	}
	return fmt.Sprintf("✅ %s event set to <code>%s</code>.", kindLabel(kind), html.EscapeString(resolved))
}

func kindLabel(kind chatconfig.Kind) string {
	if kind == chatconfig.KindJoin {
		return "Join"
	}
	return "Check-in"
}
