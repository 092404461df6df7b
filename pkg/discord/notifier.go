package discord

import (
	"fmt"
	"time"

	"github.com/WardenStudios/WardenBotGo/internal/escalation"
	"github.com/WardenStudios/WardenBotGo/pkg/database"
	"github.com/bwmarrin/discordgo"
)

// Notifier delivers escalation notifications over Discord: direct
// messages to punished users and embeds to the guild's moderation log
// channel. Delivery is best-effort; callers log and move on.
type Notifier struct {
	session  *discordgo.Session
	settings *database.SettingsService
}

// NewNotifier creates a Notifier over an active session
func NewNotifier(session *discordgo.Session, settings *database.SettingsService) *Notifier {
	return &Notifier{session: session, settings: settings}
}

func buildEmbed(n escalation.Notification) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       n.Title,
		Description: n.Description,
		Color:       n.Color,
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "🛡️ WardenBot Go",
		},
	}
}

// DirectMessage sends an embed to a user's DM channel. Fails when the
// user has DMs closed; that is expected and not retried.
func (n *Notifier) DirectMessage(userID string, notification escalation.Notification) error {
	channel, err := n.session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = n.session.ChannelMessageSendEmbed(channel.ID, buildEmbed(notification))
	return err
}

// PostToModerationChannel sends an embed to the guild's configured
// moderation log channel. Guilds without one configured are skipped.
func (n *Notifier) PostToModerationChannel(guildID string, notification escalation.Notification) error {
	settings, err := n.settings.GetSettings(guildID)
	if err != nil {
		return fmt.Errorf("loading guild settings: %w", err)
	}
	if settings.ModLogChannelID == "" {
		return nil
	}
	_, err = n.session.ChannelMessageSendEmbed(settings.ModLogChannelID, buildEmbed(notification))
	return err
}
