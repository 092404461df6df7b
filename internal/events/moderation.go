// Package events provides event handlers for moderation events
package events

import (
	"fmt"

	"github.com/WardenStudios/WardenBotGo/pkg/discord"
	"github.com/WardenStudios/WardenBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterModerationEvents registers ban/unban event handlers
func RegisterModerationEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildBanAdd)
	client.Session.AddHandler(onGuildBanRemove)
}

// onGuildBanAdd logs every ban the gateway reports, including bans
// issued outside the bot (other bots, the Discord UI).
func onGuildBanAdd(s *discordgo.Session, b *discordgo.GuildBanAdd) {
	logger.Info(fmt.Sprintf("🔨 User banned: %s#%s in server %s",
		b.User.Username, b.User.Discriminator, b.GuildID), "Moderation")
}

// onGuildBanRemove is called when a ban is lifted
func onGuildBanRemove(s *discordgo.Session, b *discordgo.GuildBanRemove) {
	logger.Info(fmt.Sprintf("🕊️ Ban lifted: %s#%s in server %s",
		b.User.Username, b.User.Discriminator, b.GuildID), "Moderation")
}
